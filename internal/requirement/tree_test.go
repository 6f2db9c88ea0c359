package requirement

import (
	"testing"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleTree:
//
//	root (ALL)
//	├─ CSE 101
//	├─ upper (AT_LEAST 1)
//	│  ├─ CSE 130
//	│  └─ deep (ALL)
//	│     └─ CSE 140
//	└─ writing (ALL)
func sampleTree() *domain.RequirementList {
	deep := &domain.RequirementList{ID: "deep", Binder: domain.BinderAll, Requirements: []domain.Requirement{req("CSE", "140")}}
	upper := &domain.RequirementList{
		ID: "upper", Title: "Upper Division", Binder: domain.BinderAtLeast, AtLeast: 1,
		Requirements: []domain.Requirement{req("CSE", "130"), deep},
	}
	writing := &domain.RequirementList{ID: "writing", Title: "Writing", Binder: domain.BinderAll}
	return &domain.RequirementList{
		ID: "root", Title: "Computer Science", Binder: domain.BinderAll,
		Requirements: []domain.Requirement{req("CSE", "101"), upper, writing},
	}
}

func TestFind(t *testing.T) {
	root := sampleTree()
	assert.Same(t, root, Find(root, "root"))
	require.NotNil(t, Find(root, "deep"))
	assert.Equal(t, "deep", Find(root, "deep").ID)
	assert.Nil(t, Find(root, "missing"))
	assert.Nil(t, Find(nil, "root"))

	assert.Equal(t, "upper", FindParent(root, "deep").ID)
	assert.Equal(t, "root", FindParent(root, "writing").ID)
	assert.Nil(t, FindParent(root, "root"))
	assert.Nil(t, FindParent(root, "missing"))
}

func TestLists(t *testing.T) {
	var ids []string
	for _, l := range Lists(sampleTree()) {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"root", "upper", "deep", "writing"}, ids)
}

func TestAddList(t *testing.T) {
	root := sampleTree()
	child := NewList("new-1")

	out := AddList(root, "deep", child)
	deep := Find(out, "deep")
	require.Len(t, deep.Requirements, 2)
	assert.Same(t, child, deep.Requirements[1])
	assert.Equal(t, DefaultListTitle, child.Title)
	assert.Equal(t, domain.BinderAll, child.Binder)

	// Old snapshot is untouched and the untouched sibling is shared.
	assert.Len(t, Find(root, "deep").Requirements, 1)
	assert.Same(t, Find(root, "writing"), Find(out, "writing"))
	assert.NotSame(t, Find(root, "upper"), Find(out, "upper"))
}

func TestAddList_UnknownParentIsNoop(t *testing.T) {
	root := sampleTree()
	assert.Same(t, root, AddList(root, "missing", NewList("x")))
}

func TestRemoveList(t *testing.T) {
	root := sampleTree()

	out := RemoveList(root, "deep")
	assert.Nil(t, Find(out, "deep"))
	assert.NotNil(t, Find(root, "deep"))
	assert.Len(t, Find(out, "upper").Requirements, 1)
	assert.Same(t, root.Requirements[2], out.Requirements[2])
}

func TestRemoveList_ScenarioC(t *testing.T) {
	root := sampleTree()
	out := RemoveList(root, "not-in-tree")
	assert.Same(t, root, out)
	assert.Equal(t, sampleTree(), out)
}

func TestRemoveList_RootIsNoop(t *testing.T) {
	root := sampleTree()
	assert.Same(t, root, RemoveList(root, "root"))
}

func TestUpdateList(t *testing.T) {
	root := sampleTree()
	title := "Upper Division Electives"
	binder := domain.BinderAtLeast
	atLeast := 2

	out, err := UpdateList(root, "upper", Patch{Title: &title, Binder: &binder, AtLeast: &atLeast})
	require.NoError(t, err)
	upper := Find(out, "upper")
	assert.Equal(t, title, upper.Title)
	assert.Equal(t, 2, upper.AtLeast)
	assert.Equal(t, "Upper Division", Find(root, "upper").Title)
	assert.Same(t, Find(root, "deep"), Find(out, "deep"), "children are shared")
}

func TestUpdateList_Rejections(t *testing.T) {
	root := sampleTree()
	tooMany := 3
	negative := -1
	bad := domain.Binder("ANY")

	tests := []struct {
		name  string
		patch Patch
	}{
		{"at_least above child count", Patch{AtLeast: &tooMany}},
		{"negative at_least", Patch{AtLeast: &negative}},
		{"unknown binder", Patch{Binder: &bad}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := UpdateList(root, "upper", tc.patch)
			assert.ErrorIs(t, err, domain.ErrInvalidRequirement)
		})
	}
}

func TestUpdateList_UnknownIDIsNoop(t *testing.T) {
	root := sampleTree()
	title := "x"
	out, err := UpdateList(root, "missing", Patch{Title: &title})
	require.NoError(t, err)
	assert.Same(t, root, out)
}

func TestContains(t *testing.T) {
	root := sampleTree()
	assert.True(t, Contains(root, req("CSE", "101")))
	assert.True(t, Contains(root, domain.CourseRequirement{DepartmentCode: "CSE", Number: "101", Title: "Other"}))
	assert.False(t, Contains(root, req("CSE", "130")), "only direct children count")

	custom := &domain.RequirementList{ID: "c", Requirements: []domain.Requirement{domain.CourseRequirement{Title: "Internship"}}}
	assert.True(t, Contains(custom, domain.CourseRequirement{Title: "Internship"}))
	assert.False(t, Contains(custom, domain.CourseRequirement{Title: "Research"}))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(sampleTree()))

	dup := sampleTree()
	dup = AddList(dup, "writing", &domain.RequirementList{ID: "deep", Binder: domain.BinderAll})
	assert.ErrorIs(t, Validate(dup), domain.ErrInvalidRequirement)

	noID := sampleTree()
	noID = AddList(noID, "writing", &domain.RequirementList{Binder: domain.BinderAll})
	assert.ErrorIs(t, Validate(noID), domain.ErrInvalidRequirement)
}
