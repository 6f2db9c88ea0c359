package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalogKey(t *testing.T) {
	valid := map[string]CatalogKey{
		"CSE 101":   {DepartmentCode: "CSE", Number: "101"},
		"MATH 19A":  {DepartmentCode: "MATH", Number: "19A"},
		" AM 10 ":   {DepartmentCode: "AM", Number: "10"},
		"STAT 7":    {DepartmentCode: "STAT", Number: "7"},
		"WRIT 1":    {DepartmentCode: "WRIT", Number: "1"},
		"BIOE 115A": {DepartmentCode: "BIOE", Number: "115A"},
	}
	for in, want := range valid {
		got, ok := ParseCatalogKey(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "cse 101", "CSE101", "Writing Elective", "CSE 1010", "TOOLONG 1", "CSE 101AB"} {
		_, ok := ParseCatalogKey(in)
		assert.False(t, ok, in)
	}
}

func TestCourse_IsCustomAndDisplay(t *testing.T) {
	catalog := Course{DepartmentCode: "CSE", Number: "101", Title: "Data Structures"}
	assert.False(t, catalog.IsCustom())
	assert.Equal(t, "CSE 101", catalog.DisplayName())
	assert.Equal(t, "Data Structures", catalog.DisplayTitle())

	custom := NewCustomCourse("")
	assert.True(t, custom.IsCustom())
	assert.Equal(t, "Custom Course", custom.DisplayName())
	assert.Equal(t, 5, custom.Credits)
	assert.True(t, custom.IsOfferedIn(TermWinter))
	assert.False(t, custom.IsOfferedIn(TermSummer))

	halfKey := Course{DepartmentCode: "CSE", Title: "Half"}
	assert.True(t, halfKey.IsCustom())
}

func TestCourse_Validate(t *testing.T) {
	assert.NoError(t, NewCustomCourse("Research").Validate())
	assert.Error(t, Course{Title: " "}.Validate())
	assert.Error(t, Course{DepartmentCode: "CSE", Number: "1", Credits: -1}.Validate())
	assert.Error(t, Course{Title: "X", QuartersOffered: []Term{"Autumn"}}.Validate())
}

func TestTruncateTitle(t *testing.T) {
	assert.Equal(t, "short", TruncateTitle("short", 10))
	assert.Equal(t, "abcdefg...", TruncateTitle("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", TruncateTitle("abcdef", 2))
}

func TestCourseRequirement_SameAs(t *testing.T) {
	a := CourseRequirement{DepartmentCode: "CSE", Number: "101", Title: "A"}
	b := CourseRequirement{DepartmentCode: "CSE", Number: "101", Title: "B"}
	custom := CourseRequirement{Title: "A"}

	assert.True(t, a.SameAs(b))
	assert.False(t, a.SameAs(custom))
	assert.True(t, custom.SameAs(CourseRequirement{Title: "A"}))
	assert.False(t, custom.SameAs(CourseRequirement{Title: "B"}))
}

func TestRequirementList_ValidateCount(t *testing.T) {
	l := &RequirementList{ID: "x", Binder: BinderAtLeast, AtLeast: 2,
		Requirements: []Requirement{CourseRequirement{Title: "a"}, CourseRequirement{Title: "b"}}}
	assert.NoError(t, l.ValidateCount())

	l.AtLeast = 3
	assert.ErrorIs(t, l.ValidateCount(), ErrInvalidRequirement)

	all := &RequirementList{ID: "y", Binder: BinderAll, AtLeast: 3}
	assert.NoError(t, all.ValidateCount(), "count is ignored for ALL")
}
