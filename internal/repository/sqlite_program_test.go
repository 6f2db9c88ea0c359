package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/requirement"
	"github.com/alexanderramin/degreeplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequirements() *domain.RequirementList {
	electives := testutil.NewTestList("Electives", testutil.WithAtLeast(2), testutil.WithChildren(
		testutil.Leaf("CSE 130"), testutil.Leaf("CSE 140"), testutil.Leaf("CSE 150"),
	))
	electives.Notes = "Any two upper-division courses."
	return testutil.NewTestList("Computer Science B.S.", testutil.WithChildren(
		testutil.Leaf("CSE 101"),
		domain.CourseRequirement{Title: "Capstone"},
		electives,
	))
}

func TestProgramRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteProgramRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := testutil.NewTestProgram("Computer Science B.S.", sampleRequirements())
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, "2024-2025", got.CatalogYear)
	assert.Equal(t, domain.ProgramMajor, got.Type)
	assert.Equal(t, p.Requirements, got.Requirements)
}

func TestProgramRepo_UniqueNameYearType(t *testing.T) {
	repo := NewSQLiteProgramRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProgram("Math", nil)))
	assert.Error(t, repo.Create(ctx, testutil.NewTestProgram("Math", nil)))
}

func TestProgramRepo_SaveRequirements(t *testing.T) {
	repo := NewSQLiteProgramRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := testutil.NewTestProgram("Computer Science B.S.", sampleRequirements())
	require.NoError(t, repo.Create(ctx, p))

	updated := requirement.AddList(p.Requirements, p.Requirements.ID, requirement.NewList("new-list"))
	require.NoError(t, repo.SaveRequirements(ctx, p.ID, updated))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Requirements.Requirements, 4)
	assert.Equal(t, requirement.DefaultListTitle, requirement.Find(got.Requirements, "new-list").Title)

	assert.ErrorIs(t, repo.SaveRequirements(ctx, "missing", updated), ErrNotFound)
}

func TestProgramRepo_Declare(t *testing.T) {
	repo := NewSQLiteProgramRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	major := testutil.NewTestProgram("Computer Science B.S.", nil)
	minor := testutil.NewTestProgram("Statistics", nil)
	minor.Type = domain.ProgramMinor
	require.NoError(t, repo.Create(ctx, major))
	require.NoError(t, repo.Create(ctx, minor))

	declared, err := repo.ListDeclared(ctx)
	require.NoError(t, err)
	assert.Empty(t, declared)

	require.NoError(t, repo.Declare(ctx, major.ID))
	require.NoError(t, repo.Declare(ctx, major.ID), "declaring twice is harmless")
	require.NoError(t, repo.Declare(ctx, minor.ID))

	declared, err = repo.ListDeclared(ctx)
	require.NoError(t, err)
	assert.Len(t, declared, 2)

	require.NoError(t, repo.Undeclare(ctx, major.ID))
	assert.ErrorIs(t, repo.Undeclare(ctx, major.ID), ErrNotFound)

	require.NoError(t, repo.Delete(ctx, minor.ID))
	declared, err = repo.ListDeclared(ctx)
	require.NoError(t, err)
	assert.Empty(t, declared)

	assert.Error(t, repo.Declare(ctx, "no-such-program"), "foreign key")
}

func TestDecodeRequirementTree_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"course root", `{"kind":"course","departmentCode":"CSE","number":"101"}`},
		{"unknown kind", `{"kind":"list","id":"r","binder":"ALL","requirements":[{"kind":"group"}]}`},
		{"at_least too high", `{"kind":"list","id":"r","binder":"AT_LEAST","atLeast":2,"requirements":[{"kind":"course","departmentCode":"CSE","number":"101"}]}`},
		{"duplicate ids", `{"kind":"list","id":"r","binder":"ALL","requirements":[{"kind":"list","id":"r","binder":"ALL"}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeRequirementTree([]byte(tc.data))
			assert.Error(t, err)
		})
	}
}
