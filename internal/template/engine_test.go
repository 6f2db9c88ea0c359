package template

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog map[domain.CatalogKey]domain.Course

func (f fakeCatalog) LookupCourse(_ context.Context, key domain.CatalogKey) (*domain.Course, error) {
	c, ok := f[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

type brokenCatalog struct{}

func (brokenCatalog) LookupCourse(context.Context, domain.CatalogKey) (*domain.Course, error) {
	return nil, errors.New("disk on fire")
}

func sampleCatalog() fakeCatalog {
	return fakeCatalog{
		{DepartmentCode: "CSE", Number: "20"}: {
			DepartmentCode: "CSE", Number: "20", Title: "Beginning Programming in Python", Credits: 5,
			GE: []string{"SR"}, QuartersOffered: []domain.Term{domain.TermFall, domain.TermWinter},
		},
	}
}

func sampleSchema() *TemplateSchema {
	return &TemplateSchema{
		ID:   "cs",
		Name: "Computer Science B.S.",
		Quarters: []QuarterConfig{
			{Year: 0, Term: "Fall", Courses: []string{"CSE 20", "College Core"}},
			{Year: 1, Term: "Spring", Courses: []string{"CSE 999"}},
		},
	}
}

func TestExecute(t *testing.T) {
	gen, err := Execute(context.Background(), sampleSchema(), sampleCatalog(), "")
	require.NoError(t, err)

	p := gen.Planner
	assert.Equal(t, "Computer Science B.S.", p.Title)
	assert.Equal(t, domain.DefaultYears, p.Years)
	require.NoError(t, p.Validate())

	fall, err := p.CoursesInSlot("quarter-0-Fall")
	require.NoError(t, err)
	require.Len(t, fall, 2)
	assert.Equal(t, "Beginning Programming in Python", fall[0].Title)
	assert.Equal(t, []string{"SR"}, fall[0].GE)
	assert.False(t, fall[0].IsCustom())

	assert.True(t, fall[1].IsCustom())
	assert.Equal(t, "College Core", fall[1].Title)
	assert.Equal(t, 5, fall[1].Credits)

	spring, err := p.CoursesInSlot("quarter-1-Spring")
	require.NoError(t, err)
	require.Len(t, spring, 1)
	assert.True(t, spring[0].IsCustom(), "unknown keys fall back to custom courses")
	assert.Equal(t, []string{"CSE 999"}, gen.Unresolved)
}

func TestExecute_TitleOverrideAndFreshIDs(t *testing.T) {
	a, err := Execute(context.Background(), sampleSchema(), sampleCatalog(), "My Plan")
	require.NoError(t, err)
	b, err := Execute(context.Background(), sampleSchema(), sampleCatalog(), "My Plan")
	require.NoError(t, err)

	assert.Equal(t, "My Plan", a.Planner.Title)
	assert.NotEqual(t, a.Planner.ID, b.Planner.ID)
	assert.NotEqual(t, a.Planner.Courses[0].ID, b.Planner.Courses[0].ID)
}

func TestExecute_NilCatalog(t *testing.T) {
	gen, err := Execute(context.Background(), sampleSchema(), nil, "")
	require.NoError(t, err)
	for _, c := range gen.Planner.Courses {
		assert.True(t, c.IsCustom())
	}
	assert.Empty(t, gen.Unresolved)
}

func TestExecute_Errors(t *testing.T) {
	_, err := Execute(context.Background(), sampleSchema(), brokenCatalog{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")

	bad := sampleSchema()
	bad.Quarters[0].Term = "Autumn"
	_, err = Execute(context.Background(), bad, sampleCatalog(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid term")
}
