package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/repository"
	"github.com/alexanderramin/degreeplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_ImportCSV(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCatalogService(env.courses, env.uow, env.observer)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "courses.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"Computer Science,CSE,20,Beginning Programming,5,,Python.,,\"Fall,Winter\"\n"+
			"Computer Science,CSE,101,Data Structures,5,CSE 20,Trees.,,Spring\n"+
			"Computer Science,cse,999,Broken,5,,,,\n"), 0o644))

	res, err := svc.ImportCSV(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	require.Len(t, res.Skipped, 1)
	assert.Contains(t, res.Skipped[0].Error(), "row 3")

	n, err := env.courses.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rec, err := svc.Lookup(ctx, domain.CatalogKey{DepartmentCode: "CSE", Number: "101"})
	require.NoError(t, err)
	assert.Equal(t, "CSE 20", rec.Prerequisites)

	// Re-importing updates in place.
	require.NoError(t, os.WriteFile(path, []byte("Computer Science,CSE,20,Intro to Python,4,,,,Fall\n"), 0o644))
	_, err = svc.ImportCSV(ctx, path)
	require.NoError(t, err)
	rec, err = svc.Lookup(ctx, domain.CatalogKey{DepartmentCode: "CSE", Number: "20"})
	require.NoError(t, err)
	assert.Equal(t, "Intro to Python", rec.Title)
	assert.Equal(t, 4, rec.Credits)

	ev := env.observer.last()
	assert.Equal(t, "import-catalog", ev.Name)
	assert.Equal(t, 1, ev.Fields["imported"])

	_, err = svc.ImportCSV(ctx, filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorContains(t, err, "loading catalog file")
}

func TestCatalogService_SearchAndLookup(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourses(t,
		testutil.NewTestRecord("CSE 101", testutil.WithTitle("Data Structures")),
		testutil.NewTestRecord("CSE 20", testutil.WithTitle("Beginning Programming")),
		testutil.NewTestRecord("MATH 19A", testutil.WithTitle("Calculus")),
	)
	svc := NewCatalogService(env.courses, env.uow)
	ctx := context.Background()

	got, err := svc.Search(ctx, "CSE", 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.Search(ctx, "calculus", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "MATH 19A", got[0].Key().String())

	_, err = svc.Lookup(ctx, domain.CatalogKey{DepartmentCode: "CSE", Number: "999"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCatalogService_Suggest(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourses(t,
		testutil.NewTestRecord("CSE 115A"),
		testutil.NewTestRecord("CSE 185E"),
	)
	svc := NewCatalogService(env.courses, env.uow)

	got, err := svc.Suggest(context.Background(), "CSE 185E or CSE 115A (not CSE 999), CSE 185E again")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "CSE 185E", got[0].Key().String())
	assert.Equal(t, "CSE 115A", got[1].Key().String())

	got, err = svc.Suggest(context.Background(), "Study Abroad")
	require.NoError(t, err)
	assert.Empty(t, got)
}
