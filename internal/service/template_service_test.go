package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/degreeplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

const csTemplate = `{
  "id": "cs-bs",
  "name": "Computer Science B.S.",
  "catalog_year": "2023-2024",
  "quarters": [
    {"year": 0, "term": "Fall", "courses": ["CSE 20", "College Core"]},
    {"year": 0, "term": "Winter", "courses": ["CSE 30"]}
  ]
}`

func TestTemplateService_Get(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "cs.json", csTemplate)
	writeTemplate(t, dir, "art.json", `{"id":"art-ba","name":"Art B.A.","catalog_year":"2022-2023","quarters":[]}`)
	svc := NewTemplateService(dir, nil)

	for _, input := range []string{"cs-bs", "CS-BS", "computer science b.s.", "2"} {
		t.Run(input, func(t *testing.T) {
			got, err := svc.Get(context.Background(), input)
			require.NoError(t, err)
			assert.Equal(t, "cs-bs", got.ID)
		})
	}

	for _, input := range []string{"", "missing", "0", "3"} {
		_, err := svc.Get(context.Background(), input)
		assert.Error(t, err, input)
	}
}

func TestTemplateService_CreatePlanner(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourses(t, testutil.NewTestRecord("CSE 20", testutil.WithTitle("Beginning Programming")))
	dir := t.TempDir()
	writeTemplate(t, dir, "cs.json", csTemplate)
	svc := NewTemplateService(dir, env.uow, env.observer)

	res, err := svc.CreatePlanner(context.Background(), "cs-bs", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"CSE 30"}, res.Unresolved)

	stored := env.reload(t, res.Planner.ID)
	assert.Equal(t, "Computer Science B.S.", stored.Title)
	courses, err := stored.CoursesInSlot(fall0)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Beginning Programming", courses[0].Title)
	assert.True(t, courses[1].IsCustom())

	ev := env.observer.last()
	assert.Equal(t, "create-planner-from-template", ev.Name)
	assert.Equal(t, 3, ev.Fields["course_count"])

	_, err = svc.CreatePlanner(context.Background(), "nope", "")
	assert.Error(t, err)
}
