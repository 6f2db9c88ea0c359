package template

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAllTemplates_LoadAndExecute loads every JSON file in the templates/
// directory, validates it and builds a planner from it without a catalog.
// This keeps a malformed template from breaking `degreeplan planner create`.
func TestAllTemplates_LoadAndExecute(t *testing.T) {
	templatesDir := findTemplatesDir(t)

	all, err := LoadDir(templatesDir)
	require.NoError(t, err)
	require.NotEmpty(t, all, "no JSON template files found in %s", templatesDir)

	for _, schema := range all {
		t.Run(schema.ID, func(t *testing.T) {
			for _, e := range ValidateSchema(schema) {
				t.Errorf("validation error in %s: %v", schema.ID, e)
			}

			gen, err := Execute(context.Background(), schema, nil, "")
			require.NoError(t, err)
			assert.NotEmpty(t, gen.Planner.Courses, "template %s produced no courses", schema.ID)
		})
	}
}

// findTemplatesDir locates the templates directory relative to the test file.
func findTemplatesDir(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		candidate := filepath.Join(dir, "templates")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find templates directory")
		}
		dir = parent
	}
}
