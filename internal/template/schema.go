package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// TemplateSchema is a default planner published for a program, as JSON.
type TemplateSchema struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	CatalogYear string          `json:"catalog_year"`
	Description string          `json:"description,omitempty"`
	Years       int             `json:"years,omitempty"`
	Quarters    []QuarterConfig `json:"quarters"`
}

// QuarterConfig lists the course titles of one term. Titles that look like
// "DEPT NUM" are resolved against the catalog.
type QuarterConfig struct {
	Year    int      `json:"year"`
	Term    string   `json:"term"`
	Courses []string `json:"courses"`
}

// LoadSchema reads and parses a template JSON file.
func LoadSchema(path string) (*TemplateSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema TemplateSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return &schema, nil
}

// LoadDir loads every *.json template in dir, sorted by catalog year and
// name. A missing directory yields no templates.
func LoadDir(dir string) ([]*TemplateSchema, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	out := make([]*TemplateSchema, 0, len(paths))
	for _, p := range paths {
		s, err := LoadSchema(p)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", filepath.Base(p), err)
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CatalogYear != out[j].CatalogYear {
			return out[i].CatalogYear < out[j].CatalogYear
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Find returns the template with the given id.
func Find(templates []*TemplateSchema, id string) (*TemplateSchema, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}
