package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProgramSchema is the top-level structure of a program requirements file.
// Files are YAML; JSON documents parse as well.
type ProgramSchema struct {
	Program      ProgramImport     `yaml:"program"`
	Requirements RequirementImport `yaml:"requirements"`
}

type ProgramImport struct {
	Name        string `yaml:"name"`
	CatalogYear string `yaml:"catalog_year"`
	Type        string `yaml:"type"`
}

// RequirementImport is one node of the tree. A node with Course (a "DEPT
// NUM" key) or Custom (a free-text title) is a leaf; anything else is a list.
type RequirementImport struct {
	Course  string              `yaml:"course,omitempty"`
	Custom  string              `yaml:"custom,omitempty"`
	Title   string              `yaml:"title,omitempty"`
	Notes   string              `yaml:"notes,omitempty"`
	Binder  string              `yaml:"binder,omitempty"`
	AtLeast *int                `yaml:"at_least,omitempty"`
	Items   []RequirementImport `yaml:"items,omitempty"`
}

func (r RequirementImport) isLeaf() bool {
	return r.Course != "" || r.Custom != ""
}

// LoadProgramSchema reads and parses a program requirements file.
func LoadProgramSchema(path string) (*ProgramSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseProgramSchema(data)
}

func ParseProgramSchema(data []byte) (*ProgramSchema, error) {
	var schema ProgramSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing program file: %w", err)
	}
	return &schema, nil
}
