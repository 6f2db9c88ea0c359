package importer

import (
	"testing"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/requirement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProgramYAML = `
program:
  name: Computer Science B.S.
  catalog_year: 2023-2024
  type: major
requirements:
  notes: All of the following
  items:
    - course: CSE 20
    - course: MATH 19A
    - title: Upper Division Electives
      binder: AT_LEAST
      at_least: 2
      items:
        - course: CSE 130
        - course: CSE 138
        - custom: Capstone Project
`

func TestParseAndConvert(t *testing.T) {
	schema, err := ParseProgramSchema([]byte(sampleProgramYAML))
	require.NoError(t, err)
	require.Empty(t, ValidateProgramSchema(schema))

	p := ConvertProgram(schema)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Computer Science B.S.", p.Name)
	assert.Equal(t, "2023-2024", p.CatalogYear)
	assert.Equal(t, domain.ProgramMajor, p.Type)
	assert.False(t, p.CreatedAt.IsZero())

	root := p.Requirements
	require.NotNil(t, root)
	assert.Equal(t, "Computer Science B.S.", root.Title, "root title falls back to the program name")
	assert.Equal(t, "All of the following", root.Notes)
	assert.Equal(t, domain.BinderAll, root.Binder)
	require.Len(t, root.Requirements, 3)
	assert.Equal(t, domain.CourseRequirement{DepartmentCode: "CSE", Number: "20"}, root.Requirements[0])

	electives, ok := root.Requirements[2].(*domain.RequirementList)
	require.True(t, ok)
	assert.Equal(t, domain.BinderAtLeast, electives.Binder)
	assert.Equal(t, 2, electives.AtLeast)
	assert.NotEqual(t, root.ID, electives.ID)
	assert.Equal(t, domain.CourseRequirement{Title: "Capstone Project"}, electives.Requirements[2])

	assert.NoError(t, requirement.Validate(root))
}

func TestParseProgramSchema_AcceptsJSON(t *testing.T) {
	schema, err := ParseProgramSchema([]byte(`{"program": {"name": "Math Minor", "type": "MINOR"},
		"requirements": {"items": [{"course": "MATH 21"}]}}`))
	require.NoError(t, err)
	require.Empty(t, ValidateProgramSchema(schema))

	p := ConvertProgram(schema)
	assert.Equal(t, domain.ProgramMinor, p.Type)
	require.Len(t, p.Requirements.Requirements, 1)
}

func TestParseProgramSchema_Malformed(t *testing.T) {
	_, err := ParseProgramSchema([]byte("program: [unclosed"))
	assert.Error(t, err)
}

func TestConvertProgram_DefaultsToMajor(t *testing.T) {
	s := validMinimalSchema()
	s.Program.Type = ""
	assert.Equal(t, domain.ProgramMajor, ConvertProgram(s).Type)
}
