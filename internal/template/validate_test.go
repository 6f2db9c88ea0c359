package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSchema_Valid(t *testing.T) {
	assert.Empty(t, ValidateSchema(sampleSchema()))
}

func TestValidateSchema_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *TemplateSchema)
		wantMsg string
	}{
		{"missing id", func(s *TemplateSchema) { s.ID = "" }, "template id is required"},
		{"missing name", func(s *TemplateSchema) { s.Name = "" }, "template name is required"},
		{"negative years", func(s *TemplateSchema) { s.Years = -1 }, "years must not be negative"},
		{"no quarters", func(s *TemplateSchema) { s.Quarters = nil }, "at least one quarter"},
		{"bad term", func(s *TemplateSchema) { s.Quarters[0].Term = "fall" }, "invalid term"},
		{"year out of range", func(s *TemplateSchema) { s.Quarters[1].Year = 4 }, "outside 0..3"},
		{"year within custom length", func(s *TemplateSchema) {
			s.Years = 5
			s.Quarters[1].Year = 5
		}, "outside 0..4"},
		{"duplicate quarter", func(s *TemplateSchema) { s.Quarters[1] = s.Quarters[0] }, "listed twice"},
		{"blank title", func(s *TemplateSchema) { s.Quarters[0].Courses[1] = "  " }, "title is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := sampleSchema()
			tc.mutate(s)
			errs := ValidateSchema(s)
			if assert.NotEmpty(t, errs) {
				assert.Contains(t, errs[0].Error(), tc.wantMsg)
			}
		})
	}
}
