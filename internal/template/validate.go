package template

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// ValidateSchema checks a TemplateSchema for structural errors.
// Returns a slice of errors (empty if valid).
func ValidateSchema(schema *TemplateSchema) []error {
	var errs []error

	if schema.ID == "" {
		errs = append(errs, fmt.Errorf("template id is required"))
	}
	if schema.Name == "" {
		errs = append(errs, fmt.Errorf("template name is required"))
	}
	if schema.Years < 0 {
		errs = append(errs, fmt.Errorf("years must not be negative"))
	}
	if len(schema.Quarters) == 0 {
		errs = append(errs, fmt.Errorf("at least one quarter is required"))
	}

	years := schema.yearsOrDefault()
	seen := map[string]bool{}
	for i, q := range schema.Quarters {
		if !domain.ValidTerms[q.Term] {
			errs = append(errs, fmt.Errorf("quarter[%d]: invalid term %q", i, q.Term))
		}
		if q.Year < 0 || q.Year >= years {
			errs = append(errs, fmt.Errorf("quarter[%d]: year %d outside 0..%d", i, q.Year, years-1))
		}
		id := domain.SlotID(q.Year, domain.Term(q.Term))
		if seen[id] {
			errs = append(errs, fmt.Errorf("quarter[%d]: %s listed twice", i, id))
		}
		seen[id] = true
		for j, c := range q.Courses {
			if strings.TrimSpace(c) == "" {
				errs = append(errs, fmt.Errorf("quarter[%d].courses[%d]: title is required", i, j))
			}
		}
	}

	return errs
}

func (s *TemplateSchema) yearsOrDefault() int {
	if s.Years > 0 {
		return s.Years
	}
	return domain.DefaultYears
}
