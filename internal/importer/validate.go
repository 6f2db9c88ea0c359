package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// ValidateProgramSchema checks the schema before conversion and returns every
// problem found.
func ValidateProgramSchema(schema *ProgramSchema) []error {
	var errs []error

	p := schema.Program
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, fmt.Errorf("program.name is required"))
	}
	if p.Type != "" && !domain.ValidProgramTypes[strings.ToUpper(p.Type)] {
		errs = append(errs, fmt.Errorf("program.type: invalid value %q (expected MAJOR or MINOR)", p.Type))
	}

	if schema.Requirements.isLeaf() {
		errs = append(errs, fmt.Errorf("requirements: the root must be a list, not a course"))
		return errs
	}
	errs = append(errs, validateRequirement("requirements", schema.Requirements)...)
	return errs
}

func validateRequirement(path string, r RequirementImport) []error {
	var errs []error

	if r.isLeaf() {
		if r.Course != "" && r.Custom != "" {
			errs = append(errs, fmt.Errorf("%s: course and custom are mutually exclusive", path))
		}
		if r.Course != "" {
			if _, ok := domain.ParseCatalogKey(r.Course); !ok {
				errs = append(errs, fmt.Errorf("%s.course: %q is not a catalog key like \"CSE 101\"", path, r.Course))
			}
		}
		if len(r.Items) > 0 || r.Binder != "" || r.AtLeast != nil {
			errs = append(errs, fmt.Errorf("%s: a course entry cannot carry items, binder or at_least", path))
		}
		return errs
	}

	binder := strings.ToUpper(r.Binder)
	if binder != "" && !domain.ValidBinders[binder] {
		errs = append(errs, fmt.Errorf("%s.binder: invalid value %q (expected ALL or AT_LEAST)", path, r.Binder))
	}
	if r.AtLeast != nil {
		switch {
		case binder != string(domain.BinderAtLeast):
			errs = append(errs, fmt.Errorf("%s.at_least: only allowed with binder AT_LEAST", path))
		case *r.AtLeast < 1:
			errs = append(errs, fmt.Errorf("%s.at_least: must be positive, got %d", path, *r.AtLeast))
		case *r.AtLeast > len(r.Items):
			errs = append(errs, fmt.Errorf("%s.at_least: %d exceeds %d items", path, *r.AtLeast, len(r.Items)))
		}
	}

	seen := make(map[string]bool)
	for i, item := range r.Items {
		itemPath := fmt.Sprintf("%s.items[%d]", path, i)
		if item.Course != "" {
			key := strings.TrimSpace(item.Course)
			if seen[key] {
				errs = append(errs, fmt.Errorf("%s: duplicate course %q in the same list", itemPath, key))
			}
			seen[key] = true
		}
		errs = append(errs, validateRequirement(itemPath, item)...)
	}
	return errs
}
