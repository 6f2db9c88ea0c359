package importer

import (
	"strings"
	"time"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/google/uuid"
)

// ConvertProgram turns a validated schema into a program with fresh ids.
// Call ValidateProgramSchema first.
func ConvertProgram(schema *ProgramSchema) *domain.Program {
	now := time.Now().UTC()
	typ := domain.ProgramType(strings.ToUpper(schema.Program.Type))
	if typ == "" {
		typ = domain.ProgramMajor
	}
	root := convertList(schema.Requirements)
	if root.Title == "" {
		root.Title = schema.Program.Name
	}
	return &domain.Program{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(schema.Program.Name),
		CatalogYear:  strings.TrimSpace(schema.Program.CatalogYear),
		Type:         typ,
		Requirements: root,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func convertList(r RequirementImport) *domain.RequirementList {
	list := &domain.RequirementList{
		ID:     uuid.NewString(),
		Title:   r.Title,
		Notes:   r.Notes,
		Binder:  domain.Binder(domain.CoalesceStr(strings.ToUpper(r.Binder), string(domain.BinderAll))),
		AtLeast: domain.IntFromPtrWithDefault(0, r.AtLeast),
	}
	for _, item := range r.Items {
		list.Requirements = append(list.Requirements, convertRequirement(item))
	}
	return list
}

func convertRequirement(r RequirementImport) domain.Requirement {
	if !r.isLeaf() {
		return convertList(r)
	}
	if r.Custom != "" {
		return domain.CourseRequirement{Title: strings.TrimSpace(r.Custom)}
	}
	key, _ := domain.ParseCatalogKey(r.Course)
	return domain.CourseRequirement{DepartmentCode: key.DepartmentCode, Number: key.Number, Title: r.Title}
}
