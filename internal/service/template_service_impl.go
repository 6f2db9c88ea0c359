package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/repository"
	tmpl "github.com/alexanderramin/degreeplan/internal/template"
)

type templateService struct {
	templateDir string
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewTemplateService(templateDir string, uow db.UnitOfWork, observers ...UseCaseObserver) TemplateService {
	return &templateService{
		templateDir: templateDir,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *templateService) List(ctx context.Context) ([]*tmpl.TemplateSchema, error) {
	all, err := tmpl.LoadDir(s.templateDir)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return all, nil
}

// Get resolves a template by id, display name (case-insensitive) or its
// 1-based position in List.
func (s *templateService) Get(ctx context.Context, name string) (*tmpl.TemplateSchema, error) {
	input := strings.TrimSpace(name)
	if input == "" {
		return nil, fmt.Errorf("template '%s' not found: empty template name", name)
	}
	all, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("template '%s' not found: %w", name, err)
	}
	for _, t := range all {
		if strings.EqualFold(t.ID, input) || strings.EqualFold(t.Name, input) {
			return t, nil
		}
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(all) {
		return all[n-1], nil
	}
	return nil, fmt.Errorf("template '%s' not found in %s", name, filepath.Clean(s.templateDir))
}

// CreatePlanner builds a planner from a template and stores it.
func (s *templateService) CreatePlanner(ctx context.Context, templateName, title string) (res *TemplateResult, err error) {
	fields := map[string]any{"template": templateName}
	done := startUseCase(ctx, s.observer, "create-planner-from-template", fields)
	defer func() { done(err) }()

	schema, err := s.Get(ctx, templateName)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		generated, err := tmpl.Execute(ctx, schema, repository.NewSQLiteCourseRepo(tx), title)
		if err != nil {
			return fmt.Errorf("executing template: %w", err)
		}
		if err := repository.NewSQLitePlannerRepo(tx).Create(ctx, generated.Planner); err != nil {
			return fmt.Errorf("creating planner: %w", err)
		}
		res = &TemplateResult{Planner: generated.Planner, Unresolved: generated.Unresolved}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["planner_id"] = res.Planner.ID
	fields["course_count"] = len(res.Planner.Courses)
	fields["unresolved_count"] = len(res.Unresolved)
	return res, nil
}
