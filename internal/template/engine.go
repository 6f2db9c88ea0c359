package template

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/repository"
	"github.com/google/uuid"
)

// Catalog resolves catalog keys to course records.
type Catalog interface {
	LookupCourse(ctx context.Context, key domain.CatalogKey) (*domain.Course, error)
}

// Generated is the output of template execution.
type Generated struct {
	Planner *domain.Planner
	// Unresolved lists catalog-looking titles that were not in the catalog
	// and were placed as custom courses instead.
	Unresolved []string
}

// Execute builds a planner from a template. Titles shaped like a catalog key
// become the real catalog course; everything else, and keys the catalog does
// not know, become custom courses with that title.
func Execute(ctx context.Context, schema *TemplateSchema, catalog Catalog, title string) (*Generated, error) {
	if errs := ValidateSchema(schema); len(errs) > 0 {
		return nil, fmt.Errorf("invalid template %s: %w", schema.ID, errors.Join(errs...))
	}

	p := domain.NewPlanner(uuid.NewString(), domain.CoalesceStr(title, schema.Name), schema.yearsOrDefault(), uuid.NewString)
	out := &Generated{Planner: p}

	for _, q := range schema.Quarters {
		si := p.SlotIndex(domain.SlotID(q.Year, domain.Term(q.Term)))
		for _, raw := range q.Courses {
			c, resolved, err := resolve(ctx, catalog, raw)
			if err != nil {
				return nil, err
			}
			if !resolved && isKeyLike(raw) {
				out.Unresolved = append(out.Unresolved, strings.TrimSpace(raw))
			}
			c.ID = uuid.NewString()
			c.Title = domain.TruncateTitle(c.Title, domain.MaxStoredCourseTitle)
			p.Courses = append(p.Courses, c)
			p.Slots[si].Courses = append(p.Slots[si].Courses, c.ID)
		}
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("building planner from template %s: %w", schema.ID, err)
	}
	return out, nil
}

func isKeyLike(title string) bool {
	_, ok := domain.ParseCatalogKey(title)
	return ok
}

func resolve(ctx context.Context, catalog Catalog, title string) (domain.Course, bool, error) {
	key, ok := domain.ParseCatalogKey(title)
	if !ok || catalog == nil {
		return domain.NewCustomCourse(title), false, nil
	}
	found, err := catalog.LookupCourse(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewCustomCourse(title), false, nil
	}
	if err != nil {
		return domain.Course{}, false, fmt.Errorf("looking up %s: %w", key, err)
	}
	c := found.Clone()
	c.Labels = nil
	return c, true, nil
}
