package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/requirement"
)

// match resolves input against candidates by exact id, case-insensitive
// name and then unique id prefix.
func match[T any](kind, input string, items []T, id func(T) string, names ...func(T) string) (T, error) {
	var zero T
	if input == "" {
		return zero, fmt.Errorf("%s ID is required", kind)
	}
	for _, it := range items {
		if id(it) == input {
			return it, nil
		}
	}
	for _, name := range names {
		var hits []T
		for _, it := range items {
			if strings.EqualFold(name(it), input) {
				hits = append(hits, it)
			}
		}
		if len(hits) == 1 {
			return hits[0], nil
		}
		if len(hits) > 1 {
			return zero, fmt.Errorf("%s name %q is ambiguous (%d matches)", kind, input, len(hits))
		}
	}
	var prefixed []T
	for _, it := range items {
		if strings.HasPrefix(id(it), input) {
			prefixed = append(prefixed, it)
		}
	}
	switch len(prefixed) {
	case 0:
		return zero, fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return prefixed[0], nil
	default:
		return zero, fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(prefixed))
	}
}

func resolvePlannerID(ctx context.Context, app *App, input string) (string, error) {
	planners, err := app.Planners.List(ctx)
	if err != nil {
		return "", err
	}
	p, err := match("planner", input, planners,
		func(p *domain.Planner) string { return p.ID },
		func(p *domain.Planner) string { return p.Title })
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

func resolveProgramID(ctx context.Context, app *App, input string) (string, error) {
	programs, err := app.Programs.List(ctx)
	if err != nil {
		return "", err
	}
	p, err := match("program", input, programs,
		func(p *domain.Program) string { return p.ID },
		func(p *domain.Program) string { return p.Name },
		func(p *domain.Program) string { return p.DisplayName() })
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

// resolveListID finds a requirement list by id, title or id prefix. "root"
// names the top-level list.
func resolveListID(p *domain.Program, input string) (string, error) {
	if p.Requirements == nil {
		return "", fmt.Errorf("program %s has no requirements", p.Name)
	}
	if strings.EqualFold(input, "root") {
		return p.Requirements.ID, nil
	}
	l, err := match("requirement list", input, requirement.Lists(p.Requirements),
		func(l *domain.RequirementList) string { return l.ID },
		func(l *domain.RequirementList) string { return l.Title })
	if err != nil {
		return "", err
	}
	return l.ID, nil
}

// resolveCourseID finds a placed course by id, "DEPT NUM" or title.
func resolveCourseID(p *domain.Planner, input string) (string, error) {
	c, err := match("course", input, p.Courses,
		func(c domain.Course) string { return c.ID },
		func(c domain.Course) string { return c.DisplayName() },
		func(c domain.Course) string { return c.Title })
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

// resolveLabelID finds a label by id, name or color.
func resolveLabelID(p *domain.Planner, input string) (string, error) {
	l, err := match("label", input, p.Labels,
		func(l domain.Label) string { return l.ID },
		func(l domain.Label) string { return l.Name },
		func(l domain.Label) string { return string(l.Color) })
	if err != nil {
		return "", err
	}
	return l.ID, nil
}

// coursePosition returns the slot and index of a placed course.
func coursePosition(p *domain.Planner, courseID string) (string, int, error) {
	slotID, ok := p.SlotOf(courseID)
	if !ok {
		return "", 0, fmt.Errorf("course %s is not scheduled", courseID)
	}
	for i, id := range p.Slots[p.SlotIndex(slotID)].Courses {
		if id == courseID {
			return slotID, i, nil
		}
	}
	return "", 0, fmt.Errorf("course %s is not scheduled", courseID)
}

// slotLength returns how many courses a slot holds.
func slotLength(p *domain.Planner, slotID string) int {
	if i := p.SlotIndex(slotID); i >= 0 {
		return len(p.Slots[i].Courses)
	}
	return 0
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid index %q: must be a non-negative number", s)
	}
	return n, nil
}
