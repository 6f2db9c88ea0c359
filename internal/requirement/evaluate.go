package requirement

import "github.com/alexanderramin/degreeplan/internal/domain"

// IsSatisfied reports whether the enrolled courses satisfy node.
//
// A course leaf matches on catalog key only. ALL needs every child, AT_LEAST
// needs AtLeast children (1 when unset, and for any other binder). A list
// with no children is never satisfied.
func IsSatisfied(node domain.Requirement, courses []domain.Course) bool {
	return NewEvaluator(courses).IsSatisfied(node)
}

// Evaluator answers satisfaction queries against one fixed course set.
type Evaluator struct {
	enrolled map[domain.CatalogKey]bool
}

// NewEvaluator indexes the catalog keys of the given courses.
func NewEvaluator(courses []domain.Course) *Evaluator {
	enrolled := make(map[domain.CatalogKey]bool, len(courses))
	for _, c := range courses {
		if !c.IsCustom() {
			enrolled[c.Key()] = true
		}
	}
	return &Evaluator{enrolled: enrolled}
}

// IsSatisfied evaluates node against the indexed courses.
func (e *Evaluator) IsSatisfied(node domain.Requirement) bool {
	switch n := node.(type) {
	case domain.CourseRequirement:
		// Title-only leaves have no key to match against.
		return !n.Key().IsZero() && e.enrolled[n.Key()]
	case *domain.RequirementList:
		return e.listSatisfied(n)
	default:
		return false
	}
}

func (e *Evaluator) listSatisfied(list *domain.RequirementList) bool {
	if list == nil || len(list.Requirements) == 0 {
		return false
	}
	if list.Binder == domain.BinderAll {
		for _, child := range list.Requirements {
			if !e.IsSatisfied(child) {
				return false
			}
		}
		return true
	}
	return e.SatisfiedCount(list) >= RequiredCount(list)
}

// SatisfiedCount returns how many direct children of list are satisfied.
func (e *Evaluator) SatisfiedCount(list *domain.RequirementList) int {
	n := 0
	for _, child := range list.Requirements {
		if e.IsSatisfied(child) {
			n++
		}
	}
	return n
}

// RequiredCount returns how many children must be satisfied for list to be
// satisfied.
func RequiredCount(list *domain.RequirementList) int {
	if list.Binder == domain.BinderAll {
		return len(list.Requirements)
	}
	if list.Binder == domain.BinderAtLeast && list.AtLeast > 0 {
		return list.AtLeast
	}
	return 1
}

// Leaves returns the course leaves under node in depth-first order.
func Leaves(node domain.Requirement) []domain.CourseRequirement {
	switch n := node.(type) {
	case domain.CourseRequirement:
		return []domain.CourseRequirement{n}
	case *domain.RequirementList:
		var out []domain.CourseRequirement
		for _, child := range n.Requirements {
			out = append(out, Leaves(child)...)
		}
		return out
	default:
		return nil
	}
}
