package domain

import (
	"fmt"
	"time"
)

// Requirement is a node of a program's requirement tree. It is either a
// CourseRequirement leaf or a *RequirementList; the unexported marker method
// keeps the set of variants closed to this package.
type Requirement interface {
	isRequirement()
}

// CourseRequirement is a leaf matched purely by catalog key. Title is kept for
// custom entries that have no key.
type CourseRequirement struct {
	DepartmentCode string
	Number         string
	Title          string
}

func (CourseRequirement) isRequirement() {}

func (r CourseRequirement) Key() CatalogKey {
	return CatalogKey{DepartmentCode: r.DepartmentCode, Number: r.Number}
}

// DisplayName returns "DEPT NUM", or the title for keyless entries.
func (r CourseRequirement) DisplayName() string {
	if r.Key().IsZero() {
		return r.Title
	}
	return r.Key().String()
}

// SameAs reports whether two leaves refer to the same course: equal catalog
// keys, or equal titles when neither carries a key.
func (r CourseRequirement) SameAs(o CourseRequirement) bool {
	if r.Key().IsZero() || o.Key().IsZero() {
		return r.Key().IsZero() && o.Key().IsZero() && r.Title == o.Title
	}
	return r.Key() == o.Key()
}

// RequirementFromCourse builds a leaf for the given course.
func RequirementFromCourse(c Course) CourseRequirement {
	return CourseRequirement{DepartmentCode: c.DepartmentCode, Number: c.Number, Title: c.Title}
}

// RequirementList groups requirements under a binder.
//
// AtLeast is only meaningful for BinderAtLeast; zero means unset and is
// evaluated as 1. Lists are shared between tree snapshots, so they must not
// be modified once they are reachable from a root.
type RequirementList struct {
	ID           string
	Title        string
	Notes        string
	Binder       Binder
	AtLeast      int
	Requirements []Requirement
}

func (*RequirementList) isRequirement() {}

// WithRequirements returns a shallow copy of l holding the given children.
func (l *RequirementList) WithRequirements(children []Requirement) *RequirementList {
	out := *l
	out.Requirements = children
	return &out
}

// ValidateCount checks that an AT_LEAST count fits the number of children.
func (l *RequirementList) ValidateCount() error {
	if l.AtLeast < 0 {
		return fmt.Errorf("list %s: at_least must not be negative: %w", l.ID, ErrInvalidRequirement)
	}
	if l.Binder == BinderAtLeast && l.AtLeast > len(l.Requirements) {
		return fmt.Errorf("list %s: at_least %d exceeds %d requirements: %w",
			l.ID, l.AtLeast, len(l.Requirements), ErrInvalidRequirement)
	}
	return nil
}

// Program is a degree program with its requirement tree.
type Program struct {
	ID           string
	Name         string
	CatalogYear  string
	Type         ProgramType
	Requirements *RequirementList
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName returns e.g. "Computer Science B.S. (2023-2024)".
func (p *Program) DisplayName() string {
	if p.CatalogYear == "" {
		return p.Name
	}
	return p.Name + " (" + p.CatalogYear + ")"
}
