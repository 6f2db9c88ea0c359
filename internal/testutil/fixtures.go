package testutil

import (
	"time"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/google/uuid"
)

// PlannerOption customizes NewTestPlanner.
type PlannerOption func(*domain.Planner)

func WithYears(n int) PlannerOption {
	return func(p *domain.Planner) {
		p.Years = n
		p.Slots = domain.BuildSlots(n)
	}
}

func WithNotes(notes string) PlannerOption {
	return func(p *domain.Planner) {
		p.Notes = notes
	}
}

// WithPlaced appends c to the catalog and schedules it in slotID. A missing
// id is generated.
func WithPlaced(slotID string, c domain.Course) PlannerOption {
	return func(p *domain.Planner) {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		si := p.SlotIndex(slotID)
		if si < 0 {
			panic("testutil: unknown slot " + slotID)
		}
		p.Courses = append(p.Courses, c)
		p.Slots[si].Courses = append(p.Slots[si].Courses, c.ID)
	}
}

func NewTestPlanner(title string, opts ...PlannerOption) *domain.Planner {
	p := domain.NewPlanner(uuid.NewString(), title, domain.DefaultYears, uuid.NewString)
	now := time.Now().UTC().Truncate(time.Second)
	p.CreatedAt, p.UpdatedAt = now, now
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CourseOption customizes NewTestCourse.
type CourseOption func(*domain.Course)

func WithCredits(n int) CourseOption {
	return func(c *domain.Course) {
		c.Credits = n
	}
}

func WithGE(codes ...string) CourseOption {
	return func(c *domain.Course) {
		c.GE = codes
	}
}

func WithOffered(terms ...domain.Term) CourseOption {
	return func(c *domain.Course) {
		c.QuartersOffered = terms
	}
}

func WithTitle(title string) CourseOption {
	return func(c *domain.Course) {
		c.Title = title
	}
}

// NewTestCourse builds a catalog course from a "DEPT NUM" key.
func NewTestCourse(key string, opts ...CourseOption) domain.Course {
	k, ok := domain.ParseCatalogKey(key)
	if !ok {
		panic("testutil: bad catalog key " + key)
	}
	c := domain.Course{
		DepartmentCode:  k.DepartmentCode,
		Number:          k.Number,
		Title:           "Course " + key,
		Credits:         5,
		QuartersOffered: []domain.Term{domain.TermFall, domain.TermWinter, domain.TermSpring},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func NewTestRecord(key string, opts ...CourseOption) *domain.CatalogRecord {
	return &domain.CatalogRecord{Course: NewTestCourse(key, opts...), Department: "Test Department"}
}

// Leaf builds a course requirement from a "DEPT NUM" key.
func Leaf(key string) domain.CourseRequirement {
	k, ok := domain.ParseCatalogKey(key)
	if !ok {
		panic("testutil: bad catalog key " + key)
	}
	return domain.CourseRequirement{DepartmentCode: k.DepartmentCode, Number: k.Number}
}

// ListOption customizes NewTestList.
type ListOption func(*domain.RequirementList)

func WithAtLeast(n int) ListOption {
	return func(l *domain.RequirementList) {
		l.Binder = domain.BinderAtLeast
		l.AtLeast = n
	}
}

func WithChildren(children ...domain.Requirement) ListOption {
	return func(l *domain.RequirementList) {
		l.Requirements = append(l.Requirements, children...)
	}
}

// NewTestList builds an ALL list with a fresh id.
func NewTestList(title string, opts ...ListOption) *domain.RequirementList {
	l := &domain.RequirementList{ID: uuid.NewString(), Title: title, Binder: domain.BinderAll}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func NewTestProgram(name string, root *domain.RequirementList) *domain.Program {
	now := time.Now().UTC().Truncate(time.Second)
	if root == nil {
		root = NewTestList(name)
	}
	return &domain.Program{
		ID:           uuid.NewString(),
		Name:         name,
		CatalogYear:  "2024-2025",
		Type:         domain.ProgramMajor,
		Requirements: root,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
