package domain

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultYears is the length of a freshly created planner.
const DefaultYears = 4

const slotIDPrefix = "quarter-"

// TermSlot is one academic term of a planner. Courses holds placed-course ids
// in display order; the courses themselves live in the planner's catalog.
type TermSlot struct {
	Year    int
	Term    Term
	Courses []string
}

// SlotID formats the stable identifier of a term slot, e.g. "quarter-0-Fall".
func SlotID(year int, term Term) string {
	return slotIDPrefix + strconv.Itoa(year) + "-" + string(term)
}

func (s TermSlot) ID() string {
	return SlotID(s.Year, s.Term)
}

// ParseSlotID splits a slot identifier into its year index and term.
func ParseSlotID(id string) (int, Term, bool) {
	rest, ok := strings.CutPrefix(id, slotIDPrefix)
	if !ok {
		return 0, "", false
	}
	yearStr, termStr, ok := strings.Cut(rest, "-")
	if !ok || !ValidTerms[termStr] {
		return 0, "", false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 0 {
		return 0, "", false
	}
	return year, Term(termStr), true
}

// Planner is a student's multi-year schedule.
//
// Every id referenced by a slot exists exactly once in Courses, and a course
// id appears in at most one slot position. Planners are treated as immutable
// values; the move engine returns new planners instead of editing in place.
type Planner struct {
	ID        string
	Title     string
	Years     int
	Slots     []TermSlot
	Courses   []Course
	Labels    []Label
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BuildSlots returns years × 4 empty term slots in calendar order.
func BuildSlots(years int) []TermSlot {
	slots := make([]TermSlot, 0, years*len(Terms))
	for y := 0; y < years; y++ {
		for _, t := range Terms {
			slots = append(slots, TermSlot{Year: y, Term: t})
		}
	}
	return slots
}

// NewPlanner returns an empty planner with default labels.
func NewPlanner(id, title string, years int, newID func() string) *Planner {
	if years <= 0 {
		years = DefaultYears
	}
	now := time.Now().UTC()
	return &Planner{
		ID:        id,
		Title:     CoalesceStr(strings.TrimSpace(title), "Planner"),
		Years:     years,
		Slots:     BuildSlots(years),
		Labels:    DefaultLabels(newID),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SlotIndex returns the position of the slot with the given id, or -1.
func (p *Planner) SlotIndex(slotID string) int {
	for i, s := range p.Slots {
		if s.ID() == slotID {
			return i
		}
	}
	return -1
}

// CourseIndex returns the catalog position of the placed course, or -1.
func (p *Planner) CourseIndex(courseID string) int {
	for i, c := range p.Courses {
		if c.ID == courseID {
			return i
		}
	}
	return -1
}

// CourseByID looks a placed course up in the planner catalog.
func (p *Planner) CourseByID(courseID string) (Course, bool) {
	if i := p.CourseIndex(courseID); i >= 0 {
		return p.Courses[i], true
	}
	return Course{}, false
}

// LabelByID looks a label up by id.
func (p *Planner) LabelByID(labelID string) (Label, bool) {
	for _, l := range p.Labels {
		if l.ID == labelID {
			return l, true
		}
	}
	return Label{}, false
}

// CoursesInSlot resolves the slot's course ids through the catalog. A missing
// slot or catalog entry is an invariant violation.
func (p *Planner) CoursesInSlot(slotID string) ([]Course, error) {
	idx := p.SlotIndex(slotID)
	if idx < 0 {
		return nil, fmt.Errorf("term slot %s does not exist: %w", slotID, ErrInvariant)
	}
	return p.resolve(p.Slots[idx])
}

func (p *Planner) resolve(slot TermSlot) ([]Course, error) {
	courses := make([]Course, 0, len(slot.Courses))
	for _, id := range slot.Courses {
		c, ok := p.CourseByID(id)
		if !ok {
			return nil, fmt.Errorf("course %s in %s missing from catalog: %w", id, slot.ID(), ErrInvariant)
		}
		courses = append(courses, c)
	}
	return courses, nil
}

// ScheduledCourses returns every course referenced by a slot, in slot order.
func (p *Planner) ScheduledCourses() ([]Course, error) {
	var all []Course
	for _, s := range p.Slots {
		courses, err := p.resolve(s)
		if err != nil {
			return nil, err
		}
		all = append(all, courses...)
	}
	return all, nil
}

// SlotOf returns the id of the slot holding courseID.
func (p *Planner) SlotOf(courseID string) (string, bool) {
	for _, s := range p.Slots {
		for _, id := range s.Courses {
			if id == courseID {
				return s.ID(), true
			}
		}
	}
	return "", false
}

// GeneralEducationSatisfied returns the sorted set of GE codes carried by the
// planner's courses.
func (p *Planner) GeneralEducationSatisfied() []string {
	set := make(map[string]bool)
	for _, c := range p.Courses {
		for _, ge := range c.GE {
			set[ge] = true
		}
	}
	out := make([]string, 0, len(set))
	for ge := range set {
		out = append(out, ge)
	}
	sort.Strings(out)
	return out
}

// Validate checks that slots and the course catalog agree.
func (p *Planner) Validate() error {
	catalog := make(map[string]int, len(p.Courses))
	for _, c := range p.Courses {
		catalog[c.ID]++
	}
	seen := make(map[string]string)
	for _, s := range p.Slots {
		for _, id := range s.Courses {
			if catalog[id] != 1 {
				return fmt.Errorf("course %s in %s appears %d times in catalog: %w", id, s.ID(), catalog[id], ErrInvariant)
			}
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("course %s scheduled in both %s and %s: %w", id, prev, s.ID(), ErrInvariant)
			}
			seen[id] = s.ID()
		}
	}
	return nil
}

// Clone returns a deep copy of the planner.
func (p *Planner) Clone() *Planner {
	out := *p
	out.Slots = make([]TermSlot, len(p.Slots))
	for i, s := range p.Slots {
		s.Courses = slices.Clone(s.Courses)
		out.Slots[i] = s
	}
	out.Courses = slices.Clone(p.Courses)
	for i, c := range out.Courses {
		out.Courses[i] = c.Clone()
	}
	out.Labels = slices.Clone(p.Labels)
	return &out
}

// TotalCredits sums credits over distinct courses. Courses are considered the
// same when department, number, title and credits all match, so a course that
// is visible twice is only counted once.
func TotalCredits(courses []Course) int {
	type creditKey struct {
		dept, num, title string
		credits          int
	}
	seen := make(map[creditKey]bool, len(courses))
	total := 0
	for _, c := range courses {
		k := creditKey{c.DepartmentCode, c.Number, c.Title, c.Credits}
		if seen[k] {
			continue
		}
		seen[k] = true
		total += c.Credits
	}
	return total
}
