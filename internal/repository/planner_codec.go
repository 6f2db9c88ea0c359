package repository

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// On disk every quarter embeds its full course objects. The flat catalog is
// rebuilt from the quarters on load, so catalog entries that no quarter
// references are not persisted.
type storedPlanner struct {
	Years    int             `json:"years"`
	Quarters []storedQuarter `json:"quarters"`
	Labels   []storedLabel   `json:"labels"`
}

type storedQuarter struct {
	Title   string         `json:"title"`
	Courses []storedCourse `json:"courses"`
}

type storedCourse struct {
	ID              string   `json:"id"`
	DepartmentCode  string   `json:"departmentCode"`
	Number          string   `json:"number"`
	Title           string   `json:"title"`
	Credits         int      `json:"credits"`
	Description     string   `json:"description,omitempty"`
	GE              []string `json:"ge"`
	QuartersOffered []string `json:"quartersOffered"`
	Labels          []string `json:"labels"`
}

type storedLabel struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func toStoredCourse(c domain.Course) storedCourse {
	terms := make([]string, 0, len(c.QuartersOffered))
	for _, t := range c.QuartersOffered {
		terms = append(terms, string(t))
	}
	return storedCourse{
		ID:              c.ID,
		DepartmentCode:  c.DepartmentCode,
		Number:          c.Number,
		Title:           domain.TruncateTitle(c.Title, domain.MaxStoredCourseTitle),
		Credits:         c.Credits,
		Description:     c.Description,
		GE:              nonNil(c.GE),
		QuartersOffered: terms,
		Labels:          nonNil(c.Labels),
	}
}

func (s storedCourse) toDomain() (domain.Course, error) {
	c := domain.Course{
		ID:             s.ID,
		DepartmentCode: s.DepartmentCode,
		Number:         s.Number,
		Title:          s.Title,
		Credits:        s.Credits,
		Description:    s.Description,
		GE:             s.GE,
		Labels:         s.Labels,
	}
	for _, t := range s.QuartersOffered {
		if !domain.ValidTerms[t] {
			return domain.Course{}, fmt.Errorf("course %s: unknown term %q", s.ID, t)
		}
		c.QuartersOffered = append(c.QuartersOffered, domain.Term(t))
	}
	return c, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// encodePlanner serializes slots, labels and year count. Id, title and notes
// live in their own columns.
func encodePlanner(p *domain.Planner) (string, error) {
	sp := storedPlanner{
		Years:    p.Years,
		Quarters: make([]storedQuarter, 0, len(p.Slots)),
		Labels:   make([]storedLabel, 0, len(p.Labels)),
	}
	for _, slot := range p.Slots {
		courses, err := p.CoursesInSlot(slot.ID())
		if err != nil {
			return "", err
		}
		q := storedQuarter{Title: slot.ID(), Courses: make([]storedCourse, 0, len(courses))}
		for _, c := range courses {
			q.Courses = append(q.Courses, toStoredCourse(c))
		}
		sp.Quarters = append(sp.Quarters, q)
	}
	for _, l := range p.Labels {
		sp.Labels = append(sp.Labels, storedLabel{ID: l.ID, Name: l.Name, Color: string(l.Color)})
	}
	data, err := json.Marshal(sp)
	if err != nil {
		return "", fmt.Errorf("encoding planner %s: %w", p.ID, err)
	}
	return string(data), nil
}

// decodePlanner fills the slots, catalog, labels and years of p from data.
func decodePlanner(p *domain.Planner, data string) error {
	var sp storedPlanner
	if err := json.Unmarshal([]byte(data), &sp); err != nil {
		return fmt.Errorf("decoding planner %s: %w", p.ID, err)
	}
	if sp.Years <= 0 {
		sp.Years = domain.DefaultYears
	}
	p.Years = sp.Years
	p.Slots = domain.BuildSlots(sp.Years)
	p.Courses = nil

	for _, q := range sp.Quarters {
		si := p.SlotIndex(q.Title)
		if si < 0 {
			return fmt.Errorf("planner %s: quarter %q outside %d years: %w", p.ID, q.Title, sp.Years, domain.ErrInvariant)
		}
		for _, sc := range q.Courses {
			c, err := sc.toDomain()
			if err != nil {
				return fmt.Errorf("planner %s: %w", p.ID, err)
			}
			p.Courses = append(p.Courses, c)
			p.Slots[si].Courses = append(p.Slots[si].Courses, c.ID)
		}
	}

	p.Labels = make([]domain.Label, 0, len(sp.Labels))
	for _, l := range sp.Labels {
		p.Labels = append(p.Labels, domain.Label{ID: l.ID, Name: l.Name, Color: domain.LabelColor(l.Color)})
	}
	return p.Validate()
}

func encodeTray(tray []domain.Course) (string, error) {
	stored := make([]storedCourse, 0, len(tray))
	for _, c := range tray {
		stored = append(stored, toStoredCourse(c))
	}
	return jsonColumn(stored)
}

func decodeTray(data string) ([]domain.Course, error) {
	stored, err := parseJSONColumn[storedCourse](data, "tray")
	if err != nil {
		return nil, err
	}
	tray := make([]domain.Course, 0, len(stored))
	for _, sc := range stored {
		c, err := sc.toDomain()
		if err != nil {
			return nil, err
		}
		tray = append(tray, c)
	}
	return tray, nil
}
