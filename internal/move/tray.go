package move

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// MaxTraySize is the number of custom courses the tray holds at once.
const MaxTraySize = 3

var ErrTrayFull = errors.New("custom course tray is full")

// AddToTray puts a new custom course at the front of the tray.
func (e *Engine) AddToTray(tray []domain.Course, c domain.Course) ([]domain.Course, error) {
	if len(tray) >= MaxTraySize {
		return nil, fmt.Errorf("adding %q: %w (max %d)", c.Title, ErrTrayFull, MaxTraySize)
	}
	if strings.TrimSpace(c.Title) == "" {
		return nil, fmt.Errorf("custom course requires a title: %w", ErrMalformedToken)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c = c.Clone()
	c.ID = e.newID()
	c.Labels = nil
	return insertAt(tray, 0, c), nil
}

// RemoveFromTray deletes the tray entry at index.
func RemoveFromTray(tray []domain.Course, index int) ([]domain.Course, error) {
	if index < 0 || index >= len(tray) {
		return nil, fmt.Errorf("custom tray index %d out of range (%d entries): %w", index, len(tray), domain.ErrInvariant)
	}
	return removeAt(tray, index), nil
}

// UpdateCourse returns a planner whose placed course courseID has been passed
// through fn. The catalog slice is copied; fn receives a private clone.
func UpdateCourse(p *domain.Planner, courseID string, fn func(*domain.Course) error) (*domain.Planner, error) {
	ci := p.CourseIndex(courseID)
	if ci < 0 {
		return nil, fmt.Errorf("course %s not in planner %s: %w", courseID, p.ID, domain.ErrInvariant)
	}
	c := p.Courses[ci].Clone()
	if err := fn(&c); err != nil {
		return nil, err
	}
	if c.ID != courseID {
		return nil, fmt.Errorf("course id cannot change from %s to %s: %w", courseID, c.ID, domain.ErrInvariant)
	}
	out := *p
	out.Courses = append([]domain.Course(nil), p.Courses...)
	out.Courses[ci] = c
	return &out, nil
}

// ToggleLabel attaches labelID to the course, or detaches it if present.
func ToggleLabel(p *domain.Planner, courseID, labelID string) (*domain.Planner, error) {
	if _, ok := p.LabelByID(labelID); !ok {
		return nil, fmt.Errorf("label %s not in planner %s: %w", labelID, p.ID, domain.ErrInvariant)
	}
	return UpdateCourse(p, courseID, func(c *domain.Course) error {
		for i, l := range c.Labels {
			if l == labelID {
				c.Labels = removeAt(c.Labels, i)
				return nil
			}
		}
		c.Labels = append(c.Labels, labelID)
		return nil
	})
}

// RenameLabel sets the display name of a planner label.
func RenameLabel(p *domain.Planner, labelID, name string) (*domain.Planner, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) > domain.MaxLabelName {
		return nil, fmt.Errorf("label name longer than %d characters", domain.MaxLabelName)
	}
	for i, l := range p.Labels {
		if l.ID != labelID {
			continue
		}
		out := *p
		out.Labels = append([]domain.Label(nil), p.Labels...)
		out.Labels[i].Name = name
		return &out, nil
	}
	return nil, fmt.Errorf("label %s not in planner %s: %w", labelID, p.ID, domain.ErrInvariant)
}
