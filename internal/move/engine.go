// Package move relocates, inserts and removes course references across term
// slots, the custom-course tray and requirement lists.
//
// The engine never edits its input. Every operation returns a new Store that
// shares untouched slots, courses and requirement lists with the old one.
package move

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/requirement"
	"github.com/google/uuid"
)

// ErrUnsupportedMove is returned for source/destination pairs the engine does
// not handle, such as dropping onto search results.
var ErrUnsupportedMove = errors.New("unsupported move")

// Catalog resolves catalog keys to course records.
type Catalog interface {
	LookupCourse(ctx context.Context, key domain.CatalogKey) (*domain.Course, error)
}

// Store is the state a move operates on: one planner, the custom tray and the
// requirement tree of the program being edited. Requirements may be nil when
// no program is involved.
type Store struct {
	Planner      *domain.Planner
	Tray         []domain.Course
	Requirements *domain.RequirementList
}

// Engine applies move instructions to a Store.
type Engine struct {
	catalog Catalog
	newID   func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator overrides the uuid generator used for new placed courses.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// NewEngine creates an Engine. catalog may be nil when every token carries a
// full course payload.
func NewEngine(catalog Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HandleMove applies one drag. Moves whose source equals their destination
// and drops that would duplicate a course are absorbed: the input store is
// returned with a nil error.
func (e *Engine) HandleMove(ctx context.Context, s Store, in Instruction) (Store, error) {
	src, dst := in.Source, in.Destination
	if src == dst {
		return s, nil
	}
	if dst.Index < 0 {
		return s, fmt.Errorf("destination index %d in %s: %w", dst.Index, dst.Container, domain.ErrInvariant)
	}

	switch dst.Container.Kind {
	case KindTermSlot:
		return e.dropOnSlot(ctx, s, in)
	case KindRequirementList:
		return e.dropOnList(ctx, s, in)
	case KindTray:
		if src.Container == dst.Container {
			tray, err := reorder(s.Tray, src.Index, dst.Index, "custom tray")
			if err != nil {
				return s, err
			}
			s.Tray = tray
			return s, nil
		}
	}
	return s, fmt.Errorf("%s -> %s: %w", src.Container.Kind, dst.Container.Kind, ErrUnsupportedMove)
}

func (e *Engine) dropOnSlot(ctx context.Context, s Store, in Instruction) (Store, error) {
	if s.Planner == nil {
		return s, fmt.Errorf("no planner loaded: %w", domain.ErrInvariant)
	}
	src, dst := in.Source, in.Destination

	switch src.Container.Kind {
	case KindTermSlot:
		if src.Container.ID == dst.Container.ID {
			p, err := reorderSlot(s.Planner, src.Container.ID, src.Index, dst.Index)
			if err != nil {
				return s, err
			}
			s.Planner = p
			return s, nil
		}
		p, err := moveBetweenSlots(s.Planner, in)
		if err != nil {
			return s, err
		}
		s.Planner = p
		return s, nil

	case KindSearch, KindTray:
		course, err := e.courseFromSource(ctx, s, in)
		if err != nil {
			return s, err
		}
		p, placed, err := e.place(s.Planner, course, dst.Container.ID, dst.Index)
		if err != nil {
			return s, err
		}
		if !placed {
			return s, nil
		}
		s.Planner = p
		if src.Container.Kind == KindTray {
			s.Tray = removeAt(s.Tray, src.Index)
		}
		return s, nil
	}

	return s, fmt.Errorf("%s -> term slot: %w", src.Container.Kind, ErrUnsupportedMove)
}

func (e *Engine) dropOnList(ctx context.Context, s Store, in Instruction) (Store, error) {
	if s.Requirements == nil {
		return s, fmt.Errorf("no requirement tree loaded: %w", domain.ErrInvariant)
	}
	src, dst := in.Source, in.Destination

	var leaf domain.CourseRequirement
	switch src.Container.Kind {
	case KindRequirementList:
		root, err := moveBetweenLists(s.Requirements, src, dst)
		if err != nil {
			return s, err
		}
		s.Requirements = root
		return s, nil

	case KindSearch, KindTray:
		course, err := e.courseFromSource(ctx, s, in)
		if err != nil {
			return s, err
		}
		leaf = domain.RequirementFromCourse(course)

	case KindTermSlot:
		if s.Planner == nil {
			return s, fmt.Errorf("no planner loaded: %w", domain.ErrInvariant)
		}
		course, err := courseAt(s.Planner, src.Container.ID, src.Index, in.Token)
		if err != nil {
			return s, err
		}
		leaf = domain.RequirementFromCourse(course)

	default:
		return s, fmt.Errorf("%s -> requirement list: %w", src.Container.Kind, ErrUnsupportedMove)
	}

	root, err := insertLeaf(s.Requirements, dst.Container.ID, dst.Index, leaf)
	if err != nil {
		return s, err
	}
	s.Requirements = root
	return s, nil
}

// courseFromSource materializes the dragged course for search and tray drags.
func (e *Engine) courseFromSource(ctx context.Context, s Store, in Instruction) (domain.Course, error) {
	src := in.Source
	if src.Container.Kind == KindTray {
		if src.Index < 0 || src.Index >= len(s.Tray) {
			return domain.Course{}, fmt.Errorf("custom tray index %d out of range (%d entries): %w",
				src.Index, len(s.Tray), domain.ErrInvariant)
		}
		entry := s.Tray[src.Index]
		if in.Token == "" {
			c := entry.Clone()
			c.ID = ""
			return c, nil
		}
		c, err := DecodeToken(in.Token)
		if err != nil {
			return domain.Course{}, err
		}
		if c.Key() != entry.Key() || c.Title != entry.Title {
			return domain.Course{}, fmt.Errorf("token for %q does not match tray entry %q at index %d: %w",
				c.DisplayName(), entry.DisplayName(), src.Index, domain.ErrInvariant)
		}
		return c, nil
	}
	return e.decode(ctx, in.Token)
}

// decode parses a token and completes key-only payloads from the catalog.
func (e *Engine) decode(ctx context.Context, token string) (domain.Course, error) {
	c, err := DecodeToken(token)
	if err != nil {
		return domain.Course{}, err
	}
	if c.Title != "" || c.Key().IsZero() {
		return c, nil
	}
	if e.catalog == nil {
		return domain.Course{}, fmt.Errorf("token for %s carries only a catalog key and no catalog is configured: %w",
			c.Key(), ErrMalformedToken)
	}
	found, err := e.catalog.LookupCourse(ctx, c.Key())
	if err != nil {
		return domain.Course{}, fmt.Errorf("looking up %s: %w", c.Key(), err)
	}
	full := found.Clone()
	full.ID = ""
	full.Labels = nil
	return full, nil
}

// place inserts a brand-new placed course into a slot. placed is false when
// the slot already holds the same catalog course.
func (e *Engine) place(p *domain.Planner, c domain.Course, slotID string, index int) (*domain.Planner, bool, error) {
	si := p.SlotIndex(slotID)
	if si < 0 {
		return nil, false, fmt.Errorf("term slot %s does not exist: %w", slotID, domain.ErrInvariant)
	}
	if !c.IsCustom() && slotHasKey(p, si, c.Key()) {
		return p, false, nil
	}

	c = c.Clone()
	c.ID = e.newID()
	c.Title = domain.TruncateTitle(c.Title, domain.MaxStoredCourseTitle)
	c.Labels = nil

	out := withSlots(p)
	out.Courses = append(append(make([]domain.Course, 0, len(p.Courses)+1), p.Courses...), c)
	out.Slots[si].Courses = insertAt(p.Slots[si].Courses, index, c.ID)
	return out, true, nil
}

// RemoveCourse deletes the placed course at index from a slot and from the
// planner catalog.
func RemoveCourse(p *domain.Planner, slotID string, index int) (*domain.Planner, error) {
	si := p.SlotIndex(slotID)
	if si < 0 {
		return nil, fmt.Errorf("term slot %s does not exist: %w", slotID, domain.ErrInvariant)
	}
	ids := p.Slots[si].Courses
	if index < 0 || index >= len(ids) {
		return nil, fmt.Errorf("index %d out of range in %s (%d courses): %w", index, slotID, len(ids), domain.ErrInvariant)
	}
	id := ids[index]
	ci := p.CourseIndex(id)
	if ci < 0 {
		return nil, fmt.Errorf("course %s in %s missing from catalog: %w", id, slotID, domain.ErrInvariant)
	}

	out := withSlots(p)
	out.Slots[si].Courses = removeAt(ids, index)
	out.Courses = removeAt(p.Courses, ci)
	return out, nil
}

// RemoveRequirement deletes the child at index from the list with listID.
func RemoveRequirement(root *domain.RequirementList, listID string, index int) (*domain.RequirementList, error) {
	list := requirement.Find(root, listID)
	if list == nil {
		return nil, fmt.Errorf("requirement list %s does not exist: %w", listID, domain.ErrInvariant)
	}
	if index < 0 || index >= len(list.Requirements) {
		return nil, fmt.Errorf("index %d out of range in list %s (%d requirements): %w",
			index, listID, len(list.Requirements), domain.ErrInvariant)
	}
	return requirement.ReplaceList(root, list.WithRequirements(removeAt(list.Requirements, index))), nil
}
