package move

import (
	"fmt"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/requirement"
)

// insertAt returns a new slice with v at index i. Indexes past the end append.
func insertAt[T any](s []T, i int, v T) []T {
	if i > len(s) {
		i = len(s)
	}
	out := make([]T, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, v)
	return append(out, s[i:]...)
}

// removeAt returns a new slice without the element at i.
func removeAt[T any](s []T, i int) []T {
	out := make([]T, 0, len(s))
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

func reorder[T any](s []T, from, to int, where string) ([]T, error) {
	if from < 0 || from >= len(s) {
		return nil, fmt.Errorf("index %d out of range in %s (%d entries): %w", from, where, len(s), domain.ErrInvariant)
	}
	v := s[from]
	return insertAt(removeAt(s, from), to, v), nil
}

// withSlots copies the planner header and its slot slice. Slot course slices
// and the catalog are still shared and must be replaced, not edited.
func withSlots(p *domain.Planner) *domain.Planner {
	out := *p
	out.Slots = append([]domain.TermSlot(nil), p.Slots...)
	return &out
}

func slotIndex(p *domain.Planner, slotID string) (int, error) {
	si := p.SlotIndex(slotID)
	if si < 0 {
		return -1, fmt.Errorf("term slot %s does not exist: %w", slotID, domain.ErrInvariant)
	}
	return si, nil
}

// idAt returns the course id at index, checking it against a non-empty token.
func idAt(p *domain.Planner, si, index int, token string) (string, error) {
	slot := p.Slots[si]
	if index < 0 || index >= len(slot.Courses) {
		return "", fmt.Errorf("index %d out of range in %s (%d courses): %w",
			index, slot.ID(), len(slot.Courses), domain.ErrInvariant)
	}
	id := slot.Courses[index]
	if token != "" && token != id {
		return "", fmt.Errorf("token %s does not match course %s at %s[%d]: %w",
			token, id, slot.ID(), index, domain.ErrInvariant)
	}
	return id, nil
}

func reorderSlot(p *domain.Planner, slotID string, from, to int) (*domain.Planner, error) {
	si, err := slotIndex(p, slotID)
	if err != nil {
		return nil, err
	}
	ids, err := reorder(p.Slots[si].Courses, from, to, slotID)
	if err != nil {
		return nil, err
	}
	out := withSlots(p)
	out.Slots[si].Courses = ids
	return out, nil
}

// moveBetweenSlots moves a placed course reference to another slot. The
// planner is returned unchanged when the destination already holds the same
// catalog course.
func moveBetweenSlots(p *domain.Planner, in Instruction) (*domain.Planner, error) {
	si, err := slotIndex(p, in.Source.Container.ID)
	if err != nil {
		return nil, err
	}
	di, err := slotIndex(p, in.Destination.Container.ID)
	if err != nil {
		return nil, err
	}
	id, err := idAt(p, si, in.Source.Index, in.Token)
	if err != nil {
		return nil, err
	}
	course, ok := p.CourseByID(id)
	if !ok {
		return nil, fmt.Errorf("course %s missing from catalog: %w", id, domain.ErrInvariant)
	}
	// A term holds a catalog course at most once.
	if !course.IsCustom() && slotHasKey(p, di, course.Key()) {
		return p, nil
	}

	out := withSlots(p)
	out.Slots[si].Courses = removeAt(p.Slots[si].Courses, in.Source.Index)
	out.Slots[di].Courses = insertAt(p.Slots[di].Courses, in.Destination.Index, id)
	return out, nil
}

// courseAt resolves the placed course at a slot position.
func courseAt(p *domain.Planner, slotID string, index int, token string) (domain.Course, error) {
	si, err := slotIndex(p, slotID)
	if err != nil {
		return domain.Course{}, err
	}
	id, err := idAt(p, si, index, token)
	if err != nil {
		return domain.Course{}, err
	}
	c, ok := p.CourseByID(id)
	if !ok {
		return domain.Course{}, fmt.Errorf("course %s in %s missing from catalog: %w", id, slotID, domain.ErrInvariant)
	}
	return c, nil
}

func slotHasKey(p *domain.Planner, si int, key domain.CatalogKey) bool {
	for _, id := range p.Slots[si].Courses {
		if c, ok := p.CourseByID(id); ok && !c.IsCustom() && c.Key() == key {
			return true
		}
	}
	return false
}

func findList(root *domain.RequirementList, id string) (*domain.RequirementList, error) {
	list := requirement.Find(root, id)
	if list == nil {
		return nil, fmt.Errorf("requirement list %s does not exist: %w", id, domain.ErrInvariant)
	}
	return list, nil
}

// insertLeaf adds leaf to a list unless the list already holds it.
func insertLeaf(root *domain.RequirementList, listID string, index int, leaf domain.CourseRequirement) (*domain.RequirementList, error) {
	list, err := findList(root, listID)
	if err != nil {
		return nil, err
	}
	if requirement.Contains(list, leaf) {
		return root, nil
	}
	return requirement.ReplaceList(root, list.WithRequirements(insertAt(list.Requirements, index, domain.Requirement(leaf)))), nil
}

func moveBetweenLists(root *domain.RequirementList, src, dst Location) (*domain.RequirementList, error) {
	from, err := findList(root, src.Container.ID)
	if err != nil {
		return nil, err
	}
	to, err := findList(root, dst.Container.ID)
	if err != nil {
		return nil, err
	}
	where := "list " + from.ID
	if from.ID == to.ID {
		children, err := reorder(from.Requirements, src.Index, dst.Index, where)
		if err != nil {
			return nil, err
		}
		return requirement.ReplaceList(root, from.WithRequirements(children)), nil
	}

	if src.Index < 0 || src.Index >= len(from.Requirements) {
		return nil, fmt.Errorf("index %d out of range in %s (%d requirements): %w",
			src.Index, where, len(from.Requirements), domain.ErrInvariant)
	}
	leaf, ok := from.Requirements[src.Index].(domain.CourseRequirement)
	if !ok {
		return nil, fmt.Errorf("moving a nested list between lists: %w", ErrUnsupportedMove)
	}
	if requirement.Contains(to, leaf) {
		return root, nil
	}

	out := requirement.ReplaceList(root, from.WithRequirements(removeAt(from.Requirements, src.Index)))
	// The destination may sit below the source, so look it up again in the new tree.
	to = requirement.Find(out, dst.Container.ID)
	return requirement.ReplaceList(out, to.WithRequirements(insertAt(to.Requirements, dst.Index, domain.Requirement(leaf)))), nil
}
