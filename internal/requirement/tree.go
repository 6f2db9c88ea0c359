// Package requirement holds the read and copy-on-write edit operations over a
// program's requirement tree, plus the satisfaction evaluator.
//
// Every edit rebuilds only the lists on the path from the root to the edited
// list. Lists off that path are shared with the previous tree, so callers must
// never modify a list reachable from a root they have handed out.
package requirement

import (
	"fmt"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// DefaultListTitle is the placeholder title given to new lists.
const DefaultListTitle = "New Requirement List"

// NewList returns an empty ALL list with the placeholder title.
func NewList(id string) *domain.RequirementList {
	return &domain.RequirementList{
		ID:     id,
		Title:  DefaultListTitle,
		Binder: domain.BinderAll,
	}
}

// Find returns the first list with the given id in depth-first pre-order.
func Find(root *domain.RequirementList, id string) *domain.RequirementList {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, child := range root.Requirements {
		if list, ok := child.(*domain.RequirementList); ok {
			if found := Find(list, id); found != nil {
				return found
			}
		}
	}
	return nil
}

// FindParent returns the list whose direct children include the list with the
// given id. The root has no parent.
func FindParent(root *domain.RequirementList, id string) *domain.RequirementList {
	if root == nil || root.ID == id {
		return nil
	}
	for _, child := range root.Requirements {
		list, ok := child.(*domain.RequirementList)
		if !ok {
			continue
		}
		if list.ID == id {
			return root
		}
		if found := FindParent(list, id); found != nil {
			return found
		}
	}
	return nil
}

// Lists returns every list in the tree in depth-first pre-order.
func Lists(root *domain.RequirementList) []*domain.RequirementList {
	if root == nil {
		return nil
	}
	out := []*domain.RequirementList{root}
	for _, child := range root.Requirements {
		if list, ok := child.(*domain.RequirementList); ok {
			out = append(out, Lists(list)...)
		}
	}
	return out
}

// rewrite replaces the first list matching id with fn(list) and path-copies
// its ancestors. found is false when no list matched; root is then returned
// as is.
func rewrite(
	root *domain.RequirementList,
	id string,
	fn func(*domain.RequirementList) *domain.RequirementList,
) (*domain.RequirementList, bool) {
	if root.ID == id {
		return fn(root), true
	}
	for i, child := range root.Requirements {
		list, ok := child.(*domain.RequirementList)
		if !ok {
			continue
		}
		if updated, found := rewrite(list, id, fn); found {
			children := make([]domain.Requirement, len(root.Requirements))
			copy(children, root.Requirements)
			children[i] = updated
			return root.WithRequirements(children), true
		}
	}
	return root, false
}

// ReplaceList swaps the list carrying list.ID for list. Unknown ids leave the
// tree unchanged.
func ReplaceList(root, list *domain.RequirementList) *domain.RequirementList {
	if root == nil || list == nil {
		return root
	}
	out, _ := rewrite(root, list.ID, func(*domain.RequirementList) *domain.RequirementList {
		return list
	})
	return out
}

// AddList appends child as the last requirement of the list at parentID. A
// missing parent is a no-op.
func AddList(root *domain.RequirementList, parentID string, child *domain.RequirementList) *domain.RequirementList {
	if root == nil || child == nil {
		return root
	}
	out, _ := rewrite(root, parentID, func(parent *domain.RequirementList) *domain.RequirementList {
		children := make([]domain.Requirement, 0, len(parent.Requirements)+1)
		children = append(children, parent.Requirements...)
		children = append(children, child)
		return parent.WithRequirements(children)
	})
	return out
}

// RemoveList drops the list with the given id from its parent. Removing the
// root or an unknown id is a no-op.
func RemoveList(root *domain.RequirementList, id string) *domain.RequirementList {
	parent := FindParent(root, id)
	if parent == nil {
		return root
	}
	out, _ := rewrite(root, parent.ID, func(p *domain.RequirementList) *domain.RequirementList {
		children := make([]domain.Requirement, 0, len(p.Requirements))
		for _, child := range p.Requirements {
			if list, ok := child.(*domain.RequirementList); ok && list.ID == id {
				continue
			}
			children = append(children, child)
		}
		return p.WithRequirements(children)
	})
	return out
}

// Patch carries the fields of an UpdateList call. Nil fields are left as they
// are.
type Patch struct {
	Title        *string
	Notes        *string
	Binder       *domain.Binder
	AtLeast      *int
	Requirements []domain.Requirement
}

// UpdateList applies patch to the list with the given id. An unknown id is a
// no-op; a patch that breaks the AT_LEAST count rule is rejected.
func UpdateList(root *domain.RequirementList, id string, patch Patch) (*domain.RequirementList, error) {
	if root == nil {
		return nil, nil
	}
	target := Find(root, id)
	if target == nil {
		return root, nil
	}

	updated := target.WithRequirements(target.Requirements)
	updated.Title = domain.StrFromPtrWithDefault(target.Title, patch.Title)
	updated.Notes = domain.StrFromPtrWithDefault(target.Notes, patch.Notes)
	if patch.Binder != nil {
		if !domain.ValidBinders[string(*patch.Binder)] {
			return nil, fmt.Errorf("list %s: unknown binder %q: %w", id, *patch.Binder, domain.ErrInvalidRequirement)
		}
		updated.Binder = *patch.Binder
	}
	updated.AtLeast = domain.IntFromPtrWithDefault(target.AtLeast, patch.AtLeast)
	if patch.Requirements != nil {
		updated.Requirements = append([]domain.Requirement(nil), patch.Requirements...)
	}
	if err := updated.ValidateCount(); err != nil {
		return nil, err
	}

	out, _ := rewrite(root, id, func(*domain.RequirementList) *domain.RequirementList {
		return updated
	})
	return out, nil
}

// Contains reports whether the list directly holds a leaf equal to req.
func Contains(list *domain.RequirementList, req domain.CourseRequirement) bool {
	for _, child := range list.Requirements {
		if leaf, ok := child.(domain.CourseRequirement); ok && leaf.SameAs(req) {
			return true
		}
	}
	return false
}

// Validate checks the AT_LEAST rule and id uniqueness across the whole tree.
func Validate(root *domain.RequirementList) error {
	seen := make(map[string]bool)
	for _, list := range Lists(root) {
		if list.ID == "" {
			return fmt.Errorf("requirement list %q has no id: %w", list.Title, domain.ErrInvalidRequirement)
		}
		if seen[list.ID] {
			return fmt.Errorf("requirement list id %s is used twice: %w", list.ID, domain.ErrInvalidRequirement)
		}
		seen[list.ID] = true
		if err := list.ValidateCount(); err != nil {
			return err
		}
	}
	return nil
}
