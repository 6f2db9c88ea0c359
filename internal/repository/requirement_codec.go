package repository

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/requirement"
)

const (
	kindList   = "list"
	kindCourse = "course"
)

// storedRequirement is one node of a serialized requirement tree. Kind names
// the variant explicitly instead of relying on which fields are present.
type storedRequirement struct {
	Kind           string              `json:"kind"`
	ID             string              `json:"id,omitempty"`
	Title          string              `json:"title,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	Binder         string              `json:"binder,omitempty"`
	AtLeast        int                 `json:"atLeast,omitempty"`
	Requirements   []storedRequirement `json:"requirements,omitempty"`
	DepartmentCode string              `json:"departmentCode,omitempty"`
	Number         string              `json:"number,omitempty"`
}

func toStoredRequirement(node domain.Requirement) (storedRequirement, error) {
	switch n := node.(type) {
	case domain.CourseRequirement:
		return storedRequirement{
			Kind:           kindCourse,
			DepartmentCode: n.DepartmentCode,
			Number:         n.Number,
			Title:          n.Title,
		}, nil
	case *domain.RequirementList:
		out := storedRequirement{
			Kind:    kindList,
			ID:      n.ID,
			Title:   n.Title,
			Notes:   n.Notes,
			Binder:  string(n.Binder),
			AtLeast: n.AtLeast,
		}
		for _, child := range n.Requirements {
			sc, err := toStoredRequirement(child)
			if err != nil {
				return storedRequirement{}, err
			}
			out.Requirements = append(out.Requirements, sc)
		}
		return out, nil
	default:
		return storedRequirement{}, fmt.Errorf("unknown requirement node %T", node)
	}
}

func (s storedRequirement) toDomain() (domain.Requirement, error) {
	switch s.Kind {
	case kindCourse:
		return domain.CourseRequirement{DepartmentCode: s.DepartmentCode, Number: s.Number, Title: s.Title}, nil
	case kindList:
		list := &domain.RequirementList{
			ID:      s.ID,
			Title:   s.Title,
			Notes:   s.Notes,
			Binder:  domain.Binder(s.Binder),
			AtLeast: s.AtLeast,
		}
		for _, sc := range s.Requirements {
			child, err := sc.toDomain()
			if err != nil {
				return nil, err
			}
			list.Requirements = append(list.Requirements, child)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unknown requirement kind %q: %w", s.Kind, domain.ErrInvalidRequirement)
	}
}

// EncodeRequirementTree serializes a requirement tree to JSON.
func EncodeRequirementTree(root *domain.RequirementList) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("encoding requirement tree: no root: %w", domain.ErrInvalidRequirement)
	}
	stored, err := toStoredRequirement(root)
	if err != nil {
		return nil, fmt.Errorf("encoding requirement tree: %w", err)
	}
	return json.Marshal(stored)
}

// DecodeRequirementTree parses and validates a tree written by
// EncodeRequirementTree.
func DecodeRequirementTree(data []byte) (*domain.RequirementList, error) {
	var stored storedRequirement
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decoding requirement tree: %w", err)
	}
	if stored.Kind != kindList {
		return nil, fmt.Errorf("requirement tree root must be a list, got %q: %w", stored.Kind, domain.ErrInvalidRequirement)
	}
	node, err := stored.toDomain()
	if err != nil {
		return nil, err
	}
	root := node.(*domain.RequirementList)
	if err := requirement.Validate(root); err != nil {
		return nil, err
	}
	return root, nil
}
