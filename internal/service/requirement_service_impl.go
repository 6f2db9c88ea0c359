package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/move"
	"github.com/alexanderramin/degreeplan/internal/repository"
	"github.com/alexanderramin/degreeplan/internal/requirement"
	"github.com/google/uuid"
)

type requirementService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewRequirementService(uow db.UnitOfWork, observers ...UseCaseObserver) RequirementService {
	return &requirementService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// AddList appends a new empty ALL list under parentID. An empty parentID
// means the root list.
func (s *requirementService) AddList(ctx context.Context, programID, parentID, title string) (*domain.RequirementList, error) {
	child := requirement.NewList(uuid.NewString())
	if title != "" {
		child.Title = title
	}
	fields := map[string]any{"list_id": child.ID}
	_, err := s.edit(ctx, "add-requirement-list", programID, fields, func(root *domain.RequirementList) (*domain.RequirementList, error) {
		if parentID == "" {
			parentID = root.ID
		}
		if requirement.Find(root, parentID) == nil {
			return nil, fmt.Errorf("requirement list %s: %w", parentID, repository.ErrNotFound)
		}
		fields["parent_id"] = parentID
		return requirement.AddList(root, parentID, child), nil
	})
	if err != nil {
		return nil, err
	}
	return child, nil
}

func (s *requirementService) RemoveList(ctx context.Context, programID, listID string) error {
	fields := map[string]any{"list_id": listID}
	_, err := s.edit(ctx, "remove-requirement-list", programID, fields, func(root *domain.RequirementList) (*domain.RequirementList, error) {
		if root.ID == listID {
			return nil, fmt.Errorf("the root requirement list cannot be removed")
		}
		if requirement.FindParent(root, listID) == nil {
			return nil, fmt.Errorf("requirement list %s: %w", listID, repository.ErrNotFound)
		}
		return requirement.RemoveList(root, listID), nil
	})
	return err
}

func (s *requirementService) UpdateList(ctx context.Context, programID, listID string, patch RequirementListPatch) (*domain.RequirementList, error) {
	fields := map[string]any{"list_id": listID}
	root, err := s.edit(ctx, "update-requirement-list", programID, fields, func(root *domain.RequirementList) (*domain.RequirementList, error) {
		if requirement.Find(root, listID) == nil {
			return nil, fmt.Errorf("requirement list %s: %w", listID, repository.ErrNotFound)
		}
		return requirement.UpdateList(root, listID, requirement.Patch{
			Title:   patch.Title,
			Notes:   patch.Notes,
			Binder:  patch.Binder,
			AtLeast: patch.AtLeast,
		})
	})
	if err != nil {
		return nil, err
	}
	return requirement.Find(root, listID), nil
}

func (s *requirementService) RemoveRequirement(ctx context.Context, programID, listID string, index int) (*domain.RequirementList, error) {
	fields := map[string]any{"list_id": listID, "index": index}
	root, err := s.edit(ctx, "remove-requirement", programID, fields, func(root *domain.RequirementList) (*domain.RequirementList, error) {
		return move.RemoveRequirement(root, listID, index)
	})
	if err != nil {
		return nil, err
	}
	return requirement.Find(root, listID), nil
}

// edit runs fn against a program's requirement tree inside a transaction and
// saves the new root when it validates.
func (s *requirementService) edit(
	ctx context.Context,
	name, programID string,
	fields map[string]any,
	fn func(*domain.RequirementList) (*domain.RequirementList, error),
) (out *domain.RequirementList, err error) {
	fields["program_id"] = programID
	done := startUseCase(ctx, s.observer, name, fields)
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		programs := repository.NewSQLiteProgramRepo(tx)
		program, err := programs.GetByID(ctx, programID)
		if err != nil {
			return fmt.Errorf("loading program: %w", err)
		}
		if program.Requirements == nil {
			program.Requirements = requirement.NewList(uuid.NewString())
			program.Requirements.Title = program.Name
		}
		next, err := fn(program.Requirements)
		if err != nil {
			return err
		}
		if err := requirement.Validate(next); err != nil {
			return err
		}
		if err := programs.SaveRequirements(ctx, programID, next); err != nil {
			return fmt.Errorf("saving requirements: %w", err)
		}
		out = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
