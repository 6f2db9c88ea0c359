package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/move"
	"github.com/alexanderramin/degreeplan/internal/repository"
	"github.com/google/uuid"
)

type plannerService struct {
	planners repository.PlannerRepo
	uow      db.UnitOfWork
	engine   *move.Engine
	observer UseCaseObserver
}

func NewPlannerService(planners repository.PlannerRepo, uow db.UnitOfWork, observers ...UseCaseObserver) PlannerService {
	return &plannerService{
		planners: planners,
		uow:      uow,
		engine:   move.NewEngine(nil),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *plannerService) Create(ctx context.Context, title string, years int) (p *domain.Planner, err error) {
	fields := map[string]any{"years": years}
	done := startUseCase(ctx, s.observer, "create-planner", fields)
	defer func() { done(err) }()

	p = domain.NewPlanner(uuid.NewString(), title, years, uuid.NewString)
	fields["planner_id"] = p.ID
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLitePlannerRepo(tx).Create(ctx, p); err != nil {
			return fmt.Errorf("creating planner: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *plannerService) GetByID(ctx context.Context, id string) (*domain.Planner, error) {
	return s.planners.GetByID(ctx, id)
}

func (s *plannerService) List(ctx context.Context) ([]*domain.Planner, error) {
	return s.planners.List(ctx)
}

func (s *plannerService) Update(ctx context.Context, id string, patch PlannerPatch) (*domain.Planner, error) {
	return s.mutate(ctx, "update-planner", id, nil, func(p *domain.Planner) (*domain.Planner, error) {
		out := *p
		if patch.Title != nil {
			title := strings.TrimSpace(*patch.Title)
			if title == "" {
				return nil, fmt.Errorf("planner title must not be empty")
			}
			out.Title = title
		}
		if patch.Notes != nil {
			out.Notes = *patch.Notes
		}
		return &out, nil
	})
}

func (s *plannerService) Delete(ctx context.Context, id string) (err error) {
	done := startUseCase(ctx, s.observer, "delete-planner", map[string]any{"planner_id": id})
	defer func() { done(err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLitePlannerRepo(tx).Delete(ctx, id)
	})
}

func (s *plannerService) RemoveCourse(ctx context.Context, plannerID, slotID string, index int) (*domain.Planner, error) {
	fields := map[string]any{"slot": slotID, "index": index}
	return s.mutate(ctx, "remove-course", plannerID, fields, func(p *domain.Planner) (*domain.Planner, error) {
		return move.RemoveCourse(p, slotID, index)
	})
}

func (s *plannerService) UpdateCourse(ctx context.Context, plannerID, courseID string, patch CoursePatch) (*domain.Planner, error) {
	fields := map[string]any{"course_id": courseID}
	return s.mutate(ctx, "update-course", plannerID, fields, func(p *domain.Planner) (*domain.Planner, error) {
		return move.UpdateCourse(p, courseID, func(c *domain.Course) error {
			if patch.Title != nil {
				title := strings.TrimSpace(*patch.Title)
				if title == "" {
					return fmt.Errorf("course title must not be empty")
				}
				c.Title = domain.TruncateTitle(title, domain.MaxStoredCourseTitle)
			}
			if patch.Credits != nil {
				if *patch.Credits < 0 {
					return fmt.Errorf("credits must not be negative")
				}
				c.Credits = *patch.Credits
			}
			if patch.Description != nil {
				c.Description = *patch.Description
			}
			return nil
		})
	})
}

func (s *plannerService) ToggleLabel(ctx context.Context, plannerID, courseID, labelID string) (*domain.Planner, error) {
	fields := map[string]any{"course_id": courseID, "label_id": labelID}
	return s.mutate(ctx, "toggle-label", plannerID, fields, func(p *domain.Planner) (*domain.Planner, error) {
		return move.ToggleLabel(p, courseID, labelID)
	})
}

func (s *plannerService) RenameLabel(ctx context.Context, plannerID, labelID, name string) (*domain.Planner, error) {
	fields := map[string]any{"label_id": labelID}
	return s.mutate(ctx, "rename-label", plannerID, fields, func(p *domain.Planner) (*domain.Planner, error) {
		return move.RenameLabel(p, labelID, name)
	})
}

func (s *plannerService) Tray(ctx context.Context, plannerID string) ([]domain.Course, error) {
	return s.planners.GetTray(ctx, plannerID)
}

func (s *plannerService) AddToTray(ctx context.Context, plannerID string, c domain.Course) ([]domain.Course, error) {
	return s.mutateTray(ctx, "add-to-tray", plannerID, func(tray []domain.Course) ([]domain.Course, error) {
		return s.engine.AddToTray(tray, c)
	})
}

func (s *plannerService) RemoveFromTray(ctx context.Context, plannerID string, index int) ([]domain.Course, error) {
	return s.mutateTray(ctx, "remove-from-tray", plannerID, func(tray []domain.Course) ([]domain.Course, error) {
		return move.RemoveFromTray(tray, index)
	})
}

// mutate loads a planner inside a transaction, applies fn and saves the
// result once it passes validation.
func (s *plannerService) mutate(
	ctx context.Context,
	name, plannerID string,
	fields map[string]any,
	fn func(*domain.Planner) (*domain.Planner, error),
) (out *domain.Planner, err error) {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["planner_id"] = plannerID
	done := startUseCase(ctx, s.observer, name, fields)
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLitePlannerRepo(tx)
		p, err := repo.GetByID(ctx, plannerID)
		if err != nil {
			return fmt.Errorf("loading planner: %w", err)
		}
		next, err := fn(p)
		if err != nil {
			return err
		}
		if err := next.Validate(); err != nil {
			return err
		}
		next.UpdatedAt = time.Now().UTC()
		if err := repo.Save(ctx, next); err != nil {
			return fmt.Errorf("saving planner: %w", err)
		}
		out = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *plannerService) mutateTray(
	ctx context.Context,
	name, plannerID string,
	fn func([]domain.Course) ([]domain.Course, error),
) (out []domain.Course, err error) {
	fields := map[string]any{"planner_id": plannerID}
	done := startUseCase(ctx, s.observer, name, fields)
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLitePlannerRepo(tx)
		tray, err := repo.GetTray(ctx, plannerID)
		if err != nil {
			return fmt.Errorf("loading tray: %w", err)
		}
		next, err := fn(tray)
		if err != nil {
			return err
		}
		if err := repo.SaveTray(ctx, plannerID, next); err != nil {
			return err
		}
		fields["tray_size"] = len(next)
		out = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
