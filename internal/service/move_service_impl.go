package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/move"
	"github.com/alexanderramin/degreeplan/internal/repository"
	"github.com/alexanderramin/degreeplan/internal/requirement"
)

type moveService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewMoveService(uow db.UnitOfWork, observers ...UseCaseObserver) MoveService {
	return &moveService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Move loads the planner, its tray and optionally a program's requirement
// tree, applies one instruction through the move engine and writes back only
// the parts that changed. An engine error leaves storage untouched.
func (s *moveService) Move(ctx context.Context, req MoveRequest) (res *MoveResult, err error) {
	in := req.Instruction
	fields := map[string]any{
		"planner_id":  req.PlannerID,
		"source":      in.Source.Container.String(),
		"destination": in.Destination.Container.String(),
	}
	if req.ProgramID != "" {
		fields["program_id"] = req.ProgramID
	}
	done := startUseCase(ctx, s.observer, "move", fields)
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		planners := repository.NewSQLitePlannerRepo(tx)
		programs := repository.NewSQLiteProgramRepo(tx)
		engine := move.NewEngine(repository.NewSQLiteCourseRepo(tx))

		before, err := loadStore(ctx, planners, programs, req)
		if err != nil {
			return err
		}
		after, err := engine.HandleMove(ctx, before, in)
		if err != nil {
			return err
		}

		res = &MoveResult{Planner: after.Planner, Tray: after.Tray, Requirements: after.Requirements}
		if after.Planner != before.Planner {
			if err := after.Planner.Validate(); err != nil {
				return err
			}
			after.Planner.UpdatedAt = time.Now().UTC()
			if err := planners.Save(ctx, after.Planner); err != nil {
				return fmt.Errorf("saving planner: %w", err)
			}
			res.Changed = true
			res.Warnings = offeringWarnings(after.Planner, in.Destination)
		}
		if trayChanged(before.Tray, after.Tray) {
			if err := planners.SaveTray(ctx, req.PlannerID, after.Tray); err != nil {
				return err
			}
			res.Changed = true
		}
		if after.Requirements != before.Requirements {
			if err := requirement.Validate(after.Requirements); err != nil {
				return fmt.Errorf("move produced an invalid requirement tree: %w", err)
			}
			if err := programs.SaveRequirements(ctx, req.ProgramID, after.Requirements); err != nil {
				return fmt.Errorf("saving requirements: %w", err)
			}
			res.Changed = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["changed"] = res.Changed
	return res, nil
}

func loadStore(ctx context.Context, planners repository.PlannerRepo, programs repository.ProgramRepo, req MoveRequest) (move.Store, error) {
	var store move.Store
	if req.PlannerID != "" {
		p, err := planners.GetByID(ctx, req.PlannerID)
		if err != nil {
			return move.Store{}, fmt.Errorf("loading planner: %w", err)
		}
		tray, err := planners.GetTray(ctx, req.PlannerID)
		if err != nil {
			return move.Store{}, fmt.Errorf("loading tray: %w", err)
		}
		store.Planner, store.Tray = p, tray
	}
	if req.ProgramID != "" {
		program, err := programs.GetByID(ctx, req.ProgramID)
		if err != nil {
			return move.Store{}, fmt.Errorf("loading program: %w", err)
		}
		store.Requirements = program.Requirements
	}
	return store, nil
}

func trayChanged(before, after []domain.Course) bool {
	if len(before) != len(after) {
		return true
	}
	for i := range before {
		if before[i].ID != after[i].ID {
			return true
		}
	}
	return false
}

// offeringWarnings flags a course dropped into a term it is not offered in.
// Courses with no offering data are not flagged.
func offeringWarnings(p *domain.Planner, dst move.Location) []string {
	if dst.Container.Kind != move.KindTermSlot {
		return nil
	}
	_, term, ok := domain.ParseSlotID(dst.Container.ID)
	if !ok {
		return nil
	}
	courses, err := p.CoursesInSlot(dst.Container.ID)
	if err != nil || len(courses) == 0 {
		return nil
	}
	i := min(dst.Index, len(courses)-1)
	c := courses[i]
	if len(c.QuartersOffered) == 0 || c.IsOfferedIn(term) {
		return nil
	}
	return []string{fmt.Sprintf("%s is not usually offered in %s", c.DisplayName(), term)}
}
