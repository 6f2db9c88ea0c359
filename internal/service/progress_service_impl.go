package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/progress"
	"github.com/alexanderramin/degreeplan/internal/repository"
)

type progressService struct {
	planners repository.PlannerRepo
	programs repository.ProgramRepo
}

func NewProgressService(planners repository.PlannerRepo, programs repository.ProgramRepo) ProgressService {
	return &progressService{planners: planners, programs: programs}
}

// Report evaluates the planner's scheduled courses against every declared
// program.
func (s *progressService) Report(ctx context.Context, plannerID string) (*ProgressReport, error) {
	p, err := s.planners.GetByID(ctx, plannerID)
	if err != nil {
		return nil, fmt.Errorf("loading planner: %w", err)
	}
	declared, err := s.programs.ListDeclared(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading declared programs: %w", err)
	}
	courses, err := p.ScheduledCourses()
	if err != nil {
		return nil, err
	}

	return &ProgressReport{
		Planner:      p,
		Summary:      progress.Summarize(declared, courses),
		GE:           p.GeneralEducationSatisfied(),
		TotalCredits: domain.TotalCredits(courses),
	}, nil
}
