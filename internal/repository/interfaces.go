package repository

import (
	"context"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

type PlannerRepo interface {
	Create(ctx context.Context, p *domain.Planner) error
	GetByID(ctx context.Context, id string) (*domain.Planner, error)
	List(ctx context.Context) ([]*domain.Planner, error)
	Save(ctx context.Context, p *domain.Planner) error
	Delete(ctx context.Context, id string) error
	GetTray(ctx context.Context, plannerID string) ([]domain.Course, error)
	SaveTray(ctx context.Context, plannerID string, tray []domain.Course) error
}

type CourseRepo interface {
	Upsert(ctx context.Context, c *domain.CatalogRecord) error
	GetByKey(ctx context.Context, key domain.CatalogKey) (*domain.CatalogRecord, error)
	LookupCourse(ctx context.Context, key domain.CatalogKey) (*domain.Course, error)
	Search(ctx context.Context, query string, limit int) ([]*domain.CatalogRecord, error)
	Count(ctx context.Context) (int, error)
}

type ProgramRepo interface {
	Create(ctx context.Context, p *domain.Program) error
	GetByID(ctx context.Context, id string) (*domain.Program, error)
	List(ctx context.Context) ([]*domain.Program, error)
	SaveRequirements(ctx context.Context, programID string, root *domain.RequirementList) error
	Delete(ctx context.Context, id string) error
	Declare(ctx context.Context, programID string) error
	Undeclare(ctx context.Context, programID string) error
	ListDeclared(ctx context.Context) ([]*domain.Program, error)
}
