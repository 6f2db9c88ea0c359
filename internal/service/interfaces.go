package service

import (
	"context"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/importer"
	"github.com/alexanderramin/degreeplan/internal/move"
	"github.com/alexanderramin/degreeplan/internal/progress"
	tmpl "github.com/alexanderramin/degreeplan/internal/template"
)

// PlannerPatch carries the editable planner fields. Nil fields are left alone.
type PlannerPatch struct {
	Title *string
	Notes *string
}

// CoursePatch edits a placed course. Catalog keys are not editable.
type CoursePatch struct {
	Title       *string
	Credits     *int
	Description *string
}

type PlannerService interface {
	Create(ctx context.Context, title string, years int) (*domain.Planner, error)
	GetByID(ctx context.Context, id string) (*domain.Planner, error)
	List(ctx context.Context) ([]*domain.Planner, error)
	Update(ctx context.Context, id string, patch PlannerPatch) (*domain.Planner, error)
	Delete(ctx context.Context, id string) error

	RemoveCourse(ctx context.Context, plannerID, slotID string, index int) (*domain.Planner, error)
	UpdateCourse(ctx context.Context, plannerID, courseID string, patch CoursePatch) (*domain.Planner, error)
	ToggleLabel(ctx context.Context, plannerID, courseID, labelID string) (*domain.Planner, error)
	RenameLabel(ctx context.Context, plannerID, labelID, name string) (*domain.Planner, error)

	Tray(ctx context.Context, plannerID string) ([]domain.Course, error)
	AddToTray(ctx context.Context, plannerID string, c domain.Course) ([]domain.Course, error)
	RemoveFromTray(ctx context.Context, plannerID string, index int) ([]domain.Course, error)
}

// MoveRequest is one drag against a stored planner. ProgramID names the
// program whose requirement tree is loaded; it may be empty when no
// requirement list is involved. PlannerID may be empty for search drops onto
// a requirement list.
type MoveRequest struct {
	PlannerID   string
	ProgramID   string
	Instruction move.Instruction
}

// MoveResult is the state after a move. Changed is false for absorbed moves,
// in which case nothing was written.
type MoveResult struct {
	Planner      *domain.Planner
	Tray         []domain.Course
	Requirements *domain.RequirementList
	Changed      bool
	// Warnings are advisory, e.g. a course placed in a term it is not offered in.
	Warnings []string
}

type MoveService interface {
	Move(ctx context.Context, req MoveRequest) (*MoveResult, error)
}

type RequirementService interface {
	AddList(ctx context.Context, programID, parentID, title string) (*domain.RequirementList, error)
	RemoveList(ctx context.Context, programID, listID string) error
	UpdateList(ctx context.Context, programID, listID string, patch RequirementListPatch) (*domain.RequirementList, error)
	RemoveRequirement(ctx context.Context, programID, listID string, index int) (*domain.RequirementList, error)
}

// RequirementListPatch edits a requirement list. Nil fields are left alone.
type RequirementListPatch struct {
	Title   *string
	Notes   *string
	Binder  *domain.Binder
	AtLeast *int
}

// ImportResult holds the outcome of a program import.
type ImportResult struct {
	Program   *domain.Program
	ListCount int
	LeafCount int
}

type ProgramService interface {
	Create(ctx context.Context, name, catalogYear string, typ domain.ProgramType) (*domain.Program, error)
	GetByID(ctx context.Context, id string) (*domain.Program, error)
	List(ctx context.Context) ([]*domain.Program, error)
	Delete(ctx context.Context, id string) error
	Import(ctx context.Context, filePath string) (*ImportResult, error)
	ImportFromSchema(ctx context.Context, schema *importer.ProgramSchema) (*ImportResult, error)
	Declare(ctx context.Context, programID string) error
	Undeclare(ctx context.Context, programID string) error
	ListDeclared(ctx context.Context) ([]*domain.Program, error)
}

// CatalogImportResult summarizes a catalog CSV import.
type CatalogImportResult struct {
	Imported int
	Skipped  []error
}

type CatalogService interface {
	Search(ctx context.Context, query string, limit int) ([]*domain.CatalogRecord, error)
	Lookup(ctx context.Context, key domain.CatalogKey) (*domain.CatalogRecord, error)
	Suggest(ctx context.Context, title string) ([]*domain.CatalogRecord, error)
	ImportCSV(ctx context.Context, filePath string) (*CatalogImportResult, error)
}

// ProgressReport is the progress view of one planner against the declared
// programs.
type ProgressReport struct {
	Planner *domain.Planner
	Summary progress.Summary
	// GE lists satisfied general education codes.
	GE           []string
	TotalCredits int
}

type ProgressService interface {
	Report(ctx context.Context, plannerID string) (*ProgressReport, error)
}

// TemplateResult is a planner created from a template.
type TemplateResult struct {
	Planner    *domain.Planner
	Unresolved []string
}

type TemplateService interface {
	List(ctx context.Context) ([]*tmpl.TemplateSchema, error)
	Get(ctx context.Context, name string) (*tmpl.TemplateSchema, error)
	CreatePlanner(ctx context.Context, templateName, title string) (*TemplateResult, error)
}
