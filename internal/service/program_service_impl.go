package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/importer"
	"github.com/alexanderramin/degreeplan/internal/repository"
	"github.com/alexanderramin/degreeplan/internal/requirement"
	"github.com/google/uuid"
)

type programService struct {
	programs repository.ProgramRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewProgramService(programs repository.ProgramRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ProgramService {
	return &programService{programs: programs, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Create stores a program with an empty ALL root list titled after it.
func (s *programService) Create(ctx context.Context, name, catalogYear string, typ domain.ProgramType) (p *domain.Program, err error) {
	fields := map[string]any{"name": name, "type": string(typ)}
	done := startUseCase(ctx, s.observer, "create-program", fields)
	defer func() { done(err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("program name is required")
	}
	if typ == "" {
		typ = domain.ProgramMajor
	}
	if !domain.ValidProgramTypes[string(typ)] {
		return nil, fmt.Errorf("invalid program type %q (expected MAJOR or MINOR)", typ)
	}

	now := time.Now().UTC()
	root := requirement.NewList(uuid.NewString())
	root.Title = name
	p = &domain.Program{
		ID:           uuid.NewString(),
		Name:         name,
		CatalogYear:  strings.TrimSpace(catalogYear),
		Type:         typ,
		Requirements: root,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err = s.create(ctx, p); err != nil {
		return nil, err
	}
	fields["program_id"] = p.ID
	return p, nil
}

func (s *programService) GetByID(ctx context.Context, id string) (*domain.Program, error) {
	return s.programs.GetByID(ctx, id)
}

func (s *programService) List(ctx context.Context) ([]*domain.Program, error) {
	return s.programs.List(ctx)
}

func (s *programService) Delete(ctx context.Context, id string) (err error) {
	done := startUseCase(ctx, s.observer, "delete-program", map[string]any{"program_id": id})
	defer func() { done(err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteProgramRepo(tx).Delete(ctx, id)
	})
}

func (s *programService) Import(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadProgramSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading program file: %w", err)
	}
	return s.ImportFromSchema(ctx, schema)
}

func (s *programService) ImportFromSchema(ctx context.Context, schema *importer.ProgramSchema) (res *ImportResult, err error) {
	fields := map[string]any{"name": schema.Program.Name}
	done := startUseCase(ctx, s.observer, "import-program", fields)
	defer func() { done(err) }()

	if errs := importer.ValidateProgramSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	p := importer.ConvertProgram(schema)
	if err = requirement.Validate(p.Requirements); err != nil {
		return nil, fmt.Errorf("converting program: %w", err)
	}
	if err = s.create(ctx, p); err != nil {
		return nil, err
	}

	res = &ImportResult{
		Program:   p,
		ListCount: len(requirement.Lists(p.Requirements)),
		LeafCount: len(requirement.Leaves(p.Requirements)),
	}
	fields["program_id"] = p.ID
	fields["list_count"] = res.ListCount
	fields["leaf_count"] = res.LeafCount
	return res, nil
}

func (s *programService) create(ctx context.Context, p *domain.Program) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProgramRepo(tx).Create(ctx, p); err != nil {
			return fmt.Errorf("creating program: %w", err)
		}
		return nil
	})
}

func (s *programService) Declare(ctx context.Context, programID string) (err error) {
	done := startUseCase(ctx, s.observer, "declare-program", map[string]any{"program_id": programID})
	defer func() { done(err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		programs := repository.NewSQLiteProgramRepo(tx)
		if _, err := programs.GetByID(ctx, programID); err != nil {
			return fmt.Errorf("loading program: %w", err)
		}
		return programs.Declare(ctx, programID)
	})
}

func (s *programService) Undeclare(ctx context.Context, programID string) (err error) {
	done := startUseCase(ctx, s.observer, "undeclare-program", map[string]any{"program_id": programID})
	defer func() { done(err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteProgramRepo(tx).Undeclare(ctx, programID)
	})
}

func (s *programService) ListDeclared(ctx context.Context) ([]*domain.Program, error) {
	return s.programs.ListDeclared(ctx)
}
