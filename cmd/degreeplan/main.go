package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/degreeplan/internal/cli"
	"github.com/alexanderramin/degreeplan/internal/config"
	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/repository"
	"github.com/alexanderramin/degreeplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	plannerRepo := repository.NewSQLitePlannerRepo(database)
	programRepo := repository.NewSQLiteProgramRepo(database)
	courseRepo := repository.NewSQLiteCourseRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Planners:     service.NewPlannerService(plannerRepo, uow, observers...),
		Moves:        service.NewMoveService(uow, observers...),
		Requirements: service.NewRequirementService(uow, observers...),
		Programs:     service.NewProgramService(programRepo, uow, observers...),
		Catalog:      service.NewCatalogService(courseRepo, uow, observers...),
		Progress:     service.NewProgressService(plannerRepo, programRepo),
		Templates:    service.NewTemplateService(cfg.TemplateDir, uow, observers...),
		DefaultYears: cfg.PlannerYears,
	}

	// Detect interactive terminal for the board and the wizards.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
