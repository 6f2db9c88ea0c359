package cli

import (
	"github.com/alexanderramin/degreeplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Planners     service.PlannerService
	Moves        service.MoveService
	Requirements service.RequirementService
	Programs     service.ProgramService
	Catalog      service.CatalogService
	Progress     service.ProgressService
	Templates    service.TemplateService

	// DefaultYears sizes planners created without --years. Zero leaves the
	// choice to the planner service.
	DefaultYears int

	// IsInteractive reports whether stdin is a terminal. Prompts and the
	// board are only offered when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "degreeplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "degreeplan",
		Short:         "Plan courses across terms and track degree requirements",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPlannerCmd(app),
		newCourseCmd(app),
		newTrayCmd(app),
		newLabelCmd(app),
		newProgramCmd(app),
		newReqCmd(app),
		newCatalogCmd(app),
		newProgressCmd(app),
		newTemplateCmd(app),
		newBoardCmd(app),
	)

	return root
}
