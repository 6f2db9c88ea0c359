package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/degreeplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress PLANNER",
		Short: "Show progress towards the declared programs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolvePlannerID(ctx, app, args[0])
			if err != nil {
				return err
			}
			report, err := app.Progress.Report(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProgress(formatter.ProgressView{
				PlannerTitle: report.Planner.Title,
				Summary:      report.Summary,
				GE:           report.GE,
				TotalCredits: report.TotalCredits,
			}))
			return nil
		},
	}
}
