package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/degreeplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newLabelCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Tag placed courses with colored labels",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list PLANNER",
			Short: "List a planner's labels",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := loadPlanner(context.Background(), app, args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLabels(p))
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle PLANNER COURSE LABEL",
			Short: "Attach or detach a label",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				p, err := loadPlanner(ctx, app, args[0])
				if err != nil {
					return err
				}
				courseID, err := resolveCourseID(p, args[1])
				if err != nil {
					return err
				}
				labelID, err := resolveLabelID(p, args[2])
				if err != nil {
					return err
				}
				updated, err := app.Planners.ToggleLabel(ctx, p.ID, courseID, labelID)
				if err != nil {
					return err
				}
				c, _ := updated.CourseByID(courseID)
				state := "removed from"
				if c.HasLabel(labelID) {
					state = "added to"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Label %s %s\n", state, formatter.Bold(c.DisplayName()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename PLANNER LABEL NAME",
			Short: "Rename a label",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				p, err := loadPlanner(ctx, app, args[0])
				if err != nil {
					return err
				}
				labelID, err := resolveLabelID(p, args[1])
				if err != nil {
					return err
				}
				if _, err := app.Planners.RenameLabel(ctx, p.ID, labelID, args[2]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed label to %s\n", formatter.Bold(args[2]))
				return nil
			},
		},
	)

	return cmd
}
