package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/degreeplan/internal/cli/formatter"
	"github.com/alexanderramin/degreeplan/internal/move"
	"github.com/alexanderramin/degreeplan/internal/service"
	"github.com/spf13/cobra"
)

func newTrayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tray",
		Short: "Manage the custom course tray",
		Long: fmt.Sprintf("The tray holds up to %d student-authored courses waiting to be placed in a term.",
			move.MaxTraySize),
	}

	cmd.AddCommand(
		newTrayListCmd(app),
		newTrayAddCmd(app),
		newTrayRemoveCmd(app),
		newTrayPlaceCmd(app),
	)

	return cmd
}

func newTrayListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PLANNER",
		Short: "Show the tray",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolvePlannerID(ctx, app, args[0])
			if err != nil {
				return err
			}
			tray, err := app.Planners.Tray(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTray(tray))
			return nil
		},
	}
}

func newTrayAddCmd(app *App) *cobra.Command {
	var in customCourseInput
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add PLANNER [TITLE]",
		Short: "Add a custom course to the tray",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolvePlannerID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if len(args) == 2 {
				in.Title = args[1]
			}
			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive needs a terminal")
				}
				if err := customCourseForm(&in).Run(); err != nil {
					return err
				}
			}

			c, err := in.course()
			if err != nil {
				return err
			}
			tray, err := app.Planners.AddToTray(ctx, id, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to the tray (%d/%d)\n",
				formatter.Bold(c.Title), len(tray), move.MaxTraySize)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Credits, "credits", "", "Credit count (default 5)")
	cmd.Flags().StringSliceVar(&in.Terms, "terms", nil, "Terms offered, e.g. Fall,Spring")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the course with a form")

	return cmd
}

func newTrayRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PLANNER INDEX",
		Short: "Remove a course from the tray",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolvePlannerID(ctx, app, args[0])
			if err != nil {
				return err
			}
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			tray, err := app.Planners.RemoveFromTray(ctx, id, index)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed tray entry %d (%d left)\n", index, len(tray))
			return nil
		},
	}
}

func newTrayPlaceCmd(app *App) *cobra.Command {
	var to slotValue
	var at int

	cmd := &cobra.Command{
		Use:   "place PLANNER INDEX",
		Short: "Move a tray course into a term",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := loadPlanner(ctx, app, args[0])
			if err != nil {
				return err
			}
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			res, err := app.Moves.Move(ctx, service.MoveRequest{
				PlannerID: p.ID,
				Instruction: move.Instruction{
					Source:      move.Location{Container: move.Tray(), Index: index},
					Destination: move.Location{Container: move.TermSlot(to.id), Index: destinationIndex(p, to.id, at)},
				},
			})
			if err != nil {
				return err
			}
			printMoveResult(cmd.OutOrStdout(), res, fmt.Sprintf("Placed in %s", formatter.SlotName(to.id)))
			return nil
		},
	}

	addSlotFlag(cmd.Flags(), &to, "to", "Destination term")
	addIndexFlag(cmd.Flags(), &at)
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
