package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/cli/formatter"
	"github.com/alexanderramin/degreeplan/internal/service"
	"github.com/spf13/cobra"
)

func newPlannerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "planner",
		Aliases: []string{"plan"},
		Short:   "Manage planners",
	}

	cmd.AddCommand(
		newPlannerCreateCmd(app),
		newPlannerListCmd(app),
		newPlannerShowCmd(app),
		newPlannerRenameCmd(app),
		newPlannerNotesCmd(app),
		newPlannerDeleteCmd(app),
	)

	return cmd
}

func newPlannerCreateCmd(app *App) *cobra.Command {
	var years int
	var templateName string

	cmd := &cobra.Command{
		Use:   "create TITLE",
		Short: "Create a new planner, optionally from a template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			title := ""
			if len(args) == 1 {
				title = args[0]
			}
			out := cmd.OutOrStdout()

			if templateName != "" {
				res, err := app.Templates.CreatePlanner(ctx, templateName, title)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Created planner %s %s from template %s\n",
					formatter.Bold(res.Planner.Title), formatter.TruncID(res.Planner.ID), templateName)
				if len(res.Unresolved) > 0 {
					fmt.Fprintf(out, "%s %s\n", formatter.StyleYellow.Render("Not in catalog, added as custom courses:"),
						strings.Join(res.Unresolved, ", "))
				}
				return nil
			}

			if years == 0 {
				years = app.DefaultYears
			}
			p, err := app.Planners.Create(ctx, title, years)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Created planner %s %s\n", formatter.Bold(p.Title), formatter.TruncID(p.ID))
			return nil
		},
	}

	cmd.Flags().IntVar(&years, "years", 0, "Number of years (default from DEGREEPLAN_YEARS or 4)")
	cmd.Flags().StringVar(&templateName, "template", "", "Template ID, name or list number")
	cmd.MarkFlagsMutuallyExclusive("years", "template")

	return cmd
}

func newPlannerListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List planners",
		RunE: func(cmd *cobra.Command, args []string) error {
			planners, err := app.Planners.List(context.Background())
			if err != nil {
				return err
			}
			if len(planners) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No planners found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlannerList(planners))
			return nil
		},
	}
}

func newPlannerShowCmd(app *App) *cobra.Command {
	var showLabels bool

	cmd := &cobra.Command{
		Use:   "show PLANNER",
		Short: "Show a planner's terms and courses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolvePlannerID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Planners.GetByID(ctx, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatPlanner(p))
			if showLabels {
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.Header("Labels"))
				fmt.Fprint(out, formatter.FormatLabels(p))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showLabels, "labels", false, "Also list the planner's labels")

	return cmd
}

func newPlannerRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename PLANNER TITLE",
		Short: "Rename a planner",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolvePlannerID(ctx, app, args[0])
			if err != nil {
				return err
			}
			title := args[1]
			p, err := app.Planners.Update(ctx, id, service.PlannerPatch{Title: &title})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed planner to %s\n", formatter.Bold(p.Title))
			return nil
		},
	}
}

func newPlannerNotesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "notes PLANNER TEXT",
		Short: "Replace a planner's notes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolvePlannerID(ctx, app, args[0])
			if err != nil {
				return err
			}
			notes := args[1]
			if _, err := app.Planners.Update(ctx, id, service.PlannerPatch{Notes: &notes}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Notes updated.")
			return nil
		},
	}
}

func newPlannerDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete PLANNER",
		Short: "Delete a planner and its tray",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolvePlannerID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Planners.GetByID(ctx, id)
			if err != nil {
				return err
			}
			ok, err := confirm(app, yes, fmt.Sprintf("Delete planner %q?", p.Title))
			if err != nil || !ok {
				return err
			}
			if err := app.Planners.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted planner %s\n", p.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// confirm asks before a destructive action. Without a terminal the caller
// must pass --yes.
func confirm(app *App, yes bool, title string) (bool, error) {
	if yes {
		return true, nil
	}
	if !app.interactive() {
		return false, fmt.Errorf("refusing to continue without confirmation: pass --yes")
	}
	var ok bool
	if err := confirmForm(title, &ok).Run(); err != nil {
		return false, err
	}
	return ok, nil
}
