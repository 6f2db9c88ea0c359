package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/cli/formatter"
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/spf13/cobra"
)

func newProgramCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "program",
		Short: "Manage degree programs and their requirements",
	}

	cmd.AddCommand(
		newProgramCreateCmd(app),
		newProgramImportCmd(app),
		newProgramListCmd(app),
		newProgramShowCmd(app),
		newProgramDeleteCmd(app),
		newProgramDeclareCmd(app),
		newProgramUndeclareCmd(app),
	)

	return cmd
}

func newProgramCreateCmd(app *App) *cobra.Command {
	var catalogYear, typ string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an empty program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Programs.Create(context.Background(), args[0], catalogYear,
				domain.ProgramType(strings.ToUpper(typ)))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created program %s %s\n", formatter.Bold(p.DisplayName()), formatter.TruncID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogYear, "catalog-year", "", "Catalog year, e.g. 2023-2024")
	cmd.Flags().StringVar(&typ, "type", string(domain.ProgramMajor), "MAJOR or MINOR")

	return cmd
}

func newProgramImportCmd(app *App) *cobra.Command {
	var declare bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a program and its requirement tree from YAML or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			res, err := app.Programs.Import(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %s %s (%d lists, %d courses)\n",
				formatter.Bold(res.Program.DisplayName()), formatter.TruncID(res.Program.ID), res.ListCount, res.LeafCount)
			if declare {
				if err := app.Programs.Declare(ctx, res.Program.ID); err != nil {
					return err
				}
				fmt.Fprintln(out, "Declared.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&declare, "declare", false, "Declare the program after importing it")

	return cmd
}

func newProgramListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List programs; declared ones are starred",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			programs, err := app.Programs.List(ctx)
			if err != nil {
				return err
			}
			if len(programs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No programs found.")
				return nil
			}
			declared, err := app.Programs.ListDeclared(ctx)
			if err != nil {
				return err
			}
			set := make(map[string]bool, len(declared))
			for _, p := range declared {
				set[p.ID] = true
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProgramList(programs, set))
			return nil
		},
	}
}

func newProgramShowCmd(app *App) *cobra.Command {
	var plannerArg string

	cmd := &cobra.Command{
		Use:   "show PROGRAM",
		Short: "Show a program's requirement tree",
		Long:  "Show a program's requirement tree. With --planner, satisfied requirements are checked off.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProgramID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Programs.GetByID(ctx, id)
			if err != nil {
				return err
			}
			var courses []domain.Course
			if plannerArg != "" {
				planner, err := loadPlanner(ctx, app, plannerArg)
				if err != nil {
					return err
				}
				if courses, err = planner.ScheduledCourses(); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProgram(p, courses))
			return nil
		},
	}

	cmd.Flags().StringVar(&plannerArg, "planner", "", "Evaluate against this planner's courses")

	return cmd
}

func newProgramDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete PROGRAM",
		Short: "Delete a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProgramID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Programs.GetByID(ctx, id)
			if err != nil {
				return err
			}
			ok, err := confirm(app, yes, fmt.Sprintf("Delete program %q?", p.DisplayName()))
			if err != nil || !ok {
				return err
			}
			if err := app.Programs.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted program %s\n", p.DisplayName())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newProgramDeclareCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "declare PROGRAM",
		Short: "Track progress towards a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProgramID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Programs.Declare(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Program declared.")
			return nil
		},
	}
}

func newProgramUndeclareCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undeclare PROGRAM",
		Short: "Stop tracking a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProgramID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Programs.Undeclare(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Program undeclared.")
			return nil
		},
	}
}
