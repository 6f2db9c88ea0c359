package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alexanderramin/degreeplan/internal/cli/formatter"
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/move"
	"github.com/alexanderramin/degreeplan/internal/service"
	"github.com/spf13/cobra"
)

func loadPlanner(ctx context.Context, app *App, input string) (*domain.Planner, error) {
	id, err := resolvePlannerID(ctx, app, input)
	if err != nil {
		return nil, err
	}
	return app.Planners.GetByID(ctx, id)
}

func printMoveResult(out io.Writer, res *service.MoveResult, done string) {
	if !res.Changed {
		fmt.Fprintln(out, formatter.Dim("Nothing changed: the course is already there."))
		return
	}
	fmt.Fprintln(out, done)
	for _, w := range res.Warnings {
		fmt.Fprintf(out, "%s %s\n", formatter.StyleYellow.Render("warning:"), w)
	}
}

// destinationIndex turns an --at value into a concrete position; -1 appends.
func destinationIndex(p *domain.Planner, slotID string, at int) int {
	if at < 0 {
		return slotLength(p, slotID)
	}
	return at
}

func newCourseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course",
		Short: "Place, move and edit courses in a planner",
	}

	cmd.AddCommand(
		newCourseAddCmd(app),
		newCourseMoveCmd(app),
		newCourseRemoveCmd(app),
		newCourseShowCmd(app),
		newCourseEditCmd(app),
		newCourseRequireCmd(app),
	)

	return cmd
}

func newCourseAddCmd(app *App) *cobra.Command {
	var to slotValue
	var at int

	cmd := &cobra.Command{
		Use:   `add PLANNER "DEPT NUM"`,
		Short: "Place a catalog course in a term",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			key, ok := domain.ParseCatalogKey(args[1])
			if !ok {
				return fmt.Errorf("invalid course %q: expected DEPT NUM, e.g. CSE 101", args[1])
			}
			p, err := loadPlanner(ctx, app, args[0])
			if err != nil {
				return err
			}
			res, err := app.Moves.Move(ctx, service.MoveRequest{
				PlannerID: p.ID,
				Instruction: move.Instruction{
					Token:       move.KeyToken(key),
					Source:      move.Location{Container: move.Search()},
					Destination: move.Location{Container: move.TermSlot(to.id), Index: destinationIndex(p, to.id, at)},
				},
			})
			if err != nil {
				return err
			}
			printMoveResult(cmd.OutOrStdout(), res,
				fmt.Sprintf("Added %s to %s", formatter.Bold(key.String()), formatter.SlotName(to.id)))
			return nil
		},
	}

	addSlotFlag(cmd.Flags(), &to, "to", "Destination term")
	addIndexFlag(cmd.Flags(), &at)
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newCourseMoveCmd(app *App) *cobra.Command {
	var to slotValue
	var at int

	cmd := &cobra.Command{
		Use:   "move PLANNER COURSE",
		Short: "Move a placed course to another term or position",
		Args:  cobra.ExactArgs(2),
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
			fromSlot, fromIndex, err := coursePosition(p, courseID)
			if err != nil {
				return err
			}
			dest := to.id
			if dest == "" {
				dest = fromSlot
			}
			index := destinationIndex(p, dest, at)
			if dest == fromSlot && at < 0 {
				index = slotLength(p, dest) - 1
			}
			res, err := app.Moves.Move(ctx, service.MoveRequest{
				PlannerID: p.ID,
				Instruction: move.Instruction{
					Token:       courseID,
					Source:      move.Location{Container: move.TermSlot(fromSlot), Index: fromIndex},
					Destination: move.Location{Container: move.TermSlot(dest), Index: index},
				},
			})
			if err != nil {
				return err
			}
			printMoveResult(cmd.OutOrStdout(), res, fmt.Sprintf("Moved to %s", formatter.SlotName(dest)))
			return nil
		},
	}

	addSlotFlag(cmd.Flags(), &to, "to", "Destination term (default: same term)")
	addIndexFlag(cmd.Flags(), &at)

	return cmd
}

func newCourseRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PLANNER COURSE",
		Short: "Remove a placed course",
		Args:  cobra.ExactArgs(2),
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
			slotID, index, err := coursePosition(p, courseID)
			if err != nil {
				return err
			}
			if _, err := app.Planners.RemoveCourse(ctx, p.ID, slotID, index); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", args[1], formatter.SlotName(slotID))
			return nil
		},
	}
}

func newCourseShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PLANNER COURSE",
		Short: "Show a placed course",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPlanner(context.Background(), app, args[0])
			if err != nil {
				return err
			}
			courseID, err := resolveCourseID(p, args[1])
			if err != nil {
				return err
			}
			c, _ := p.CourseByID(courseID)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCourse(p, c))
			return nil
		},
	}
}

func newCourseEditCmd(app *App) *cobra.Command {
	var title, description string
	var credits int

	cmd := &cobra.Command{
		Use:   "edit PLANNER COURSE",
		Short: "Edit a placed course's title, credits or description",
		Args:  cobra.ExactArgs(2),
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

			var patch service.CoursePatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("credits") {
				patch.Credits = &credits
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if patch == (service.CoursePatch{}) {
				return fmt.Errorf("nothing to change: pass --title, --credits or --description")
			}

			updated, err := app.Planners.UpdateCourse(ctx, p.ID, courseID, patch)
			if err != nil {
				return err
			}
			c, _ := updated.CourseByID(courseID)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", formatter.Bold(c.DisplayName()))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().IntVar(&credits, "credits", 0, "New credit count")
	cmd.Flags().StringVar(&description, "description", "", "New description")

	return cmd
}

func newCourseRequireCmd(app *App) *cobra.Command {
	var programArg, listArg string
	var at int

	cmd := &cobra.Command{
		Use:   "require PLANNER COURSE",
		Short: "Add a placed course to a program requirement list",
		Args:  cobra.ExactArgs(2),
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
			slotID, index, err := coursePosition(p, courseID)
			if err != nil {
				return err
			}
			prog, listID, err := resolveProgramList(ctx, app, programArg, listArg)
			if err != nil {
				return err
			}
			res, err := app.Moves.Move(ctx, service.MoveRequest{
				PlannerID: p.ID,
				ProgramID: prog.ID,
				Instruction: move.Instruction{
					Token:       courseID,
					Source:      move.Location{Container: move.TermSlot(slotID), Index: index},
					Destination: move.Location{Container: move.RequirementList(listID), Index: listIndex(prog, listID, at)},
				},
			})
			if err != nil {
				return err
			}
			printMoveResult(cmd.OutOrStdout(), res, fmt.Sprintf("Added %s to %s", args[1], prog.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&programArg, "program", "", "Program ID or name")
	cmd.Flags().StringVar(&listArg, "list", "root", "Requirement list ID or title")
	addIndexFlag(cmd.Flags(), &at)
	_ = cmd.MarkFlagRequired("program")

	return cmd
}
