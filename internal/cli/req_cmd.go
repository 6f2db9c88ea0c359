package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/degreeplan/internal/cli/formatter"
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/move"
	"github.com/alexanderramin/degreeplan/internal/requirement"
	"github.com/alexanderramin/degreeplan/internal/service"
	"github.com/spf13/cobra"
)

// resolveProgramList loads a program and resolves a list inside its tree.
func resolveProgramList(ctx context.Context, app *App, programArg, listArg string) (*domain.Program, string, error) {
	id, err := resolveProgramID(ctx, app, programArg)
	if err != nil {
		return nil, "", err
	}
	p, err := app.Programs.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	listID, err := resolveListID(p, listArg)
	if err != nil {
		return nil, "", err
	}
	return p, listID, nil
}

// listIndex turns an --at value into a position in the list; -1 appends.
func listIndex(p *domain.Program, listID string, at int) int {
	if at >= 0 {
		return at
	}
	if l := requirement.Find(p.Requirements, listID); l != nil {
		return len(l.Requirements)
	}
	return 0
}

func newReqCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "req",
		Aliases: []string{"requirement"},
		Short:   "Edit a program's requirement tree",
	}

	cmd.AddCommand(
		newReqAddListCmd(app),
		newReqRemoveListCmd(app),
		newReqUpdateCmd(app),
		newReqAddCmd(app),
		newReqMoveCmd(app),
		newReqRemoveCmd(app),
	)

	return cmd
}

func newReqAddListCmd(app *App) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "add-list PROGRAM TITLE",
		Short: "Add a nested requirement list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, parentID, err := resolveProgramList(ctx, app, args[0], parent)
			if err != nil {
				return err
			}
			l, err := app.Requirements.AddList(ctx, p.ID, parentID, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added list %s %s\n", formatter.Bold(l.Title), formatter.TruncID(l.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "root", "Parent list ID or title")

	return cmd
}

func newReqRemoveListCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove-list PROGRAM LIST",
		Short: "Remove a nested list and everything under it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, listID, err := resolveProgramList(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			ok, err := confirm(app, yes, fmt.Sprintf("Remove list %q from %s?", args[1], p.Name))
			if err != nil || !ok {
				return err
			}
			if err := app.Requirements.RemoveList(ctx, p.ID, listID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "List removed.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newReqUpdateCmd(app *App) *cobra.Command {
	var title, notes string
	var binder binderValue
	var atLeast int

	cmd := &cobra.Command{
		Use:   "update PROGRAM LIST",
		Short: "Change a list's title, notes, binder or count",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, listID, err := resolveProgramList(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}

			var patch service.RequirementListPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}
			if binder.set {
				patch.Binder = &binder.binder
			}
			if cmd.Flags().Changed("at-least") {
				patch.AtLeast = &atLeast
			}
			if patch == (service.RequirementListPatch{}) {
				return fmt.Errorf("nothing to change: pass --title, --notes, --binder or --at-least")
			}

			l, err := app.Requirements.UpdateList(ctx, p.ID, listID, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated list %s (%s, %d required)\n",
				formatter.Bold(l.Title), l.Binder, requirement.RequiredCount(l))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")
	cmd.Flags().Var(&binder, "binder", "ALL or AT_LEAST")
	cmd.Flags().IntVar(&atLeast, "at-least", 0, "How many children an AT_LEAST list needs")

	return cmd
}

func newReqAddCmd(app *App) *cobra.Command {
	var listArg string
	var at int

	cmd := &cobra.Command{
		Use:   `add PROGRAM "DEPT NUM"`,
		Short: "Add a catalog course to a requirement list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			key, ok := domain.ParseCatalogKey(args[1])
			if !ok {
				return fmt.Errorf("invalid course %q: expected DEPT NUM, e.g. CSE 101", args[1])
			}
			p, listID, err := resolveProgramList(ctx, app, args[0], listArg)
			if err != nil {
				return err
			}
			res, err := app.Moves.Move(ctx, service.MoveRequest{
				ProgramID: p.ID,
				Instruction: move.Instruction{
					Token:       move.KeyToken(key),
					Source:      move.Location{Container: move.Search()},
					Destination: move.Location{Container: move.RequirementList(listID), Index: listIndex(p, listID, at)},
				},
			})
			if err != nil {
				return err
			}
			if !res.Changed {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Nothing changed: the list already holds "+key.String()))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", formatter.Bold(key.String()))
			return nil
		},
	}

	cmd.Flags().StringVar(&listArg, "list", "root", "Requirement list ID or title")
	addIndexFlag(cmd.Flags(), &at)

	return cmd
}

func newReqMoveCmd(app *App) *cobra.Command {
	var fromArg, toArg string
	var at int

	cmd := &cobra.Command{
		Use:   "move PROGRAM INDEX",
		Short: "Move a course requirement between lists or within one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			p, fromID, err := resolveProgramList(ctx, app, args[0], fromArg)
			if err != nil {
				return err
			}
			toID, err := resolveListID(p, toArg)
			if err != nil {
				return err
			}
			dest := listIndex(p, toID, at)
			if fromID == toID && at < 0 {
				dest = max(dest-1, 0)
			}
			res, err := app.Moves.Move(ctx, service.MoveRequest{
				ProgramID: p.ID,
				Instruction: move.Instruction{
					Source:      move.Location{Container: move.RequirementList(fromID), Index: index},
					Destination: move.Location{Container: move.RequirementList(toID), Index: dest},
				},
			})
			if err != nil {
				return err
			}
			printMoveResult(cmd.OutOrStdout(), res, "Requirement moved.")
			return nil
		},
	}

	cmd.Flags().StringVar(&fromArg, "from", "root", "Source list ID or title")
	cmd.Flags().StringVar(&toArg, "to", "root", "Destination list ID or title")
	addIndexFlag(cmd.Flags(), &at)

	return cmd
}

func newReqRemoveCmd(app *App) *cobra.Command {
	var listArg string

	cmd := &cobra.Command{
		Use:   "remove PROGRAM INDEX",
		Short: "Remove the course requirement at INDEX of a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			p, listID, err := resolveProgramList(ctx, app, args[0], listArg)
			if err != nil {
				return err
			}
			if _, err := app.Requirements.RemoveRequirement(ctx, p.ID, listID, index); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Requirement removed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&listArg, "list", "root", "Requirement list ID or title")

	return cmd
}
