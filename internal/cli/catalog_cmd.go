package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/cli/formatter"
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/spf13/cobra"
)

// maxSkippedShown caps how many skipped CSV rows are echoed after an import.
const maxSkippedShown = 10

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Import and search the course catalog",
	}

	cmd.AddCommand(
		newCatalogImportCmd(app),
		newCatalogSearchCmd(app),
		newCatalogShowCmd(app),
		newCatalogSuggestCmd(app),
	)

	return cmd
}

func newCatalogImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.csv",
		Short: "Import catalog courses from CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Catalog.ImportCSV(context.Background(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d courses\n", res.Imported)
			if len(res.Skipped) == 0 {
				return nil
			}
			fmt.Fprintf(out, "%s\n", formatter.StyleYellow.Render(fmt.Sprintf("Skipped %d rows:", len(res.Skipped))))
			for i, e := range res.Skipped {
				if i == maxSkippedShown {
					fmt.Fprintf(out, "  ... and %d more\n", len(res.Skipped)-maxSkippedShown)
					break
				}
				fmt.Fprintf(out, "  - %v\n", e)
			}
			return nil
		},
	}
}

func newCatalogSearchCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Search courses by code, title or department",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.Catalog.Search(context.Background(), strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No courses found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCourseSearch(records))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of results")

	return cmd
}

func newCatalogShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   `show "DEPT NUM"`,
		Short: "Show one catalog course",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			key, ok := domain.ParseCatalogKey(input)
			if !ok {
				return fmt.Errorf("invalid course %q: expected DEPT NUM, e.g. CSE 101", input)
			}
			rec, err := app.Catalog.Lookup(context.Background(), key)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCatalogRecord(rec))
			return nil
		},
	}
}

func newCatalogSuggestCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest TEXT...",
		Short: "Find catalog courses mentioned in free text, e.g. a requirement title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.Catalog.Suggest(context.Background(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No suggestions.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCourseSearch(records))
			return nil
		},
	}
}
