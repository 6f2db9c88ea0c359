package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/requirement"
)

// FormatProgramList renders programs as a table. Declared programs are
// marked with a star.
func FormatProgramList(programs []*domain.Program, declared map[string]bool) string {
	headers := []string{"", "ID", "NAME", "TYPE", "CATALOG", "LEAVES"}
	rows := make([][]string, 0, len(programs))
	for _, p := range programs {
		mark := " "
		if declared[p.ID] {
			mark = StyleYellow.Render("★")
		}
		leaves := 0
		if p.Requirements != nil {
			leaves = len(requirement.Leaves(p.Requirements))
		}
		rows = append(rows, []string{
			mark,
			TruncID(p.ID),
			Bold(p.Name),
			ProgramTypeBadge(p.Type),
			Dim(p.CatalogYear),
			fmt.Sprintf("%d", leaves),
		})
	}
	return RenderBox("Programs", RenderTable(headers, rows))
}

// FormatProgram renders a program header and its requirement tree evaluated
// against courses. List ids are listed below the tree for editing commands.
func FormatProgram(p *domain.Program, courses []domain.Course) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(p.DisplayName()) + "  " + ProgramTypeBadge(p.Type) + "  " + TruncID(p.ID) + "\n\n")
	if p.Requirements == nil {
		b.WriteString(Dim("No requirements.") + "\n")
		return b.String()
	}

	ev := requirement.NewEvaluator(courses)
	b.WriteString(RenderTree(RequirementTreeItems(p.Requirements, ev)))

	b.WriteString("\n" + Header("Lists") + "\n")
	rows := [][]string{}
	for _, l := range requirement.Lists(p.Requirements) {
		count := ""
		if l.Binder == domain.BinderAtLeast {
			count = fmt.Sprintf("%d", requirement.RequiredCount(l))
		}
		rows = append(rows, []string{TruncID(l.ID), domain.CoalesceStr(l.Title, "Untitled list"), string(l.Binder), count})
	}
	b.WriteString(RenderTable([]string{"ID", "TITLE", "BINDER", "AT LEAST"}, rows))
	return b.String()
}
