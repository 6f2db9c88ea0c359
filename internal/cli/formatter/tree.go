package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/requirement"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a tree display.
type TreeItem struct {
	Title     string
	Level     int
	IsLast    bool
	Satisfied bool
	Detail    string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeSpace  = "   "
)

// RenderTree renders items with box-drawing connectors and right-aligned
// detail badges. Satisfied items get a green check.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	width := 0
	// open[l] is true while the ancestor at level l still has siblings below.
	open := make([]bool, 0, 8)
	for idx, item := range items {
		var prefix strings.Builder
		if item.Level > 0 {
			for l := 1; l < item.Level && l < len(open); l++ {
				if open[l] {
					prefix.WriteString(treePipe)
				} else {
					prefix.WriteString(treeSpace)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}
		for len(open) <= item.Level {
			open = append(open, false)
		}
		open[item.Level] = !item.IsLast

		title := item.Title
		if item.Satisfied {
			title = SatisfiedMark(true) + " " + Dim(title)
		} else {
			title = SatisfiedMark(false) + " " + title
		}
		contents[idx] = prefix.String() + title
		width = max(width, lipgloss.Width(contents[idx]))
	}

	var b strings.Builder
	for idx, item := range items {
		b.WriteString(contents[idx])
		if item.Detail != "" {
			pad := width - lipgloss.Width(contents[idx])
			b.WriteString(strings.Repeat(" ", pad) + "  " + StyleBlue.Render("[ "+item.Detail+" ]"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RequirementTreeItems flattens a requirement tree for RenderTree, marking
// each node satisfied against ev. The root itself is level 0.
func RequirementTreeItems(root *domain.RequirementList, ev *requirement.Evaluator) []TreeItem {
	if root == nil {
		return nil
	}
	var items []TreeItem
	var walk func(node domain.Requirement, level int, last bool)
	walk = func(node domain.Requirement, level int, last bool) {
		switch n := node.(type) {
		case domain.CourseRequirement:
			title := n.DisplayName()
			if !n.Key().IsZero() && n.Title != "" {
				title += Dim("  " + n.Title)
			}
			items = append(items, TreeItem{Title: title, Level: level, IsLast: last, Satisfied: ev.IsSatisfied(n)})
		case *domain.RequirementList:
			items = append(items, TreeItem{
				Title:     Bold(domain.CoalesceStr(n.Title, "Untitled list")),
				Level:     level,
				IsLast:    last,
				Satisfied: ev.IsSatisfied(n),
				Detail:    fmt.Sprintf("%s %d/%d", binderLabel(n), ev.SatisfiedCount(n), requirement.RequiredCount(n)),
			})
			for i, child := range n.Requirements {
				walk(child, level+1, i == len(n.Requirements)-1)
			}
		}
	}
	walk(root, 0, true)
	return items
}

func binderLabel(l *domain.RequirementList) string {
	if l.Binder == domain.BinderAll {
		return "all"
	}
	return "at least"
}
