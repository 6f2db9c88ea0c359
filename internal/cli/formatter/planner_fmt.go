package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// termColumnWidth is the inner width of one term column in the planner grid.
const termColumnWidth = 22

// FormatPlannerList renders planners as a table inside a box.
func FormatPlannerList(planners []*domain.Planner) string {
	headers := []string{"ID", "TITLE", "YEARS", "COURSES", "CREDITS", "UPDATED"}
	rows := make([][]string, 0, len(planners))
	for _, p := range planners {
		scheduled, _ := p.ScheduledCourses()
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Title),
			fmt.Sprintf("%d", p.Years),
			fmt.Sprintf("%d", len(scheduled)),
			Credits(domain.TotalCredits(scheduled)),
			Dim(HumanDate(p.UpdatedAt)),
		})
	}
	return RenderBox("Planners", RenderTable(headers, rows))
}

// FormatPlanner renders the planner as one row of term columns per year.
// Course positions are shown so they can be passed back to index flags.
func FormatPlanner(p *domain.Planner) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(p.Title) + "  " + TruncID(p.ID) + "\n")
	if p.Notes != "" {
		b.WriteString(Dim(p.Notes) + "\n")
	}

	for year := 0; year < p.Years; year++ {
		b.WriteString("\n" + Header(YearName(year)) + "\n")
		cols := make([]string, 0, len(domain.Terms))
		for _, term := range domain.Terms {
			cols = append(cols, termColumn(p, domain.SlotID(year, term), term))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...) + "\n")
	}

	scheduled, err := p.ScheduledCourses()
	if err != nil {
		b.WriteString("\n" + StyleRed.Render(err.Error()) + "\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("\n%s %s\n", Dim("Total:"), Bold(Credits(domain.TotalCredits(scheduled)))))
	return b.String()
}

func termColumn(p *domain.Planner, slotID string, term domain.Term) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorDim).
		Width(termColumnWidth).
		Padding(0, 1)

	courses, err := p.CoursesInSlot(slotID)
	if err != nil {
		return style.Render(StyleRed.Render("invalid slot"))
	}

	lines := []string{StyleHeader.Render(string(term))}
	for i, c := range courses {
		name := domain.TruncateTitle(c.DisplayName(), termColumnWidth-6)
		if !c.IsOfferedIn(term) {
			name = StyleYellow.Render(name)
		}
		line := fmt.Sprintf("%s %s", Dim(fmt.Sprintf("%d", i)), name)
		if dots := LabelDot(p, c); dots != "" {
			line += " " + dots
		}
		lines = append(lines, line)
	}
	if len(courses) == 0 {
		lines = append(lines, Dim("empty"))
	} else {
		lines = append(lines, Dim(Credits(domain.TotalCredits(courses))))
	}
	return style.Render(strings.Join(lines, "\n"))
}

// FormatCourse renders a placed or catalog course card.
func FormatCourse(p *domain.Planner, c domain.Course) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(c.DisplayName()))
	if !c.IsCustom() {
		b.WriteString("  " + c.Title)
	}
	b.WriteString("\n\n")

	field := func(name, value string) {
		if value != "" {
			b.WriteString(fmt.Sprintf("  %-10s %s\n", Dim(name), value))
		}
	}
	if c.ID != "" {
		field("ID", TruncID(c.ID))
	}
	field("Credits", fmt.Sprintf("%d", c.Credits))
	field("GE", strings.Join(c.GE, ", "))
	terms := make([]string, len(c.QuartersOffered))
	for i, t := range c.QuartersOffered {
		terms[i] = string(t)
	}
	field("Offered", strings.Join(terms, ", "))
	if p != nil {
		if slot, ok := p.SlotOf(c.ID); ok {
			field("Placed", SlotName(slot))
		}
		var names []string
		for _, id := range c.Labels {
			if l, ok := p.LabelByID(id); ok {
				names = append(names, LabelStyle(l.Color).Render(labelName(l)))
			}
		}
		field("Labels", strings.Join(names, " "))
	}
	if c.Description != "" {
		b.WriteString("\n" + c.Description + "\n")
	}
	return RenderBox("", b.String())
}

// FormatLabels renders a planner's labels with their ids.
func FormatLabels(p *domain.Planner) string {
	headers := []string{"ID", "COLOR", "NAME"}
	rows := make([][]string, 0, len(p.Labels))
	for _, l := range p.Labels {
		rows = append(rows, []string{
			TruncID(l.ID),
			LabelStyle(l.Color).Render("● " + string(l.Color)),
			labelName(l),
		})
	}
	return RenderTable(headers, rows)
}

func labelName(l domain.Label) string {
	return domain.CoalesceStr(l.Name, strings.ToLower(string(l.Color)))
}

// FormatTray renders the custom course tray.
func FormatTray(tray []domain.Course) string {
	if len(tray) == 0 {
		return Dim("The tray is empty.")
	}
	headers := []string{"#", "COURSE", "CREDITS"}
	rows := make([][]string, 0, len(tray))
	for i, c := range tray {
		rows = append(rows, []string{fmt.Sprintf("%d", i), c.DisplayName(), fmt.Sprintf("%d", c.Credits)})
	}
	return RenderTable(headers, rows)
}
