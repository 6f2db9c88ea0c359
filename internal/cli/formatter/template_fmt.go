package formatter

import (
	"fmt"
	"strings"

	tmpl "github.com/alexanderramin/degreeplan/internal/template"
)

// FormatTemplateList renders available planner templates inside a box.
func FormatTemplateList(templates []*tmpl.TemplateSchema) string {
	headers := []string{"#", "ID", "NAME", "CATALOG", "COURSES"}
	rows := make([][]string, 0, len(templates))
	for i, t := range templates {
		n := 0
		for _, q := range t.Quarters {
			n += len(q.Courses)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			Dim(t.ID),
			Bold(t.Name),
			Dim(t.CatalogYear),
			fmt.Sprintf("%d", n),
		})
	}
	return RenderBox("Templates", RenderTable(headers, rows))
}

// FormatTemplate renders a template's terms in order.
func FormatTemplate(t *tmpl.TemplateSchema) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(t.Name) + "  " + Dim(t.CatalogYear) + "\n")
	if t.Description != "" {
		b.WriteString(Dim(t.Description) + "\n")
	}
	for _, q := range t.Quarters {
		b.WriteString(fmt.Sprintf("\n  %s %s\n", StyleHeader.Render(YearName(q.Year)), StyleHeader.Render(q.Term)))
		for _, c := range q.Courses {
			b.WriteString("    " + c + "\n")
		}
	}
	return RenderBox("", b.String())
}
