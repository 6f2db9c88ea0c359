package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

const searchTitleWidth = 40

// FormatCourseSearch renders catalog search results.
func FormatCourseSearch(records []*domain.CatalogRecord) string {
	headers := []string{"COURSE", "TITLE", "CREDITS", "GE", "OFFERED"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		terms := make([]string, len(r.QuartersOffered))
		for i, t := range r.QuartersOffered {
			terms[i] = string(t)[:1]
		}
		rows = append(rows, []string{
			Bold(r.Key().String()),
			domain.TruncateTitle(r.Title, searchTitleWidth),
			fmt.Sprintf("%d", r.Credits),
			Dim(strings.Join(r.GE, ",")),
			Dim(strings.Join(terms, "")),
		})
	}
	return RenderTable(headers, rows)
}

// FormatCatalogRecord renders a catalog course with its department and
// prerequisites.
func FormatCatalogRecord(r *domain.CatalogRecord) string {
	card := FormatCourse(nil, r.Course)
	var extra []string
	if r.Department != "" {
		extra = append(extra, fmt.Sprintf("  %s %s", Dim("Department"), r.Department))
	}
	if len(r.Prerequisites) > 0 {
		extra = append(extra, fmt.Sprintf("  %s %s", Dim("Requires  "), r.Prerequisites))
	}
	if len(extra) == 0 {
		return card
	}
	return card + "\n" + strings.Join(extra, "\n")
}
