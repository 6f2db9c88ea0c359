package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/progress"
)

const progressBarWidth = 20

// ProgressView is everything the progress screen shows for one planner.
type ProgressView struct {
	PlannerTitle string
	Summary      progress.Summary
	GE           []string
	TotalCredits int
}

// FormatProgress renders per-program bars, the overall average and the GE
// codes covered.
func FormatProgress(v ProgressView) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(v.PlannerTitle) + "\n\n")

	if len(v.Summary.Programs) == 0 {
		b.WriteString(Dim("No declared programs. Use 'program declare' to track one.") + "\n")
	}
	for _, pp := range v.Summary.Programs {
		name := "unknown program"
		if pp.Program != nil {
			name = pp.Program.DisplayName()
		}
		b.WriteString(fmt.Sprintf("  %s\n  %s  %s\n", Bold(name),
			RenderProgress(pp.Percentage, progressBarWidth),
			Dim(fmt.Sprintf("%d of %d requirements", pp.Satisfied, pp.Total))))
	}

	if len(v.Summary.Programs) > 1 {
		b.WriteString(fmt.Sprintf("\n  %s  %s\n", Dim("Average"), RenderProgress(v.Summary.Average, progressBarWidth)))
	}

	b.WriteString("\n" + Header("Summary") + "\n")
	b.WriteString(fmt.Sprintf("  %-8s %s\n", Dim("Credits"), Bold(Credits(v.TotalCredits))))
	ge := Dim("none")
	if len(v.GE) > 0 {
		ge = strings.Join(v.GE, ", ")
	}
	b.WriteString(fmt.Sprintf("  %-8s %s\n", Dim("GE"), ge))

	return RenderBox("Progress", b.String())
}
