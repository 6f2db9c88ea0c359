package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Credits formats a credit count, e.g. "5 cr".
func Credits(n int) string {
	return fmt.Sprintf("%d cr", n)
}

// YearName names a zero-based planner year ("Year 1").
func YearName(year int) string {
	return fmt.Sprintf("Year %d", year+1)
}

// SlotName renders a slot id as "Year 1 Fall".
func SlotName(slotID string) string {
	year, term, ok := domain.ParseSlotID(slotID)
	if !ok {
		return slotID
	}
	return YearName(year) + " " + string(term)
}

// ProgramTypeBadge renders MAJOR and MINOR in distinct colors.
func ProgramTypeBadge(t domain.ProgramType) string {
	switch t {
	case domain.ProgramMajor:
		return StyleBlue.Render("Major")
	case domain.ProgramMinor:
		return StylePurple.Render("Minor")
	default:
		return StyleDim.Render(string(t))
	}
}

// HumanDate returns "Today", "Yesterday" or an absolute date.
func HumanDate(t time.Time) string {
	return HumanDateFrom(t, time.Now())
}

// HumanDateFrom is HumanDate relative to now.
func HumanDateFrom(t, now time.Time) string {
	t, now = t.Local(), now.Local()
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}
