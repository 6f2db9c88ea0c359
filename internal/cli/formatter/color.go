package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorPink   = lipgloss.Color("#f5a9b8")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = ColorOrange
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

var labelColors = map[domain.LabelColor]lipgloss.Color{
	domain.LabelRed:    ColorRed,
	domain.LabelOrange: ColorOrange,
	domain.LabelYellow: ColorYellow,
	domain.LabelGreen:  ColorGreen,
	domain.LabelBlue:   ColorBlue,
	domain.LabelPurple: ColorPurple,
	domain.LabelPink:   ColorPink,
}

// LabelStyle returns the foreground style for a label color.
func LabelStyle(c domain.LabelColor) lipgloss.Style {
	if col, ok := labelColors[c]; ok {
		return lipgloss.NewStyle().Foreground(col)
	}
	return StyleDim
}

// LabelDot renders a colored dot for each label id attached to a course.
func LabelDot(p *domain.Planner, c domain.Course) string {
	var b strings.Builder
	for _, id := range c.Labels {
		if l, ok := p.LabelByID(id); ok {
			b.WriteString(LabelStyle(l.Color).Render("●"))
		}
	}
	return b.String()
}

// SatisfiedMark returns a green check or a dim circle.
func SatisfiedMark(ok bool) string {
	if ok {
		return StyleGreen.Render("✔")
	}
	return StyleDim.Render("○")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
