package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/cli/formatter"
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func degreeplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(degreeplanHuhTheme()).WithShowHelp(false)
}

// customCourseInput collects the fields of a student-authored course.
type customCourseInput struct {
	Title   string
	Credits string
	Terms   []string
}

func (in customCourseInput) course() (domain.Course, error) {
	c := domain.NewCustomCourse(in.Title)
	if strings.TrimSpace(in.Credits) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(in.Credits))
		if err != nil {
			return domain.Course{}, fmt.Errorf("invalid credits %q: %w", in.Credits, err)
		}
		c.Credits = n
	}
	if len(in.Terms) > 0 {
		c.QuartersOffered = c.QuartersOffered[:0]
		for _, t := range in.Terms {
			t = strings.TrimSpace(t)
			if t != "" {
				t = strings.ToUpper(t[:1]) + strings.ToLower(t[1:])
			}
			c.QuartersOffered = append(c.QuartersOffered, domain.Term(t))
		}
	}
	return c, c.Validate()
}

func customCourseForm(in *customCourseInput) *huh.Form {
	options := make([]huh.Option[string], 0, len(domain.Terms))
	for _, t := range domain.Terms {
		options = append(options, huh.NewOption(string(t), string(t)))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Independent Study").
				Value(&in.Title).
				Validate(validateRequired),
			huh.NewInput().
				Title("Credits").
				Placeholder("5").
				Value(&in.Credits).
				Validate(validateOptionalCredits),
			huh.NewMultiSelect[string]().
				Title("Offered in").
				Options(options...).
				Value(&in.Terms),
		),
	).WithTheme(degreeplanHuhTheme()).WithShowHelp(false)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateOptionalCredits(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("must be a non-negative number")
	}
	return nil
}
