package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/cli/formatter"
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/move"
	"github.com/alexanderramin/degreeplan/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board PLANNER",
		Short: "Rearrange a planner interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("board needs an interactive terminal; use 'course move' instead")
			}
			id, err := resolvePlannerID(context.Background(), app, args[0])
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(newBoardModel(app, id), tea.WithAltScreen()).Run()
			return err
		},
	}
}

type boardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Year   key.Binding
	Grab   key.Binding
	Remove key.Binding
	Cancel key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultBoardKeys() boardKeyMap {
	return boardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev term")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next term")),
		Year:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next year")),
		Grab:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "pick up / drop")),
		Remove: key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "remove")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.Remove, k.Year, k.Help, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Year},
		{k.Grab, k.Cancel, k.Remove},
		{k.Help, k.Quit},
	}
}

// plannerLoadedMsg carries a fresh planner after a load or a mutation.
type plannerLoadedMsg struct {
	planner *domain.Planner
	status  string
	err     error
}

// grabbed is the course picked up for a move.
type grabbed struct {
	slotID string
	index  int
	id     string
}

// boardModel shows one planner year at a time. A course is moved by picking
// it up, walking the cursor to the target position and dropping it; the drop
// goes through the move service like any other move.
type boardModel struct {
	app       *App
	plannerID string
	planner   *domain.Planner

	year, term, row int
	held            *grabbed

	status string
	err    error

	keys boardKeyMap
	help help.Model
}

func newBoardModel(app *App, plannerID string) *boardModel {
	return &boardModel{
		app:       app,
		plannerID: plannerID,
		keys:      defaultBoardKeys(),
		help:      help.New(),
	}
}

func (m *boardModel) Init() tea.Cmd {
	return m.load("")
}

func (m *boardModel) load(status string) tea.Cmd {
	app, id := m.app, m.plannerID
	return func() tea.Msg {
		p, err := app.Planners.GetByID(context.Background(), id)
		return plannerLoadedMsg{planner: p, status: status, err: err}
	}
}

func (m *boardModel) slotID() string {
	return domain.SlotID(m.year, domain.Terms[m.term])
}

func (m *boardModel) slotCourses() []string {
	if m.planner == nil {
		return nil
	}
	if i := m.planner.SlotIndex(m.slotID()); i >= 0 {
		return m.planner.Slots[i].Courses
	}
	return nil
}

// maxRow is the last cursor row in the current slot. While holding a course
// the cursor may sit one past the end to drop it there.
func (m *boardModel) maxRow() int {
	n := len(m.slotCourses())
	if m.held != nil && m.held.slotID != m.slotID() {
		return n
	}
	return max(n-1, 0)
}

func (m *boardModel) clampRow() {
	m.row = min(max(m.row, 0), m.maxRow())
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case plannerLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.planner, m.err, m.status = msg.planner, nil, msg.status
		m.year = min(m.year, max(m.planner.Years-1, 0))
		m.clampRow()
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if m.planner == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.row--
	case key.Matches(msg, m.keys.Down):
		m.row++
	case key.Matches(msg, m.keys.Left):
		m.term = (m.term + len(domain.Terms) - 1) % len(domain.Terms)
	case key.Matches(msg, m.keys.Right):
		m.term = (m.term + 1) % len(domain.Terms)
	case key.Matches(msg, m.keys.Year):
		m.year = (m.year + 1) % max(m.planner.Years, 1)
	case key.Matches(msg, m.keys.Cancel):
		m.held = nil
		m.status = ""
	case key.Matches(msg, m.keys.Grab):
		return m, m.grabOrDrop()
	case key.Matches(msg, m.keys.Remove):
		return m, m.remove()
	}
	m.clampRow()
	return m, nil
}

func (m *boardModel) grabOrDrop() tea.Cmd {
	if m.held == nil {
		ids := m.slotCourses()
		if m.row >= len(ids) {
			return nil
		}
		m.held = &grabbed{slotID: m.slotID(), index: m.row, id: ids[m.row]}
		m.status = "Moving: pick a position and press space"
		return nil
	}

	held, dest, index := *m.held, m.slotID(), m.row
	m.held = nil
	app, plannerID := m.app, m.plannerID
	return func() tea.Msg {
		res, err := app.Moves.Move(context.Background(), service.MoveRequest{
			PlannerID: plannerID,
			Instruction: move.Instruction{
				Token:       held.id,
				Source:      move.Location{Container: move.TermSlot(held.slotID), Index: held.index},
				Destination: move.Location{Container: move.TermSlot(dest), Index: index},
			},
		})
		if err != nil {
			return plannerLoadedMsg{err: err}
		}
		status := "Moved to " + formatter.SlotName(dest)
		if len(res.Warnings) > 0 {
			status = strings.Join(res.Warnings, "; ")
		}
		return plannerLoadedMsg{planner: res.Planner, status: status}
	}
}

func (m *boardModel) remove() tea.Cmd {
	if m.held != nil || m.row >= len(m.slotCourses()) {
		return nil
	}
	app, plannerID, slotID, index := m.app, m.plannerID, m.slotID(), m.row
	return func() tea.Msg {
		p, err := app.Planners.RemoveCourse(context.Background(), plannerID, slotID, index)
		return plannerLoadedMsg{planner: p, status: "Removed", err: err}
	}
}

func (m *boardModel) View() string {
	if m.planner == nil {
		if m.err != nil {
			return formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n"
		}
		return formatter.Dim("Loading...") + "\n"
	}

	var b strings.Builder
	b.WriteString(formatter.StyleBold.Render(m.planner.Title) + "  " +
		formatter.StyleHeader.Render(formatter.YearName(m.year)) +
		formatter.Dim(fmt.Sprintf(" of %d", m.planner.Years)) + "\n\n")

	cols := make([]string, 0, len(domain.Terms))
	for i, term := range domain.Terms {
		cols = append(cols, m.column(i, term))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...) + "\n")

	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	case m.status != "":
		b.WriteString(formatter.StyleYellow.Render(m.status) + "\n")
	default:
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

var (
	boardColumn = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(formatter.ColorDim).
			Width(24).
			Padding(0, 1)
	boardColumnActive = boardColumn.BorderForeground(formatter.ColorHeader)
	boardCursor       = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
)

func (m *boardModel) column(i int, term domain.Term) string {
	slotID := domain.SlotID(m.year, term)
	active := i == m.term
	lines := []string{formatter.StyleHeader.Render(string(term))}

	courses, err := m.planner.CoursesInSlot(slotID)
	if err != nil {
		lines = append(lines, formatter.StyleRed.Render(err.Error()))
	}
	for row, c := range courses {
		name := domain.TruncateTitle(c.DisplayName(), 18)
		if m.held != nil && m.held.id == c.ID {
			name = formatter.StylePurple.Render("» " + name)
		}
		if active && row == m.row {
			name = boardCursor.Render("▸ ") + name
		} else {
			name = "  " + name
		}
		lines = append(lines, name)
	}
	if active && m.held != nil && m.row >= len(courses) {
		lines = append(lines, boardCursor.Render("▸ ")+formatter.Dim("drop here"))
	}
	if len(courses) == 0 && !(active && m.held != nil) {
		lines = append(lines, formatter.Dim("  empty"))
	}
	lines = append(lines, formatter.Dim(formatter.Credits(domain.TotalCredits(courses))))

	style := boardColumn
	if active {
		style = boardColumnActive
	}
	return style.Render(strings.Join(lines, "\n"))
}
