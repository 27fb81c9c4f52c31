package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-towers/internal/storage"
)

// Stats layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the per-size sidebar
	sidebarWidth       = 26  // Width of the per-size sidebar
	maxSolves          = 100 // Max solves to load
)

// StatsKeyMap defines the key bindings for the stats screen.
type StatsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "enter"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel is the Bubble Tea model for the solve history screen.
type StatsModel struct {
	store       *storage.Store
	solves      []storage.Solve
	sizes       []storage.SizeStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        StatsKeyMap
	theme       Theme
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewStatsModel creates a new stats model and loads the history.
func NewStatsModel(store *storage.Store, width, height int, theme Theme) StatsModel {
	m := StatsModel{
		store:       store,
		keys:        DefaultStatsKeyMap(),
		help:        help.New(),
		theme:       theme,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with columns fitted to the width.
func (m *StatsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Size", Width: 7},
		{Title: "Towers", Width: 7},
		{Title: "Moves", Width: 7},
		{Title: "Date", Width: 14},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 4 // Sidebar + border + gap
	}
	if extra := tableWidth - 49; extra > 0 {
		columns[4].Width += min(extra, 6)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the solve history from the store.
func (m *StatsModel) load() {
	m.solves, m.sizes, m.loadErr = nil, nil, nil
	if m.store != nil {
		if m.solves, m.loadErr = m.store.RecentSolves(maxSolves); m.loadErr == nil {
			m.sizes, m.loadErr = m.store.SolveStats()
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded solves.
func (m *StatsModel) updateTableRows() {
	rows := make([]table.Row, len(m.solves))
	for i, s := range m.solves {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%dx%d", s.Width, s.Height),
			fmt.Sprintf("%d", s.Towers),
			fmt.Sprintf("%d", s.Moves),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats screen.
func (m StatsModel) View() string {
	var b strings.Builder

	total := 0
	for _, s := range m.sizes {
		total += s.Solved
	}
	title := fmt.Sprintf("SOLVED PUZZLES - %d", total)
	b.WriteString(m.theme.StatsTitle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	content := m.theme.StatsPanel.Render(m.renderTableContent())
	if m.showSidebar {
		sidebar := m.theme.StatsPanel.Width(sidebarWidth).Render(m.renderSizes())
		content = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", content)
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, content))

	b.WriteString("\n")
	b.WriteString(m.theme.HelpBar.Render(m.help.View(m.keys)))
	return b.String()
}

// renderSizes renders the best results per board size.
func (m StatsModel) renderSizes() string {
	var sb strings.Builder
	sb.WriteString("Best per size\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")
	if len(m.sizes) == 0 {
		sb.WriteString("none yet\n")
	}
	for _, s := range m.sizes {
		fmt.Fprintf(&sb, "%5s  %3d moves (%dx)\n", fmt.Sprintf("%dx%d", s.Width, s.Height), s.BestMoves, s.Solved)
	}
	return sb.String()
}

// renderTableContent renders the table or an empty message.
func (m StatsModel) renderTableContent() string {
	switch {
	case m.store == nil:
		return m.theme.StatsEmpty.Render("No database available.")
	case m.loadErr != nil:
		return m.theme.StatsEmpty.Render("Could not load history:\n" + m.loadErr.Error())
	case len(m.solves) == 0:
		return m.theme.StatsEmpty.Render("No puzzles solved yet.\nFlatten every tower to get on the board!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}

// statsProgram runs the stats screen on its own and quits when done.
type statsProgram struct {
	StatsModel
}

func (p statsProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := p.StatsModel.Update(msg)
	p.StatsModel = m.(StatsModel)
	if p.IsQuitting() || p.IsGoingBack() {
		return p, tea.Quit
	}
	return p, cmd
}

func (p statsProgram) View() string {
	if p.IsQuitting() || p.IsGoingBack() {
		return ""
	}
	return p.StatsModel.View()
}

// RunStats runs the stats screen as a standalone program.
func RunStats(store *storage.Store, width, height int) error {
	model := statsProgram{NewStatsModel(store, width, height, DefaultTheme(nil))}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
