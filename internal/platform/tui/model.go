package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-towers/internal/core"
	"github.com/vovakirdan/tui-towers/internal/games/towers"
	"github.com/vovakirdan/tui-towers/internal/storage"
)

// view is the screen the model is showing.
type view int

const (
	viewMenu view = iota
	viewGame
	viewStats
)

// Options configures a Model.
type Options struct {
	Store    *storage.Store // Optional; nil disables saving and stats
	Slot     string         // Save slot of the settings container
	Persist  bool           // Write the settings to Slot on every change
	Moves    int            // Move counter of the stored unfinished game
	Config   core.RuntimeConfig
	Logger   *log.Logger        // Optional; nil discards
	Bell     io.Writer          // Where the sound cue goes; nil is silent
	Renderer *lipgloss.Renderer // Optional; nil uses the default renderer
}

// Model is the Bubble Tea model for a towers session: start menu, board
// and stats screen. It owns the settings container and writes it back to
// the store whenever a game starts or ends.
type Model struct {
	opts       Options
	settings   towers.Settings
	savedMoves int
	logger     *log.Logger
	theme      Theme
	keys       KeyMap
	keyMapper  *KeyMapper
	help       help.Model
	menu       MenuModel
	stats      StatsModel
	session    *towers.Session
	gameSeed   string // Seed of the running game, empty when continued
	screen     *core.Screen
	inputFrame core.InputFrame
	view       view
	quitting   bool
}

// NewModel creates a new model that starts on the menu.
func NewModel(settings towers.Settings, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Slot == "" {
		opts.Slot = storage.DefaultSlot
	}
	if opts.Config.TickRate <= 0 {
		opts.Config.TickRate = core.DefaultConfig().TickRate
	}

	keys := DefaultKeyMap()
	theme := DefaultTheme(opts.Renderer)
	m := Model{
		opts:       opts,
		settings:   settings,
		savedMoves: opts.Moves,
		logger:     opts.Logger,
		theme:      theme,
		keys:       keys,
		keyMapper:  NewKeyMapper(keys),
		help:       help.New(),
		screen:     core.NewScreen(opts.Config.ScreenW, max(opts.Config.ScreenH-1, 1)),
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = opts.Config.ScreenW
	m.resetMenu()
	return m
}

func (m *Model) resetMenu() {
	m.menu = NewMenuModel(m.settings, m.opts.Store != nil, m.opts.Config.ScreenW, m.opts.Config.ScreenH, m.theme)
	m.view = viewMenu
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case tea.KeyMsg:
		switch m.view {
		case viewGame:
			return m.handleGameKey(msg)
		case viewStats:
			return m.updateStats(msg)
		default:
			return m.updateMenu(msg)
		}
	}

	return m, nil
}

// handleResize processes window resize events. The board keeps its state;
// the last row is reserved for the help bar.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Config.ScreenW = msg.Width
	m.opts.Config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width

	menu, _ := m.menu.Update(msg)
	m.menu = menu.(MenuModel)
	if m.view == viewStats {
		stats, _ := m.stats.Update(msg)
		m.stats = stats.(StatsModel)
	}
	return m, nil
}

// updateMenu passes input to the start menu and acts on its choice.
func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	menu, cmd := m.menu.Update(msg)
	m.menu = menu.(MenuModel)
	m.settings = m.menu.Settings()

	switch m.menu.Choice() {
	case ChoiceContinue:
		m.continueGame()
	case ChoiceNewGame:
		m.newGame()
	case ChoiceStats:
		m.stats = NewStatsModel(m.opts.Store, m.opts.Config.ScreenW, m.opts.Config.ScreenH, m.theme)
		m.view = viewStats
	case ChoiceQuit:
		m.saveSettings()
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// updateStats passes input to the stats screen.
func (m Model) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	stats, cmd := m.stats.Update(msg)
	m.stats = stats.(StatsModel)

	if m.stats.IsQuitting() {
		m.saveSettings()
		m.quitting = true
		return m, tea.Quit
	}
	if m.stats.IsGoingBack() {
		m.resetMenu()
	}
	return m, cmd
}

// handleGameKey collects board input for the next tick.
func (m Model) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Reset):
		m.session.ResetToStartState()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		// Leaving mid-game keeps the board for later
		exit := towers.ExitNotCompleted
		if m.session.Solved() {
			exit = towers.ExitCompleted
		}
		m.leaveGame(exit)
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick runs one frame of board input.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	tick := tickCmd(m.opts.Config.TickRate)
	if m.view != viewGame || m.inputFrame.Empty() {
		return m, tick
	}

	m.settings.AlterSeed(m.inputFrame)
	result := m.session.Step(m.inputFrame)
	m.inputFrame.Clear()

	var cmds []tea.Cmd
	for _, cue := range result.Cues {
		if cue == core.CueSolved {
			m.logger.Debug("board solved", "moves", result.State.Moves)
			if m.settings.Sound && m.opts.Bell != nil {
				cmds = append(cmds, bellCmd(m.opts.Bell))
			}
		}
	}

	if exit := m.session.Exit(); exit != towers.ExitNone {
		m.leaveGame(exit)
	}
	return m, tea.Batch(append(cmds, tick)...)
}

// newGame generates a board from the current seed. The stored unfinished
// game is dropped before play starts.
func (m *Model) newGame() {
	m.settings.FieldData = nil
	m.savedMoves = 0
	m.saveSettings()

	m.session = towers.NewGame(m.settings.Width, m.settings.Height, m.settings.Seed)
	m.gameSeed = towers.FormatSeed(m.settings.Seed)
	m.startGame()
	m.logger.Info("new game", "size", fmt.Sprintf("%dx%d", m.settings.Width, m.settings.Height),
		"towers", m.session.Field().TowerCount(), "seed", m.gameSeed)
}

// continueGame restores the stored unfinished game. A board that cannot
// be decoded is dropped and the menu stays up.
func (m *Model) continueGame() {
	session, _, err := towers.DecodeSession(m.settings.FieldData)
	if err != nil {
		m.logger.Warn("cannot restore saved game", "slot", m.opts.Slot, "error", err)
		m.settings.FieldData = nil
		m.savedMoves = 0
		m.saveSettings()
		m.resetMenu()
		return
	}

	session.SetMoves(m.savedMoves)
	m.session = session
	m.gameSeed = ""
	m.startGame()
	m.logger.Info("game continued", "slot", m.opts.Slot, "moves", m.savedMoves)
}

func (m *Model) startGame() {
	m.inputFrame.Clear()
	m.help.ShowAll = false
	m.view = viewGame
}

// leaveGame stores the outcome of the board and returns to the menu. A
// solved board is recorded and cleared; any other board is kept.
func (m *Model) leaveGame(exit towers.Exit) {
	if exit == towers.ExitCompleted {
		m.settings.FieldData = nil
		m.savedMoves = 0
		m.recordSolve()
	} else {
		m.settings.FieldData = m.session.Encode()
		m.savedMoves = m.session.Moves()
	}
	m.saveSettings()
	m.session = nil
	m.resetMenu()
}

func (m *Model) recordSolve() {
	if m.opts.Store == nil {
		return
	}
	f := m.session.Field()
	seed := m.gameSeed
	if seed == "" {
		seed = "continued"
	}
	_, err := m.opts.Store.RecordSolve(storage.Solve{
		Width:  f.Width(),
		Height: f.Height(),
		Towers: f.TowerCount(),
		Seed:   seed,
		Moves:  m.session.Moves(),
	})
	if err != nil {
		m.logger.Error("cannot record solve", "error", err)
	}
}

// saveSettings writes the settings container to the save slot.
func (m *Model) saveSettings() {
	if !m.opts.Persist || m.opts.Store == nil {
		return
	}
	data, err := m.settings.Encode()
	if err != nil {
		m.logger.Error("cannot encode settings", "error", err)
		return
	}
	if err := m.opts.Store.SaveSlot(m.opts.Slot, data, m.savedMoves); err != nil {
		m.logger.Error("cannot save settings", "slot", m.opts.Slot, "error", err)
	}
}

// saveScreenshot saves the current board to a text file.
func (m *Model) saveScreenshot() {
	m.session.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".towers", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}

	path := filepath.Join(dir, "towers_"+time.Now().Format("20060102_150405")+".txt")
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		m.session.Render(m.screen)
		bar := m.theme.HelpBar.Render(m.help.View(m.keys.ForMode(m.session.Mode())))
		return RenderScreen(m.screen, m.opts.Renderer) + "\n" + bar
	case viewStats:
		return m.stats.View()
	default:
		return m.menu.View()
	}
}

// Settings returns the current settings container.
func (m Model) Settings() towers.Settings {
	return m.settings
}

// Session returns the running game, or nil outside the board.
func (m Model) Session() *towers.Session {
	if m.view != viewGame {
		return nil
	}
	return m.session
}

// bellCmd rings the terminal bell.
func bellCmd(w io.Writer) tea.Cmd {
	return func() tea.Msg {
		//nolint:errcheck // A lost bell is harmless
		w.Write([]byte{'\a'})
		return nil
	}
}

// Run starts the Bubble Tea program and returns the final settings.
func Run(settings towers.Settings, opts Options) (towers.Settings, error) {
	if opts.Bell == nil {
		opts.Bell = os.Stdout
	}
	model := NewModel(settings, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return settings, err
	}
	if fm, ok := final.(Model); ok {
		return fm.Settings(), nil
	}
	return settings, nil
}
