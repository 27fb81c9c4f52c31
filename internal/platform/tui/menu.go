package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-towers/internal/core"
	"github.com/vovakirdan/tui-towers/internal/games/towers"
	towerscore "github.com/vovakirdan/tui-towers/internal/games/towers/core"
)

// MenuChoice is what the player picked in the start menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceContinue
	ChoiceNewGame
	ChoiceStats
	ChoiceQuit
)

type menuItem int

const (
	itemContinue menuItem = iota
	itemNewGame
	itemWidth
	itemHeight
	itemSound
	itemStats
	itemHowTo
	itemQuit
)

var menuDescriptions = map[menuItem]string{
	itemContinue: "Resume the unfinished board",
	itemNewGame:  "Generate a fresh puzzle",
	itemWidth:    "Columns of the next puzzle",
	itemHeight:   "Rows of the next puzzle",
	itemSound:    "Ring the terminal bell on a solve",
	itemStats:    "Solved puzzles and best move counts",
	itemHowTo:    "Rules and controls",
	itemQuit:     "Save and leave",
}

const howToPlay = `Every number is a tower of that height.
Spread the towers until every tile is covered
and every tower reads 1.

A tower grows in straight arms from its base and
covers exactly as many tiles as its height.

space  select a tower and spread it with the arrows
x      select a tower and pull it back with the arrows
       press the same key again to let go
enter  leave the board, the game is kept`

// MenuModel is the start menu: continue, new game and the board options.
// Every key press moves the seed of the next puzzle.
type MenuModel struct {
	settings  towers.Settings
	items     []menuItem
	cursor    int
	width     int
	height    int
	hasStats  bool
	showHowTo bool
	choice    MenuChoice
	keyMapper *KeyMapper
	keys      KeyMap
	help      help.Model
	theme     Theme
}

// NewMenuModel creates a new menu model. The stats entry is only offered
// when hasStats is set.
func NewMenuModel(settings towers.Settings, hasStats bool, width, height int, theme Theme) MenuModel {
	keys := DefaultKeyMap()
	m := MenuModel{
		settings:  settings,
		width:     width,
		height:    height,
		hasStats:  hasStats,
		keyMapper: NewKeyMapper(keys),
		keys:      keys,
		help:      help.New(),
		theme:     theme,
	}
	m.buildItems()
	return m
}

func (m *MenuModel) buildItems() {
	m.items = m.items[:0]
	if m.settings.CanContinue() {
		m.items = append(m.items, itemContinue)
	}
	m.items = append(m.items, itemNewGame, itemWidth, itemHeight, itemSound)
	if m.hasStats {
		m.items = append(m.items, itemStats)
	}
	m.items = append(m.items, itemHowTo, itemQuit)
	m.cursor = core.Clamp(m.cursor, 0, len(m.items)-1)
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	frame := core.NewInputFrame()
	if m.keyMapper.MapKeyToFrame(msg, &frame) {
		m.choice = ChoiceQuit
		return m, nil
	}
	m.settings.AlterSeed(frame)

	if m.showHowTo {
		// Any key closes the instructions
		m.showHowTo = false
		return m, nil
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionLeft:
		m.adjust(-1)
	case MenuActionRight:
		m.adjust(+1)
	case MenuActionSelect:
		m.activate()
	}

	return m, nil
}

// adjust changes the option under the cursor.
func (m *MenuModel) adjust(delta int) {
	switch m.items[m.cursor] {
	case itemWidth:
		m.settings.Width = core.Clamp(m.settings.Width+delta, towers.MinSize, towerscore.MaxWidth)
	case itemHeight:
		m.settings.Height = core.Clamp(m.settings.Height+delta, towers.MinSize, towerscore.MaxHeight)
	case itemSound:
		m.settings.Sound = !m.settings.Sound
	}
}

func (m *MenuModel) activate() {
	switch m.items[m.cursor] {
	case itemContinue:
		m.choice = ChoiceContinue
	case itemNewGame:
		m.choice = ChoiceNewGame
	case itemSound:
		m.settings.Sound = !m.settings.Sound
	case itemStats:
		m.choice = ChoiceStats
	case itemHowTo:
		m.showHowTo = true
	case itemQuit:
		m.choice = ChoiceQuit
	}
}

func (m MenuModel) label(item menuItem) string {
	value := func(s string) string { return m.theme.MenuItemValue.Render(s) }
	switch item {
	case itemContinue:
		return "Continue"
	case itemNewGame:
		return "New game"
	case itemWidth:
		return "Width   " + value(fmt.Sprintf("< %2d >", m.settings.Width))
	case itemHeight:
		return "Height  " + value(fmt.Sprintf("< %2d >", m.settings.Height))
	case itemSound:
		if m.settings.Sound {
			return "Sound   " + value("  on  ")
		}
		return "Sound   " + value("  off ")
	case itemStats:
		return "Stats"
	case itemHowTo:
		return "How to play"
	default:
		return "Quit"
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("T O W E R S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuSubtitle.Render("Flatten every tower"), m.width))
	b.WriteString("\n\n")

	if m.showHowTo {
		panel := m.theme.HelpBorder.Render(m.theme.HelpText.Render(howToPlay))
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, panel))
		b.WriteString("\n\n")
		b.WriteString(centerText(m.theme.MenuDescription.Render("Press any key"), m.width))
		return b.String()
	}

	lines := make([]string, len(m.items))
	for i, item := range m.items {
		if i == m.cursor {
			lines[i] = m.theme.MenuItemActive.Render("> " + m.label(item) + " ")
		} else {
			lines[i] = m.theme.MenuItemNormal.Render("  " + m.label(item) + " ")
		}
	}
	list := lipgloss.JoinVertical(lipgloss.Left, lines...)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, list))
	b.WriteString("\n\n")

	desc := menuDescriptions[m.items[m.cursor]]
	b.WriteString(centerText(m.theme.MenuDescription.Render(desc), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.theme.HelpBar.Render(m.help.View(menuKeys(m.keys))), m.width))
	return b.String()
}

// Choice returns what the player picked, or ChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Settings returns the settings as edited in the menu, including the
// moved seed.
func (m MenuModel) Settings() towers.Settings {
	return m.settings
}

// menuKeys is the help bar of the menu.
type menuKeys KeyMap

func (k menuKeys) ShortHelp() []key.Binding {
	up := k.Up
	up.SetHelp("↑/↓", "choose")
	left := k.Left
	left.SetHelp("←/→", "change")
	sel := k.Menu
	sel.SetHelp("enter", "select")
	return []key.Binding{up, left, sel, k.Quit}
}

func (k menuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
