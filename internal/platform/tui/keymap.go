package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-towers/internal/core"
	"github.com/vovakirdan/tui-towers/internal/games/towers"
)

// KeyMap defines the key bindings shared by the menu and the board.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Flatten    key.Binding
	Deflatten  key.Binding
	Menu       key.Binding
	Back       key.Binding
	ShoulderL  key.Binding
	ShoulderR  key.Binding
	Reset      key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Flatten, k.Deflatten, k.Menu, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Flatten, k.Deflatten, k.Reset},
		{k.Menu, k.Back, k.Screenshot},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Flatten: key.NewBinding(
			key.WithKeys(" ", "f"),
			key.WithHelp("space", "flatten"),
		),
		Deflatten: key.NewBinding(
			key.WithKeys("x", "g"),
			key.WithHelp("x", "deflatten"),
		),
		Menu: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "menu"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		ShoulderL: key.NewBinding(
			key.WithKeys("["),
		),
		ShoulderR: key.NewBinding(
			key.WithKeys("]"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart board"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ForMode returns a copy of the key map whose help text describes what
// the keys do in the given input mode.
func (k KeyMap) ForMode(mode towers.Mode) KeyMap {
	switch mode {
	case towers.ModeFlatten:
		k.Up.SetHelp("arrows", "spread")
		k.Flatten.SetHelp("space", "done")
		k.Deflatten.SetHelp("x", "deflatten")
	case towers.ModeDeflatten:
		k.Up.SetHelp("arrows", "pull back")
		k.Flatten.SetHelp("space", "flatten")
		k.Deflatten.SetHelp("x", "done")
	default:
		k.Up.SetHelp("arrows", "move")
		k.Flatten.SetHelp("space", "flatten")
		k.Deflatten.SetHelp("x", "deflatten")
	}
	return k
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Flatten):
		return core.ActionFlatten, false
	case key.Matches(msg, k.Deflatten):
		return core.ActionDeflatten, false
	case key.Matches(msg, k.Menu):
		return core.ActionMenu, false
	case key.Matches(msg, k.Back):
		return core.ActionSelect, false
	case key.Matches(msg, k.ShoulderL):
		return core.ActionShoulderL, false
	case key.Matches(msg, k.ShoulderR):
		return core.ActionShoulderR, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	action, isQuit := km.MapKey(msg)
	if isQuit {
		return MenuActionQuit
	}
	switch action {
	case core.ActionUp:
		return MenuActionUp
	case core.ActionDown:
		return MenuActionDown
	case core.ActionLeft:
		return MenuActionLeft
	case core.ActionRight:
		return MenuActionRight
	case core.ActionMenu, core.ActionFlatten:
		return MenuActionSelect
	case core.ActionSelect:
		return MenuActionBack
	}
	return MenuActionNone
}
