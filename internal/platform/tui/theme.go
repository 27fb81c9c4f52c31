package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the lipgloss styles of the menu and stats screens.
type Theme struct {
	// Menu styles
	MenuTitle       lipgloss.Style
	MenuSubtitle    lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemValue   lipgloss.Style
	MenuDescription lipgloss.Style

	// Instructions panel
	HelpBorder lipgloss.Style
	HelpText   lipgloss.Style

	// Stats screen
	StatsTitle lipgloss.Style
	StatsPanel lipgloss.Style
	StatsEmpty lipgloss.Style

	// Help bar below every screen
	HelpBar lipgloss.Style
}

// DefaultTheme returns the default visual theme built on r.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Theme{
		MenuTitle:       r.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuSubtitle:    r.NewStyle().Foreground(lipgloss.Color("245")),
		MenuItemNormal:  r.NewStyle().Foreground(lipgloss.Color("250")),
		MenuItemActive:  r.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true),
		MenuItemValue:   r.NewStyle().Foreground(lipgloss.Color("226")),
		MenuDescription: r.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),

		HelpBorder: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2),
		HelpText: r.NewStyle().Foreground(lipgloss.Color("252")),

		StatsTitle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1),
		StatsPanel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		StatsEmpty: r.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),

		HelpBar: r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
