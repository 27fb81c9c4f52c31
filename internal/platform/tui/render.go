package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-towers/internal/core"
)

// baseColors maps the named core colours to ANSI palette entries.
var baseColors = map[core.Color]lipgloss.Color{
	core.ColorRed:          lipgloss.Color("1"),
	core.ColorGreen:        lipgloss.Color("2"),
	core.ColorYellow:       lipgloss.Color("3"),
	core.ColorBlue:         lipgloss.Color("4"),
	core.ColorMagenta:      lipgloss.Color("5"),
	core.ColorCyan:         lipgloss.Color("6"),
	core.ColorWhite:        lipgloss.Color("7"),
	core.ColorBlack:        lipgloss.Color("16"),
	core.ColorBrightYellow: lipgloss.Color("11"),
	core.ColorBrightWhite:  lipgloss.Color("15"),
	core.ColorGray:         lipgloss.Color("245"),
	core.ColorDarkGray:     lipgloss.Color("238"),
}

// towerShade is one tower background and the text colour readable on it.
type towerShade struct {
	bg  lipgloss.Color
	ink lipgloss.Color
}

const (
	darkInk  = lipgloss.Color("16")
	lightInk = lipgloss.Color("231")
)

// towerPalette holds the 32 tower colours, ordered so that neighbours in
// the permutation are easy to tell apart.
var towerPalette = [core.TowerColors]towerShade{
	{"196", lightInk}, {"208", darkInk}, {"226", darkInk}, {"46", darkInk},
	{"51", darkInk}, {"21", lightInk}, {"201", darkInk}, {"130", lightInk},
	{"160", lightInk}, {"214", darkInk}, {"190", darkInk}, {"35", darkInk},
	{"39", darkInk}, {"57", lightInk}, {"163", lightInk}, {"94", lightInk},
	{"203", darkInk}, {"220", darkInk}, {"118", darkInk}, {"30", lightInk},
	{"33", lightInk}, {"93", lightInk}, {"205", darkInk}, {"101", lightInk},
	{"124", lightInk}, {"180", darkInk}, {"149", darkInk}, {"72", darkInk},
	{"67", lightInk}, {"141", darkInk}, {"218", darkInk}, {"137", lightInk},
}

// style builds the lipgloss style of one foreground/background pair. Text
// on a tower colour with no explicit foreground gets the tower's ink.
func style(r *lipgloss.Renderer, fg, bg core.Color) lipgloss.Style {
	st := r.NewStyle()
	if ti, ok := bg.IsTower(); ok {
		shade := towerPalette[ti]
		st = st.Background(shade.bg)
		if fg == core.ColorDefault {
			st = st.Foreground(shade.ink)
		}
	} else if c, ok := baseColors[bg]; ok {
		st = st.Background(c)
	}
	if c, ok := baseColors[fg]; ok {
		st = st.Foreground(c)
	}
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colours to minimize ANSI escape
// sequences. A nil renderer uses the default one.
func RenderScreen(s *core.Screen, r *lipgloss.Renderer) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same colours for efficiency
		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != start.Fg || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.Fg == core.ColorDefault && start.Bg == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(style(r, start.Fg, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}
