package towers

import (
	"fmt"
	"strings"

	platformcore "github.com/vovakirdan/tui-towers/internal/core"
	"github.com/vovakirdan/tui-towers/internal/games/towers/core"
)

// Rendering layout constants
const (
	tileW   = 2 // Terminal columns per tile
	hudRows = 2 // Title line and separator
)

// boardLayout is the screen position of tile (0,0).
type boardLayout struct {
	x, y int
}

func (l boardLayout) cell(c core.Coord) (int, int) {
	return l.x + c.X*tileW, l.y + c.Y
}

// MinScreenSize returns the smallest screen that fits a w x h board with
// its arrow margins.
func MinScreenSize(w, h int) (int, int) {
	return (w + 2) * tileW, h + 2 + hudRows
}

// layout centres the board below the HUD, leaving one tile of margin on
// every side for the move arrows.
func (s *Session) layout(dst *platformcore.Screen) (boardLayout, bool) {
	needW, needH := MinScreenSize(s.field.Width(), s.field.Height())
	if dst.Width() < needW || dst.Height() < needH {
		return boardLayout{}, false
	}
	return boardLayout{
		x: (dst.Width()-needW)/2 + tileW,
		y: hudRows + (dst.Height()-needH)/2 + 1,
	}, true
}

// Render draws the HUD and the board into dst.
func (s *Session) Render(dst *platformcore.Screen) {
	dst.Clear()
	s.renderHUD(dst)

	l, ok := s.layout(dst)
	if !ok {
		needW, needH := MinScreenSize(s.field.Width(), s.field.Height())
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need at least %dx%d", needW, needH))
		return
	}

	s.renderTiles(dst, l)
	s.renderHover(dst, l)
	s.renderArrows(dst, l)
	if s.field.IsSolved() {
		s.renderBanner(dst, l)
	}
}

// renderHUD draws the status line and separator.
func (s *Session) renderHUD(dst *platformcore.Screen) {
	left := 0
	for _, t := range s.field.Towers() {
		if !t.IsFlat() {
			left++
		}
	}

	hud := fmt.Sprintf(" TOWERS  %dx%d | Towers: %d | Left: %d | Moves: %d",
		s.field.Width(), s.field.Height(), s.field.TowerCount(), left, s.moves)
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)

	mode := "[" + strings.ToUpper(s.mode.String()) + "] "
	dst.DrawTextWithColor(dst.Width()-len(mode), 0, mode, platformcore.ColorYellow)

	for x := 0; x < dst.Width(); x++ {
		dst.SetWithColor(x, 1, '─', platformcore.ColorGray)
	}
}

// renderTiles draws every playable tile: tower colour for owned tiles,
// the remaining height on origins and a dot on empty tiles.
func (s *Session) renderTiles(dst *platformcore.Screen, l boardLayout) {
	f := s.field
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			c := core.C(x, y)
			if !f.Playable(c) {
				continue
			}
			sx, sy := l.cell(c)

			ti, owned := f.TowerAt(c)
			if !owned {
				dst.DrawTextWithColor(sx, sy, " ·", platformcore.ColorDarkGray)
				continue
			}

			text := "  "
			if t := f.Tower(ti); t.Origin == c {
				text = fmt.Sprintf("%2d", t.FlattenedHeight)
			}
			dst.DrawTextWithColors(sx, sy, text, platformcore.ColorDefault, s.TowerColor(ti))
		}
	}
}

func (s *Session) renderHover(dst *platformcore.Screen, l boardLayout) {
	if s.exit != ExitNone {
		return
	}
	bg := platformcore.ColorBrightWhite
	if s.mode != ModeSelect {
		bg = platformcore.ColorBrightYellow
	}
	sx, sy := l.cell(s.hover)
	for i := 0; i < tileW; i++ {
		dst.SetWithColors(sx+i, sy, dst.Get(sx+i, sy), platformcore.ColorBlack, bg)
	}
}

// renderArrows marks where the selected tower can move: just outside its
// bounds, in line with the hover. In deflatten mode the arrows point back
// at the tower.
func (s *Session) renderArrows(dst *platformcore.Screen, l boardLayout) {
	if s.mode == ModeSelect || !s.hasSel || s.exit != ExitNone {
		return
	}
	ti, ok := s.field.TowerAt(s.selected)
	if !ok {
		return
	}
	b := s.field.Tower(ti).Bounds
	h := s.hover
	if !b.Contains(h.X, h.Y) {
		return
	}

	left, right, up, down := '◀', '▶', '▲', '▼'
	if s.mode == ModeDeflatten {
		left, right, up, down = right, left, down, up
	}

	s.drawArrow(dst, l, core.C(b.X-1, h.Y), tileW-1, left)
	s.drawArrow(dst, l, core.C(b.Right(), h.Y), 0, right)
	s.drawArrow(dst, l, core.C(h.X, b.Y-1), tileW-1, up)
	s.drawArrow(dst, l, core.C(h.X, b.Bottom()), tileW-1, down)
}

func (s *Session) drawArrow(dst *platformcore.Screen, l boardLayout, c core.Coord, col int, r rune) {
	sx, sy := l.cell(c)
	bg := dst.GetCell(sx+col, sy).Bg
	dst.SetWithColors(sx+col, sy, r, platformcore.ColorBrightYellow, bg)
}

// renderBanner shows the solved message over the half of the board away
// from the hover.
func (s *Session) renderBanner(dst *platformcore.Screen, l boardLayout) {
	row := l.y + s.field.Height() - 1
	if s.hover.Y > s.field.Height()/2 {
		row = l.y
	}
	dst.DrawTextCentered(row, " SOLVED! Press Enter ", platformcore.ColorBrightYellow)
}

// renderOverlay draws a boxed two-line message in the middle of the screen.
func renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	box := platformcore.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		for x := box.X + 1; x < box.Right()-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, platformcore.ColorGray)
	dst.DrawTextCentered(box.Y+1, line1, platformcore.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2, platformcore.ColorGray)
}

// FormatHeights renders the field as text: the flattened height on every
// origin, '+' on tiles a tower has spread onto, '.' on empty tiles and
// '#' on masked tiles.
func FormatHeights(f *core.Field) string {
	var sb strings.Builder
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			c := core.C(x, y)
			ti, owned := f.TowerAt(c)
			switch {
			case !f.Playable(c):
				sb.WriteString("  #")
			case !owned:
				sb.WriteString("  .")
			case f.Tower(ti).Origin == c:
				fmt.Fprintf(&sb, "%3d", f.Tower(ti).FlattenedHeight)
			default:
				sb.WriteString("  +")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
