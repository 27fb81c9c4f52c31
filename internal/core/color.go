package core

// Color represents a colour of a screen cell.
// Named colours map to ANSI codes in the platform layer; the tower palette
// occupies its own range starting at ColorTower.
type Color uint8

// Predefined colors for UI elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBlack
	ColorBrightYellow
	ColorBrightWhite
	ColorGray
	ColorDarkGray
)

// TowerColors is the number of distinct tower colours.
const TowerColors = 32

// ColorTower is the first colour of the tower palette.
const ColorTower Color = 64

// TowerColor returns palette entry i, wrapping around.
func TowerColor(i int) Color {
	return ColorTower + Color(((i%TowerColors)+TowerColors)%TowerColors)
}

// IsTower reports whether c is a tower palette entry, and which one.
func (c Color) IsTower() (int, bool) {
	if c < ColorTower || c >= ColorTower+TowerColors {
		return 0, false
	}
	return int(c - ColorTower), true
}
