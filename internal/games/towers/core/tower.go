package core

import platformcore "github.com/vovakirdan/tui-towers/internal/core"

// Tower is a single puzzle piece.
type Tower struct {
	Origin          Coord // Seed tile, shows the number and starts every move
	Height          int   // Total height, fixed after generation
	FlattenedHeight int   // Height still stacked on the origin, 1..Height
	Bounds          platformcore.Rect
}

// newTower creates an unflattened tower with 1x1 bounds at its origin.
func newTower(origin Coord, height int) Tower {
	return Tower{
		Origin:          origin,
		Height:          height,
		FlattenedHeight: height,
		Bounds:          platformcore.NewRect(origin.X, origin.Y, 1, 1),
	}
}

// IsFlat reports whether the tower has been reduced to height 1.
func (t Tower) IsFlat() bool {
	return t.FlattenedHeight <= 1
}

// Spread returns how many tiles the tower currently covers besides its origin.
func (t Tower) Spread() int {
	return t.Height - t.FlattenedHeight
}
