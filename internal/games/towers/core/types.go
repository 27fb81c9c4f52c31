// Package core provides the puzzle engine for the Towers game: the playing
// field, its towers, the optional playability mask, the deterministic
// generator and the binary codec. It is UI-agnostic and performs no I/O.
package core

import "fmt"

// Field size limits. A 30x20 field keeps every tower height below 50.
const (
	MaxWidth  = 30
	MaxHeight = 20
	MaxArea   = MaxWidth * MaxHeight
)

// Coord represents a tile position on the field.
// X increases to the right, Y increases downward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Step returns the neighbouring coordinate in the given direction.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Dir is one of the four cardinal directions.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Valid reports whether d is one of the four named directions.
func (d Dir) Valid() bool {
	return d <= DirLeft
}

// Delta returns the (dx, dy) offset for one step in this direction.
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirUp:
		return DirDown
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return d
	}
}

// DirTowards returns the direction from a to b when both lie on the same
// row or column and differ. ok is false otherwise.
func DirTowards(a, b Coord) (d Dir, ok bool) {
	switch {
	case a == b:
		return 0, false
	case a.Y == b.Y && b.X > a.X:
		return DirRight, true
	case a.Y == b.Y:
		return DirLeft, true
	case a.X == b.X && b.Y > a.Y:
		return DirDown, true
	case a.X == b.X:
		return DirUp, true
	default:
		return 0, false
	}
}

// Cell is the content of one field tile: either empty or owned by a tower.
// The zero value is an empty cell.
type Cell struct {
	owned bool
	tower int
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{}
}

// Owned returns a cell owned by the tower with the given index.
func Owned(tower int) Cell {
	return Cell{owned: true, tower: tower}
}

// Tower returns the owning tower index, or false for an empty cell.
func (c Cell) Tower() (int, bool) {
	return c.tower, c.owned
}

// IsEmpty reports whether no tower owns the cell.
func (c Cell) IsEmpty() bool {
	return !c.owned
}

// String returns "." for empty cells and the tower index otherwise.
func (c Cell) String() string {
	if !c.owned {
		return "."
	}
	return fmt.Sprintf("%d", c.tower)
}
