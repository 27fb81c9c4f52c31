package core

import "fmt"

// Mask marks which tiles take part in the puzzle. Tiles outside the mask
// are never owned and are skipped by every traversal.
type Mask struct {
	w        int
	h        int
	playable []bool
}

// NewMask creates a mask with every tile playable.
// Panics if the dimensions exceed the field limits.
func NewMask(w, h int) *Mask {
	checkDims(w, h)
	m := &Mask{
		w:        w,
		h:        h,
		playable: make([]bool, MaxArea),
	}
	for i := range m.playable {
		m.playable[i] = true
	}
	return m
}

// NewMaskFromRows builds a mask from text rows where '.' or ' ' marks an
// unplayable tile and any other rune a playable one.
func NewMaskFromRows(rows ...string) *Mask {
	if len(rows) == 0 {
		panic("core: mask needs at least one row")
	}
	w := len([]rune(rows[0]))
	m := NewMask(w, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != w {
			panic(fmt.Sprintf("core: mask row %d has width %d, expected %d", y, len(runes), w))
		}
		for x, r := range runes {
			m.Set(C(x, y), r != '.' && r != ' ')
		}
	}
	return m
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.w }

// Height returns the mask height.
func (m *Mask) Height() int { return m.h }

// Playable reports whether the tile at c is part of the puzzle.
// Coordinates outside the mask are not playable.
func (m *Mask) Playable(c Coord) bool {
	if c.X < 0 || c.X >= m.w || c.Y < 0 || c.Y >= m.h {
		return false
	}
	return m.playable[c.Y*m.w+c.X]
}

// Set changes the playability of a tile. Out-of-range coordinates are ignored.
func (m *Mask) Set(c Coord, playable bool) {
	if c.X < 0 || c.X >= m.w || c.Y < 0 || c.Y >= m.h {
		return
	}
	m.playable[c.Y*m.w+c.X] = playable
}

// PlayableCount returns the number of playable tiles.
func (m *Mask) PlayableCount() int {
	n := 0
	for i := 0; i < m.w*m.h; i++ {
		if m.playable[i] {
			n++
		}
	}
	return n
}

// Equal returns true if both masks have the same dimensions and contents.
func (m *Mask) Equal(other *Mask) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.w != other.w || m.h != other.h {
		return false
	}
	for i := 0; i < m.w*m.h; i++ {
		if m.playable[i] != other.playable[i] {
			return false
		}
	}
	return true
}

func checkDims(w, h int) {
	if w <= 0 || w > MaxWidth {
		panic(fmt.Sprintf("core: width %d out of range 1..%d", w, MaxWidth))
	}
	if h <= 0 || h > MaxHeight {
		panic(fmt.Sprintf("core: height %d out of range 1..%d", h, MaxHeight))
	}
}
