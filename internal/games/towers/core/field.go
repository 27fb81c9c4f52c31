package core

import "fmt"

// Field is the playing field: a width x height grid partitioned into towers.
//
// Two arrays are kept in row-major order (index = y*width + x):
// the live occupancy, mutated by moves, and the solution written once
// by generation. Both are sized to MaxArea so that decoding a field of a
// different size never reallocates.
type Field struct {
	width    int
	height   int
	area     int
	towers   []Tower
	cells    []Cell
	solution []Cell
	mask     *Mask
}

// New creates an empty field. mask may be nil.
// Panics unless 0 < w <= MaxWidth and 0 < h <= MaxHeight.
func New(w, h int, mask *Mask) *Field {
	checkDims(w, h)
	return &Field{
		width:    w,
		height:   h,
		area:     w * h,
		cells:    make([]Cell, MaxArea),
		solution: make([]Cell, MaxArea),
		mask:     mask,
	}
}

// Width returns the field width.
func (f *Field) Width() int { return f.width }

// Height returns the field height.
func (f *Field) Height() int { return f.height }

// Area returns width*height.
func (f *Field) Area() int { return f.area }

// Mask returns the attached mask, or nil.
func (f *Field) Mask() *Mask { return f.mask }

// Towers returns the tower list. Callers must treat it as read-only.
func (f *Field) Towers() []Tower { return f.towers }

// TowerCount returns the number of towers.
func (f *Field) TowerCount() int { return len(f.towers) }

// Tower returns the tower with the given index.
func (f *Field) Tower(i int) Tower { return f.towers[i] }

func (f *Field) index(c Coord) int {
	return c.Y*f.width + c.X
}

// IsInside reports whether (x, y) lies within the field.
func (f *Field) IsInside(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// InBounds reports whether c lies within the field.
func (f *Field) InBounds(c Coord) bool {
	return f.IsInside(c.X, c.Y)
}

// Playable reports whether c is inside the field and not masked out.
func (f *Field) Playable(c Coord) bool {
	if !f.InBounds(c) {
		return false
	}
	if f.mask != nil {
		return f.mask.playable[f.index(c)]
	}
	return true
}

// At returns the current occupancy of c. Out-of-bounds tiles are empty.
func (f *Field) At(c Coord) Cell {
	if !f.InBounds(c) {
		return Empty()
	}
	return f.cells[f.index(c)]
}

// SolutionAt returns the solution owner of c. Out-of-bounds tiles are empty.
func (f *Field) SolutionAt(c Coord) Cell {
	if !f.InBounds(c) {
		return Empty()
	}
	return f.solution[f.index(c)]
}

// TowerAt returns the index of the tower currently owning c.
func (f *Field) TowerAt(c Coord) (int, bool) {
	return f.At(c).Tower()
}

// IsOrigin reports whether c is the origin tile of the tower owning it.
func (f *Field) IsOrigin(c Coord) bool {
	ti, ok := f.TowerAt(c)
	return ok && f.towers[ti].Origin == c
}

// Clear drops all towers and empties both arrays.
func (f *Field) Clear() {
	f.towers = nil
	for i := 0; i < f.area; i++ {
		f.cells[i] = Empty()
		f.solution[i] = Empty()
	}
}

// ResetToStartState restores every tower to full height with only its
// origin occupied. This is the playable starting layout.
func (f *Field) ResetToStartState() {
	for i := 0; i < f.area; i++ {
		f.cells[i] = Empty()
	}
	for ti := range f.towers {
		t := &f.towers[ti]
		t.FlattenedHeight = t.Height
		f.cells[f.index(t.Origin)] = Owned(ti)
		f.RecalcTowerBounds(t.Origin)
	}
}

// SetToSolutionState copies the solution into the occupancy and flattens
// every tower to height 1.
func (f *Field) SetToSolutionState() {
	copy(f.cells[:f.area], f.solution[:f.area])
	for ti := range f.towers {
		f.towers[ti].FlattenedHeight = 1
		f.RecalcTowerBounds(f.towers[ti].Origin)
	}
}

// IsSolved reports whether every tower has been flattened to height 1.
func (f *Field) IsSolved() bool {
	for _, t := range f.towers {
		if t.FlattenedHeight > 1 {
			return false
		}
	}
	return true
}

// OccupiedCount returns the number of tiles currently owned by a tower.
func (f *Field) OccupiedCount() int {
	n := 0
	for i := 0; i < f.area; i++ {
		if !f.cells[i].IsEmpty() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the field. The mask is shared since it is
// immutable once attached.
func (f *Field) Clone() *Field {
	c := &Field{
		width:    f.width,
		height:   f.height,
		area:     f.area,
		towers:   append([]Tower(nil), f.towers...),
		cells:    append([]Cell(nil), f.cells...),
		solution: append([]Cell(nil), f.solution...),
		mask:     f.mask,
	}
	return c
}

// Equal returns true if both fields have the same dimensions, towers,
// occupancy, solution and mask.
func (f *Field) Equal(other *Field) bool {
	if f.width != other.width || f.height != other.height {
		return false
	}
	if len(f.towers) != len(other.towers) {
		return false
	}
	for i := range f.towers {
		if f.towers[i] != other.towers[i] {
			return false
		}
	}
	for i := 0; i < f.area; i++ {
		if f.cells[i] != other.cells[i] || f.solution[i] != other.solution[i] {
			return false
		}
	}
	return f.mask.Equal(other.mask)
}

// String renders the occupancy as rows of tower indices, '.' for empty
// tiles and '#' for masked-out tiles.
func (f *Field) String() string {
	b := make([]byte, 0, f.area*4)
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			c := C(x, y)
			switch {
			case !f.Playable(c):
				b = append(b, fmt.Sprintf("%3s", "#")...)
			default:
				b = append(b, fmt.Sprintf("%3s", f.At(c))...)
			}
		}
		b = append(b, '\n')
	}
	return string(b)
}
