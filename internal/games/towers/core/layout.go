package core

import (
	"fmt"
	"unicode"
)

// ParseLayout builds a field from a solution drawn as text rows.
//
// Each tower is one letter: the uppercase letter marks its origin, the
// lowercase letter the tiles of its arms. '#' marks a masked-out tile.
// Towers are indexed in the row-major order of their origins. The field is
// returned in its start state.
//
//	ParseLayout(
//		"Aaa#",
//		"bBcC",
//	)
func ParseLayout(rows ...string) (*Field, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("layout: no rows")
	}
	w := len([]rune(rows[0]))
	h := len(rows)
	if w == 0 || w > MaxWidth || h > MaxHeight {
		return nil, fmt.Errorf("layout: size %dx%d out of range", w, h)
	}

	grid := make([][]rune, h)
	var mask *Mask
	origins := make(map[rune]Coord)
	var order []rune

	for y, row := range rows {
		grid[y] = []rune(row)
		if len(grid[y]) != w {
			return nil, fmt.Errorf("layout: row %d has width %d, expected %d", y, len(grid[y]), w)
		}
		for x, r := range grid[y] {
			switch {
			case r == '#':
				if mask == nil {
					mask = NewMask(w, h)
				}
				mask.Set(C(x, y), false)
			case unicode.IsUpper(r):
				if prev, dup := origins[r]; dup {
					return nil, fmt.Errorf("layout: tower %c has two origins %v and %v", r, prev, C(x, y))
				}
				origins[r] = C(x, y)
				order = append(order, r)
			case unicode.IsLower(r):
			default:
				return nil, fmt.Errorf("layout: unexpected %q at %v", r, C(x, y))
			}
		}
	}

	f := New(w, h, mask)
	index := make(map[rune]int, len(order))
	for i, r := range order {
		index[r] = i
		f.towers = append(f.towers, newTower(origins[r], 0))
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r := grid[y][x]
			if r == '#' {
				continue
			}
			upper := unicode.ToUpper(r)
			ti, ok := index[upper]
			if !ok {
				return nil, fmt.Errorf("layout: tile %v of tower %c has no origin", C(x, y), upper)
			}
			c := C(x, y)
			if !onArm(grid, origins[upper], c, unicode.ToLower(upper)) {
				return nil, fmt.Errorf("layout: tile %v is not on a straight arm of tower %c", c, upper)
			}
			f.solution[f.index(c)] = Owned(ti)
			f.towers[ti].Height++
		}
	}

	f.ResetToStartState()
	return f, nil
}

// onArm reports whether c is the origin or is connected to it by a straight
// run of arm tiles.
func onArm(grid [][]rune, origin, c Coord, arm rune) bool {
	if c == origin {
		return true
	}
	d, ok := DirTowards(c, origin)
	if !ok {
		return false
	}
	for p := c; p != origin; p = p.Step(d) {
		if grid[p.Y][p.X] != arm {
			return false
		}
	}
	return true
}
