package core

import (
	"fmt"
	"slices"
)

// InitWithRandomTowers clears the field and partitions every playable tile
// into towers drawn from src. Each tower grows up to four straight arms
// from a random origin; its height is the number of tiles it claimed, so
// collapsing every tower to height 1 along its arms is always a solution.
//
// The draw order is part of the saved-puzzle contract:
// origin, arm count, greed bits, direction shuffle, then one draw per
// non-greedy arm.
//
// Panics if an attached mask does not match the field dimensions.
func (f *Field) InitWithRandomTowers(src Source) {
	f.Clear()
	if f.mask != nil && (f.mask.w != f.width || f.mask.h != f.height) {
		panic(fmt.Sprintf("core: mask %dx%d does not match field %dx%d",
			f.mask.w, f.mask.h, f.width, f.height))
	}

	// Unclaimed playable tiles, kept sorted by linear index.
	remaining := make([]int, 0, f.area)
	for i := 0; i < f.area; i++ {
		if f.mask != nil && !f.mask.playable[i] {
			continue
		}
		remaining = append(remaining, i)
	}

	claim := func(lin, tower int) {
		if pos, found := slices.BinarySearch(remaining, lin); found {
			remaining = slices.Delete(remaining, pos, pos+1)
		}
		f.solution[lin] = Owned(tower)
	}

	// The arm order carries over from one tower to the next.
	dirs := []Dir{DirRight, DirLeft, DirDown, DirUp}

	for len(remaining) > 0 {
		tower := len(f.towers)
		originLin := remaining[Intn(src, len(remaining))]
		origin := C(originLin%f.width, originLin/f.width)
		height := 1

		claim(originLin, tower)

		dirCount := 1 + Intn(src, 4)
		greed := Intn(src, 16)

		Shuffle(src, len(dirs), func(i, j int) {
			dirs[i], dirs[j] = dirs[j], dirs[i]
		})

		for d := 0; d < dirCount; d++ {
			maxLen := f.armReach(origin, dirs[d])
			if maxLen == 0 {
				continue
			}

			length := maxLen
			if greed&(1<<d) == 0 {
				length = 1 + Intn(src, maxLen)
			}

			p := origin
			for i := 0; i < length; i++ {
				p = p.Step(dirs[d])
				claim(f.index(p), tower)
			}
			height += length
		}

		f.towers = append(f.towers, newTower(origin, height))
	}

	for ti, t := range f.towers {
		f.cells[f.index(t.Origin)] = Owned(ti)
	}
}

// armReach counts the unclaimed playable tiles in a straight line from
// origin in direction d.
func (f *Field) armReach(origin Coord, d Dir) int {
	n := 0
	p := origin.Step(d)
	for f.Playable(p) && f.solution[f.index(p)].IsEmpty() {
		n++
		p = p.Step(d)
	}
	return n
}
