package core

// flattenable returns the tower owning origin if it can still spread.
func (f *Field) flattenable(origin Coord) (int, error) {
	if !f.InBounds(origin) {
		return 0, ErrOutOfBounds
	}
	if !f.Playable(origin) {
		return 0, ErrNotPlayable
	}
	ti, ok := f.TowerAt(origin)
	if !ok {
		return 0, ErrNoTower
	}
	if f.towers[ti].FlattenedHeight <= 1 {
		return 0, ErrAlreadyFlat
	}
	return ti, nil
}

// CalcFlatten returns the empty tiles that flattening the tower at origin
// up to dest would cover, nearest first.
//
// The ray from origin may first cross tiles the tower already owns, then
// only empty tiles. It must end exactly on dest within the tower's
// remaining height, otherwise the whole query is rejected.
func (f *Field) CalcFlatten(origin, dest Coord) ([]Coord, error) {
	if !f.InBounds(origin) || !f.InBounds(dest) {
		return nil, ErrOutOfBounds
	}
	dir, ok := DirTowards(origin, dest)
	if !ok {
		return nil, ErrNotInLine
	}
	ti, err := f.flattenable(origin)
	if err != nil {
		return nil, err
	}

	contingent := f.towers[ti].FlattenedHeight - 1
	tiles := make([]Coord, 0, max(f.width, f.height))
	onlyEmpty := false

	p := origin
	for {
		p = p.Step(dir)
		if !f.InBounds(p) {
			return nil, ErrOutOfBounds
		}
		if !f.Playable(p) {
			return nil, ErrNotPlayable
		}

		owner, owned := f.TowerAt(p)
		switch {
		case !owned:
			onlyEmpty = true
			tiles = append(tiles, p)
			contingent--
		case owner != ti || onlyEmpty:
			return nil, ErrBlocked
		}

		if p == dest {
			if len(tiles) == 0 {
				// dest is already covered by the tower
				return nil, ErrEmptyMove
			}
			return tiles, nil
		}
		if contingent <= 0 {
			return nil, ErrOutOfReach
		}
	}
}

// CalcFlattenTowards returns up to count empty tiles the tower at origin
// can cover in direction dir, nearest first. The walk stops early at the
// border, a masked tile or another tower; it is rejected only when no
// tile at all can be covered.
func (f *Field) CalcFlattenTowards(origin Coord, dir Dir, count int) ([]Coord, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}
	if !dir.Valid() {
		return nil, ErrBadDir
	}
	ti, err := f.flattenable(origin)
	if err != nil {
		return nil, err
	}

	contingent := min(f.towers[ti].FlattenedHeight-1, count)
	tiles := make([]Coord, 0, contingent)
	onlyEmpty := false

	for p := origin.Step(dir); f.Playable(p); p = p.Step(dir) {
		owner, owned := f.TowerAt(p)
		if !owned {
			onlyEmpty = true
			tiles = append(tiles, p)
			contingent--
		} else if owner != ti || onlyEmpty {
			break
		}
		if contingent <= 0 {
			break
		}
	}

	if len(tiles) == 0 {
		return nil, ErrBlocked
	}
	return tiles, nil
}

// Flatten moves height from the tower at origin onto tiles, which must come
// from CalcFlatten or CalcFlattenTowards for the same origin.
func (f *Field) Flatten(origin Coord, tiles []Coord) error {
	if len(tiles) == 0 {
		return ErrEmptyMove
	}
	ti, ok := f.TowerAt(origin)
	if !ok {
		return ErrNoTower
	}

	f.towers[ti].FlattenedHeight -= len(tiles)
	for _, c := range tiles {
		f.cells[f.index(c)] = Owned(ti)
	}
	f.RecalcTowerBounds(origin)
	return nil
}

// CalcDeflatten returns the tiles reclaimed when the tower at origin pulls
// back from dest: dest itself followed by every contiguous tile beyond it
// that the tower still owns.
func (f *Field) CalcDeflatten(origin, dest Coord) ([]Coord, error) {
	if !f.InBounds(origin) || !f.InBounds(dest) {
		return nil, ErrOutOfBounds
	}
	dir, ok := DirTowards(origin, dest)
	if !ok {
		return nil, ErrNotInLine
	}
	ti, ok := f.TowerAt(origin)
	if !ok {
		return nil, ErrNoTower
	}
	if owner, owned := f.TowerAt(dest); !owned || owner != ti {
		return nil, ErrNotOwned
	}

	tiles := []Coord{dest}
	for p := dest.Step(dir); f.InBounds(p); p = p.Step(dir) {
		if owner, owned := f.TowerAt(p); !owned || owner != ti {
			break
		}
		tiles = append(tiles, p)
	}
	return tiles, nil
}

// CalcDeflattenTowards returns up to count tiles the tower at origin can
// reclaim along dir, starting at its far edge and walking back toward the
// origin. The origin itself is never included.
func (f *Field) CalcDeflattenTowards(origin Coord, dir Dir, count int) ([]Coord, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}
	if !dir.Valid() {
		return nil, ErrBadDir
	}
	if !f.InBounds(origin) {
		return nil, ErrOutOfBounds
	}
	ti, ok := f.TowerAt(origin)
	if !ok {
		return nil, ErrNoTower
	}

	edge := origin
	for p := origin.Step(dir); f.InBounds(p); p = p.Step(dir) {
		if owner, owned := f.TowerAt(p); !owned || owner != ti {
			break
		}
		edge = p
	}
	if edge == origin {
		return nil, ErrNothingToReclaim
	}

	back := dir.Opposite()
	tiles := make([]Coord, 0, count)
	for p := edge; p != origin && len(tiles) < count; p = p.Step(back) {
		tiles = append(tiles, p)
	}
	return tiles, nil
}

// Deflatten returns tiles to the tower at origin, which must come from
// CalcDeflatten or CalcDeflattenTowards for the same origin.
func (f *Field) Deflatten(origin Coord, tiles []Coord) error {
	if len(tiles) == 0 {
		return ErrEmptyMove
	}
	ti, ok := f.TowerAt(origin)
	if !ok {
		return ErrNoTower
	}

	f.towers[ti].FlattenedHeight += len(tiles)
	for _, c := range tiles {
		f.cells[f.index(c)] = Empty()
	}
	f.RecalcTowerBounds(origin)
	return nil
}
