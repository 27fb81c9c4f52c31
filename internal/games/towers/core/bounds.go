package core

import platformcore "github.com/vovakirdan/tui-towers/internal/core"

// RecalcTowerBounds refreshes the bounds of the tower owning origin by
// probing the four axis rays from origin. Only axis-aligned moves ever
// change a tower's shape, so the rays are enough to find its extent.
func (f *Field) RecalcTowerBounds(origin Coord) {
	if !f.Playable(origin) {
		return
	}
	ti, ok := f.TowerAt(origin)
	if !ok {
		return
	}

	minX, minY := origin.X, origin.Y
	maxX, maxY := origin.X, origin.Y

	for _, d := range []Dir{DirRight, DirLeft, DirDown, DirUp} {
		for p := origin.Step(d); f.Playable(p); p = p.Step(d) {
			if owner, owned := f.TowerAt(p); !owned || owner != ti {
				break
			}
			minX = min(minX, p.X)
			minY = min(minY, p.Y)
			maxX = max(maxX, p.X)
			maxY = max(maxY, p.Y)
		}
	}

	f.towers[ti].Bounds = platformcore.NewRect(minX, minY, maxX-minX+1, maxY-minY+1)
}
