package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-towers/internal/games/towers/core"
)

// solutionGrid returns the solution as tower indices, -1 for empty tiles.
func solutionGrid(f *core.Field) [][]int {
	rows := make([][]int, f.Height())
	for y := range rows {
		rows[y] = make([]int, f.Width())
		for x := range rows[y] {
			rows[y][x] = -1
			if ti, ok := f.SolutionAt(core.C(x, y)).Tower(); ok {
				rows[y][x] = ti
			}
		}
	}
	return rows
}

func generate(t *testing.T, w, h int, mask *core.Mask, seed [4]uint32) *core.Field {
	t.Helper()
	f := core.New(w, h, mask)
	f.InitWithRandomTowers(core.NewRNG(seed))
	return f
}

func TestGenerateKnownPuzzle(t *testing.T) {
	f := generate(t, 5, 4, nil, core.DefaultSeed)

	assert.Equal(t, [][]int{
		{2, 2, 2, 2, 2},
		{4, 3, 7, 6, 2},
		{0, 3, 1, 6, 2},
		{0, 3, 1, 5, 2},
	}, solutionGrid(f))

	type summary struct {
		origin core.Coord
		height int
	}
	want := []summary{
		{core.C(0, 2), 2}, {core.C(2, 2), 2}, {core.C(4, 0), 8}, {core.C(1, 2), 3},
		{core.C(0, 1), 1}, {core.C(3, 3), 1}, {core.C(3, 2), 2}, {core.C(2, 1), 1},
	}
	require.Equal(t, len(want), f.TowerCount())
	for i, w := range want {
		tower := f.Tower(i)
		assert.Equal(t, w.origin, tower.Origin, "tower %d origin", i)
		assert.Equal(t, w.height, tower.Height, "tower %d height", i)
		assert.Equal(t, w.height, tower.FlattenedHeight, "tower %d starts unflattened", i)
		assert.Equal(t, 1, tower.Bounds.W)
		assert.Equal(t, 1, tower.Bounds.H)
	}
}

func TestGenerateWithMask(t *testing.T) {
	mask := core.NewMaskFromRows(
		".xxx",
		"x.xx",
		"xxxx",
	)
	f := generate(t, 4, 3, mask, core.DefaultSeed)

	assert.Equal(t, [][]int{
		{-1, 0, 2, 2},
		{1, -1, 4, 2},
		{1, 3, 4, 2},
	}, solutionGrid(f))

	for _, c := range []core.Coord{core.C(0, 0), core.C(1, 1)} {
		assert.True(t, f.At(c).IsEmpty())
		assert.True(t, f.SolutionAt(c).IsEmpty())
	}
}

func TestGenerateSingleTile(t *testing.T) {
	f := generate(t, 1, 1, nil, core.DefaultSeed)

	require.Equal(t, 1, f.TowerCount())
	tower := f.Tower(0)
	assert.Equal(t, core.C(0, 0), tower.Origin)
	assert.Equal(t, 1, tower.Height)
	assert.Equal(t, 1, tower.FlattenedHeight)
	assert.True(t, f.IsSolved())
}

func TestGenerateInvariants(t *testing.T) {
	seeds := [][4]uint32{
		core.DefaultSeed,
		{1, 2, 3, 4},
		{0xdeadbeef, 0xcafebabe, 0x12345678, 0x9abcdef0},
		core.AdvanceSeed(core.DefaultSeed, 77),
	}
	sizes := []struct{ w, h int }{{1, 1}, {3, 7}, {10, 10}, {30, 20}}

	for _, seed := range seeds {
		for _, sz := range sizes {
			f := generate(t, sz.w, sz.h, nil, seed)

			tiles := make(map[int]int)
			for y := 0; y < sz.h; y++ {
				for x := 0; x < sz.w; x++ {
					ti, ok := f.SolutionAt(core.C(x, y)).Tower()
					require.True(t, ok, "tile (%d,%d) not covered", x, y)
					require.Less(t, ti, f.TowerCount())
					tiles[ti]++
				}
			}

			occupied := 0
			for ti, tower := range f.Towers() {
				assert.Equal(t, tiles[ti], tower.Height, "height must equal the tiles claimed")
				assert.LessOrEqual(t, tower.Height, sz.w+sz.h-1)
				origin, ok := f.TowerAt(tower.Origin)
				require.True(t, ok)
				assert.Equal(t, ti, origin)
				occupied++
			}
			assert.Equal(t, occupied, f.OccupiedCount(), "only origins occupied after generation")
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := generate(t, 12, 9, nil, [4]uint32{9, 8, 7, 6})
	b := generate(t, 12, 9, nil, [4]uint32{9, 8, 7, 6})
	assert.True(t, a.Equal(b))

	c := generate(t, 12, 9, nil, [4]uint32{9, 8, 7, 5})
	assert.False(t, a.Equal(c))
}

func TestGenerateMaskMismatchPanics(t *testing.T) {
	f := core.New(5, 5, core.NewMask(4, 5))
	assert.Panics(t, func() {
		f.InitWithRandomTowers(core.NewRNG(core.DefaultSeed))
	})
}
