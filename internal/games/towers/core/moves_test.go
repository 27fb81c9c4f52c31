package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformcore "github.com/vovakirdan/tui-towers/internal/core"
	"github.com/vovakirdan/tui-towers/internal/games/towers/core"
)

func mustLayout(t *testing.T, rows ...string) *core.Field {
	t.Helper()
	f, err := core.ParseLayout(rows...)
	require.NoError(t, err)
	return f
}

func TestFlattenTowardsThenDeflatten(t *testing.T) {
	f := mustLayout(t, "Aaaaa")
	origin := core.C(0, 0)
	require.Equal(t, 5, f.Tower(0).FlattenedHeight)

	tiles, err := f.CalcFlattenTowards(origin, core.DirRight, 2)
	require.NoError(t, err)
	assert.Equal(t, []core.Coord{core.C(1, 0), core.C(2, 0)}, tiles)

	require.NoError(t, f.Flatten(origin, tiles))
	assert.Equal(t, 3, f.Tower(0).FlattenedHeight)
	for _, c := range tiles {
		ti, ok := f.TowerAt(c)
		assert.True(t, ok)
		assert.Equal(t, 0, ti)
	}
	assert.Equal(t, platformcore.NewRect(0, 0, 3, 1), f.Tower(0).Bounds)

	back, err := f.CalcDeflattenTowards(origin, core.DirRight, 1)
	require.NoError(t, err)
	assert.Equal(t, []core.Coord{core.C(2, 0)}, back)

	require.NoError(t, f.Deflatten(origin, back))
	assert.Equal(t, 4, f.Tower(0).FlattenedHeight)
	assert.True(t, f.At(core.C(2, 0)).IsEmpty())
	assert.False(t, f.At(core.C(1, 0)).IsEmpty())
	assert.Equal(t, platformcore.NewRect(0, 0, 2, 1), f.Tower(0).Bounds)
}

func TestFlattenTowardsStopsEarly(t *testing.T) {
	f := mustLayout(t,
		"Aa#B",
		"a##b",
	)

	tiles, err := f.CalcFlattenTowards(core.C(0, 0), core.DirRight, 5)
	require.NoError(t, err)
	assert.Equal(t, []core.Coord{core.C(1, 0)}, tiles, "masked tile ends the walk")

	tiles, err = f.CalcFlattenTowards(core.C(0, 0), core.DirDown, 5)
	require.NoError(t, err)
	assert.Equal(t, []core.Coord{core.C(0, 1)}, tiles, "border ends the walk")

	_, err = f.CalcFlattenTowards(core.C(0, 0), core.DirLeft, 1)
	assert.ErrorIs(t, err, core.ErrBlocked)

	_, err = f.CalcFlatten(core.C(0, 0), core.C(2, 0))
	assert.ErrorIs(t, err, core.ErrNotPlayable)
}

func TestCalcFlatten(t *testing.T) {
	f := mustLayout(t, "Aaaaa")
	origin := core.C(0, 0)

	tiles, err := f.CalcFlatten(origin, core.C(3, 0))
	require.NoError(t, err)
	assert.Equal(t, []core.Coord{core.C(1, 0), core.C(2, 0), core.C(3, 0)}, tiles)
	require.NoError(t, f.Flatten(origin, tiles))

	// Crossing tiles the tower already owns is allowed.
	tiles, err = f.CalcFlatten(origin, core.C(4, 0))
	require.NoError(t, err)
	assert.Equal(t, []core.Coord{core.C(4, 0)}, tiles)
	require.NoError(t, f.Flatten(origin, tiles))

	assert.True(t, f.IsSolved())
	_, err = f.CalcFlattenTowards(origin, core.DirRight, 1)
	assert.ErrorIs(t, err, core.ErrAlreadyFlat)
}

func TestCalcFlattenRejects(t *testing.T) {
	tests := []struct {
		name   string
		rows   []string
		prep   func(t *testing.T, f *core.Field)
		origin core.Coord
		dest   core.Coord
		want   error
	}{
		{
			name:   "diagonal",
			rows:   []string{"AB", "ab", "ab"},
			origin: core.C(0, 0),
			dest:   core.C(1, 1),
			want:   core.ErrNotInLine,
		},
		{
			name:   "same tile",
			rows:   []string{"Aa"},
			origin: core.C(0, 0),
			dest:   core.C(0, 0),
			want:   core.ErrNotInLine,
		},
		{
			name:   "other tower",
			rows:   []string{"AB", "ab", "ab"},
			origin: core.C(0, 0),
			dest:   core.C(1, 0),
			want:   core.ErrBlocked,
		},
		{
			name:   "beyond other tower",
			rows:   []string{"AaBbbb"},
			origin: core.C(2, 0),
			dest:   core.C(0, 0),
			want:   core.ErrBlocked,
		},
		{
			name:   "out of reach",
			rows:   []string{"AaaBb"},
			origin: core.C(0, 0),
			dest:   core.C(3, 0),
			want:   core.ErrOutOfReach,
		},
		{
			name:   "destination outside",
			rows:   []string{"Aa"},
			origin: core.C(0, 0),
			dest:   core.C(5, 0),
			want:   core.ErrOutOfBounds,
		},
		{
			name:   "no tower at origin",
			rows:   []string{"Aa"},
			origin: core.C(1, 0),
			dest:   core.C(0, 0),
			want:   core.ErrNoTower,
		},
		{
			name:   "flat tower",
			rows:   []string{"AB"},
			origin: core.C(0, 0),
			dest:   core.C(1, 0),
			want:   core.ErrAlreadyFlat,
		},
		{
			name: "destination already covered",
			rows: []string{"Aaa"},
			prep: func(t *testing.T, f *core.Field) {
				tiles, err := f.CalcFlattenTowards(core.C(0, 0), core.DirRight, 1)
				require.NoError(t, err)
				require.NoError(t, f.Flatten(core.C(0, 0), tiles))
			},
			origin: core.C(0, 0),
			dest:   core.C(1, 0),
			want:   core.ErrEmptyMove,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := mustLayout(t, tc.rows...)
			if tc.prep != nil {
				tc.prep(t, f)
			}
			before := f.Clone()

			tiles, err := f.CalcFlatten(tc.origin, tc.dest)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, tiles)
			assert.True(t, f.Equal(before), "rejected query must not change the field")
		})
	}
}

func TestCalcDeflatten(t *testing.T) {
	f := mustLayout(t, "Aaaaa")
	origin := core.C(0, 0)
	tiles, err := f.CalcFlattenTowards(origin, core.DirRight, 4)
	require.NoError(t, err)
	require.NoError(t, f.Flatten(origin, tiles))

	back, err := f.CalcDeflatten(origin, core.C(2, 0))
	require.NoError(t, err)
	assert.Equal(t, []core.Coord{core.C(2, 0), core.C(3, 0), core.C(4, 0)}, back)

	require.NoError(t, f.Deflatten(origin, back))
	assert.Equal(t, 4, f.Tower(0).FlattenedHeight)
	assert.Equal(t, platformcore.NewRect(0, 0, 2, 1), f.Tower(0).Bounds)

	_, err = f.CalcDeflatten(origin, core.C(3, 0))
	assert.ErrorIs(t, err, core.ErrNotOwned)

	_, err = f.CalcDeflatten(origin, core.C(1, 1))
	assert.ErrorIs(t, err, core.ErrOutOfBounds)
}

func TestCalcDeflattenTowardsRejects(t *testing.T) {
	f := mustLayout(t, "Aaa")
	origin := core.C(0, 0)

	_, err := f.CalcDeflattenTowards(origin, core.DirRight, 1)
	assert.ErrorIs(t, err, core.ErrNothingToReclaim)

	_, err = f.CalcDeflattenTowards(origin, core.DirRight, 0)
	assert.ErrorIs(t, err, core.ErrInvalidCount)

	_, err = f.CalcFlattenTowards(origin, core.DirRight, 0)
	assert.ErrorIs(t, err, core.ErrInvalidCount)

	_, err = f.CalcDeflattenTowards(core.C(2, 0), core.DirLeft, 1)
	assert.ErrorIs(t, err, core.ErrNoTower)

	_, err = f.CalcFlattenTowards(origin, core.Dir(4), 2)
	assert.ErrorIs(t, err, core.ErrBadDir)

	_, err = f.CalcDeflattenTowards(origin, core.Dir(200), 1)
	assert.ErrorIs(t, err, core.ErrBadDir)

	assert.ErrorIs(t, f.Flatten(origin, nil), core.ErrEmptyMove)
	assert.ErrorIs(t, f.Deflatten(origin, nil), core.ErrEmptyMove)
}

func TestDeflattenTowardsNeverIncludesOrigin(t *testing.T) {
	f := mustLayout(t, "aaA")
	origin := core.C(2, 0)
	tiles, err := f.CalcFlattenTowards(origin, core.DirLeft, 2)
	require.NoError(t, err)
	require.NoError(t, f.Flatten(origin, tiles))

	back, err := f.CalcDeflattenTowards(origin, core.DirLeft, 10)
	require.NoError(t, err)
	assert.Equal(t, []core.Coord{core.C(0, 0), core.C(1, 0)}, back)
}

func TestFlattenDeflattenInverse(t *testing.T) {
	dirs := []core.Dir{core.DirUp, core.DirRight, core.DirDown, core.DirLeft}

	for _, seed := range [][4]uint32{core.DefaultSeed, {11, 22, 33, 44}} {
		f := generate(t, 10, 8, nil, seed)

		for _, tower := range f.Towers() {
			for _, d := range dirs {
				for count := 1; count <= 3; count++ {
					tiles, err := f.CalcFlattenTowards(tower.Origin, d, count)
					if err != nil {
						continue
					}
					before := f.Clone()

					require.NoError(t, f.Flatten(tower.Origin, tiles))
					assertBoundsTouch(t, f, tower.Origin)

					back, err := f.CalcDeflattenTowards(tower.Origin, d, len(tiles))
					require.NoError(t, err)
					assert.ElementsMatch(t, tiles, back)

					require.NoError(t, f.Deflatten(tower.Origin, back))
					require.True(t, f.Equal(before), "tower at %v dir %v count %d", tower.Origin, d, count)
				}
			}
		}
	}
}

func TestSolveAlongPlantedArms(t *testing.T) {
	dirs := []core.Dir{core.DirUp, core.DirRight, core.DirDown, core.DirLeft}
	f := generate(t, 12, 10, nil, [4]uint32{3, 1, 4, 1})

	for ti, tower := range f.Towers() {
		for _, d := range dirs {
			n := 0
			for p := tower.Origin.Step(d); ; p = p.Step(d) {
				owner, ok := f.SolutionAt(p).Tower()
				if !ok || owner != ti {
					break
				}
				n++
			}
			if n == 0 {
				continue
			}
			tiles, err := f.CalcFlattenTowards(tower.Origin, d, n)
			require.NoError(t, err)
			require.Len(t, tiles, n)
			require.NoError(t, f.Flatten(tower.Origin, tiles))
			assertBoundsTouch(t, f, tower.Origin)
		}
	}

	assert.True(t, f.IsSolved())
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			assert.Equal(t, f.SolutionAt(core.C(x, y)), f.At(core.C(x, y)))
		}
	}
}

// assertBoundsTouch checks that every edge of the tower's bounds is reached
// by its owned tiles along the ray from the origin.
func assertBoundsTouch(t *testing.T, f *core.Field, origin core.Coord) {
	t.Helper()
	ti, ok := f.TowerAt(origin)
	require.True(t, ok)
	b := f.Tower(ti).Bounds

	owned := func(c core.Coord) bool {
		owner, ok := f.TowerAt(c)
		return ok && owner == ti
	}
	assert.True(t, owned(core.C(b.X, origin.Y)), "left edge")
	assert.True(t, owned(core.C(b.Right()-1, origin.Y)), "right edge")
	assert.True(t, owned(core.C(origin.X, b.Y)), "top edge")
	assert.True(t, owned(core.C(origin.X, b.Bottom()-1)), "bottom edge")
}
