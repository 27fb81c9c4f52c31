package towers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformcore "github.com/vovakirdan/tui-towers/internal/core"
	"github.com/vovakirdan/tui-towers/internal/games/towers"
	"github.com/vovakirdan/tui-towers/internal/games/towers/core"
)

func layoutSession(t *testing.T, rows ...string) *towers.Session {
	t.Helper()
	f, err := core.ParseLayout(rows...)
	require.NoError(t, err)
	return towers.NewSession(f)
}

func press(s *towers.Session, actions ...platformcore.Action) []platformcore.Cue {
	return s.HandleInput(platformcore.FrameOf(actions...))
}

func TestNewGameIsDeterministic(t *testing.T) {
	a := towers.NewGame(10, 10, core.DefaultSeed)
	b := towers.NewGame(10, 10, core.DefaultSeed)
	assert.Equal(t, a.Encode(), b.Encode())

	c := towers.NewGame(10, 10, core.AdvanceSeed(core.DefaultSeed, 1))
	assert.NotEqual(t, a.Encode(), c.Encode())
}

func TestNewGameField(t *testing.T) {
	s := towers.NewGame(5, 4, core.DefaultSeed)

	f := core.New(5, 4, nil)
	f.InitWithRandomTowers(core.NewRNG(core.DefaultSeed))
	assert.True(t, s.Field().Equal(f), "session field must match a plain generation from the same seed")

	assert.Equal(t, core.C(0, 0), s.Hover())
	assert.Equal(t, towers.ModeSelect, s.Mode())
	assert.Equal(t, towers.ExitNone, s.Exit())
	_, selected := s.Selected()
	assert.False(t, selected)
}

func TestNewGameColorMappingIsPermutation(t *testing.T) {
	s := towers.NewGame(12, 8, [4]uint32{1, 2, 3, 4})

	mapping := s.ColorMapping()
	seen := make(map[uint8]bool)
	for _, c := range mapping {
		assert.Less(t, int(c), platformcore.TowerColors)
		seen[c] = true
	}
	assert.Len(t, seen, platformcore.TowerColors)

	identity := towers.NewSession(core.New(2, 2, nil)).ColorMapping()
	assert.NotEqual(t, identity, mapping)
}

func TestHoverMovesAndClamps(t *testing.T) {
	s := layoutSession(t, "Aa", "bB")

	assert.Empty(t, press(s, platformcore.ActionUp))
	assert.Empty(t, press(s, platformcore.ActionLeft))
	assert.Equal(t, core.C(0, 0), s.Hover())

	cues := press(s, platformcore.ActionRight, platformcore.ActionDown)
	assert.Equal(t, []platformcore.Cue{platformcore.CueCursorMove}, cues)
	assert.Equal(t, core.C(1, 1), s.Hover())

	assert.Empty(t, press(s, platformcore.ActionRight, platformcore.ActionDown))
	assert.Equal(t, core.C(1, 1), s.Hover())

	// Up wins over Down within one frame.
	press(s, platformcore.ActionUp, platformcore.ActionDown)
	assert.Equal(t, core.C(1, 0), s.Hover())
}

func TestSelectEmptyTileDoesNothing(t *testing.T) {
	s := layoutSession(t, "Aa")
	press(s, platformcore.ActionRight)

	assert.Empty(t, press(s, platformcore.ActionFlatten))
	assert.Equal(t, towers.ModeSelect, s.Mode())
}

func TestFlattenAndDeflattenFlow(t *testing.T) {
	s := layoutSession(t, "Aaaaa")
	origin := core.C(0, 0)

	cues := press(s, platformcore.ActionFlatten)
	assert.Equal(t, []platformcore.Cue{platformcore.CueSelect}, cues)
	assert.Equal(t, towers.ModeFlatten, s.Mode())
	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, origin, sel)

	cues = press(s, platformcore.ActionRight)
	assert.Equal(t, []platformcore.Cue{platformcore.CueMove}, cues)
	cues = press(s, platformcore.ActionRight)
	assert.Equal(t, []platformcore.Cue{platformcore.CueMove}, cues)
	assert.Equal(t, 3, s.Field().Tower(0).FlattenedHeight)
	assert.Equal(t, 2, s.Moves())
	assert.Equal(t, origin, s.Hover(), "hover stays on the origin while moving")

	// Blocked moves are silent.
	assert.Empty(t, press(s, platformcore.ActionLeft))
	assert.Equal(t, 2, s.Moves())

	// The other key switches modes.
	press(s, platformcore.ActionDeflatten)
	assert.Equal(t, towers.ModeDeflatten, s.Mode())

	// Pressing towards the tower pulls the far edge back.
	cues = press(s, platformcore.ActionLeft)
	assert.Equal(t, []platformcore.Cue{platformcore.CueMove}, cues)
	assert.Equal(t, 4, s.Field().Tower(0).FlattenedHeight)
	assert.True(t, s.Field().At(core.C(2, 0)).IsEmpty())
	assert.False(t, s.Field().At(core.C(1, 0)).IsEmpty())

	// The same key again cancels.
	press(s, platformcore.ActionDeflatten)
	assert.Equal(t, towers.ModeSelect, s.Mode())
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestSelectFromArmJumpsToOrigin(t *testing.T) {
	s := layoutSession(t, "Aaaaa")
	press(s, platformcore.ActionFlatten)
	press(s, platformcore.ActionRight)
	press(s, platformcore.ActionRight)
	press(s, platformcore.ActionFlatten)
	require.Equal(t, towers.ModeSelect, s.Mode())

	press(s, platformcore.ActionRight)
	press(s, platformcore.ActionRight)
	require.Equal(t, core.C(2, 0), s.Hover())

	press(s, platformcore.ActionDeflatten)
	assert.Equal(t, towers.ModeDeflatten, s.Mode())
	assert.Equal(t, core.C(0, 0), s.Hover())
}

func TestSolvingAndExit(t *testing.T) {
	s := layoutSession(t, "Aa")
	press(s, platformcore.ActionFlatten)

	cues := press(s, platformcore.ActionRight)
	assert.Equal(t, []platformcore.Cue{platformcore.CueMove, platformcore.CueSolved}, cues)
	assert.True(t, s.Solved())

	res := s.Step(platformcore.FrameOf(platformcore.ActionMenu))
	assert.Equal(t, towers.ExitCompleted, s.Exit())
	assert.Equal(t, platformcore.GameState{Moves: 1, Solved: true, Exited: true}, res.State)
	assert.Contains(t, res.Cues, platformcore.CueSelect)

	assert.Empty(t, press(s, platformcore.ActionDeflatten, platformcore.ActionLeft))
	assert.True(t, s.Solved(), "input after exit is ignored")
}

func TestExitUnsolved(t *testing.T) {
	s := layoutSession(t, "Aa")
	press(s, platformcore.ActionSelect)
	assert.Equal(t, towers.ExitNotCompleted, s.Exit())
	assert.False(t, s.State().Solved)
}

func TestResetAndSolutionStates(t *testing.T) {
	s := towers.NewGame(6, 5, core.DefaultSeed)
	press(s, platformcore.ActionDown, platformcore.ActionRight)

	s.SetToSolutionState()
	assert.True(t, s.Solved())
	assert.Equal(t, core.C(0, 0), s.Hover())

	s.ResetToStartState()
	assert.Zero(t, s.Moves())
	assert.Equal(t, s.Field().TowerCount(), s.Field().OccupiedCount())
}

func TestTowerColorUsesMapping(t *testing.T) {
	s := towers.NewGame(6, 5, core.DefaultSeed)
	mapping := s.ColorMapping()

	assert.Equal(t, platformcore.TowerColor(int(mapping[3])), s.TowerColor(3))
	assert.Equal(t, s.TowerColor(1), s.TowerColor(1+platformcore.TowerColors))
}
