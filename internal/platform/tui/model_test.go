package tui

import (
	"bytes"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-towers/internal/core"
	"github.com/vovakirdan/tui-towers/internal/games/towers"
	towerscore "github.com/vovakirdan/tui-towers/internal/games/towers/core"
	"github.com/vovakirdan/tui-towers/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "towers.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, settings towers.Settings, store *storage.Store) Model {
	t.Helper()
	return NewModel(settings, Options{
		Store:   store,
		Slot:    "test",
		Persist: true,
		Config:  core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30},
	})
}

// send delivers keys one at a time, each followed by a tick.
func send(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
		next, _ = m.Update(TickMsg{})
		m = next.(Model)
	}
	return m
}

func loadSettings(t *testing.T, store *storage.Store) (towers.Settings, int) {
	t.Helper()
	slot, err := store.LoadSlot("test")
	require.NoError(t, err)
	require.NotNil(t, slot, "slot was never saved")
	s, err := towers.DecodeSettings(slot.Data, towers.StrictSeedDecode())
	require.NoError(t, err)
	return s, slot.Moves
}

func TestMenuMovesSeed(t *testing.T) {
	m := newTestModel(t, towers.DefaultSettings(), nil)

	m = send(m, "down")
	assert.Equal(t, towerscore.AdvanceSeed(towerscore.DefaultSeed, 6), m.Settings().Seed)
	m = send(m, "right")
	assert.Equal(t, towerscore.AdvanceSeed(towerscore.DefaultSeed, 10), m.Settings().Seed)
}

func TestMenuAdjustsSize(t *testing.T) {
	m := newTestModel(t, towers.DefaultSettings(), nil)

	// New game, Width, Height, Sound
	m = send(m, "down", "right", "right")
	assert.Equal(t, 12, m.Settings().Width)

	m = send(m, "down")
	for i := 0; i < 10; i++ {
		m = send(m, "left")
	}
	assert.Equal(t, towers.MinSize, m.Settings().Height)

	m = send(m, "down", "enter")
	assert.False(t, m.Settings().Sound)
}

func TestNewGameAndContinue(t *testing.T) {
	store := openStore(t)
	m := newTestModel(t, towers.DefaultSettings(), store)

	m = send(m, "enter")
	require.NotNil(t, m.Session(), "new game should start")
	saved, _ := loadSettings(t, store)
	assert.False(t, saved.CanContinue(), "new game clears the stored board first")

	field := m.Session().Field().Clone()
	m = send(m, "down", "right")
	moves := m.Session().Moves()

	m = send(m, "enter")
	assert.Nil(t, m.Session(), "enter leaves the board")
	saved, savedMoves := loadSettings(t, store)
	require.True(t, saved.CanContinue())
	assert.Equal(t, moves, savedMoves)

	// Continue is now the first menu entry
	m = send(m, "enter")
	require.NotNil(t, m.Session())
	assert.True(t, field.Equal(m.Session().Field()))
	assert.Equal(t, moves, m.Session().Moves())
}

func TestSolveIsRecorded(t *testing.T) {
	store := openStore(t)
	f, err := towerscore.ParseLayout("Aa")
	require.NoError(t, err)

	settings := towers.DefaultSettings()
	settings.FieldData = towers.NewSession(f).Encode()
	m := newTestModel(t, settings, store)

	m = send(m, "enter") // Continue
	require.NotNil(t, m.Session())
	m = send(m, " ", "right")
	require.True(t, m.Session().Solved())

	m = send(m, "enter")
	assert.Nil(t, m.Session())

	saved, _ := loadSettings(t, store)
	assert.False(t, saved.CanContinue(), "a solved board is not kept")

	solves, err := store.RecentSolves(10)
	require.NoError(t, err)
	require.Len(t, solves, 1)
	assert.Equal(t, 1, solves[0].Moves)
	assert.Equal(t, 2, solves[0].Width)
	assert.Equal(t, "continued", solves[0].Seed)
}

func TestQuitOnSolvedBoardRecordsSolve(t *testing.T) {
	store := openStore(t)
	f, err := towerscore.ParseLayout("Aa")
	require.NoError(t, err)

	settings := towers.DefaultSettings()
	settings.FieldData = towers.NewSession(f).Encode()
	m := newTestModel(t, settings, store)

	m = send(m, "enter", " ", "right")
	require.True(t, m.Session().Solved())

	m = send(m, "q")

	saved, savedMoves := loadSettings(t, store)
	assert.False(t, saved.CanContinue(), "a solved board is not kept")
	assert.Zero(t, savedMoves)

	solves, err := store.RecentSolves(10)
	require.NoError(t, err)
	require.Len(t, solves, 1)
	assert.Equal(t, 1, solves[0].Moves)
}

func TestQuitMidGameKeepsBoard(t *testing.T) {
	store := openStore(t)
	m := newTestModel(t, towers.DefaultSettings(), store)

	m = send(m, "enter")
	require.NotNil(t, m.Session())

	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())

	saved, _ := loadSettings(t, store)
	assert.True(t, saved.CanContinue())
}

func TestBrokenSaveIsDropped(t *testing.T) {
	store := openStore(t)
	settings := towers.DefaultSettings()
	settings.FieldData = []byte{9, 9, 0}
	m := newTestModel(t, settings, store)

	m = send(m, "enter")
	assert.Nil(t, m.Session())
	assert.False(t, m.Settings().CanContinue())

	saved, _ := loadSettings(t, store)
	assert.False(t, saved.CanContinue())
}

func TestStatsView(t *testing.T) {
	store := openStore(t)
	_, err := store.RecordSolve(storage.Solve{Width: 6, Height: 5, Towers: 4, Seed: "s", Moves: 9})
	require.NoError(t, err)

	m := newTestModel(t, towers.DefaultSettings(), store)
	// New game, Width, Height, Sound, Stats
	m = send(m, "down", "down", "down", "down", "enter")
	assert.Contains(t, m.View(), "SOLVED PUZZLES - 1")
	assert.Contains(t, m.View(), "6x5")

	m = send(m, "esc")
	assert.Contains(t, m.View(), "T O W E R S")
}

func TestGameView(t *testing.T) {
	m := newTestModel(t, towers.DefaultSettings(), nil)
	m = send(m, "enter")

	view := m.View()
	assert.Contains(t, view, "TOWERS  10x10")
	assert.Contains(t, view, "flatten")
}

func TestBellCmd(t *testing.T) {
	var buf bytes.Buffer
	assert.Nil(t, bellCmd(&buf)())
	assert.Equal(t, "\a", buf.String())
}
