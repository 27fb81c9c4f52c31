package towers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	platformcore "github.com/vovakirdan/tui-towers/internal/core"
	"github.com/vovakirdan/tui-towers/internal/games/towers"
	"github.com/vovakirdan/tui-towers/internal/games/towers/core"
)

func TestPerturbSeed(t *testing.T) {
	seed := core.DefaultSeed

	assert.Equal(t, seed, towers.PerturbSeed(seed, platformcore.NewInputFrame()))
	assert.Equal(t, core.AdvanceSeed(seed, 3),
		towers.PerturbSeed(seed, platformcore.FrameOf(platformcore.ActionFlatten, platformcore.ActionDeflatten)))

	all := platformcore.FrameOf(
		platformcore.ActionFlatten, platformcore.ActionDeflatten,
		platformcore.ActionLeft, platformcore.ActionRight,
		platformcore.ActionUp, platformcore.ActionDown,
		platformcore.ActionSelect, platformcore.ActionMenu,
		platformcore.ActionShoulderR, platformcore.ActionShoulderL,
	)
	assert.Equal(t, core.AdvanceSeed(seed, 55), towers.PerturbSeed(seed, all))

	// Quit is not a game input.
	assert.Equal(t, seed, towers.PerturbSeed(seed, platformcore.FrameOf(platformcore.ActionQuit)))
}

func TestFormatParseSeed(t *testing.T) {
	text := towers.FormatSeed(core.DefaultSeed)
	assert.Equal(t, "3c7c44a3,1c600de3,c4caefca,2a19e6ff", text)

	seed, err := towers.ParseSeed(text)
	assert.NoError(t, err)
	assert.Equal(t, core.DefaultSeed, seed)

	seed, err = towers.ParseSeed("1, 2, 0x10, 4294967295")
	assert.NoError(t, err)
	assert.Equal(t, [4]uint32{1, 2, 16, 0xffffffff}, seed)

	for _, bad := range []string{"", "1,2,3", "1,2,3,x", "1,2,3,4294967296"} {
		_, err := towers.ParseSeed(bad)
		assert.Error(t, err, "ParseSeed(%q)", bad)
	}
}
