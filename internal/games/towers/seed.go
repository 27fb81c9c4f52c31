package towers

import (
	"fmt"
	"strconv"
	"strings"

	platformcore "github.com/vovakirdan/tui-towers/internal/core"
	"github.com/vovakirdan/tui-towers/internal/games/towers/core"
)

// seedWeights is how far each pressed action pushes the seed.
var seedWeights = []struct {
	action platformcore.Action
	steps  int
}{
	{platformcore.ActionFlatten, 1},
	{platformcore.ActionDeflatten, 2},
	{platformcore.ActionLeft, 3},
	{platformcore.ActionRight, 4},
	{platformcore.ActionUp, 5},
	{platformcore.ActionDown, 6},
	{platformcore.ActionSelect, 7},
	{platformcore.ActionMenu, 8},
	{platformcore.ActionShoulderR, 9},
	{platformcore.ActionShoulderL, 10},
}

// PerturbSeed advances seed by the summed weights of the actions in the
// frame, so the next puzzle depends on how the player got there.
func PerturbSeed(seed [4]uint32, in platformcore.InputFrame) [4]uint32 {
	n := 0
	for _, w := range seedWeights {
		if in.Has(w.action) {
			n += w.steps
		}
	}
	return core.AdvanceSeed(seed, n)
}

// FormatSeed renders a seed as four comma-separated hex words.
func FormatSeed(seed [4]uint32) string {
	return fmt.Sprintf("%08x,%08x,%08x,%08x", seed[0], seed[1], seed[2], seed[3])
}

// ParseSeed reads four comma-separated words. Each word may be decimal or
// 0x-prefixed hex; a bare eight-digit word as written by FormatSeed is
// read as hex.
func ParseSeed(s string) ([4]uint32, error) {
	var seed [4]uint32
	parts := strings.Split(s, ",")
	if len(parts) != len(seed) {
		return seed, fmt.Errorf("towers: seed needs 4 words, got %d", len(parts))
	}
	for i, p := range parts {
		p = strings.TrimSpace(p)
		base := 0
		if len(p) == 8 && !strings.HasPrefix(p, "0x") {
			base = 16
		}
		v, err := strconv.ParseUint(p, base, 32)
		if err != nil {
			return seed, fmt.Errorf("towers: bad seed word %q: %w", p, err)
		}
		seed[i] = uint32(v)
	}
	return seed, nil
}
