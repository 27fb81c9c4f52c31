package core_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-towers/internal/games/towers/core"
)

func TestEncodeLayout(t *testing.T) {
	f := mustLayout(t, "Aa")

	want := []byte{
		0x02, 0x01, 0x00, 0x01, // 2x1, one tower
		0x00, 0x00, 0x02, 0x02, 0x00, 0x00, 0x01, 0x01, // tower 0
		0x00, 0x00, 0xFF, 0xFF, // occupancy
		0x00, 0x00, 0x00, 0x00, // solution
		0x00, // no mask
	}
	assert.Equal(t, want, f.Encode())
	assert.Equal(t, len(want), f.EncodedLen())
}

func TestCodecRoundTrip(t *testing.T) {
	mask := core.NewMaskFromRows(
		"xx.xxx",
		"xxxxxx",
		"x xxxx",
		"xxxxx.",
	)

	tests := []struct {
		name string
		f    *core.Field
	}{
		{"start state", generate(t, 9, 7, nil, core.DefaultSeed)},
		{"masked", generate(t, 6, 4, mask, [4]uint32{7, 7, 7, 7})},
		{"largest", generate(t, core.MaxWidth, core.MaxHeight, nil, [4]uint32{1, 2, 3, 4})},
		{"empty", core.New(3, 3, nil)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Mix spread and unspread towers so the occupancy differs from both poles.
			for _, tower := range tc.f.Towers()[:len(tc.f.Towers())/2] {
				if tiles, err := tc.f.CalcFlattenTowards(tower.Origin, core.DirRight, 2); err == nil {
					require.NoError(t, tc.f.Flatten(tower.Origin, tiles))
				}
			}

			data := tc.f.Encode()
			wantLen := 4 + tc.f.TowerCount()*8 + 2*tc.f.Area()*2 + 1
			if tc.f.Mask() != nil {
				wantLen += 2 + tc.f.Area()
			}
			require.Len(t, data, wantLen)

			decoded, n, err := core.DecodeField(data)
			require.NoError(t, err)
			assert.Equal(t, len(data), n)
			assert.True(t, tc.f.Equal(decoded))
		})
	}
}

func TestDecodeReportsConsumedBytes(t *testing.T) {
	f := generate(t, 5, 4, nil, core.DefaultSeed)
	data := f.Encode()
	trailer := []byte{0x01, 0x02, 0x03}

	target := core.New(1, 1, nil)
	n, err := target.Decode(append(data, trailer...))
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.True(t, f.Equal(target))
	assert.Equal(t, 5, target.Width())
	assert.Equal(t, 4, target.Height())
}

func TestDecodeShortBuffer(t *testing.T) {
	mask := core.NewMaskFromRows("x.", "xx")
	f := generate(t, 2, 2, mask, core.DefaultSeed)
	data := f.Encode()

	target := core.New(3, 1, nil)
	before := target.Clone()

	for i := 0; i < len(data); i++ {
		n, err := target.Decode(data[:i])
		require.Error(t, err, "prefix of %d bytes", i)
		assert.ErrorIs(t, err, core.ErrShortBuffer)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.Zero(t, n)
		assert.True(t, target.Equal(before))
	}
}
