package towers

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	platformcore "github.com/vovakirdan/tui-towers/internal/core"
	"github.com/vovakirdan/tui-towers/internal/games/towers/core"
)

var settingsHeader = []byte{0xe7, 0x2a, 0xf5, 0x0c, 0x1d, 0x1b, 0x09, 0x18}

// settingsFixedLen is the header plus sound, width, height, four seed
// words and the field length.
const settingsFixedLen = 8 + 1 + 2 + 4*4 + 2

// Default board settings.
const (
	DefaultWidth  = 10
	DefaultHeight = 10
	MinSize       = 5
)

var (
	// ErrBadHeader means the data is not a settings container.
	ErrBadHeader = errors.New("towers: settings header mismatch")
	// ErrSettingsTruncated means the fixed part of the container is incomplete.
	ErrSettingsTruncated = errors.New("towers: settings truncated")
	// ErrFieldDataTooLarge means the saved game does not fit the u16 length.
	ErrFieldDataTooLarge = errors.New("towers: saved game too large")
)

// Settings is everything that survives between runs: the options, the
// seed of the next puzzle and the unfinished game, if any.
type Settings struct {
	Sound     bool
	Width     int
	Height    int
	Seed      [4]uint32
	FieldData []byte // Encoded session, nil when there is nothing to continue
}

// DefaultSettings returns the settings of a first start.
func DefaultSettings() Settings {
	return Settings{
		Sound:  true,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Seed:   core.DefaultSeed,
	}
}

// CanContinue reports whether an unfinished game is stored.
func (s Settings) CanContinue() bool {
	return len(s.FieldData) > 0
}

// AlterSeed pushes the seed forward by the actions of one input frame.
func (s *Settings) AlterSeed(in platformcore.InputFrame) {
	s.Seed = PerturbSeed(s.Seed, in)
}

// Encode serialises the settings container:
//
//	8-byte header e7 2a f5 0c 1d 1b 09 18
//	u8 sound, u8 width, u8 height
//	4 x u32 seed (big-endian)
//	u16 field data length (big-endian), then the field data
func (s Settings) Encode() ([]byte, error) {
	if len(s.FieldData) > 0xFFFF {
		return nil, fmt.Errorf("%w: %d bytes", ErrFieldDataTooLarge, len(s.FieldData))
	}

	data := make([]byte, 0, settingsFixedLen+len(s.FieldData))
	data = append(data, settingsHeader...)

	sound := byte(0)
	if s.Sound {
		sound = 1
	}
	data = append(data, sound, byte(s.Width), byte(s.Height))
	for _, w := range s.Seed {
		data = binary.BigEndian.AppendUint32(data, w)
	}
	data = binary.BigEndian.AppendUint16(data, uint16(len(s.FieldData)))
	return append(data, s.FieldData...), nil
}

type decodeOptions struct {
	strictSeed bool
}

// DecodeOption configures DecodeSettings.
type DecodeOption func(*decodeOptions)

// StrictSeedDecode reads the seed words exactly as Encode wrote them.
//
// Without it, each word is rebuilt from its bytes b0..b3 as
// b0<<24 | b1<<16 | b0<<8 | b0, which is how existing saves have always
// been read back. Puzzles generated from a reloaded seed depend on that.
func StrictSeedDecode() DecodeOption {
	return func(o *decodeOptions) {
		o.strictSeed = true
	}
}

// DecodeSettings reads a settings container. Stored field data that is
// shorter than its declared length is dropped, leaving nothing to continue.
func DecodeSettings(data []byte, opts ...DecodeOption) (Settings, error) {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	if len(data) < len(settingsHeader) || !bytes.Equal(data[:len(settingsHeader)], settingsHeader) {
		return Settings{}, ErrBadHeader
	}
	if len(data) < settingsFixedLen {
		return Settings{}, ErrSettingsTruncated
	}

	di := len(settingsHeader)
	s := Settings{
		Sound:  data[di] != 0,
		Width:  int(data[di+1]),
		Height: int(data[di+2]),
	}
	di += 3

	for i := range s.Seed {
		b := data[di : di+4]
		if o.strictSeed {
			s.Seed[i] = binary.BigEndian.Uint32(b)
		} else {
			s.Seed[i] = uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[0])<<8 | uint32(b[0])
		}
		di += 4
	}

	n := int(binary.BigEndian.Uint16(data[di:]))
	di += 2
	if n > 0 && len(data) >= di+n {
		s.FieldData = append([]byte(nil), data[di:di+n]...)
	}
	return s, nil
}

// Validate checks that the board size can be generated.
func (s Settings) Validate() error {
	if s.Width < MinSize || s.Width > core.MaxWidth {
		return fmt.Errorf("towers: width %d out of range %d..%d", s.Width, MinSize, core.MaxWidth)
	}
	if s.Height < MinSize || s.Height > core.MaxHeight {
		return fmt.Errorf("towers: height %d out of range %d..%d", s.Height, MinSize, core.MaxHeight)
	}
	return nil
}
