package towers

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-towers/internal/core"
	"github.com/vovakirdan/tui-towers/internal/games/towers/core"
)

// Encode serialises the session: the field bytes followed by
//
//	u8 hover x, u8 hover y
//	u8 has selection; if set: u8 selected x, u8 selected y
//	u8 mode (0 select, 1 flatten, 2 deflatten)
//	32 x u8 colour mapping
//
// The move counter is not part of the layout.
func (s *Session) Encode() []byte {
	data := s.field.Encode()
	data = append(data, byte(s.hover.X), byte(s.hover.Y))
	if s.hasSel {
		data = append(data, 1, byte(s.selected.X), byte(s.selected.Y))
	} else {
		data = append(data, 0)
	}
	data = append(data, byte(s.mode))
	data = append(data, s.colors[:]...)
	return data
}

// DecodeSession restores a session written by Encode and returns the
// number of bytes consumed. An unknown mode byte decodes as ModeSelect.
func DecodeSession(data []byte) (*Session, int, error) {
	field, n, err := core.DecodeField(data)
	if err != nil {
		return nil, 0, fmt.Errorf("towers: cannot decode field: %w", err)
	}

	rest := data[n:]
	short := func() (*Session, int, error) {
		return nil, 0, fmt.Errorf("towers: cannot decode view state: %w", core.ErrShortBuffer)
	}
	if len(rest) < 3 {
		return short()
	}

	s := &Session{field: field}
	s.hover = core.C(int(rest[0]), int(rest[1]))
	i := 2
	if rest[i] != 0 {
		if len(rest) < i+3 {
			return short()
		}
		s.selected, s.hasSel = core.C(int(rest[i+1]), int(rest[i+2])), true
		i += 3
	} else {
		i++
	}

	if len(rest) < i+1+platformcore.TowerColors {
		return short()
	}
	switch m := Mode(rest[i]); m {
	case ModeFlatten, ModeDeflatten:
		s.mode = m
	default:
		s.mode = ModeSelect
	}
	i++
	copy(s.colors[:], rest[i:i+platformcore.TowerColors])
	i += platformcore.TowerColors

	return s, n + i, nil
}
