// Package towers implements the Towers puzzle game on top of the core
// engine: hover and selection handling, the select/flatten/deflatten input
// modes, the tower colour permutation, session saving and the settings
// container.
package towers

import (
	platformcore "github.com/vovakirdan/tui-towers/internal/core"
	"github.com/vovakirdan/tui-towers/internal/games/towers/core"
)

// Mode is the current input mode of a session.
type Mode uint8

const (
	ModeSelect    Mode = iota // Arrows move the hover
	ModeFlatten               // Arrows spread the selected tower
	ModeDeflatten             // Arrows pull the selected tower back
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeSelect:
		return "Select"
	case ModeFlatten:
		return "Flatten"
	case ModeDeflatten:
		return "Deflatten"
	default:
		return "Unknown"
	}
}

// Exit tells whether and how the player left the board.
type Exit uint8

const (
	ExitNone Exit = iota
	ExitCompleted
	ExitNotCompleted
)

// Session is one game on one field.
type Session struct {
	field    *core.Field
	hover    core.Coord
	selected core.Coord
	hasSel   bool
	mode     Mode
	colors   [platformcore.TowerColors]uint8
	exit     Exit
	moves    int
}

// NewSession wraps an existing field with the identity colour mapping and
// the hover on the top-left tile.
func NewSession(field *core.Field) *Session {
	s := &Session{field: field}
	for i := range s.colors {
		s.colors[i] = uint8(i)
	}
	return s
}

// NewGame generates a w x h puzzle from seed. The colour mapping is
// shuffled with the same generator after the field, so one seed fixes both.
func NewGame(w, h int, seed [4]uint32) *Session {
	field := core.New(w, h, nil)
	rng := core.NewRNG(seed)
	field.InitWithRandomTowers(rng)

	s := NewSession(field)
	core.Shuffle(rng, len(s.colors), func(i, j int) {
		s.colors[i], s.colors[j] = s.colors[j], s.colors[i]
	})
	return s
}

// Field returns the underlying field.
func (s *Session) Field() *core.Field { return s.field }

// Hover returns the hovered tile.
func (s *Session) Hover() core.Coord { return s.hover }

// Selected returns the origin of the selected tower, if any.
func (s *Session) Selected() (core.Coord, bool) { return s.selected, s.hasSel }

// Mode returns the current input mode.
func (s *Session) Mode() Mode { return s.mode }

// Exit returns how the player left the board, or ExitNone while playing.
func (s *Session) Exit() Exit { return s.exit }

// Moves returns the number of applied flatten and deflatten moves.
func (s *Session) Moves() int { return s.moves }

// SetMoves restores the move counter of a continued game.
func (s *Session) SetMoves(n int) { s.moves = n }

// Solved reports whether every tower is flat.
func (s *Session) Solved() bool { return s.field.IsSolved() }

// TowerColor returns the display colour of tower ti.
func (s *Session) TowerColor(ti int) platformcore.Color {
	return platformcore.TowerColor(int(s.colors[ti%platformcore.TowerColors]))
}

// ColorMapping returns the tower colour permutation.
func (s *Session) ColorMapping() [platformcore.TowerColors]uint8 { return s.colors }

func (s *Session) resetInput() {
	s.hover = core.C(0, 0)
	s.selected = core.Coord{}
	s.hasSel = false
	s.mode = ModeSelect
}

// ResetToStartState unflattens every tower and clears the selection.
func (s *Session) ResetToStartState() {
	s.resetInput()
	s.field.ResetToStartState()
	s.moves = 0
}

// SetToSolutionState flattens every tower along its planted arms.
func (s *Session) SetToSolutionState() {
	s.resetInput()
	s.field.SetToSolutionState()
}

// HandleInput applies one frame of input and returns the sound cues it
// caused. Input is ignored once the player has left the board.
func (s *Session) HandleInput(in platformcore.InputFrame) []platformcore.Cue {
	if s.exit != ExitNone {
		return nil
	}

	var cues []platformcore.Cue
	if s.mode == ModeSelect {
		cues = s.handleSelect(in, cues)
	} else {
		cues = s.handleMove(in, cues)
	}

	if in.Has(platformcore.ActionMenu) || in.Has(platformcore.ActionSelect) {
		s.exit = ExitNotCompleted
		if s.field.IsSolved() {
			s.exit = ExitCompleted
		}
		cues = append(cues, platformcore.CueSelect)
	}
	return cues
}

func (s *Session) resetSelection() {
	s.hasSel = false
	s.mode = ModeSelect
}

func (s *Session) handleSelect(in platformcore.InputFrame, cues []platformcore.Cue) []platformcore.Cue {
	moved := false
	switch {
	case in.Has(platformcore.ActionUp) && s.hover.Y > 0:
		s.hover.Y--
		moved = true
	case in.Has(platformcore.ActionDown) && s.hover.Y < s.field.Height()-1:
		s.hover.Y++
		moved = true
	}
	switch {
	case in.Has(platformcore.ActionLeft) && s.hover.X > 0:
		s.hover.X--
		moved = true
	case in.Has(platformcore.ActionRight) && s.hover.X < s.field.Width()-1:
		s.hover.X++
		moved = true
	}
	if moved {
		cues = append(cues, platformcore.CueCursorMove)
	}

	flatten := in.Has(platformcore.ActionFlatten)
	if !flatten && !in.Has(platformcore.ActionDeflatten) {
		return cues
	}
	ti, ok := s.field.TowerAt(s.hover)
	if !ok {
		return cues
	}

	origin := s.field.Tower(ti).Origin
	s.selected, s.hasSel = origin, true
	s.hover = origin
	s.mode = ModeDeflatten
	if flatten {
		s.mode = ModeFlatten
	}
	return append(cues, platformcore.CueSelect)
}

func (s *Session) handleMove(in platformcore.InputFrame, cues []platformcore.Cue) []platformcore.Cue {
	if dir, ok := frameDir(in); ok && s.hasSel {
		solvedBefore := s.field.IsSolved()
		if s.applyMove(dir) {
			s.moves++
			cues = append(cues, platformcore.CueMove)
			if !solvedBefore && s.field.IsSolved() {
				cues = append(cues, platformcore.CueSolved)
			}
		}
	}

	flatten := in.Has(platformcore.ActionFlatten)
	if !flatten && !in.Has(platformcore.ActionDeflatten) {
		return cues
	}
	if (s.mode == ModeFlatten && flatten) || (s.mode == ModeDeflatten && !flatten) {
		s.resetSelection()
	} else if s.mode == ModeFlatten {
		s.mode = ModeDeflatten
	} else {
		s.mode = ModeFlatten
	}
	return append(cues, platformcore.CueSelect)
}

// applyMove spreads or retracts the selected tower by one tile. In
// deflatten mode pressing towards the tower pulls its far edge back.
func (s *Session) applyMove(dir core.Dir) bool {
	var (
		tiles []core.Coord
		err   error
	)
	if s.mode == ModeFlatten {
		tiles, err = s.field.CalcFlattenTowards(s.selected, dir, 1)
		if err == nil {
			err = s.field.Flatten(s.selected, tiles)
		}
	} else {
		tiles, err = s.field.CalcDeflattenTowards(s.selected, dir.Opposite(), 1)
		if err == nil {
			err = s.field.Deflatten(s.selected, tiles)
		}
	}
	return err == nil
}

// frameDir returns the first pressed direction in up, down, left, right order.
func frameDir(in platformcore.InputFrame) (core.Dir, bool) {
	switch {
	case in.Has(platformcore.ActionUp):
		return core.DirUp, true
	case in.Has(platformcore.ActionDown):
		return core.DirDown, true
	case in.Has(platformcore.ActionLeft):
		return core.DirLeft, true
	case in.Has(platformcore.ActionRight):
		return core.DirRight, true
	default:
		return 0, false
	}
}

// Step advances the session by one tick of input.
func (s *Session) Step(in platformcore.InputFrame) platformcore.StepResult {
	cues := s.HandleInput(in)
	return platformcore.StepResult{State: s.State(), Cues: cues}
}

// State returns the current game state.
func (s *Session) State() platformcore.GameState {
	return platformcore.GameState{
		Moves:  s.moves,
		Solved: s.field.IsSolved(),
		Exited: s.exit != ExitNone,
	}
}
