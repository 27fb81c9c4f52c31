package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int  // Screen width in characters
	ScreenH  int  // Screen height in characters
	TickRate int  // Simulation ticks per second (default 30)
	Sound    bool // Whether audio cues are played
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Sound:    true,
	}
}

// GameState represents the current state of a game.
// Returned by the game after every step to communicate status to the platform.
type GameState struct {
	Moves  int  // Successful flatten and deflatten moves
	Solved bool // Whether every tower is flat
	Exited bool // Whether the player left the board
}

// Cue is a sound event emitted by the game. The platform decides whether
// and how to play it.
type Cue int

const (
	CueCursorMove Cue = iota
	CueSelect
	CueMove
	CueSolved
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueCursorMove:
		return "CursorMove"
	case CueSelect:
		return "Select"
	case CueMove:
		return "Move"
	case CueSolved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// StepResult is returned after each simulation tick.
// Contains the updated game state and any cues that occurred.
type StepResult struct {
	State GameState
	Cues  []Cue
}
