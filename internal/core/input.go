package core

// Action represents a semantic game action, abstracted from physical key presses.
// The set mirrors a handheld pad: a d-pad, two face buttons, Start, Select
// and two shoulder buttons.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, K, Up arrow - move hover / spread up
	ActionDown             // S, J, Down arrow
	ActionLeft             // A, H, Left arrow
	ActionRight            // D, L, Right arrow
	ActionFlatten          // Space, F - select a tower for flattening (A button)
	ActionDeflatten        // X, G - select a tower for deflattening (B button)
	ActionMenu             // Enter - leave the board (Start button)
	ActionSelect           // Esc, Backspace - leave the board (Select button)
	ActionShoulderL        // [ (L button)
	ActionShoulderR        // ] (R button)
	ActionQuit             // Q, Ctrl+C - exit the program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFlatten:
		return "Flatten"
	case ActionDeflatten:
		return "Deflatten"
	case ActionMenu:
		return "Menu"
	case ActionSelect:
		return "Select"
	case ActionShoulderL:
		return "ShoulderL"
	case ActionShoulderR:
		return "ShoulderR"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// FrameOf returns a frame with the given actions set.
func FrameOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
