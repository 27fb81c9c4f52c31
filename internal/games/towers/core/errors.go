package core

import "errors"

// Rejected moves. A query that returns one of these has not changed the field.
var (
	ErrOutOfBounds      = errors.New("tile outside the field")
	ErrNotInLine        = errors.New("tiles are not on one row or column")
	ErrNotPlayable      = errors.New("tile is masked out")
	ErrNoTower          = errors.New("no tower on tile")
	ErrAlreadyFlat      = errors.New("tower is already flat")
	ErrBlocked          = errors.New("path is blocked")
	ErrOutOfReach       = errors.New("destination beyond tower height")
	ErrNotOwned         = errors.New("tile not owned by the tower")
	ErrNothingToReclaim = errors.New("tower does not extend in that direction")
	ErrInvalidCount     = errors.New("tile count must be at least 1")
	ErrEmptyMove        = errors.New("no tiles to move")
	ErrBadDir           = errors.New("direction is not one of up, right, down, left")
)
