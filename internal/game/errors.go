// internal/game/errors.go
//
// Sentinel errors for board generation and action dispatch.

package game

import "errors"

var (
	ErrNotEnoughWords = errors.New("not enough unique words for a board")
	ErrOutOfBounds    = errors.New("coordinate out of range")
	ErrUnknownAction  = errors.New("unknown action")
)
