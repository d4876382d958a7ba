package domain

import "errors"

// Errors returned by the watch party core. Callers match them with errors.Is.
var (
	ErrEmptySelection        = errors.New("no friends selected")
	ErrNotFound              = errors.New("participant not found")
	ErrNotAuthorized         = errors.New("only the host can do that")
	ErrHostEvictionForbidden = errors.New("the host cannot be removed")

	ErrInvalidTransition   = errors.New("invalid session transition")
	ErrRoomClosed          = errors.New("room is closed")
	ErrHostControlInactive = errors.New("host control is not active in this room")
	ErrRoomNotFound        = errors.New("room not found")
	ErrCodeSpaceExhausted  = errors.New("could not generate a unique room code")
)
