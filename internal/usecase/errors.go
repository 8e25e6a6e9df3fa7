package usecase

import "errors"

var (
	// ErrInvalidInput wraps malformed identifiers, feed types and payloads.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized is returned before any side effect when the caller does not own the reel.
	ErrUnauthorized = errors.New("not allowed to modify this reel")
	// ErrReelNotFound means the reel does not exist or is not visible to the caller.
	ErrReelNotFound  = errors.New("reel not found")
	ErrTrackNotFound = errors.New("audio track not found")
)
