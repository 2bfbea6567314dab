package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrDuplicateName  = errors.New("player already exists")
	ErrInvalidName    = errors.New("invalid player name")
	ErrInvalidRating  = errors.New("invalid rating")

	// Set errors
	ErrMalformedScore = errors.New("malformed score")
	ErrInvalidSet     = errors.New("invalid set")

	// Persistence errors
	ErrStateNotFound = errors.New("no saved state")
	ErrCorruptState  = errors.New("saved state is corrupt")
)
