package domain

import "errors"

var (
	// ErrInvalidInput signals malformed caller input (blank question, all topic fields empty).
	ErrInvalidInput = errors.New("invalid input")
	// ErrIndexUnavailable signals an index provider failure.
	ErrIndexUnavailable = errors.New("index provider unavailable")
	// ErrGenerationFailed signals a generation provider failure or empty completion.
	ErrGenerationFailed = errors.New("generation failed")
	// ErrSeedingFailed signals that the one-time index seeding could not complete.
	ErrSeedingFailed = errors.New("index seeding failed")
)
