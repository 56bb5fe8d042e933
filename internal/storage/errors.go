package storage

import "errors"

// Storage errors shared by all backends.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCorruptState is returned when persisted state exists but cannot be
	// parsed. The file label store treats this as fatal at startup.
	ErrCorruptState = errors.New("corrupt persisted state")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
