package engine

import "errors"

// Errors returned by editor operations.
var (
	// ErrDestroyed indicates the editor has been destroyed.
	ErrDestroyed = errors.New("editor destroyed")

	// ErrRowOutOfRange indicates a row outside the buffer.
	ErrRowOutOfRange = errors.New("row out of range")
)
