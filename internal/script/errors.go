package script

import "errors"

var (
	// ErrClosed is returned when running a script on a closed runner.
	ErrClosed = errors.New("script: runner is closed")

	// ErrNoEditor is raised by ws functions that need an open editor.
	ErrNoEditor = errors.New("script: no active editor")
)
