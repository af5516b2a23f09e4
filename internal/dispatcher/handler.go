package dispatcher

import "context"

// Command is a named request with optional arguments.
type Command struct {
	Name string
	Args []string
}

// Handler runs a command.
type Handler interface {
	// Handle executes the command.
	Handle(ctx context.Context, cmd Command) error

	// Priority returns the handler priority (higher = checked first).
	Priority() int
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc struct {
	fn   func(ctx context.Context, cmd Command) error
	prio int
}

// NewHandlerFunc creates a HandlerFunc from a function.
func NewHandlerFunc(fn func(ctx context.Context, cmd Command) error) *HandlerFunc {
	return &HandlerFunc{fn: fn}
}

// NewHandlerFuncWithPriority creates a HandlerFunc with a specified priority.
func NewHandlerFuncWithPriority(fn func(ctx context.Context, cmd Command) error, priority int) *HandlerFunc {
	return &HandlerFunc{fn: fn, prio: priority}
}

// Handle implements Handler.
func (f *HandlerFunc) Handle(ctx context.Context, cmd Command) error {
	if f.fn == nil {
		return nil
	}
	return f.fn(ctx, cmd)
}

// Priority implements Handler.
func (f *HandlerFunc) Priority() int {
	return f.prio
}
