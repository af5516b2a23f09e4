// Package dispatcher routes named commands to handlers.
//
// Commands are identified by name, such as
// "whitespace:remove-trailing-whitespace". Multiple handlers can be
// registered for the same name; the one with the highest priority runs.
//
// # Handler Execution
//
// When a command is dispatched:
//
//  1. Pre-dispatch hooks are called (any of them can cancel the command)
//  2. The registry finds the handler
//  3. The handler is executed (with optional panic recovery)
//  4. The outcome is logged
//
// # Handlers
//
// Handlers implement the Handler interface:
//
//	type Handler interface {
//	    Handle(ctx context.Context, cmd Command) error
//	    Priority() int
//	}
//
// Plain functions can be registered with RegisterFunc.
package dispatcher
