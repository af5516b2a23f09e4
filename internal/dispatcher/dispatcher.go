package dispatcher

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// PreDispatchHook runs before a command's handler. Returning false cancels
// the command.
type PreDispatchHook func(ctx context.Context, cmd Command) bool

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.log = log
	}
}

// WithPanicRecovery turns handler panics into ErrPanic errors.
func WithPanicRecovery(enabled bool) Option {
	return func(d *Dispatcher) {
		d.recoverPanics = enabled
	}
}

// Dispatcher routes commands to handlers.
type Dispatcher struct {
	mu sync.RWMutex

	registry      *Registry
	preHooks      []PreDispatchHook
	recoverPanics bool

	log zerolog.Logger
}

// New creates a dispatcher with panic recovery enabled.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry:      NewRegistry(),
		recoverPanics: true,
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Register registers a handler for a command name.
func (d *Dispatcher) Register(name string, h Handler) {
	d.registry.Register(name, h)
}

// RegisterFunc registers a handler function for a command name.
func (d *Dispatcher) RegisterFunc(name string, fn func(ctx context.Context, cmd Command) error) {
	d.registry.Register(name, NewHandlerFunc(fn))
}

// Unregister removes every handler for a command name.
func (d *Dispatcher) Unregister(name string) {
	d.registry.Unregister(name)
}

// Commands returns the registered command names, sorted.
func (d *Dispatcher) Commands() []string {
	return d.registry.List()
}

// RegisterPreHook registers a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, hook)
}

// Dispatch runs the command name with args.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args ...string) error {
	cmd := Command{Name: name, Args: args}
	start := time.Now()

	if !d.runPreHooks(ctx, cmd) {
		return fmt.Errorf("%s: %w", name, ErrCommandCancelled)
	}

	h := d.registry.Get(name)
	if h == nil {
		return fmt.Errorf("%s: %w", name, ErrUnknownCommand)
	}

	var err error
	if d.recoverPanics {
		err = d.executeWithRecovery(ctx, h, cmd)
	} else {
		err = h.Handle(ctx, cmd)
	}

	if err != nil {
		d.log.Warn().Err(err).Str("command", name).Msg("command failed")
		return err
	}
	d.log.Debug().Str("command", name).Dur("took", time.Since(start)).Msg("command done")
	return nil
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(ctx context.Context, h Handler, cmd Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			d.log.Error().Str("command", cmd.Name).Str("stack", string(stack[:n])).Msg("handler panic")
			err = fmt.Errorf("%s: %w: %v", cmd.Name, ErrPanic, r)
		}
	}()

	return h.Handle(ctx, cmd)
}

// runPreHooks runs all pre-dispatch hooks.
// Returns false if any hook cancels the command.
func (d *Dispatcher) runPreHooks(ctx context.Context, cmd Command) bool {
	d.mu.RLock()
	hooks := make([]PreDispatchHook, len(d.preHooks))
	copy(hooks, d.preHooks)
	d.mu.RUnlock()

	for _, hook := range hooks {
		if !hook(ctx, cmd) {
			return false
		}
	}
	return true
}
