package script

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/whitespace/internal/config"
	"github.com/dshills/whitespace/internal/dispatcher"
	"github.com/dshills/whitespace/internal/whitespace"
	"github.com/dshills/whitespace/internal/workspace"
)

// DefaultTimeout bounds one script execution.
const DefaultTimeout = 5 * time.Second

// Deps are the components scripts drive.
type Deps struct {
	Config     *config.Config
	Workspace  *workspace.Workspace
	Whitespace *whitespace.Whitespace
	Dispatcher *dispatcher.Dispatcher
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. Script print output goes to it at info level.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// WithTimeout sets the execution timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// Runner owns a sandboxed Lua state with the ws module installed.
//
// gopher-lua states are not goroutine-safe; the mutex serializes runs.
type Runner struct {
	mu     sync.Mutex
	L      *lua.LState
	deps   Deps
	closed bool

	timeout time.Duration
	log     zerolog.Logger
}

// New creates a runner over deps.
func New(deps Deps, opts ...Option) *Runner {
	r := &Runner{
		deps:    deps,
		timeout: DefaultTimeout,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(r.L)
	r.L.SetGlobal("print", r.L.NewFunction(r.print))
	r.L.SetGlobal("ws", r.L.SetFuncs(r.L.NewTable(), r.api()))
	return r
}

// openSafeLibraries opens the libraries that cannot reach the host system.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// DoString runs Lua source.
func (r *Runner) DoString(ctx context.Context, code string) error {
	return r.run(ctx, func() error { return r.L.DoString(code) })
}

// DoFile runs the Lua file at path.
func (r *Runner) DoFile(ctx context.Context, path string) error {
	r.log.Debug().Str("script", path).Msg("running script")
	return r.run(ctx, func() error { return r.L.DoFile(path) })
}

func (r *Runner) run(ctx context.Context, fn func() error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("lua panic: %v", rec)
		}
	}()
	return fn()
}

// Close releases the Lua state. Close is idempotent.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.L.Close()
	r.closed = true
}

func (r *Runner) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	r.log.Info().Strs("args", parts).Msg("script")
	return 0
}
