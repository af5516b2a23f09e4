// Package app wires the configuration, workspace, whitespace component,
// command dispatcher and script runner together and exposes the
// file-level operations the command line drives.
package app

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/dshills/whitespace/internal/config"
	"github.com/dshills/whitespace/internal/config/notify"
	"github.com/dshills/whitespace/internal/dispatcher"
	handlers "github.com/dshills/whitespace/internal/dispatcher/handlers/whitespace"
	"github.com/dshills/whitespace/internal/engine"
	"github.com/dshills/whitespace/internal/event"
	"github.com/dshills/whitespace/internal/fswatch"
	"github.com/dshills/whitespace/internal/host"
	"github.com/dshills/whitespace/internal/script"
	"github.com/dshills/whitespace/internal/whitespace"
	"github.com/dshills/whitespace/internal/workspace"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the user configuration file (TOML or YAML). Empty
	// means builtin defaults only.
	ConfigPath string

	// Env enables WHITESPACE_* environment overrides.
	Env bool

	// Settings are session overrides applied after loading.
	Settings map[string]any

	// Logger receives every component's logs.
	Logger zerolog.Logger
}

// Application is the central coordinator for all components.
type Application struct {
	mu sync.Mutex

	config     *config.Config
	workspace  *workspace.Workspace
	whitespace *whitespace.Whitespace
	dispatcher *dispatcher.Dispatcher
	script     *script.Runner

	subs   event.CompositeDisposable
	closed atomic.Bool
	log    zerolog.Logger
}

// New creates an Application and loads its configuration.
func New(opts Options) (*Application, error) {
	app := &Application{log: opts.Logger}
	if err := app.bootstrap(opts); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap(opts Options) error {
	// 1. Config
	app.config = config.New(
		config.WithUserFile(opts.ConfigPath),
		config.WithEnv(opts.Env),
		config.WithLogger(app.log.With().Str("component", "config").Logger()),
	)
	if err := app.config.Load(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	for key, value := range opts.Settings {
		app.config.Set(key, value)
	}

	// 2. Workspace, editors take the configured tab length
	app.workspace = workspace.New(
		workspace.WithEditorOptions(engine.WithTabLength(app.config.Int(config.KeyTabLength, ""))),
		workspace.WithLogger(app.log.With().Str("component", "workspace").Logger()),
	)
	adapter := host.NewWorkspace(app.workspace)

	// 3. Whitespace watches every editor the workspace opens
	app.whitespace = whitespace.New(app.config, adapter,
		whitespace.WithLogger(app.log.With().Str("component", "whitespace").Logger()),
	)
	editors := app.workspace.ObserveTextEditors(func(ed *engine.Editor) {
		app.applyTabLength(ed)
		app.whitespace.HandleEvents(host.WrapEditor(ed))
	})
	tabs := app.config.Observe(config.KeyTabLength, func(notify.Change) {
		for _, ed := range app.workspace.Editors() {
			app.applyTabLength(ed)
		}
	})
	if err := app.subs.Add(editors, tabs); err != nil {
		return &InitError{Component: "workspace", Err: err}
	}

	// 4. Commands
	app.dispatcher = dispatcher.New(
		dispatcher.WithLogger(app.log.With().Str("component", "dispatcher").Logger()),
	)
	handlers.Register(app.dispatcher, app.whitespace, adapter)

	// 5. Scripts
	app.script = script.New(script.Deps{
		Config:     app.config,
		Workspace:  app.workspace,
		Whitespace: app.whitespace,
		Dispatcher: app.dispatcher,
	}, script.WithLogger(app.log.With().Str("component", "script").Logger()))

	return nil
}

// applyTabLength sets the tab length configured for the grammar of ed.
func (app *Application) applyTabLength(ed *engine.Editor) {
	if n := app.config.Int(config.KeyTabLength, ed.Grammar()); n > 0 {
		ed.SetTabLength(n)
	}
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Workspace returns the workspace.
func (app *Application) Workspace() *workspace.Workspace {
	return app.workspace
}

// Whitespace returns the whitespace component.
func (app *Application) Whitespace() *whitespace.Whitespace {
	return app.whitespace
}

// Dispatcher returns the command dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// FixFile applies the save-time normalization to path and writes the
// file back if anything changed. It reports whether the file was written.
func (app *Application) FixFile(path string) (bool, error) {
	return app.withFile("fix", path, func(ed *engine.Editor) error {
		return app.whitespace.Normalize(host.WrapEditor(ed))
	})
}

// RunCommandOnFile opens path, runs the named command on it and writes
// the file back if anything changed.
func (app *Application) RunCommandOnFile(ctx context.Context, name, path string) (bool, error) {
	return app.withFile(name, path, func(*engine.Editor) error {
		return app.dispatcher.Dispatch(ctx, name)
	})
}

// withFile opens path in a fresh editor, runs fn, saves when the buffer
// changed and closes the editor.
func (app *Application) withFile(op, path string, fn func(ed *engine.Editor) error) (bool, error) {
	if app.closed.Load() {
		return false, ErrClosed
	}
	app.mu.Lock()
	defer app.mu.Unlock()

	ed, err := app.workspace.Open(path)
	if err != nil {
		return false, &OperationError{Op: op, Target: path, Err: err}
	}
	defer func() {
		if err := app.workspace.Close(ed); err != nil {
			app.log.Warn().Err(err).Str("path", path).Msg("close failed")
		}
	}()

	if err := fn(ed); err != nil {
		return false, &OperationError{Op: op, Target: path, Err: err}
	}
	if !ed.Buffer().IsModified() {
		return false, nil
	}
	if err := ed.Save(); err != nil {
		return false, &OperationError{Op: op, Target: path, Err: err}
	}
	app.log.Info().Str("path", path).Str("op", op).Msg("file updated")
	return true, nil
}

// RunScript runs the Lua file at path.
func (app *Application) RunScript(ctx context.Context, path string) error {
	if app.closed.Load() {
		return ErrClosed
	}
	app.mu.Lock()
	defer app.mu.Unlock()

	if err := app.script.DoFile(ctx, path); err != nil {
		return &OperationError{Op: "run", Target: path, Err: err}
	}
	return nil
}

// Watch fixes each of paths whenever it is written and reloads the user
// configuration when it changes. It blocks until ctx is cancelled.
func (app *Application) Watch(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return ErrNoFiles
	}

	w, err := fswatch.New(fswatch.WithEventFilter(func(ev fswatch.Event) bool {
		return !ev.Op.Has(fswatch.OpRemove)
	}))
	if err != nil {
		return &InitError{Component: "watcher", Err: err}
	}
	defer func() { _ = w.Close() }()

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return &OperationError{Op: "watch", Target: path, Err: err}
		}
		if err := w.Watch(abs); err != nil {
			return &OperationError{Op: "watch", Target: path, Err: err}
		}
		if _, err := app.FixFile(abs); err != nil {
			app.log.Warn().Err(err).Msg("initial fix failed")
		}
	}

	if app.config.UserPath() != "" {
		go func() {
			if err := app.config.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				app.log.Warn().Err(err).Msg("config watch stopped")
			}
		}()
	}

	app.log.Info().Strs("paths", paths).Msg("watching")
	fswatch.Run(ctx, w, func(ev fswatch.Event) {
		if _, err := app.FixFile(ev.Path); err != nil {
			app.log.Warn().Err(err).Msg("fix failed")
		}
	}, func(err error) {
		app.log.Warn().Err(err).Msg("file watcher")
	})
	return nil
}

// Shutdown closes every editor and releases all components. It is safe to
// call more than once.
func (app *Application) Shutdown() {
	if !app.closed.CompareAndSwap(false, true) {
		return
	}
	app.mu.Lock()
	defer app.mu.Unlock()

	app.script.Close()
	app.subs.Dispose()
	app.workspace.CloseAll()
	app.whitespace.Destroy()
}
