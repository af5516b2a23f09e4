package config

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/whitespace/internal/config/layer"
	"github.com/dshills/whitespace/internal/config/loader"
	"github.com/dshills/whitespace/internal/config/notify"
	"github.com/dshills/whitespace/internal/event"
	"github.com/dshills/whitespace/internal/fswatch"
)

// Layer names.
const (
	LayerDefault = "default"
	LayerUser    = "user"
	LayerEnv     = "environment"
	LayerSession = "session"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "WHITESPACE_"

// Config provides unified access to settings.
// All methods are safe for concurrent use.
type Config struct {
	mu       sync.RWMutex
	userPath string
	useEnv   bool
	fs       loader.FileSystem
	debounce time.Duration

	layers   *layer.Manager
	notifier *notify.Notifier
	log      zerolog.Logger
}

// Option configures a Config.
type Option func(*Config)

// WithUserFile sets the user configuration file (TOML or YAML).
func WithUserFile(path string) Option {
	return func(c *Config) {
		c.userPath = path
	}
}

// WithEnv enables reading WHITESPACE_* environment variables in Load.
func WithEnv(enable bool) Option {
	return func(c *Config) {
		c.useEnv = enable
	}
}

// WithFileSystem sets the file system used to read the user file.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithWatchDebounce sets the delay used to coalesce user file changes.
func WithWatchDebounce(d time.Duration) Option {
	return func(c *Config) {
		c.debounce = d
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Config) {
		c.log = log
	}
}

// New creates a configuration holding the builtin defaults. Call Load to
// read the user file and environment.
func New(opts ...Option) *Config {
	c := &Config{
		fs:       loader.DefaultFS(),
		debounce: 100 * time.Millisecond,
		layers:   layer.NewManager(),
		notifier: notify.New(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.layers.AddLayer(layer.NewLayerWithData(LayerDefault, layer.SourceBuiltin, Defaults()))
	c.layers.AddLayer(layer.NewLayer(LayerUser, layer.SourceUser))
	c.layers.AddLayer(layer.NewLayer(LayerEnv, layer.SourceEnv))
	c.layers.AddLayer(layer.NewLayer(LayerSession, layer.SourceSession))
	return c
}

// Load reads the user file, if any, and the environment.
func (c *Config) Load() error {
	if err := c.loadUser(); err != nil {
		return err
	}
	if c.useEnv {
		data, err := loader.NewEnvLoader(EnvPrefix).Load()
		if err != nil {
			return fmt.Errorf("loading environment: %w", err)
		}
		if err := c.layers.UpdateLayer(LayerEnv, data); err != nil {
			return err
		}
	}
	return nil
}

// Reload re-reads the user file and notifies observers.
func (c *Config) Reload() error {
	if err := c.loadUser(); err != nil {
		return err
	}
	c.log.Debug().Str("path", c.UserPath()).Msg("config reloaded")
	c.notifier.NotifyReload(LayerUser)
	return nil
}

func (c *Config) loadUser() error {
	path := c.UserPath()
	if path == "" {
		return nil
	}
	data, err := loader.ForPath(c.fs, path).Load()
	if err != nil {
		return err
	}
	return c.layers.UpdateLayer(LayerUser, data)
}

// UserPath returns the user configuration file path.
func (c *Config) UserPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userPath
}

// Get returns the effective value of path for scope. An empty scope
// matches only unscoped values.
func (c *Config) Get(path, scope string) (any, bool) {
	v, _, ok := c.layers.Get(path, scope)
	return v, ok
}

// GetBool returns a boolean setting.
func (c *Config) GetBool(path, scope string) (bool, error) {
	v, ok := c.Get(path, scope)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetInt returns an integer setting.
func (c *Config) GetInt(path, scope string) (int, error) {
	v, ok := c.Get(path, scope)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case uint64:
		return int(val), nil
	case float64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetString returns a string setting.
func (c *Config) GetString(path, scope string) (string, error) {
	v, ok := c.Get(path, scope)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetStringSlice returns a string list setting.
func (c *Config) GetStringSlice(path, scope string) ([]string, error) {
	v, ok := c.Get(path, scope)
	if !ok {
		return nil, ErrSettingNotFound
	}
	switch val := v.(type) {
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out, nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Expected: "[]string", Actual: "[]" + typeName(item)}
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
	}
}

// Bool returns a boolean setting, falling back to the builtin default when
// the effective value is missing or malformed.
func (c *Config) Bool(path, scope string) bool {
	v, err := c.GetBool(path, scope)
	if err != nil {
		c.warn(path, err)
		v, _ = c.defaultValue(path).(bool)
	}
	return v
}

// Int returns an integer setting, falling back to the builtin default.
func (c *Config) Int(path, scope string) int {
	v, err := c.GetInt(path, scope)
	if err != nil {
		c.warn(path, err)
		v, _ = c.defaultValue(path).(int)
	}
	return v
}

// String returns a string setting, falling back to the builtin default.
func (c *Config) String(path, scope string) string {
	v, err := c.GetString(path, scope)
	if err != nil {
		c.warn(path, err)
		v, _ = c.defaultValue(path).(string)
	}
	return v
}

// StringSlice returns a string list setting, falling back to the builtin
// default.
func (c *Config) StringSlice(path, scope string) []string {
	v, err := c.GetStringSlice(path, scope)
	if err != nil {
		c.warn(path, err)
		v, _ = toStrings(c.defaultValue(path))
	}
	return v
}

// Set sets an unscoped value in the session layer and notifies observers.
func (c *Config) Set(path string, value any) {
	c.SetScoped("", path, value)
}

// SetScoped sets a value for scope in the session layer and notifies
// observers. An empty scope sets an unscoped value.
func (c *Config) SetScoped(scope, path string, value any) {
	old, _ := c.Get(path, scope)

	var err error
	if scope == "" {
		err = c.layers.Set(LayerSession, path, value)
	} else {
		err = c.layers.SetScoped(LayerSession, scope, path, value)
	}
	if err != nil {
		c.log.Error().Err(err).Str("setting", path).Msg("set failed")
		return
	}

	c.notifier.NotifySet(path, scope, old, value, LayerSession)
}

// OnDidChange registers fn for every change, including reloads.
func (c *Config) OnDidChange(fn func(notify.Change)) event.Subscription {
	return c.notifier.Subscribe(fn)
}

// Observe registers fn for changes to path and its children.
func (c *Config) Observe(path string, fn func(notify.Change)) event.Subscription {
	return c.notifier.SubscribePath(path, fn)
}

// Watch reloads the user file whenever it changes, until ctx is cancelled.
// It blocks. Reload failures are logged and the previous values kept.
func (c *Config) Watch(ctx context.Context) error {
	path := c.UserPath()
	if path == "" {
		return ErrNoUserFile
	}

	w, err := fswatch.New(fswatch.WithDebounce(c.debounce))
	if err != nil {
		return fmt.Errorf("watching config: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Watch(path); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	c.log.Debug().Str("path", path).Msg("watching config")
	fswatch.Run(ctx, w, func(ev fswatch.Event) {
		if ev.Op.Has(fswatch.OpRemove) {
			return
		}
		if err := c.Reload(); err != nil {
			c.log.Warn().Err(err).Str("path", path).Msg("config reload failed")
		}
	}, func(err error) {
		c.log.Warn().Err(err).Msg("config watcher")
	})
	return nil
}

func (c *Config) defaultValue(path string) any {
	v, _ := layer.GetByPath(Defaults(), path)
	return v
}

func (c *Config) warn(path string, err error) {
	if errors.Is(err, ErrSettingNotFound) {
		return
	}
	c.log.Warn().Err(err).Str("setting", path).Msg("invalid setting, using default")
}

func toStrings(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}
