// Package layer provides configuration layer management.
//
// The layer package handles multiple configuration sources with priority-based
// lookup. Higher priority layers override values from lower priority layers,
// and a value scoped to a grammar overrides any unscoped value.
package layer

// ScopePrefix marks a top-level table holding values for one grammar scope,
// e.g. ".source.gfm".
const ScopePrefix = "."

// Layer represents a single configuration layer.
type Layer struct {
	// Name identifies the layer (e.g., "user", "default").
	Name string

	// Priority determines lookup order (higher overrides lower).
	Priority int

	// Source indicates where this layer was loaded from.
	Source Source

	// Path is the file path (if loaded from file).
	Path string

	// Data holds the configuration values as a nested map.
	Data map[string]any
}

// NewLayer creates a new configuration layer with the source's default priority.
func NewLayer(name string, source Source) *Layer {
	return NewLayerWithData(name, source, make(map[string]any))
}

// NewLayerWithData creates a new layer with initial data.
func NewLayerWithData(name string, source Source, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		Name:     name,
		Source:   source,
		Priority: source.Priority(),
		Data:     data,
	}
}

// Get returns the unscoped value at the dot-separated path.
func (l *Layer) Get(path string) (any, bool) {
	return GetByPath(l.Data, path)
}

// GetScoped returns the value at path from the table for scope.
func (l *Layer) GetScoped(scope, path string) (any, bool) {
	if scope == "" {
		return nil, false
	}
	table, ok := l.Data[ScopePrefix+scope].(map[string]any)
	if !ok {
		return nil, false
	}
	return GetByPath(table, path)
}

// Clone creates a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	return &Layer{
		Name:     l.Name,
		Priority: l.Priority,
		Source:   l.Source,
		Path:     l.Path,
		Data:     cloneMap(l.Data),
	}
}

// Source indicates where a configuration layer came from.
type Source uint8

const (
	// SourceBuiltin represents built-in default configuration.
	SourceBuiltin Source = iota
	// SourceUser represents the user's configuration file.
	SourceUser
	// SourceEnv represents environment variables.
	SourceEnv
	// SourceSession represents in-memory session overrides.
	SourceSession
)

// Priority returns the default priority for the source.
func (s Source) Priority() int {
	return int(s) * 100
}

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourceUser:
		return "user"
	case SourceEnv:
		return "environment"
	case SourceSession:
		return "session"
	default:
		return "unknown"
	}
}

// cloneMap creates a deep copy of a map.
func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	dst := make(map[string]any, len(src))
	for key, val := range src {
		dst[key] = cloneValue(val)
	}

	return dst
}

// cloneSlice creates a deep copy of a slice.
func cloneSlice(src []any) []any {
	if src == nil {
		return nil
	}

	dst := make([]any, len(src))
	for i, val := range src {
		dst[i] = cloneValue(val)
	}

	return dst
}
