package engine

// Default configuration values.
const (
	DefaultTabLength = 2
	DefaultSoftTabs  = true
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithID sets the editor identity. Without it a random UUID is used.
func WithID(id string) Option {
	return func(e *Editor) {
		if id != "" {
			e.id = id
		}
	}
}

// WithTabLength sets the tab length for the editor.
func WithTabLength(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.tabLength = n
		}
	}
}

// WithSoftTabs selects space (true) or tab (false) indentation.
func WithSoftTabs(soft bool) Option {
	return func(e *Editor) {
		e.softTabs = soft
	}
}

// WithGrammar overrides the grammar scope detected from the buffer path.
func WithGrammar(scope string) Option {
	return func(e *Editor) {
		e.grammar = scope
	}
}

// WithAutoIndent controls whether a typed newline copies the indentation
// of the row it splits.
func WithAutoIndent(enabled bool) Option {
	return func(e *Editor) {
		e.autoIndent = enabled
	}
}
