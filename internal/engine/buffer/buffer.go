package buffer

import (
	"errors"
	"strings"
	"sync"

	"github.com/dshills/whitespace/internal/event"
)

// Errors returned by buffer operations.
var (
	ErrDestroyed    = errors.New("buffer destroyed")
	ErrRangeInvalid = errors.New("invalid range")
	ErrNoPath       = errors.New("buffer has no path")
)

// Buffer holds the text of one document.
// All methods are thread-safe.
type Buffer struct {
	mu           sync.RWMutex
	lines        []string
	eols         []string // eols[i] terminates lines[i]; the last is always ""
	lineEnding   LineEnding
	path         string
	version      uint64
	savedVersion uint64
	destroyed    bool

	// Transaction state
	txDepth int
	pending []Change

	history history

	didChange  event.Emitter[ChangeEvent]
	willSave   event.Emitter[*Buffer]
	didSave    event.Emitter[string]
	didDestroy event.Emitter[struct{}]
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		lines:      []string{""},
		eols:       []string{""},
		lineEnding: LineEndingLF,
		history:    history{maxEntries: defaultHistoryLimit},
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content. Every row
// keeps the terminator it has in s.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.lineEnding = DetectLineEnding(s)
	lines, breaks := splitLines(s)
	b.lines, b.eols = lines, append(breaks, "")
	return b
}

// Read Operations

// Text returns the full buffer content, each row followed by its own
// terminator.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.textInRangeLocked(Range{End: b.endPointLocked()})
}

// Lines returns a copy of every row.
func (b *Buffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// LineCount returns the number of rows. It is never less than one.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// LastRow returns the index of the last row.
func (b *Buffer) LastRow() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines) - 1
}

// LineForRow returns the text of row without its terminator.
// Returns "" for rows outside the buffer.
func (b *Buffer) LineForRow(row int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row]
}

// LineLengthForRow returns the byte length of row.
// Returns 0 for rows outside the buffer.
func (b *Buffer) LineLengthForRow(row int) int {
	return len(b.LineForRow(row))
}

// IsRowBlank returns true if row exists and contains only whitespace.
// An empty row is blank.
func (b *Buffer) IsRowBlank(row int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if row < 0 || row >= len(b.lines) {
		return false
	}
	return isBlankText(b.lines[row])
}

// ClipPoint returns p constrained to a valid buffer position.
func (b *Buffer) ClipPoint(p Point) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.clipPointLocked(p)
}

// EndPoint returns the position after the last character.
func (b *Buffer) EndPoint() Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.endPointLocked()
}

// Buffer State

// Path returns the file path the buffer saves to.
func (b *Buffer) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// LineEnding returns the most common terminator of the loaded text. Line
// breaks inserted into a single-row buffer use it.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// Version returns a counter incremented by every edit.
func (b *Buffer) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// IsModified returns true if the buffer changed since it was loaded or saved.
func (b *Buffer) IsModified() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version != b.savedVersion
}

// IsDestroyed returns true once Destroy has been called.
func (b *Buffer) IsDestroyed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.destroyed
}

// Events

// OnDidChange registers fn to receive every batch of edits.
func (b *Buffer) OnDidChange(fn func(ChangeEvent)) event.Subscription {
	return b.didChange.On(fn)
}

// OnWillSave registers fn to run before the buffer is written.
// Edits made by fn are included in the saved text.
func (b *Buffer) OnWillSave(fn func()) event.Subscription {
	return b.willSave.On(func(*Buffer) { fn() })
}

// OnDidSave registers fn to run after the buffer is written. It receives the path.
func (b *Buffer) OnDidSave(fn func(path string)) event.Subscription {
	return b.didSave.On(fn)
}

// OnDidDestroy registers fn to run once when the buffer is destroyed.
func (b *Buffer) OnDidDestroy(fn func()) event.Subscription {
	return b.didDestroy.On(func(struct{}) { fn() })
}

// Destroy releases the buffer. Subsequent edits fail with ErrDestroyed.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		return
	}
	b.destroyed = true
	b.mu.Unlock()

	b.didDestroy.Emit(struct{}{})

	b.didChange.Clear()
	b.willSave.Clear()
	b.didSave.Clear()
	b.didDestroy.Clear()
}

// Internal helpers (must hold lock)

func (b *Buffer) endPointLocked() Point {
	last := len(b.lines) - 1
	return Point{Row: last, Column: len(b.lines[last])}
}

// breakForRowLocked returns the terminator given to line breaks inserted
// on row: the row's own, else the previous row's, else the buffer's.
func (b *Buffer) breakForRowLocked(row int) string {
	if eol := b.eols[row]; eol != "" {
		return eol
	}
	if row > 0 {
		return b.eols[row-1]
	}
	return b.lineEnding.Sequence()
}

func (b *Buffer) clipPointLocked(p Point) Point {
	if p.Row < 0 {
		return Point{}
	}
	last := len(b.lines) - 1
	if p.Row > last {
		return Point{Row: last, Column: len(b.lines[last])}
	}
	if p.Column < 0 {
		p.Column = 0
	}
	if n := len(b.lines[p.Row]); p.Column > n {
		p.Column = n
	}
	return p
}

func (b *Buffer) clipRangeLocked(r Range) Range {
	r = r.Normalize()
	return Range{Start: b.clipPointLocked(r.Start), End: b.clipPointLocked(r.End)}
}

func (b *Buffer) textInRangeLocked(r Range) string {
	if r.Start.Row == r.End.Row {
		return b.lines[r.Start.Row][r.Start.Column:r.End.Column]
	}
	var sb strings.Builder
	sb.WriteString(b.lines[r.Start.Row][r.Start.Column:])
	for row := r.Start.Row + 1; row < r.End.Row; row++ {
		sb.WriteString(b.eols[row-1])
		sb.WriteString(b.lines[row])
	}
	sb.WriteString(b.eols[r.End.Row-1])
	sb.WriteString(b.lines[r.End.Row][:r.End.Column])
	return sb.String()
}

// isBlankText reports whether s contains only whitespace.
func isBlankText(s string) bool {
	return strings.TrimLeft(s, " \t\f\v") == ""
}
