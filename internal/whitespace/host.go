package whitespace

import (
	"regexp"

	"github.com/dshills/whitespace/internal/engine/buffer"
	"github.com/dshills/whitespace/internal/event"
)

// Buffer is the text storage an editor displays.
type Buffer interface {
	LastRow() int
	LineForRow(row int) string
	LineLengthForRow(row int) int
	IsRowBlank(row int) bool

	Delete(r buffer.Range) error
	DeleteRow(row int) error
	Append(text string) (buffer.Range, error)
	Transact(fn func() error) error
	Scan(re *regexp.Regexp, fn func(m *buffer.ScanMatch)) error
	FindAll(re *regexp.Regexp) []buffer.Range

	OnWillSave(fn func()) event.Subscription
	OnDidChange(fn func(buffer.ChangeEvent)) event.Subscription
}

// CursorMove describes the movement of one cursor between rows.
type CursorMove struct {
	OldRow int
	NewRow int

	// TextChanged is set when the move was caused by a buffer edit.
	TextChanged bool
}

// Editor is a view over a Buffer. Two editors showing the same document
// return the same Buffer value and distinct IDs.
type Editor interface {
	ID() string
	Buffer() Buffer
	Grammar() string

	TabLength() int
	SetTabLength(n int)
	SoftTabs() bool
	SetSoftTabs(soft bool)

	CursorRows() []int
	SelectedBufferRanges() []buffer.Range
	SetSelectedBufferRanges(ranges []buffer.Range)
	SetIndentationForBufferRow(row, level int) error
	Save() error

	OnDidChangeCursorPosition(fn func(CursorMove)) event.Subscription
	OnWillInsertText(fn func()) event.Subscription
	OnDidDestroy(fn func()) event.Subscription
}

// Workspace reports the editor that has focus. ActiveEditor returns nil
// when no editor is open.
type Workspace interface {
	ActiveEditor() Editor
}

// Config answers scoped setting lookups. Scope is a grammar scope name
// such as "source.gfm"; unknown keys yield zero values.
type Config interface {
	Bool(key, scope string) bool
	Int(key, scope string) int
	StringSlice(key, scope string) []string
}
