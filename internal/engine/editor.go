package engine

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/whitespace/internal/engine/buffer"
	"github.com/dshills/whitespace/internal/engine/cursor"
	"github.com/dshills/whitespace/internal/event"
)

// Re-export commonly used types for convenience.
type (
	// Point represents a row/column position.
	Point = buffer.Point

	// Range represents a span of the buffer.
	Range = buffer.Range

	// Selection represents a cursor selection.
	Selection = cursor.Selection
)

// CursorEvent describes the movement of one cursor.
type CursorEvent struct {
	Old Point
	New Point

	// TextChanged is set when the movement was caused by a buffer edit.
	TextChanged bool
}

// InsertEvent describes text typed into the editor.
type InsertEvent struct {
	Text string
}

// Editor is a view over a buffer with its own cursors and indentation
// settings.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Editor struct {
	mu sync.RWMutex

	id      string
	buf     *buffer.Buffer
	cursors *cursor.CursorSet

	// Configuration
	tabLength  int
	softTabs   bool
	grammar    string
	autoIndent bool

	destroyed bool
	bufSub    event.Subscription

	didChangeCursor event.Emitter[CursorEvent]
	willInsert      event.Emitter[InsertEvent]
	didDestroy      event.Emitter[struct{}]
}

// New creates an editor over buf with a cursor at the start of the buffer.
func New(buf *buffer.Buffer, opts ...Option) *Editor {
	e := &Editor{
		buf:        buf,
		cursors:    cursor.NewCursorSetAt(Point{}),
		tabLength:  DefaultTabLength,
		softTabs:   DefaultSoftTabs,
		autoIndent: true,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.id == "" {
		e.id = uuid.NewString()
	}
	if e.grammar == "" {
		e.grammar = GrammarForPath(buf.Path())
	}

	e.bufSub = buf.OnDidChange(e.handleBufferChange)
	return e
}

// ============================================================================
// Identity and settings
// ============================================================================

// ID returns the editor identity. It is stable for the editor's lifetime
// and distinct for every editor, including editors sharing a buffer.
func (e *Editor) ID() string {
	return e.id
}

// Buffer returns the buffer the editor displays.
func (e *Editor) Buffer() *buffer.Buffer {
	return e.buf
}

// TabLength returns the display width of a tab.
func (e *Editor) TabLength() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tabLength
}

// SetTabLength sets the display width of a tab. Non-positive values are
// ignored.
func (e *Editor) SetTabLength(n int) {
	if n <= 0 {
		return
	}
	e.mu.Lock()
	e.tabLength = n
	e.mu.Unlock()
}

// SoftTabs reports whether indentation uses spaces.
func (e *Editor) SoftTabs() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.softTabs
}

// SetSoftTabs selects space (true) or tab (false) indentation.
func (e *Editor) SetSoftTabs(soft bool) {
	e.mu.Lock()
	e.softTabs = soft
	e.mu.Unlock()
}

// Grammar returns the root grammar scope name, such as "source.gfm".
func (e *Editor) Grammar() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grammar
}

// SetGrammar sets the root grammar scope name.
func (e *Editor) SetGrammar(scope string) {
	e.mu.Lock()
	e.grammar = scope
	e.mu.Unlock()
}

// ============================================================================
// Cursors and selections
// ============================================================================

// CursorBufferPositions returns the head of every cursor, in buffer order.
func (e *Editor) CursorBufferPositions() []Point {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.Heads()
}

// CursorRows returns the distinct rows holding a cursor, ascending.
func (e *Editor) CursorRows() []int {
	heads := e.CursorBufferPositions()
	rows := make([]int, 0, len(heads))
	for _, p := range heads {
		if len(rows) == 0 || rows[len(rows)-1] != p.Row {
			rows = append(rows, p.Row)
		}
	}
	return rows
}

// SelectedBufferRanges returns the range of every selection.
func (e *Editor) SelectedBufferRanges() []Range {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.Ranges()
}

// SetSelectedBufferRanges replaces every selection, one per range.
func (e *Editor) SetSelectedBufferRanges(ranges []Range) {
	sels := make([]Selection, len(ranges))
	for i, r := range ranges {
		r = r.Normalize()
		sels[i] = cursor.NewRangeSelection(Range{
			Start: e.buf.ClipPoint(r.Start),
			End:   e.buf.ClipPoint(r.End),
		})
	}
	e.moveCursors(func(cs *cursor.CursorSet) {
		cs.SetAll(sels)
	})
}

// SetCursorBufferPosition collapses the cursors to a single cursor at p.
func (e *Editor) SetCursorBufferPosition(p Point) {
	p = e.buf.ClipPoint(p)
	e.moveCursors(func(cs *cursor.CursorSet) {
		cs.Set(cursor.NewCursorSelection(p))
	})
}

// AddCursorAt adds a cursor at p, merging it with any cursor already there.
func (e *Editor) AddCursorAt(p Point) {
	p = e.buf.ClipPoint(p)
	e.moveCursors(func(cs *cursor.CursorSet) {
		cs.Add(cursor.NewCursorSelection(p))
	})
}

// MoveUp moves every cursor up n rows, collapsing selections.
func (e *Editor) MoveUp(n int) {
	e.moveVertically(-n)
}

// MoveDown moves every cursor down n rows, collapsing selections.
func (e *Editor) MoveDown(n int) {
	e.moveVertically(n)
}

func (e *Editor) moveVertically(delta int) {
	last := e.buf.LastRow()
	e.moveCursors(func(cs *cursor.CursorSet) {
		cs.MapInPlace(func(sel Selection) Selection {
			row := min(max(sel.Head.Row+delta, 0), last)
			col := min(sel.Head.Column, e.buf.LineLengthForRow(row))
			return cursor.NewCursorSelection(Point{Row: row, Column: col})
		})
	})
}

// moveCursors applies f to the cursor set and reports every head that moved.
func (e *Editor) moveCursors(f func(cs *cursor.CursorSet)) {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	before := e.cursors.Heads()
	f(e.cursors)
	after := e.cursors.Heads()
	e.mu.Unlock()

	e.emitMoves(before, after, false)
}

// emitMoves pairs cursors by index; cursors that were merged away or added
// produce no event.
func (e *Editor) emitMoves(before, after []Point, textChanged bool) {
	for i := 0; i < len(before) && i < len(after); i++ {
		if before[i] == after[i] {
			continue
		}
		e.didChangeCursor.Emit(CursorEvent{Old: before[i], New: after[i], TextChanged: textChanged})
	}
}

// handleBufferChange shifts the cursors through a batch of buffer edits.
func (e *Editor) handleBufferChange(ev buffer.ChangeEvent) {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	before := e.cursors.Heads()
	cursor.TransformCursorSet(e.cursors, ev.Changes...)
	after := e.cursors.Heads()
	e.mu.Unlock()

	e.emitMoves(before, after, true)
}

// ============================================================================
// Editing
// ============================================================================

// InsertText replaces every selection with text, as one undoable change.
// Will-insert callbacks run before the buffer is touched.
func (e *Editor) InsertText(text string) error {
	if e.IsDestroyed() {
		return ErrDestroyed
	}

	ev := InsertEvent{Text: text}
	e.willInsert.Emit(ev)

	ranges := e.SelectedBufferRanges()
	autoIndent := e.autoIndentEnabled()

	err := e.buf.Transact(func() error {
		for i := len(ranges) - 1; i >= 0; i-- {
			r := ranges[i]
			insert := text
			if autoIndent && text == "\n" {
				insert += leadingWhitespace(e.buf.LineForRow(r.Start.Row), r.Start.Column)
			}
			if _, err := e.buf.SetTextInRange(r, insert); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert text: %w", err)
	}
	return nil
}

// SetIndentationForBufferRow replaces the leading whitespace of row with
// level indentation units, using tabs or spaces per SoftTabs.
func (e *Editor) SetIndentationForBufferRow(row, level int) error {
	if e.IsDestroyed() {
		return ErrDestroyed
	}
	if row < 0 || row > e.buf.LastRow() {
		return fmt.Errorf("set indentation for row %d: %w", row, ErrRowOutOfRange)
	}

	e.mu.RLock()
	unit := "\t"
	if e.softTabs {
		unit = strings.Repeat(" ", e.tabLength)
	}
	e.mu.RUnlock()

	line := e.buf.LineForRow(row)
	indent := len(leadingWhitespace(line, len(line)))
	want := strings.Repeat(unit, max(level, 0))
	if line[:indent] == want {
		return nil
	}

	_, err := e.buf.SetTextInRange(buffer.RowRange(row, 0, indent), want)
	return err
}

// Save writes the buffer to its path.
func (e *Editor) Save() error {
	if e.IsDestroyed() {
		return ErrDestroyed
	}
	return e.buf.Save()
}

func (e *Editor) autoIndentEnabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.autoIndent
}

// leadingWhitespace returns the run of spaces and tabs starting line,
// stopping at column limit (a negative limit means no limit).
func leadingWhitespace(line string, limit int) string {
	if limit < 0 || limit > len(line) {
		limit = len(line)
	}
	i := 0
	for i < limit && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}

// ============================================================================
// Events and lifecycle
// ============================================================================

// OnDidChangeCursorPosition registers fn for cursor movement.
func (e *Editor) OnDidChangeCursorPosition(fn func(CursorEvent)) event.Subscription {
	return e.didChangeCursor.On(fn)
}

// OnWillInsertText registers fn to run before typed text reaches the buffer.
func (e *Editor) OnWillInsertText(fn func(InsertEvent)) event.Subscription {
	return e.willInsert.On(fn)
}

// OnDidDestroy registers fn to run when the editor is destroyed.
func (e *Editor) OnDidDestroy(fn func()) event.Subscription {
	return e.didDestroy.On(func(struct{}) { fn() })
}

// IsDestroyed reports whether Destroy has been called.
func (e *Editor) IsDestroyed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.destroyed
}

// Destroy detaches the editor from its buffer and runs the destroy
// callbacks. The buffer itself is left alive for other editors.
func (e *Editor) Destroy() {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	e.destroyed = true
	e.mu.Unlock()

	e.bufSub.Dispose()
	e.didDestroy.Emit(struct{}{})

	e.didChangeCursor.Clear()
	e.willInsert.Clear()
	e.didDestroy.Clear()
}
