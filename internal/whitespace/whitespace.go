package whitespace

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/dshills/whitespace/internal/config"
	"github.com/dshills/whitespace/internal/engine/buffer"
	"github.com/dshills/whitespace/internal/event"
	"github.com/dshills/whitespace/internal/rowtrack"
)

// Option configures a Whitespace component.
type Option func(*Whitespace)

// WithLogger sets the logger. The row registry logs through it too.
func WithLogger(log zerolog.Logger) Option {
	return func(w *Whitespace) {
		w.log = log
	}
}

// Whitespace keeps the editors it watches free of stray whitespace.
//
// For every watched editor it records blank rows the user leaves or is about
// to type into, keeps those rows numbered correctly as the buffer changes,
// and clears the indentation of rows that are still blank after each edit.
// On save it strips trailing whitespace and normalizes the final newline.
type Whitespace struct {
	cfg       Config
	workspace Workspace
	rows      *rowtrack.Registry
	log       zerolog.Logger

	mu      sync.Mutex
	watched map[string]*event.CompositeDisposable

	// ignore is non-zero while a save keeps trailing whitespace.
	ignore atomic.Int32
}

// New creates the component. ws may be nil, in which case no cursor row is
// ever treated as the current line.
func New(cfg Config, ws Workspace, opts ...Option) *Whitespace {
	w := &Whitespace{
		cfg:       cfg,
		workspace: ws,
		log:       zerolog.Nop(),
		watched:   make(map[string]*event.CompositeDisposable),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.rows = rowtrack.NewRegistry(rowtrack.WithLogger(w.log))
	return w
}

// Registry returns the registry holding the tracked rows of every editor.
func (w *Whitespace) Registry() *rowtrack.Registry {
	return w.rows
}

// TrackedRows returns the rows currently tracked for the editor with id.
func (w *Whitespace) TrackedRows(id string) []int {
	return w.rows.Rows(id)
}

// IsWatching reports whether HandleEvents has attached to the editor.
func (w *Whitespace) IsWatching(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.watched[id]
	return ok
}

// HandleEvents starts watching ed. Calling it again for the same editor is
// a no-op. Watching stops when the editor is destroyed.
func (w *Whitespace) HandleEvents(ed Editor) {
	id := ed.ID()

	w.mu.Lock()
	if _, ok := w.watched[id]; ok {
		w.mu.Unlock()
		return
	}
	w.watched[id] = nil // reserved until subscribed
	w.mu.Unlock()

	buf := ed.Buffer()
	subs := event.NewCompositeDisposable(
		buf.OnWillSave(func() { w.handleWillSave(ed) }),
		buf.OnDidChange(func(ev buffer.ChangeEvent) { w.reconcile(ed, ev) }),
		ed.OnWillInsertText(func() { w.recordCursorRows(ed) }),
		ed.OnDidChangeCursorPosition(func(mv CursorMove) { w.recordLeftRow(ed, mv) }),
		ed.OnDidDestroy(func() { w.unwatch(id) }),
	)

	w.mu.Lock()
	_, live := w.watched[id]
	if live {
		w.watched[id] = subs
	}
	w.mu.Unlock()
	if !live {
		subs.Dispose()
		return
	}

	w.log.Debug().Str("editor", id).Str("grammar", ed.Grammar()).Msg("watching editor")
}

// unwatch disposes the editor's subscriptions and forgets its rows.
func (w *Whitespace) unwatch(id string) {
	w.mu.Lock()
	subs, ok := w.watched[id]
	delete(w.watched, id)
	w.mu.Unlock()

	if ok && subs != nil {
		subs.Dispose()
	}
	w.rows.Remove(id)
	w.log.Debug().Str("editor", id).Msg("stopped watching editor")
}

// Destroy stops watching every editor.
func (w *Whitespace) Destroy() {
	w.mu.Lock()
	ids := make([]string, 0, len(w.watched))
	for id := range w.watched {
		ids = append(ids, id)
	}
	w.mu.Unlock()

	for _, id := range ids {
		w.unwatch(id)
	}
}

// recordCursorRows tracks every cursor row that is blank but not empty,
// before typed text reaches the buffer.
func (w *Whitespace) recordCursorRows(ed Editor) {
	buf := ed.Buffer()
	for _, row := range ed.CursorRows() {
		if isStrayRow(buf, row) {
			w.rows.Add(ed.ID(), row)
		}
	}
}

// recordLeftRow tracks the row a cursor navigated away from, when that row
// is blank but not empty. Moves caused by edits and moves within one row
// are ignored.
func (w *Whitespace) recordLeftRow(ed Editor, mv CursorMove) {
	if mv.TextChanged || mv.OldRow == mv.NewRow {
		return
	}
	if isStrayRow(ed.Buffer(), mv.OldRow) {
		w.rows.Add(ed.ID(), mv.OldRow)
	}
}

// reconcile renumbers the editor's rows through a batch of changes, highest
// row first, then cleans the rows that are still blank. Changes made by a
// running clean pass are ignored.
func (w *Whitespace) reconcile(ed Editor, ev buffer.ChangeEvent) {
	if w.rows.Draining() {
		return
	}
	id := ed.ID()
	for _, adj := range rowtrack.Classify(ev.Changes) {
		w.rows.Renumber(id, adj.Row, adj.Delta)
	}
	w.rows.DrainAndClean(id, rowCleaner{buf: ed.Buffer(), ed: ed})
}

// handleWillSave normalizes the buffer before it is written.
func (w *Whitespace) handleWillSave(ed Editor) {
	if err := w.Normalize(ed); err != nil {
		w.log.Error().Err(err).Str("editor", ed.ID()).Msg("normalize on save")
	}
}

// Normalize applies the save-time rules to ed as one undoable change:
// trailing whitespace is stripped when removeTrailingWhitespace is on and
// no save-with-trailing-whitespace is running, then the final newline is
// fixed when ensureSingleTrailingNewline is on.
func (w *Whitespace) Normalize(ed Editor) error {
	scope := ed.Grammar()
	buf := ed.Buffer()

	return buf.Transact(func() error {
		if w.cfg.Bool(config.KeyRemoveTrailingWhitespace, scope) && w.ignore.Load() == 0 {
			if err := w.RemoveTrailingWhitespace(ed); err != nil {
				return err
			}
		}
		if w.cfg.Bool(config.KeyEnsureSingleTrailingNewline, scope) {
			return w.EnsureSingleTrailingNewline(ed)
		}
		return nil
	})
}

// SaveWithTrailingWhitespace saves ed without stripping trailing
// whitespace. The final newline is still normalized when enabled.
func (w *Whitespace) SaveWithTrailingWhitespace(ed Editor) error {
	w.ignore.Add(1)
	defer w.ignore.Add(-1)
	return ed.Save()
}

// SaveWithoutTrailingWhitespace strips trailing whitespace even when
// removeTrailingWhitespace is off, then saves ed.
func (w *Whitespace) SaveWithoutTrailingWhitespace(ed Editor) error {
	if err := w.RemoveTrailingWhitespace(ed); err != nil {
		return err
	}
	return ed.Save()
}

// isStrayRow reports whether row holds whitespace and nothing else.
func isStrayRow(buf Buffer, row int) bool {
	return buf.LineLengthForRow(row) > 0 && buf.IsRowBlank(row)
}

// rowCleaner lets the registry query the buffer and re-indent through the
// editor.
type rowCleaner struct {
	buf Buffer
	ed  Editor
}

func (c rowCleaner) LineLengthForRow(row int) int { return c.buf.LineLengthForRow(row) }
func (c rowCleaner) IsRowBlank(row int) bool { return c.buf.IsRowBlank(row) }

func (c rowCleaner) SetIndentationForBufferRow(row, level int) error {
	return c.ed.SetIndentationForBufferRow(row, level)
}
