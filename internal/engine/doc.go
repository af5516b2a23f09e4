// Package engine provides the editor view used by the whitespace tools.
//
// An Editor is a view over a buffer.Buffer: it owns a set of cursors and
// selections, indentation settings (soft tabs and tab length) and the
// grammar scope of the document. Several editors may share one buffer, as
// split panes do; each has its own identity.
//
// # Architecture
//
// The engine is built on two sub-packages:
//
//   - buffer: row-addressed text with transactions, undo/redo and events
//   - cursor: multi-cursor and selection management
//
// # Events
//
// Editors report cursor movement, imminent and completed text insertion
// and destruction through event.Subscription handles:
//
//	sub := ed.OnDidChangeCursorPosition(func(ev engine.CursorEvent) {
//	    if ev.TextChanged {
//	        return
//	    }
//	    fmt.Println(ev.Old.Row, "->", ev.New.Row)
//	})
//	defer sub.Dispose()
//
// Cursor events caused by buffer edits carry TextChanged set to true.
// The editor subscribes to its buffer on creation, so its cursors are
// already up to date when later buffer subscribers run.
//
// # Thread Safety
//
// Editor methods may be called from multiple goroutines. Callbacks run on
// the goroutine that triggered them, with no editor lock held.
package engine
