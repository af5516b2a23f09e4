// Package host provides adapter implementations that bridge the editor
// engine and workspace with the interfaces the whitespace component
// consumes.
package host

import (
	"github.com/dshills/whitespace/internal/engine"
	"github.com/dshills/whitespace/internal/event"
	"github.com/dshills/whitespace/internal/whitespace"
	"github.com/dshills/whitespace/internal/workspace"
)

// Compile-time interface checks.
var (
	_ whitespace.Editor    = Editor{}
	_ whitespace.Workspace = (*Workspace)(nil)
)

// Editor adapts engine.Editor to whitespace.Editor.
type Editor struct {
	*engine.Editor
}

// WrapEditor returns ed as a whitespace.Editor, or nil when ed is nil.
func WrapEditor(ed *engine.Editor) whitespace.Editor {
	if ed == nil {
		return nil
	}
	return Editor{ed}
}

// Buffer returns the editor's buffer.
func (e Editor) Buffer() whitespace.Buffer {
	return e.Editor.Buffer()
}

// OnDidChangeCursorPosition reports cursor moves by row.
func (e Editor) OnDidChangeCursorPosition(fn func(whitespace.CursorMove)) event.Subscription {
	return e.Editor.OnDidChangeCursorPosition(func(ev engine.CursorEvent) {
		fn(whitespace.CursorMove{
			OldRow:      ev.Old.Row,
			NewRow:      ev.New.Row,
			TextChanged: ev.TextChanged,
		})
	})
}

// OnWillInsertText fires before typed text reaches the buffer.
func (e Editor) OnWillInsertText(fn func()) event.Subscription {
	return e.Editor.OnWillInsertText(func(engine.InsertEvent) { fn() })
}

// Workspace adapts workspace.Workspace to whitespace.Workspace.
type Workspace struct {
	ws *workspace.Workspace
}

// NewWorkspace creates a new workspace adapter.
func NewWorkspace(ws *workspace.Workspace) *Workspace {
	return &Workspace{ws: ws}
}

// ActiveEditor returns the focused editor, or nil.
func (w *Workspace) ActiveEditor() whitespace.Editor {
	return WrapEditor(w.ws.ActiveEditor())
}
