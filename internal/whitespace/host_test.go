package whitespace

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/whitespace/internal/config"
	"github.com/dshills/whitespace/internal/engine"
	"github.com/dshills/whitespace/internal/engine/buffer"
	"github.com/dshills/whitespace/internal/event"
)

// hostEditor exposes an engine editor through the Editor interface.
type hostEditor struct {
	*engine.Editor
}

func (e hostEditor) Buffer() Buffer {
	return e.Editor.Buffer()
}

func (e hostEditor) OnDidChangeCursorPosition(fn func(CursorMove)) event.Subscription {
	return e.Editor.OnDidChangeCursorPosition(func(ev engine.CursorEvent) {
		fn(CursorMove{OldRow: ev.Old.Row, NewRow: ev.New.Row, TextChanged: ev.TextChanged})
	})
}

func (e hostEditor) OnWillInsertText(fn func()) event.Subscription {
	return e.Editor.OnWillInsertText(func(engine.InsertEvent) { fn() })
}

type hostWorkspace struct {
	active Editor
}

func (w *hostWorkspace) ActiveEditor() Editor {
	return w.active
}

type fixture struct {
	cfg       *config.Config
	ws        *Whitespace
	workspace *hostWorkspace
	ed        *engine.Editor
	host      hostEditor
}

// newFixture opens text in a watched, active editor.
func newFixture(t *testing.T, text string, opts ...engine.Option) *fixture {
	t.Helper()
	return newFixtureWithBuffer(t, buffer.NewBufferFromString(text), opts...)
}

func newFixtureWithBuffer(t *testing.T, buf *buffer.Buffer, opts ...engine.Option) *fixture {
	t.Helper()
	cfg := config.New()
	workspace := &hostWorkspace{}
	ws := New(cfg, workspace)

	ed := engine.New(buf, opts...)
	host := hostEditor{ed}
	workspace.active = host
	ws.HandleEvents(host)

	t.Cleanup(func() {
		ed.Destroy()
		ws.Destroy()
	})
	return &fixture{cfg: cfg, ws: ws, workspace: workspace, ed: ed, host: host}
}

func (f *fixture) lines() []string {
	return f.ed.Buffer().Lines()
}

func (f *fixture) tracked() []int {
	return f.ws.TrackedRows(f.ed.ID())
}

func (f *fixture) insertAt(t *testing.T, p buffer.Point, text string) {
	t.Helper()
	_, err := f.ed.Buffer().Insert(p, text)
	require.NoError(t, err)
}
