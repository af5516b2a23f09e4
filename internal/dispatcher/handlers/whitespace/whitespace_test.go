package whitespace_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/whitespace/internal/config"
	"github.com/dshills/whitespace/internal/dispatcher"
	"github.com/dshills/whitespace/internal/dispatcher/handlers/whitespace"
	"github.com/dshills/whitespace/internal/engine"
	"github.com/dshills/whitespace/internal/engine/buffer"
	"github.com/dshills/whitespace/internal/host"
	ws "github.com/dshills/whitespace/internal/whitespace"
	"github.com/dshills/whitespace/internal/workspace"
)

type fixture struct {
	cfg       *config.Config
	workspace *workspace.Workspace
	d         *dispatcher.Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.New()
	wsp := workspace.New()
	adapter := host.NewWorkspace(wsp)
	w := ws.New(cfg, adapter)
	wsp.ObserveTextEditors(func(ed *engine.Editor) {
		w.HandleEvents(host.WrapEditor(ed))
	})

	d := dispatcher.New()
	whitespace.Register(d, w, adapter)

	t.Cleanup(func() {
		wsp.CloseAll()
		w.Destroy()
	})
	return &fixture{cfg: cfg, workspace: wsp, d: d}
}

func (f *fixture) run(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, f.d.Dispatch(context.Background(), name))
}

func TestRegisterInstallsEveryCommand(t *testing.T) {
	f := newFixture(t)
	assert.ElementsMatch(t, whitespace.Commands, f.d.Commands())
}

func TestCommandsWithoutActiveEditor(t *testing.T) {
	f := newFixture(t)
	for _, name := range whitespace.Commands {
		assert.NoError(t, f.d.Dispatch(context.Background(), name), name)
	}
}

func TestRemoveTrailingWhitespace(t *testing.T) {
	f := newFixture(t)
	ed := f.workspace.OpenText("foo  \nbar\t")
	ed.SetCursorBufferPosition(buffer.Point{Row: 1})

	f.run(t, whitespace.CommandRemoveTrailingWhitespace)

	assert.Equal(t, []string{"foo", "bar\t"}, ed.Buffer().Lines(), "cursor row is kept")
}

func TestRemoveTrailingWhitespace_ActiveEditorOnly(t *testing.T) {
	f := newFixture(t)
	other := f.workspace.OpenText("a  ")
	f.workspace.OpenText("b  ")

	f.run(t, whitespace.CommandRemoveTrailingWhitespace)

	assert.Equal(t, "a  ", other.Buffer().Text())
}

func TestConvertTabsToSpaces(t *testing.T) {
	f := newFixture(t)
	ed := f.workspace.OpenText("\tx\ty")

	f.run(t, whitespace.CommandConvertTabsToSpaces)

	assert.Equal(t, "  x\ty", ed.Buffer().Text())
	assert.True(t, ed.SoftTabs())
}

func TestConvertAllTabsToSpaces(t *testing.T) {
	f := newFixture(t)
	ed := f.workspace.OpenText("\tx\ty")

	f.run(t, whitespace.CommandConvertAllTabsToSpaces)

	assert.Equal(t, "  x  y", ed.Buffer().Text())
}

func TestConvertSpacesToTabs(t *testing.T) {
	f := newFixture(t)
	ed := f.workspace.OpenText("    x")

	f.run(t, whitespace.CommandConvertSpacesToTabs)

	assert.Equal(t, "\t\tx", ed.Buffer().Text())
	assert.False(t, ed.SoftTabs())
}

func TestSaveCommands(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("a  \nb"), 0o644))

	ed, err := f.workspace.Open(path)
	require.NoError(t, err)
	ed.SetCursorBufferPosition(buffer.Point{Row: 1})

	f.run(t, whitespace.CommandSaveWithTrailingWhitespace)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a  \nb\n", string(data))

	f.run(t, whitespace.CommandSaveWithoutTrailingWhitespace)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(data))
}
