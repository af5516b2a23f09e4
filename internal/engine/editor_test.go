package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/whitespace/internal/engine/buffer"
)

func newEditor(t *testing.T, text string, opts ...Option) *Editor {
	t.Helper()
	ed := New(buffer.NewBufferFromString(text), opts...)
	t.Cleanup(ed.Destroy)
	return ed
}

func recordCursorEvents(ed *Editor) *[]CursorEvent {
	var events []CursorEvent
	ed.OnDidChangeCursorPosition(func(ev CursorEvent) {
		events = append(events, ev)
	})
	return &events
}

func TestNew_Identity(t *testing.T) {
	buf := buffer.NewBufferFromString("x")
	a := New(buf)
	b := New(buf)

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID(), "editors sharing a buffer are distinct")
	assert.Same(t, a.Buffer(), b.Buffer())

	c := New(buf, WithID("pane-1"))
	assert.Equal(t, "pane-1", c.ID())
}

func TestNew_Defaults(t *testing.T) {
	ed := newEditor(t, "")
	assert.Equal(t, DefaultTabLength, ed.TabLength())
	assert.True(t, ed.SoftTabs())
	assert.Equal(t, PlainTextScope, ed.Grammar())
	assert.Equal(t, []Point{{}}, ed.CursorBufferPositions())

	ed.SetTabLength(0)
	assert.Equal(t, DefaultTabLength, ed.TabLength())
}

func TestGrammarForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", PlainTextScope},
		{"README.md", "source.gfm"},
		{"notes.MARKDOWN", "source.gfm"},
		{"doc.mkd", "text.md"},
		{"main.go", "source.go"},
		{"Makefile", "source.makefile"},
		{"LICENSE", PlainTextScope},
		{"style.css", "source.css"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, GrammarForPath(tt.path))
		})
	}
}

func TestEditor_GrammarFromBufferPath(t *testing.T) {
	ed := New(buffer.NewBuffer(buffer.WithPath("/tmp/a.md")))
	defer ed.Destroy()
	assert.Equal(t, "source.gfm", ed.Grammar())

	ed.SetGrammar("text.md")
	assert.Equal(t, "text.md", ed.Grammar())

	other := New(buffer.NewBuffer(buffer.WithPath("/tmp/a.md")), WithGrammar("text.plain"))
	defer other.Destroy()
	assert.Equal(t, "text.plain", other.Grammar())
}

func TestEditor_MoveVertically(t *testing.T) {
	ed := newEditor(t, "a\n  \nb")
	events := recordCursorEvents(ed)

	ed.SetCursorBufferPosition(Point{Row: 0, Column: 1})
	*events = nil

	ed.MoveDown(1)
	require.Len(t, *events, 1)
	assert.Equal(t, CursorEvent{Old: Point{Row: 0, Column: 1}, New: Point{Row: 1, Column: 1}}, (*events)[0])

	ed.MoveDown(5)
	assert.Equal(t, []Point{{Row: 2, Column: 1}}, ed.CursorBufferPositions())

	*events = nil
	ed.MoveUp(10)
	ed.MoveUp(1)
	require.Len(t, *events, 1, "moving up from row 0 reports nothing")
	assert.Equal(t, 0, (*events)[0].New.Row)
	assert.False(t, (*events)[0].TextChanged)
}

func TestEditor_CursorRows(t *testing.T) {
	ed := newEditor(t, "a\nb\nc\nd")
	ed.SetCursorBufferPosition(Point{Row: 2})
	ed.AddCursorAt(Point{Row: 0})
	ed.AddCursorAt(Point{Row: 2, Column: 1})

	assert.Equal(t, []int{0, 2}, ed.CursorRows())
}

func TestEditor_SelectedBufferRanges(t *testing.T) {
	ed := newEditor(t, "hello\nworld")
	ranges := []Range{
		buffer.RowRange(1, 1, 3),
		buffer.RowRange(0, 0, 2),
	}
	ed.SetSelectedBufferRanges(ranges)

	assert.Equal(t, []Range{buffer.RowRange(0, 0, 2), buffer.RowRange(1, 1, 3)}, ed.SelectedBufferRanges())

	ed.SetSelectedBufferRanges([]Range{buffer.RowRange(9, 0, 99)})
	assert.Equal(t, []Range{buffer.RowRange(1, 5, 5)}, ed.SelectedBufferRanges(), "ranges are clipped")
}

func TestEditor_InsertText(t *testing.T) {
	ed := newEditor(t, "a\nb\nc")
	ed.SetCursorBufferPosition(Point{Row: 0, Column: 1})
	ed.AddCursorAt(Point{Row: 2, Column: 1})

	var seen []string
	ed.OnWillInsertText(func(ev InsertEvent) {
		seen = append(seen, "will:"+ev.Text+":"+ed.Buffer().Text())
	})
	events := recordCursorEvents(ed)

	require.NoError(t, ed.InsertText("!"))

	assert.Equal(t, "a!\nb\nc!", ed.Buffer().Text())
	assert.Equal(t, []string{"will:!:a\nb\nc"}, seen)
	assert.Equal(t, []Point{{Row: 0, Column: 2}, {Row: 2, Column: 2}}, ed.CursorBufferPositions())

	require.Len(t, *events, 2)
	for _, ev := range *events {
		assert.True(t, ev.TextChanged)
	}

	require.True(t, ed.Buffer().Undo())
	assert.Equal(t, "a\nb\nc", ed.Buffer().Text(), "one insertion is one undo step")
}

func TestEditor_InsertTextReplacesSelection(t *testing.T) {
	ed := newEditor(t, "hello world")
	ed.SetSelectedBufferRanges([]Range{buffer.RowRange(0, 0, 5)})

	require.NoError(t, ed.InsertText("bye"))

	assert.Equal(t, "bye world", ed.Buffer().Text())
	assert.Equal(t, []Point{{Row: 0, Column: 3}}, ed.CursorBufferPositions())
}

func TestEditor_InsertNewlineAutoIndent(t *testing.T) {
	ed := newEditor(t, "  foo")
	ed.SetCursorBufferPosition(Point{Row: 0, Column: 5})
	events := recordCursorEvents(ed)

	require.NoError(t, ed.InsertText("\n"))

	assert.Equal(t, []string{"  foo", "  "}, ed.Buffer().Lines())
	require.Len(t, *events, 1)
	assert.Equal(t, CursorEvent{
		Old:         Point{Row: 0, Column: 5},
		New:         Point{Row: 1, Column: 2},
		TextChanged: true,
	}, (*events)[0])

	plain := newEditor(t, "  foo", WithAutoIndent(false))
	plain.SetCursorBufferPosition(Point{Row: 0, Column: 5})
	require.NoError(t, plain.InsertText("\n"))
	assert.Equal(t, []string{"  foo", ""}, plain.Buffer().Lines())
}

func TestEditor_SetIndentationForBufferRow(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		soft  bool
		level int
		want  string
	}{
		{"soft tabs", "\tfoo", true, 2, "    foo"},
		{"hard tabs", "  foo", false, 1, "\tfoo"},
		{"clear blank row", "    ", true, 0, ""},
		{"unchanged", "  foo", true, 1, "  foo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := newEditor(t, tt.text, WithSoftTabs(tt.soft))
			require.NoError(t, ed.SetIndentationForBufferRow(0, tt.level))
			assert.Equal(t, tt.want, ed.Buffer().LineForRow(0))
		})
	}

	ed := newEditor(t, "x")
	assert.ErrorIs(t, ed.SetIndentationForBufferRow(5, 0), ErrRowOutOfRange)
	assert.ErrorIs(t, ed.SetIndentationForBufferRow(-1, 0), ErrRowOutOfRange)
}

func TestEditor_SetIndentationUnchangedDoesNotEdit(t *testing.T) {
	ed := newEditor(t, "  foo")
	version := ed.Buffer().Version()

	require.NoError(t, ed.SetIndentationForBufferRow(0, 1))
	assert.Equal(t, version, ed.Buffer().Version())
}

func TestEditor_SharedBufferMovesBothCursors(t *testing.T) {
	buf := buffer.NewBufferFromString("one\ntwo")
	left := New(buf)
	right := New(buf)
	defer left.Destroy()
	defer right.Destroy()

	right.SetCursorBufferPosition(Point{Row: 1, Column: 2})
	require.NoError(t, left.InsertText("zero\n"))

	assert.Equal(t, []Point{{Row: 1, Column: 0}}, left.CursorBufferPositions())
	assert.Equal(t, []Point{{Row: 2, Column: 2}}, right.CursorBufferPositions())
}

func TestEditor_Destroy(t *testing.T) {
	buf := buffer.NewBufferFromString("text")
	ed := New(buf)

	destroyed := 0
	ed.OnDidDestroy(func() { destroyed++ })
	events := recordCursorEvents(ed)

	ed.Destroy()
	ed.Destroy()

	assert.Equal(t, 1, destroyed)
	assert.True(t, ed.IsDestroyed())
	assert.False(t, buf.IsDestroyed(), "buffer outlives the editor")
	assert.ErrorIs(t, ed.InsertText("x"), ErrDestroyed)
	assert.ErrorIs(t, ed.Save(), ErrDestroyed)

	_, err := buf.Insert(Point{}, "more ")
	require.NoError(t, err)
	assert.Empty(t, *events)
}
