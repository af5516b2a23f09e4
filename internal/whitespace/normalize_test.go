package whitespace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/whitespace/internal/config"
	"github.com/dshills/whitespace/internal/engine"
	"github.com/dshills/whitespace/internal/engine/buffer"
)

func TestRemoveTrailingWhitespace_CurrentLine(t *testing.T) {
	f := newFixture(t, "foo  \nbar  ")

	require.NoError(t, f.ws.RemoveTrailingWhitespace(f.host))
	assert.Equal(t, []string{"foo  ", "bar"}, f.lines(), "cursor row is kept")

	f.cfg.Set(config.KeyIgnoreWhitespaceOnCurrentLine, false)
	require.NoError(t, f.ws.RemoveTrailingWhitespace(f.host))
	assert.Equal(t, []string{"foo", "bar"}, f.lines())
}

func TestRemoveTrailingWhitespace_OtherBufferActive(t *testing.T) {
	f := newFixture(t, "foo  ")
	other := engine.New(buffer.NewBufferFromString("x"))
	defer other.Destroy()
	f.workspace.active = hostEditor{other}

	require.NoError(t, f.ws.RemoveTrailingWhitespace(f.host))
	assert.Equal(t, []string{"foo"}, f.lines())
}

func TestRemoveTrailingWhitespace_NoActiveEditor(t *testing.T) {
	f := newFixture(t, "foo \t")
	f.workspace.active = nil

	require.NoError(t, f.ws.RemoveTrailingWhitespace(f.host))
	assert.Equal(t, []string{"foo"}, f.lines())
}

func TestRemoveTrailingWhitespace_Policy(t *testing.T) {
	tests := []struct {
		name         string
		grammar      string
		line         string
		onlyLines    bool
		keepMarkdown bool
		want         string
	}{
		{"plain", "source.go", "foo  ", false, true, "foo"},
		{"tabs", "source.go", "foo\t \t", false, true, "foo"},
		{"whitespace only", "source.go", "   ", false, true, ""},
		{"whitespace only ignored", "source.go", "   ", true, true, "   "},
		{"markdown line break", "source.gfm", "foo  ", false, true, "foo  "},
		{"markdown text.md", "text.md", "foo   ", false, true, "foo   "},
		{"markdown single space", "source.gfm", "foo ", false, true, "foo"},
		{"markdown keep off", "source.gfm", "foo  ", false, false, "foo"},
		{"markdown whitespace only", "source.gfm", "   ", false, true, ""},
		{"markdown whitespace only ignored", "source.gfm", "   ", true, true, "   "},
		{"not markdown", "text.plain", "foo  ", false, true, "foo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.line+"\nend", engine.WithGrammar(tt.grammar))
			f.workspace.active = nil
			f.cfg.Set(config.KeyIgnoreWhitespaceOnlyLines, tt.onlyLines)
			f.cfg.Set(config.KeyKeepMarkdownLineBreakWhitespace, tt.keepMarkdown)

			require.NoError(t, f.ws.RemoveTrailingWhitespace(f.host))
			assert.Equal(t, tt.want, f.ed.Buffer().LineForRow(0))
		})
	}
}

func TestRemoveTrailingWhitespace_MarkdownScopesConfigurable(t *testing.T) {
	f := newFixture(t, "foo  ", engine.WithGrammar("text.rst"))
	f.workspace.active = nil
	f.cfg.Set(config.KeyMarkdownScopes, []any{"text.rst"})

	require.NoError(t, f.ws.RemoveTrailingWhitespace(f.host))
	assert.Equal(t, "foo  ", f.ed.Buffer().LineForRow(0))
}

func TestRemoveTrailingWhitespace_OneUndoStep(t *testing.T) {
	f := newFixture(t, "a \nb \nc ")
	f.workspace.active = nil

	require.NoError(t, f.ws.RemoveTrailingWhitespace(f.host))
	assert.Equal(t, "a\nb\nc", f.ed.Buffer().Text())

	require.True(t, f.ed.Buffer().Undo())
	assert.Equal(t, "a \nb \nc ", f.ed.Buffer().Text())
}

func TestEnsureSingleTrailingNewline(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"missing", "a", "a\n"},
		{"present", "a\n", "a\n"},
		{"extra", "a\n\n\n", "a\n"},
		{"empty buffer", "", ""},
		{"only newlines", "\n\n\n", "\n"},
		{"blank rows with spaces kept", "a\n  \n\n", "a\n  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.text)

			require.NoError(t, f.ws.EnsureSingleTrailingNewline(f.host))
			assert.Equal(t, tt.want, f.ed.Buffer().Text())

			require.NoError(t, f.ws.EnsureSingleTrailingNewline(f.host))
			assert.Equal(t, tt.want, f.ed.Buffer().Text(), "second application is a no-op")
		})
	}
}

func TestEnsureSingleTrailingNewline_KeepsSelection(t *testing.T) {
	f := newFixture(t, "abc")
	sel := []buffer.Range{buffer.RowRange(0, 1, 3)}
	f.ed.SetSelectedBufferRanges(sel)

	require.NoError(t, f.ws.EnsureSingleTrailingNewline(f.host))

	assert.Equal(t, "abc\n", f.ed.Buffer().Text())
	assert.Equal(t, sel, f.ed.SelectedBufferRanges())
}

func TestConvertTabsToSpaces(t *testing.T) {
	f := newFixture(t, "\tfoo\n\t\tbar\tbaz", engine.WithSoftTabs(false))

	require.NoError(t, f.ws.ConvertTabsToSpaces(f.host, false))
	assert.Equal(t, []string{"  foo", "    bar\tbaz"}, f.lines())
	assert.True(t, f.ed.SoftTabs())

	require.NoError(t, f.ws.ConvertTabsToSpaces(f.host, true))
	assert.Equal(t, []string{"  foo", "    bar  baz"}, f.lines())
}

func TestConvertSpacesToTabs(t *testing.T) {
	f := newFixture(t, "    foo\n   bar\n  \t x\nbaz  qux")

	require.NoError(t, f.ws.ConvertSpacesToTabs(f.host))

	assert.Equal(t, []string{"\t\tfoo", "\t bar", "\t\t x", "baz  qux"}, f.lines())
	assert.False(t, f.ed.SoftTabs())
	assert.Equal(t, 2, f.ed.TabLength())
}

func TestConvertSpacesToTabs_AdoptsConfiguredTabLength(t *testing.T) {
	f := newFixture(t, "        x", engine.WithTabLength(4))

	require.NoError(t, f.ws.ConvertSpacesToTabs(f.host))

	assert.Equal(t, []string{"\t\tx"}, f.lines())
	assert.Equal(t, 2, f.ed.TabLength(), "configured tab length wins")
}

func TestTabsSpacesRoundTrip(t *testing.T) {
	original := "\tfoo\n\t\tbar\nbaz\n\t\t\tqux"
	f := newFixture(t, original)

	require.NoError(t, f.ws.ConvertTabsToSpaces(f.host, false))
	require.NoError(t, f.ws.ConvertSpacesToTabs(f.host))

	assert.Equal(t, original, f.ed.Buffer().Text())
}
