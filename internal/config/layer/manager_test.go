package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	m := NewManager()
	m.AddLayer(NewLayerWithData("session", SourceSession, nil))
	m.AddLayer(NewLayerWithData("default", SourceBuiltin, map[string]any{
		"editor": map[string]any{"tabLength": 2},
		"whitespace": map[string]any{
			"keepMarkdownLineBreakWhitespace": true,
		},
	}))
	m.AddLayer(NewLayerWithData("user", SourceUser, map[string]any{
		"editor": map[string]any{"tabLength": 4},
		".source.gfm": map[string]any{
			"whitespace": map[string]any{"keepMarkdownLineBreakWhitespace": false},
		},
	}))
	return m
}

func TestManager_PriorityOrder(t *testing.T) {
	m := newTestManager()

	names := []string{}
	for _, l := range m.Layers() {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"default", "user", "session"}, names)
}

func TestManager_Get(t *testing.T) {
	m := newTestManager()

	val, l, ok := m.Get("editor.tabLength", "")
	require.True(t, ok)
	assert.Equal(t, 4, val)
	assert.Equal(t, "user", l.Name)

	require.NoError(t, m.Set("session", "editor.tabLength", 8))
	val, l, _ = m.Get("editor.tabLength", "")
	assert.Equal(t, 8, val)
	assert.Equal(t, SourceSession, l.Source)

	_, _, ok = m.Get("editor.missing", "")
	assert.False(t, ok)
}

func TestManager_GetScoped(t *testing.T) {
	m := newTestManager()
	key := "whitespace.keepMarkdownLineBreakWhitespace"

	val, _, _ := m.Get(key, "source.gfm")
	assert.Equal(t, false, val)

	val, _, _ = m.Get(key, "source.go")
	assert.Equal(t, true, val)

	require.NoError(t, m.Set("session", key, true))
	val, l, _ := m.Get(key, "source.gfm")
	assert.Equal(t, false, val, "scoped user value beats unscoped session value")
	assert.Equal(t, "user", l.Name)
}

func TestManager_SetUnknownLayer(t *testing.T) {
	m := NewManager()
	assert.Error(t, m.Set("nope", "a", 1))
	assert.Error(t, m.UpdateLayer("nope", nil))
}

func TestManager_UpdateLayer(t *testing.T) {
	m := newTestManager()

	require.NoError(t, m.UpdateLayer("user", map[string]any{"editor": map[string]any{"tabLength": 3}}))
	val, _, _ := m.Get("editor.tabLength", "")
	assert.Equal(t, 3, val)

	_, _, ok := m.Get("whitespace.keepMarkdownLineBreakWhitespace", "source.gfm")
	assert.True(t, ok)
}

func TestLayer_Clone(t *testing.T) {
	l := NewLayerWithData("user", SourceUser, map[string]any{
		"list": []any{"a", map[string]any{"b": 1}},
	})
	c := l.Clone()
	SetByPath(c.Data, "list", nil)

	assert.NotNil(t, l.Data["list"])
	assert.Equal(t, l.Priority, c.Priority)
}

func TestSetScoped(t *testing.T) {
	data := map[string]any{}
	SetScoped(data, "text.md", "whitespace.ignoreWhitespaceOnlyLines", true)

	l := NewLayerWithData("x", SourceSession, data)
	val, ok := l.GetScoped("text.md", "whitespace.ignoreWhitespaceOnlyLines")
	assert.True(t, ok)
	assert.Equal(t, true, val)

	_, ok = l.GetScoped("", "whitespace.ignoreWhitespaceOnlyLines")
	assert.False(t, ok)
}

func TestGetByPath(t *testing.T) {
	data := map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}}

	val, ok := GetByPath(data, "a.b.c")
	assert.True(t, ok)
	assert.Equal(t, 1, val)

	_, ok = GetByPath(data, "a.x")
	assert.False(t, ok)
	_, ok = GetByPath(data, "a.b.c.d")
	assert.False(t, ok)
	_, ok = GetByPath(nil, "a")
	assert.False(t, ok)
}
