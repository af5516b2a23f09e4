package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRoot("test")
	root.Writer = &out
	root.ErrWriter = &out

	argv := append([]string{"whitespace", "--config", "", "--log-level", "disabled"}, args...)
	err := root.Run(context.Background(), argv)
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFix(t *testing.T) {
	dirty := writeFile(t, "dirty.txt", "a  \nb\t")
	clean := writeFile(t, "clean.txt", "c\n")

	out, err := run(t, "fix", dirty, clean)
	require.NoError(t, err)

	assert.Equal(t, dirty+"\n", out, "only changed files are listed")
	assert.Equal(t, "a\nb\n", readFile(t, dirty))
	assert.Equal(t, "c\n", readFile(t, clean))
}

func TestFix_ContinuesPastErrors(t *testing.T) {
	dirty := writeFile(t, "dirty.txt", "a  ")
	missing := filepath.Join(t.TempDir(), "missing.txt")

	_, err := run(t, "fix", missing, dirty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.txt")
	assert.Equal(t, "a\n", readFile(t, dirty))
}

func TestFix_NoFiles(t *testing.T) {
	_, err := run(t, "fix")
	assert.ErrorContains(t, err, "no files given")
}

func TestTabs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "leading only", args: []string{"tabs"}, want: "  x\ty\n"},
		{name: "all", args: []string{"tabs", "--all"}, want: "  x  y\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "a.txt", "\tx\ty\n")
			_, err := run(t, append(tt.args, path)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, readFile(t, path))
		})
	}
}

func TestSpaces(t *testing.T) {
	path := writeFile(t, "a.txt", "    x\n   \ty\n")

	_, err := run(t, "spaces", path)
	require.NoError(t, err)
	assert.Equal(t, "\t\tx\n\t\ty\n", readFile(t, path))
}

func TestRunScript(t *testing.T) {
	path := writeFile(t, "a.txt", "one\n")
	script := writeFile(t, "s.lua", `
		ws.move_to(0, 3)
		ws.insert(" two  ")
		ws.save()
	`)

	_, err := run(t, "run", script, path)
	require.NoError(t, err)
	assert.Equal(t, "one two\n", readFile(t, path))
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "whitespace:\n  removeTrailingWhitespace: false\n")
	path := writeFile(t, "a.txt", "a  ")

	var out bytes.Buffer
	root := NewRoot("test")
	root.Writer = &out
	err := root.Run(context.Background(), []string{"whitespace", "--config", cfg, "--log-level", "disabled", "fix", path})
	require.NoError(t, err)
	assert.Equal(t, "a  \n", readFile(t, path))
}
