package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, closer, err := New("loud", "", false)
	require.Error(t, err)
	closer()
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "whitespace.log")

	log, closer, err := New("info", path, false)
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("editor", "e1").Msg("cleaned")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "cleaned", entry["message"])
	assert.Equal(t, "e1", entry["editor"])
	assert.Contains(t, entry, "time")
}

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zerolog.WarnLevel)

	log.Info().Msg("skip")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("keep")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}
