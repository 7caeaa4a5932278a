package logutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AppendsJSON(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "folio.log")

	for _, msg := range []string{"first run", "second run"} {
		logger, closer, err := New("info", file)
		require.NoError(t, err)
		logger.Info().Str("template", "classic").Msg(msg)
		logger.Debug().Msg("filtered")
		closer()
	}

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "second run", entry["message"])
	assert.Equal(t, "classic", entry["template"])
	assert.Contains(t, entry, "pid")
}

func TestNew_RotatesLargeFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "folio.log")
	require.NoError(t, os.WriteFile(file, make([]byte, MaxSize+1), 0o644))

	_, closer, err := New("info", file)
	require.NoError(t, err)
	closer()

	info, err := os.Stat(file + ".1")
	require.NoError(t, err)
	assert.Equal(t, int64(MaxSize+1), info.Size())

	info, err = os.Stat(file)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New("loud", filepath.Join(t.TempDir(), "folio.log"))
	assert.Error(t, err)
}

func TestNew_Stderr(t *testing.T) {
	logger, closer, err := New("warn", Stderr)
	require.NoError(t, err)
	defer closer()
	assert.Equal(t, "warn", logger.GetLevel().String())
}
