package logging

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateLogs(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, fmt.Sprintf("%d.log", i))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
		mtime := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0644))

	require.NoError(t, rotateLogs(dir, 3))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	// Room is left for the log about to be created
	assert.ElementsMatch(t, []string{"3.log", "4.log", "keep.txt"}, names)
}

func TestInitializeDiscardsWithoutDebug(t *testing.T) {
	t.Setenv("WEBCORDER_DEBUG", "")
	t.Setenv("WEBCORDER_DEBUG_FILE", "")

	path, err := Initialize(false, "", 1000)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.NotNil(t, Logger)
}

func TestInitializeWithDebugFile(t *testing.T) {
	t.Setenv("WEBCORDER_DEBUG", "1")
	file := filepath.Join(t.TempDir(), "nested", "debug.log")

	path, err := Initialize(false, file, 1000)
	require.NoError(t, err)
	assert.Equal(t, file, path)

	Logger.Info("hello", "key", "value")
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestAttachConsole(t *testing.T) {
	t.Setenv("WEBCORDER_DEBUG", "")
	t.Setenv("WEBCORDER_DEBUG_FILE", "")
	_, err := Initialize(false, "", 1000)
	require.NoError(t, err)

	var buf bytes.Buffer
	AttachConsole(&buf, slog.LevelInfo)

	Logger.Debug("hidden")
	Logger.With("source", "alice").Info("recording started")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "recording started")
	assert.Contains(t, out, "source=alice")
}
