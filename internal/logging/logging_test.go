package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_DisabledDiscards(t *testing.T) {
	t.Setenv("CLAWUSAGE_DEBUG", "")
	t.Setenv("CLAWUSAGE_DEBUG_FILE", "")

	path, err := Initialize(Options{MaxLogFiles: DefaultMaxLogFiles})

	require.NoError(t, err)
	assert.Empty(t, path)
	assert.NotNil(t, Logger)
}

func TestInitialize_DebugFileWritesJSON(t *testing.T) {
	t.Setenv("CLAWUSAGE_DEBUG", "")
	t.Setenv("CLAWUSAGE_DEBUG_FILE", "")
	logPath := filepath.Join(t.TempDir(), "nested", "debug.log")

	path, err := Initialize(Options{DebugFile: logPath})
	require.NoError(t, err)
	assert.Equal(t, logPath, path)

	Logger.Info("hello", "days", 7)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"days":7`)
}

func TestRotate_RemovesOldest(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"a.log", "b.log", "c.log"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
		mod := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(p, mod, mod))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0644))

	require.NoError(t, rotate(dir, 3))

	_, err := os.Stat(filepath.Join(dir, "a.log"))
	assert.True(t, os.IsNotExist(err))
	assert.FileExists(t, filepath.Join(dir, "b.log"))
	assert.FileExists(t, filepath.Join(dir, "c.log"))
	assert.FileExists(t, filepath.Join(dir, "keep.txt"))
}

func TestRotate_UnderLimitKeepsAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.log"), []byte("x"), 0644))

	require.NoError(t, rotate(dir, 5))

	assert.FileExists(t, filepath.Join(dir, "a.log"))
}
