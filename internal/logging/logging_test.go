package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "aura.log")
	logger, level, err := New(Options{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level.Level())

	logger.Info("sound started", zap.String("center", "root"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"sound started"`)
	assert.Contains(t, string(data), `"center":"root"`)
}

func TestNew_LevelFiltersAndChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aura.log")
	logger, level, err := New(Options{Level: "WARN", File: path})
	require.NoError(t, err)

	logger.Info("hidden")
	level.SetLevel(zapcore.InfoLevel)
	logger.Info("shown")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}

func TestDefaultFile(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	assert.Equal(t, filepath.Join("/tmp/state", "aura", "aura.log"), DefaultFile())
}
