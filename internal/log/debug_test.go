package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetDebugLogger(t *testing.T) func() {
	t.Helper()

	globalDebugLogger.mu.Lock()
	prevFile := globalDebugLogger.file
	prevBuffer := append([]byte(nil), globalDebugLogger.buffer...)
	prevDiscard := globalDebugLogger.discard
	globalDebugLogger.file = nil
	globalDebugLogger.buffer = nil
	globalDebugLogger.discard = false
	globalDebugLogger.mu.Unlock()

	return func() {
		globalDebugLogger.mu.Lock()
		if globalDebugLogger.file != nil {
			_ = globalDebugLogger.file.Close()
		}
		globalDebugLogger.file = prevFile
		globalDebugLogger.buffer = prevBuffer
		globalDebugLogger.discard = prevDiscard
		globalDebugLogger.mu.Unlock()
	}
}

func TestBufferedLinesFlushToFile(t *testing.T) {
	t.Cleanup(resetDebugLogger(t))

	Printf("before file %d", 1)
	WithFields(logrus.Fields{"path": "a.txt"}).Debug("staged")

	logPath := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, SetFile(logPath))
	Println("after file")
	require.NoError(t, Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "before file 1")
	assert.Contains(t, content, "path=a.txt")
	assert.Contains(t, content, "after file")
}

func TestSetFileEmptyDiscards(t *testing.T) {
	t.Cleanup(resetDebugLogger(t))

	Printf("buffered")
	require.NoError(t, SetFile(""))
	Printf("dropped")

	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()
	assert.True(t, globalDebugLogger.discard)
	assert.Empty(t, globalDebugLogger.buffer)
}

func TestSetFileFailureDiscardsLogs(t *testing.T) {
	t.Cleanup(resetDebugLogger(t))

	// A regular file cannot act as a parent directory, even for root.
	parent := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o600))

	logPath := filepath.Join(parent, "debug.log")
	require.Error(t, SetFile(logPath))

	globalDebugLogger.mu.Lock()
	discard := globalDebugLogger.discard
	bufferLen := len(globalDebugLogger.buffer)
	globalDebugLogger.mu.Unlock()

	assert.True(t, discard, "expected discard to be enabled after SetFile failure")
	assert.Zero(t, bufferLen)

	Printf("should be discarded")

	globalDebugLogger.mu.Lock()
	bufferLen = len(globalDebugLogger.buffer)
	globalDebugLogger.mu.Unlock()
	assert.Zero(t, bufferLen)
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv(LevelEnv, "warn")
	assert.Equal(t, logrus.WarnLevel, levelFromEnv())

	t.Setenv(LevelEnv, "nonsense")
	assert.Equal(t, logrus.DebugLevel, levelFromEnv())

	t.Setenv(LevelEnv, "")
	assert.Equal(t, logrus.DebugLevel, levelFromEnv())
}

func TestCloseWithoutFile(t *testing.T) {
	t.Cleanup(resetDebugLogger(t))
	assert.NoError(t, Close())
}
