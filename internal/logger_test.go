package internal

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreLogging(t *testing.T) {
	t.Helper()
	level := logLevel.Level()
	t.Cleanup(func() {
		SetupLogging(os.Stderr, "")
		logLevel.Set(level)
	})
}

func TestSetLogLevel(t *testing.T) {
	restoreLogging(t)

	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "warning", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.NoError(t, SetLogLevel(tt.input))
			assert.Equal(t, tt.want, logLevel.Level())
		})
	}

	assert.Error(t, SetLogLevel("loud"))
}

func TestSetVerbose(t *testing.T) {
	restoreLogging(t)

	SetVerbose(true)
	assert.Equal(t, slog.LevelDebug, logLevel.Level())
	SetVerbose(false)
	assert.Equal(t, slog.LevelInfo, logLevel.Level())
}

func TestSetupLogging_Writer(t *testing.T) {
	restoreLogging(t)

	var buf bytes.Buffer
	closer := SetupLogging(&buf, "")
	require.NoError(t, SetLogLevel("warn"))

	LogInfo("hidden %d", 1)
	LogDebug("hidden too")
	LogWarn("skipping %s", "dir")
	LogError("failed")
	require.NoError(t, closer.Close())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "skipping dir")
	assert.Contains(t, out, "level=ERROR")
	assert.Same(t, Logger(), slog.Default())
}

func TestSetupLogging_File(t *testing.T) {
	restoreLogging(t)

	path := filepath.Join(t.TempDir(), "logs", "claude-session.log")
	closer := SetupLogging(os.Stderr, path)
	require.NoError(t, SetLogLevel("debug"))

	LogDebug("reading %s", "s1.jsonl")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"reading s1.jsonl"`)
	assert.Contains(t, string(data), `"level":"DEBUG"`)
}
