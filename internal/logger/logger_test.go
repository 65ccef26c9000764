package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/tenantadmin/internal/config"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestJSONHandlerRespectsLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := slog.New(Handler(&buf, config.LogConfig{Level: "warn", Format: "json"}))
	log.Info("dropped")
	log.Warn("plan load failed", slog.String("component", "console"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "plan load failed", rec["msg"])
	require.Equal(t, "console", rec["component"])
}

func TestTextHandlerHasNoColorOffTerminal(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	slog.New(Handler(&buf, config.LogConfig{})).Error("load failed", slog.Any("error", errors.New("boom")))
	require.Contains(t, buf.String(), "load failed")
	require.Contains(t, buf.String(), "boom")
	require.NotContains(t, buf.String(), "\x1b[")
}

func TestNewWritesFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	log, closer, err := New(config.LogConfig{Path: path, Format: "json"})
	require.NoError(t, err)
	log.Info("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"hello"`)
}
