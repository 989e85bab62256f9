package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Format: "json", Output: &buf}).With("component", "test")

	log.Debug("hidden")
	log.Info("scraped street", "street", "Ingolfs Allé", "rows", 12)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "scraped street", entry["msg"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, "Ingolfs Allé", entry["street"])
	assert.Equal(t, float64(12), entry["rows"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	New(Options{Level: "warn", Format: "text", Output: &buf}).Warn("no sold list", "street", "Gimles Allé")

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), `street="Gimles Allé"`)
}
