package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestExternalServiceResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(&buf, "debug", "json")
	t.Cleanup(func() { InitializeWriter(&bytes.Buffer{}, "info", "text") })

	ExternalServiceResult("rentalReturn", "summary", errors.New("boom"), "booking_id", "B1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "rentalReturn", entry["service"])
	assert.Equal(t, "summary", entry["operation"])
	assert.Equal(t, "B1", entry["booking_id"])
	assert.Equal(t, "boom", entry["error"])
}

func TestTextFormat_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(&buf, "warn", "text")
	t.Cleanup(func() { InitializeWriter(&bytes.Buffer{}, "info", "text") })

	Info("hidden")
	Warn("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "key=value")
}
