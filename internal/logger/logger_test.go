package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn", false)

	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown", "key", "value")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=value")
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "chatty", false)

	l.Debug("debug line")
	assert.Empty(t, buf.String())

	l.Info("info line")
	assert.Contains(t, buf.String(), "info line")
}

func TestNewProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info", true)

	l.Info("uploaded", "key", "alice/f.txt")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "uploaded", entry["msg"])
	assert.Equal(t, "alice/f.txt", entry["key"])
}
