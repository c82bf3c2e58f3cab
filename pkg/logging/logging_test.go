package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, false)

	logger.Debug("hidden")
	logger.Info("Consumption recorded", "group_id", "g1", "units", 2)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Consumption recorded", record["msg"])
	assert.Equal(t, "g1", record["group_id"])
	assert.Equal(t, float64(2), record["units"])
}

func TestNew_Color(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelWarn, true).Warn("RPC error", "code", "not_found")
	assert.Contains(t, buf.String(), "RPC error")
	assert.Contains(t, buf.String(), "not_found")
}
