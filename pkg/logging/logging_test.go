package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealog-project/sealog/pkg/logging"
)

func capture(level logging.Level) (*logging.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.NewLogger(level)
	logger.SetOutput(&buf)
	return logger, &buf
}

func TestLogger_JSONEntry(t *testing.T) {
	logger, buf := capture(logging.LevelInfo)

	logger.Info("sealed entry", map[string]any{"entry_id": 3})

	var entry logging.Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, logging.LevelInfo, entry.Level)
	assert.Equal(t, "sealed entry", entry.Message)
	assert.EqualValues(t, 3, entry.Fields["entry_id"])
	assert.NotEmpty(t, entry.Timestamp)
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := capture(logging.LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown")

	lines := strings.Count(buf.String(), "\n")
	assert.Equal(t, 2, lines)
}

func TestLogger_WithFields(t *testing.T) {
	logger, buf := capture(logging.LevelInfo)

	logger.WithFields(map[string]any{"store": "file"}).Info("opened")

	var entry logging.Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "file", entry.Fields["store"])
}

func TestLogger_ErrorErr(t *testing.T) {
	logger, buf := capture(logging.LevelError)

	logger.ErrorErr("append failed", assert.AnError)

	var entry logging.Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Contains(t, entry.Fields["error"], "assert.AnError")
}

func TestLogger_NoFieldsOmitted(t *testing.T) {
	logger, buf := capture(logging.LevelInfo)

	logger.Info("bare")

	assert.NotContains(t, buf.String(), `"fields"`)
}
