package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: "info"}, &buf)

	logger.Info().Str("component", "generator").Int("length", 31).Msg("series generated")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "generator", entry["component"])
	assert.Equal(t, "series generated", entry["message"])
	assert.EqualValues(t, 31, entry["length"])
	assert.Contains(t, entry, "time")
}

func TestNew_AllLogLevels(t *testing.T) {
	testCases := []struct {
		level         string
		expectedLevel zerolog.Level
		name          string
	}{
		{"debug", zerolog.DebugLevel, "debug"},
		{"info", zerolog.InfoLevel, "info"},
		{"warn", zerolog.WarnLevel, "warn"},
		{"error", zerolog.ErrorLevel, "error"},
		{"WARN", zerolog.WarnLevel, "case insensitive"},
		{"unknown", zerolog.InfoLevel, "unknown defaults to info"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			New(Config{Level: tc.level})
			assert.Equal(t, tc.expectedLevel, zerolog.GlobalLevel())
		})
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: "warn"}, &buf)
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_PrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: "info", Pretty: true}, &buf)

	logger.Info().Msg("test message")

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestSetGlobalLogger(t *testing.T) {
	original := log.Logger
	defer func() { log.Logger = original }()

	var buf bytes.Buffer
	SetGlobalLogger(NewWithWriter(Config{Level: "info"}, &buf))
	log.Info().Msg("global message")

	assert.Contains(t, buf.String(), "global message")
}
