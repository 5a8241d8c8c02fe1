package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
		wantErr  bool
	}{
		{input: "", expected: zerolog.InfoLevel},
		{input: "debug", expected: zerolog.DebugLevel},
		{input: " WARN ", expected: zerolog.WarnLevel},
		{input: "error", expected: zerolog.ErrorLevel},
		{input: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lvl, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, lvl)
		})
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("warn", &buf)
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Str("name", "Annie").Msg("out of alias space")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "out of alias space")
	assert.Contains(t, out, "name=Annie")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewJSON("info", &buf)
	require.NoError(t, err)

	logger.Info().Int("sessions", 3).Msg("import complete")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "import complete", entry["message"])
	assert.EqualValues(t, 3, entry["sessions"])
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("chatty", &bytes.Buffer{})
	require.Error(t, err)
}
