package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"trace", zerolog.TraceLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, zerolog.InfoLevel)

	log.Debug().Msg("hidden")
	log.Info().Int("score", 3).Msg("game over")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "game over", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "cursor-crisis", entry["app"])
	assert.EqualValues(t, 3, entry["score"])
	assert.Contains(t, entry, "time")
}

func TestNewAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "game.log")

	log, closer, err := New("debug", path)
	require.NoError(t, err)
	log.Debug().Msg("first")
	require.NoError(t, closer.Close())

	log, closer, err = New("debug", path)
	require.NoError(t, err)
	log.Debug().Msg("second")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, closer, err := New("loud", filepath.Join(t.TempDir(), "game.log"))
	require.Error(t, err)
	assert.Nil(t, closer)
}
