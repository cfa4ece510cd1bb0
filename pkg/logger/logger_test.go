package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("ruido"))
}

func TestNew_JSONConCamposFijos(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "info", Output: &buf}).WithStr("session", "abc")

	log.Debug().Msg("no se emite")
	log.Info().Int("id", 7).Msg("registro creado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "debe emitirse exactamente una línea JSON")
	assert.Equal(t, "registro creado", entry["message"])
	assert.Equal(t, "abc", entry["session"])
	assert.EqualValues(t, 7, entry["id"])
}
