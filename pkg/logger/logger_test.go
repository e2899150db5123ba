package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koerner360/koerner360-api/pkg/logger"
)

func TestNew_JSONComCamposFixos(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	l.Component("http").With("request_id", "req-1").Warn().Msg("lento")
	l.Debug().Msg("descartado pelo nível")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "http", entry["component"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "lento", entry["message"])
}

func TestNew_NivelInvalidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Level: "verboso", Output: &buf})

	l.Debug().Msg("x")
	assert.Zero(t, buf.Len())
	l.Info().Msg("y")
	assert.NotZero(t, buf.Len())
}

func TestNop_NaoPanica(t *testing.T) {
	l := logger.Nop()
	assert.NotPanics(t, func() {
		l.With("k", "v").Error().Str("a", "b").Msg("ignorado")
	})
}
