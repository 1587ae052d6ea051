package logging_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"leadtrack/internal/platform/logging"
)

func TestNewFiltersBelowLevel(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	log := logging.New("warn", buf)
	log.Info().Msg("hidden")
	log.Warn().Str("session_id", "s-1").Msg("shown")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "session_id=s-1")
}

func TestNewFallsBackToInfo(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	log := logging.New("chatty", buf)
	log.Debug().Msg("debug line")
	log.Info().Msg("info line")
	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "info line")
}
