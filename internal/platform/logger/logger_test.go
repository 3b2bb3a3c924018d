package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerRedactsSecretKeys(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := FromZap(zap.New(core))

	log.Info("engine configured", "api_key", "gsk_live_abcdefghijklmnopqrstuvwxyz", "model", "llama3-70b-8192")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "[REDACTED]", fields["api_key"])
	assert.Equal(t, "llama3-70b-8192", fields["model"])
}

func TestLoggerRedactsKeyLookingValues(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := FromZap(zap.New(core)).With("detail", "gsk_0123456789abcdefghijklmnop")

	log.Warn("upstream said")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "[REDACTED]", logs.All()[0].ContextMap()["detail"])
}

func TestLoggerRedactionCanBeDisabled(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := FromZap(zap.New(core)).WithRedaction(false)

	log.Debug("raw", "token", "abc")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "abc", logs.All()[0].ContextMap()["token"])
}
