package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		level string
		debug bool
		warn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"WARN", false, true},
		{"bogus", false, true},
	}
	for _, tc := range cases {
		for _, format := range []string{"json", "console"} {
			log, err := New(Config{Level: tc.level, Format: format})
			require.NoError(t, err, "level=%s format=%s", tc.level, format)
			assert.Equal(t, tc.debug, log.Core().Enabled(zapcore.DebugLevel), "level=%s", tc.level)
			assert.Equal(t, tc.warn, log.Core().Enabled(zapcore.WarnLevel), "level=%s", tc.level)
		}
	}
}

func TestWithContextAddsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx := WithRequestID(context.Background(), "req-1")
	WithContext(ctx, base).Info("hola")
	WithContext(context.Background(), base).Info("sin id")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	_, ok := entries[1].ContextMap()["request_id"]
	assert.False(t, ok)
}

func TestWithContextNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		WithContext(context.Background(), nil).Info("noop")
	})
}
