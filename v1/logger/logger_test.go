package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		Debug:     zap.DebugLevel,
		Info:      zap.InfoLevel,
		Warning:   zap.WarnLevel,
		Error:     zap.ErrorLevel,
		"":        zap.InfoLevel,
		"verbose": zap.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestLoggerFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewWithCore(core, false)

	log.Error("query failed", errors.New("boom"),
		map[string]interface{}{"collection": "adoption", "attempt": 1},
		map[string]interface{}{"attempt": 2},
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "query failed", entry.Message)
	assert.Equal(t, zap.ErrorLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, "boom", fields["error"])
	assert.Equal(t, "adoption", fields["collection"])
	assert.EqualValues(t, 2, fields["attempt"])
}

func TestLoggerLevelFiltering(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := NewWithCore(core, false)

	log.Debug("hidden", nil)
	log.Info("shown", nil)
	log.Warn("shown too", nil)

	assert.Equal(t, 2, logs.Len())
}

func TestWithContextAddsTraceIDs(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	core, logs := observer.New(zap.DebugLevel)
	NewWithCore(core, true).InfoWithContext(ctx, "traced", nil, map[string]interface{}{"endpoint": "cwv"})

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
	assert.Equal(t, "cwv", fields["endpoint"])

	core, logs = observer.New(zap.DebugLevel)
	NewWithCore(core, false).InfoWithContext(ctx, "untraced", nil)
	assert.NotContains(t, logs.All()[0].ContextMap(), "trace_id")
}
