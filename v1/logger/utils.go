package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// convertToZapFields turns the error and field maps into zap fields.
// Later maps override earlier ones for duplicate keys.
func (l *Logger) convertToZapFields(err error, fields ...map[string]interface{}) []zap.Field {
	var zapFields []zap.Field
	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
	}

	merged := map[string]interface{}{}
	var order []string
	for _, fieldMap := range fields {
		for key, value := range fieldMap {
			if _, seen := merged[key]; !seen {
				order = append(order, key)
			}
			merged[key] = value
		}
	}
	for _, key := range order {
		zapFields = append(zapFields, zap.Any(key, merged[key]))
	}
	return zapFields
}

// traceFields extracts trace_id and span_id from ctx when tracing is enabled.
func (l *Logger) traceFields(ctx context.Context) map[string]interface{} {
	if !l.tracingEnabled || ctx == nil {
		return nil
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return map[string]interface{}{
		"trace_id": sc.TraceID().String(),
		"span_id":  sc.SpanID().String(),
	}
}

func (l *Logger) withTrace(ctx context.Context, fields []map[string]interface{}) []map[string]interface{} {
	tf := l.traceFields(ctx)
	if tf == nil {
		return fields
	}
	return append([]map[string]interface{}{tf}, fields...)
}

// Info logs an informational message with an optional error and fields.
func (l *Logger) Info(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Info(msg, l.convertToZapFields(err, fields...)...)
}

// Debug logs a debug-level message.
func (l *Logger) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Debug(msg, l.convertToZapFields(err, fields...)...)
}

// Warn logs a warning.
func (l *Logger) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Warn(msg, l.convertToZapFields(err, fields...)...)
}

// Error logs an error together with its context fields.
func (l *Logger) Error(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Error(msg, l.convertToZapFields(err, fields...)...)
}

// Fatal logs the message and terminates the process with exit code 1.
func (l *Logger) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Fatal(msg, l.convertToZapFields(err, fields...)...)
}

// InfoWithContext is Info plus the trace and span ids found in ctx.
func (l *Logger) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Info(msg, l.convertToZapFields(err, l.withTrace(ctx, fields)...)...)
}

// DebugWithContext is Debug plus the trace and span ids found in ctx.
func (l *Logger) DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Debug(msg, l.convertToZapFields(err, l.withTrace(ctx, fields)...)...)
}

// WarnWithContext is Warn plus the trace and span ids found in ctx.
func (l *Logger) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Warn(msg, l.convertToZapFields(err, l.withTrace(ctx, fields)...)...)
}

// ErrorWithContext is Error plus the trace and span ids found in ctx.
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Error(msg, l.convertToZapFields(err, l.withTrace(ctx, fields)...)...)
}
