// Package tracer sets up OpenTelemetry tracing for the service and offers a
// few helpers for creating spans and propagating trace context.
//
//	tr, err := tracer.NewClient(tracer.Config{ServiceName: "tech-report-api", AppEnv: "production"}, log)
//	ctx, span := tr.StartSpan(ctx, "query.adoption")
//	defer span.End()
//	tr.SetAttributes(span, map[string]interface{}{"collection": "adoption"})
//
// Export is opt-in through Config.EnableExport; the exporter endpoint is
// configured with the standard OTEL_EXPORTER_OTLP_* environment variables.
package tracer
