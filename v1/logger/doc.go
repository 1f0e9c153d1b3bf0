// Package logger provides the structured logger used across the service.
//
// Logger wraps zap with a small call shape: a message, an optional error and
// any number of field maps. Entries are JSON encoded to stderr.
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Debug, ServiceName: "tech-report-api"})
//	log.Info("Request served", nil, map[string]interface{}{"endpoint": "adoption"})
//	log.Error("Query failed", err, map[string]interface{}{"collection": "adoption"})
//
// The *WithContext variants add trace_id and span_id when Config.EnableTracing
// is set and ctx carries a valid OpenTelemetry span context.
//
// Configuration:
//
//	ZAP_LOGGER_LEVEL=debug          # debug, info, warning or error
//	SERVICE_NAME=tech-report-api    # value of the "service" field
//
// FX Module Integration:
//
//	app := fx.New(
//		logger.FXModule,
//		// ... other modules
//	)
//
// Logger is safe for concurrent use.
package logger
