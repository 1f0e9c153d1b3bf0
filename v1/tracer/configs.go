package tracer

// Config describes the OpenTelemetry resource and exporter.
type Config struct {
	// ServiceName is recorded as service.name on every span.
	ServiceName string `koanf:"service_name"`

	// AppEnv is recorded as deployment.environment.
	AppEnv string `koanf:"app_env"`

	// EnableExport sends spans to the OTLP/HTTP endpoint configured through the
	// standard OTEL_EXPORTER_OTLP_* variables. When false spans are created but
	// never leave the process.
	EnableExport bool `koanf:"enable_export"`
}
