package logger

// Supported log levels.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls the level and static fields of the service logger.
type Config struct {
	// Level is one of debug, info, warning or error. Anything else is treated as info.
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warning error"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `koanf:"service_name"`

	// EnableTracing adds trace_id and span_id to entries logged with a context
	// that carries an active span.
	EnableTracing bool `koanf:"enable_tracing"`
}
