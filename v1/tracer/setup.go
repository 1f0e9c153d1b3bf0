package tracer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// instrumentationName names the tracer spans are created with.
const instrumentationName = "github.com/HTTPArchive/tech-report-apis"

// Logger is the logging surface used by the tracer package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Tracer owns the process tracer provider.
type Tracer struct {
	tracer     *trace.TracerProvider
	propagator propagation.TextMapPropagator
	logger     Logger
}

// NewClient creates the tracer provider and installs it, together with the
// W3C trace-context and baggage propagators, as the otel globals.
func NewClient(cfg Config, logger Logger) (*Tracer, error) {
	var options []trace.TracerProviderOption

	if cfg.EnableExport {
		exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient())
		if err != nil {
			logger.Error("cannot initiate tracer exporter", err, nil)
			return nil, err
		}
		options = append(options, trace.WithBatcher(exporter))
	}

	t := newTracer(cfg, logger, options...)
	otel.SetTracerProvider(t.tracer)
	otel.SetTextMapPropagator(t.propagator)
	return t, nil
}

// newTracer builds a Tracer without touching the otel globals.
func newTracer(cfg Config, logger Logger, options ...trace.TracerProviderOption) *Tracer {
	options = append(options, trace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))

	return &Tracer{
		tracer:     trace.NewTracerProvider(options...),
		propagator: propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}),
		logger:     logger,
	}
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.tracer == nil {
		return nil
	}
	return t.tracer.Shutdown(ctx)
}
