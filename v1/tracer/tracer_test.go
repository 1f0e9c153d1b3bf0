package tracer

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}

func newRecordingTracer() (*Tracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	t := newTracer(Config{ServiceName: "tech-report-api", AppEnv: "test"}, nopLogger{},
		sdktrace.WithSpanProcessor(recorder))
	return t, recorder
}

func TestStartSpanRecordsAttributesAndErrors(t *testing.T) {
	tr, recorder := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), "query.adoption")
	tr.SetAttributes(span, map[string]interface{}{
		"collection":  "adoption",
		"sub_queries": 3,
		"values":      []string{"React", "Vue.js"},
		"other":       struct{ A int }{1},
	})
	tr.RecordErrorOnSpan(span, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	got := spans[0]
	assert.Equal(t, "query.adoption", got.Name())
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Equal(t, "boom", got.Status().Description)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range got.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "adoption", attrs["collection"].AsString())
	assert.Equal(t, int64(3), attrs["sub_queries"].AsInt64())
	assert.Equal(t, []string{"React", "Vue.js"}, attrs["values"].AsStringSlice())
	assert.Equal(t, "{1}", attrs["other"].AsString())
}

func TestCarrierRoundTrip(t *testing.T) {
	tr, _ := newRecordingTracer()

	ctx, span := tr.StartSpan(context.Background(), "parent")
	defer span.End()

	carrier := tr.GetCarrier(ctx)
	require.Contains(t, carrier, "traceparent")

	restored := tr.SetCarrierOnContext(context.Background(), carrier)
	_, child := tr.StartSpan(restored, "child")
	defer child.End()
	assert.Equal(t, span.SpanContext().TraceID(), child.SpanContext().TraceID())

	header := http.Header{}
	header.Set("traceparent", carrier["traceparent"])
	fromHTTP := tr.ExtractHTTP(context.Background(), header)
	_, httpChild := tr.StartSpan(fromHTTP, "http")
	defer httpChild.End()
	assert.Equal(t, span.SpanContext().TraceID(), httpChild.SpanContext().TraceID())
}
