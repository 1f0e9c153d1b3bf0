package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// responseHeaders sets the headers shared by every API response.
func (s *Server) responseHeaders(next http.Handler) http.Handler {
	cacheControl := "public, max-age=" + strconv.Itoa(s.cfg.CacheMaxAge)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Type", "application/json")
		h.Set("Cache-Control", cacheControl)
		h.Set("Timing-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}

// observe records request metrics and, with a tracer, a server span per request.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		if s.tracer != nil {
			ctx = s.tracer.ExtractHTTP(ctx, r.Header)
		}
		ctx, span := s.startSpan(ctx, "http.request", map[string]interface{}{
			"http.method": r.Method,
			"http.target": r.URL.Path,
		})
		defer span.End()

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routePattern(r)
		s.setAttributes(span, map[string]interface{}{
			"http.route":       route,
			"http.status_code": status,
		})
		if s.metrics != nil {
			s.metrics.RecordRequest(route, status, start)
		}
		if status >= http.StatusInternalServerError {
			s.logger.WarnWithContext(ctx, "Request failed", nil, map[string]interface{}{
				"route":  route,
				"status": status,
			})
		}
	})
}

// routePattern returns the matched chi pattern, or "unmatched".
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

func (s *Server) startSpan(ctx context.Context, name string, attrs map[string]interface{}) (context.Context, trace.Span) {
	if s.tracer == nil {
		return ctx, noop.Span{}
	}
	ctx, span := s.tracer.StartSpan(ctx, name)
	s.tracer.SetAttributes(span, attrs)
	return ctx, span
}

func (s *Server) setAttributes(span trace.Span, attrs map[string]interface{}) {
	if s.tracer != nil {
		s.tracer.SetAttributes(span, attrs)
	}
}

func (s *Server) recordError(span trace.Span, err error) {
	if s.tracer != nil {
		s.tracer.RecordErrorOnSpan(span, err)
	}
}
