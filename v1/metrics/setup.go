package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors and the server exposing them.
type Metrics struct {
	// Server serves the registry on /metrics.
	Server *http.Server

	// Registry is isolated from the global default registry.
	Registry *prometheus.Registry

	enabled bool

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	queriesTotal    *prometheus.CounterVec
	queryDuration   *prometheus.HistogramVec
	subQueries      *prometheus.HistogramVec
}

// NewMetrics creates the registry and registers the HTTP and query collectors.
// Every series carries a constant "service" label.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
		enabled:  cfg.Enabled,
	}

	ns := cfg.Namespace
	m.requestsTotal = createCounterVec(ns, "http_requests_total", "Total number of served HTTP requests", []string{"endpoint", "status"})
	m.requestDuration = createHistogramVec(ns, "http_request_duration_seconds", "Duration of HTTP requests in seconds", []string{"endpoint"}, prometheus.DefBuckets)
	m.queriesTotal = createCounterVec(ns, "queries_total", "Total number of translated endpoint queries", []string{"endpoint", "outcome"})
	m.queryDuration = createHistogramVec(ns, "query_duration_seconds", "Duration of endpoint queries against the store in seconds", []string{"endpoint"}, prometheus.DefBuckets)
	m.subQueries = createHistogramVec(ns, "query_sub_queries", "Number of store queries issued per endpoint query", []string{"endpoint"}, []float64{1, 2, 5, 10, 20, 30})

	wrappedRegistry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.queriesTotal,
		m.queryDuration,
		m.subQueries,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	m.Server = &http.Server{
		Addr:    cfg.address(),
		Handler: mux,
	}
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
