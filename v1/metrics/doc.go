// Package metrics exposes Prometheus metrics for the API.
//
// NewMetrics registers, on an isolated registry:
//   - http_requests_total{endpoint,status} and http_request_duration_seconds{endpoint}
//   - queries_total{endpoint,outcome} and query_duration_seconds{endpoint}
//   - query_sub_queries{endpoint}, the fan-out width of each endpoint query
//
// *Metrics satisfies query.Observer and can be handed to the translator:
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "tech-report-api"})
//	tr := query.NewTranslator(store, query.WithObserver(m))
//
// With FXModule the registry is served on Config.Address under /metrics.
package metrics
