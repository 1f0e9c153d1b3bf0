package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Query outcomes recorded on queries_total.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// RecordRequest counts a served HTTP request and observes its duration.
func (m *Metrics) RecordRequest(endpoint string, status int, start time.Time) {
	m.requestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// ObserveQuery records one executed endpoint query. It satisfies query.Observer.
func (m *Metrics) ObserveQuery(endpoint string, subQueries int, elapsed time.Duration, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.queriesTotal.WithLabelValues(endpoint, outcome).Inc()
	m.queryDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	m.subQueries.WithLabelValues(endpoint).Observe(float64(subQueries))
}

func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}
