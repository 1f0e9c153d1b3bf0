package query

import (
	"context"
	"time"
)

//go:generate mockgen -source=interface.go -destination=mocks/store_mock.go -package=mocks

// Store is the storage collaborator the translator reads from.
// Any implementation honouring the QuerySpec semantics is substitutable.
type Store interface {
	// Query returns the documents of spec.Collection matching every clause,
	// ordered by spec.Sort, capped at spec.Limit and reduced to spec.Select
	// when those are set.
	Query(ctx context.Context, spec QuerySpec) ([]Document, error)

	// MaxValue returns the largest value of field in collection. The boolean
	// is false when no document carries the field.
	MaxValue(ctx context.Context, collection, field string) (any, bool, error)
}

// Logger is the logging surface the translator needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Observer receives one call per executed endpoint query.
type Observer interface {
	ObserveQuery(endpoint string, subQueries int, elapsed time.Duration, err error)
}
