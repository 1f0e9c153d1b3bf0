// Package postgres stores report documents in PostgreSQL and serves them to
// the query translator.
//
// Every collection lives in one JSONB table keyed by (collection, id). A
// query.QuerySpec is rendered to SQL with squirrel and executed through GORM;
// filter fields are addressed with the ->> and -> operators and must be plain
// identifiers.
//
// Core Features:
//   - Connection pooling with health monitoring and transparent reconnection
//   - query.Store implementation (DocumentStore) with sort, limit and field selection
//   - Batched upserts for loading collections
//   - Translation of driver errors into package sentinels
//
// Basic Usage:
//
//	import (
//		"github.com/HTTPArchive/tech-report-apis/v1/logger"
//		"github.com/HTTPArchive/tech-report-apis/v1/postgres"
//	)
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Info})
//
//	pg, err := postgres.NewPostgres(postgres.Config{
//		Connection: postgres.Connection{
//			Host:     "localhost",
//			Port:     "5432",
//			User:     "postgres",
//			Password: "password",
//			DbName:   "tech-report",
//			SSLMode:  "disable",
//		},
//	}, log)
//	if err != nil {
//		log.Fatal("Failed to connect to database", err, nil)
//	}
//
//	store, err := postgres.NewDocumentStore(pg)
//	if err != nil {
//		log.Fatal("Failed to create document store", err, nil)
//	}
//	docs, err := store.Query(ctx, query.QuerySpec{Collection: "technologies"})
//
// Comparison Semantics:
//
// Equality and set membership compare the text form of a field, so the
// operand "1" matches both the number 1 and the string "1". Range operators
// compare jsonb values: an operand that is a JSON number is compared
// numerically, anything else is compared as a string. Dates stored as
// YYYY-MM-DD strings therefore order correctly.
//
// FX Module Integration:
//
//	app := fx.New(
//		logger.FXModule,
//		postgres.FXModule,
//		// ... other modules
//	)
//	app.Run()
//
// Error Handling:
//
// Store methods return translated errors. Use errors.Is with the sentinels
// of this package, and IsRetryable to tell transient failures apart:
//
//	if _, err := store.Query(ctx, spec); errors.Is(err, postgres.ErrUndefinedTable) {
//		// schema missing, run with auto_migrate enabled
//	}
//
// Thread Safety:
//
// Postgres and DocumentStore are safe for concurrent use by multiple goroutines.
package postgres
