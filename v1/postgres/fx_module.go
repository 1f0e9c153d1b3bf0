package postgres

import (
	"context"
	"sync"

	"go.uber.org/fx"
)

// FXModule provides the PostgreSQL connection and the document store
// built on it, and registers the connection monitoring lifecycle.
//
// Usage:
//
//	app := fx.New(
//		logger.FXModule,
//		postgres.FXModule,
//		fx.Provide(func() postgres.Config { return cfg.Postgres }),
//	)
//
// Dependencies required by this module:
//   - a postgres.Config
//   - a postgres.Logger
var FXModule = fx.Module("postgres",
	fx.Provide(
		NewPostgresClientWithDI,
		NewDocumentStore,
	),
	fx.Invoke(RegisterPostgresLifecycle),
)

// PostgresParams groups the dependencies needed to create a Postgres client.
type PostgresParams struct {
	fx.In

	Config Config
	Logger Logger
}

// NewPostgresClientWithDI creates the Postgres client from injected dependencies.
func NewPostgresClientWithDI(params PostgresParams) (*Postgres, error) {
	return NewPostgres(params.Config, params.Logger)
}

// PostgresLifeCycleParams groups the dependencies needed for lifecycle registration.
type PostgresLifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Postgres  *Postgres
	Store     *DocumentStore
}

// RegisterPostgresLifecycle creates the schema when configured, runs the
// monitor and retry loops for the lifetime of the application and closes
// the pool on stop.
func RegisterPostgresLifecycle(params PostgresLifeCycleParams) {
	wg := &sync.WaitGroup{}
	loopCtx, cancel := context.WithCancel(context.Background())

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if params.Postgres.cfg.AutoMigrate {
				if err := params.Store.EnsureSchema(ctx); err != nil {
					cancel()
					return err
				}
			}

			wg.Add(2)
			go func() {
				defer wg.Done()
				params.Postgres.MonitorConnection(loopCtx)
			}()
			go func() {
				defer wg.Done()
				params.Postgres.RetryConnection(loopCtx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			params.Postgres.closeShutdownOnce.Do(func() {
				close(params.Postgres.shutdownSignal)
			})
			cancel()
			wg.Wait()

			sqlDB, err := params.Postgres.DB().DB()
			if err != nil {
				return nil
			}
			return sqlDB.Close()
		},
	})
}
