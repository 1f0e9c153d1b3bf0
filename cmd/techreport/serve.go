package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/HTTPArchive/tech-report-apis/v1/api"
	"github.com/HTTPArchive/tech-report-apis/v1/cdn"
	"github.com/HTTPArchive/tech-report-apis/v1/config"
	"github.com/HTTPArchive/tech-report-apis/v1/logger"
	"github.com/HTTPArchive/tech-report-apis/v1/metrics"
	"github.com/HTTPArchive/tech-report-apis/v1/postgres"
	"github.com/HTTPArchive/tech-report-apis/v1/query"
	"github.com/HTTPArchive/tech-report-apis/v1/redis"
	"github.com/HTTPArchive/tech-report-apis/v1/store/memory"
	"github.com/HTTPArchive/tech-report-apis/v1/tracer"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			app := newApp(cfg)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}

// newApp assembles the service from the package modules.
func newApp(cfg *config.Config) *fx.App {
	return fx.New(
		fx.Supply(
			cfg.Logger,
			cfg.Tracer,
			cfg.Metrics,
			cfg.CDN,
			apiConfig(cfg),
		),
		fx.WithLogger(func(log *logger.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Zap}
		}),
		logger.FXModule,
		fx.Provide(func(log *logger.Logger) tracer.Logger { return log }),
		tracer.FXModule,
		metrics.FXModule,
		fx.Provide(cdn.NewSigner),
		storageModule(cfg),
		cacheModule(cfg),
		api.FXModule,
	)
}

func apiConfig(cfg *config.Config) api.Config {
	return api.Config{
		Addr:              cfg.Server.Addr(),
		CacheMaxAge:       cfg.Server.CacheMaxAge,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ShutdownTimeout:   cfg.Server.ShutdownTimeout,
		RateLimitRequests: cfg.Server.RateLimitRequests,
		RateLimitWindow:   cfg.Server.RateLimitWindow,
	}
}

// storageModule provides the configured query.Store.
func storageModule(cfg *config.Config) fx.Option {
	if cfg.Storage.Backend == config.BackendMemory {
		path := cfg.Storage.FixturePath
		return fx.Provide(func(log *logger.Logger) (query.Store, error) {
			if path == "" {
				log.Warn("Serving from an empty in-memory store", nil, nil)
				return memory.New(), nil
			}
			store, err := memory.LoadFile(path)
			if err != nil {
				return nil, err
			}
			log.Info("Loaded fixture into memory store", nil, map[string]interface{}{"path": path})
			return store, nil
		})
	}

	return fx.Options(
		fx.Supply(cfg.Postgres),
		fx.Provide(func(log *logger.Logger) postgres.Logger { return log }),
		postgres.FXModule,
		fx.Provide(func(store *postgres.DocumentStore) query.Store { return store }),
	)
}

// cacheModule puts the Redis result cache in front of the store when enabled.
func cacheModule(cfg *config.Config) fx.Option {
	if !cfg.Cache.Enabled {
		return fx.Options()
	}
	return fx.Options(
		fx.Supply(cfg.Cache),
		fx.Provide(func(log *logger.Logger) redis.Logger { return log }),
		redis.FXModule,
		fx.Decorate(redis.DecorateStore),
	)
}
