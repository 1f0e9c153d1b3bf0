package redis

import (
	"context"

	"go.uber.org/fx"

	"github.com/HTTPArchive/tech-report-apis/v1/query"
)

// FXModule provides the Redis client. Decorators only reach the scope they
// are declared in, so DecorateStore is applied by the application root.
//
// Usage:
//
//	app := fx.New(
//	    fx.Provide(func() redis.Config { return cfg.Cache }),
//	    redis.FXModule,
//	    fx.Decorate(redis.DecorateStore),
//	    // modules providing query.Store and consuming it...
//	)
var FXModule = fx.Module("redis",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterRedisLifecycle),
)

// RedisParams groups the dependencies needed to create a Redis client
type RedisParams struct {
	fx.In

	Config Config
	Logger Logger
}

// NewClientWithDI creates a new Redis client from injected dependencies.
func NewClientWithDI(params RedisParams) (*RedisClient, error) {
	return NewClient(params.Config, params.Logger)
}

// DecorateStore wraps store with a Cache backed by client.
func DecorateStore(store query.Store, client *RedisClient) query.Store {
	return NewCache(client, store)
}

// RedisLifecycleParams groups the dependencies needed for Redis lifecycle management
type RedisLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *RedisClient
}

// RegisterRedisLifecycle pings Redis on start and closes the client on stop.
// An unreachable server does not block startup; queries fall through to the
// wrapped store until it recovers.
func RegisterRedisLifecycle(params RedisLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := params.Client.Ping(ctx); err != nil {
				params.Client.logger.Warn("Failed to ping Redis on startup", err, nil)
				return nil
			}
			params.Client.logger.Info("Redis client started and healthy", nil, nil)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return params.Client.Close()
		},
	})
}
