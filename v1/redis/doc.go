// Package redis caches query results in Redis.
//
// Cache implements query.Store by wrapping another store. Query results are
// keyed by a hash of the serialized query.QuerySpec, MaxValue results by
// collection and field, and both expire after Config.TTL. A read or write
// error is logged and the wrapped store answers instead, so the cache can
// only make a request faster, never fail it.
//
// Basic Usage:
//
//	client, err := redis.NewClient(redis.Config{Host: "localhost", Port: 6379}, log)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := redis.NewCache(client, documentStore)
//	result, err := query.NewTranslator(store).Run(ctx, endpoint, params)
//
// FX Module Integration:
//
// DecorateStore wraps the query.Store already in the graph:
//
//	app := fx.New(
//		logger.FXModule,
//		postgres.FXModule,
//		redis.FXModule,
//		fx.Decorate(redis.DecorateStore),
//		api.FXModule,
//	)
package redis
