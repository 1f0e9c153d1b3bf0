package tracer

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *Tracer from a tracer.Config and flushes pending spans
// on shutdown.
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle shuts the tracer provider down when the application stops.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if tracer == nil {
				return nil
			}
			tracer.logger.Info("shutting down tracer", nil)
			return tracer.Shutdown(ctx)
		},
	})
}
