package api

import (
	"context"
	"errors"
	"net"
	"net/http"

	"go.uber.org/fx"

	"github.com/HTTPArchive/tech-report-apis/v1/cdn"
	"github.com/HTTPArchive/tech-report-apis/v1/logger"
	"github.com/HTTPArchive/tech-report-apis/v1/metrics"
	"github.com/HTTPArchive/tech-report-apis/v1/query"
	"github.com/HTTPArchive/tech-report-apis/v1/tracer"
)

// FXModule provides the API server and runs it for the lifetime of the application.
//
// Dependencies required by this module:
//   - an api.Config
//   - a query.Store
//   - a *logger.Logger
//
// *metrics.Metrics, *tracer.Tracer and *cdn.Signer are used when provided.
var FXModule = fx.Module("api",
	fx.Provide(NewServerWithDI),
	fx.Invoke(RegisterServerLifecycle),
)

// ServerParams groups the dependencies needed to create the server.
type ServerParams struct {
	fx.In

	Config  Config
	Store   query.Store
	Logger  *logger.Logger
	Metrics *metrics.Metrics `optional:"true"`
	Tracer  *tracer.Tracer   `optional:"true"`
	Signer  *cdn.Signer      `optional:"true"`
}

// NewServerWithDI creates the server from injected dependencies.
func NewServerWithDI(p ServerParams) *Server {
	return NewServer(p.Config, Deps{
		Store:   p.Store,
		Logger:  p.Logger,
		Metrics: p.Metrics,
		Tracer:  p.Tracer,
		Signer:  p.Signer,
	})
}

// RegisterServerLifecycle binds the listener on start and drains connections on stop.
func RegisterServerLifecycle(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", s.HTTP.Addr)
			if err != nil {
				return err
			}
			s.logger.Info("Server listening", nil, map[string]interface{}{"address": ln.Addr().String()})

			go func() {
				if err := s.HTTP.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.logger.Error("HTTP server stopped unexpectedly", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if s.cfg.ShutdownTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
				defer cancel()
			}
			s.logger.Info("Shutting down HTTP server", nil, nil)
			return s.HTTP.Shutdown(ctx)
		},
	})
}
