package api

import (
	"net/http"
	"time"

	"github.com/HTTPArchive/tech-report-apis/v1/cdn"
	"github.com/HTTPArchive/tech-report-apis/v1/logger"
	"github.com/HTTPArchive/tech-report-apis/v1/metrics"
	"github.com/HTTPArchive/tech-report-apis/v1/query"
	"github.com/HTTPArchive/tech-report-apis/v1/tracer"
)

// DefaultCacheMaxAge is the Cache-Control max-age, in seconds, of API responses.
const DefaultCacheMaxAge = 21600

// Config configures the HTTP server.
type Config struct {
	Addr            string
	CacheMaxAge     int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// RateLimitRequests per RateLimitWindow and client IP; zero disables limiting.
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Deps are the collaborators of the server. Store and Logger are required.
type Deps struct {
	Store   query.Store
	Logger  *logger.Logger
	Metrics *metrics.Metrics
	Tracer  *tracer.Tracer
	Signer  *cdn.Signer
}

// Server serves the tech report endpoints over HTTP.
type Server struct {
	cfg        Config
	logger     *logger.Logger
	metrics    *metrics.Metrics
	tracer     *tracer.Tracer
	signer     *cdn.Signer
	translator *query.Translator

	// HTTP is the underlying server; its handler is the API router.
	HTTP *http.Server
}

// NewServer wires the translator to the store and builds the router.
func NewServer(cfg Config, deps Deps) *Server {
	if cfg.CacheMaxAge < 0 {
		cfg.CacheMaxAge = DefaultCacheMaxAge
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}

	opts := []query.Option{query.WithLogger(log)}
	if deps.Metrics != nil {
		opts = append(opts, query.WithObserver(deps.Metrics))
	}

	s := &Server{
		cfg:        cfg,
		logger:     log,
		metrics:    deps.Metrics,
		tracer:     deps.Tracer,
		signer:     deps.Signer,
		translator: query.NewTranslator(deps.Store, opts...),
	}
	s.HTTP = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}
