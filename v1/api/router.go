package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/HTTPArchive/tech-report-apis/v1/catalog"
)

// Router builds the API handler. Every route is served both at the root and
// under /v1.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Timing-Allow-Origin"},
		MaxAge:         86400,
	}))
	if s.cfg.RateLimitRequests > 0 {
		r.Use(httprate.Limit(
			s.cfg.RateLimitRequests,
			s.cfg.RateLimitWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				writeError(w, http.StatusTooManyRequests, "Too many requests")
			}),
		))
	}
	r.Use(s.responseHeaders)
	r.Use(s.observe)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	s.routes(r)
	r.Route("/v1", s.routes)
	return r
}

func (s *Server) routes(r chi.Router) {
	r.Get("/", s.health)
	for _, name := range catalog.Names() {
		endpoint, _ := catalog.Lookup(name)
		r.Get("/"+name, s.endpoint(endpoint))
	}
	r.Get("/cdn/signed-params", s.signedParams)
}
