package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/HTTPArchive/tech-report-apis/v1/cdn"
	"github.com/HTTPArchive/tech-report-apis/v1/query"
)

type healthResponse struct {
	Status string `json:"status"`
}

type signedParamsResponse struct {
	URLPrefix    string           `json:"urlPrefix"`
	SignedParams cdn.SignedParams `json:"signedParams"`
	ExpiresAt    string           `json:"expiresAt"`
}

type messageResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// endpoint serves one catalog endpoint: 200 with the payload, 400 with the
// validation errors, 500 when storage fails.
func (s *Server) endpoint(e query.Endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		params := query.NewParameterSet(r.URL.Query())

		ctx, span := s.startSpan(ctx, "query."+e.Name, map[string]interface{}{
			"endpoint":   e.Name,
			"collection": e.Collection,
			"parameters": params.Keys(),
		})
		defer span.End()

		result, err := s.translator.Run(ctx, e, params)
		if err != nil {
			s.recordError(span, err)
			s.logger.ErrorWithContext(ctx, "Failed to fetch endpoint data", err, map[string]interface{}{
				"endpoint": e.Name,
			})
			writeError(w, http.StatusInternalServerError, "Failed to fetch "+e.Name+" data")
			return
		}

		status := http.StatusOK
		if !result.OK() {
			status = http.StatusBadRequest
		}
		s.setAttributes(span, map[string]interface{}{"items": len(result.Payload()), "valid": result.OK()})
		writeJSON(w, status, result)
	}
}

func (s *Server) signedParams(w http.ResponseWriter, r *http.Request) {
	if s.signer == nil || !s.signer.Configured() {
		writeJSON(w, http.StatusInternalServerError, messageResponse{Error: cdn.ErrNotConfigured.Error()})
		return
	}

	q := r.URL.Query()
	prefix := q.Get("urlPrefix")
	if prefix == "" {
		prefix = s.signer.DefaultPrefix()
	}
	if !strings.HasSuffix(prefix, "/") {
		writeJSON(w, http.StatusBadRequest, messageResponse{Error: cdn.ErrInvalidPrefix.Error()})
		return
	}

	ttl, err := cdn.ParseExpiration(q.Get("expirationSeconds"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Error: err.Error()})
		return
	}

	params, err := s.signer.Sign(prefix, ttl)
	switch {
	case errors.Is(err, cdn.ErrInvalidPrefix), errors.Is(err, cdn.ErrInvalidExpiration):
		writeJSON(w, http.StatusBadRequest, messageResponse{Error: err.Error()})
		return
	case err != nil:
		s.logger.ErrorWithContext(r.Context(), "Failed to generate signed parameters", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Error: "Failed to generate signed parameters"})
		return
	}

	writeJSON(w, http.StatusOK, signedParamsResponse{
		URLPrefix:    prefix,
		SignedParams: params,
		ExpiresAt:    time.Unix(params.Expires, 0).UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}
