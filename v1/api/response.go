package api

import (
	"net/http"

	"github.com/goccy/go-json"
)

type errorItem struct {
	Error string `json:"error"`
}

type errorResponse struct {
	Errors []errorItem `json:"errors"`
}

// writeJSON encodes v with status. Headers set by middleware are kept.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"errors":[{"error":"Failed to encode response"}]}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// writeError writes {"errors":[{"error":message}]}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Errors: []errorItem{{Error: message}}})
}
