package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openboard-labs/miroview-cli/internal/core/domain"
)

// errorBody is the structured error shape every front-end surfaces instead
// of a raw failure.
type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// errorKind maps a domain error onto a stable error kind and HTTP status.
func errorKind(err error) (string, int) {
	switch {
	case errors.Is(err, domain.ErrInvalidParameters):
		return "invalid_parameters", http.StatusBadRequest
	case errors.Is(err, domain.ErrBoardNotFound):
		return "board_not_found", http.StatusNotFound
	case errors.Is(err, domain.ErrItemNotFound):
		return "item_not_found", http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited", http.StatusTooManyRequests
	case errors.Is(err, domain.ErrTokenMissing):
		return "token_missing", http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "upstream_unavailable", http.StatusBadGateway
	default:
		return "internal", http.StatusInternalServerError
	}
}

// writeJSON writes a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// writeError writes the structured error shape for a query failure.
func writeError(w http.ResponseWriter, err error) {
	kind, status := errorKind(err)
	writeJSON(w, status, map[string]any{
		"error": errorBody{Kind: kind, Message: err.Error()},
	})
}
