package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flarehq/flare/internal/domain"
	"github.com/flarehq/flare/internal/httpserver/deps"
	"github.com/flarehq/flare/internal/logger"
)

// envelope is the response shape used by every API handler.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: msg})
}

// respondDomainError maps the engine's error taxonomy onto HTTP
// statuses: policy mismatch is a user-facing rejection, conflict is
// retryable, everything unexpected is a hard 500.
func respondDomainError(d deps.Deps, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrPolicyMismatch):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrConflict):
		respondError(w, http.StatusConflict, err.Error())
	default:
		d.Logger.Error("request failed", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
