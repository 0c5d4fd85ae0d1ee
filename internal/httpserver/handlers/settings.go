package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/flarehq/flare/internal/domain"
	"github.com/flarehq/flare/internal/httpserver/deps"
)

func GetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		set, err := d.Catalog.Settings(r.Context())
		if err != nil {
			respondDomainError(d, w, err)
			return
		}
		respond(w, http.StatusOK, set)
	}
}

func UpdateSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.Settings
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if !req.UseOrdering.Valid() {
			respondError(w, http.StatusBadRequest, "useOrdering must be createdAt, name or orderId")
			return
		}

		set, err := d.Catalog.UpdateSettings(r.Context(), req)
		if err != nil {
			respondDomainError(d, w, err)
			return
		}
		respond(w, http.StatusOK, set)
	}
}

// TriggerRefresh kicks the discovery scheduler without waiting for the
// next tick. Non-blocking: if a refresh is already queued, this one is
// dropped.
func TriggerRefresh(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.RefreshTrigger == nil {
			respondError(w, http.StatusServiceUnavailable, "discovery scheduler is disabled")
			return
		}
		select {
		case d.RefreshTrigger <- struct{}{}:
		default:
		}
		respond(w, http.StatusAccepted, struct{}{})
	}
}
