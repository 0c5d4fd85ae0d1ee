package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/flarehq/flare/internal/domain"
	"github.com/flarehq/flare/internal/httpserver/deps"
)

type appRequest struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	Icon       string `json:"icon"`
	CategoryID int64  `json:"categoryId"`
	IsPinned   *bool  `json:"isPinned,omitempty"`
}

type reorderRequest struct {
	CategoryID int64   `json:"categoryId"`
	IDs        []int64 `json:"ids"`
}

// GetApps is the catalog read: runs discovery + reconciliation when
// enabled, then returns the ranked app list.
func GetApps(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apps, err := d.Catalog.GetApps(r.Context())
		if err != nil {
			respondDomainError(d, w, err)
			return
		}
		// Containers come and go between requests; never cache.
		w.Header().Set("Cache-Control", "no-store")
		respond(w, http.StatusOK, apps)
	}
}

func GetApp(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		app, err := d.Catalog.GetApp(r.Context(), id)
		if err != nil {
			respondDomainError(d, w, err)
			return
		}
		respond(w, http.StatusOK, app)
	}
}

func CreateApp(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req appRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name == "" || req.URL == "" {
			respondError(w, http.StatusBadRequest, "name and url are required")
			return
		}
		if req.CategoryID == 0 {
			req.CategoryID = domain.DefaultCategoryID
		}

		app, err := d.Catalog.CreateApp(r.Context(), &domain.App{
			Name:       req.Name,
			URL:        req.URL,
			Icon:       req.Icon,
			CategoryID: req.CategoryID,
		})
		if err != nil {
			respondDomainError(d, w, err)
			return
		}
		respond(w, http.StatusCreated, app)
	}
}

func UpdateApp(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req appRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		existing, err := d.Catalog.GetApp(r.Context(), id)
		if err != nil {
			respondDomainError(d, w, err)
			return
		}
		if req.Name != "" {
			existing.Name = req.Name
		}
		if req.URL != "" {
			existing.URL = req.URL
		}
		if req.Icon != "" {
			existing.Icon = req.Icon
		}
		if req.CategoryID != 0 {
			existing.CategoryID = req.CategoryID
		}
		if req.IsPinned != nil {
			existing.IsPinned = *req.IsPinned
		}

		app, err := d.Catalog.UpdateApp(r.Context(), existing)
		if err != nil {
			respondDomainError(d, w, err)
			return
		}
		respond(w, http.StatusOK, app)
	}
}

func DeleteApp(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := d.Catalog.DeleteApp(r.Context(), id); err != nil {
			respondDomainError(d, w, err)
			return
		}
		respond(w, http.StatusOK, struct{}{})
	}
}

// ReorderApps persists a manual order for one category. Rejected with
// 422 unless the active ordering policy is orderId.
func ReorderApps(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reorderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(req.IDs) == 0 {
			respondError(w, http.StatusBadRequest, "ids are required")
			return
		}
		if err := d.Catalog.ReorderApps(r.Context(), req.CategoryID, req.IDs); err != nil {
			respondDomainError(d, w, err)
			return
		}
		respond(w, http.StatusOK, struct{}{})
	}
}

// pathID parses the {id} route parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
