package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/flarehq/flare/internal/domain"
	"github.com/flarehq/flare/internal/httpserver/deps"
)

type categoryRequest struct {
	Name     string              `json:"name"`
	Type     domain.CategoryType `json:"type"`
	IsPinned *bool               `json:"isPinned,omitempty"`
}

type categoryReorderRequest struct {
	IDs []int64 `json:"ids"`
}

func GetCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typ := domain.CategoryType(r.URL.Query().Get("type"))
		switch typ {
		case "", domain.CategoryApps, domain.CategoryBookmarks:
		default:
			respondError(w, http.StatusBadRequest, "unknown category type")
			return
		}

		categories, err := d.Catalog.GetCategories(r.Context(), typ)
		if err != nil {
			respondDomainError(d, w, err)
			return
		}
		respond(w, http.StatusOK, categories)
	}
}

func GetCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		category, err := d.Catalog.GetCategory(r.Context(), id)
		if err != nil {
			respondDomainError(d, w, err)
			return
		}
		respond(w, http.StatusOK, category)
	}
}

func CreateCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name == "" {
			respondError(w, http.StatusBadRequest, "name is required")
			return
		}
		if req.Type != domain.CategoryApps && req.Type != domain.CategoryBookmarks {
			respondError(w, http.StatusBadRequest, "type must be apps or bookmarks")
			return
		}

		category, err := d.Catalog.CreateCategory(r.Context(), &domain.Category{
			Name: req.Name,
			Type: req.Type,
		})
		if err != nil {
			respondDomainError(d, w, err)
			return
		}
		respond(w, http.StatusCreated, category)
	}
}

func UpdateCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		existing, err := d.Catalog.GetCategory(r.Context(), id)
		if err != nil {
			respondDomainError(d, w, err)
			return
		}
		if req.Name != "" {
			existing.Name = req.Name
		}
		if req.IsPinned != nil {
			existing.IsPinned = *req.IsPinned
		}

		category, err := d.Catalog.UpdateCategory(r.Context(), existing)
		if err != nil {
			respondDomainError(d, w, err)
			return
		}
		respond(w, http.StatusOK, category)
	}
}

func DeleteCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if id == domain.DefaultCategoryID {
			respondError(w, http.StatusBadRequest, "the default category cannot be deleted")
			return
		}
		if err := d.Catalog.DeleteCategory(r.Context(), id); err != nil {
			respondDomainError(d, w, err)
			return
		}
		respond(w, http.StatusOK, struct{}{})
	}
}

func ReorderCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryReorderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(req.IDs) == 0 {
			respondError(w, http.StatusBadRequest, "ids are required")
			return
		}
		if err := d.Catalog.ReorderCategories(r.Context(), req.IDs); err != nil {
			respondDomainError(d, w, err)
			return
		}
		respond(w, http.StatusOK, struct{}{})
	}
}
