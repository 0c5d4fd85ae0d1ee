package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/flarehq/flare/internal/domain"
	"github.com/flarehq/flare/internal/httpserver/deps"
)

type bookmarkRequest struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	Icon       string `json:"icon"`
	CategoryID int64  `json:"categoryId"`
	IsPinned   *bool  `json:"isPinned,omitempty"`
}

func GetBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmarks, err := d.Catalog.GetBookmarks(r.Context())
		if err != nil {
			respondDomainError(d, w, err)
			return
		}
		respond(w, http.StatusOK, bookmarks)
	}
}

func GetBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		bookmark, err := d.Catalog.GetBookmark(r.Context(), id)
		if err != nil {
			respondDomainError(d, w, err)
			return
		}
		respond(w, http.StatusOK, bookmark)
	}
}

func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bookmarkRequest
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

		bookmark, err := d.Catalog.CreateBookmark(r.Context(), &domain.Bookmark{
			Name:       req.Name,
			URL:        req.URL,
			Icon:       req.Icon,
			CategoryID: req.CategoryID,
		})
		if err != nil {
			respondDomainError(d, w, err)
			return
		}
		respond(w, http.StatusCreated, bookmark)
	}
}

func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req bookmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		existing, err := d.Catalog.GetBookmark(r.Context(), id)
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

		bookmark, err := d.Catalog.UpdateBookmark(r.Context(), existing)
		if err != nil {
			respondDomainError(d, w, err)
			return
		}
		respond(w, http.StatusOK, bookmark)
	}
}

func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := d.Catalog.DeleteBookmark(r.Context(), id); err != nil {
			respondDomainError(d, w, err)
			return
		}
		respond(w, http.StatusOK, struct{}{})
	}
}

func ReorderBookmarks(d deps.Deps) http.HandlerFunc {
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
		if err := d.Catalog.ReorderBookmarks(r.Context(), req.CategoryID, req.IDs); err != nil {
			respondDomainError(d, w, err)
			return
		}
		respond(w, http.StatusOK, struct{}{})
	}
}
