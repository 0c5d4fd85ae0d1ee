package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/flarehq/flare/internal/httpserver/deps"
	"github.com/flarehq/flare/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Route("/api/bookmarks", func(r chi.Router) {
		r.Get("/", handlers.GetBookmarks(d))
		r.Post("/", handlers.CreateBookmark(d))
		r.Put("/reorder", handlers.ReorderBookmarks(d))
		r.Get("/{id}", handlers.GetBookmark(d))
		r.Put("/{id}", handlers.UpdateBookmark(d))
		r.Delete("/{id}", handlers.DeleteBookmark(d))
	})
}
