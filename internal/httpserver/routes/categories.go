package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/flarehq/flare/internal/httpserver/deps"
	"github.com/flarehq/flare/internal/httpserver/handlers"
)

func init() { Register(registerCategories) }

func registerCategories(r chi.Router, d deps.Deps) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", handlers.GetCategories(d))
		r.Post("/", handlers.CreateCategory(d))
		r.Put("/reorder", handlers.ReorderCategories(d))
		r.Get("/{id}", handlers.GetCategory(d))
		r.Put("/{id}", handlers.UpdateCategory(d))
		r.Delete("/{id}", handlers.DeleteCategory(d))
	})
}
