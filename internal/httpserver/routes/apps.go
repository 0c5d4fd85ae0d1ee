package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/flarehq/flare/internal/httpserver/deps"
	"github.com/flarehq/flare/internal/httpserver/handlers"
)

func init() { Register(registerApps) }

func registerApps(r chi.Router, d deps.Deps) {
	r.Route("/api/apps", func(r chi.Router) {
		r.Get("/", handlers.GetApps(d))
		r.Post("/", handlers.CreateApp(d))
		r.Put("/reorder", handlers.ReorderApps(d))
		r.Get("/{id}", handlers.GetApp(d))
		r.Put("/{id}", handlers.UpdateApp(d))
		r.Delete("/{id}", handlers.DeleteApp(d))
	})
}
