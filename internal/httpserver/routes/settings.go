package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/flarehq/flare/internal/httpserver/deps"
	"github.com/flarehq/flare/internal/httpserver/handlers"
)

func init() { Register(registerSettings) }

func registerSettings(r chi.Router, d deps.Deps) {
	r.Get("/api/settings", handlers.GetSettings(d))
	r.Put("/api/settings", handlers.UpdateSettings(d))
	r.Post("/api/settings/refresh", handlers.TriggerRefresh(d))
}
