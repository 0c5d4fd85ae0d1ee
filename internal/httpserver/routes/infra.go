package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/flarehq/flare/internal/httpserver/deps"
	"github.com/flarehq/flare/internal/httpserver/handlers"
)

func init() { Register(registerInfra) }

func registerInfra(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.Get("/readyz", handlers.Readyz(d))
}
