package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/wfdscore/internal/httpserver/deps"
	"github.com/MrSnakeDoc/wfdscore/internal/httpserver/handlers"
)

func init() { Register(registerLive) }

func registerLive(r chi.Router, d deps.Deps) {
	r.Get("/live", handlers.Live(d))
}
