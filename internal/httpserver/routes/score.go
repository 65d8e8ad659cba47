package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/wfdscore/internal/httpserver/deps"
	"github.com/MrSnakeDoc/wfdscore/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/wfdscore/internal/httpserver/mw"
)

func init() { Register(registerScore) }

func registerScore(r chi.Router, d deps.Deps) {
	r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateBurst,
		RefillPerIPPerMin: d.RateRefillPerMinute,
		MaxEntries:        10000,
		TrustProxy:        d.TrustProxy,
	})).Post("/score", handlers.Score(d))
}
