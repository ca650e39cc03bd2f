// Package httpapi serves a small read-only status API next to the bot.
package httpapi

import (
	"context"

	"dungeonbot/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Pinger reports whether the database is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewRouter builds the status API routes
func NewRouter(db Pinger, users service.UserService) *chi.Mux {
	h := &handlers{db: db, users: users}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/users/{id}", h.user)
		r.Get("/leaderboard", h.leaderboard)
	})
	return r
}
