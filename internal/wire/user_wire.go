package wire

import (
	"movie-reviews/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures registration, login and profile lookup. There is no
// session: login only confirms credentials.
func wireUser(r chi.Router, userHandler *adaptor.UserHandler) {
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", userHandler.Register) // POST /api/users/register
		r.Post("/login", userHandler.Login)       // POST /api/users/login
		r.Get("/{id}", userHandler.GetUser)       // GET /api/users/{id}
	})
}
