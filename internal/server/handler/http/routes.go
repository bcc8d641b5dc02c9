package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"

	"secretstore/internal/common/security"
	"secretstore/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the secrets
// access and administration API. Login is the only public endpoint; every
// other route requires a valid bearer token. Admin-only rules are enforced
// inside the services so that every response code comes from the same
// domain error mapping.
//
// Routes:
//
//	POST   /api/auth/login           → authHandler.Login
//	GET    /api/secrets              → secretHandler.List (?q= searches)
//	POST   /api/secrets              → secretHandler.Create
//	GET    /api/secrets/{id}         → secretHandler.Get
//	PUT    /api/secrets/{id}         → secretHandler.Update
//	DELETE /api/secrets/{id}         → secretHandler.Delete
//	GET    /api/users                → userHandler.List (admin)
//	POST   /api/users                → userHandler.Create (admin)
//	DELETE /api/users/{id}           → userHandler.Delete (admin)
//	GET    /api/statistics           → statsHandler.Snapshot
//	GET    /api/audit_logs           → statsHandler.Events (admin)
func NewRouter(
	authHandler *AuthHandler,
	secretHandler *SecretHandler,
	userHandler *UserHandler,
	statsHandler *StatsHandler,
	tokens *security.TokenIssuer,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoint
		r.Post("/auth/login", authHandler.Login)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokens.Auth()))
			r.Use(middleware.Authenticator)

			r.Get("/secrets", secretHandler.List)
			r.Post("/secrets", secretHandler.Create)
			r.Get("/secrets/{id}", secretHandler.Get)
			r.Put("/secrets/{id}", secretHandler.Update)
			r.Delete("/secrets/{id}", secretHandler.Delete)

			r.Get("/users", userHandler.List)
			r.Post("/users", userHandler.Create)
			r.Delete("/users/{id}", userHandler.Delete)

			r.Get("/statistics", statsHandler.Snapshot)
			r.Get("/audit_logs", statsHandler.Events)
		})
	})

	return r
}
