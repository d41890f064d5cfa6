package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/upb/cafe-directory/app"
	"github.com/upb/cafe-directory/handlers"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(deps.Metrics.Instrument)

	// Every request resolves its identity fresh from the session store
	r.Use(deps.Identity.LoadIdentity)

	// Operational endpoints
	r.Get("/healthz", handlers.HealthCheck(deps))
	r.Get("/readyz", handlers.ReadinessCheck(deps))
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	// Public pages
	r.Get("/", handlers.HomeHandler(deps))
	r.Get("/cafes", handlers.ListCafesHandler(deps))
	r.Get("/all", handlers.ListCafesHandler(deps))

	r.Get("/contact", handlers.ContactHandler(deps))
	r.Post("/contact", handlers.ContactHandler(deps))

	r.Get("/register", handlers.RegisterHandler(deps))
	r.Post("/register", handlers.RegisterHandler(deps))
	r.Get("/login", handlers.LoginHandler(deps))
	r.Post("/login", handlers.LoginHandler(deps))

	// Authenticated pages
	r.Group(func(r chi.Router) {
		r.Use(deps.Identity.RequireAuth)
		r.Get("/add", handlers.AddCafeHandler(deps))
		r.Post("/add", handlers.AddCafeHandler(deps))
		r.Get("/logout", handlers.LogoutHandler(deps))
	})

	// Admin moderation
	r.Group(func(r chi.Router) {
		r.Use(deps.Identity.RequireAdmin)

		r.Get("/cafes/{id}/edit", handlers.EditCafeHandler(deps))
		r.Post("/cafes/{id}/edit", handlers.EditCafeHandler(deps))
		r.Get("/cafes/{id}/delete", handlers.DeleteCafeHandler(deps))

		r.Get("/messages", handlers.ListMessagesHandler(deps))
		r.Get("/messages/{id}/delete", handlers.DeleteMessageHandler(deps))

		r.Get("/users", handlers.ListUsersHandler(deps))
		r.Post("/users", handlers.ChangeRoleHandler(deps))
		r.Get("/users/{id}/delete", handlers.DeleteUserHandler(deps))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "page not found", http.StatusNotFound)
	})

	return r
}
