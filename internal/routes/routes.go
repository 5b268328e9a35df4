package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wanderly/trailhead/internal/auth"
	"github.com/wanderly/trailhead/internal/handlers"
	"github.com/wanderly/trailhead/internal/models"
)

// RegisterRoutes registers all application routes. rateLimit guards the
// credential endpoints and is injected so deployments (and tests) control
// the budget.
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	tourHandler *handlers.TourHandler,
	tokenManager *auth.TokenManager,
	users auth.UserGetter,
	rateLimit func(http.Handler) http.Handler,
) {
	protect := auth.Protect(tokenManager, users)

	router.Route("/api/v1/users", func(r chi.Router) {
		// Public - no authentication required
		r.With(rateLimit).Post("/signup", authHandler.Signup)
		r.With(rateLimit).Post("/login", authHandler.Login)
		r.Get("/logout", authHandler.Logout)
		r.With(rateLimit).Post("/forgotPassword", authHandler.ForgotPassword)
		r.With(rateLimit).Patch("/resetPassword/{token}", authHandler.ResetPassword)

		// Authenticated self-service
		r.Group(func(r chi.Router) {
			r.Use(protect)

			r.Patch("/updateMyPassword", authHandler.UpdatePassword)
			r.Get("/me", userHandler.Me)
			r.Patch("/updateMe", userHandler.UpdateMe)
			r.Delete("/deleteMe", userHandler.DeleteMe)

			// Admin-only
			r.With(auth.RestrictTo(models.RoleAdmin)).Get("/", userHandler.List)
		})
	})

	router.Route("/api/v1/tours", func(r chi.Router) {
		// Reads are public
		r.Get("/", tourHandler.List)
		r.Get("/{id}", tourHandler.Get)

		// Writes require an elevated role
		r.Group(func(r chi.Router) {
			r.Use(protect)
			r.Use(auth.RestrictTo(models.RoleAdmin, models.RoleLeadGuide))

			r.Post("/", tourHandler.Create)
			r.Patch("/{id}", tourHandler.Update)
			r.Delete("/{id}", tourHandler.Delete)
		})
	})
}
