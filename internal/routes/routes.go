package routes

import (
	"github.com/gofiber/fiber/v2"

	"docfinder/internal/handlers"
)

// Deps bundles everything route registration needs.
type Deps struct {
	Auth        *handlers.AuthHandler
	Doctors     *handlers.DoctorHandler
	RequireAuth fiber.Handler
	// AuthLimiter is optional; nil disables rate limiting.
	AuthLimiter fiber.Handler
}

// Setup registers all API routes.
func Setup(app *fiber.App, d Deps) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	if d.AuthLimiter != nil {
		auth.Post("/signup", d.AuthLimiter, d.Auth.Signup)
		auth.Post("/login", d.AuthLimiter, d.Auth.Login)
	} else {
		auth.Post("/signup", d.Auth.Signup)
		auth.Post("/login", d.Auth.Login)
	}
	auth.Post("/logout", d.Auth.Logout)
	auth.Get("/me", d.RequireAuth, d.Auth.Me)
	auth.Put("/me", d.RequireAuth, d.Auth.UpdateMe)
	auth.Post("/change-password", d.RequireAuth, d.Auth.ChangePassword)

	// Catalog management endpoints are intentionally open; there is no
	// admin role in the data model.
	doctors := api.Group("/doctors")
	doctors.Get("/", d.Doctors.List)
	doctors.Post("/", d.Doctors.Create)
	doctors.Get("/:id", d.Doctors.Get)
	doctors.Put("/:id", d.Doctors.Update)
	doctors.Delete("/:id", d.Doctors.Delete)
}
