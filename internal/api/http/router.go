package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aegis-security/site-service/internal/api/http/handlers"
	"github.com/aegis-security/site-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Session      *handlers.SessionHandler
	Jobs         *handlers.JobsHandler
	Applications *handlers.ApplicationsHandler
	Gallery      *handlers.GalleryHandler
	Contacts     *handlers.ContactsHandler
	AdminPages   *handlers.AdminPagesHandler
	Gate         *auth.RequestGate
}

// RegisterRoutes wires HTTP routes. The request gate runs in front of
// every route; it decides per path whether session and anti-forgery
// checks apply.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Static("/static", "./public")

	// Public content endpoints.
	api := app.Group("/api")
	api.Get("/jobs", cfg.Jobs.ListOpen)
	api.Get("/jobs/:id", cfg.Jobs.Get)
	api.Post("/jobs/:id/apply", cfg.Applications.Submit)
	api.Get("/gallery", cfg.Gallery.List)
	api.Post("/contact", cfg.Contacts.Submit)

	// Admin session lifecycle. Login and logout bypass the gate; the
	// rest require an active session (and anti-forgery on mutation).
	adminAPI := api.Group("/admin")
	adminAPI.Post("/session", cfg.Session.Login)
	adminAPI.Delete("/session", cfg.Session.Logout)
	adminAPI.Get("/session", cfg.Session.Current)
	adminAPI.Post("/session/refresh", cfg.Session.Refresh)

	// Admin back-office API.
	adminAPI.Get("/jobs", cfg.Jobs.ListAll)
	adminAPI.Post("/jobs", cfg.Jobs.Create)
	adminAPI.Put("/jobs/:id", cfg.Jobs.Update)
	adminAPI.Post("/jobs/:id/close", cfg.Jobs.Close)
	adminAPI.Delete("/jobs/:id", cfg.Jobs.Delete)

	adminAPI.Get("/applications", cfg.Applications.List)
	adminAPI.Get("/applications/:id", cfg.Applications.Get)
	adminAPI.Put("/applications/:id/status", cfg.Applications.UpdateStatus)

	adminAPI.Post("/gallery", cfg.Gallery.Create)
	adminAPI.Delete("/gallery/:id", cfg.Gallery.Delete)

	adminAPI.Get("/contacts", cfg.Contacts.List)
	adminAPI.Get("/contacts/:id", cfg.Contacts.Get)
	adminAPI.Post("/contacts/:id/read", cfg.Contacts.MarkRead)
	adminAPI.Delete("/contacts/:id", cfg.Contacts.Delete)

	adminAPI.Get("/metrics", cfg.AdminPages.Metrics)

	// Admin UI shells.
	app.Get(auth.LoginPagePath, cfg.AdminPages.LoginPage)
	app.Get(auth.DashboardPath, cfg.AdminPages.Dashboard)
}
