package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aegis-security/site-service/internal/auth"
	"github.com/aegis-security/site-service/internal/observability"
)

// AdminPagesHandler serves the back-office pages. The real rendering layer
// lives in the frontend; these endpoints provide the minimal shells the
// request gate's navigation semantics require.
type AdminPagesHandler struct {
	metrics *observability.Metrics
}

// NewAdminPagesHandler constructs handler.
func NewAdminPagesHandler(metrics *observability.Metrics) *AdminPagesHandler {
	return &AdminPagesHandler{metrics: metrics}
}

// LoginPage handles GET /admin/login. The gate already redirected away any
// caller with an active session.
func (h *AdminPagesHandler) LoginPage(c *fiber.Ctx) error {
	c.Type("html")
	return c.SendString(`<!DOCTYPE html>
<html>
<head><title>Admin Login</title></head>
<body>
<form method="post" action="/api/admin/session">
  <input name="username" autocomplete="username">
  <input name="password" type="password" autocomplete="current-password">
  <input type="hidden" name="` + auth.ReturnToParam + `" value="">
  <button type="submit">Sign in</button>
</form>
</body>
</html>`)
}

// Dashboard handles GET /admin/dashboard, the default authenticated
// landing page.
func (h *AdminPagesHandler) Dashboard(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)
	name := ""
	if claims != nil {
		name = claims.SubjectName
	}
	c.Type("html")
	return c.SendString(`<!DOCTYPE html>
<html>
<head><title>Admin Dashboard</title></head>
<body><h1>Welcome ` + name + `</h1></body>
</html>`)
}

// Metrics handles GET /api/admin/metrics.
func (h *AdminPagesHandler) Metrics(c *fiber.Ctx) error {
	requests, errors := h.metrics.Snapshot()
	return c.JSON(fiber.Map{"data": fiber.Map{
		"requests": requests,
		"errors":   errors,
	}})
}
