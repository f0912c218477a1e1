package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aegis-security/site-service/internal/api/dto"
	"github.com/aegis-security/site-service/internal/auth"
	apperrors "github.com/aegis-security/site-service/pkg/util/errorutil"
)

// SessionHandler exposes the admin session endpoints: login, logout,
// current-session, refresh.
type SessionHandler struct {
	sessions *auth.SessionManager
}

// NewSessionHandler constructs handler.
func NewSessionHandler(sessions *auth.SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Login handles POST /api/admin/session. Accepts JSON from API callers and
// form submissions from the login page; form callers are redirected on both
// outcomes, API callers get JSON.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	claims, err := h.sessions.Login(req.Username, req.Password, auth.ResponseCookies(c))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			if isFormSubmission(c) {
				return c.Redirect(auth.LoginPagePath+"?error=invalid_credentials", fiber.StatusFound)
			}
			return apperrors.NewUnauthorized("invalid credentials")
		}
		return apperrors.NewInternalError(err)
	}

	if isFormSubmission(c) {
		return c.Redirect(loginReturnTarget(c), fiber.StatusFound)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": sessionResponse(claims)})
}

// Logout handles DELETE /api/admin/session. Clears both cookies whether or
// not a session exists.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Logout(auth.ResponseCookies(c))
	return c.SendStatus(http.StatusNoContent)
}

// Current handles GET /api/admin/session.
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": sessionResponse(claims)})
}

// Refresh handles POST /api/admin/session/refresh: re-mints the session
// token with a fresh expiry window. The anti-forgery cookie is untouched.
func (h *SessionHandler) Refresh(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	refreshed, err := h.sessions.Refresh(claims, auth.ResponseCookies(c))
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": sessionResponse(refreshed)})
}

func sessionResponse(claims *auth.SessionClaims) dto.SessionResponse {
	return dto.SessionResponse{
		SubjectID:   claims.SubjectID,
		SubjectName: claims.SubjectName,
		Privileged:  claims.Privileged,
		IssuedAt:    claims.IssuedAt.Time,
		ExpiresAt:   claims.ExpiresAt.Time,
	}
}

func isFormSubmission(c *fiber.Ctx) bool {
	ct := c.Get(fiber.HeaderContentType)
	return strings.HasPrefix(ct, fiber.MIMEApplicationForm) ||
		strings.HasPrefix(ct, fiber.MIMEMultipartForm)
}

// loginReturnTarget picks the post-login destination: the preserved
// return_to path when it points back into the admin UI, the dashboard
// otherwise. Absolute URLs are rejected to keep the redirect on-site.
func loginReturnTarget(c *fiber.Ctx) string {
	target := c.Query(auth.ReturnToParam)
	if target == "" {
		target = c.FormValue(auth.ReturnToParam)
	}
	if strings.HasPrefix(target, "/admin") && !strings.HasPrefix(target, "//") {
		return target
	}
	return auth.DashboardPath
}
