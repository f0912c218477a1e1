package auth

import (
	"crypto/subtle"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/aegis-security/site-service/internal/events"
	apperrors "github.com/aegis-security/site-service/pkg/util/errorutil"
)

// Route classes enforced by the gate. Fixed constants, not runtime-tunable.
const (
	LoginPagePath    = "/admin/login"
	DashboardPath    = "/admin/dashboard"
	ReturnToParam    = "return_to"
	adminUIPrefix    = "/admin"
	adminAPIPrefix   = "/api/admin"
	sessionEndpoint  = "/api/admin/session"
	claimsContextKey = "session_claims"
)

// RequestGate intercepts every inbound request and enforces the session
// and anti-forgery rules before any business handler runs. It never
// invokes business logic itself; it either passes the request through,
// redirects, or rejects.
type RequestGate struct {
	sessions   *SessionManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewRequestGate constructs the gate.
func NewRequestGate(sessions *SessionManager, dispatcher events.Dispatcher, logger *zap.Logger) *RequestGate {
	return &RequestGate{sessions: sessions, dispatcher: dispatcher, logger: logger}
}

// Handle is the Fiber middleware entry point.
func (g *RequestGate) Handle(c *fiber.Ctx) error {
	path := c.Path()
	method := c.Method()

	// Public paths bypass every check, including the login and logout
	// submissions themselves.
	if g.isPublic(path, method) {
		return c.Next()
	}

	switch {
	case underTree(path, adminAPIPrefix):
		return g.handleAdminAPI(c)
	case underTree(path, adminUIPrefix):
		return g.handleAdminUI(c)
	}
	return c.Next()
}

// underTree matches prefix on a path-segment boundary, so "/admin"
// covers "/admin" and "/admin/jobs" but not "/administrator".
func underTree(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func (g *RequestGate) handleAdminUI(c *fiber.Ctx) error {
	claims, ok := g.sessions.Resolve(RequestCookies(c))

	// An already-authenticated caller has no business on the login page.
	if c.Path() == LoginPagePath {
		if ok {
			return c.Redirect(DashboardPath, fiber.StatusFound)
		}
		return c.Next()
	}

	if !ok {
		target := LoginPagePath + "?" + ReturnToParam + "=" + url.QueryEscape(c.Path())
		return c.Redirect(target, fiber.StatusFound)
	}
	if stateChanging(c.Method()) {
		if err := g.checkAntiForgery(c); err != nil {
			return err
		}
	}
	c.Locals(claimsContextKey, claims)
	return c.Next()
}

func (g *RequestGate) handleAdminAPI(c *fiber.Ctx) error {
	claims, ok := g.sessions.Resolve(RequestCookies(c))
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if stateChanging(c.Method()) {
		if err := g.checkAntiForgery(c); err != nil {
			return err
		}
	}
	c.Locals(claimsContextKey, claims)
	return c.Next()
}

// checkAntiForgery enforces the double-submit scheme: the header copy of
// the anti-forgery token must byte-equal the cookie copy. The session
// cookie alone is replayed automatically by a browser and proves nothing
// about who initiated the request, so this fires even when the session
// check already passed.
func (g *RequestGate) checkAntiForgery(c *fiber.Ctx) error {
	cookie := RequestCookies(c).Cookie(CSRFCookieName)
	header := c.Get(CSRFHeaderName)
	if cookie == "" || header == "" ||
		subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
		g.logger.Warn("anti-forgery check failed",
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.Bool("header_present", header != ""))
		if g.dispatcher != nil {
			_ = g.dispatcher.Publish(c.UserContext(), events.Event{
				Type:      events.EventForgeryBlocked,
				Timestamp: time.Now(),
				Payload: events.ForgeryBlockedPayload{
					Path:   c.Path(),
					Method: c.Method(),
				},
			})
		}
		return apperrors.NewForbidden("anti-forgery token missing or mismatched")
	}
	return nil
}

func (g *RequestGate) isPublic(path, method string) bool {
	if path == sessionEndpoint && (method == fiber.MethodPost || method == fiber.MethodDelete) {
		return true
	}
	for _, prefix := range []string{"/health", "/static"} {
		if underTree(path, prefix) {
			return true
		}
	}
	return false
}

func stateChanging(method string) bool {
	switch method {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return false
	}
	return true
}

// ClaimsFromContext retrieves the resolved session claims the gate stored
// for downstream handlers.
func ClaimsFromContext(c *fiber.Ctx) (*SessionClaims, bool) {
	val := c.Locals(claimsContextKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*SessionClaims)
	return claims, ok
}
