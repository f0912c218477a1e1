package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Cookie names are a compatibility surface shared with the frontend and
// are deliberately not runtime-tunable.
const (
	// SessionCookieName carries the signed session token. HttpOnly; page
	// scripts never see it.
	SessionCookieName = "aegis_admin_session"
	// CSRFCookieName carries the anti-forgery token. Script-readable so
	// the page can reflect it into the request header.
	CSRFCookieName = "aegis_csrf"
	// CSRFHeaderName is where state-changing requests must repeat the
	// anti-forgery cookie value.
	CSRFHeaderName = "X-CSRF-Token"
)

// Cookie describes one cookie write. MaxAge <= 0 means delete.
type Cookie struct {
	Name     string
	Value    string
	MaxAge   time.Duration
	HTTPOnly bool
	Secure   bool
}

// CookieSource extracts named cookies from an inbound request.
type CookieSource interface {
	Cookie(name string) string
}

// CookieSink sets cookies on an outbound response.
type CookieSink interface {
	SetCookie(c Cookie)
}

// The session manager and request gate depend only on the two interfaces
// above, so they can be exercised without a network stack; these adapters
// bind them to Fiber.

type fiberCookies struct {
	ctx *fiber.Ctx
}

// RequestCookies adapts a Fiber context as a CookieSource.
func RequestCookies(c *fiber.Ctx) CookieSource {
	return fiberCookies{ctx: c}
}

// ResponseCookies adapts a Fiber context as a CookieSink.
func ResponseCookies(c *fiber.Ctx) CookieSink {
	return fiberCookies{ctx: c}
}

func (f fiberCookies) Cookie(name string) string {
	return f.ctx.Cookies(name)
}

func (f fiberCookies) SetCookie(c Cookie) {
	fc := &fiber.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     "/",
		HTTPOnly: c.HTTPOnly,
		Secure:   c.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if c.MaxAge > 0 {
		fc.MaxAge = int(c.MaxAge / time.Second)
		fc.Expires = time.Now().Add(c.MaxAge)
	} else {
		fc.MaxAge = -1
		fc.Expires = time.Unix(0, 0)
	}
	f.ctx.Cookie(fc)
}
