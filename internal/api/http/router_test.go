package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/aegis-security/site-service/internal/api/http/handlers"
	"github.com/aegis-security/site-service/internal/auth"
	"github.com/aegis-security/site-service/internal/config"
	"github.com/aegis-security/site-service/internal/events"
	"github.com/aegis-security/site-service/internal/observability"
	"github.com/aegis-security/site-service/internal/persistence"
	"github.com/aegis-security/site-service/internal/repository"
	"github.com/aegis-security/site-service/internal/service"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "hunter2-correct"
	testSecret        = "test-secret"
)

func newTestApp(t *testing.T) (*fiber.App, *auth.TokenCodec) {
	t.Helper()

	logger := zap.NewNop()
	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	verifier := auth.NewVerifier(config.AdminConfig{Username: testAdminUser, PasswordHash: string(hash)})
	codec := auth.NewTokenCodec(testSecret)
	sessions := auth.NewSessionManager(verifier, codec, config.SessionConfig{Secret: testSecret, TTLHours: 8}, logger)
	dispatcher := events.NewInMemoryDispatcher()
	gate := auth.NewRequestGate(sessions, dispatcher, logger)
	metrics := observability.NewMetrics()

	// Repositories get no pool; the routes exercised here never reach them.
	content := service.NewContentService(repository.NewJobRepository(nil), repository.NewGalleryRepository(nil), nil, logger)
	applications := service.NewApplicationService(repository.NewJobRepository(nil), repository.NewApplicationRepository(nil), dispatcher)
	contacts := service.NewContactService(repository.NewContactRepository(nil), dispatcher)

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:       handlers.NewHealthHandler("test", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Session:      handlers.NewSessionHandler(sessions),
		Jobs:         handlers.NewJobsHandler(content),
		Applications: handlers.NewApplicationsHandler(applications),
		Gallery:      handlers.NewGalleryHandler(content),
		Contacts:     handlers.NewContactsHandler(contacts),
		AdminPages:   handlers.NewAdminPagesHandler(metrics),
		Gate:         gate,
	})
	return app, codec
}

func cookieByName(resp *http.Response, name string) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func doLogin(t *testing.T, app *fiber.App) (session, csrf *http.Cookie) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/session",
		strings.NewReader(`{"username":"`+testAdminUser+`","password":"`+testAdminPassword+`"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("login status = %d, want 201", resp.StatusCode)
	}
	session = cookieByName(resp, auth.SessionCookieName)
	csrf = cookieByName(resp, auth.CSRFCookieName)
	if session == nil || csrf == nil {
		t.Fatal("login did not set both cookies")
	}
	return session, csrf
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error.Code
}

func TestPublicPathPassesThrough(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestLookalikePathsAreNotGated(t *testing.T) {
	app, _ := newTestApp(t)

	// Prefix lookalikes of the admin trees are ordinary unknown routes:
	// plain 404, no redirect and no auth error.
	for _, path := range []string{"/administrator", "/adminfoo", "/api/administrators"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, resp.StatusCode)
		}
		if loc := resp.Header.Get(fiber.HeaderLocation); loc != "" {
			t.Errorf("%s: unexpected redirect to %q", path, loc)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, _ := newTestApp(t)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/session",
			strings.NewReader(`{"username":"admin","password":"wrong"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status = %d, want 401", i+1, resp.StatusCode)
		}
		if code := errorCode(t, resp); code != "UNAUTHORIZED" {
			t.Fatalf("attempt %d: code = %q, want UNAUTHORIZED", i+1, code)
		}
		if cookieByName(resp, auth.SessionCookieName) != nil {
			t.Fatalf("attempt %d: failed login set a session cookie", i+1)
		}
	}
}

func TestLoginSetsCookiesAndFormRedirects(t *testing.T) {
	app, _ := newTestApp(t)

	session, csrf := doLogin(t, app)
	if !session.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if csrf.HttpOnly {
		t.Error("anti-forgery cookie must stay script-readable")
	}

	form := "username=" + testAdminUser + "&password=" + testAdminPassword
	req := httptest.NewRequest(http.MethodPost, "/api/admin/session", strings.NewReader(form))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("form login: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("form login status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get(fiber.HeaderLocation); loc != auth.DashboardPath {
		t.Errorf("form login redirect = %q, want %q", loc, auth.DashboardPath)
	}
	if cookieByName(resp, auth.SessionCookieName) == nil || cookieByName(resp, auth.CSRFCookieName) == nil {
		t.Error("form login did not set both cookies")
	}
}

func TestLoginPreservesReturnTarget(t *testing.T) {
	app, _ := newTestApp(t)

	form := "username=" + testAdminUser + "&password=" + testAdminPassword
	req := httptest.NewRequest(http.MethodPost, "/api/admin/session?return_to=%2Fadmin%2Fcontacts", strings.NewReader(form))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("form login: %v", err)
	}
	if loc := resp.Header.Get(fiber.HeaderLocation); loc != "/admin/contacts" {
		t.Errorf("redirect = %q, want /admin/contacts", loc)
	}
}

func TestAdminUIRedirectsWithoutSession(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	want := auth.LoginPagePath + "?return_to=%2Fadmin%2Fdashboard"
	if loc := resp.Header.Get(fiber.HeaderLocation); loc != want {
		t.Errorf("redirect = %q, want %q", loc, want)
	}
}

func TestAdminUIRedirectsExpiredSession(t *testing.T) {
	app, codec := newTestApp(t)

	stale, err := codec.Sign(&auth.SessionClaims{
		SubjectID:   "old",
		SubjectName: testAdminUser,
		Privileged:  true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-10 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	})
	if err != nil {
		t.Fatalf("sign stale token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/contacts", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: stale})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	want := auth.LoginPagePath + "?return_to=%2Fadmin%2Fcontacts"
	if loc := resp.Header.Get(fiber.HeaderLocation); loc != want {
		t.Errorf("redirect = %q, want %q", loc, want)
	}
}

func TestLoginPageSkipsForActiveSession(t *testing.T) {
	app, _ := newTestApp(t)
	session, _ := doLogin(t, app)

	// Without a session the login form renders.
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, auth.LoginPagePath, nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("anonymous login page status = %d, want 200", resp.StatusCode)
	}

	// With one, the caller is pushed forward to the dashboard.
	req := httptest.NewRequest(http.MethodGet, auth.LoginPagePath, nil)
	req.AddCookie(session)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("authenticated login page status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get(fiber.HeaderLocation); loc != auth.DashboardPath {
		t.Errorf("redirect = %q, want %q", loc, auth.DashboardPath)
	}
}

func TestAdminAPIUnauthorizedWithoutSession(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/session", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if code := errorCode(t, resp); code != "UNAUTHORIZED" {
		t.Errorf("code = %q, want UNAUTHORIZED", code)
	}
}

func TestAntiForgeryRequiredOnMutation(t *testing.T) {
	app, _ := newTestApp(t)
	session, csrf := doLogin(t, app)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"mismatched header", "not-the-right-token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/jobs", strings.NewReader(`{}`))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			req.AddCookie(session)
			req.AddCookie(csrf)
			if tc.header != "" {
				req.Header.Set(auth.CSRFHeaderName, tc.header)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			// Forbidden, distinctly not unauthorized: the session was valid.
			if resp.StatusCode != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", resp.StatusCode)
			}
			if code := errorCode(t, resp); code != "FORBIDDEN" {
				t.Errorf("code = %q, want FORBIDDEN", code)
			}
		})
	}
}

func TestAntiForgeryAcceptsMatchingToken(t *testing.T) {
	app, _ := newTestApp(t)
	session, csrf := doLogin(t, app)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/jobs", strings.NewReader(`{}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.AddCookie(session)
	req.AddCookie(csrf)
	req.Header.Set(auth.CSRFHeaderName, csrf.Value)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	// Both checks passed; the request reached the handler and failed its
	// own payload validation instead.
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if code := errorCode(t, resp); code != "VALIDATION_FAILED" {
		t.Errorf("code = %q, want VALIDATION_FAILED", code)
	}
}

func TestReadOnlyAdminAPISkipsAntiForgery(t *testing.T) {
	app, _ := newTestApp(t)
	session, _ := doLogin(t, app)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/session", nil)
	req.AddCookie(session)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestSessionRefresh(t *testing.T) {
	app, _ := newTestApp(t)
	session, csrf := doLogin(t, app)

	// Refresh is a mutation: no header means forbidden.
	req := httptest.NewRequest(http.MethodPost, "/api/admin/session/refresh", nil)
	req.AddCookie(session)
	req.AddCookie(csrf)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("refresh without header status = %d, want 403", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/admin/session/refresh", nil)
	req.AddCookie(session)
	req.AddCookie(csrf)
	req.Header.Set(auth.CSRFHeaderName, csrf.Value)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refresh status = %d, want 200", resp.StatusCode)
	}
	if cookieByName(resp, auth.SessionCookieName) == nil {
		t.Error("refresh did not re-set the session cookie")
	}
	if cookieByName(resp, auth.CSRFCookieName) != nil {
		t.Error("refresh must not touch the anti-forgery cookie")
	}
}

func TestLogoutClearsBothCookies(t *testing.T) {
	app, _ := newTestApp(t)
	session, csrf := doLogin(t, app)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/session", nil)
	req.AddCookie(session)
	req.AddCookie(csrf)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}
	cleared := 0
	for _, name := range []string{auth.SessionCookieName, auth.CSRFCookieName} {
		ck := cookieByName(resp, name)
		if ck == nil {
			t.Errorf("logout did not touch cookie %q", name)
			continue
		}
		expired := ck.MaxAge < 0 || (!ck.Expires.IsZero() && ck.Expires.Before(time.Now()))
		if ck.Value != "" || !expired {
			t.Errorf("cookie %q not cleared: value=%q max-age=%d expires=%v", name, ck.Value, ck.MaxAge, ck.Expires)
			continue
		}
		cleared++
	}
	if cleared != 2 {
		t.Errorf("cleared %d cookies, want 2", cleared)
	}

	// Idempotent without a session.
	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/admin/session", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("anonymous logout status = %d, want 204", resp.StatusCode)
	}
}
