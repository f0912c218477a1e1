package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aegis-security/site-service/internal/config"
)

// ErrInvalidCredentials is returned by Login on a rejected username or
// password. It carries no detail about which field was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// SessionManager orchestrates the session lifecycle: login, resolve,
// refresh, logout. All session state lives in the caller's cookies; the
// manager itself is immutable after construction and safe for concurrent
// use.
type SessionManager struct {
	verifier *Verifier
	codec    *TokenCodec
	ttl      time.Duration
	secure   bool
	logger   *zap.Logger
}

// NewSessionManager wires the credential verifier and token codec.
func NewSessionManager(verifier *Verifier, codec *TokenCodec, cfg config.SessionConfig, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		verifier: verifier,
		codec:    codec,
		ttl:      cfg.TTL(),
		secure:   cfg.SecureCookies,
		logger:   logger,
	}
}

// Login verifies the submitted credentials and, on success, mints fresh
// session claims, signs them, and sets the session cookie together with a
// new anti-forgery cookie. On failure no cookie is touched and no partial
// session exists.
func (m *SessionManager) Login(username, password string, sink CookieSink) (*SessionClaims, error) {
	if !m.verifier.Verify(username, password) {
		m.logger.Info("admin login rejected", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := &SessionClaims{
		SubjectID:   uuid.NewString(),
		SubjectName: username,
		Privileged:  true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err := m.codec.Sign(claims)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	csrf, err := newAntiForgeryToken()
	if err != nil {
		return nil, fmt.Errorf("mint anti-forgery token: %w", err)
	}

	// Both cookies are issued together and expected to travel together
	// for the life of this login.
	sink.SetCookie(Cookie{
		Name:     SessionCookieName,
		Value:    token,
		MaxAge:   m.ttl,
		HTTPOnly: true,
		Secure:   m.secure,
	})
	sink.SetCookie(Cookie{
		Name:   CSRFCookieName,
		Value:  csrf,
		MaxAge: m.ttl,
		Secure: m.secure,
	})

	m.logger.Info("admin login accepted", zap.String("subject_id", claims.SubjectID))
	return claims, nil
}

// Resolve reads the session cookie and returns the validated claims, or
// false when no usable session exists. Missing cookie, bad signature and
// expiry all collapse into the same outcome: the corrective action is a
// fresh login either way.
func (m *SessionManager) Resolve(src CookieSource) (*SessionClaims, bool) {
	token := src.Cookie(SessionCookieName)
	if token == "" {
		return nil, false
	}
	claims, err := m.codec.Verify(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// Refresh mints a new token from the current claims' identity fields with
// a fresh expiry window and re-sets the session cookie. The anti-forgery
// cookie is left alone. Callers decide when to refresh; nothing here does
// it automatically.
func (m *SessionManager) Refresh(current *SessionClaims, sink CookieSink) (*SessionClaims, error) {
	now := time.Now()
	claims := &SessionClaims{
		SubjectID:   current.SubjectID,
		SubjectName: current.SubjectName,
		Privileged:  current.Privileged,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err := m.codec.Sign(claims)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	sink.SetCookie(Cookie{
		Name:     SessionCookieName,
		Value:    token,
		MaxAge:   m.ttl,
		HTTPOnly: true,
		Secure:   m.secure,
	})
	return claims, nil
}

// Logout clears the session and anti-forgery cookies unconditionally.
// Idempotent with no active session.
func (m *SessionManager) Logout(sink CookieSink) {
	sink.SetCookie(Cookie{Name: SessionCookieName, HTTPOnly: true, Secure: m.secure})
	sink.SetCookie(Cookie{Name: CSRFCookieName, Secure: m.secure})
}

// newAntiForgeryToken returns 256 bits of randomness, URL-safe encoded.
// The value is only ever compared for equality, never decoded.
func newAntiForgeryToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
