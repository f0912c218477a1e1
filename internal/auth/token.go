package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid covers malformed tokens and signature failures.
	ErrTokenInvalid = errors.New("invalid session token")
	// ErrTokenExpired marks a correctly signed token past its expiry.
	// Callers other than tests treat it the same as ErrTokenInvalid.
	ErrTokenExpired = errors.New("expired session token")
)

// SessionClaims is the closed payload carried inside a session token.
// Values are immutable once minted; refreshing a session mints a new
// claims value rather than mutating this one. Unknown fields in a
// presented token are dropped on decode.
type SessionClaims struct {
	SubjectID   string `json:"sub"`
	SubjectName string `json:"name"`
	Privileged  bool   `json:"privileged"`
	jwt.RegisteredClaims
}

// TokenCodec signs session claims into compact tamper-evident tokens and
// verifies tokens presented later. It is a pure function of the
// process-wide secret, its input, and the clock.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec builds a codec around the process-wide signing secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// Sign serializes and signs the claims with HS256.
func (tc *TokenCodec) Sign(claims *SessionClaims) (string, error) {
	if len(tc.secret) == 0 {
		return "", errors.New("signing secret not configured")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tc.secret)
}

// Verify checks the signature first, then the embedded expiry; both must
// pass independently. A forged-but-unexpired token fails the signature
// check, a correctly-signed-but-stale token fails the expiry check.
func (tc *TokenCodec) Verify(tokenStr string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tc.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, ErrTokenInvalid
	}
	if !time.Now().Before(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}
