package auth

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

func testClaims(issued time.Time, ttl time.Duration) *SessionClaims {
	return &SessionClaims{
		SubjectID:   "b3c9a5e2-0f41-4a6e-9a57-1f2d3c4b5a69",
		SubjectName: "admin",
		Privileged:  true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(ttl)),
		},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	claims := testClaims(time.Now(), 8*time.Hour)

	token, err := codec.Sign(claims)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	decoded, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if decoded.SubjectID != claims.SubjectID {
		t.Errorf("SubjectID = %q, want %q", decoded.SubjectID, claims.SubjectID)
	}
	if decoded.SubjectName != claims.SubjectName {
		t.Errorf("SubjectName = %q, want %q", decoded.SubjectName, claims.SubjectName)
	}
	if !decoded.Privileged {
		t.Error("Privileged = false, want true")
	}
	if !decoded.IssuedAt.Time.Equal(claims.IssuedAt.Time) {
		t.Errorf("IssuedAt = %v, want %v", decoded.IssuedAt.Time, claims.IssuedAt.Time)
	}
	if !decoded.ExpiresAt.Time.Equal(claims.ExpiresAt.Time) {
		t.Errorf("ExpiresAt = %v, want %v", decoded.ExpiresAt.Time, claims.ExpiresAt.Time)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	signer := NewTokenCodec("secret-one")
	verifier := NewTokenCodec("secret-two")

	token, err := signer.Sign(testClaims(time.Now(), 8*time.Hour))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	// The token is unexpired; only the signature check can reject it.
	if _, err := verifier.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("verify under different secret: err = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenExpired(t *testing.T) {
	codec := NewTokenCodec("test-secret")

	// Correctly signed but stale: the signature alone would still check out.
	token, err := codec.Sign(testClaims(time.Now().Add(-9*time.Hour), 8*time.Hour))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := codec.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("verify expired token: err = %v, want ErrTokenExpired", err)
	}
}

func TestTokenTampered(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	token, err := codec.Sign(testClaims(time.Now(), 8*time.Hour))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := codec.Verify(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("verify tampered token: err = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := codec.Verify(token); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("verify %q: err = %v, want ErrTokenInvalid", token, err)
		}
	}
}

func TestTokenMissingExpiry(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	claims := &SessionClaims{
		SubjectID:   "x",
		SubjectName: "admin",
		Privileged:  true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := codec.Sign(claims)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := codec.Verify(token); err == nil {
		t.Error("token without expiry accepted")
	}
}

func TestSignWithoutSecret(t *testing.T) {
	codec := NewTokenCodec("")
	if _, err := codec.Sign(testClaims(time.Now(), time.Hour)); err == nil {
		t.Error("sign with empty secret succeeded")
	}
}
