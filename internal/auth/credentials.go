package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/aegis-security/site-service/internal/config"
)

// Verifier checks submitted credentials against the single configured
// administrative identity. It holds no mutable state and is safe for
// concurrent use.
type Verifier struct {
	username     string
	passwordHash []byte
}

// NewVerifier builds a verifier from the admin identity configuration.
// Presence of the identity is validated at config load; by the time a
// Verifier exists the configuration is known good.
func NewVerifier(cfg config.AdminConfig) *Verifier {
	return &Verifier{
		username:     cfg.Username,
		passwordHash: []byte(cfg.PasswordHash),
	}
}

// Verify reports whether the submitted pair matches the configured identity.
// Both comparisons run regardless of whether the username matched, so a
// caller cannot learn which field was wrong from timing. Any mismatch,
// including empty inputs, yields false; Verify never errors per call.
func (v *Verifier) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password)) == nil
	return userOK && passOK
}
