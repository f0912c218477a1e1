package dto

import "time"

// LoginRequest payload for the admin login submission. Arrives as JSON
// from API callers and as form fields from the login page.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// SessionResponse describes the authenticated session for API callers.
// The token itself travels only in the HttpOnly cookie.
type SessionResponse struct {
	SubjectID   string    `json:"subject_id"`
	SubjectName string    `json:"subject_name"`
	Privileged  bool      `json:"privileged"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}
