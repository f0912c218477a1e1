package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicationSubmitted EventType = "application_submitted"
	EventContactReceived      EventType = "contact_received"
	EventForgeryBlocked       EventType = "forgery_blocked"
)

// Event represents a domain event emitted by services and the request gate.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	ApplicationID string `json:"application_id"`
	JobID         string `json:"job_id"`
	JobTitle      string `json:"job_title"`
	ApplicantName string `json:"applicant_name"`
	Email         string `json:"email"`
}

// ContactReceivedPayload payload.
type ContactReceivedPayload struct {
	MessageID string `json:"message_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
}

// ForgeryBlockedPayload payload for blocked state-changing requests.
type ForgeryBlockedPayload struct {
	Path   string `json:"path"`
	Method string `json:"method"`
}
