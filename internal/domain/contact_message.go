package domain

import "time"

// ContactMessage is an inbound message from the public contact form.
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Subject   string
	Body      string
	Read      bool
	CreatedAt time.Time
}
