package domain

import "time"

// ApplicationStatus represents review states for a job application.
type ApplicationStatus string

const (
	ApplicationStatusSubmitted ApplicationStatus = "SUBMITTED"
	ApplicationStatusInReview  ApplicationStatus = "IN_REVIEW"
	ApplicationStatusAccepted  ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected  ApplicationStatus = "REJECTED"
)

// Application is a submission against an open job posting.
type Application struct {
	ID            string
	JobID         string
	ApplicantName string
	Email         string
	Phone         string
	CoverLetter   string
	ResumeURL     *string
	Status        ApplicationStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
