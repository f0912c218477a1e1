package domain

import "time"

// JobStatus represents lifecycle states for a job posting.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "OPEN"
	JobStatusClosed JobStatus = "CLOSED"
)

// EmploymentType enumerates the contract kinds shown on postings.
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "FULL_TIME"
	EmploymentPartTime EmploymentType = "PART_TIME"
	EmploymentContract EmploymentType = "CONTRACT"
)

// Job is a posting on the careers page.
type Job struct {
	ID          string
	Title       string
	Description string
	Location    string
	Employment  EmploymentType
	Status      JobStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ClosedAt    *time.Time
}
