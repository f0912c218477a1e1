package dto

// ApplicationSubmitRequest payload for the public apply form.
type ApplicationSubmitRequest struct {
	ApplicantName string  `json:"applicant_name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	CoverLetter   string  `json:"cover_letter"`
	ResumeURL     *string `json:"resume_url,omitempty"`
}

// ApplicationStatusRequest payload for back-office review updates.
type ApplicationStatusRequest struct {
	Status string `json:"status"`
}
