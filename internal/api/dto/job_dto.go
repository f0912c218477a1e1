package dto

// JobCreateRequest payload for new postings.
type JobCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Employment  string `json:"employment_type"`
}

// JobUpdateRequest payload for editing a posting.
type JobUpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Employment  string `json:"employment_type"`
}
