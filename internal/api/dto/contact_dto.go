package dto

// ContactSubmitRequest payload for the public contact form.
type ContactSubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// GalleryImageRequest payload for adding a gallery entry.
type GalleryImageRequest struct {
	Title    string `json:"title"`
	Caption  string `json:"caption"`
	ImageURL string `json:"image_url"`
	Position int    `json:"position"`
}
