package domain

import "time"

// GalleryImage is one entry in the public project gallery.
type GalleryImage struct {
	ID        string
	Title     string
	Caption   string
	ImageURL  string
	Position  int
	CreatedAt time.Time
}
