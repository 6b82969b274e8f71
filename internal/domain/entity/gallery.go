package entity

import "time"

// GalleryImage is a photo shown on the gallery page.
type GalleryImage struct {
	ID         string `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title" validate:"required,max=200"`
	Category   string `json:"category" yaml:"category" validate:"required,max=100"`
	Src        string `json:"src" yaml:"src" validate:"required,max=2048"`
	Alt        string `json:"alt" yaml:"alt" validate:"max=500"`
	UploadDate string `json:"uploadDate" yaml:"uploadDate"`
}

// RecordID returns the image identifier.
func (g GalleryImage) RecordID() string { return g.ID }

// Stamp assigns the identifier and the upload date. Any client supplied
// upload date is overwritten.
func (g GalleryImage) Stamp(id string, now time.Time) GalleryImage {
	g.ID = id
	g.UploadDate = FormatDate(now)
	return g
}
