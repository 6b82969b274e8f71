package entity

import "time"

// NewsStatus tells whether an article is visible on the public site.
type NewsStatus string

const (
	NewsDraft     NewsStatus = "draft"
	NewsPublished NewsStatus = "published"
)

// NewsArticle is an announcement posted by the school.
type NewsArticle struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title" validate:"required,max=200"`
	Content     string     `json:"content" yaml:"content" validate:"required,max=20000"`
	PublishDate string     `json:"publishDate" yaml:"publishDate" validate:"omitempty,datetime=2006-01-02"`
	Status      NewsStatus `json:"status" yaml:"status" validate:"required,oneof=draft published"`
}

// RecordID returns the article identifier.
func (n NewsArticle) RecordID() string { return n.ID }

// Stamp assigns the identifier and defaults the publish date to today when
// the author left it blank.
func (n NewsArticle) Stamp(id string, now time.Time) NewsArticle {
	n.ID = id
	if n.PublishDate == "" {
		n.PublishDate = FormatDate(now)
	}
	return n
}
