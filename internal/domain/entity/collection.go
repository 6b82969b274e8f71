// Package entity defines the content records managed by the site: events,
// gallery images and news articles, the collections that hold them, and the
// validation rules applied at the API boundary.
package entity

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used by every record date field.
const DateLayout = "2006-01-02"

// Collection names one of the three content collections.
type Collection string

const (
	CollectionEvents  Collection = "events"
	CollectionGallery Collection = "gallery"
	CollectionNews    Collection = "news"
)

// Collections lists every collection in display order.
var Collections = []Collection{CollectionEvents, CollectionGallery, CollectionNews}

// ParseCollection converts a path segment into a Collection.
func ParseCollection(s string) (Collection, error) {
	switch c := Collection(s); c {
	case CollectionEvents, CollectionGallery, CollectionNews:
		return c, nil
	default:
		return "", fmt.Errorf("%w: unknown collection %q", ErrInvalidInput, s)
	}
}

// Key returns the object store key holding the collection document.
func (c Collection) Key() string {
	return "content/" + string(c) + ".json"
}

// CacheKey returns the key the collection is mirrored under in the fallback cache.
func (c Collection) CacheKey() string {
	switch c {
	case CollectionGallery:
		return "site_gallery_images"
	case CollectionNews:
		return "site_news_articles"
	default:
		return "site_" + string(c)
	}
}

// Record is implemented by every collection element type.
// Stamp returns a copy carrying the given id and the creation date the
// collection assigns; it is called exactly once, when the record is created.
type Record[T any] interface {
	RecordID() string
	Stamp(id string, now time.Time) T
}

// FormatDate renders t as a calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
