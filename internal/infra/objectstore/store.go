// Package objectstore stores opaque blobs addressed by pathname.
//
// Stores are versioned by nature: every Put creates a new object, and when a
// random suffix is requested the final pathname differs from the one asked for.
// Callers that need "the current version" of a logical document list the
// candidates and pick the most recent one themselves.
package objectstore

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Object describes one stored blob.
type Object struct {
	Pathname    string    `json:"pathname"`
	URL         string    `json:"url"`
	ContentType string    `json:"contentType,omitempty"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// PutOptions controls how an object is written.
type PutOptions struct {
	ContentType     string
	AddRandomSuffix bool
}

// Store is the minimal object storage contract used by the content layer.
type Store interface {
	Put(ctx context.Context, pathname string, body io.Reader, opts PutOptions) (Object, error)
	List(ctx context.Context, prefix string) ([]Object, error)
	Open(ctx context.Context, obj Object) (io.ReadCloser, error)
}

// WithSuffix inserts "-<suffix>" between the base name and the extension:
// "content/gallery.json" becomes "content/gallery-<suffix>.json".
func WithSuffix(pathname, suffix string) string {
	ext := path.Ext(pathname)
	return strings.TrimSuffix(pathname, ext) + "-" + suffix + ext
}

// Random suffixes are alphanumeric and at least MinSuffixLen long, so a sibling
// key such as "content/gallery-images.json" is not taken for a version.
const (
	MinSuffixLen = 16
	maxSuffixLen = 64
)

// IsVersionOf reports whether pathname is key itself or key carrying a random
// suffix produced by WithSuffix.
func IsVersionOf(pathname, key string) bool {
	if pathname == key {
		return true
	}
	ext := path.Ext(key)
	base := strings.TrimSuffix(key, ext) + "-"
	if !strings.HasPrefix(pathname, base) || !strings.HasSuffix(pathname, ext) {
		return false
	}
	return isRandomSuffix(strings.TrimSuffix(strings.TrimPrefix(pathname, base), ext))
}

func isRandomSuffix(s string) bool {
	if len(s) < MinSuffixLen || len(s) > maxSuffixLen {
		return false
	}
	for _, r := range s {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9') {
			return false
		}
	}
	return true
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:MinSuffixLen]
}
