// Package media stores uploaded gallery images in the object store.
package media

import "errors"

// Sentinel errors for upload validation.
var (
	// ErrUnsupportedType indicates the file is not a PNG, JPEG, WebP or GIF image.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrTooLarge indicates the file exceeds the configured size ceiling.
	ErrTooLarge = errors.New("file too large")

	// ErrEmpty indicates an upload without content.
	ErrEmpty = errors.New("empty file")
)
