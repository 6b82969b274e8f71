// Package content provides the server-side use cases for the site
// collections: listing, creating and deleting records in a collection
// document held by the remote store.
package content

import "errors"

// Sentinel errors for content use case operations.
var (
	// ErrMissingID indicates a delete request without a record id.
	ErrMissingID = errors.New("id required")

	// ErrPersist indicates the updated collection could not be written back.
	// Nothing was changed remotely when this is returned.
	ErrPersist = errors.New("failed to persist collection")
)
