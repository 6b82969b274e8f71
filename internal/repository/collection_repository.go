package repository

import "context"

// CollectionRepository stores whole collection documents under a fixed key.
//
// Reads never fail: a missing, unreadable or unreachable document is reported
// as nil so callers can fall back to defaults. Writes replace the logical
// document and report every failure.
type CollectionRepository interface {
	ReadCollection(ctx context.Context, key string) []byte
	WriteCollection(ctx context.Context, key string, doc []byte) error
}
