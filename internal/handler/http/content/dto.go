// Package content provides the HTTP handlers for the /content collections:
// public listing plus admin-only create and delete.
package content

import (
	"context"

	"school-cms/internal/domain/entity"
)

// Reader lists a collection.
type Reader[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// Writer mutates a collection and returns the full updated list.
type Writer[T any] interface {
	Add(ctx context.Context, rec T) ([]T, error)
	Delete(ctx context.Context, id string) ([]T, error)
}

// Collection pairs the read and write side of one collection. Reads and
// writes may go to different components, e.g. reads straight from the
// document and writes through the in-memory site store.
type Collection[T any] struct {
	Name   entity.Collection
	Reader Reader[T]
	Writer Writer[T]
}
