package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"school-cms/internal/domain/entity"
	"school-cms/internal/observability/logging"
	"school-cms/internal/observability/metrics"
	"school-cms/internal/repository"
)

// Service manages one collection document.
//
// Every mutation reads the whole document, changes it and writes it back.
// Mutations through the same Service are serialised; concurrent writers in
// other processes can still overwrite each other (last writer wins).
type Service[T entity.Record[T]] struct {
	Repo       repository.CollectionRepository
	Collection entity.Collection
	// NewID generates record ids. Defaults to UUIDv7.
	NewID func() string
	// Now stamps creation dates. Defaults to time.Now.
	Now    func() time.Time
	Logger *slog.Logger

	mu sync.Mutex
}

// NewService returns a Service with default id generator and clock.
func NewService[T entity.Record[T]](repo repository.CollectionRepository, c entity.Collection, logger *slog.Logger) *Service[T] {
	return &Service[T]{Repo: repo, Collection: c, Logger: logger}
}

func newUUIDv7() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *Service[T]) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return newUUIDv7()
}

func (s *Service[T]) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service[T]) logger(ctx context.Context) *slog.Logger {
	l := s.Logger
	if l == nil {
		l = slog.Default()
	}
	return logging.WithRequestID(ctx, l)
}

// List returns the stored records, newest first. A missing, unreachable or
// corrupt document yields an empty list; the error is always nil.
func (s *Service[T]) List(ctx context.Context) ([]T, error) {
	return s.read(ctx), nil
}

func (s *Service[T]) read(ctx context.Context) []T {
	items := []T{}
	raw := s.Repo.ReadCollection(ctx, s.Collection.Key())
	if len(raw) == 0 {
		return items
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger(ctx).Warn("collection document is not a JSON array, treating as empty",
			slog.String("collection", string(s.Collection)),
			slog.Any("error", err))
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	metrics.UpdateCollectionSize(string(s.Collection), len(items))
	return items
}

func (s *Service[T]) write(ctx context.Context, items []T) error {
	doc, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.Collection, err)
	}
	if err := s.Repo.WriteCollection(ctx, s.Collection.Key(), doc); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	metrics.UpdateCollectionSize(string(s.Collection), len(items))
	return nil
}

// Add validates rec, assigns its id and creation date, prepends it and
// persists the collection. It returns the full updated list.
func (s *Service[T]) Add(ctx context.Context, rec T) ([]T, error) {
	if err := entity.Validate(rec); err != nil {
		metrics.RecordContentMutation(string(s.Collection), "create", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.read(ctx)
	created := rec.Stamp(s.newID(), s.now())
	updated := append([]T{created}, items...)

	err := s.write(ctx, updated)
	metrics.RecordContentMutation(string(s.Collection), "create", err)
	if err != nil {
		return nil, err
	}

	s.logger(ctx).Info("record created",
		slog.String("collection", string(s.Collection)),
		slog.String("id", created.RecordID()),
		slog.Int("count", len(updated)))
	return updated, nil
}

// Delete removes the record with id and persists the collection. The
// collection is written even when no record matches.
func (s *Service[T]) Delete(ctx context.Context, id string) ([]T, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.read(ctx)
	kept := make([]T, 0, len(items))
	for _, it := range items {
		if it.RecordID() != id {
			kept = append(kept, it)
		}
	}

	err := s.write(ctx, kept)
	metrics.RecordContentMutation(string(s.Collection), "delete", err)
	if err != nil {
		return nil, err
	}

	s.logger(ctx).Info("record deleted",
		slog.String("collection", string(s.Collection)),
		slog.String("id", id),
		slog.Bool("matched", len(kept) != len(items)))
	return kept, nil
}

// Replace overwrites the whole collection with items.
func (s *Service[T]) Replace(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.write(ctx, items)
	metrics.RecordContentMutation(string(s.Collection), "replace", err)
	return err
}
