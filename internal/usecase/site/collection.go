// Package site holds the in-memory view of the site content that pages are
// rendered from. Each collection is loaded once from the remote side, falls
// back to the local cache and then to seed data, and is replaced wholesale by
// the authoritative list returned after every successful mutation.
package site

import (
	"context"
	"log/slog"
	"sync"

	"school-cms/internal/domain/entity"
	"school-cms/internal/infra/fallback"
	"school-cms/internal/observability/logging"
	"school-cms/internal/observability/metrics"
)

// Remote is the authoritative side of a collection. Add and Delete return the
// full list as persisted.
type Remote[T any] interface {
	List(ctx context.Context) ([]T, error)
	Add(ctx context.Context, rec T) ([]T, error)
	Delete(ctx context.Context, id string) ([]T, error)
}

// State is the lifecycle of a Collection.
type State int

const (
	Uninitialized State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Data sources a load can end up using.
const (
	SourceRemote = "remote"
	SourceCache  = "cache"
	SourceSeed   = "seed"
)

// Collection is the in-memory copy of one collection.
type Collection[T any] struct {
	name   entity.Collection
	remote Remote[T]
	cache  *fallback.Cache
	seed   func() []T
	logger *slog.Logger

	// opMu serialises loads and mutations so adopted lists land in the
	// order the remote side produced them.
	opMu sync.Mutex

	mu     sync.RWMutex
	state  State
	items  []T
	source string
}

// NewCollection wires a collection. cache may be nil.
func NewCollection[T any](name entity.Collection, remote Remote[T], cache *fallback.Cache, seed func() []T, logger *slog.Logger) *Collection[T] {
	if logger == nil {
		logger = slog.Default()
	}
	if seed == nil {
		seed = func() []T { return nil }
	}
	return &Collection[T]{
		name:   name,
		remote: remote,
		cache:  cache,
		seed:   seed,
		logger: logger,
		items:  []T{},
	}
}

// Load populates the collection the first time it is called. Later calls
// return immediately; use Reload to refresh.
func (c *Collection[T]) Load(ctx context.Context) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.State() == Ready {
		return
	}
	c.load(ctx)
}

// Reload re-enters Loading and fetches the collection again.
func (c *Collection[T]) Reload(ctx context.Context) {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.load(ctx)
}

func (c *Collection[T]) load(ctx context.Context) {
	c.mu.Lock()
	c.state = Loading
	c.mu.Unlock()

	log := logging.WithRequestID(ctx, c.logger).With(slog.String("collection", string(c.name)))

	items, source := c.fetch(ctx, log)
	if source == SourceRemote {
		c.cache.Save(ctx, c.name.CacheKey(), items)
	}
	metrics.RecordStoreLoad(string(c.name), source)
	log.Info("collection loaded", slog.String("source", source), slog.Int("count", len(items)))

	c.mu.Lock()
	c.items = items
	c.source = source
	c.state = Ready
	c.mu.Unlock()
}

func (c *Collection[T]) fetch(ctx context.Context, log *slog.Logger) ([]T, string) {
	remote, err := c.remote.List(ctx)
	if err != nil {
		log.Warn("remote list failed, using fallback", slog.Any("error", err))
	} else if len(remote) > 0 {
		return remote, SourceRemote
	}

	if cached := fallback.Load(ctx, c.cache, c.name.CacheKey(), []T(nil)); len(cached) > 0 {
		return cached, SourceCache
	}

	seed := c.seed()
	if seed == nil {
		seed = []T{}
	}
	return seed, SourceSeed
}

// Add sends rec to the remote side and adopts the returned list. On error the
// in-memory list is left untouched.
func (c *Collection[T]) Add(ctx context.Context, rec T) ([]T, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	updated, err := c.remote.Add(ctx, rec)
	if err != nil {
		return nil, err
	}
	c.adopt(ctx, updated)
	return c.Items(), nil
}

// Delete removes id on the remote side and adopts the returned list. On error
// the in-memory list is left untouched.
func (c *Collection[T]) Delete(ctx context.Context, id string) ([]T, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	updated, err := c.remote.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	c.adopt(ctx, updated)
	return c.Items(), nil
}

// Set replaces the in-memory list, e.g. after the remote document was
// overwritten out of band.
func (c *Collection[T]) Set(ctx context.Context, items []T) {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.adopt(ctx, items)
}

func (c *Collection[T]) adopt(ctx context.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.mu.Lock()
	c.items = append([]T(nil), items...)
	c.source = SourceRemote
	c.state = Ready
	c.mu.Unlock()

	c.cache.Save(ctx, c.name.CacheKey(), items)
}

// Items returns a copy of the current list.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append(make([]T, 0, len(c.items)), c.items...)
}

// State reports the lifecycle state.
func (c *Collection[T]) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Source reports where the current list came from.
func (c *Collection[T]) Source() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source
}
