// Package fallback keeps a local copy of the last known good content so the
// site can still render when the remote store is unreachable.
//
// Every failure in this package is logged and swallowed: a broken cache must
// never break a page.
package fallback

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"school-cms/internal/observability/metrics"
)

// ErrMiss is returned by a Backend when the key holds no value.
var ErrMiss = errors.New("fallback: key not found")

// Backend is a string-keyed byte store.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Cache serialises values as JSON into a Backend.
// A nil *Cache is valid and behaves as an always-empty cache.
type Cache struct {
	backend Backend
	logger  *slog.Logger
}

// New wraps backend. A nil backend yields a cache that stores nothing.
func New(backend Backend, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	if backend == nil {
		backend = None{}
	}
	return &Cache{backend: backend, logger: logger}
}

// Load returns the cached value under key, or def when the key is absent,
// the stored value does not decode as T, or the backend fails.
func Load[T any](ctx context.Context, c *Cache, key string, def T) T {
	if c == nil {
		return def
	}

	raw, err := c.backend.Get(ctx, key)
	switch {
	case errors.Is(err, ErrMiss) || (err == nil && len(raw) == 0):
		metrics.RecordCacheOp("get", "miss")
		return def
	case err != nil:
		metrics.RecordCacheOp("get", "error")
		c.logger.Warn("fallback cache read failed",
			slog.String("key", key),
			slog.Any("error", err))
		return def
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		metrics.RecordCacheOp("get", "corrupt")
		c.logger.Warn("fallback cache value is corrupt, using default",
			slog.String("key", key),
			slog.Any("error", err))
		return def
	}
	metrics.RecordCacheOp("get", "hit")
	return v
}

// Save stores v under key. Failures are logged, never returned.
func (c *Cache) Save(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		metrics.RecordCacheOp("set", "error")
		c.logger.Error("fallback cache encode failed",
			slog.String("key", key),
			slog.Any("error", err))
		return
	}
	if err := c.backend.Set(ctx, key, raw); err != nil {
		metrics.RecordCacheOp("set", "error")
		c.logger.Warn("fallback cache write failed",
			slog.String("key", key),
			slog.Any("error", err))
		return
	}
	metrics.RecordCacheOp("set", "success")
}

// None discards writes and never holds a value.
type None struct{}

func (None) Get(context.Context, string) ([]byte, error) { return nil, ErrMiss }
func (None) Set(context.Context, string, []byte) error   { return nil }
