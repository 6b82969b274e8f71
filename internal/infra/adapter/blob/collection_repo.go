// Package blob implements repository.CollectionRepository on top of an object
// store. Each write creates a new object; the newest object under a key is the
// current version of the document.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"school-cms/internal/infra/objectstore"
	"school-cms/internal/observability/logging"
	"school-cms/internal/observability/metrics"
	"school-cms/internal/observability/tracing"
	"school-cms/internal/repository"
)

// maxDocumentBytes bounds a single collection document read.
const maxDocumentBytes = 16 << 20

// CollectionRepo keeps each collection as versioned JSON documents in an
// object store. Every write uploads a new version; reads pick the newest.
type CollectionRepo struct {
	store  objectstore.Store
	logger *slog.Logger
}

// NewCollectionRepo returns a repository backed by store. logger defaults to
// slog.Default.
func NewCollectionRepo(store objectstore.Store, logger *slog.Logger) repository.CollectionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CollectionRepo{store: store, logger: logger}
}

// ReadCollection returns the bytes of the most recently uploaded version of
// key, or nil when none exists or anything along the way fails.
func (repo *CollectionRepo) ReadCollection(ctx context.Context, key string) []byte {
	ctx, span := tracing.GetTracer().Start(ctx, "objectstore.read")
	defer span.End()
	span.SetAttributes(attribute.String("content.key", key))

	start := time.Now()
	doc, err := repo.read(ctx, key)
	metrics.RecordObjectStoreOp("read", time.Since(start), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		logging.WithRequestID(ctx, repo.logger).Warn("collection read failed, treating as empty",
			slog.String("key", key),
			slog.Any("error", err))
		return nil
	}
	span.SetAttributes(attribute.Int("content.bytes", len(doc)))
	return doc
}

func (repo *CollectionRepo) read(ctx context.Context, key string) ([]byte, error) {
	// "content/events.json" -> prefix "content/events" でサフィックス付きも拾う
	prefix := key[:len(key)-len(path.Ext(key))]

	objs, err := repo.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}

	newest, ok := Newest(objs, key)
	if !ok {
		return nil, nil
	}

	rc, err := repo.store.Open(ctx, newest)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", newest.Pathname, err)
	}
	defer func() { _ = rc.Close() }()

	doc, err := io.ReadAll(io.LimitReader(rc, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", newest.Pathname, err)
	}
	return doc, nil
}

// WriteCollection uploads doc as a new version of key.
func (repo *CollectionRepo) WriteCollection(ctx context.Context, key string, doc []byte) error {
	ctx, span := tracing.GetTracer().Start(ctx, "objectstore.write")
	defer span.End()
	span.SetAttributes(
		attribute.String("content.key", key),
		attribute.Int("content.bytes", len(doc)),
	)

	start := time.Now()
	obj, err := repo.store.Put(ctx, key, bytes.NewReader(doc), objectstore.PutOptions{
		ContentType:     "application/json",
		AddRandomSuffix: true,
	})
	metrics.RecordObjectStoreOp("write", time.Since(start), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write failed")
		return fmt.Errorf("put %s: %w", key, err)
	}

	logging.WithRequestID(ctx, repo.logger).Debug("collection written",
		slog.String("key", key),
		slog.String("pathname", obj.Pathname),
		slog.Int("bytes", len(doc)))
	return nil
}

// Newest picks the most recently uploaded object that is a version of key.
// Ties keep the later entry of the listing.
func Newest(objs []objectstore.Object, key string) (objectstore.Object, bool) {
	var (
		best  objectstore.Object
		found bool
	)
	for _, o := range objs {
		if !objectstore.IsVersionOf(o.Pathname, key) {
			continue
		}
		if !found || !o.UploadedAt.Before(best.UploadedAt) {
			best, found = o, true
		}
	}
	return best, found
}
