package content

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"school-cms/internal/domain/entity"
	"school-cms/internal/seed"
)

// Services bundles the content service of every collection.
type Services struct {
	Events  *Service[entity.Event]
	Gallery *Service[entity.GalleryImage]
	News    *Service[entity.NewsArticle]
}

// ResetToSeed overwrites all three collection documents with the default
// seed records. Documents are written concurrently; the first failure is
// returned and the others may already have been replaced.
func (s Services) ResetToSeed(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Events.Replace(gctx, seed.Events()) })
	g.Go(func() error { return s.Gallery.Replace(gctx, seed.Gallery()) })
	g.Go(func() error { return s.News.Replace(gctx, seed.News()) })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("reset to seed: %w", err)
	}
	return nil
}
