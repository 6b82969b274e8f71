package site

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"school-cms/internal/domain/entity"
	"school-cms/internal/infra/fallback"
	"school-cms/internal/seed"
)

// highlightLimit is the number of records shown by the home page views.
const highlightLimit = 3

// Store groups the three site collections.
type Store struct {
	Events  *Collection[entity.Event]
	Gallery *Collection[entity.GalleryImage]
	News    *Collection[entity.NewsArticle]
}

// Remotes bundles the authoritative side of each collection.
type Remotes struct {
	Events  Remote[entity.Event]
	Gallery Remote[entity.GalleryImage]
	News    Remote[entity.NewsArticle]
}

// NewStore builds a Store seeded with the default site content.
func NewStore(r Remotes, cache *fallback.Cache, logger *slog.Logger) *Store {
	return &Store{
		Events:  NewCollection(entity.CollectionEvents, r.Events, cache, seed.Events, logger),
		Gallery: NewCollection(entity.CollectionGallery, r.Gallery, cache, seed.Gallery, logger),
		News:    NewCollection(entity.CollectionNews, r.News, cache, seed.News, logger),
	}
}

// Load loads all collections concurrently. Collections never fail to load,
// so the only error is a cancelled context.
func (s *Store) Load(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { s.Events.Load(gctx); return nil })
	g.Go(func() error { s.Gallery.Load(gctx); return nil })
	g.Go(func() error { s.News.Load(gctx); return nil })
	_ = g.Wait()
	return ctx.Err()
}

// Reload refreshes all collections concurrently.
func (s *Store) Reload(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { s.Events.Reload(gctx); return nil })
	g.Go(func() error { s.Gallery.Reload(gctx); return nil })
	g.Go(func() error { s.News.Reload(gctx); return nil })
	_ = g.Wait()
	return ctx.Err()
}

// Ready reports whether every collection finished loading.
func (s *Store) Ready() bool {
	return s.Events.State() == Ready && s.Gallery.State() == Ready && s.News.State() == Ready
}

// UpcomingEvents returns up to three events with status "upcoming" in list order.
func (s *Store) UpcomingEvents() []entity.Event {
	return firstN(s.Events.Items(), highlightLimit, func(e entity.Event) bool {
		return e.Status == entity.EventUpcoming
	})
}

// PublishedNews returns up to three published articles in list order.
func (s *Store) PublishedNews() []entity.NewsArticle {
	return firstN(s.News.Items(), highlightLimit, func(n entity.NewsArticle) bool {
		return n.Status == entity.NewsPublished
	})
}

// AllPublishedNews returns every published article in list order.
func (s *Store) AllPublishedNews() []entity.NewsArticle {
	return firstN(s.News.Items(), -1, func(n entity.NewsArticle) bool {
		return n.Status == entity.NewsPublished
	})
}

// firstN keeps items matching keep, stopping after n (n < 0 means no limit).
func firstN[T any](items []T, n int, keep func(T) bool) []T {
	out := []T{}
	for _, it := range items {
		if n >= 0 && len(out) == n {
			break
		}
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
