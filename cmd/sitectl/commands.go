package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"school-cms/internal/domain/entity"
	siteUC "school-cms/internal/usecase/site"
)

func add(ctx context.Context, store *siteUC.Store, c entity.Collection, raw []byte) error {
	switch c {
	case entity.CollectionEvents:
		return addTo(ctx, store.Events, raw)
	case entity.CollectionGallery:
		return addTo(ctx, store.Gallery, raw)
	default:
		return addTo(ctx, store.News, raw)
	}
}

func addTo[T any](ctx context.Context, col *siteUC.Collection[T], raw []byte) error {
	var rec T
	if err := json.Unmarshal(raw, &rec); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if _, err := col.Add(ctx, rec); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	return nil
}

func remove(ctx context.Context, store *siteUC.Store, c entity.Collection, id string) error {
	var err error
	switch c {
	case entity.CollectionEvents:
		_, err = store.Events.Delete(ctx, id)
	case entity.CollectionGallery:
		_, err = store.Gallery.Delete(ctx, id)
	default:
		_, err = store.News.Delete(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

type printer struct {
	w    io.Writer
	json bool
}

func (p printer) encode(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p printer) home(store *siteUC.Store) error {
	events, news := store.UpcomingEvents(), store.PublishedNews()
	if p.json {
		return p.encode(map[string]any{"upcomingEvents": events, "publishedNews": news})
	}

	fmt.Fprintln(p.w, "Upcoming events")
	p.events(events)
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, "Latest news")
	p.news(news)
	return nil
}

func (p printer) list(store *siteUC.Store, c entity.Collection) error {
	switch c {
	case entity.CollectionEvents:
		if p.json {
			return p.encode(store.Events.Items())
		}
		p.events(store.Events.Items())
	case entity.CollectionGallery:
		if p.json {
			return p.encode(store.Gallery.Items())
		}
		p.gallery(store.Gallery.Items())
	default:
		if p.json {
			return p.encode(store.News.Items())
		}
		p.news(store.News.Items())
	}
	return nil
}

func (p printer) events(items []entity.Event) {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tSTATUS\tCATEGORY\tTITLE")
	for _, e := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Date, e.Status, e.Category, e.Title)
	}
	_ = tw.Flush()
}

func (p printer) gallery(items []entity.GalleryImage) {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUPLOADED\tCATEGORY\tTITLE\tSRC")
	for _, g := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", g.ID, g.UploadDate, g.Category, g.Title, g.Src)
	}
	_ = tw.Flush()
}

func (p printer) news(items []entity.NewsArticle) {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tSTATUS\tTITLE")
	for _, n := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID, n.PublishDate, n.Status, n.Title)
	}
	_ = tw.Flush()
}
