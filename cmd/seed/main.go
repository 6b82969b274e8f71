// Package main writes the default site content to the object store.
// Usage: seed [-force] [-list]
//
// Without -force, collections that already hold records are left alone.
// With -list, nothing is written and the documents under content/ are printed.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"school-cms/internal/config"
	"school-cms/internal/domain/entity"
	"school-cms/internal/infra/adapter/blob"
	"school-cms/internal/infra/objectstore"
	"school-cms/internal/observability/logging"
	contentUC "school-cms/internal/usecase/content"
)

func main() {
	var force, listOnly bool
	flag.BoolVar(&force, "force", false, "Overwrite collections that already hold records")
	flag.BoolVar(&listOnly, "list", false, "Only list the stored content documents")
	flag.Parse()

	// .env は任意
	_ = godotenv.Load()

	logger := logging.New(os.Stderr, os.Getenv("LOG_LEVEL"), "text")
	slog.SetDefault(logger)

	blobCfg, err := env.ParseAsWithOptions[config.BlobConfig](env.Options{Prefix: "BLOB_"})
	if err != nil {
		logger.Error("failed to load blob configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if !blobCfg.UseAPI() {
		fmt.Fprintln(os.Stderr, "Error: BLOB_READ_WRITE_TOKEN is required")
		os.Exit(1)
	}

	store := objectstore.NewBlobAPI(objectstore.BlobAPIConfig{
		BaseURL: blobCfg.BaseURL,
		Token:   blobCfg.Token,
		Timeout: blobCfg.Timeout,
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if !listOnly {
		if err := seedStore(ctx, store, force, logger); err != nil {
			logger.Error("seeding failed", slog.Any("error", err))
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Seed data written.")
	}

	if err := listDocuments(ctx, store, os.Stdout); err != nil {
		logger.Error("listing failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// listDocuments prints every object under content/, all versions included.
func listDocuments(ctx context.Context, store objectstore.Store, w io.Writer) error {
	objs, err := store.List(ctx, "content/")
	if err != nil {
		return fmt.Errorf("list content: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATHNAME\tSIZE\tUPLOADED")
	for _, o := range objs {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", o.Pathname, o.Size, o.UploadedAt.UTC().Format(time.RFC3339))
	}
	return tw.Flush()
}

// seedStore writes the seed collections. Without force it refuses when any
// collection already holds records or when the stored documents cannot be
// read back.
func seedStore(ctx context.Context, store objectstore.Store, force bool, logger *slog.Logger) error {
	if !force {
		counts, err := existingRecords(ctx, store)
		if err != nil {
			return fmt.Errorf("check existing content (use -force to overwrite): %w", err)
		}
		for _, c := range entity.Collections {
			if counts[c] > 0 {
				return fmt.Errorf("collection %s already has %d records (use -force to overwrite)", c, counts[c])
			}
		}
	}

	repo := blob.NewCollectionRepo(store, logger)
	svcs := contentUC.Services{
		Events:  contentUC.NewService[entity.Event](repo, entity.CollectionEvents, logger),
		Gallery: contentUC.NewService[entity.GalleryImage](repo, entity.CollectionGallery, logger),
		News:    contentUC.NewService[entity.NewsArticle](repo, entity.CollectionNews, logger),
	}
	if err := svcs.ResetToSeed(ctx); err != nil {
		return err
	}
	logger.Info("seed data written", slog.Bool("force", force))
	return nil
}

// existingRecords counts the records in the newest document of every
// collection. Unlike the collection repository it reports list, open and
// decode failures instead of treating them as empty.
func existingRecords(ctx context.Context, store objectstore.Store) (map[entity.Collection]int, error) {
	objs, err := store.List(ctx, "content/")
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}

	counts := make(map[entity.Collection]int, len(entity.Collections))
	for _, c := range entity.Collections {
		obj, ok := blob.Newest(objs, c.Key())
		if !ok {
			continue
		}
		n, err := countRecords(ctx, store, obj)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", obj.Pathname, err)
		}
		counts[c] = n
	}
	return counts, nil
}

func countRecords(ctx context.Context, store objectstore.Store, obj objectstore.Object) (int, error) {
	rc, err := store.Open(ctx, obj)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rc.Close() }()

	var records []json.RawMessage
	if err := json.NewDecoder(rc).Decode(&records); err != nil {
		return 0, fmt.Errorf("decode: %w", err)
	}
	return len(records), nil
}
