// Package main provides a CLI that drives the school site content API the way
// the admin area does: it loads the collections into a local site store,
// falls back to an on-disk cache when the API is unreachable, and applies
// add/delete through the API.
//
// Usage:
//
//	sitectl [flags] home
//	sitectl [flags] list <events|gallery|news>
//	sitectl [flags] add <events|gallery|news> <record.json|->
//	sitectl [flags] delete <events|gallery|news> <id>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"school-cms/internal/domain/entity"
	"school-cms/internal/infra/contentapi"
	"school-cms/internal/infra/fallback"
	"school-cms/internal/observability/logging"
	siteUC "school-cms/internal/usecase/site"
)

const usage = `Usage: sitectl [flags] <command> [args]

Commands:
  home                          upcoming events and published news
  list   <collection>           current list of a collection
  add    <collection> <file|->  create a record from JSON (admin)
  delete <collection> <id>      delete a record (admin)

Collections: events, gallery, news

Flags:
`

// errUsage signals a command line mistake; main prints usage for it.
var errUsage = errors.New("invalid usage")

type options struct {
	apiURL   string
	cacheDir string
	email    string
	password string
	output   string
	timeout  time.Duration
	logLevel string
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options
	fs := flag.NewFlagSet("sitectl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.apiURL, "api", envOr("SITECTL_API_URL", "http://localhost:8080"), "Content API base URL")
	fs.StringVar(&opts.cacheDir, "cache-dir", envOr("SITECTL_CACHE_DIR", defaultCacheDir()), "Directory for the offline fallback cache")
	fs.StringVar(&opts.email, "email", os.Getenv("SITECTL_EMAIL"), "Admin email (add/delete)")
	fs.StringVar(&opts.password, "password", os.Getenv("SITECTL_PASSWORD"), "Admin password (add/delete)")
	fs.StringVar(&opts.output, "output", "text", "Output format: text or json")
	fs.DurationVar(&opts.timeout, "timeout", 30*time.Second, "Overall timeout")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "Log level")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errUsage
	}

	logger := logging.New(stderr, opts.logLevel, "text")

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	var cacheBackend fallback.Backend = fallback.None{}
	if f, err := fallback.NewFile(opts.cacheDir); err != nil {
		logger.Warn("offline cache unavailable", slog.Any("error", err))
	} else {
		cacheBackend = f
	}

	client := contentapi.NewClient(opts.apiURL, nil)
	store := siteUC.NewStore(siteUC.Remotes{
		Events:  contentapi.Collection[entity.Event](client, entity.CollectionEvents),
		Gallery: contentapi.Collection[entity.GalleryImage](client, entity.CollectionGallery),
		News:    contentapi.Collection[entity.NewsArticle](client, entity.CollectionNews),
	}, fallback.New(cacheBackend, logger), logger)

	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("load site content: %w", err)
	}

	p := printer{w: stdout, json: opts.output == "json"}

	switch cmd := rest[0]; cmd {
	case "home":
		return p.home(store)

	case "list":
		if len(rest) != 2 {
			fs.Usage()
			return errUsage
		}
		c, err := entity.ParseCollection(rest[1])
		if err != nil {
			return err
		}
		return p.list(store, c)

	case "add", "delete":
		if len(rest) != 3 {
			fs.Usage()
			return errUsage
		}
		c, err := entity.ParseCollection(rest[1])
		if err != nil {
			return err
		}
		if err := login(ctx, client, opts); err != nil {
			return err
		}
		if cmd == "add" {
			raw, err := readInput(rest[2], stdin)
			if err != nil {
				return err
			}
			if err := add(ctx, store, c, raw); err != nil {
				return err
			}
		} else if err := remove(ctx, store, c, rest[2]); err != nil {
			return err
		}
		return p.list(store, c)

	default:
		fs.Usage()
		return errUsage
	}
}

func login(ctx context.Context, client *contentapi.Client, opts options) error {
	if opts.email == "" || opts.password == "" {
		return errors.New("admin credentials required: set -email and -password (or SITECTL_EMAIL / SITECTL_PASSWORD)")
	}
	if _, err := client.Login(ctx, opts.email, opts.password); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name) // #nosec G304 - path supplied by the operator
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".sitectl-cache"
	}
	return filepath.Join(dir, "sitectl")
}
