package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-cms/internal/domain/entity"
	hcontent "school-cms/internal/handler/http/content"
	"school-cms/internal/infra/adapter/blob"
	"school-cms/internal/infra/objectstore"
	contentUC "school-cms/internal/usecase/content"
)

// newAPI serves /content backed by an in-memory object store and a fixed token.
func newAPI(t *testing.T) *httptest.Server {
	t.Helper()

	repo := blob.NewCollectionRepo(objectstore.NewMemory(), nil)
	events := contentUC.NewService[entity.Event](repo, entity.CollectionEvents, nil)
	gallery := contentUC.NewService[entity.GalleryImage](repo, entity.CollectionGallery, nil)
	news := contentUC.NewService[entity.NewsArticle](repo, entity.CollectionNews, nil)

	_, err := events.Add(context.Background(), entity.Event{
		Title: "Science Fair", Date: "2025-04-10", Category: "Academic", Status: entity.EventUpcoming,
	})
	require.NoError(t, err)

	authz := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer test-token" {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}

	mux := http.NewServeMux()
	hcontent.Register(mux, hcontent.Collections{
		Events:  hcontent.Collection[entity.Event]{Name: entity.CollectionEvents, Reader: events, Writer: events},
		Gallery: hcontent.Collection[entity.GalleryImage]{Name: entity.CollectionGallery, Reader: gallery, Writer: gallery},
		News:    hcontent.Collection[entity.NewsArticle]{Name: entity.CollectionNews, Reader: news, Writer: news},
	}, authz)
	mux.HandleFunc("POST /auth/token", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"test-token"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), err
}

func TestList_FromAPI(t *testing.T) {
	srv := newAPI(t)

	out, err := runCLI(t, "", "-api", srv.URL, "-cache-dir", t.TempDir(), "list", "events")

	require.NoError(t, err)
	assert.Contains(t, out, "Science Fair")
	assert.Contains(t, out, "upcoming")
}

func TestList_SeedWhenEmpty(t *testing.T) {
	srv := newAPI(t)

	out, err := runCLI(t, "", "-api", srv.URL, "-cache-dir", t.TempDir(), "-output", "json", "list", "news")

	require.NoError(t, err)
	var news []entity.NewsArticle
	require.NoError(t, json.Unmarshal([]byte(out), &news))
	assert.NotEmpty(t, news, "empty remote collection falls back to seed data")
}

func TestAdd_ThenOffline(t *testing.T) {
	srv := newAPI(t)
	cacheDir := t.TempDir()

	out, err := runCLI(t, `{"title":"Term Results","content":"Published today","status":"published"}`,
		"-api", srv.URL, "-cache-dir", cacheDir, "-email", "admin@school.example", "-password", "secret",
		"-output", "json", "add", "news", "-")
	require.NoError(t, err)

	var news []entity.NewsArticle
	require.NoError(t, json.Unmarshal([]byte(out), &news))
	require.Len(t, news, 1)
	assert.Equal(t, "Term Results", news[0].Title)
	assert.NotEmpty(t, news[0].ID)

	// API 停止後はキャッシュから読む
	srv.Close()
	out, err = runCLI(t, "", "-api", srv.URL, "-cache-dir", cacheDir, "home")
	require.NoError(t, err)
	assert.Contains(t, out, "Term Results")
}

func TestAdd_Errors(t *testing.T) {
	srv := newAPI(t)

	_, err := runCLI(t, `{}`, "-api", srv.URL, "-cache-dir", t.TempDir(), "add", "news", "-")
	assert.ErrorContains(t, err, "admin credentials required")

	_, err = runCLI(t, `{}`, "-api", srv.URL, "-cache-dir", t.TempDir(),
		"-email", "a@b.c", "-password", "wrong", "add", "news", "-")
	assert.ErrorContains(t, err, "login")

	_, err = runCLI(t, `{"title":""}`, "-api", srv.URL, "-cache-dir", t.TempDir(),
		"-email", "a@b.c", "-password", "secret", "add", "events", "-")
	assert.ErrorContains(t, err, "title is a required field")
}

func TestUsage(t *testing.T) {
	_, err := runCLI(t, "", "-cache-dir", t.TempDir())
	assert.ErrorIs(t, err, errUsage)

	_, err = runCLI(t, "", "-api", "http://127.0.0.1:0", "-cache-dir", t.TempDir(), "list")
	assert.ErrorIs(t, err, errUsage)
}
