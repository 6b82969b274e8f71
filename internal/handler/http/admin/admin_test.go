package admin_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-cms/internal/domain/entity"
	"school-cms/internal/handler/http/admin"
	"school-cms/internal/infra/adapter/blob"
	"school-cms/internal/infra/fallback"
	"school-cms/internal/infra/objectstore"
	"school-cms/internal/seed"
	contentUC "school-cms/internal/usecase/content"
	siteUC "school-cms/internal/usecase/site"
)

func passthrough(h http.Handler) http.Handler { return h }

func newServices(store objectstore.Store) contentUC.Services {
	repo := blob.NewCollectionRepo(store, nil)
	return contentUC.Services{
		Events:  contentUC.NewService[entity.Event](repo, entity.CollectionEvents, nil),
		Gallery: contentUC.NewService[entity.GalleryImage](repo, entity.CollectionGallery, nil),
		News:    contentUC.NewService[entity.NewsArticle](repo, entity.CollectionNews, nil),
	}
}

func TestReset_WritesSeedAndReloads(t *testing.T) {
	store := objectstore.NewMemory()
	svcs := newServices(store)

	// 既存データを 1 件作っておく
	_, err := svcs.News.Add(context.Background(), entity.NewsArticle{Title: "Old", Content: "x", Status: entity.NewsDraft})
	require.NoError(t, err)

	site := siteUC.NewStore(siteUC.Remotes{Events: svcs.Events, Gallery: svcs.Gallery, News: svcs.News},
		fallback.New(fallback.NewMemory(), nil), nil)
	require.NoError(t, site.Load(context.Background()))
	require.Len(t, site.News.Items(), 1)

	mux := http.NewServeMux()
	admin.Register(mux, admin.ResetHandler{Content: svcs, Site: site}, admin.BlobsHandler{Store: store}, passthrough)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/admin/reset", nil))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, seed.News(), site.News.Items())
	assert.Equal(t, seed.Events(), site.Events.Items())
	assert.Equal(t, siteUC.SourceRemote, site.Gallery.Source())
}

type failingResetter struct{}

func (failingResetter) ResetToSeed(context.Context) error { return errors.New("put failed: Bearer abc") }

type countingReloader struct{ calls int }

func (c *countingReloader) Reload(context.Context) error { c.calls++; return nil }

func TestReset_Failure(t *testing.T) {
	reloader := &countingReloader{}
	rr := httptest.NewRecorder()
	admin.ResetHandler{Content: failingResetter{}, Site: reloader}.
		ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/admin/reset", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"failed to reset content"}`, rr.Body.String())
	assert.Zero(t, reloader.calls)
}

func TestBlobs_ListsContentVersions(t *testing.T) {
	store := objectstore.NewMemory()
	for _, p := range []string{"content/events.json", "content/events.json", "gallery/1-a.png"} {
		_, err := store.Put(context.Background(), p, strings.NewReader("[]"), objectstore.PutOptions{AddRandomSuffix: true})
		require.NoError(t, err)
	}

	rr := httptest.NewRecorder()
	admin.BlobsHandler{Store: store}.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/blobs", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got admin.BlobsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Count)
	for _, b := range got.Blobs {
		assert.True(t, strings.HasPrefix(b.Pathname, "content/events-"), b.Pathname)
		assert.EqualValues(t, 2, b.Size)
	}
}

func TestBlobs_StoreDown(t *testing.T) {
	store := objectstore.NewMemory()
	store.ListErr = errors.New("dial tcp: refused")

	rr := httptest.NewRecorder()
	admin.BlobsHandler{Store: store}.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/blobs", nil))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.JSONEq(t, `{"error":"object store unavailable"}`, rr.Body.String())
}
