package feed_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-cms/internal/domain/entity"
	"school-cms/internal/handler/http/feed"
)

func TestNewsFeed(t *testing.T) {
	h := feed.Handler{
		News: func() []entity.NewsArticle {
			return []entity.NewsArticle{
				{ID: "n2", Title: "Sports Day <Results>", Content: "House A & B tied", PublishDate: "2025-03-02", Status: entity.NewsPublished},
				{ID: "n1", Title: "Term Begins", Content: "Welcome back", PublishDate: "2025-01-06", Status: entity.NewsPublished},
			}
		},
		Title:       "Green Valley School News",
		Description: "Announcements",
		SiteURL:     "https://school.example/",
		Now:         func() time.Time { return time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC) },
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/feed/news.xml", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "application/rss+xml"))

	parsed, err := gofeed.NewParser().ParseString(rr.Body.String())
	require.NoError(t, err)
	assert.Equal(t, "rss", parsed.FeedType)
	assert.Equal(t, "Green Valley School News", parsed.Title)
	assert.Equal(t, "https://school.example/news", parsed.Link)

	require.Len(t, parsed.Items, 2)
	assert.Equal(t, "Sports Day <Results>", parsed.Items[0].Title, "special characters survive escaping")
	assert.Equal(t, "House A & B tied", parsed.Items[0].Description)
	assert.Equal(t, "n2", parsed.Items[0].GUID)
	require.NotNil(t, parsed.Items[0].PublishedParsed)
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), parsed.Items[0].PublishedParsed.UTC())
	assert.Equal(t, "Term Begins", parsed.Items[1].Title)
}

func TestNewsFeed_Empty(t *testing.T) {
	h := feed.Handler{News: func() []entity.NewsArticle { return nil }, Title: "News", SiteURL: "http://localhost"}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/feed/news.xml", nil))

	parsed, err := gofeed.NewParser().ParseString(rr.Body.String())
	require.NoError(t, err)
	assert.Empty(t, parsed.Items)
}
