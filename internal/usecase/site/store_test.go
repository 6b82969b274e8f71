package site_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-cms/internal/domain/entity"
	"school-cms/internal/infra/fallback"
	"school-cms/internal/seed"
	"school-cms/internal/usecase/site"
)

/*────────────────────  スタブ  ────────────────────*/

type stubRemote[T entity.Record[T]] struct {
	mu      sync.Mutex
	items   []T
	listErr error
	mutErr  error
	nextID  int
}

func (s *stubRemote[T]) List(context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]T(nil), s.items...), nil
}

func (s *stubRemote[T]) Add(_ context.Context, rec T) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mutErr != nil {
		return nil, s.mutErr
	}
	s.nextID++
	s.items = append([]T{rec.Stamp(string(rune('a'+s.nextID-1)), fixedNow)}, s.items...)
	return append([]T(nil), s.items...), nil
}

func (s *stubRemote[T]) Delete(_ context.Context, id string) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mutErr != nil {
		return nil, s.mutErr
	}
	kept := []T{}
	for _, it := range s.items {
		if it.RecordID() != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
	return append([]T(nil), kept...), nil
}

type remotes struct {
	events  *stubRemote[entity.Event]
	gallery *stubRemote[entity.GalleryImage]
	news    *stubRemote[entity.NewsArticle]
}

func newStore(cache *fallback.Cache) (*site.Store, remotes) {
	r := remotes{
		events:  &stubRemote[entity.Event]{},
		gallery: &stubRemote[entity.GalleryImage]{},
		news:    &stubRemote[entity.NewsArticle]{},
	}
	s := site.NewStore(site.Remotes{Events: r.events, Gallery: r.gallery, News: r.news}, cache, nil)
	return s, r
}

/*────────────────────  Load  ────────────────────*/

func TestStore_Load_fromRemoteMirrorsToCache(t *testing.T) {
	ctx := context.Background()
	cache := fallback.New(fallback.NewMemory(), nil)
	s, r := newStore(cache)
	r.events.items = []entity.Event{{ID: "r1", Title: "Remote", Status: entity.EventUpcoming}}

	assert.Equal(t, site.Uninitialized, s.Events.State())
	require.NoError(t, s.Load(ctx))

	assert.True(t, s.Ready())
	assert.Equal(t, site.SourceRemote, s.Events.Source())
	assert.Equal(t, "r1", s.Events.Items()[0].ID)

	cached := fallback.Load(ctx, cache, entity.CollectionEvents.CacheKey(), []entity.Event(nil))
	assert.Equal(t, r.events.items, cached)
}

func TestStore_Load_outageUsesCache(t *testing.T) {
	ctx := context.Background()
	cache := fallback.New(fallback.NewMemory(), nil)
	cache.Save(ctx, entity.CollectionNews.CacheKey(), []entity.NewsArticle{{ID: "c1", Status: entity.NewsPublished}})

	s, r := newStore(cache)
	r.news.listErr = errors.New("connection refused")

	require.NoError(t, s.Load(ctx))
	assert.Equal(t, site.SourceCache, s.News.Source())
	assert.Equal(t, "c1", s.News.Items()[0].ID)
	assert.Equal(t, site.Ready, s.News.State())
}

func TestStore_Load_emptyEverywhereUsesSeed(t *testing.T) {
	s, r := newStore(fallback.New(fallback.NewMemory(), nil))
	r.gallery.listErr = errors.New("403")

	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, site.SourceSeed, s.Gallery.Source())
	assert.Equal(t, seed.Gallery(), s.Gallery.Items())
	assert.Equal(t, seed.Events(), s.Events.Items(), "empty remote also falls through to seed")
}

func TestStore_Load_nilCache(t *testing.T) {
	s, _ := newStore(nil)
	require.NoError(t, s.Load(context.Background()))
	assert.Len(t, s.News.Items(), 3)
}

func TestCollection_LoadOnlyOnce(t *testing.T) {
	ctx := context.Background()
	s, r := newStore(nil)
	r.events.items = []entity.Event{{ID: "1"}}
	s.Events.Load(ctx)

	r.events.items = []entity.Event{{ID: "2"}}
	s.Events.Load(ctx)
	assert.Equal(t, "1", s.Events.Items()[0].ID, "Load does not refetch once Ready")

	require.NoError(t, s.Reload(ctx))
	assert.Equal(t, "2", s.Events.Items()[0].ID)
}

/*────────────────────  Add / Delete  ────────────────────*/

func TestCollection_AddAdoptsAuthoritativeList(t *testing.T) {
	ctx := context.Background()
	cache := fallback.New(fallback.NewMemory(), nil)
	s, _ := newStore(cache)
	require.NoError(t, s.Load(ctx))

	got, err := s.Events.Add(ctx, entity.Event{Title: "Founders Day", Date: "2025-01-10", Status: entity.EventUpcoming})
	require.NoError(t, err)

	require.Len(t, got, 1, "seed data is replaced by the server list")
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, got, s.Events.Items())
	assert.Equal(t, got, fallback.Load(ctx, cache, "site_events", []entity.Event(nil)))
}

func TestCollection_FailedMutationLeavesMemory(t *testing.T) {
	ctx := context.Background()
	s, r := newStore(nil)
	r.news.items = []entity.NewsArticle{{ID: "n1"}, {ID: "n2"}}
	require.NoError(t, s.Load(ctx))

	r.news.mutErr = errors.New("write failed")

	_, err := s.News.Add(ctx, entity.NewsArticle{Title: "x"})
	assert.Error(t, err)
	_, err = s.News.Delete(ctx, "n1")
	assert.Error(t, err)

	assert.Len(t, s.News.Items(), 2)
}

func TestCollection_Delete(t *testing.T) {
	ctx := context.Background()
	s, r := newStore(nil)
	r.gallery.items = []entity.GalleryImage{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	require.NoError(t, s.Load(ctx))

	got, err := s.Gallery.Delete(ctx, "2")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.Gallery.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

// slowFirstAdd holds back the response of the first Add until release is
// closed, after the inner remote has already applied it.
type slowFirstAdd struct {
	*stubRemote[entity.Event]
	once    sync.Once
	applied chan struct{}
	release chan struct{}
}

func (s *slowFirstAdd) Add(ctx context.Context, rec entity.Event) ([]entity.Event, error) {
	out, err := s.stubRemote.Add(ctx, rec)
	first := false
	s.once.Do(func() { first = true })
	if first {
		close(s.applied)
		<-s.release
	}
	return out, err
}

func TestCollection_ConcurrentAddsAdoptInOrder(t *testing.T) {
	ctx := context.Background()
	remote := &slowFirstAdd{
		stubRemote: &stubRemote[entity.Event]{},
		applied:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	c := site.NewCollection[entity.Event](entity.CollectionEvents, remote, nil, nil, nil)
	c.Load(ctx)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := c.Add(ctx, entity.Event{Title: "Founders Day"})
		assert.NoError(t, err)
	}()
	<-remote.applied

	secondDone := make(chan []entity.Event, 1)
	go func() {
		defer wg.Done()
		got, err := c.Add(ctx, entity.Event{Title: "Sports Day"})
		assert.NoError(t, err)
		secondDone <- got
	}()

	// 2 件目は 1 件目の反映が終わるまで待たされる
	select {
	case <-secondDone:
		t.Fatal("second Add finished while the first was still in flight")
	case <-time.After(30 * time.Millisecond):
	}
	close(remote.release)
	wg.Wait()

	second := <-secondDone
	require.Len(t, second, 2)
	assert.Equal(t, second, c.Items(), "memory holds the newest confirmed list")

	doc, err := remote.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, c.Items())
}

func TestCollection_ReloadWaitsForMutation(t *testing.T) {
	ctx := context.Background()
	remote := &slowFirstAdd{
		stubRemote: &stubRemote[entity.Event]{},
		applied:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	c := site.NewCollection[entity.Event](entity.CollectionEvents, remote, nil, nil, nil)
	c.Load(ctx)

	addDone := make(chan struct{})
	go func() {
		defer close(addDone)
		_, _ = c.Add(ctx, entity.Event{Title: "Founders Day"})
	}()
	<-remote.applied

	reloaded := make(chan struct{})
	go func() {
		c.Reload(ctx)
		close(reloaded)
	}()

	select {
	case <-reloaded:
		t.Fatal("Reload ran during an in-flight Add")
	case <-time.After(30 * time.Millisecond):
	}
	close(remote.release)
	<-addDone
	<-reloaded

	assert.Len(t, c.Items(), 1)
	assert.Equal(t, site.Ready, c.State())
}

func TestCollection_ItemsIsACopy(t *testing.T) {
	s, r := newStore(nil)
	r.events.items = []entity.Event{{ID: "1", Title: "orig"}}
	s.Events.Load(context.Background())

	items := s.Events.Items()
	items[0].Title = "mutated"
	assert.Equal(t, "orig", s.Events.Items()[0].Title)
}

/*────────────────────  派生ビュー  ────────────────────*/

func TestStore_UpcomingEvents(t *testing.T) {
	s, r := newStore(nil)
	r.events.items = []entity.Event{
		{ID: "1", Status: entity.EventUpcoming},
		{ID: "2", Status: entity.EventCompleted},
		{ID: "3", Status: entity.EventUpcoming},
		{ID: "4", Status: entity.EventOngoing},
		{ID: "5", Status: entity.EventUpcoming},
		{ID: "6", Status: entity.EventUpcoming},
	}
	s.Events.Load(context.Background())

	got := s.UpcomingEvents()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"1", "3", "5"}, []string{got[0].ID, got[1].ID, got[2].ID})
	for _, e := range got {
		assert.Equal(t, entity.EventUpcoming, e.Status)
	}
}

func TestStore_PublishedNews(t *testing.T) {
	s, r := newStore(nil)
	r.news.items = []entity.NewsArticle{
		{ID: "1", Status: entity.NewsDraft},
		{ID: "2", Status: entity.NewsPublished},
	}
	s.News.Load(context.Background())

	got := s.PublishedNews()
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	assert.Empty(t, (&site.Store{News: site.NewCollection[entity.NewsArticle](entity.CollectionNews, r.news, nil, nil, nil)}).PublishedNews())
}

func TestStore_AllPublishedNews(t *testing.T) {
	s, r := newStore(nil)
	for i := 0; i < 5; i++ {
		r.news.items = append(r.news.items, entity.NewsArticle{ID: string(rune('a' + i)), Status: entity.NewsPublished})
	}
	s.News.Load(context.Background())

	assert.Len(t, s.PublishedNews(), 3)
	assert.Len(t, s.AllPublishedNews(), 5)
}
