// Package site serves the in-memory site store: the home page highlights and
// the current list of each collection.
package site

import (
	"net/http"

	"school-cms/internal/domain/entity"
	"school-cms/internal/handler/http/respond"
	siteUC "school-cms/internal/usecase/site"
)

// HomeResponse holds the home page highlights.
type HomeResponse struct {
	UpcomingEvents []entity.Event       `json:"upcomingEvents"`
	PublishedNews  []entity.NewsArticle `json:"publishedNews"`
}

// HomeHandler returns up to three upcoming events and three published articles.
type HomeHandler struct{ Store *siteUC.Store }

// ServeHTTP ホーム表示用データ
// @Summary      ホーム表示用データ
// @Description  開催予定のイベントと公開済みニュースをそれぞれ最大 3 件、一覧の順で返します
// @Tags         site
// @Produce      json
// @Success      200 {object} HomeResponse
// @Router       /site/home [get]
func (h HomeHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, HomeResponse{
		UpcomingEvents: h.Store.UpcomingEvents(),
		PublishedNews:  h.Store.PublishedNews(),
	})
}

// ItemsHandler returns a collection's current in-memory list.
type ItemsHandler[T any] struct{ Items func() []T }

// ServeHTTP サイト表示用一覧
// @Summary      サイト表示用一覧
// @Description  サイトストアが保持しているコレクションの現在の一覧を返します
// @Tags         site
// @Produce      json
// @Param        collection path string true "コレクション名" Enums(events, gallery, news)
// @Success      200 {array} object
// @Router       /site/{collection} [get]
func (h ItemsHandler[T]) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, h.Items())
}

// Register registers the /site routes.
func Register(mux *http.ServeMux, store *siteUC.Store) {
	mux.Handle("GET /site/home", HomeHandler{Store: store})
	mux.Handle("GET /site/events", ItemsHandler[entity.Event]{Items: store.Events.Items})
	mux.Handle("GET /site/gallery", ItemsHandler[entity.GalleryImage]{Items: store.Gallery.Items})
	mux.Handle("GET /site/news", ItemsHandler[entity.NewsArticle]{Items: store.News.Items})
}
