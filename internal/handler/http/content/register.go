package content

import (
	"net/http"

	"school-cms/internal/domain/entity"
)

// Collections holds the three site collections.
type Collections struct {
	Events  Collection[entity.Event]
	Gallery Collection[entity.GalleryImage]
	News    Collection[entity.NewsArticle]
}

// Register registers GET, POST and DELETE /content/{collection} for every
// collection. Mutations are wrapped with authz.
func Register(mux *http.ServeMux, c Collections, authz func(http.Handler) http.Handler) {
	register(mux, c.Events, authz)
	register(mux, c.Gallery, authz)
	register(mux, c.News, authz)
}

func register[T any](mux *http.ServeMux, c Collection[T], authz func(http.Handler) http.Handler) {
	path := "/content/" + string(c.Name)

	mux.Handle("GET    "+path, ListHandler[T]{Svc: c.Reader})
	mux.Handle("POST   "+path, authz(CreateHandler[T]{Name: c.Name, Svc: c.Writer}))
	mux.Handle("DELETE "+path, authz(DeleteHandler[T]{Name: c.Name, Svc: c.Writer}))
}
