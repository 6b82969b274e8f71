package contact

import (
	"net/http"

	contactUC "school-cms/internal/usecase/contact"
)

// Register registers POST and OPTIONS /contact. limit wraps the POST route,
// typically with a per-IP rate limiter.
func Register(mux *http.ServeMux, svc *contactUC.Service, limit func(http.Handler) http.Handler) {
	if limit == nil {
		limit = func(h http.Handler) http.Handler { return h }
	}
	mux.Handle("POST    /contact", limit(Handler{Svc: svc}))
	mux.HandleFunc("OPTIONS /contact", Options)
}
