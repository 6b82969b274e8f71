package content

import (
	"net/http"

	"school-cms/internal/handler/http/respond"
)

// ListHandler returns every record of a collection.
type ListHandler[T any] struct{ Svc Reader[T] }

// ServeHTTP コレクション一覧
// @Summary      コンテンツ一覧取得
// @Description  コレクション (events / gallery / news) の全レコードを新しい順に返します。ストレージ障害時は空配列を返します
// @Tags         content
// @Produce      json
// @Param        collection path string true "コレクション名" Enums(events, gallery, news)
// @Success      200 {array} object "レコード一覧"
// @Router       /content/{collection} [get]
func (h ListHandler[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeErrorV2(w, r, http.StatusInternalServerError, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	respond.JSON(w, http.StatusOK, items)
}
