package content

import (
	"errors"
	"net/http"

	"school-cms/internal/domain/entity"
	"school-cms/internal/handler/http/respond"
	contentUC "school-cms/internal/usecase/content"
)

// DeleteHandler removes the record named by ?id= and returns the updated list.
type DeleteHandler[T any] struct {
	Name entity.Collection
	Svc  Writer[T]
}

// ServeHTTP レコード削除
// @Summary      コンテンツ削除
// @Description  id で指定したレコードを削除し、更新後の全レコードを返します。該当なしでもコレクションは書き戻されます
// @Tags         content
// @Security     BearerAuth
// @Produce      json
// @Param        collection path string true "コレクション名" Enums(events, gallery, news)
// @Param        id query string true "レコード ID"
// @Success      200 {array} object "更新後のレコード一覧"
// @Failure      400 {object} respond.ErrorBody "id 未指定"
// @Failure      401 {object} respond.ErrorBody "認証エラー"
// @Failure      403 {object} respond.ErrorBody "権限エラー"
// @Failure      500 {object} respond.ErrorBody "保存失敗"
// @Router       /content/{collection} [delete]
func (h DeleteHandler[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respond.Message(w, http.StatusBadRequest, contentUC.ErrMissingID.Error())
		return
	}

	updated, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, contentUC.ErrMissingID) {
			respond.Message(w, http.StatusBadRequest, err.Error())
			return
		}
		respond.SafeErrorV2(w, r, http.StatusInternalServerError,
			respond.NewAppError(http.StatusInternalServerError, "failed to delete from "+string(h.Name), err))
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}
