package content

import (
	"encoding/json"
	"errors"
	"net/http"

	"school-cms/internal/domain/entity"
	"school-cms/internal/handler/http/respond"
)

// CreateHandler validates a record, stores it at the head of the collection
// and returns the full updated list.
type CreateHandler[T any] struct {
	Name entity.Collection
	Svc  Writer[T]
}

// ServeHTTP レコード作成
// @Summary      コンテンツ作成
// @Description  レコードを作成してコレクションの先頭に追加し、更新後の全レコードを返します。id と日付はサーバーで付与されます
// @Tags         content
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        collection path string true "コレクション名" Enums(events, gallery, news)
// @Param        record body object true "レコード (id なし)"
// @Success      200 {array} object "更新後のレコード一覧"
// @Failure      400 {object} respond.ErrorBody "入力エラー"
// @Failure      401 {object} respond.ErrorBody "認証エラー"
// @Failure      403 {object} respond.ErrorBody "権限エラー"
// @Failure      500 {object} respond.ErrorBody "保存失敗"
// @Router       /content/{collection} [post]
func (h CreateHandler[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var rec T
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			respond.Message(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		respond.Message(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := h.Svc.Add(r.Context(), rec)
	if err != nil {
		var ve *entity.ValidationError
		if errors.As(err, &ve) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		respond.SafeErrorV2(w, r, http.StatusInternalServerError,
			respond.NewAppError(http.StatusInternalServerError, "failed to save "+string(h.Name), err))
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}
