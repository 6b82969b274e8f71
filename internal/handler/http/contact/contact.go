// Package contact provides the public contact form endpoint.
package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	"school-cms/internal/domain/entity"
	"school-cms/internal/handler/http/respond"
	contactUC "school-cms/internal/usecase/contact"
)

// Messages returned to the form.
const (
	SentMessage   = "Message sent successfully!"
	FailedMessage = "Failed to send message. Please try again later."
)

// Response is the success body.
type Response struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Message sent successfully!"`
}

// Handler relays a contact form submission by email.
type Handler struct{ Svc *contactUC.Service }

// ServeHTTP お問い合わせ送信
// @Summary      お問い合わせ送信
// @Description  お問い合わせフォームの内容を学校の事務局へメールで送信します。4 項目すべて必須です
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        request body contactUC.Submission true "フォーム内容"
// @Success      200 {object} Response "送信成功"
// @Failure      400 {object} respond.ErrorBody "入力エラー"
// @Failure      429 {object} respond.ErrorBody "レート制限超過"
// @Failure      500 {object} respond.ErrorBody "送信失敗"
// @Router       /contact [post]
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req contactUC.Submission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.Svc.Submit(r.Context(), req); err != nil {
		var ve *entity.ValidationError
		if errors.As(err, &ve) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		respond.SafeErrorV2(w, r, http.StatusInternalServerError,
			respond.NewAppError(http.StatusInternalServerError, FailedMessage, err))
		return
	}

	respond.JSON(w, http.StatusOK, Response{Success: true, Message: SentMessage})
}

// Options answers a bare OPTIONS /contact. CORS preflights are handled by
// the CORS middleware before reaching it.
//
// @Summary      お問い合わせ OPTIONS
// @Tags         contact
// @Success      200 "OK"
// @Router       /contact [options]
func Options(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Allow", "POST, OPTIONS")
	w.WriteHeader(http.StatusOK)
}
