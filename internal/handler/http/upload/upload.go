// Package upload provides the admin image upload endpoint.
package upload

import (
	"errors"
	"net/http"

	"school-cms/internal/handler/http/respond"
	"school-cms/internal/usecase/media"
)

// formMemory is the part of a multipart form kept in memory; the rest spills
// to temporary files.
const formMemory = 1 << 20

// Response is the body returned for a stored upload.
type Response struct {
	URL      string `json:"url" example:"https://blob.example.com/gallery/1700000000000-lab-Xk2p9.jpg"`
	Pathname string `json:"pathname" example:"gallery/1700000000000-lab-Xk2p9.jpg"`
}

// Handler stores the multipart "file" field as a gallery image.
type Handler struct{ Svc *media.Service }

// ServeHTTP 画像アップロード
// @Summary      画像アップロード
// @Description  multipart の file フィールドを受け取り、ギャラリー画像としてオブジェクトストレージに保存します (PNG / JPEG / WebP / GIF のみ)
// @Tags         upload
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "画像ファイル"
// @Success      200 {object} Response "保存先"
// @Failure      400 {object} respond.ErrorBody "ファイルなし"
// @Failure      401 {object} respond.ErrorBody "認証エラー"
// @Failure      413 {object} respond.ErrorBody "サイズ超過"
// @Failure      415 {object} respond.ErrorBody "非対応の形式"
// @Failure      500 {object} respond.ErrorBody "保存失敗"
// @Router       /upload [post]
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(formMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			respond.Message(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		respond.Message(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer func() { _ = file.Close() }()

	obj, err := h.Svc.Upload(r.Context(), media.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	switch {
	case err == nil:
	case errors.Is(err, media.ErrUnsupportedType):
		respond.Message(w, http.StatusUnsupportedMediaType, "unsupported file type: only PNG, JPEG, WebP and GIF images are allowed")
		return
	case errors.Is(err, media.ErrTooLarge):
		respond.Message(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	case errors.Is(err, media.ErrEmpty):
		respond.Message(w, http.StatusBadRequest, "empty file")
		return
	default:
		respond.SafeErrorV2(w, r, http.StatusInternalServerError,
			respond.NewAppError(http.StatusInternalServerError, "failed to upload file", err))
		return
	}

	respond.JSON(w, http.StatusOK, Response{URL: obj.URL, Pathname: obj.Pathname})
}
