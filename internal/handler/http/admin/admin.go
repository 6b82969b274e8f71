// Package admin provides maintenance endpoints for the site administrator.
package admin

import (
	"context"
	"net/http"
	"time"

	"school-cms/internal/handler/http/respond"
	"school-cms/internal/infra/objectstore"
)

// Resetter overwrites the stored collections with the default records.
type Resetter interface {
	ResetToSeed(ctx context.Context) error
}

// Reloader refreshes the in-memory site store.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ResetResponse is returned after a reset.
type ResetResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Content reset to defaults"`
}

// ResetHandler restores the default content.
type ResetHandler struct {
	Content Resetter
	Site    Reloader
}

// ServeHTTP 初期データ投入
// @Summary      初期データへリセット
// @Description  events / gallery / news の 3 コレクションを初期データで上書きし、サイトストアを再読み込みします
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} ResetResponse
// @Failure      401 {object} respond.ErrorBody "認証エラー"
// @Failure      500 {object} respond.ErrorBody "書き込み失敗"
// @Router       /admin/reset [post]
func (h ResetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Content.ResetToSeed(r.Context()); err != nil {
		respond.SafeErrorV2(w, r, http.StatusInternalServerError,
			respond.NewAppError(http.StatusInternalServerError, "failed to reset content", err))
		return
	}
	if err := h.Site.Reload(r.Context()); err != nil {
		respond.SafeErrorV2(w, r, http.StatusInternalServerError,
			respond.NewAppError(http.StatusInternalServerError, "content reset but reload was interrupted", err))
		return
	}
	respond.JSON(w, http.StatusOK, ResetResponse{Success: true, Message: "Content reset to defaults"})
}

// BlobDTO describes one stored object.
type BlobDTO struct {
	Pathname   string    `json:"pathname" example:"content/gallery-Xk2p9.json"`
	URL        string    `json:"url" example:"https://blob.example.com/content/gallery-Xk2p9.json"`
	Size       int64     `json:"size" example:"2048"`
	UploadedAt time.Time `json:"uploadedAt" example:"2025-03-04T10:00:00Z"`
}

// BlobsResponse lists the objects under a prefix.
type BlobsResponse struct {
	Prefix string    `json:"prefix" example:"content/"`
	Count  int       `json:"count" example:"3"`
	Blobs  []BlobDTO `json:"blobs"`
}

// BlobsHandler lists the stored collection documents.
type BlobsHandler struct{ Store objectstore.Store }

// ServeHTTP ストレージ診断
// @Summary      保存済みオブジェクト一覧
// @Description  content/ 配下のオブジェクト (全バージョン) を一覧表示します
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} BlobsResponse
// @Failure      401 {object} respond.ErrorBody "認証エラー"
// @Failure      502 {object} respond.ErrorBody "ストレージ接続失敗"
// @Router       /admin/blobs [get]
func (h BlobsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const prefix = "content/"

	objs, err := h.Store.List(r.Context(), prefix)
	if err != nil {
		respond.SafeErrorV2(w, r, http.StatusBadGateway,
			respond.NewAppError(http.StatusBadGateway, "object store unavailable", err))
		return
	}

	out := BlobsResponse{Prefix: prefix, Count: len(objs), Blobs: make([]BlobDTO, 0, len(objs))}
	for _, o := range objs {
		out.Blobs = append(out.Blobs, BlobDTO{
			Pathname:   o.Pathname,
			URL:        o.URL,
			Size:       o.Size,
			UploadedAt: o.UploadedAt,
		})
	}
	respond.JSON(w, http.StatusOK, out)
}

// Register registers the admin routes, all wrapped with authz.
func Register(mux *http.ServeMux, reset ResetHandler, blobs BlobsHandler, authz func(http.Handler) http.Handler) {
	mux.Handle("POST /admin/reset", authz(reset))
	mux.Handle("GET  /admin/blobs", authz(blobs))
}
