package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"school-cms/internal/handler/http/respond"
	"school-cms/internal/observability/logging"
	authservice "school-cms/internal/service/auth"
)

type loginRequest struct {
	Email    string `json:"email" example:"admin@school.example"`
	Password string `json:"password" example:"your_password"`
}

type tokenResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time `json:"expiresAt" example:"2025-01-01T12:00:00Z"`
}

type sessionResponse struct {
	Email     string    `json:"email" example:"admin@school.example"`
	Role      string    `json:"role" example:"admin"`
	ExpiresAt time.Time `json:"expiresAt" example:"2025-01-01T12:00:00Z"`
}

// TokenHandler authenticates the administrator and issues a JWT.
//
// @Summary      JWT トークン取得
// @Description  管理者のメールアドレスとパスワードで認証し、JWT トークンを発行します
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "ログイン情報"
// @Success      200 {object} tokenResponse "JWT トークン"
// @Failure      400 {object} respond.ErrorBody "リクエストが不正"
// @Failure      401 {object} respond.ErrorBody "認証失敗"
// @Failure      429 {object} respond.ErrorBody "レート制限超過"
// @Failure      500 {object} respond.ErrorBody "トークン生成失敗"
// @Router       /auth/token [post]
func TokenHandler(svc *authservice.AuthService, logger *slog.Logger) http.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := logging.WithRequestID(r.Context(), logger)

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("authentication failed", slog.String("reason", "invalid_request"))
			RecordAuthRequest("invalid_request", time.Since(start).Seconds())
			respond.Message(w, http.StatusBadRequest, "invalid request")
			return
		}

		sess, err := svc.Login(r.Context(), authservice.Credentials{Username: req.Email, Password: req.Password})
		if err != nil {
			if errors.Is(err, authservice.ErrInvalidCredentials) {
				log.Warn("authentication failed",
					slog.String("reason", "invalid_credentials"),
					slog.Int64("duration_ms", time.Since(start).Milliseconds()))
				RecordAuthRequest("failure", time.Since(start).Seconds())
				respond.Message(w, http.StatusUnauthorized, "invalid credentials")
				return
			}
			log.Error("token generation failed", slog.String("error", respond.SanitizeError(err)))
			RecordAuthRequest("failure", time.Since(start).Seconds())
			respond.Message(w, http.StatusInternalServerError, "token generation failed")
			return
		}

		log.Info("authentication successful",
			slog.String("user_email", sess.Subject),
			slog.String("role", sess.Role),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		RecordAuthRequest("success", time.Since(start).Seconds())

		respond.JSON(w, http.StatusOK, tokenResponse{Token: sess.Token, ExpiresAt: sess.ExpiresAt})
	}
}

// SessionHandler reports who the bearer token belongs to. Must be mounted
// behind RequireAdmin.
//
// @Summary      セッション確認
// @Description  Bearer トークンを検証し、ログイン中の管理者と有効期限を返します
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} sessionResponse "セッション情報"
// @Failure      401 {object} respond.ErrorBody "認証エラー"
// @Router       /auth/session [get]
func SessionHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	respond.JSON(w, http.StatusOK, sessionResponse{
		Email:     sess.Subject,
		Role:      sess.Role,
		ExpiresAt: sess.ExpiresAt,
	})
}
