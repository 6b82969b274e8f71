// Package respond writes JSON responses. Error bodies are always
// {"error": "..."} and never carry internal detail on 5xx.
package respond

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"school-cms/internal/domain/entity"
	"school-cms/internal/observability/logging"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error string `json:"error" example:"title is a required field"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// ヘッダー送信後なのでログのみ
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Message writes an error body with a fixed, user-facing message.
func Message(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, ErrorBody{Error: msg})
}

// Error writes err's message as-is. Only use it for errors built from client input.
func Error(w http.ResponseWriter, code int, err error) {
	Message(w, code, err.Error())
}

// safe fragments of messages that can be shown to clients
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"must be",
	"unsupported",
	"too large",
	"too long",
	"empty",
}

// SafeError writes err when it is a client error that is safe to show and
// "internal server error" otherwise. 5xx errors are always masked and logged.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	var ve *entity.ValidationError
	isSafe := errors.As(err, &ve)
	if isSafe {
		msg = ve.UserMessage()
	} else {
		lower := strings.ToLower(msg)
		for _, s := range safeFragments {
			if strings.Contains(lower, s) {
				isSafe = true
				break
			}
		}
	}

	if code >= 500 {
		isSafe = false
	}

	if isSafe {
		Message(w, code, msg)
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	Message(w, code, "internal server error")
}

// AppError carries a user-facing message alongside the internal cause.
type AppError struct {
	UserMsg string // shown to the client
	Err     error  // logged only
	Code    int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError.
func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}

// SafeErrorV2 writes the user message of an *AppError in err's chain and logs
// its cause. Other errors fall back to SafeError with code.
func SafeErrorV2(w http.ResponseWriter, r *http.Request, code int, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			ctx, logger := context.Background(), slog.Default()
			if r != nil {
				ctx = r.Context()
				logger = logging.WithRequestID(ctx, logging.FromContext(ctx))
			}
			level := slog.LevelWarn
			if appErr.Code >= 500 {
				level = slog.LevelError
			}
			logger.Log(ctx, level, "request failed",
				slog.Int("code", appErr.Code),
				slog.String("user_message", appErr.UserMsg),
				slog.String("error", SanitizeError(appErr.Err)))
		}
		Message(w, appErr.Code, appErr.UserMsg)
		return
	}

	SafeError(w, code, err)
}
