package auth

import (
	"context"
	"net/http"
	"strings"

	"school-cms/internal/handler/http/respond"
	authservice "school-cms/internal/service/auth"
)

type ctxKey string

const ctxSession ctxKey = "session"

// SessionFromContext returns the verified session stored by RequireAdmin.
func SessionFromContext(ctx context.Context) (authservice.Session, bool) {
	s, ok := ctx.Value(ctxSession).(authservice.Session)
	return s, ok
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) string {
	const prefix = "bearer "
	h := r.Header.Get("Authorization")
	if len(h) < len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

// RequireAdmin lets a request through only with a valid token carrying the
// admin role: 401 without a valid token, 403 for another role.
func RequireAdmin(svc *authservice.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearerToken(r)
			if tok == "" {
				RecordDenied("unauthenticated")
				w.Header().Set("WWW-Authenticate", `Bearer realm="school-cms"`)
				respond.Message(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			sess, err := svc.Verify(tok)
			if err != nil {
				RecordDenied("unauthenticated")
				w.Header().Set("WWW-Authenticate", `Bearer realm="school-cms", error="invalid_token"`)
				respond.Message(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if sess.Role != RoleAdmin {
				RecordDenied("forbidden")
				respond.Message(w, http.StatusForbidden, "forbidden")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxSession, sess)))
		})
	}
}
