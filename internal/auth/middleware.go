package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/reelist/reelist/internal/httputil"
)

type contextKey string

const ContextUser contextKey = "user"

type ContextUserData struct {
	UserID string
}

type Middleware struct {
	sessions SessionStore
}

func NewMiddleware(sessions SessionStore) *Middleware {
	return &Middleware{sessions: sessions}
}

// RequireAuth resolves the bearer-or-cookie token to a live session and puts
// the account id on the request context. It fails closed on anything else.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			httputil.WriteError(w, http.StatusUnauthorized, httputil.CodeUnauthorized, "authentication required")
			return
		}

		sess, err := m.sessions.Get(r.Context(), token)
		if err != nil {
			httputil.WriteError(w, http.StatusUnauthorized, httputil.CodeUnauthorized, "invalid session")
			return
		}

		if IsTokenExpired(sess.ExpiresAt) {
			m.sessions.Delete(r.Context(), token)
			httputil.WriteError(w, http.StatusUnauthorized, httputil.CodeSessionExpired, "session expired")
			return
		}

		ctx := context.WithValue(r.Context(), ContextUser, ContextUserData{UserID: sess.UserID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserFromContext(ctx context.Context) *ContextUserData {
	if v, ok := ctx.Value(ContextUser).(ContextUserData); ok {
		return &v
	}
	return nil
}

func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie("session"); err == nil {
		return c.Value
	}
	return ""
}
