package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/avkorz/diskhub/internal/auth"
)

// SessionCookieName is the browser session cookie.
const SessionCookieName = "diskhub_session"

// TokenFromRequest resolves the disk token for a request, in order: the
// Authorization header (Bearer or OAuth scheme), the access_token query
// parameter (WebSocket clients cannot set headers), then the session cookie.
func TokenFromRequest(r *http.Request, sessionSecret []byte) string {
	if h := r.Header.Get("Authorization"); h != "" {
		for _, scheme := range []string{"Bearer ", "OAuth "} {
			if strings.HasPrefix(h, scheme) {
				return strings.TrimSpace(strings.TrimPrefix(h, scheme))
			}
		}
	}

	if tok := r.URL.Query().Get("access_token"); tok != "" {
		return tok
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if tok, err := auth.ParseSession(sessionSecret, cookie.Value); err == nil {
			return tok
		}
	}

	return ""
}

// RequireToken rejects requests that carry no usable credential and stores
// the resolved token in the request context for everything downstream.
func RequireToken(sessionSecret []byte, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := TokenFromRequest(r, sessionSecret)
			if tok == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
				return
			}

			ctx := auth.WithIdentity(r.Context(), auth.Identity{Token: tok})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
