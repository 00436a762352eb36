package middleware

import (
	"net/http"
	"strings"

	"arena-stats/internal/core/auth"
	"arena-stats/internal/shared/logs"
)

// BearerAuthConstructor rejects requests without a valid internal JWT in the
// Authorization header.
func BearerAuthConstructor(authenticator *auth.Authenticator) MiddlewareConstructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				logs.Warn("request missing bearer token", "method", r.Method, "path", r.URL.Path, "ip", r.RemoteAddr)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if _, err := authenticator.ValidateToken(token); err != nil {
				logs.Warn("request with invalid token", "method", r.Method, "path", r.URL.Path, "ip", r.RemoteAddr, "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
