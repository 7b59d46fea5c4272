package httpx

import (
	"context"
	"net/http"
)

// Context key for storing the verified session payload
type contextKey string

const sessionContextKey contextKey = "session"

// RequireSession rejects requests that do not carry a valid signed session
// cookie and stores the verified payload in the request context for
// downstream handlers. A bad cookie is a 401, never a 5xx.
func RequireSession(h *SessionHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload, ok := h.sessionFromRequest(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext retrieves the verified session payload stored by
// RequireSession.
func SessionFromContext(ctx context.Context) (map[string]any, bool) {
	payload, ok := ctx.Value(sessionContextKey).(map[string]any)
	return payload, ok
}

// hstsMiddleware adds the Strict-Transport-Security header
func hstsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}
