package httpx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nichoth/session-cookie/internal/config"
	"github.com/nichoth/session-cookie/internal/cookie"
)

// NewRouter builds the HTTP handler tree. The signing key is validated and
// the codec constructed once here, at process start, and injected into the
// handlers; nothing reads configuration after this point.
func NewRouter(cfg config.Config, log *slog.Logger) (http.Handler, error) {
	key, err := cfg.SecretKey()
	if err != nil {
		return nil, err
	}

	codec, err := cookie.NewCodec(key)
	if err != nil {
		return nil, err
	}

	h := NewSessionHandler(codec, cfg, log)

	r := chi.NewRouter()

	// Add middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Add HSTS header outside dev
	if cfg.Env == "prod" {
		r.Use(hstsMiddleware)
	}

	// Routes
	r.Get(RouteHealth, healthzHandler(cfg))

	r.Route(RouteSession, func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.Get)
		r.Delete("/", h.Delete)
	})

	r.With(RequireSession(h)).Get(RouteMe, meHandler)

	return r, nil
}

// meHandler echoes the verified session payload placed in the context by
// RequireSession.
func meHandler(w http.ResponseWriter, r *http.Request) {
	payload, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, payload)
}
