package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nichoth/session-cookie/internal/config"
	"github.com/nichoth/session-cookie/internal/cookie"
)

// SessionHandler issues, reads and clears signed session cookies.
type SessionHandler struct {
	codec *cookie.Codec
	cfg   config.Config
	log   *slog.Logger
}

// NewSessionHandler wires the codec and configuration into the HTTP layer.
func NewSessionHandler(codec *cookie.Codec, cfg config.Config, log *slog.Logger) *SessionHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SessionHandler{codec: codec, cfg: cfg, log: log}
}

// Create issues a session from the JSON object in the request body, adds
// an "id" field when the caller did not supply one, and sets the signed
// session cookie on the response.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var payload map[string]any
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload")
		return
	}
	if payload == nil {
		payload = map[string]any{}
	}

	if _, ok := payload["id"]; !ok {
		payload["id"] = uuid.NewString()
	}

	value, err := h.codec.Encode(payload)
	if err != nil {
		h.log.Error("failed to encode session", "error", err)
		writeError(w, http.StatusInternalServerError, "session_encoding_failed")
		return
	}

	if len(value) > maxSessionValue {
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large")
		return
	}

	header, err := cookie.Serialize(h.cfg.CookieName, value, h.cfg.CookieOptions())
	if err != nil {
		h.log.Error("failed to serialize session cookie", "error", err)
		writeError(w, http.StatusInternalServerError, "cookie_serialization_failed")
		return
	}

	AddSetCookie(w, header)
	writeJSON(w, http.StatusCreated, payload)
}

// Get returns the payload of a valid session cookie, or 401.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.sessionFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

// Delete clears the session cookie by overwriting it with an already
// expired empty value.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	opts := h.cfg.CookieOptions()
	zero := 0
	epoch := time.Unix(0, 0)
	opts.MaxAge = &zero
	opts.Expires = &epoch

	header, err := cookie.Serialize(h.cfg.CookieName, "", opts)
	if err != nil {
		h.log.Error("failed to serialize clearing cookie", "error", err)
		writeError(w, http.StatusInternalServerError, "cookie_serialization_failed")
		return
	}

	AddSetCookie(w, header)
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// sessionFromRequest extracts the named cookie from the raw headers,
// verifies its signature, and only then decodes the payload. The order
// matters: Decode trusts its input, so it must never run before Verify.
func (h *SessionHandler) sessionFromRequest(r *http.Request) (map[string]any, bool) {
	cookies := cookie.Parse(CookieHeaders(r), cookie.ParseOptions{})

	raw, ok := cookies[h.cfg.CookieName].(string)
	if !ok || raw == "" {
		return nil, false
	}

	if !h.codec.Verify(raw) {
		h.log.Debug("session cookie failed verification")
		return nil, false
	}

	payload, err := h.codec.Decode(raw)
	if err != nil {
		return nil, false
	}

	return payload, true
}
