package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nichoth/session-cookie/internal/config"
	"github.com/nichoth/session-cookie/internal/cookie"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testConfig() config.Config {
	return config.Config{
		Env:            "dev",
		Port:           "8080",
		LogLevel:       "info",
		Secret:         testSecret,
		CookieName:     "session",
		CookiePath:     "/",
		CookieMaxAge:   604800,
		CookieHTTPOnly: true,
		CookieSecure:   true,
		CookieSameSite: "lax",
	}
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	router, err := NewRouter(testConfig(), log)
	require.NoError(t, err)
	return router
}

// setCookieValue extracts the session value from a Set-Cookie header.
func setCookieValue(t *testing.T, header string) string {
	t.Helper()
	require.NotEmpty(t, header)
	pair := strings.SplitN(header, ";", 2)[0]
	parts := strings.SplitN(pair, "=", 2)
	require.Len(t, parts, 2)
	return parts[1]
}

func TestNewRouterRejectsShortKey(t *testing.T) {
	cfg := testConfig()
	cfg.Secret = strings.Repeat("k", 31)

	_, err := NewRouter(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestCreateSession(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(`{"identifier":"abc","ts":"1","id":"u-1"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	header := rec.Header().Get(HeaderSetCookie)
	require.NotEmpty(t, header)
	assert.True(t, strings.HasPrefix(header, "session="))
	assert.Contains(t, header, "Max-Age=604800")
	assert.Contains(t, header, "Path=/")
	assert.Contains(t, header, "HttpOnly")
	assert.Contains(t, header, "Secure")
	assert.Contains(t, header, "SameSite=Lax")

	// The issued value must verify and decode with an independent codec
	// built from the same key.
	codec, err := cookie.NewCodec([]byte(testSecret))
	require.NoError(t, err)

	value := setCookieValue(t, header)
	require.True(t, codec.Verify(value))

	payload, err := codec.Decode(value)
	require.NoError(t, err)
	assert.Equal(t, "abc", payload["identifier"])
	assert.Equal(t, "1", payload["ts"])
	assert.Equal(t, "u-1", payload["id"])
}

func TestCreateSessionAssignsID(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(`{"identifier":"abc"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	codec, err := cookie.NewCodec([]byte(testSecret))
	require.NoError(t, err)

	payload, err := codec.Decode(setCookieValue(t, rec.Header().Get(HeaderSetCookie)))
	require.NoError(t, err)

	id, ok := payload["id"].(string)
	require.True(t, ok, "missing generated id")
	_, err = uuid.Parse(id)
	assert.NoError(t, err, "generated id is not a uuid")
}

func TestCreateSessionInvalidBody(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(`not-json`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Header().Get(HeaderSetCookie))
}

// Full lifecycle: issue, send back, read, protected route, clear.
func TestSessionLifecycle(t *testing.T) {
	router := testRouter(t)

	// Issue
	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(`{"identifier":"abc","ts":"1","id":"u-1"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	value := setCookieValue(t, rec.Header().Get(HeaderSetCookie))

	// Read back
	req = httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set(HeaderCookie, "session="+value)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"identifier":"abc"`)
	assert.Contains(t, rec.Body.String(), `"ts":"1"`)

	// Protected route via middleware
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(HeaderCookie, "session="+value)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"identifier":"abc"`)

	// Clear
	req = httptest.NewRequest(http.MethodDelete, "/session", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	clearing := rec.Header().Get(HeaderSetCookie)
	assert.True(t, strings.HasPrefix(clearing, "session=;"))
	assert.Contains(t, clearing, "Max-Age=0")
	assert.Contains(t, clearing, "Expires=Thu, 01 Jan 1970 00:00:00 GMT")
}

func TestGetSessionUnauthorized(t *testing.T) {
	router := testRouter(t)

	// Issue a legitimate session to tamper with.
	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(`{"identifier":"abc","id":"u-1"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	value := setCookieValue(t, rec.Header().Get(HeaderSetCookie))

	swap := "X"
	if strings.HasSuffix(value, "X") {
		swap = "Y"
	}
	lead := "x"
	if strings.HasPrefix(value, "x") {
		lead = "y"
	}

	tests := []struct {
		name   string
		cookie string
	}{
		{"no cookie", ""},
		{"other cookie only", "theme=dark"},
		{"empty session value", "session="},
		{"garbage value", "session=garbage"},
		{"tampered signature", "session=" + lead + value[1:]},
		{"tampered payload", "session=" + value[:len(value)-1] + swap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, route := range []string{"/session", "/me"} {
				req := httptest.NewRequest(http.MethodGet, route, nil)
				if tt.cookie != "" {
					req.Header.Set(HeaderCookie, tt.cookie)
				}
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				assert.Equal(t, http.StatusUnauthorized, rec.Code, "route %s", route)
				assert.Contains(t, rec.Body.String(), "unauthorized")
			}
		})
	}
}

// A client sending multiple Cookie headers still resolves the session.
func TestGetSessionMultipleCookieHeaders(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(`{"identifier":"abc","id":"u-1"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	value := setCookieValue(t, rec.Header().Get(HeaderSetCookie))

	req = httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Add(HeaderCookie, "theme=dark; lang=en")
	req.Header.Add(HeaderCookie, "session="+value)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"identifier":"abc"`)
}
