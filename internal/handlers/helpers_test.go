// SPDX-License-Identifier: MIT
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/janayne/salon/internal/auth"
	"github.com/janayne/salon/internal/backup"
	"github.com/janayne/salon/internal/imaging"
	"github.com/janayne/salon/internal/store"
)

const testPassword = "Segredo"

type testEnv struct {
	server  *Server
	router  *gin.Engine
	store   *store.Store
	backend *store.MemoryBackend
	csrf    string
	session string
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEnv(t *testing.T, opts ...store.Option) *testEnv {
	t.Helper()

	backend := store.NewMemoryBackend()
	s := store.New(backend, opts...)
	if _, err := s.Seed(); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	server := NewServer(Options{
		Store:        s,
		Normalizer:   imaging.NewNormalizer(imaging.DefaultOptions(), nil, nil),
		Sessions:     auth.NewSessions("test-secret", time.Hour),
		Backups:      backup.NewManager(t.TempDir(), s, nil),
		PasswordHash: auth.DigestPassword(testPassword),
		AssetsDir:    t.TempDir(),
	})
	server.now = func() time.Time { return time.UnixMilli(1700000000000) }

	return &testEnv{
		server:  server,
		router:  server.Router(RouterOptions{}),
		store:   s,
		backend: backend,
	}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	if e.csrf != "" {
		req.AddCookie(&http.Cookie{Name: "salon_csrf", Value: e.csrf})
		req.Header.Set("X-CSRF-Token", e.csrf)
	}
	if e.session != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: e.session})
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *testEnv) sendJSON(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

func cookieValue(w *httptest.ResponseRecorder, name string) string {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// fetchCSRF loads the login form to obtain the CSRF cookie
func (e *testEnv) fetchCSRF(t *testing.T) {
	t.Helper()
	w := e.get("/admin/login")
	if w.Code != http.StatusOK {
		t.Fatalf("login form returned %d", w.Code)
	}
	e.csrf = cookieValue(w, "salon_csrf")
	if e.csrf == "" {
		t.Fatal("no CSRF cookie issued")
	}
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	e.fetchCSRF(t)

	form := url.Values{"password": {testPassword}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := e.do(req)
	if w.Code != http.StatusFound {
		t.Fatalf("login returned %d: %s", w.Code, w.Body.String())
	}
	e.session = cookieValue(w, auth.CookieName)
	if e.session == "" {
		t.Fatal("no session cookie issued")
	}
}

func decodeBody(t *testing.T, body io.Reader, v any) {
	t.Helper()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
}
