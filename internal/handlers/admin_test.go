// SPDX-License-Identifier: MIT
package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/janayne/salon/internal/models"
	"github.com/janayne/salon/internal/store"
)

func TestLoginFlow(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	w := env.get("/admin/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected admin page, got %d", w.Code)
	}
	body := w.Body.String()
	if strings.Count(body, `class="btn-delete"`) != 6 {
		t.Error("admin page should list every card with a delete button")
	}
	if !strings.Contains(body, env.csrf) {
		t.Error("admin page should embed the CSRF token")
	}
}

func TestLoginAcceptsCaseAndSpaces(t *testing.T) {
	env := newTestEnv(t)
	env.fetchCSRF(t)

	form := url.Values{"password": {"  SEGREDO "}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if w := env.do(req); w.Code != http.StatusFound {
		t.Errorf("expected redirect, got %d", w.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.fetchCSRF(t)

	form := url.Values{"password": {"errada"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := env.do(req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Senha incorreta.") {
		t.Error("expected error message on login form")
	}
	if cookieValue(w, "salon_session") != "" {
		t.Error("no session should be issued")
	}
}

func TestLoginRequiresCSRF(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{"password": {testPassword}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if w := env.do(req); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 without CSRF token, got %d", w.Code)
	}
}

func TestGatedRoutesWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/admin/")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/login" {
		t.Errorf("expected redirect to login, got %d %q", w.Code, w.Header().Get("Location"))
	}

	if w := env.get("/admin/api/settings"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for API, got %d", w.Code)
	}
}

func TestAdminAllowlistBehindProxies(t *testing.T) {
	env := newTestEnv(t)
	loginForm := func(opts RouterOptions, remote, forwarded string) int {
		req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
		req.RemoteAddr = remote
		req.Header.Set("X-Forwarded-For", forwarded)
		w := httptest.NewRecorder()
		env.server.Router(opts).ServeHTTP(w, req)
		return w.Code
	}

	allow := []string{"10.0.0.1"}
	if code := loginForm(RouterOptions{AdminRanges: allow}, "203.0.113.9:5555", "10.0.0.1"); code != http.StatusForbidden {
		t.Errorf("spoofed X-Forwarded-For should be ignored, got %d", code)
	}
	trusted := RouterOptions{AdminRanges: allow, TrustedProxies: []string{"203.0.113.9"}}
	if code := loginForm(trusted, "203.0.113.9:5555", "10.0.0.1"); code != http.StatusOK {
		t.Errorf("client forwarded by a trusted proxy should reach the form, got %d", code)
	}
	invalid := RouterOptions{AdminRanges: allow, TrustedProxies: []string{"not-an-ip"}}
	if code := loginForm(invalid, "203.0.113.9:5555", "10.0.0.1"); code != http.StatusForbidden {
		t.Errorf("invalid proxy list should trust nobody, got %d", code)
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	w := env.do(httptest.NewRequest(http.MethodPost, "/admin/logout", nil))
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "salon_session" && c.MaxAge >= 0 {
			t.Error("session cookie should be expired")
		}
	}
}

func TestSaveSettings(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	w := env.sendJSON(http.MethodPost, "/admin/api/settings",
		`{"salonName":" Studio Rosa ","primaryColor":"f00","navGlassColor":"#ffffffb3","heroImage":"data:image/jpeg;base64,AAAA"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Settings models.Settings `json:"settings"`
		Message  string          `json:"message"`
	}
	decodeBody(t, w.Body, &resp)
	if resp.Settings.PrimaryColor != "#FF0000" || resp.Settings.NavGlassColor != "#FFFFFFB3" {
		t.Errorf("colors not normalized: %+v", resp.Settings)
	}
	if resp.Settings.SalonName != "Studio Rosa" {
		t.Errorf("name not trimmed: %q", resp.Settings.SalonName)
	}
	if resp.Message != "Aparência atualizada com sucesso!" {
		t.Errorf("unexpected message %q", resp.Message)
	}

	// Saving without a hero image keeps the stored one
	w = env.sendJSON(http.MethodPost, "/admin/api/settings", `{"salonName":"Studio Rosa","primaryColor":"#00FF00"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	saved := env.store.Settings()
	if saved.HeroImage != "data:image/jpeg;base64,AAAA" {
		t.Errorf("hero image lost: %q", saved.HeroImage)
	}
	if saved.PrimaryColor != "#00FF00" {
		t.Errorf("primary color not replaced: %q", saved.PrimaryColor)
	}
}

func TestSaveSettingsRejectsInvalidColor(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	w := env.sendJSON(http.MethodPost, "/admin/api/settings", `{"primaryColor":"vermelho"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if env.store.Has(store.KeySettings) {
		t.Error("nothing should be written for invalid settings")
	}
}

func TestSaveSettingsRequiresCSRF(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/api/settings", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "salon_session", Value: env.session})
	req.AddCookie(&http.Cookie{Name: "salon_csrf", Value: env.csrf})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 without CSRF header, got %d", w.Code)
	}
}

func TestCardLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	w := env.sendJSON(http.MethodPost, "/admin/api/portfolio", `{"title":"Francesinha","category":"Nail Art"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created models.PortfolioItem
	decodeBody(t, w.Body, &created)
	if created.ID != 1700000000000 {
		t.Errorf("expected timestamp id, got %d", created.ID)
	}
	if created.Image != store.FallbackCardImage {
		t.Errorf("expected fallback image, got %q", created.Image)
	}
	if items := env.store.Portfolio(); len(items) != 7 || items[0].ID != created.ID {
		t.Fatal("new card should be first")
	}

	w = env.sendJSON(http.MethodPut, "/admin/api/portfolio/1700000000000", `{"title":"Francesinha Clássica","description":"Atualizada"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	item, ok := env.store.FindPortfolioItem(created.ID)
	if !ok || item.Title != "Francesinha Clássica" || item.Image != store.FallbackCardImage {
		t.Errorf("edit not applied in place: %+v", item)
	}

	w = env.do(httptest.NewRequest(http.MethodDelete, "/admin/api/portfolio/1700000000000", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if len(env.store.Portfolio()) != 6 {
		t.Error("card not deleted")
	}

	// Deleting again is a no-op
	if w := env.do(httptest.NewRequest(http.MethodDelete, "/admin/api/portfolio/1700000000000", nil)); w.Code != http.StatusNoContent {
		t.Errorf("expected 204 for absent id, got %d", w.Code)
	}
}

func TestCardValidation(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	if w := env.sendJSON(http.MethodPost, "/admin/api/portfolio", `{"description":"sem título"}`); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without title, got %d", w.Code)
	}
	if w := env.sendJSON(http.MethodPut, "/admin/api/portfolio/abc", `{"title":"x"}`); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad id, got %d", w.Code)
	}
	if w := env.sendJSON(http.MethodPut, "/admin/api/portfolio/999", `{"title":"x"}`); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown id, got %d", w.Code)
	}
}

func TestCardSanitized(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	w := env.sendJSON(http.MethodPost, "/admin/api/portfolio", `{"title":"<img src=x onerror=alert(1)>Oi","image":"javascript:alert(1)"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var created models.PortfolioItem
	decodeBody(t, w.Body, &created)
	if created.Title != "Oi" {
		t.Errorf("title not stripped: %q", created.Title)
	}
	if created.Image != store.FallbackCardImage {
		t.Errorf("unsafe image kept: %q", created.Image)
	}
}

func TestQuotaExceeded(t *testing.T) {
	env := newTestEnv(t, store.WithQuota(2000))
	env.login(t)

	before := env.store.Portfolio()
	body := `{"title":"Grande","description":"` + strings.Repeat("a", 1900) + `"}`
	w := env.sendJSON(http.MethodPost, "/admin/api/portfolio", body)

	if w.Code != http.StatusInsufficientStorage {
		t.Fatalf("expected 507, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "armazenamento pode estar cheio") {
		t.Errorf("unexpected error body %s", w.Body.String())
	}
	if len(env.store.Portfolio()) != len(before) {
		t.Error("portfolio changed after a failed write")
	}
}

func TestBackupsAndExport(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	w := env.do(httptest.NewRequest(http.MethodPost, "/admin/api/backups", nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var meta struct {
		ID string `json:"id"`
	}
	decodeBody(t, w.Body, &meta)

	env.store.SavePortfolio(nil)

	w = env.do(httptest.NewRequest(http.MethodPost, "/admin/api/backups/"+meta.ID+"/restore", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(env.store.Portfolio()) != 6 {
		t.Error("portfolio not restored")
	}

	if w := env.do(httptest.NewRequest(http.MethodPost, "/admin/api/backups/nope/restore", nil)); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	var list struct {
		Backups []struct {
			ID string `json:"id"`
		} `json:"backups"`
	}
	decodeBody(t, env.get("/admin/api/backups").Body, &list)
	if len(list.Backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(list.Backups))
	}

	w = env.get("/admin/api/export")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "salon-export-") {
		t.Errorf("missing attachment header: %q", w.Header().Get("Content-Disposition"))
	}
	if !strings.Contains(w.Body.String(), `"portfolio"`) {
		t.Error("export should include the portfolio")
	}
}
