// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"privatespace/internal/auth"
	"privatespace/internal/design"
	"privatespace/internal/middleware"
	"privatespace/internal/models"
	"privatespace/internal/session"
)

// fakeSessions serves one session for the auth middleware.
type fakeSessions struct {
	jti  string
	data *session.Data
}

func (f *fakeSessions) Get(_ context.Context, jti string) (*session.Data, error) {
	if jti == f.jti {
		return f.data, nil
	}
	return nil, nil
}

func (f *fakeSessions) ClearCookie(http.ResponseWriter) {}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	rn, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return rn
}

func TestNew(t *testing.T) {
	rn := newRenderer(t)
	pages := []string{
		"album", "blog", "confirm", "dashboard", "edit", "error",
		"feed", "gallery", "journal", "login", "post", "profile",
	}
	for _, name := range pages {
		if _, ok := rn.templates[name]; !ok {
			t.Errorf("template %q not parsed", name)
		}
	}
	for _, shared := range []string{"layout", "partials"} {
		if _, ok := rn.templates[shared]; ok {
			t.Errorf("shared template %q registered as a page", shared)
		}
	}
}

// TestThemeBeforeContent renders a page through the auth middleware and
// checks the caller's cascade is emitted in the head, ahead of any item.
func TestThemeBeforeContent(t *testing.T) {
	rn := newRenderer(t)
	jwt := auth.NewJWTManager("render-test-secret", time.Hour)
	userID := uuid.New()
	token, claims, err := jwt.GenerateToken(userID, "alice")
	if err != nil {
		t.Fatal(err)
	}
	sessions := &fakeSessions{jti: claims.ID, data: &session.Data{
		UserID:   userID,
		Username: "alice",
		Theme:    &design.Theme{SidebarColor: design.Ptr("#123456")},
	}}

	h := middleware.NewAuthenticator(jwt, sessions).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rn.Page(w, r, "confirm", &PageData{
			Title: "Confirm delete",
			Data:  map[string]any{"Name": "Old entry", "Action": "/x", "Cancel": "/y"},
		})
	}))

	req := httptest.NewRequest(http.MethodGet, "/space/journal/1/delete", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	body := w.Body.String()
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, body)
	}
	themeAt := strings.Index(body, "--sidebar-bg: #123456")
	itemAt := strings.Index(body, "Old entry")
	if themeAt < 0 || itemAt < 0 || themeAt > itemAt {
		t.Errorf("theme at %d, content at %d", themeAt, itemAt)
	}
	if !strings.Contains(body, "@alice") {
		t.Error("sidebar user missing")
	}
}

func TestAnonymousPageHasNoTheme(t *testing.T) {
	rn := newRenderer(t)
	w := httptest.NewRecorder()
	rn.PageStatus(w, httptest.NewRequest(http.MethodGet, "/nope", nil), http.StatusNotFound, "error", &PageData{
		Title: "Not Found",
		Data:  map[string]any{"Message": "gone"},
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), `<style id="theme">`) {
		t.Error("anonymous page carries a theme block")
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestBytes(t *testing.T) {
	rn := newRenderer(t)
	tags := "go, web"
	html, err := rn.Bytes("feed", &PageData{
		Title: "Blog",
		Data: map[string]any{"Posts": []*models.BlogPost{{
			Title: "Hello", Slug: "hello", Tags: &tags, Author: "alice",
		}}},
	})
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	s := string(html)
	for _, want := range []string{`href="/blog/hello"`, "@alice", `<span class="tag">web</span>`} {
		if !strings.Contains(s, want) {
			t.Errorf("feed missing %q", want)
		}
	}

	if _, err := rn.Bytes("missing", &PageData{}); err == nil {
		t.Error("expected error for an unknown template")
	}
}

func TestCarouselHref(t *testing.T) {
	media := models.Gallery{{URL: "/a.png"}, {URL: "/b.png"}, {URL: "/c.mp4", Type: models.MediaVideo}}
	q := url.Values{"mother": {"1"}, "mitem": {"7"}}
	c := ItemCarousel("item", media, q, "400px")

	if c.Index != 1 || c.PrevIndex != 0 || c.NextIndex != 2 {
		t.Errorf("carousel = %+v", c.View)
	}
	href := c.Href(2)
	parsed, err := url.ParseQuery(strings.TrimPrefix(href, "?"))
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Get("mitem") != "2" || parsed.Get("mother") != "1" {
		t.Errorf("Href(2) = %q", href)
	}
	if q.Get("mitem") != "7" {
		t.Error("Href mutated the page query")
	}
}

func TestNewDesignForm(t *testing.T) {
	f := NewDesignForm(&design.Options{FontSize: design.Ptr(20)}, design.SurfaceAlbum)
	d := design.Defaults(design.SurfaceAlbum)
	if f.FontSize != 20 {
		t.Errorf("FontSize = %d, want 20", f.FontSize)
	}
	if f.TextAlign != "center" || f.Width != 2 || f.CustomHeight != d.CustomHeight {
		t.Errorf("album defaults not applied: %+v", f)
	}
	if f.Surface != "album" {
		t.Errorf("Surface = %q", f.Surface)
	}
}

func TestNewThemeForm(t *testing.T) {
	if f := NewThemeForm(nil); f != (ThemeForm{}) {
		t.Errorf("nil theme = %+v", f)
	}
	f := NewThemeForm(&design.Theme{Radius: design.Ptr(1.5), SidebarColor: design.Ptr("#000")})
	if f.Radius != "1.5" || f.SidebarColor != "#000" || f.Color != "" {
		t.Errorf("form = %+v", f)
	}
}
