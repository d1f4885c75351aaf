// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"privatespace/internal/design"
	"privatespace/internal/models"
)

// fakeAPI is a minimal in-memory server for the endpoints the client uses.
type fakeAPI struct {
	mu           sync.Mutex
	token        string
	theme        *design.Theme
	sections     []models.ProfileSection
	failReorder  bool
	lastOrder    map[string]int
	lastUploaded string
}

func (f *fakeAPI) authed(r *http.Request) bool {
	return r.Header.Get("Authorization") == "Bearer "+f.token
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.URL.Path == "/api/auth/token" {
		if r.FormValue("username") != "alice" || r.FormValue("password") != "secret123" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Incorrect username or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": f.token, "token_type": "bearer"})
		return
	}
	if !f.authed(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	switch {
	case r.URL.Path == "/api/profile/me":
		writeJSON(w, http.StatusOK, models.User{Username: "alice", ProfileTheme: f.theme})
	case r.URL.Path == "/api/profile/theme":
		var t design.Theme
		json.NewDecoder(r.Body).Decode(&t)
		f.theme = &t
		writeJSON(w, http.StatusOK, map[string]any{"profile_theme": t})
	case r.URL.Path == "/api/auth/logout":
		writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
	case r.URL.Path == "/api/profile":
		writeJSON(w, http.StatusOK, f.sections)
	case r.URL.Path == "/api/profile/reorder":
		if f.failReorder {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
			return
		}
		json.NewDecoder(r.Body).Decode(&f.lastOrder)
		writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
	case r.URL.Path == "/api/album/upload":
		file, fh, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
			return
		}
		b, _ := io.ReadAll(file)
		f.lastUploaded = fh.Filename + ":" + string(b) + ":" + r.FormValue("is_public")
		writeJSON(w, http.StatusCreated, models.AlbumItem{FileSize: int64(len(b)), IsPublic: true})
	case strings.HasSuffix(r.URL.Path, "/rank"):
		var body map[string]int
		json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, map[string]int{"new_ranking": 10 + body["rank_delta"]})
	case r.URL.Path == "/api/journal" && r.Method == http.MethodPost:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required."})
	default:
		http.NotFound(w, r)
	}
}

func newFake(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{
		token: "tok-1",
		theme: &design.Theme{SidebarColor: design.Ptr("#000000")},
	}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv
}

func TestLoginSeedsTheme(t *testing.T) {
	_, srv := newFake(t)
	c := New(srv.URL)

	if err := c.Login(context.Background(), "alice", "secret123", ""); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if c.Token() != "tok-1" {
		t.Errorf("Token = %q, want tok-1", c.Token())
	}
	if got := c.ThemeVars()[design.VarSidebarBg]; got != "#000000" {
		t.Errorf("sidebar var = %q, want #000000", got)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	_, srv := newFake(t)
	logouts := 0
	c := New(srv.URL, OnLogout(func() { logouts++ }))

	err := c.Login(context.Background(), "alice", "wrong", "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("Login err = %v, want 401 APIError", err)
	}
	if apiErr.Message != "Incorrect username or password" {
		t.Errorf("message = %q", apiErr.Message)
	}
	if logouts != 0 {
		t.Errorf("logout hook ran %d times on a failed login", logouts)
	}
}

func TestUnauthorizedDropsSession(t *testing.T) {
	_, srv := newFake(t)
	logouts := 0
	c := New(srv.URL, WithToken("stale"), OnLogout(func() { logouts++ }))
	c.applyTheme(&design.Theme{SidebarColor: design.Ptr("#111111")})

	_, err := c.Sections(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if c.Token() != "" {
		t.Error("token kept after 401")
	}
	if len(c.ThemeVars()) != 0 {
		t.Errorf("theme not reset: %v", c.ThemeVars())
	}
	if logouts != 1 {
		t.Errorf("logout hook ran %d times, want 1", logouts)
	}
}

func TestApplyThemeReplacesCascade(t *testing.T) {
	_, srv := newFake(t)
	c := New(srv.URL)
	ctx := context.Background()
	if err := c.Login(ctx, "alice", "secret123", ""); err != nil {
		t.Fatal(err)
	}

	if err := c.ApplyTheme(ctx, &design.Theme{Options: design.Options{Color: design.Ptr("#ff0000")}}); err != nil {
		t.Fatalf("ApplyTheme: %v", err)
	}
	vars := c.ThemeVars()
	if vars[design.VarTextPrimary] != "#ff0000" {
		t.Errorf("text var = %q, want #ff0000", vars[design.VarTextPrimary])
	}
	if _, ok := vars[design.VarSidebarBg]; ok {
		t.Error("sidebar var carried over from the previous theme")
	}
}

func TestLogout(t *testing.T) {
	_, srv := newFake(t)
	logouts := 0
	c := New(srv.URL, OnLogout(func() { logouts++ }))
	ctx := context.Background()
	if err := c.Login(ctx, "alice", "secret123", ""); err != nil {
		t.Fatal(err)
	}
	if err := c.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if c.Token() != "" || len(c.ThemeVars()) != 0 || logouts != 1 {
		t.Errorf("after logout: token %q, vars %v, hooks %d", c.Token(), c.ThemeVars(), logouts)
	}
}

func TestAPIErrorMessage(t *testing.T) {
	_, srv := newFake(t)
	c := New(srv.URL, WithToken("tok-1"))

	_, err := c.CreateJournal(context.Background(), JournalInput{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "title is required." {
		t.Errorf("got %d %q", apiErr.Status, apiErr.Message)
	}
}

func TestRankAndUpload(t *testing.T) {
	f, srv := newFake(t)
	c := New(srv.URL, WithToken("tok-1"))
	ctx := context.Background()

	n, err := c.RankBlog(ctx, uuid.New(), -3)
	if err != nil || n != 7 {
		t.Errorf("RankBlog = %d, %v; want 7", n, err)
	}

	if _, err := c.UploadAlbum(ctx, "a.png", strings.NewReader("PNG"), true); err != nil {
		t.Fatalf("UploadAlbum: %v", err)
	}
	if f.lastUploaded != "a.png:PNG:true" {
		t.Errorf("server saw %q", f.lastUploaded)
	}
}

func sections(ids ...uuid.UUID) []models.ProfileSection {
	out := make([]models.ProfileSection, len(ids))
	for i, id := range ids {
		out[i] = models.ProfileSection{ID: id, Order: i}
	}
	return out
}

func TestSectionListCommit(t *testing.T) {
	a, b, c3 := uuid.New(), uuid.New(), uuid.New()
	f, srv := newFake(t)
	f.sections = sections(a, b, c3)
	c := New(srv.URL, WithToken("tok-1"))
	ctx := context.Background()

	list, err := c.SectionList(ctx)
	if err != nil {
		t.Fatalf("SectionList: %v", err)
	}
	if err := list.Move(ctx, 0, 2); err != nil {
		t.Fatalf("Move: %v", err)
	}
	want := map[string]int{b.String(): 0, c3.String(): 1, a.String(): 2}
	for k, v := range want {
		if f.lastOrder[k] != v {
			t.Errorf("committed order[%s] = %d, want %d", k, f.lastOrder[k], v)
		}
	}
}

func TestSectionListCommitFailureReloads(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	f, srv := newFake(t)
	f.sections = sections(a, b)
	f.failReorder = true
	c := New(srv.URL, WithToken("tok-1"))
	ctx := context.Background()

	list, err := c.SectionList(ctx)
	if err != nil {
		t.Fatal(err)
	}
	err = list.Move(ctx, 1, 0)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("Move err = %v, want wrapped 500 APIError", err)
	}
	items := list.Items()
	if items[0].ID != a || items[1].ID != b {
		t.Errorf("order after failed commit = [%s %s], want server order", items[0].ID, items[1].ID)
	}
}
