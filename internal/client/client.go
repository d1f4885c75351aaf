// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package client is a Go client for the PrivateSpace JSON API. It keeps
// the bearer token and the caller's theme cascade: the theme is seeded on
// login, replaced when a theme is applied, and reset on logout or when the
// server rejects the token.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"privatespace/internal/design"
	"privatespace/internal/models"
)

// ErrUnauthorized is returned when the server rejects the token. The client
// has already logged itself out when it is returned.
var ErrUnauthorized = errors.New("client: not authenticated")

// APIError is a non-2xx response other than 401.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to one PrivateSpace server.
type Client struct {
	baseURL  string
	http     *http.Client
	onLogout func()

	mu    sync.Mutex
	token string
	theme *design.ThemeContext
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken restores a previously issued token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// OnLogout registers a hook run after an explicit logout and after the
// server rejects the token.
func OnLogout(fn func()) Option {
	return func(c *Client) { c.onLogout = fn }
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		theme:   design.NewThemeContext(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the current bearer token, or "" when logged out.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// ThemeVars returns a copy of the caller's cascade variables.
func (c *Client) ThemeVars() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme.Vars()
}

// ThemeCSS renders the caller's cascade as a :root rule.
func (c *Client) ThemeCSS() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme.CSS()
}

func (c *Client) applyTheme(t *design.Theme) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.theme.Apply(t)
}

// dropSession forgets the token and the theme and runs the logout hook.
func (c *Client) dropSession() {
	c.mu.Lock()
	c.token = ""
	c.theme.Reset()
	hook := c.onLogout
	c.mu.Unlock()
	if hook != nil {
		hook()
	}
}

// request is one API call.
type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	jsonBody    any
}

func (c *Client) do(ctx context.Context, req request, out any) error {
	body := req.body
	contentType := req.contentType
	if req.jsonBody != nil {
		b, err := json.Marshal(req.jsonBody)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// A failed login is not a lost session.
		if req.path == "/api/auth/token" {
			return &APIError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
		}
		c.dropSession()
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.method, req.path, err)
	}
	return nil
}

func errorMessage(r io.Reader) string {
	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(r, 64<<10))
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}

func page(skip, limit int) url.Values {
	q := url.Values{}
	if skip > 0 {
		q.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// --- Auth ---

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	var u models.User
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/api/auth/register",
		jsonBody: map[string]string{"username": username, "email": email, "password": password},
	}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Login exchanges credentials for a token and seeds the theme cascade from
// the stored theme. otp may be empty when 2FA is off.
func (c *Client) Login(ctx context.Context, username, password, otp string) error {
	form := url.Values{"username": {username}, "password": {password}}
	if otp != "" {
		form.Set("otp", otp)
	}
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/auth/token",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}, &tok)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.token = tok.AccessToken
	c.mu.Unlock()

	_, err = c.Me(ctx)
	return err
}

// Me returns the caller's account and re-seeds the theme cascade from it.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/profile/me"}, &u); err != nil {
		return nil, err
	}
	c.applyTheme(u.ProfileTheme)
	return &u, nil
}

// Logout revokes the token on the server and forgets it locally. The local
// session is dropped even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, request{method: http.MethodPost, path: "/api/auth/logout"}, nil)
	if errors.Is(err, ErrUnauthorized) {
		// Already dropped.
		return nil
	}
	c.dropSession()
	return err
}

// --- Journal ---

// JournalInput is the body of a journal create.
type JournalInput struct {
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	IsPublic bool            `json:"is_public"`
	Design   *design.Options `json:"design_config,omitempty"`
}

// ListJournal returns the caller's entries, newest first.
func (c *Client) ListJournal(ctx context.Context, skip, limit int) ([]models.JournalEntry, error) {
	var out []models.JournalEntry
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/journal", query: page(skip, limit)}, &out)
	return out, err
}

// CreateJournal creates an entry.
func (c *Client) CreateJournal(ctx context.Context, in JournalInput) (*models.JournalEntry, error) {
	var j models.JournalEntry
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/journal", jsonBody: in}, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// DeleteJournal deletes an entry.
func (c *Client) DeleteJournal(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/api/journal/" + id.String()}, nil)
}

// --- Blog ---

// BlogInput is the body of a blog create.
type BlogInput struct {
	Title   string          `json:"title"`
	Content string          `json:"content"`
	Tags    *string         `json:"tags,omitempty"`
	Design  *design.Options `json:"design_config,omitempty"`
}

// BlogFeed returns the public feed, highest ranking first.
func (c *Client) BlogFeed(ctx context.Context, skip, limit int) ([]models.BlogPost, error) {
	var out []models.BlogPost
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/blog", query: page(skip, limit)}, &out)
	return out, err
}

// MyBlog returns the caller's posts.
func (c *Client) MyBlog(ctx context.Context, skip, limit int) ([]models.BlogPost, error) {
	var out []models.BlogPost
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/blog/my", query: page(skip, limit)}, &out)
	return out, err
}

// CreateBlog publishes a post.
func (c *Client) CreateBlog(ctx context.Context, in BlogInput) (*models.BlogPost, error) {
	var b models.BlogPost
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/blog", jsonBody: in}, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteBlog deletes a post.
func (c *Client) DeleteBlog(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/api/blog/" + id.String()}, nil)
}

// RankBlog adds delta to a post's ranking and returns the new ranking.
func (c *Client) RankBlog(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	var out struct {
		NewRanking int `json:"new_ranking"`
	}
	err := c.do(ctx, request{
		method:   http.MethodPut,
		path:     "/api/blog/" + id.String() + "/rank",
		jsonBody: map[string]int{"rank_delta": delta},
	}, &out)
	return out.NewRanking, err
}

// --- Album ---

// ListAlbum returns the caller's album.
func (c *Client) ListAlbum(ctx context.Context, skip, limit int) ([]models.AlbumItem, error) {
	var out []models.AlbumItem
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/album", query: page(skip, limit)}, &out)
	return out, err
}

// UploadAlbum uploads one file to the album.
func (c *Client) UploadAlbum(ctx context.Context, filename string, r io.Reader, isPublic bool) (*models.AlbumItem, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("is_public", strconv.FormatBool(isPublic)); err != nil {
		return nil, fmt.Errorf("write form: %w", err)
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("write form: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("write form: %w", err)
	}

	var a models.AlbumItem
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/album/upload",
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}, &a)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAlbum deletes an album item.
func (c *Client) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/api/album/" + id.String()}, nil)
}

// --- Profile ---

// Sections returns the caller's profile sections in display order.
func (c *Client) Sections(ctx context.Context) ([]models.ProfileSection, error) {
	var out []models.ProfileSection
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/profile"}, &out)
	return out, err
}

// Reorder sends a complete {section id: position} map.
func (c *Client) Reorder(ctx context.Context, order map[string]int) error {
	return c.do(ctx, request{method: http.MethodPut, path: "/api/profile/reorder", jsonBody: order}, nil)
}

// ApplyTheme stores t as the caller's theme and replaces the local cascade
// with it.
func (c *Client) ApplyTheme(ctx context.Context, t *design.Theme) error {
	var out struct {
		Theme *design.Theme `json:"profile_theme"`
	}
	if err := c.do(ctx, request{method: http.MethodPut, path: "/api/profile/theme", jsonBody: t}, &out); err != nil {
		return err
	}
	c.applyTheme(out.Theme)
	return nil
}

// --- Dashboard and design ---

// Stats returns the dashboard counters and recent activity.
func (c *Client) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var s models.DashboardStats
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/dashboard/stats"}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Resolved is the server's rendering of a design for a surface.
type Resolved struct {
	Surface    design.Surface `json:"surface"`
	Style      design.Style   `json:"style"`
	CSS        string         `json:"css"`
	ClassNames string         `json:"class_names"`
}

// Resolve asks the server to resolve opts for surface.
func (c *Client) Resolve(ctx context.Context, surface design.Surface, opts *design.Options) (*Resolved, error) {
	if opts == nil {
		opts = &design.Options{}
	}
	var out Resolved
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/api/design/resolve",
		query:    url.Values{"surface": {string(surface)}},
		jsonBody: opts,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
