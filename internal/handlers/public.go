// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"privatespace/internal/cache"
	"privatespace/internal/render"
)

// publicPageSize is how many posts or photos the public pages show.
const publicPageSize = 50

// Public groups handlers for the public pages. Pages are rendered without
// any viewer's theme so one cached copy serves every visitor. The Valkey
// page cache is checked before the database, and filled on a miss.
type Public struct {
	*Services
	renderer *render.Renderer
}

// NewPublic creates the Public handler group.
func NewPublic(s *Services, renderer *render.Renderer) *Public {
	return &Public{Services: s, renderer: renderer}
}

func (s *Services) invalidateBlog(ctx context.Context, slug string) {
	if s.Pages != nil {
		s.Pages.InvalidateBlog(ctx, slug)
	}
}

func (s *Services) invalidateGallery(ctx context.Context) {
	if s.Pages != nil {
		s.Pages.InvalidateGallery(ctx)
	}
}

// serveCached writes a cached page if there is one.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if p.Pages == nil {
		return false
	}
	cached, ok := p.Pages.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(cached)
	return true
}

// renderAndCache renders a public page, stores it under key (when key is
// not empty) and writes it.
func (p *Public) renderAndCache(w http.ResponseWriter, r *http.Request, key, name string, data *render.PageData) {
	html, err := p.renderer.Bytes(name, data)
	if err != nil {
		slog.Error("public render failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if key != "" && p.Pages != nil {
		p.Pages.Set(r.Context(), key, html)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// Feed renders the public blog feed, highest ranking first.
func (p *Public) Feed(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r, cache.FeedKey()) {
		return
	}

	posts, err := p.Blog.ListPublic(publicPageSize, 0)
	if err != nil {
		// Render an empty feed but do not cache it.
		slog.Error("list public posts failed", "error", err)
		p.renderAndCache(w, r, "", "feed", &render.PageData{Title: "Blog", Section: "feed"})
		return
	}

	p.renderAndCache(w, r, cache.FeedKey(), "feed", &render.PageData{
		Title:   "Blog",
		Section: "feed",
		Data:    map[string]any{"Posts": blogViews(posts)},
	})
}

// Post renders a single post by slug. Pages showing a non-default carousel
// position are rendered fresh and not cached.
func (p *Public) Post(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	key := cache.PostKey(slug)
	if r.URL.RawQuery != "" {
		key = ""
	}
	if key != "" && p.serveCached(w, r, key) {
		return
	}

	post, err := p.Blog.FindBySlug(slug)
	if err != nil {
		slog.Error("find post by slug failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		p.notFound(w)
		return
	}

	p.renderAndCache(w, r, key, "post", &render.PageData{
		Title:   post.Title,
		Section: "feed",
		Query:   r.URL.Query(),
		Data:    map[string]any{"Post": newBlogView(post)},
	})
}

// Gallery renders every public album item.
func (p *Public) Gallery(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r, cache.GalleryKey()) {
		return
	}

	items, err := p.Album.ListPublic(publicPageSize, 0)
	if err != nil {
		slog.Error("list public album failed", "error", err)
		p.renderAndCache(w, r, "", "gallery", &render.PageData{Title: "Gallery", Section: "gallery"})
		return
	}

	p.renderAndCache(w, r, cache.GalleryKey(), "gallery", &render.PageData{
		Title:   "Gallery",
		Section: "gallery",
		Data:    map[string]any{"Items": p.albumViews(items)},
	})
}

func (p *Public) notFound(w http.ResponseWriter) {
	html, err := p.renderer.Bytes("error", &render.PageData{
		Title: "Not found",
		Data:  map[string]any{"Message": "The page you are looking for does not exist."},
	})
	if err != nil {
		http.NotFound(w, nil)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write(html)
}
