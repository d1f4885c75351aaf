// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"privatespace/internal/models"
)

// ListBlogFeed returns every post ordered by ranking. It is public.
func (a *API) ListBlogFeed(w http.ResponseWriter, r *http.Request) {
	limit, skip := pagination(r)
	items, err := a.Blog.ListPublic(limit, skip)
	if err != nil {
		storeFailed(w, "list blog feed", err)
		return
	}
	writeJSON(w, http.StatusOK, blogViews(items))
}

// ListMyBlog returns the caller's posts, newest first.
func (a *API) ListMyBlog(w http.ResponseWriter, r *http.Request) {
	limit, skip := pagination(r)
	items, err := a.Blog.ListByOwner(userID(r), limit, skip)
	if err != nil {
		storeFailed(w, "list blog", err)
		return
	}
	writeJSON(w, http.StatusOK, blogViews(items))
}

// CreateBlog creates a post. Its slug is derived from the title.
func (a *API) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req blogRequest
	if !decodeValid(w, r, &req) {
		return
	}
	b, err := a.Blog.Create(&models.BlogPost{
		OwnerID: userID(r),
		Title:   strings.TrimSpace(req.Title),
		Content: req.Content,
		Tags:    req.Tags,
		Design:  req.Design,
	})
	if err != nil {
		storeFailed(w, "create blog", err)
		return
	}
	a.invalidateBlog(r.Context(), "")
	writeJSON(w, http.StatusCreated, newBlogView(b))
}

// UpdateBlog applies the fields present in the body.
func (a *API) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	var req blogPatch
	if !decodeValid(w, r, &req) {
		return
	}

	b, err := a.Blog.FindByID(userID(r), id)
	if err != nil {
		storeFailed(w, "find blog", err)
		return
	}
	if b == nil {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}

	if req.Title != nil {
		b.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		b.Content = *req.Content
	}
	if req.Tags != nil {
		b.Tags = req.Tags
	}
	if req.Design != nil {
		b.Design = req.Design
	}

	if err := a.Blog.Update(b); err != nil {
		storeFailed(w, "update blog", err)
		return
	}
	a.invalidateBlog(r.Context(), b.Slug)
	writeJSON(w, http.StatusOK, newBlogView(b))
}

// DeleteBlog removes one of the caller's posts.
func (a *API) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	owner := userID(r)
	b, err := a.Blog.FindByID(owner, id)
	if err != nil {
		storeFailed(w, "find blog", err)
		return
	}
	if b == nil {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err := a.Blog.Delete(owner, id); err != nil {
		storeFailed(w, "delete blog", err)
		return
	}
	a.invalidateBlog(r.Context(), b.Slug)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UploadBlogMedia appends the uploaded files to a post's gallery.
func (a *API) UploadBlogMedia(w http.ResponseWriter, r *http.Request) {
	var slug string
	if id, ok := urlID(r, "id"); ok {
		if b, err := a.Blog.FindByID(userID(r), id); err == nil && b != nil {
			slug = b.Slug
		}
	}
	a.appendGallery(w, r, kindBlog, a.Blog.AppendMedia)
	a.invalidateBlog(r.Context(), slug)
}

// RankBlog adds rank_delta to any post's ranking.
func (a *API) RankBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	var req rankRequest
	if !decodeValid(w, r, &req) {
		return
	}
	ranking, err := a.Blog.AdjustRank(id, req.RankDelta)
	if err != nil {
		storeFailed(w, "rank blog", err)
		return
	}
	a.invalidateBlog(r.Context(), "")
	writeJSON(w, http.StatusOK, map[string]int{"new_ranking": ranking})
}
