// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"privatespace/internal/models"
	"privatespace/internal/render"
	"privatespace/internal/store"
)

// --- Journal ---

// JournalPage lists the caller's journal with the new-entry form.
func (sp *Space) JournalPage(w http.ResponseWriter, r *http.Request) {
	sp.journalPage(w, r, http.StatusOK, itemForm{}, nil)
}

func (sp *Space) journalPage(w http.ResponseWriter, r *http.Request, status int, form itemForm, flashes []render.Flash) {
	items, err := sp.Journal.ListByOwner(userID(r), maxLimit, 0)
	if err != nil {
		slog.Error("list journal failed", "error", err)
	}
	sp.renderer.PageStatus(w, r, status, "journal", &render.PageData{
		Title:   "Journal",
		Section: "journal",
		Flashes: flashes,
		Data:    map[string]any{"Items": journalViews(items), "Form": form, "FormID": newFormID()},
	})
}

// JournalCreate saves a new entry with its media.
func (sp *Space) JournalCreate(w http.ResponseWriter, r *http.Request) {
	if !sp.parseForm(w, r) {
		return
	}
	defer cleanupForm(r)

	f := readItemForm(r)
	req := journalRequest{Title: f.Title, Content: f.Content, IsPublic: f.IsPublic, Design: f.Design}
	if msg := validateRequest(&req); msg != "" {
		sp.discardPreviews(r)
		sp.journalPage(w, r, http.StatusBadRequest, f, errorFlash(msg))
		return
	}

	media, keys, err := sp.collectMedia(r, kindJournal)
	if err != nil {
		status, msg := mediaFailure(err)
		sp.journalPage(w, r, status, f, errorFlash(msg))
		return
	}
	_, err = sp.Journal.Create(&models.JournalEntry{
		OwnerID:  userID(r),
		Title:    f.Title,
		Content:  f.Content,
		IsPublic: f.IsPublic,
		Design:   f.Design,
		Gallery:  media,
	})
	if err != nil {
		sp.removeKeys(r.Context(), keys...)
		slog.Error("create journal failed", "error", err)
		sp.journalPage(w, r, http.StatusInternalServerError, f, errorFlash("The entry could not be saved."))
		return
	}
	http.Redirect(w, r, "/space/journal", http.StatusSeeOther)
}

func (sp *Space) findJournal(w http.ResponseWriter, r *http.Request) *models.JournalEntry {
	id, ok := urlID(r, "id")
	if !ok {
		sp.notFound(w, r)
		return nil
	}
	j, err := sp.Journal.FindByID(userID(r), id)
	if err != nil {
		slog.Error("find journal failed", "id", id, "error", err)
		sp.errorPage(w, r, http.StatusInternalServerError, "The entry could not be loaded.")
		return nil
	}
	if j == nil {
		sp.notFound(w, r)
	}
	return j
}

func journalEditor(j *models.JournalEntry, form itemForm) editPage {
	return editPage{
		title:   "Edit entry",
		surface: "journal",
		action:  "/space/journal/" + j.ID.String(),
		cancel:  "/space/journal",
		form:    form,
		gallery: j.Gallery,
	}
}

// JournalEdit renders the editor for one entry.
func (sp *Space) JournalEdit(w http.ResponseWriter, r *http.Request) {
	j := sp.findJournal(w, r)
	if j == nil {
		return
	}
	sp.renderEdit(w, r, http.StatusOK, journalEditor(j, journalForm(j)), nil)
}

// JournalUpdate saves the editor and appends any new media.
func (sp *Space) JournalUpdate(w http.ResponseWriter, r *http.Request) {
	if !sp.parseForm(w, r) {
		return
	}
	defer cleanupForm(r)

	j := sp.findJournal(w, r)
	if j == nil {
		sp.discardPreviews(r)
		return
	}
	f := readItemForm(r)
	req := journalRequest{Title: f.Title, Content: f.Content, IsPublic: f.IsPublic, Design: f.Design}
	if msg := validateRequest(&req); msg != "" {
		sp.discardPreviews(r)
		sp.renderEdit(w, r, http.StatusBadRequest, journalEditor(j, f), errorFlash(msg))
		return
	}

	j.Title = f.Title
	j.Content = f.Content
	j.IsPublic = f.IsPublic
	j.Design = f.Design
	if err := sp.Journal.Update(j); err != nil {
		slog.Error("update journal failed", "id", j.ID, "error", err)
		sp.discardPreviews(r)
		sp.renderEdit(w, r, http.StatusInternalServerError, journalEditor(j, f), errorFlash("The entry could not be saved."))
		return
	}
	if !sp.appendMedia(w, r, kindJournal, j.ID, sp.Journal.AppendMedia, journalEditor(j, f)) {
		return
	}
	http.Redirect(w, r, "/space/journal", http.StatusSeeOther)
}

// JournalConfirmDelete asks before deleting an entry.
func (sp *Space) JournalConfirmDelete(w http.ResponseWriter, r *http.Request) {
	j := sp.findJournal(w, r)
	if j == nil {
		return
	}
	sp.renderConfirm(w, r, "journal", j.Title, "/space/journal/"+j.ID.String()+"/delete", "/space/journal")
}

// JournalDelete deletes an entry.
func (sp *Space) JournalDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sp.notFound(w, r)
		return
	}
	err := sp.Journal.Delete(userID(r), id)
	if errors.Is(err, store.ErrNotFound) {
		sp.notFound(w, r)
		return
	}
	if err != nil {
		slog.Error("delete journal failed", "id", id, "error", err)
		sp.errorPage(w, r, http.StatusInternalServerError, "The entry could not be deleted.")
		return
	}
	http.Redirect(w, r, "/space/journal", http.StatusSeeOther)
}

// --- Blog ---

// BlogPage lists the caller's posts with the new-post form.
func (sp *Space) BlogPage(w http.ResponseWriter, r *http.Request) {
	sp.blogPage(w, r, http.StatusOK, itemForm{}, nil)
}

func (sp *Space) blogPage(w http.ResponseWriter, r *http.Request, status int, form itemForm, flashes []render.Flash) {
	items, err := sp.Blog.ListByOwner(userID(r), maxLimit, 0)
	if err != nil {
		slog.Error("list blog failed", "error", err)
	}
	sp.renderer.PageStatus(w, r, status, "blog", &render.PageData{
		Title:   "Blog",
		Section: "blog",
		Flashes: flashes,
		Data:    map[string]any{"Items": blogViews(items), "Form": form, "FormID": newFormID()},
	})
}

// BlogCreate publishes a new post.
func (sp *Space) BlogCreate(w http.ResponseWriter, r *http.Request) {
	if !sp.parseForm(w, r) {
		return
	}
	defer cleanupForm(r)

	f := readItemForm(r)
	req := blogRequest{Title: f.Title, Content: f.Content, Tags: f.tagsPtr(), Design: f.Design}
	if msg := validateRequest(&req); msg != "" {
		sp.discardPreviews(r)
		sp.blogPage(w, r, http.StatusBadRequest, f, errorFlash(msg))
		return
	}

	media, keys, err := sp.collectMedia(r, kindBlog)
	if err != nil {
		status, msg := mediaFailure(err)
		sp.blogPage(w, r, status, f, errorFlash(msg))
		return
	}
	_, err = sp.Blog.Create(&models.BlogPost{
		OwnerID: userID(r),
		Title:   f.Title,
		Content: f.Content,
		Tags:    f.tagsPtr(),
		Design:  f.Design,
		Gallery: media,
	})
	if err != nil {
		sp.removeKeys(r.Context(), keys...)
		slog.Error("create blog failed", "error", err)
		sp.blogPage(w, r, http.StatusInternalServerError, f, errorFlash("The post could not be saved."))
		return
	}
	sp.invalidateBlog(r.Context(), "")
	http.Redirect(w, r, "/space/blog", http.StatusSeeOther)
}

func (sp *Space) findBlog(w http.ResponseWriter, r *http.Request) *models.BlogPost {
	id, ok := urlID(r, "id")
	if !ok {
		sp.notFound(w, r)
		return nil
	}
	b, err := sp.Blog.FindByID(userID(r), id)
	if err != nil {
		slog.Error("find blog failed", "id", id, "error", err)
		sp.errorPage(w, r, http.StatusInternalServerError, "The post could not be loaded.")
		return nil
	}
	if b == nil {
		sp.notFound(w, r)
	}
	return b
}

func blogEditor(b *models.BlogPost, form itemForm) editPage {
	return editPage{
		title:   "Edit post",
		surface: "blog",
		action:  "/space/blog/" + b.ID.String(),
		cancel:  "/space/blog",
		form:    form,
		gallery: b.Gallery,
	}
}

// BlogEdit renders the editor for one post.
func (sp *Space) BlogEdit(w http.ResponseWriter, r *http.Request) {
	b := sp.findBlog(w, r)
	if b == nil {
		return
	}
	sp.renderEdit(w, r, http.StatusOK, blogEditor(b, blogForm(b)), nil)
}

// BlogUpdate saves the editor and appends any new media. The slug is kept.
func (sp *Space) BlogUpdate(w http.ResponseWriter, r *http.Request) {
	if !sp.parseForm(w, r) {
		return
	}
	defer cleanupForm(r)

	b := sp.findBlog(w, r)
	if b == nil {
		sp.discardPreviews(r)
		return
	}
	f := readItemForm(r)
	req := blogRequest{Title: f.Title, Content: f.Content, Tags: f.tagsPtr(), Design: f.Design}
	if msg := validateRequest(&req); msg != "" {
		sp.discardPreviews(r)
		sp.renderEdit(w, r, http.StatusBadRequest, blogEditor(b, f), errorFlash(msg))
		return
	}

	b.Title = f.Title
	b.Content = f.Content
	b.Tags = f.tagsPtr()
	b.Design = f.Design
	if err := sp.Blog.Update(b); err != nil {
		slog.Error("update blog failed", "id", b.ID, "error", err)
		sp.discardPreviews(r)
		sp.renderEdit(w, r, http.StatusInternalServerError, blogEditor(b, f), errorFlash("The post could not be saved."))
		return
	}
	ok := sp.appendMedia(w, r, kindBlog, b.ID, sp.Blog.AppendMedia, blogEditor(b, f))
	sp.invalidateBlog(r.Context(), b.Slug)
	if !ok {
		return
	}
	http.Redirect(w, r, "/space/blog", http.StatusSeeOther)
}

// BlogRank moves a post up or down the public feed.
func (sp *Space) BlogRank(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sp.notFound(w, r)
		return
	}
	delta, err := strconv.Atoi(r.FormValue("rank_delta"))
	if err != nil {
		sp.blogPage(w, r, http.StatusBadRequest, itemForm{}, errorFlash("Invalid ranking change."))
		return
	}
	_, err = sp.Blog.AdjustRank(id, delta)
	if errors.Is(err, store.ErrNotFound) {
		sp.notFound(w, r)
		return
	}
	if err != nil {
		slog.Error("rank blog failed", "id", id, "error", err)
		sp.blogPage(w, r, http.StatusInternalServerError, itemForm{}, errorFlash("The ranking could not be changed."))
		return
	}
	sp.invalidateBlog(r.Context(), "")
	http.Redirect(w, r, "/space/blog", http.StatusSeeOther)
}

// BlogConfirmDelete asks before deleting a post.
func (sp *Space) BlogConfirmDelete(w http.ResponseWriter, r *http.Request) {
	b := sp.findBlog(w, r)
	if b == nil {
		return
	}
	sp.renderConfirm(w, r, "blog", b.Title, "/space/blog/"+b.ID.String()+"/delete", "/space/blog")
}

// BlogDelete deletes a post and drops its cached page.
func (sp *Space) BlogDelete(w http.ResponseWriter, r *http.Request) {
	b := sp.findBlog(w, r)
	if b == nil {
		return
	}
	if err := sp.Blog.Delete(userID(r), b.ID); err != nil {
		slog.Error("delete blog failed", "id", b.ID, "error", err)
		sp.errorPage(w, r, http.StatusInternalServerError, "The post could not be deleted.")
		return
	}
	sp.invalidateBlog(r.Context(), b.Slug)
	http.Redirect(w, r, "/space/blog", http.StatusSeeOther)
}

// --- Album ---

// AlbumPage lists the caller's album with the storage usage.
func (sp *Space) AlbumPage(w http.ResponseWriter, r *http.Request) {
	sp.albumPage(w, r, http.StatusOK, nil)
}

func (sp *Space) albumPage(w http.ResponseWriter, r *http.Request, status int, flashes []render.Flash) {
	owner := userID(r)
	items, err := sp.Album.ListByOwner(owner, maxLimit, 0)
	if err != nil {
		slog.Error("list album failed", "error", err)
	}
	used, err := sp.Album.UsedBytes(owner)
	if err != nil {
		slog.Error("album usage failed", "error", err)
	}
	sp.renderer.PageStatus(w, r, status, "album", &render.PageData{
		Title:   "Album",
		Section: "album",
		Flashes: flashes,
		Data: map[string]any{
			"Items":   sp.albumViews(items),
			"UsedMB":  store.BytesToMB(used),
			"QuotaMB": sp.quotaMB(),
		},
	})
}

// AlbumUpload stores one file in the album, subject to the quota.
func (sp *Space) AlbumUpload(w http.ResponseWriter, r *http.Request) {
	if !sp.parseForm(w, r) {
		return
	}
	defer cleanupForm(r)

	if r.MultipartForm == nil || len(r.MultipartForm.File["file"]) == 0 {
		sp.albumPage(w, r, http.StatusBadRequest, errorFlash("Choose a file to upload."))
		return
	}
	u, closeFn, err := openUpload(r.MultipartForm.File["file"][0])
	if err != nil {
		slog.Error("open album upload failed", "error", err)
		sp.albumPage(w, r, http.StatusBadRequest, errorFlash("The file could not be read."))
		return
	}
	defer closeFn()

	isPublic := formBool(r, "is_public")
	_, err = sp.storeAlbumItem(r.Context(), userID(r), u, isPublic)
	if errors.Is(err, store.ErrQuotaExceeded) {
		sp.albumPage(w, r, http.StatusBadRequest, errorFlash(sp.quotaMessage()))
		return
	}
	if err != nil {
		status, msg := mediaFailure(err)
		sp.albumPage(w, r, status, errorFlash(msg))
		return
	}
	if isPublic {
		sp.invalidateGallery(r.Context())
	}
	http.Redirect(w, r, "/space/album", http.StatusSeeOther)
}

func (sp *Space) findAlbum(w http.ResponseWriter, r *http.Request) *models.AlbumItem {
	id, ok := urlID(r, "id")
	if !ok {
		sp.notFound(w, r)
		return nil
	}
	a, err := sp.Album.FindByID(userID(r), id)
	if err != nil {
		slog.Error("find album item failed", "id", id, "error", err)
		sp.errorPage(w, r, http.StatusInternalServerError, "The item could not be loaded.")
		return nil
	}
	if a == nil {
		sp.notFound(w, r)
	}
	return a
}

func albumEditor(a *models.AlbumItem, form itemForm) editPage {
	return editPage{
		title:   "Album design",
		surface: "album",
		action:  "/space/album/" + a.ID.String(),
		cancel:  "/space/album",
		form:    form,
		gallery: models.Gallery{{URL: a.URL, Type: a.MediaType}},
	}
}

// AlbumEdit renders the design editor for one album item.
func (sp *Space) AlbumEdit(w http.ResponseWriter, r *http.Request) {
	a := sp.findAlbum(w, r)
	if a == nil {
		return
	}
	sp.renderEdit(w, r, http.StatusOK, albumEditor(a, itemForm{Design: a.Design}), nil)
}

// AlbumUpdate replaces an album item's design.
func (sp *Space) AlbumUpdate(w http.ResponseWriter, r *http.Request) {
	if !sp.parseForm(w, r) {
		return
	}
	a := sp.findAlbum(w, r)
	if a == nil {
		return
	}
	opts := readDesignForm(r)
	if _, err := sp.Album.UpdateDesign(a.OwnerID, a.ID, opts); err != nil {
		slog.Error("update album design failed", "id", a.ID, "error", err)
		sp.renderEdit(w, r, http.StatusInternalServerError, albumEditor(a, itemForm{Design: opts}), errorFlash("The design could not be saved."))
		return
	}
	if a.IsPublic {
		sp.invalidateGallery(r.Context())
	}
	http.Redirect(w, r, "/space/album", http.StatusSeeOther)
}

// AlbumConfirmDelete asks before deleting an album item.
func (sp *Space) AlbumConfirmDelete(w http.ResponseWriter, r *http.Request) {
	a := sp.findAlbum(w, r)
	if a == nil {
		return
	}
	sp.renderConfirm(w, r, "album", humanName(a), "/space/album/"+a.ID.String()+"/delete", "/space/album")
}

// humanName labels an album item on the confirmation page.
func humanName(a *models.AlbumItem) string {
	return string(a.MediaType) + " (" + models.HumanSize(a.FileSize) + ")"
}

// AlbumDelete deletes an album item and its stored files, freeing quota.
func (sp *Space) AlbumDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sp.notFound(w, r)
		return
	}
	a, err := sp.Album.Delete(userID(r), id)
	if errors.Is(err, store.ErrNotFound) {
		sp.notFound(w, r)
		return
	}
	if err != nil {
		slog.Error("delete album item failed", "id", id, "error", err)
		sp.errorPage(w, r, http.StatusInternalServerError, "The item could not be deleted.")
		return
	}
	sp.removeAlbumFiles(r.Context(), a)
	if a.IsPublic {
		sp.invalidateGallery(r.Context())
	}
	http.Redirect(w, r, "/space/album", http.StatusSeeOther)
}
