// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"privatespace/internal/models"
)

// ListJournal returns the caller's entries, newest first.
func (a *API) ListJournal(w http.ResponseWriter, r *http.Request) {
	limit, skip := pagination(r)
	items, err := a.Journal.ListByOwner(userID(r), limit, skip)
	if err != nil {
		storeFailed(w, "list journal", err)
		return
	}
	writeJSON(w, http.StatusOK, journalViews(items))
}

// GetJournal returns one of the caller's entries.
func (a *API) GetJournal(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	j, err := a.Journal.FindByID(userID(r), id)
	if err != nil {
		storeFailed(w, "find journal", err)
		return
	}
	if j == nil {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}
	writeJSON(w, http.StatusOK, newJournalView(j))
}

// CreateJournal creates an entry from a JSON body.
func (a *API) CreateJournal(w http.ResponseWriter, r *http.Request) {
	var req journalRequest
	if !decodeValid(w, r, &req) {
		return
	}
	j, err := a.Journal.Create(&models.JournalEntry{
		OwnerID:  userID(r),
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		IsPublic: req.IsPublic,
		Design:   req.Design,
	})
	if err != nil {
		storeFailed(w, "create journal", err)
		return
	}
	writeJSON(w, http.StatusCreated, newJournalView(j))
}

// UpdateJournal applies the fields present in the body and leaves the rest
// untouched.
func (a *API) UpdateJournal(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	var req journalPatch
	if !decodeValid(w, r, &req) {
		return
	}

	owner := userID(r)
	j, err := a.Journal.FindByID(owner, id)
	if err != nil {
		storeFailed(w, "find journal", err)
		return
	}
	if j == nil {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}

	if req.Title != nil {
		j.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		j.Content = *req.Content
	}
	if req.IsPublic != nil {
		j.IsPublic = *req.IsPublic
	}
	if req.Design != nil {
		j.Design = req.Design
	}

	if err := a.Journal.Update(j); err != nil {
		storeFailed(w, "update journal", err)
		return
	}
	writeJSON(w, http.StatusOK, newJournalView(j))
}

// DeleteJournal removes one of the caller's entries.
func (a *API) DeleteJournal(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if err := a.Journal.Delete(userID(r), id); err != nil {
		storeFailed(w, "delete journal", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UploadJournalMedia appends the uploaded files to an entry's gallery.
func (a *API) UploadJournalMedia(w http.ResponseWriter, r *http.Request) {
	a.appendGallery(w, r, kindJournal, a.Journal.AppendMedia)
}

// appendFunc is the AppendMedia method of a gallery-bearing store.
type appendFunc func(owner, id uuid.UUID, items []models.MediaItem) (models.Gallery, error)

// appendGallery handles the shared "POST /{id}/media" flow: parse the
// multipart "files" field, store each file, append them in upload order and
// return the full gallery.
func (a *API) appendGallery(w http.ResponseWriter, r *http.Request, kind string, appendMedia appendFunc) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Upload too large or malformed")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "No files uploaded")
		return
	}

	owner := userID(r)
	items, keys, err := a.storeFiles(r.Context(), owner, kind, files)
	if errors.Is(err, errUnsupportedMedia) {
		writeError(w, http.StatusBadRequest, "Only images and videos can be uploaded")
		return
	}
	if err != nil {
		storeFailed(w, "store media", err)
		return
	}

	gallery, err := appendMedia(owner, id, items)
	if err != nil {
		a.removeKeys(r.Context(), keys...)
		storeFailed(w, "append media", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"gallery": gallery})
}
