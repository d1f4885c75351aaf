// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"privatespace/internal/design"
	"privatespace/internal/store"
)

// UploadAlbum stores a single file in the caller's album. The multipart
// body carries "file" and an optional "is_public" flag.
func (a *API) UploadAlbum(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Upload too large or malformed")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	isPublic, _ := strconv.ParseBool(r.FormValue("is_public"))

	u, closeFn, err := openUpload(files[0])
	if err != nil {
		storeFailed(w, "open album upload", err)
		return
	}
	defer closeFn()

	item, err := a.storeAlbumItem(r.Context(), userID(r), u, isPublic)
	switch {
	case errors.Is(err, store.ErrQuotaExceeded):
		writeError(w, http.StatusBadRequest, a.quotaMessage())
		return
	case errors.Is(err, errUnsupportedMedia):
		writeError(w, http.StatusBadRequest, "Only images and videos can be uploaded")
		return
	case err != nil:
		storeFailed(w, "upload album", err)
		return
	}

	if item.IsPublic {
		a.invalidateGallery(r.Context())
	}
	slog.Info("album item uploaded", "id", item.ID, "size", item.FileSize)
	writeJSON(w, http.StatusCreated, a.newAlbumView(item))
}

// ListAlbum returns the caller's album, newest first.
func (a *API) ListAlbum(w http.ResponseWriter, r *http.Request) {
	limit, skip := pagination(r)
	items, err := a.Album.ListByOwner(userID(r), limit, skip)
	if err != nil {
		storeFailed(w, "list album", err)
		return
	}
	writeJSON(w, http.StatusOK, a.albumViews(items))
}

// ListPublicAlbum returns every public album item. It is public.
func (a *API) ListPublicAlbum(w http.ResponseWriter, r *http.Request) {
	limit, skip := pagination(r)
	items, err := a.Album.ListPublic(limit, skip)
	if err != nil {
		storeFailed(w, "list public album", err)
		return
	}
	writeJSON(w, http.StatusOK, a.albumViews(items))
}

// UpdateAlbumDesign replaces an item's design configuration.
func (a *API) UpdateAlbumDesign(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	var opts design.Options
	if err := decodeJSON(w, r, &opts); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	item, err := a.Album.UpdateDesign(userID(r), id, &opts)
	if err != nil {
		storeFailed(w, "update album design", err)
		return
	}
	if item.IsPublic {
		a.invalidateGallery(r.Context())
	}
	writeJSON(w, http.StatusOK, a.newAlbumView(item))
}

// DeleteAlbum removes an item and its stored files.
func (a *API) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	item, err := a.Album.Delete(userID(r), id)
	if err != nil {
		storeFailed(w, "delete album", err)
		return
	}
	a.removeAlbumFiles(r.Context(), item)
	if item.IsPublic {
		a.invalidateGallery(r.Context())
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
