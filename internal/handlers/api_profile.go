// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"privatespace/internal/design"
	"privatespace/internal/middleware"
	"privatespace/internal/models"
)

// ListSections returns the caller's profile sections in display order.
func (a *API) ListSections(w http.ResponseWriter, r *http.Request) {
	items, err := a.Sections.ListByOwner(userID(r))
	if err != nil {
		storeFailed(w, "list sections", err)
		return
	}
	writeJSON(w, http.StatusOK, sectionViews(items))
}

// Me returns the caller's account, theme included.
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	u, err := a.Users.FindByID(userID(r))
	if err != nil {
		storeFailed(w, "find user", err)
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// CreateSection adds a profile section.
func (a *API) CreateSection(w http.ResponseWriter, r *http.Request) {
	var req sectionRequest
	if !decodeValid(w, r, &req) {
		return
	}
	p := &models.ProfileSection{
		OwnerID:     userID(r),
		SectionType: strings.TrimSpace(req.SectionType),
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		Design:      req.Design,
	}
	if p.SectionType == "" {
		p.SectionType = "text"
	}
	if req.Order != nil {
		p.Order = *req.Order
	}
	created, err := a.Sections.Create(p)
	if err != nil {
		storeFailed(w, "create section", err)
		return
	}
	writeJSON(w, http.StatusCreated, newSectionView(created))
}

// UpdateSection applies the fields present in the body.
func (a *API) UpdateSection(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	var req sectionPatch
	if !decodeValid(w, r, &req) {
		return
	}

	p, err := a.Sections.FindByID(userID(r), id)
	if err != nil {
		storeFailed(w, "find section", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Section not found")
		return
	}

	if req.SectionType != nil {
		p.SectionType = strings.TrimSpace(*req.SectionType)
	}
	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.Design != nil {
		p.Design = req.Design
	}
	if req.Order != nil {
		p.Order = *req.Order
	}

	if err := a.Sections.Update(p); err != nil {
		storeFailed(w, "update section", err)
		return
	}
	writeJSON(w, http.StatusOK, newSectionView(p))
}

// DeleteSection removes a profile section.
func (a *API) DeleteSection(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if err := a.Sections.Delete(userID(r), id); err != nil {
		storeFailed(w, "delete section", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UploadSectionMedia appends the uploaded files to a section's gallery.
func (a *API) UploadSectionMedia(w http.ResponseWriter, r *http.Request) {
	a.appendGallery(w, r, kindProfile, a.Sections.AppendMedia)
}

// UploadProfilePicture stores the multipart "file" as the caller's avatar.
func (a *API) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
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
	u, closeFn, err := openUpload(files[0])
	if err != nil {
		storeFailed(w, "open profile picture", err)
		return
	}
	defer closeFn()
	if !strings.HasPrefix(u.ContentType, "image/") {
		writeError(w, http.StatusBadRequest, "Profile picture must be an image")
		return
	}

	owner := userID(r)
	item, key, err := a.putMedia(r.Context(), owner, kindAvatar, u)
	if err != nil {
		storeFailed(w, "store profile picture", err)
		return
	}
	if err := a.Users.SetProfilePicture(owner, item.URL); err != nil {
		a.removeKeys(r.Context(), key)
		storeFailed(w, "set profile picture", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"profile_picture": item.URL})
}

// UpdateTheme replaces the caller's theme and applies it to the current
// session, so the next rendered page already uses it.
func (a *API) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	var theme design.Theme
	if err := decodeJSON(w, r, &theme); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.saveTheme(r.Context(), &theme); err != nil {
		storeFailed(w, "update theme", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile_theme": theme})
}

// saveTheme persists theme for the caller, refreshes the copy held by every
// one of their sessions and re-applies the request's theme context.
func (s *Services) saveTheme(ctx context.Context, theme *design.Theme) error {
	id := middleware.IdentityFromCtx(ctx)
	if id == nil {
		return fmt.Errorf("save theme: no identity")
	}
	if err := s.Users.SetProfileTheme(id.UserID, theme); err != nil {
		return err
	}
	if id.Session != nil {
		id.Session.Theme = theme
	}
	if n, err := s.Sessions.SetTheme(ctx, id.UserID, theme); err != nil {
		slog.Warn("refresh session theme failed", "user_id", id.UserID, "error", err)
	} else {
		slog.Debug("session themes refreshed", "user_id", id.UserID, "sessions", n)
	}
	middleware.ThemeFromCtx(ctx).Apply(theme)
	return nil
}

// ReorderSections applies a complete {id: position} map.
func (a *API) ReorderSections(w http.ResponseWriter, r *http.Request) {
	var raw map[string]int
	if err := decodeJSON(w, r, &raw); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	order, err := parseOrder(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.Sections.Reorder(userID(r), order); err != nil {
		storeFailed(w, "reorder sections", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

var errBadOrder = errors.New("order keys must be section IDs")

// parseOrder converts an order map keyed by ID strings.
func parseOrder(raw map[string]int) (map[uuid.UUID]int, error) {
	order := make(map[uuid.UUID]int, len(raw))
	for k, pos := range raw {
		id, err := uuid.Parse(k)
		if err != nil {
			return nil, errBadOrder
		}
		order[id] = pos
	}
	return order, nil
}
