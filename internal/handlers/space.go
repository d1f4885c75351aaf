// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"privatespace/internal/models"
	"privatespace/internal/preview"
	"privatespace/internal/render"
	"privatespace/internal/store"
)

// Space groups the server-rendered pages of the authenticated area.
// Writes follow post/redirect/get; a failed write re-renders the page with
// the submitted values and an error flash.
type Space struct {
	*Services
	renderer *render.Renderer
	previews *preview.Registry
}

// NewSpace creates the Space handler group.
func NewSpace(s *Services, renderer *render.Renderer, previews *preview.Registry) *Space {
	return &Space{Services: s, renderer: renderer, previews: previews}
}

func errorFlash(msg string) []render.Flash {
	return []render.Flash{{Type: "error", Message: msg}}
}

// newFormID identifies one rendering of an editor form, so previews staged
// from it can be claimed on submit.
func newFormID() string {
	return uuid.NewString()
}

func (sp *Space) quotaMB() int64 {
	return sp.AlbumQuota / (1024 * 1024)
}

// parseForm reads a urlencoded or multipart body, bounded by the upload
// limit. It renders an error page and returns false on failure.
func (sp *Space) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(multipartMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		sp.errorPage(w, r, http.StatusBadRequest, "The form could not be read. Uploads are limited to 50 MB.")
		return false
	}
	return true
}

// cleanupForm removes the temp files of a parsed multipart form.
func cleanupForm(r *http.Request) {
	if r.MultipartForm != nil {
		r.MultipartForm.RemoveAll()
	}
}

func (sp *Space) errorPage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	sp.renderer.PageStatus(w, r, status, "error", &render.PageData{
		Title: http.StatusText(status),
		Data:  map[string]any{"Message": msg},
	})
}

func (sp *Space) notFound(w http.ResponseWriter, r *http.Request) {
	sp.errorPage(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
}

// mediaFailure maps a media storage error to a status and a flash message.
func mediaFailure(err error) (int, string) {
	if errors.Is(err, errUnsupportedMedia) {
		return http.StatusBadRequest, "Only images and videos can be uploaded."
	}
	slog.Error("store media failed", "error", err)
	return http.StatusInternalServerError, "The uploaded media could not be stored."
}

// collectMedia stores the media submitted with an editor form: the
// previews staged for its form_id first, then any files posted directly.
// Claimed previews are released whatever the outcome.
func (sp *Space) collectMedia(r *http.Request, kind string) ([]models.MediaItem, []string, error) {
	ctx := r.Context()
	owner := userID(r)

	var items []models.MediaItem
	var keys []string
	fail := func(err error) ([]models.MediaItem, []string, error) {
		sp.removeKeys(ctx, keys...)
		return nil, nil, err
	}

	if formID := r.FormValue("form_id"); formID != "" && sp.previews != nil {
		staged := sp.previews.Claim(owner, formID)
		defer func() {
			for _, p := range staged {
				p.Release()
			}
		}()
		for _, p := range staged {
			if !allowedMedia(p.ContentType) {
				return fail(errUnsupportedMedia)
			}
			f, err := p.Open()
			if err != nil {
				return fail(fmt.Errorf("open preview: %w", err))
			}
			item, key, err := sp.putMedia(ctx, owner, kind, upload{
				Filename:    p.Filename,
				ContentType: p.ContentType,
				Size:        p.Size,
				Body:        f,
			})
			f.Close()
			if err != nil {
				return fail(err)
			}
			items = append(items, item)
			keys = append(keys, key)
		}
	}

	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["files"]; len(files) > 0 {
			direct, directKeys, err := sp.storeFiles(ctx, owner, kind, files)
			if err != nil {
				return fail(err)
			}
			items = append(items, direct...)
			keys = append(keys, directKeys...)
		}
	}
	return items, keys, nil
}

// discardPreviews drops what was staged for a form that will not be saved.
func (sp *Space) discardPreviews(r *http.Request) {
	if formID := r.FormValue("form_id"); formID != "" && sp.previews != nil {
		sp.previews.RevokeForm(userID(r), formID)
	}
}

// editPage describes the shared item editor.
type editPage struct {
	title   string
	surface string
	action  string
	cancel  string
	form    itemForm
	gallery models.Gallery
}

func (sp *Space) renderEdit(w http.ResponseWriter, r *http.Request, status int, e editPage, flashes []render.Flash) {
	sp.renderer.PageStatus(w, r, status, "edit", &render.PageData{
		Title:   e.title,
		Section: e.surface,
		Flashes: flashes,
		Data: map[string]any{
			"Form":    e.form,
			"Surface": e.surface,
			"Action":  e.action,
			"Cancel":  e.cancel,
			"FormID":  newFormID(),
			"Gallery": e.gallery,
		},
	})
}

func (sp *Space) renderConfirm(w http.ResponseWriter, r *http.Request, section, name, action, cancel string) {
	sp.renderer.Page(w, r, "confirm", &render.PageData{
		Title:   "Confirm delete",
		Section: section,
		Data:    map[string]any{"Name": name, "Action": action, "Cancel": cancel},
	})
}

// Dashboard renders the overview: counts, storage and recent activity.
func (sp *Space) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := sp.Services.Dashboard.Stats(userID(r))
	if err != nil {
		slog.Error("dashboard stats failed", "error", err)
	}
	sp.renderer.Page(w, r, "dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data:    map[string]any{"Stats": stats, "QuotaMB": sp.quotaMB()},
	})
}

// --- Profile ---

// Profile renders the profile editor: picture, theme, and the ordered
// section grid.
func (sp *Space) Profile(w http.ResponseWriter, r *http.Request) {
	sp.profilePage(w, r, http.StatusOK, itemForm{}, nil)
}

func (sp *Space) profilePage(w http.ResponseWriter, r *http.Request, status int, form itemForm, flashes []render.Flash) {
	owner := userID(r)
	data := map[string]any{
		"Form":   form,
		"FormID": newFormID(),
		"Theme":  render.ThemeForm{},
	}

	u, err := sp.Users.FindByID(owner)
	if err != nil {
		slog.Error("find user failed", "user_id", owner, "error", err)
	}
	if u != nil {
		data["Theme"] = render.NewThemeForm(u.ProfileTheme)
		if u.ProfilePicture != nil {
			data["Picture"] = *u.ProfilePicture
		}
	}

	items, err := sp.Sections.ListByOwner(owner)
	if err != nil {
		slog.Error("list sections failed", "user_id", owner, "error", err)
	}
	data["Items"] = sectionViews(items)

	sp.renderer.PageStatus(w, r, status, "profile", &render.PageData{
		Title:   "Profile",
		Section: "profile",
		Flashes: flashes,
		Data:    data,
	})
}

// SectionCreate adds a section at the end of the profile grid.
func (sp *Space) SectionCreate(w http.ResponseWriter, r *http.Request) {
	if !sp.parseForm(w, r) {
		return
	}
	defer cleanupForm(r)

	f := readItemForm(r)
	req := sectionRequest{SectionType: f.SectionType, Title: f.Title, Content: f.Content, Design: f.Design}
	if msg := validateRequest(&req); msg != "" {
		sp.discardPreviews(r)
		sp.profilePage(w, r, http.StatusBadRequest, f, errorFlash(msg))
		return
	}

	owner := userID(r)
	existing, err := sp.Sections.ListByOwner(owner)
	if err != nil {
		slog.Error("list sections failed", "user_id", owner, "error", err)
		sp.discardPreviews(r)
		sp.profilePage(w, r, http.StatusInternalServerError, f, errorFlash("The section could not be saved."))
		return
	}

	media, keys, err := sp.collectMedia(r, kindProfile)
	if err != nil {
		status, msg := mediaFailure(err)
		sp.profilePage(w, r, status, f, errorFlash(msg))
		return
	}

	p := &models.ProfileSection{
		OwnerID:     owner,
		SectionType: f.SectionType,
		Title:       f.Title,
		Content:     f.Content,
		Design:      f.Design,
		Gallery:     media,
		Order:       len(existing),
	}
	if p.SectionType == "" {
		p.SectionType = "text"
	}
	if _, err := sp.Sections.Create(p); err != nil {
		sp.removeKeys(r.Context(), keys...)
		slog.Error("create section failed", "error", err)
		sp.profilePage(w, r, http.StatusInternalServerError, f, errorFlash("The section could not be saved."))
		return
	}
	http.Redirect(w, r, "/space/profile", http.StatusSeeOther)
}

func (sp *Space) findSection(w http.ResponseWriter, r *http.Request) *models.ProfileSection {
	id, ok := urlID(r, "id")
	if !ok {
		sp.notFound(w, r)
		return nil
	}
	p, err := sp.Sections.FindByID(userID(r), id)
	if err != nil {
		slog.Error("find section failed", "id", id, "error", err)
		sp.errorPage(w, r, http.StatusInternalServerError, "The section could not be loaded.")
		return nil
	}
	if p == nil {
		sp.notFound(w, r)
	}
	return p
}

func sectionEditor(p *models.ProfileSection, form itemForm) editPage {
	return editPage{
		title:   "Edit section",
		surface: "profile",
		action:  "/space/profile/sections/" + p.ID.String(),
		cancel:  "/space/profile",
		form:    form,
		gallery: p.Gallery,
	}
}

// SectionEdit renders the editor for one section.
func (sp *Space) SectionEdit(w http.ResponseWriter, r *http.Request) {
	p := sp.findSection(w, r)
	if p == nil {
		return
	}
	sp.renderEdit(w, r, http.StatusOK, sectionEditor(p, sectionForm(p)), nil)
}

// SectionUpdate saves the editor and appends any new media.
func (sp *Space) SectionUpdate(w http.ResponseWriter, r *http.Request) {
	if !sp.parseForm(w, r) {
		return
	}
	defer cleanupForm(r)

	p := sp.findSection(w, r)
	if p == nil {
		sp.discardPreviews(r)
		return
	}
	f := readItemForm(r)
	req := sectionRequest{SectionType: f.SectionType, Title: f.Title, Content: f.Content, Design: f.Design}
	if msg := validateRequest(&req); msg != "" {
		sp.discardPreviews(r)
		sp.renderEdit(w, r, http.StatusBadRequest, sectionEditor(p, f), errorFlash(msg))
		return
	}

	if f.SectionType != "" {
		p.SectionType = f.SectionType
	}
	p.Title = f.Title
	p.Content = f.Content
	p.Design = f.Design
	if err := sp.Sections.Update(p); err != nil {
		slog.Error("update section failed", "id", p.ID, "error", err)
		sp.discardPreviews(r)
		sp.renderEdit(w, r, http.StatusInternalServerError, sectionEditor(p, f), errorFlash("The section could not be saved."))
		return
	}
	if !sp.appendMedia(w, r, kindProfile, p.ID, sp.Sections.AppendMedia, sectionEditor(p, f)) {
		return
	}
	http.Redirect(w, r, "/space/profile", http.StatusSeeOther)
}

// appendMedia stores the form's new media and appends it to the item's
// gallery. On failure it re-renders the editor and returns false.
func (sp *Space) appendMedia(w http.ResponseWriter, r *http.Request, kind string, id uuid.UUID, appendTo appendFunc, e editPage) bool {
	media, keys, err := sp.collectMedia(r, kind)
	if err != nil {
		status, msg := mediaFailure(err)
		sp.renderEdit(w, r, status, e, errorFlash(msg))
		return false
	}
	if len(media) == 0 {
		return true
	}
	if _, err := appendTo(userID(r), id, media); err != nil {
		sp.removeKeys(r.Context(), keys...)
		slog.Error("append media failed", "id", id, "error", err)
		sp.renderEdit(w, r, http.StatusInternalServerError, e, errorFlash("The uploaded media could not be attached."))
		return false
	}
	return true
}

// SectionConfirmDelete asks before deleting a section.
func (sp *Space) SectionConfirmDelete(w http.ResponseWriter, r *http.Request) {
	p := sp.findSection(w, r)
	if p == nil {
		return
	}
	sp.renderConfirm(w, r, "profile", p.Title, "/space/profile/sections/"+p.ID.String()+"/delete", "/space/profile")
}

// SectionDelete deletes a section.
func (sp *Space) SectionDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sp.notFound(w, r)
		return
	}
	err := sp.Sections.Delete(userID(r), id)
	if errors.Is(err, store.ErrNotFound) {
		sp.notFound(w, r)
		return
	}
	if err != nil {
		slog.Error("delete section failed", "id", id, "error", err)
		sp.errorPage(w, r, http.StatusInternalServerError, "The section could not be deleted.")
		return
	}
	http.Redirect(w, r, "/space/profile", http.StatusSeeOther)
}

// ProfilePicture replaces the caller's avatar.
func (sp *Space) ProfilePicture(w http.ResponseWriter, r *http.Request) {
	if !sp.parseForm(w, r) {
		return
	}
	defer cleanupForm(r)

	if r.MultipartForm == nil || len(r.MultipartForm.File["file"]) == 0 {
		sp.profilePage(w, r, http.StatusBadRequest, itemForm{}, errorFlash("Choose a picture to upload."))
		return
	}
	u, closeFn, err := openUpload(r.MultipartForm.File["file"][0])
	if err != nil {
		slog.Error("open profile picture failed", "error", err)
		sp.profilePage(w, r, http.StatusBadRequest, itemForm{}, errorFlash("The picture could not be read."))
		return
	}
	defer closeFn()
	if !strings.HasPrefix(u.ContentType, "image/") {
		sp.profilePage(w, r, http.StatusBadRequest, itemForm{}, errorFlash("Profile picture must be an image."))
		return
	}

	owner := userID(r)
	item, key, err := sp.putMedia(r.Context(), owner, kindAvatar, u)
	if err != nil {
		status, msg := mediaFailure(err)
		sp.profilePage(w, r, status, itemForm{}, errorFlash(msg))
		return
	}
	if err := sp.Users.SetProfilePicture(owner, item.URL); err != nil {
		sp.removeKeys(r.Context(), key)
		slog.Error("set profile picture failed", "error", err)
		sp.profilePage(w, r, http.StatusInternalServerError, itemForm{}, errorFlash("The picture could not be saved."))
		return
	}
	http.Redirect(w, r, "/space/profile", http.StatusSeeOther)
}

// Theme replaces the caller's theme. Empty fields fall back to the
// system defaults.
func (sp *Space) Theme(w http.ResponseWriter, r *http.Request) {
	if !sp.parseForm(w, r) {
		return
	}
	if err := sp.saveTheme(r.Context(), readThemeForm(r)); err != nil {
		slog.Error("save theme failed", "error", err)
		sp.profilePage(w, r, http.StatusInternalServerError, itemForm{}, errorFlash("The theme could not be saved."))
		return
	}
	http.Redirect(w, r, "/space/profile", http.StatusSeeOther)
}

// Reorder applies a new section order. The drag script posts the order map
// as JSON and gets JSON back; the no-script form posts order[<id>] fields
// and is redirected.
func (sp *Space) Reorder(w http.ResponseWriter, r *http.Request) {
	asJSON := strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")

	var raw map[string]int
	if asJSON {
		if err := decodeJSON(w, r, &raw); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	} else {
		if !sp.parseForm(w, r) {
			return
		}
		raw = readOrderForm(r)
	}

	order, err := parseOrder(raw)
	if err == nil {
		err = sp.Sections.Reorder(userID(r), order)
	}
	if err != nil {
		status := http.StatusInternalServerError
		msg := "The new order could not be saved."
		if errors.Is(err, errBadOrder) || errors.Is(err, store.ErrNotFound) {
			status, msg = http.StatusBadRequest, "The new order does not match your sections."
		} else {
			slog.Error("reorder sections failed", "error", err)
		}
		if asJSON {
			writeError(w, status, msg)
			return
		}
		sp.profilePage(w, r, status, itemForm{}, errorFlash(msg))
		return
	}

	if asJSON {
		writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
		return
	}
	http.Redirect(w, r, "/space/profile", http.StatusSeeOther)
}

// --- Previews ---

type previewResponse struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
}

// StagePreview stages one file for an editor form before it is submitted.
func (sp *Space) StagePreview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Upload too large or malformed")
		return
	}
	defer r.MultipartForm.RemoveAll()

	formID := r.FormValue("form_id")
	files := r.MultipartForm.File["file"]
	if formID == "" || len(files) == 0 {
		writeError(w, http.StatusBadRequest, "form_id and file are required")
		return
	}
	u, closeFn, err := openUpload(files[0])
	if err != nil {
		storeFailed(w, "open preview", err)
		return
	}
	defer closeFn()
	if !allowedMedia(u.ContentType) {
		writeError(w, http.StatusBadRequest, "Only images and videos can be uploaded")
		return
	}

	p, err := sp.previews.Stage(userID(r), formID, u.Filename, u.ContentType, u.Body)
	if err != nil {
		storeFailed(w, "stage preview", err)
		return
	}
	writeJSON(w, http.StatusCreated, previewResponse{
		ID:          p.ID,
		URL:         p.URL(),
		Filename:    p.Filename,
		ContentType: p.ContentType,
		Size:        p.Size,
	})
}

// ServePreview streams a staged file back to its owner.
func (sp *Space) ServePreview(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	p, err := sp.previews.Get(userID(r), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	f, err := p.Open()
	if err != nil {
		// Swept or claimed between Get and Open.
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", p.ContentType)
	w.Header().Set("Cache-Control", "private, no-store")
	http.ServeContent(w, r, p.Filename, p.CreatedAt, f)
}

// DeletePreview removes one staged file.
func (sp *Space) DeletePreview(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if err := sp.previews.Revoke(userID(r), id); err != nil {
		writeError(w, http.StatusNotFound, "Preview not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetPreviews drops everything staged for a form, used when the form is
// reset.
func (sp *Space) ResetPreviews(w http.ResponseWriter, r *http.Request) {
	formID := r.FormValue("form_id")
	if formID == "" {
		writeError(w, http.StatusBadRequest, "form_id is required")
		return
	}
	n := sp.previews.RevokeForm(userID(r), formID)
	writeJSON(w, http.StatusOK, map[string]int{"released": n})
}
