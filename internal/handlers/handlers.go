// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP handlers of the privatespace server:
// the JSON API under /api, the server-rendered space under /space, the
// login pages and the public feed.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"privatespace/internal/auth"
	"privatespace/internal/cache"
	"privatespace/internal/middleware"
	"privatespace/internal/models"
	"privatespace/internal/session"
	"privatespace/internal/storage"
	"privatespace/internal/store"
)

// maxJSONBody bounds decoded request bodies.
const maxJSONBody = 1 << 20

// Default and maximum page sizes for list endpoints.
const (
	defaultLimit = 100
	maxLimit     = 100
)

// Services bundles the dependencies shared by every handler group.
type Services struct {
	Users     *store.UserStore
	Journal   *store.JournalStore
	Blog      *store.BlogStore
	Album     *store.AlbumStore
	Sections  *store.SectionStore
	Dashboard *store.DashboardStore

	Sessions *session.Store
	JWT      *auth.JWTManager
	Media    storage.Backend
	Pages    *cache.PageCache

	AlbumQuota int64
}

// startSession issues an access token for u and registers its session,
// carrying the user's theme so pages can apply it before rendering.
func (s *Services) startSession(ctx context.Context, u *models.User) (string, error) {
	token, claims, err := s.JWT.GenerateToken(u.ID, u.Username)
	if err != nil {
		return "", err
	}
	err = s.Sessions.Create(ctx, claims.ID, &session.Data{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Theme:    u.ProfileTheme,
	}, s.JWT.Expiration())
	if err != nil {
		return "", err
	}
	return token, nil
}

// endSession revokes the caller's token. It is a no-op for anonymous
// requests.
func (s *Services) endSession(ctx context.Context) error {
	id := middleware.IdentityFromCtx(ctx)
	if id == nil || id.Claims == nil {
		return nil
	}
	return s.Sessions.Destroy(ctx, id.Claims.ID)
}

// userID returns the authenticated caller. Routes using it sit behind one
// of the RequireAuth middlewares.
func userID(r *http.Request) uuid.UUID {
	if id := middleware.IdentityFromCtx(r.Context()); id != nil {
		return id.UserID
	}
	return uuid.Nil
}

// urlID parses a UUID route parameter.
func urlID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	return id, err == nil
}

// pagination reads the skip and limit query parameters.
func pagination(r *http.Request) (limit, skip int) {
	limit, skip = defaultLimit, 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = min(v, maxLimit)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("skip")); err == nil && v > 0 {
		skip = v
	}
	return limit, skip
}

// writeJSON sends v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeError sends {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty")
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// decodeValid decodes and validates a request body, writing a 400 on
// failure. It reports whether the handler should continue.
func decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if msg := validateRequest(dst); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return false
	}
	return true
}

// storeFailed maps a store error onto an API response. Not-found writes
// become 404; anything else is logged and reported as a 500.
func storeFailed(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	slog.Error(op+" failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
