// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for
// PrivateSpace. Routes are organized into the JSON API, the cookie
// authenticated space pages and the public pages.
package router

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"privatespace/internal/handlers"
	"privatespace/internal/middleware"
	"privatespace/internal/storage"
)

// Handlers are the handler groups the router dispatches to.
type Handlers struct {
	API    *handlers.API
	Auth   *handlers.Auth
	Space  *handlers.Space
	Public *handlers.Public
}

// Options carries the middleware and asset settings.
type Options struct {
	Authenticator *middleware.Authenticator
	Metrics       *middleware.Metrics     // nil disables /metrics
	LoginLimiter  *middleware.RateLimiter // nil disables login throttling
	SecureCookies bool

	// MediaOrigins are extra origins media may be loaded from (S3).
	MediaOrigins []string

	// UploadDir is served at /uploads/ when media is stored locally.
	UploadDir string

	// Static holds the CSS and JS served at /static/.
	Static fs.FS
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(h Handlers, o Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders(o.MediaOrigins...))
	if o.Metrics != nil {
		r.Use(o.Metrics.Middleware)
	}
	r.Use(o.Authenticator.Authenticate)

	// Health check: no auth, no CSRF.
	r.Get("/health", healthHandler)
	if o.Metrics != nil {
		r.Handle("/metrics", o.Metrics.Handler())
	}

	if o.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(o.Static))))
	}
	if o.UploadDir != "" {
		r.Handle(storage.LocalPrefix+"*", http.StripPrefix(storage.LocalPrefix, noListing(http.FileServer(http.Dir(o.UploadDir)))))
	}

	throttle := func(next http.Handler) http.Handler { return next }
	if o.LoginLimiter != nil {
		throttle = o.LoginLimiter.Middleware
	}

	// JSON API: bearer tokens, no CSRF. Routes marked public skip auth.
	r.Route("/api", func(r chi.Router) {
		authed := r.With(o.Authenticator.RequireAPIAuth)

		r.Post("/auth/register", h.API.Register)
		r.With(throttle).Post("/auth/token", h.API.Token)
		authed.Post("/auth/logout", h.API.Logout)
		authed.Post("/auth/2fa/setup", h.API.TwoFASetup)
		authed.Post("/auth/2fa/enable", h.API.TwoFAEnable)

		authed.Get("/journal", h.API.ListJournal)
		authed.Post("/journal", h.API.CreateJournal)
		authed.Get("/journal/{id}", h.API.GetJournal)
		authed.Put("/journal/{id}", h.API.UpdateJournal)
		authed.Delete("/journal/{id}", h.API.DeleteJournal)
		authed.Post("/journal/{id}/media", h.API.UploadJournalMedia)

		r.Get("/blog", h.API.ListBlogFeed) // public
		authed.Get("/blog/my", h.API.ListMyBlog)
		authed.Post("/blog", h.API.CreateBlog)
		authed.Put("/blog/{id}", h.API.UpdateBlog)
		authed.Delete("/blog/{id}", h.API.DeleteBlog)
		authed.Post("/blog/{id}/media", h.API.UploadBlogMedia)
		authed.Put("/blog/{id}/rank", h.API.RankBlog)

		authed.Post("/album/upload", h.API.UploadAlbum)
		authed.Get("/album", h.API.ListAlbum)
		r.Get("/album/public", h.API.ListPublicAlbum) // public
		authed.Put("/album/{id}/design", h.API.UpdateAlbumDesign)
		authed.Delete("/album/{id}", h.API.DeleteAlbum)

		authed.Get("/profile", h.API.ListSections)
		authed.Get("/profile/me", h.API.Me)
		authed.Post("/profile/section", h.API.CreateSection)
		authed.Put("/profile/section/{id}", h.API.UpdateSection)
		authed.Delete("/profile/section/{id}", h.API.DeleteSection)
		authed.Post("/profile/section/{id}/media", h.API.UploadSectionMedia)
		authed.Post("/profile/picture", h.API.UploadProfilePicture)
		authed.Put("/profile/theme", h.API.UpdateTheme)
		authed.Put("/profile/reorder", h.API.ReorderSections)

		authed.Get("/dashboard/stats", h.API.DashboardStats)
		authed.Post("/design/resolve", h.API.ResolveDesign)
		authed.Get("/design/theme", h.API.ThemeVars)
	})

	// Cookie authenticated pages, CSRF protected.
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewCSRF(o.SecureCookies))

		r.Get("/login", h.Auth.LoginPage)
		r.With(throttle).Post("/login", h.Auth.LoginSubmit)
		r.Post("/logout", h.Auth.Logout)

		r.Route("/space", func(r chi.Router) {
			r.Use(o.Authenticator.RequirePageAuth)

			r.Get("/", h.Space.Dashboard)

			r.Route("/journal", func(r chi.Router) {
				r.Get("/", h.Space.JournalPage)
				r.Post("/", h.Space.JournalCreate)
				r.Get("/{id}/edit", h.Space.JournalEdit)
				r.Post("/{id}", h.Space.JournalUpdate)
				r.Get("/{id}/delete", h.Space.JournalConfirmDelete)
				r.Post("/{id}/delete", h.Space.JournalDelete)
			})

			r.Route("/blog", func(r chi.Router) {
				r.Get("/", h.Space.BlogPage)
				r.Post("/", h.Space.BlogCreate)
				r.Get("/{id}/edit", h.Space.BlogEdit)
				r.Post("/{id}", h.Space.BlogUpdate)
				r.Post("/{id}/rank", h.Space.BlogRank)
				r.Get("/{id}/delete", h.Space.BlogConfirmDelete)
				r.Post("/{id}/delete", h.Space.BlogDelete)
			})

			r.Route("/album", func(r chi.Router) {
				r.Get("/", h.Space.AlbumPage)
				r.Post("/", h.Space.AlbumUpload)
				r.Get("/{id}/edit", h.Space.AlbumEdit)
				r.Post("/{id}", h.Space.AlbumUpdate)
				r.Get("/{id}/delete", h.Space.AlbumConfirmDelete)
				r.Post("/{id}/delete", h.Space.AlbumDelete)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", h.Space.Profile)
				r.Post("/picture", h.Space.ProfilePicture)
				r.Post("/reorder", h.Space.Reorder)
				r.Post("/sections", h.Space.SectionCreate)
				r.Get("/sections/{id}/edit", h.Space.SectionEdit)
				r.Post("/sections/{id}", h.Space.SectionUpdate)
				r.Get("/sections/{id}/delete", h.Space.SectionConfirmDelete)
				r.Post("/sections/{id}/delete", h.Space.SectionDelete)
			})

			r.Post("/theme", h.Space.Theme)

			r.Route("/previews", func(r chi.Router) {
				r.Post("/", h.Space.StagePreview)
				r.Post("/reset", h.Space.ResetPreviews)
				r.Get("/{id}", h.Space.ServePreview)
				r.Delete("/{id}", h.Space.DeletePreview)
			})
		})
	})

	// Public pages, rendered without a viewer theme and cached.
	r.Get("/", h.Public.Feed)
	r.Get("/blog/{slug}", h.Public.Post)
	r.Get("/gallery", h.Public.Gallery)

	return r
}

// noListing hides directory indexes from a file server.
func noListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
