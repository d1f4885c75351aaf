// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"privatespace/internal/middleware"
	"privatespace/internal/render"
)

// Auth groups the cookie-based login pages.
type Auth struct {
	*Services
	renderer *render.Renderer
}

// NewAuth creates a new Auth handler group.
func NewAuth(s *Services, renderer *render.Renderer) *Auth {
	return &Auth{Services: s, renderer: renderer}
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Already signed in: go straight to the space.
	if middleware.IdentityFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/space", http.StatusSeeOther)
		return
	}
	a.loginForm(w, r, http.StatusOK, "", "")
}

func (a *Auth) loginForm(w http.ResponseWriter, r *http.Request, status int, username, msg string) {
	a.renderer.PageStatus(w, r, status, "login", &render.PageData{
		Title: "Sign In",
		Data:  map[string]any{"Username": username, "Error": msg},
	})
}

// LoginSubmit checks the credentials, stores the token in a cookie and
// sends the user to their space.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	u, err := a.checkCredentials(username, password, r.FormValue("otp"))
	if msg := credentialMessage(err); msg != "" {
		a.loginForm(w, r, http.StatusUnauthorized, username, msg+".")
		return
	}
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		a.loginForm(w, r, http.StatusInternalServerError, username, "An unexpected error occurred.")
		return
	}

	token, err := a.startSession(r.Context(), u)
	if err != nil {
		slog.Error("session create failed", "error", err)
		a.loginForm(w, r, http.StatusInternalServerError, username, "An unexpected error occurred.")
		return
	}
	a.Sessions.SetCookie(w, token, a.JWT.Expiration())
	slog.Info("user signed in", "user_id", u.ID)
	http.Redirect(w, r, "/space", http.StatusSeeOther)
}

// Logout revokes the session, clears the cookie and the theme, and returns
// to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.endSession(r.Context()); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	a.Sessions.ClearCookie(w)
	middleware.ThemeFromCtx(r.Context()).Reset()
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
