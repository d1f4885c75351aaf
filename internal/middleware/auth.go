// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"privatespace/internal/auth"
	"privatespace/internal/design"
	"privatespace/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	identityKey contextKey = "identity"
	themeKey    contextKey = "theme"
)

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID  uuid.UUID
	Claims  *auth.Claims
	Session *session.Data
	Token   string
}

// Sessions is the part of the session store the auth middleware needs.
type Sessions interface {
	Get(ctx context.Context, jti string) (*session.Data, error)
	ClearCookie(w http.ResponseWriter)
}

// Authenticator resolves bearer tokens and page cookies to an Identity.
type Authenticator struct {
	jwt      *auth.JWTManager
	sessions Sessions
}

// NewAuthenticator creates the auth middleware set.
func NewAuthenticator(jwt *auth.JWTManager, sessions Sessions) *Authenticator {
	return &Authenticator{jwt: jwt, sessions: sessions}
}

// Authenticate loads the caller's identity if the request carries a valid,
// unrevoked token, and seeds the request's theme context from the session.
// It does NOT enforce authentication; unauthenticated requests get an empty
// theme context.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		theme := design.NewThemeContext()
		ctx := context.WithValue(r.Context(), themeKey, theme)

		if id := a.identify(r); id != nil {
			theme.Apply(id.Session.Theme)
			ctx = context.WithValue(ctx, identityKey, id)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) identify(r *http.Request) *Identity {
	token, _, ok := session.TokenFromRequest(r)
	if !ok {
		return nil
	}

	claims, err := a.jwt.ValidateToken(token)
	if err != nil {
		slog.Debug("token rejected", "error", err)
		return nil
	}

	data, err := a.sessions.Get(r.Context(), claims.ID)
	if err != nil {
		// Log but don't block; treat as unauthenticated.
		slog.Error("session lookup failed", "error", err)
		return nil
	}
	if data == nil {
		slog.Debug("token revoked", "jti", claims.ID)
		return nil
	}

	userID, _ := claims.UserID()
	if data.UserID != userID {
		slog.Warn("session does not match token subject", "jti", claims.ID)
		return nil
	}

	return &Identity{UserID: userID, Claims: claims, Session: data, Token: token}
}

// RequireAPIAuth rejects unauthenticated API requests with a 401 JSON body.
// Must be applied after Authenticate in the middleware chain.
func (a *Authenticator) RequireAPIAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFromCtx(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("WWW-Authenticate", `Bearer realm="privatespace"`)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"not authenticated"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePageAuth sends unauthenticated page requests to the login page.
// A stale cookie is cleared and the theme context reset, so the login page
// renders with system defaults.
func (a *Authenticator) RequirePageAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFromCtx(r.Context()) == nil {
			ThemeFromCtx(r.Context()).Reset()
			a.sessions.ClearCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFromCtx extracts the caller's identity from the request context.
// Returns nil if the request is not authenticated.
func IdentityFromCtx(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}

// ThemeFromCtx returns the request's theme context. Outside of
// Authenticate it returns a fresh, empty context.
func ThemeFromCtx(ctx context.Context) *design.ThemeContext {
	if tc, ok := ctx.Value(themeKey).(*design.ThemeContext); ok {
		return tc
	}
	return design.NewThemeContext()
}

// WithIdentity returns a copy of ctx carrying id. Handlers use it after a
// login so the rest of the request sees the new caller.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}
