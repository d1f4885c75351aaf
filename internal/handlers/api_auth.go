// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"privatespace/internal/models"
)

// totpIssuer names the account in authenticator apps.
const totpIssuer = "PrivateSpace"

// Credential failures.
var (
	errBadCredentials = errors.New("incorrect username or password")
	errOTPRequired    = errors.New("one-time code required")
	errBadOTP         = errors.New("invalid one-time code")
)

// API groups the JSON handlers mounted under /api.
type API struct {
	*Services
}

// NewAPI creates the API handler group.
func NewAPI(s *Services) *API {
	return &API{Services: s}
}

// checkCredentials verifies a username, password and, for users enrolled
// in 2FA, a one-time code. A non-nil error other than the credential
// failures above is an infrastructure error.
func (s *Services) checkCredentials(username, password, otp string) (*models.User, error) {
	u, err := s.Users.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if u == nil || !s.Users.CheckPassword(u, password) {
		return nil, errBadCredentials
	}
	if u.Requires2FA() {
		if otp == "" {
			return nil, errOTPRequired
		}
		if !totp.Validate(otp, *u.TOTPSecret) {
			return nil, errBadOTP
		}
	}
	return u, nil
}

// credentialMessage returns the user-facing text of a credential failure,
// or "" when err is not one.
func credentialMessage(err error) string {
	switch {
	case errors.Is(err, errBadCredentials):
		return "Incorrect username or password"
	case errors.Is(err, errOTPRequired):
		return "One-time code required"
	case errors.Is(err, errBadOTP):
		return "Invalid one-time code"
	}
	return ""
}

// Register creates a new account.
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeValid(w, r, &req) {
		return
	}

	if u, err := a.Users.FindByUsername(req.Username); err != nil {
		storeFailed(w, "register lookup", err)
		return
	} else if u != nil {
		writeError(w, http.StatusBadRequest, "Username already registered")
		return
	}
	if u, err := a.Users.FindByEmail(req.Email); err != nil {
		storeFailed(w, "register lookup", err)
		return
	} else if u != nil {
		writeError(w, http.StatusBadRequest, "Email already registered")
		return
	}

	u, err := a.Users.Create(req.Username, req.Email, req.Password)
	if err != nil {
		storeFailed(w, "register", err)
		return
	}
	slog.Info("user registered", "user_id", u.ID, "username", u.Username)
	writeJSON(w, http.StatusCreated, u)
}

// Token exchanges credentials for a bearer token. It accepts a form post or
// a JSON body.
func (a *API) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "application/json" {
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	} else {
		req.Username = r.FormValue("username")
		req.Password = r.FormValue("password")
		req.OTP = r.FormValue("otp")
	}
	if msg := validateRequest(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	u, err := a.checkCredentials(req.Username, req.Password, req.OTP)
	if msg := credentialMessage(err); msg != "" {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, msg)
		return
	}
	if err != nil {
		storeFailed(w, "token lookup", err)
		return
	}

	token, err := a.startSession(r.Context(), u)
	if err != nil {
		slog.Error("start session failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   int(a.JWT.Expiration().Seconds()),
	})
}

// Logout revokes the caller's token.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.endSession(r.Context()); err != nil {
		slog.Error("end session failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// TwoFASetup generates a TOTP secret for the caller and returns it with a
// QR code. 2FA stays disabled until TwoFAEnable confirms a code.
func (a *API) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	u, err := a.Users.FindByID(userID(r))
	if err != nil || u == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if u.TOTPEnabled {
		writeError(w, http.StatusBadRequest, "Two-factor authentication is already enabled")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: u.Username,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if err := a.Users.SetTOTPSecret(u.ID, key.Secret()); err != nil {
		storeFailed(w, "save totp secret", err)
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"secret":      key.Secret(),
		"otpauth_url": key.URL(),
		"qr_png":      base64.StdEncoding.EncodeToString(qrPNG),
	})
}

// TwoFAEnable turns 2FA on once the caller proves their authenticator
// produces valid codes.
func (a *API) TwoFAEnable(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if !decodeValid(w, r, &req) {
		return
	}

	u, err := a.Users.FindByID(userID(r))
	if err != nil || u == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if u.TOTPSecret == nil {
		writeError(w, http.StatusBadRequest, "Run two-factor setup first")
		return
	}
	if !totp.Validate(req.Code, *u.TOTPSecret) {
		writeError(w, http.StatusBadRequest, "Invalid code. Please try again.")
		return
	}
	if err := a.Users.EnableTOTP(u.ID); err != nil {
		storeFailed(w, "enable totp", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "enabled"})
}
