// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"

	"privatespace/internal/design"
)

// User is the owner of a personal space. Each user has one optional
// profile theme that cascades beneath the styles of their items.
type User struct {
	ID             uuid.UUID     `json:"id"`
	Username       string        `json:"username"`
	Email          string        `json:"email"`
	PasswordHash   string        `json:"-"` // Never serialize the hash
	ProfilePicture *string       `json:"profile_picture"`
	ProfileTheme   *design.Theme `json:"profile_theme"`
	TOTPSecret     *string       `json:"-"` // Nullable; set during 2FA setup
	TOTPEnabled    bool          `json:"totp_enabled"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Requires2FA reports whether a one-time code must accompany the password.
// 2FA is opt-in: only users who completed enrollment are asked for it.
func (u *User) Requires2FA() bool {
	return u.TOTPEnabled && u.TOTPSecret != nil
}
