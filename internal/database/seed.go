// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data. It creates a
// demo user with a welcome section and journal entry if no user exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	var userID string
	err = tx.QueryRow(`
		INSERT INTO users (username, email, password_hash, profile_theme)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, "demo", "demo@privatespace.local", string(hash),
		`{"backgroundType":"gradient","color":"#1f2937","radius":1,"layoutHeight":"auto"}`,
	).Scan(&userID)
	if err != nil {
		return fmt.Errorf("seed insert user: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO profile_sections (owner_id, section_type, title, content, design_config, sort_order)
		VALUES ($1, 'about', 'About me', 'Welcome to my space.', $2, 0)
	`, userID, `{"backgroundType":"glass","width":6,"animation":"fade"}`); err != nil {
		return fmt.Errorf("seed insert section: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO journal_entries (owner_id, title, content)
		VALUES ($1, 'First entry', 'Started a journal today.')
	`, userID); err != nil {
		return fmt.Errorf("seed insert journal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo user",
		"username", "demo",
		"password", "demo",
	)

	return nil
}
