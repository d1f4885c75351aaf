// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"privatespace/internal/models"
)

// JournalStore handles journal entry persistence.
type JournalStore struct {
	db *sql.DB
}

// NewJournalStore creates a new JournalStore with the given database connection.
func NewJournalStore(db *sql.DB) *JournalStore {
	return &JournalStore{db: db}
}

const journalColumns = `id, owner_id, title, content, media_gallery, is_public, design_config, created_at`

func scanJournal(row scanner) (*models.JournalEntry, error) {
	var j models.JournalEntry
	err := row.Scan(
		&j.ID, &j.OwnerID, &j.Title, &j.Content, jsonColumn{&j.Gallery},
		&j.IsPublic, jsonColumn{&j.Design}, &j.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// ListByOwner returns the owner's entries, newest first.
func (s *JournalStore) ListByOwner(ownerID uuid.UUID, limit, offset int) ([]models.JournalEntry, error) {
	limit, offset = page(limit, offset)
	rows, err := s.db.Query(`
		SELECT `+journalColumns+`
		FROM journal_entries
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var items []models.JournalEntry
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		items = append(items, *j)
	}
	return items, rows.Err()
}

// FindByID retrieves one of the owner's entries. Returns nil if not found.
func (s *JournalStore) FindByID(ownerID, id uuid.UUID) (*models.JournalEntry, error) {
	j, err := scanJournal(s.db.QueryRow(`
		SELECT `+journalColumns+` FROM journal_entries WHERE id = $1 AND owner_id = $2
	`, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find journal entry: %w", err)
	}
	return j, nil
}

// Create inserts a new entry and returns it with the generated ID.
func (s *JournalStore) Create(j *models.JournalEntry) (*models.JournalEntry, error) {
	gallery, err := galleryArg(j.Gallery)
	if err != nil {
		return nil, err
	}
	designArg, err := jsonArg(j.Design)
	if err != nil {
		return nil, err
	}

	created, err := scanJournal(s.db.QueryRow(`
		INSERT INTO journal_entries (owner_id, title, content, media_gallery, is_public, design_config)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+journalColumns,
		j.OwnerID, j.Title, j.Content, gallery, j.IsPublic, designArg,
	))
	if err != nil {
		return nil, fmt.Errorf("create journal entry: %w", err)
	}
	return created, nil
}

// Update writes the editable fields of an entry. The gallery is left
// alone; media is only ever appended through AppendMedia.
func (s *JournalStore) Update(j *models.JournalEntry) error {
	designArg, err := jsonArg(j.Design)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE journal_entries
		SET title = $1, content = $2, is_public = $3, design_config = $4
		WHERE id = $5 AND owner_id = $6
	`, j.Title, j.Content, j.IsPublic, designArg, j.ID, j.OwnerID)
	return affected(res, err, "update journal entry")
}

// Delete removes one of the owner's entries.
func (s *JournalStore) Delete(ownerID, id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM journal_entries WHERE id = $1 AND owner_id = $2`, id, ownerID)
	return affected(res, err, "delete journal entry")
}

// AppendMedia adds items to the end of an entry's gallery and returns the
// full gallery.
func (s *JournalStore) AppendMedia(ownerID, id uuid.UUID, items []models.MediaItem) (models.Gallery, error) {
	return appendMedia(s.db, "journal_entries", ownerID, id, items)
}

// CountByOwner returns the number of entries the owner has.
func (s *JournalStore) CountByOwner(ownerID uuid.UUID) (int, error) {
	return countByOwner(s.db, "journal_entries", ownerID)
}

// affected turns a zero-row write into ErrNotFound.
func affected(res sql.Result, err error, op string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// appendMedia concatenates items onto the media_gallery of a row in table.
// table is always a package constant, never user input.
func appendMedia(db *sql.DB, table string, ownerID, id uuid.UUID, items []models.MediaItem) (models.Gallery, error) {
	add, err := galleryArg(items)
	if err != nil {
		return nil, err
	}

	var gallery models.Gallery
	err = db.QueryRow(`
		UPDATE `+table+`
		SET media_gallery = media_gallery || $1::jsonb
		WHERE id = $2 AND owner_id = $3
		RETURNING media_gallery
	`, add, id, ownerID).Scan(jsonColumn{&gallery})
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("append media: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("append media: %w", err)
	}
	return gallery, nil
}

func countByOwner(db *sql.DB, table string, ownerID uuid.UUID) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE owner_id = $1`, ownerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
