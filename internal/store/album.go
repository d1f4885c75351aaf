// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"privatespace/internal/design"
	"privatespace/internal/models"
)

// AlbumStore handles album item metadata. The files themselves live in
// the storage backend.
type AlbumStore struct {
	db *sql.DB
}

// NewAlbumStore creates a new AlbumStore with the given database connection.
func NewAlbumStore(db *sql.DB) *AlbumStore {
	return &AlbumStore{db: db}
}

const albumColumns = `id, owner_id, url, storage_key, thumb_key, content_type, file_size,
	media_type, is_public, design_config, created_at`

func scanAlbum(row scanner) (*models.AlbumItem, error) {
	var a models.AlbumItem
	err := row.Scan(
		&a.ID, &a.OwnerID, &a.URL, &a.StorageKey, &a.ThumbKey, &a.ContentType, &a.FileSize,
		&a.MediaType, &a.IsPublic, jsonColumn{&a.Design}, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AlbumStore) query(op, query string, args ...any) ([]models.AlbumItem, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.AlbumItem
	for rows.Next() {
		a, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("scan album item: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// ListByOwner returns the owner's items, newest first.
func (s *AlbumStore) ListByOwner(ownerID uuid.UUID, limit, offset int) ([]models.AlbumItem, error) {
	limit, offset = page(limit, offset)
	return s.query("list album items", `
		SELECT `+albumColumns+` FROM album_items
		WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, ownerID, limit, offset)
}

// ListPublic returns every public item, newest first.
func (s *AlbumStore) ListPublic(limit, offset int) ([]models.AlbumItem, error) {
	limit, offset = page(limit, offset)
	return s.query("list public album items", `
		SELECT `+albumColumns+` FROM album_items
		WHERE is_public ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
}

// FindByID retrieves one of the owner's items. Returns nil if not found.
func (s *AlbumStore) FindByID(ownerID, id uuid.UUID) (*models.AlbumItem, error) {
	a, err := scanAlbum(s.db.QueryRow(`
		SELECT `+albumColumns+` FROM album_items WHERE id = $1 AND owner_id = $2
	`, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find album item: %w", err)
	}
	return a, nil
}

// UsedBytes returns the total size of the owner's album.
func (s *AlbumStore) UsedBytes(ownerID uuid.UUID) (int64, error) {
	var used int64
	err := s.db.QueryRow(`SELECT COALESCE(SUM(file_size), 0) FROM album_items WHERE owner_id = $1`, ownerID).Scan(&used)
	if err != nil {
		return 0, fmt.Errorf("album used bytes: %w", err)
	}
	return used, nil
}

// Create inserts a new item if it fits within quota bytes of the owner's
// total. The check and insert run in one transaction holding a lock on the
// owner's row so concurrent uploads cannot both slip under the limit.
func (s *AlbumStore) Create(a *models.AlbumItem, quota int64) (*models.AlbumItem, error) {
	designArg, err := jsonArg(a.Design)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create album item: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`SELECT 1 FROM users WHERE id = $1 FOR UPDATE`, a.OwnerID); err != nil {
		return nil, fmt.Errorf("create album item: lock owner: %w", err)
	}
	var used int64
	if err := tx.QueryRow(`SELECT COALESCE(SUM(file_size), 0) FROM album_items WHERE owner_id = $1`, a.OwnerID).Scan(&used); err != nil {
		return nil, fmt.Errorf("create album item: used bytes: %w", err)
	}
	if used+a.FileSize > quota {
		return nil, ErrQuotaExceeded
	}

	created, err := scanAlbum(tx.QueryRow(`
		INSERT INTO album_items (owner_id, url, storage_key, thumb_key, content_type,
			file_size, media_type, is_public, design_config)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+albumColumns,
		a.OwnerID, a.URL, a.StorageKey, a.ThumbKey, a.ContentType,
		a.FileSize, a.MediaType, a.IsPublic, designArg,
	))
	if err != nil {
		return nil, fmt.Errorf("create album item: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create album item: commit: %w", err)
	}
	return created, nil
}

// UpdateDesign replaces an item's design configuration.
func (s *AlbumStore) UpdateDesign(ownerID, id uuid.UUID, opts *design.Options) (*models.AlbumItem, error) {
	designArg, err := jsonArg(opts)
	if err != nil {
		return nil, err
	}
	a, err := scanAlbum(s.db.QueryRow(`
		UPDATE album_items SET design_config = $1 WHERE id = $2 AND owner_id = $3
		RETURNING `+albumColumns,
		designArg, id, ownerID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("update album design: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update album design: %w", err)
	}
	return a, nil
}

// Delete removes one of the owner's items and returns it so the caller can
// release the stored files.
func (s *AlbumStore) Delete(ownerID, id uuid.UUID) (*models.AlbumItem, error) {
	a, err := scanAlbum(s.db.QueryRow(`
		DELETE FROM album_items WHERE id = $1 AND owner_id = $2 RETURNING `+albumColumns,
		id, ownerID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("delete album item: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("delete album item: %w", err)
	}
	return a, nil
}

// CountByOwner returns the number of items the owner has.
func (s *AlbumStore) CountByOwner(ownerID uuid.UUID) (int, error) {
	return countByOwner(s.db, "album_items", ownerID)
}
