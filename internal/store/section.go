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

// SectionStore handles profile section persistence and ordering.
type SectionStore struct {
	db *sql.DB
}

// NewSectionStore creates a new SectionStore with the given database connection.
func NewSectionStore(db *sql.DB) *SectionStore {
	return &SectionStore{db: db}
}

const sectionColumns = `id, owner_id, section_type, title, content, media_gallery, design_config, sort_order`

func scanSection(row scanner) (*models.ProfileSection, error) {
	var p models.ProfileSection
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.SectionType, &p.Title, &p.Content,
		jsonColumn{&p.Gallery}, jsonColumn{&p.Design}, &p.Order,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByOwner returns the owner's sections in display order.
func (s *SectionStore) ListByOwner(ownerID uuid.UUID) ([]models.ProfileSection, error) {
	rows, err := s.db.Query(`
		SELECT `+sectionColumns+` FROM profile_sections
		WHERE owner_id = $1 ORDER BY sort_order ASC, id ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list profile sections: %w", err)
	}
	defer rows.Close()

	var sections []models.ProfileSection
	for rows.Next() {
		p, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile section: %w", err)
		}
		sections = append(sections, *p)
	}
	return sections, rows.Err()
}

// FindByID retrieves one of the owner's sections. Returns nil if not found.
func (s *SectionStore) FindByID(ownerID, id uuid.UUID) (*models.ProfileSection, error) {
	p, err := scanSection(s.db.QueryRow(`
		SELECT `+sectionColumns+` FROM profile_sections WHERE id = $1 AND owner_id = $2
	`, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find profile section: %w", err)
	}
	return p, nil
}

// Create inserts a new section.
func (s *SectionStore) Create(p *models.ProfileSection) (*models.ProfileSection, error) {
	gallery, err := galleryArg(p.Gallery)
	if err != nil {
		return nil, err
	}
	designArg, err := jsonArg(p.Design)
	if err != nil {
		return nil, err
	}

	created, err := scanSection(s.db.QueryRow(`
		INSERT INTO profile_sections (owner_id, section_type, title, content, media_gallery, design_config, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+sectionColumns,
		p.OwnerID, p.SectionType, p.Title, p.Content, gallery, designArg, p.Order,
	))
	if err != nil {
		return nil, fmt.Errorf("create profile section: %w", err)
	}
	return created, nil
}

// Update writes the editable fields of a section, its order included.
func (s *SectionStore) Update(p *models.ProfileSection) error {
	designArg, err := jsonArg(p.Design)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE profile_sections
		SET section_type = $1, title = $2, content = $3, design_config = $4, sort_order = $5
		WHERE id = $6 AND owner_id = $7
	`, p.SectionType, p.Title, p.Content, designArg, p.Order, p.ID, p.OwnerID)
	return affected(res, err, "update profile section")
}

// Delete removes one of the owner's sections.
func (s *SectionStore) Delete(ownerID, id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM profile_sections WHERE id = $1 AND owner_id = $2`, id, ownerID)
	return affected(res, err, "delete profile section")
}

// AppendMedia adds items to the end of a section's gallery.
func (s *SectionStore) AppendMedia(ownerID, id uuid.UUID, items []models.MediaItem) (models.Gallery, error) {
	return appendMedia(s.db, "profile_sections", ownerID, id, items)
}

// Reorder applies a complete order map (section ID to position) in a single
// transaction. IDs that are not the owner's are skipped, matching the
// behaviour of a per-row ownership filter.
func (s *SectionStore) Reorder(ownerID uuid.UUID, order map[uuid.UUID]int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("reorder sections: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`UPDATE profile_sections SET sort_order = $1 WHERE id = $2 AND owner_id = $3`)
	if err != nil {
		return fmt.Errorf("reorder sections: prepare: %w", err)
	}
	defer stmt.Close()

	for id, pos := range order {
		if _, err := stmt.Exec(pos, id, ownerID); err != nil {
			return fmt.Errorf("reorder sections: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("reorder sections: commit: %w", err)
	}
	return nil
}
