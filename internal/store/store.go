// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for every entity of a
// personal space. Each store struct wraps a *sql.DB and exposes typed query
// methods. Lookups return (nil, nil) when nothing matches; updates and
// deletes of a missing or foreign row return ErrNotFound.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"privatespace/internal/models"
)

// ErrNotFound is returned when a write targets a row that does not exist
// or is owned by someone else.
var ErrNotFound = errors.New("not found")

// ErrQuotaExceeded is returned when an album upload would exceed the
// owner's storage quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// jsonColumn adapts a pointer for scanning a JSONB column. SQL NULL leaves
// the destination untouched.
type jsonColumn struct {
	dst any
}

func (j jsonColumn) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, j.dst)
	case string:
		return json.Unmarshal([]byte(v), j.dst)
	default:
		return fmt.Errorf("unsupported JSON column type %T", src)
	}
}

// jsonArg encodes v for a nullable JSONB parameter. Nil pointers become SQL
// NULL.
func jsonArg(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	if string(b) == "null" {
		return nil, nil
	}
	return string(b), nil
}

// galleryArg encodes a gallery for the non-null media_gallery column.
func galleryArg(g models.Gallery) (string, error) {
	if g == nil {
		g = models.Gallery{}
	}
	b, err := json.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("encode gallery: %w", err)
	}
	return string(b), nil
}

// page clamps list paging parameters to sane bounds.
func page(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
