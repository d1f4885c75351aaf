// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage stores uploaded media. Files go to an S3-compatible
// bucket when one is configured and to a local directory otherwise.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Backend is where media files live. Keys are slash-separated relative
// paths produced by NewKey.
type Backend interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// NewKey builds a unique object key for an owner's upload, keeping the
// lower-cased extension of the original filename.
func NewKey(owner uuid.UUID, kind, filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	if len(ext) > 10 || strings.ContainsAny(ext, " /?#%") {
		ext = ""
	}
	return kind + "/" + owner.String() + "/" + uuid.NewString() + ext
}

// ThumbKey returns the key of the thumbnail stored next to key.
func ThumbKey(key string) string {
	return strings.TrimSuffix(key, path.Ext(key)) + "_thumb.jpg"
}
