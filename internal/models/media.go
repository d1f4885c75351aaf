// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"privatespace/internal/design"
)

// MediaType is the kind of an uploaded media file.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// MediaTypeFor classifies an upload by its content type. Anything that is
// not a video is treated as an image.
func MediaTypeFor(contentType string) MediaType {
	if strings.HasPrefix(contentType, "video") {
		return MediaVideo
	}
	return MediaImage
}

// MediaItem is one entry of a media gallery.
type MediaItem struct {
	URL  string    `json:"url"`
	Type MediaType `json:"type"`
}

// IsVideo reports whether the item should be rendered as a video.
func (m MediaItem) IsVideo() bool {
	return m.Type == MediaVideo
}

// Gallery is the ordered media list of a journal entry, blog post or
// profile section. Uploads are appended; the order is never rewritten.
type Gallery []MediaItem

// AlbumItem is a single file in a user's album. Metadata lives in
// PostgreSQL; the file itself lives in the storage backend.
type AlbumItem struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	URL         string          `json:"file_path"`
	StorageKey  string          `json:"-"`
	ThumbKey    *string         `json:"-"`
	ThumbURL    *string         `json:"thumb_url,omitempty"`
	ContentType string          `json:"content_type"`
	FileSize    int64           `json:"file_size"`
	MediaType   MediaType       `json:"media_type"`
	IsPublic    bool            `json:"is_public"`
	Design      *design.Options `json:"design_config"`
	CreatedAt   time.Time       `json:"created_at"`
}

// IsVideo reports whether the album item is a video.
func (a *AlbumItem) IsVideo() bool {
	return a.MediaType == MediaVideo
}

// HumanSize returns a human-readable file size string.
func (a *AlbumItem) HumanSize() string {
	return HumanSize(a.FileSize)
}

// HumanSize formats a byte count.
func HumanSize(n int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(mb))
	case n >= kb:
		return fmt.Sprintf("%.0f KB", float64(n)/float64(kb))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
