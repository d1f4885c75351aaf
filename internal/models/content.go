// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"privatespace/internal/design"
)

// JournalEntry is a private (or optionally public) diary entry.
type JournalEntry struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   uuid.UUID       `json:"owner_id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Gallery   Gallery         `json:"media_gallery"`
	IsPublic  bool            `json:"is_public"`
	Design    *design.Options `json:"design_config"`
	CreatedAt time.Time       `json:"created_at"`
}

// BlogPost is a published article. The public feed is ordered by Ranking,
// highest first.
type BlogPost struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   uuid.UUID       `json:"owner_id"`
	Title     string          `json:"title"`
	Slug      string          `json:"slug"`
	Content   string          `json:"content"`
	Tags      *string         `json:"tags"`
	Gallery   Gallery         `json:"media_gallery"`
	Ranking   int             `json:"ranking"`
	Design    *design.Options `json:"design_config"`
	CreatedAt time.Time       `json:"created_at"`

	// Author is filled by the public feed queries.
	Author string `json:"author,omitempty"`
}

// TagList splits the comma-separated tags into trimmed, non-empty values.
func (b *BlogPost) TagList() []string {
	if b.Tags == nil {
		return nil
	}
	var out []string
	for _, t := range strings.Split(*b.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ProfileSection is one user-arranged block of the profile page. Sections
// are displayed by ascending Order.
type ProfileSection struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	SectionType string          `json:"section_type"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Gallery     Gallery         `json:"media_gallery"`
	Design      *design.Options `json:"design_config"`
	Order       int             `json:"order"`
}

// OrderKey identifies the section in a reorder map.
func (p ProfileSection) OrderKey() string {
	return p.ID.String()
}

// ActivityKind tells which surface a RecentActivity entry comes from.
type ActivityKind string

const (
	ActivityJournal ActivityKind = "journal"
	ActivityBlog    ActivityKind = "blog"
)

// RecentActivity is one line of the dashboard activity feed.
type RecentActivity struct {
	ID        uuid.UUID    `json:"id"`
	Type      ActivityKind `json:"type"`
	Title     string       `json:"title"`
	CreatedAt time.Time    `json:"created_at"`
}

// DashboardStats summarises a user's space.
type DashboardStats struct {
	JournalCount   int              `json:"journal_count"`
	BlogCount      int              `json:"blog_count"`
	AlbumCount     int              `json:"album_count"`
	StorageUsedMB  float64          `json:"storage_used_mb"`
	RecentActivity []RecentActivity `json:"recent_activity"`
}
