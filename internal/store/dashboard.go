// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"privatespace/internal/models"
)

const (
	recentPerSurface = 5
	recentTotal      = 8
)

// DashboardStore computes the summary shown on a user's dashboard.
type DashboardStore struct {
	db *sql.DB
}

// NewDashboardStore creates a new DashboardStore with the given database connection.
func NewDashboardStore(db *sql.DB) *DashboardStore {
	return &DashboardStore{db: db}
}

// Stats returns counts per surface, album storage in MB rounded to two
// decimals, and the newest journal and blog activity.
func (s *DashboardStore) Stats(ownerID uuid.UUID) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	var usedBytes int64
	err := s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM journal_entries WHERE owner_id = $1),
			(SELECT COUNT(*) FROM blog_posts WHERE owner_id = $1),
			(SELECT COUNT(*) FROM album_items WHERE owner_id = $1),
			(SELECT COALESCE(SUM(file_size), 0) FROM album_items WHERE owner_id = $1)
	`, ownerID).Scan(&stats.JournalCount, &stats.BlogCount, &stats.AlbumCount, &usedBytes)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	stats.StorageUsedMB = BytesToMB(usedBytes)

	journals, err := s.recent("journal_entries", models.ActivityJournal, ownerID)
	if err != nil {
		return nil, err
	}
	blogs, err := s.recent("blog_posts", models.ActivityBlog, ownerID)
	if err != nil {
		return nil, err
	}
	stats.RecentActivity = MergeActivity(journals, blogs)
	return stats, nil
}

func (s *DashboardStore) recent(table string, kind models.ActivityKind, ownerID uuid.UUID) ([]models.RecentActivity, error) {
	rows, err := s.db.Query(`
		SELECT id, title, created_at FROM `+table+`
		WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2
	`, ownerID, recentPerSurface)
	if err != nil {
		return nil, fmt.Errorf("recent %s: %w", kind, err)
	}
	defer rows.Close()

	var out []models.RecentActivity
	for rows.Next() {
		a := models.RecentActivity{Type: kind}
		if err := rows.Scan(&a.ID, &a.Title, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent %s: %w", kind, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// MergeActivity combines per-surface activity lists, newest first, capped
// at eight entries.
func MergeActivity(lists ...[]models.RecentActivity) []models.RecentActivity {
	all := []models.RecentActivity{}
	for _, l := range lists {
		all = append(all, l...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if len(all) > recentTotal {
		all = all[:recentTotal]
	}
	return all
}

// BytesToMB converts a byte count to megabytes rounded to two decimals.
func BytesToMB(n int64) float64 {
	return math.Round(float64(n)/(1024*1024)*100) / 100
}
