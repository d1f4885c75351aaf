// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"
	"time"

	"privatespace/internal/models"
)

func activity(kind models.ActivityKind, title string, minutesAgo int) models.RecentActivity {
	return models.RecentActivity{
		Type:      kind,
		Title:     title,
		CreatedAt: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC).Add(-time.Duration(minutesAgo) * time.Minute),
	}
}

// TestMergeActivity verifies the combined feed is newest first and capped
// at eight entries.
func TestMergeActivity(t *testing.T) {
	var journals, blogs []models.RecentActivity
	for i := 0; i < 5; i++ {
		journals = append(journals, activity(models.ActivityJournal, "j", i*2))
		blogs = append(blogs, activity(models.ActivityBlog, "b", i*2+1))
	}

	got := MergeActivity(journals, blogs)
	if len(got) != 8 {
		t.Fatalf("len = %d, want 8", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Errorf("entry %d is newer than entry %d", i, i-1)
		}
	}
	if got[0].Type != models.ActivityJournal || got[1].Type != models.ActivityBlog {
		t.Errorf("unexpected interleaving: %v, %v", got[0].Type, got[1].Type)
	}
}

func TestMergeActivity_Empty(t *testing.T) {
	got := MergeActivity(nil, nil)
	if got == nil || len(got) != 0 {
		t.Errorf("MergeActivity(nil, nil) = %v, want empty non-nil slice", got)
	}
}

func TestBytesToMB(t *testing.T) {
	tests := []struct {
		in   int64
		want float64
	}{
		{0, 0},
		{1048576, 1},
		{1572864, 1.5},
		{1000000, 0.95},
		{104857600, 100},
	}
	for _, tt := range tests {
		if got := BytesToMB(tt.in); got != tt.want {
			t.Errorf("BytesToMB(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDashboardStoreStats(t *testing.T) {
	db := testDB(t)
	owner := testUser(t, db)

	if _, err := NewJournalStore(db).Create(&models.JournalEntry{OwnerID: owner.ID, Title: "j1"}); err != nil {
		t.Fatalf("create journal: %v", err)
	}

	stats, err := NewDashboardStore(db).Stats(owner.ID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.JournalCount != 1 || stats.BlogCount != 0 || stats.AlbumCount != 0 {
		t.Errorf("counts = %+v", stats)
	}
	if len(stats.RecentActivity) != 1 || stats.RecentActivity[0].Title != "j1" {
		t.Errorf("recent = %+v", stats.RecentActivity)
	}
}
