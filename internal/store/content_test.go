// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"privatespace/internal/design"
	"privatespace/internal/models"
)

func TestJournalStoreLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewJournalStore(db)
	owner := testUser(t, db)

	created, err := s.Create(&models.JournalEntry{
		OwnerID: owner.ID,
		Title:   "Day one",
		Content: "It rained.",
		Design:  &design.Options{Width: design.Ptr(3)},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Gallery == nil || len(created.Gallery) != 0 {
		t.Errorf("new gallery = %v, want empty", created.Gallery)
	}
	if created.Design == nil || *created.Design.Width != 3 {
		t.Errorf("design = %+v", created.Design)
	}

	gallery, err := s.AppendMedia(owner.ID, created.ID, []models.MediaItem{{URL: "/a.jpg", Type: models.MediaImage}})
	if err != nil {
		t.Fatalf("AppendMedia: %v", err)
	}
	gallery, err = s.AppendMedia(owner.ID, created.ID, []models.MediaItem{{URL: "/b.mp4", Type: models.MediaVideo}})
	if err != nil {
		t.Fatalf("AppendMedia: %v", err)
	}
	if len(gallery) != 2 || gallery[0].URL != "/a.jpg" || gallery[1].Type != models.MediaVideo {
		t.Errorf("gallery = %+v", gallery)
	}

	created.Title = "Day one (edited)"
	created.Design = nil
	if err := s.Update(created); err != nil {
		t.Fatalf("Update: %v", err)
	}
	found, _ := s.FindByID(owner.ID, created.ID)
	if found.Title != "Day one (edited)" || found.Design != nil || len(found.Gallery) != 2 {
		t.Errorf("after update: %+v", found)
	}

	// Another user cannot see or touch the entry.
	stranger := testUser(t, db)
	if other, _ := s.FindByID(stranger.ID, created.ID); other != nil {
		t.Error("entry visible to another user")
	}
	if err := s.Delete(stranger.ID, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete by stranger = %v, want ErrNotFound", err)
	}

	if n, _ := s.CountByOwner(owner.ID); n != 1 {
		t.Errorf("CountByOwner = %d, want 1", n)
	}
	if err := s.Delete(owner.ID, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(owner.ID, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestBlogStoreSlugAndRank(t *testing.T) {
	db := testDB(t)
	s := NewBlogStore(db)
	owner := testUser(t, db)

	title := "Ranked post " + uuid.NewString()[:8]
	first, err := s.Create(&models.BlogPost{OwnerID: owner.ID, Title: title, Content: "a"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := s.Create(&models.BlogPost{OwnerID: owner.ID, Title: title, Content: "b"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.Slug == second.Slug {
		t.Errorf("slugs collide: %q", first.Slug)
	}
	if second.Slug != first.Slug+"-2" {
		t.Errorf("second slug = %q, want %q", second.Slug, first.Slug+"-2")
	}
	if first.Author != owner.Username {
		t.Errorf("Author = %q, want %q", first.Author, owner.Username)
	}

	rank, err := s.AdjustRank(second.ID, 5)
	if err != nil || rank != 5 {
		t.Fatalf("AdjustRank = %d, %v", rank, err)
	}
	if rank, _ = s.AdjustRank(second.ID, -2); rank != 3 {
		t.Errorf("AdjustRank(-2) = %d, want 3", rank)
	}
	if _, err := s.AdjustRank(uuid.New(), 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("AdjustRank(missing) = %v, want ErrNotFound", err)
	}

	bySlug, err := s.FindBySlug(second.Slug)
	if err != nil || bySlug == nil || bySlug.ID != second.ID {
		t.Fatalf("FindBySlug = %v, %v", bySlug, err)
	}

	feed, err := s.ListPublic(100, 0)
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	for i := 1; i < len(feed); i++ {
		if feed[i-1].Ranking < feed[i].Ranking {
			t.Fatalf("feed not ordered by ranking at %d: %d < %d", i, feed[i-1].Ranking, feed[i].Ranking)
		}
	}
}

func TestAlbumStoreQuota(t *testing.T) {
	db := testDB(t)
	s := NewAlbumStore(db)
	owner := testUser(t, db)

	item := func(size int64, public bool) *models.AlbumItem {
		key := "album/" + uuid.NewString()
		return &models.AlbumItem{
			OwnerID: owner.ID, URL: "/uploads/" + key, StorageKey: key,
			ContentType: "image/png", FileSize: size, MediaType: models.MediaImage, IsPublic: public,
		}
	}

	const quota = 1000
	if _, err := s.Create(item(600, true), quota); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(item(500, false), quota); !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("over-quota Create = %v, want ErrQuotaExceeded", err)
	}
	second, err := s.Create(item(400, false), quota)
	if err != nil {
		t.Fatalf("Create at exact quota: %v", err)
	}

	if used, _ := s.UsedBytes(owner.ID); used != 1000 {
		t.Errorf("UsedBytes = %d, want 1000", used)
	}

	updated, err := s.UpdateDesign(owner.ID, second.ID, &design.Options{TextAlign: design.Ptr(design.TextAlignRight)})
	if err != nil {
		t.Fatalf("UpdateDesign: %v", err)
	}
	if updated.Design == nil || *updated.Design.TextAlign != design.TextAlignRight {
		t.Errorf("design = %+v", updated.Design)
	}

	deleted, err := s.Delete(owner.ID, second.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.StorageKey != second.StorageKey {
		t.Errorf("Delete returned %q, want %q", deleted.StorageKey, second.StorageKey)
	}
}

func TestSectionStoreReorder(t *testing.T) {
	db := testDB(t)
	s := NewSectionStore(db)
	owner := testUser(t, db)

	var ids []uuid.UUID
	for i, title := range []string{"a", "b", "c"} {
		p, err := s.Create(&models.ProfileSection{OwnerID: owner.ID, SectionType: "text", Title: title, Order: i})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids = append(ids, p.ID)
	}

	// Move "c" to the front.
	order := map[uuid.UUID]int{ids[2]: 0, ids[0]: 1, ids[1]: 2}
	if err := s.Reorder(owner.ID, order); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	sections, err := s.ListByOwner(owner.ID)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	var got []string
	for _, p := range sections {
		got = append(got, p.Title)
	}
	if len(got) != 3 || got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Errorf("order = %v, want [c a b]", got)
	}
}
