// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"privatespace/internal/design"
	"privatespace/internal/models"
)

// API responses embed the stored item and add its resolved style, so
// clients render exactly what the server would.

type journalView struct {
	*models.JournalEntry
	ResolvedStyle design.Style `json:"resolved_style"`
}

type blogView struct {
	*models.BlogPost
	ResolvedStyle design.Style `json:"resolved_style"`
}

type sectionView struct {
	*models.ProfileSection
	ResolvedStyle design.Style `json:"resolved_style"`
}

type albumView struct {
	*models.AlbumItem
	ResolvedStyle design.Style `json:"resolved_style"`
}

func newJournalView(j *models.JournalEntry) journalView {
	if j.Gallery == nil {
		j.Gallery = models.Gallery{}
	}
	return journalView{j, design.Resolve(j.Design, design.SurfaceJournal)}
}

func newBlogView(b *models.BlogPost) blogView {
	if b.Gallery == nil {
		b.Gallery = models.Gallery{}
	}
	return blogView{b, design.Resolve(b.Design, design.SurfaceBlog)}
}

func newSectionView(p *models.ProfileSection) sectionView {
	if p.Gallery == nil {
		p.Gallery = models.Gallery{}
	}
	return sectionView{p, design.Resolve(p.Design, design.SurfaceProfile)}
}

func (s *Services) newAlbumView(a *models.AlbumItem) albumView {
	if a.ThumbKey != nil && a.ThumbURL == nil {
		u := s.Media.URL(*a.ThumbKey)
		a.ThumbURL = &u
	}
	return albumView{a, design.Resolve(a.Design, design.SurfaceAlbum)}
}

func journalViews(items []models.JournalEntry) []journalView {
	out := make([]journalView, len(items))
	for i := range items {
		out[i] = newJournalView(&items[i])
	}
	return out
}

func blogViews(items []models.BlogPost) []blogView {
	out := make([]blogView, len(items))
	for i := range items {
		out[i] = newBlogView(&items[i])
	}
	return out
}

func sectionViews(items []models.ProfileSection) []sectionView {
	out := make([]sectionView, len(items))
	for i := range items {
		out[i] = newSectionView(&items[i])
	}
	return out
}

func (s *Services) albumViews(items []models.AlbumItem) []albumView {
	out := make([]albumView, len(items))
	for i := range items {
		out[i] = s.newAlbumView(&items[i])
	}
	return out
}
