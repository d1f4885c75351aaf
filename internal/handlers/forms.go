// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"cmp"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"privatespace/internal/design"
	"privatespace/internal/models"
)

// itemForm is the submitted or prefilled state of a content editor.
type itemForm struct {
	Title       string
	Content     string
	Tags        string
	SectionType string
	IsPublic    bool
	Design      *design.Options
}

func readItemForm(r *http.Request) itemForm {
	return itemForm{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Content:     r.FormValue("content"),
		Tags:        strings.TrimSpace(r.FormValue("tags")),
		SectionType: strings.TrimSpace(r.FormValue("section_type")),
		IsPublic:    formBool(r, "is_public"),
		Design:      readDesignForm(r),
	}
}

// tagsPtr returns nil for an empty tag list so the column stays NULL.
func (f itemForm) tagsPtr() *string {
	if f.Tags == "" {
		return nil
	}
	return &f.Tags
}

func journalForm(j *models.JournalEntry) itemForm {
	return itemForm{Title: j.Title, Content: j.Content, IsPublic: j.IsPublic, Design: j.Design}
}

func blogForm(b *models.BlogPost) itemForm {
	f := itemForm{Title: b.Title, Content: b.Content, Design: b.Design}
	if b.Tags != nil {
		f.Tags = *b.Tags
	}
	return f
}

func sectionForm(p *models.ProfileSection) itemForm {
	return itemForm{Title: p.Title, Content: p.Content, SectionType: p.SectionType, Design: p.Design}
}

func formBool(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.FormValue(key))
	return v
}

// formString returns a pointer to a trimmed, non-empty form value.
func formString(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return nil
	}
	return &v
}

// formInt returns a pointer to an integer form value. Missing or
// malformed values are treated as unset.
func formInt(r *http.Request, key string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(r.FormValue(key)))
	if err != nil {
		return nil
	}
	return &v
}

func formTyped[T ~string](r *http.Request, key string) *T {
	s := formString(r, key)
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}

// readDesignForm collects the design editor fields. It returns nil when the
// form carried none of them, so an item without a design stays without one.
func readDesignForm(r *http.Request) *design.Options {
	opts := design.Options{
		BackgroundType:  formTyped[design.BackgroundType](r, "backgroundType"),
		BackgroundColor: formString(r, "backgroundColor"),
		GradientStart:   formString(r, "gradientStart"),
		GradientEnd:     formString(r, "gradientEnd"),
		GradientAngle:   formInt(r, "gradientAngle"),
		Color:           formString(r, "color"),
		Width:           formInt(r, "width"),
		CustomHeight:    formInt(r, "customHeight"),
		FontSize:        formInt(r, "fontSize"),
		FontWeight:      formTyped[design.FontWeight](r, "fontWeight"),
		FontStyle:       formTyped[design.FontStyle](r, "fontStyle"),
		TextAlign:       formTyped[design.TextAlign](r, "textAlign"),
		FontFamily:      formString(r, "fontFamily"),
		Animation:       formString(r, "animation"),
	}
	if opts == (design.Options{}) {
		return nil
	}
	return &opts
}

// readThemeForm collects the theme editor fields. Empty fields stay unset
// and so fall back to the system default.
func readThemeForm(r *http.Request) *design.Theme {
	t := &design.Theme{
		Options: design.Options{
			BackgroundType:  formTyped[design.BackgroundType](r, "backgroundType"),
			BackgroundColor: formString(r, "backgroundColor"),
			GradientStart:   formString(r, "gradientStart"),
			GradientEnd:     formString(r, "gradientEnd"),
			GradientAngle:   formInt(r, "gradientAngle"),
			Color:           formString(r, "color"),
			FontSize:        formInt(r, "fontSize"),
			FontFamily:      formString(r, "fontFamily"),
		},
		SidebarColor: formString(r, "sidebarColor"),
		CardShadow:   formString(r, "cardShadow"),
		LayoutHeight: formTyped[design.LayoutHeight](r, "layoutHeight"),
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("radius")), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		t.Radius = &v
	}
	return t
}

// readOrderForm reads the section order posted by the profile page. The
// hidden order[<id>] fields carry each section's current zero-based place.
// Without scripts the page also posts editable position[<id>] fields, one
// based; when present they decide the new order. A section moved up to a
// taken position lands in front of the section holding it, one moved down
// lands behind it.
func readOrderForm(r *http.Request) map[string]int {
	current := formIndexed(r, "order")
	wanted := formIndexed(r, "position")
	if len(wanted) == 0 {
		return current
	}

	ids := make([]string, 0, len(current))
	for id := range current {
		ids = append(ids, id)
	}
	// rank is the requested position and the direction of the move.
	rank := func(id string) (int, int) {
		p, ok := wanted[id]
		if !ok {
			p = current[id] + 1
		}
		return p, cmp.Compare(p, current[id]+1)
	}
	slices.SortFunc(ids, func(a, b string) int {
		pa, da := rank(a)
		pb, db := rank(b)
		if c := cmp.Compare(pa, pb); c != 0 {
			return c
		}
		if c := cmp.Compare(da, db); c != 0 {
			return c
		}
		if c := cmp.Compare(current[a], current[b]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	order := make(map[string]int, len(ids))
	for i, id := range ids {
		order[id] = i
	}
	return order
}

// formIndexed reads name[<key>]=<int> fields, skipping malformed ones.
func formIndexed(r *http.Request, name string) map[string]int {
	out := make(map[string]int)
	for key, vals := range r.PostForm {
		k, ok := strings.CutPrefix(key, name+"[")
		if !ok || !strings.HasSuffix(k, "]") || len(vals) == 0 {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(vals[0]))
		if err != nil {
			continue
		}
		out[strings.TrimSuffix(k, "]")] = n
	}
	return out
}
