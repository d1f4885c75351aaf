// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"strconv"

	"privatespace/internal/design"
)

// DesignForm is the flat, fully defaulted view of an item's Options that
// the design editor fields are rendered from.
type DesignForm struct {
	Surface         string
	BackgroundType  string
	BackgroundColor string
	GradientStart   string
	GradientEnd     string
	GradientAngle   int
	Color           string
	Width           int
	CustomHeight    int
	FontSize        int
	FontWeight      string
	FontStyle       string
	TextAlign       string
	FontFamily      string
	Animation       string

	Defaults design.SurfaceDefaults
}

// NewDesignForm fills every editor field from opts over the surface
// defaults.
func NewDesignForm(opts *design.Options, surface design.Surface) DesignForm {
	e := design.Editable(opts, surface)
	return DesignForm{
		Surface:         string(surface),
		BackgroundType:  string(*e.BackgroundType),
		BackgroundColor: *e.BackgroundColor,
		GradientStart:   *e.GradientStart,
		GradientEnd:     *e.GradientEnd,
		GradientAngle:   *e.GradientAngle,
		Color:           *e.Color,
		Width:           *e.Width,
		CustomHeight:    *e.CustomHeight,
		FontSize:        *e.FontSize,
		FontWeight:      string(*e.FontWeight),
		FontStyle:       string(*e.FontStyle),
		TextAlign:       string(*e.TextAlign),
		FontFamily:      *e.FontFamily,
		Animation:       *e.Animation,
		Defaults:        design.Defaults(surface),
	}
}

// ThemeForm is the flat view of a Theme for the theme editor. Unset fields
// are empty so the editor shows "system default".
type ThemeForm struct {
	BackgroundType  string
	BackgroundColor string
	GradientStart   string
	GradientEnd     string
	GradientAngle   string
	Color           string
	FontFamily      string
	FontSize        string
	SidebarColor    string
	CardShadow      string
	Radius          string
	LayoutHeight    string
}

// NewThemeForm flattens t. A nil theme yields an empty form.
func NewThemeForm(t *design.Theme) ThemeForm {
	var f ThemeForm
	if t == nil {
		return f
	}
	if t.BackgroundType != nil {
		f.BackgroundType = string(*t.BackgroundType)
	}
	f.BackgroundColor = str(t.BackgroundColor)
	f.GradientStart = str(t.GradientStart)
	f.GradientEnd = str(t.GradientEnd)
	if t.GradientAngle != nil {
		f.GradientAngle = strconv.Itoa(*t.GradientAngle)
	}
	f.Color = str(t.Color)
	f.FontFamily = str(t.FontFamily)
	if t.FontSize != nil {
		f.FontSize = strconv.Itoa(*t.FontSize)
	}
	f.SidebarColor = str(t.SidebarColor)
	f.CardShadow = str(t.CardShadow)
	if t.Radius != nil {
		f.Radius = strconv.FormatFloat(*t.Radius, 'f', -1, 64)
	}
	if t.LayoutHeight != nil {
		f.LayoutHeight = string(*t.LayoutHeight)
	}
	return f
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
