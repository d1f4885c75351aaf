// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package design

import "fmt"

// Surface is one of the content kinds that embed Options.
type Surface string

const (
	SurfaceJournal Surface = "journal"
	SurfaceBlog    Surface = "blog"
	SurfaceProfile Surface = "profile"
	SurfaceAlbum   Surface = "album"
)

// Surfaces lists every known surface.
var Surfaces = []Surface{SurfaceJournal, SurfaceBlog, SurfaceProfile, SurfaceAlbum}

// ParseSurface converts a string into a Surface.
func ParseSurface(s string) (Surface, error) {
	for _, sf := range Surfaces {
		if string(sf) == s {
			return sf, nil
		}
	}
	return "", fmt.Errorf("unknown surface %q", s)
}

// Range is an inclusive editor bound. Resolve does not enforce it; the
// editors use it for their sliders.
type Range struct {
	Min int
	Max int
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// SurfaceDefaults is the single declaration of every field's default for a
// surface. An empty string or zero value means "inherit from the cascade".
type SurfaceDefaults struct {
	BackgroundType  BackgroundType
	BackgroundColor string
	GradientStart   string
	GradientEnd     string
	GradientAngle   int
	Color           string
	Width           int
	CustomHeight    int
	FontSize        int
	FontWeight      FontWeight
	FontStyle       FontStyle
	TextAlign       TextAlign
	FontFamily      string
	Animation       string

	// Editor bounds.
	WidthRange    Range
	HeightRange   Range
	FontSizeRange Range

	// CarouselScale is the share of the item height given to its carousel.
	CarouselScale float64
}

// base holds the values shared by every surface.
var base = SurfaceDefaults{
	BackgroundType:  BackgroundSolid,
	BackgroundColor: "#ffffff",
	GradientStart:   "#6366f1",
	GradientEnd:     "#a855f7",
	GradientAngle:   135,
	Width:           6,
	FontWeight:      FontWeightNormal,
	FontStyle:       FontStyleNormal,
	TextAlign:       TextAlignLeft,
	Animation:       "none",
	WidthRange:      Range{Min: 1, Max: 6},
	HeightRange:     Range{Min: 200, Max: 1000},
	FontSizeRange:   Range{Min: 14, Max: 42},
}

var defaultsTable = map[Surface]SurfaceDefaults{
	SurfaceJournal: with(base, func(d *SurfaceDefaults) {
		d.CustomHeight = 400
		d.FontSizeRange = Range{Min: 14, Max: 36}
		d.CarouselScale = 0.7
	}),
	SurfaceBlog: with(base, func(d *SurfaceDefaults) {
		d.CustomHeight = 500
		d.CarouselScale = 0.75
	}),
	SurfaceProfile: with(base, func(d *SurfaceDefaults) {
		d.CustomHeight = 400
		d.CarouselScale = 0.65
	}),
	SurfaceAlbum: with(base, func(d *SurfaceDefaults) {
		d.Width = 2
		d.CustomHeight = 350
		d.TextAlign = TextAlignCenter
		d.HeightRange = Range{Min: 200, Max: 800}
		d.FontSizeRange = Range{Min: 10, Max: 32}
		d.CarouselScale = 1
	}),
}

func with(d SurfaceDefaults, fn func(*SurfaceDefaults)) SurfaceDefaults {
	fn(&d)
	return d
}

// Defaults returns the defaults for a surface. Unknown surfaces get the
// journal defaults.
func Defaults(s Surface) SurfaceDefaults {
	if d, ok := defaultsTable[s]; ok {
		return d
	}
	return defaultsTable[SurfaceJournal]
}

// Editable returns a fully populated Options for a surface's editor form:
// every field set from the defaults table, then overlaid with opts.
func Editable(opts *Options, s Surface) Options {
	d := Defaults(s)
	out := Options{
		BackgroundType:  Ptr(d.BackgroundType),
		BackgroundColor: Ptr(d.BackgroundColor),
		GradientStart:   Ptr(d.GradientStart),
		GradientEnd:     Ptr(d.GradientEnd),
		GradientAngle:   Ptr(d.GradientAngle),
		Color:           Ptr("#1f2937"),
		Width:           Ptr(d.Width),
		CustomHeight:    Ptr(d.CustomHeight),
		FontSize:        Ptr(18),
		FontWeight:      Ptr(d.FontWeight),
		FontStyle:       Ptr(d.FontStyle),
		TextAlign:       Ptr(d.TextAlign),
		FontFamily:      Ptr(Fonts[0].Value),
		Animation:       Ptr(d.Animation),
	}
	if s == SurfaceAlbum {
		out.FontSize = Ptr(14)
	}
	return Merge(out, opts)
}

// Merge overlays the set fields of patch onto dst and returns the result.
func Merge(dst Options, patch *Options) Options {
	if patch == nil {
		return dst
	}
	if patch.BackgroundType != nil {
		dst.BackgroundType = patch.BackgroundType
	}
	if patch.BackgroundColor != nil {
		dst.BackgroundColor = patch.BackgroundColor
	}
	if patch.GradientStart != nil {
		dst.GradientStart = patch.GradientStart
	}
	if patch.GradientEnd != nil {
		dst.GradientEnd = patch.GradientEnd
	}
	if patch.GradientAngle != nil {
		dst.GradientAngle = patch.GradientAngle
	}
	if patch.Color != nil {
		dst.Color = patch.Color
	}
	if patch.Width != nil {
		dst.Width = patch.Width
	}
	if patch.CustomHeight != nil {
		dst.CustomHeight = patch.CustomHeight
	}
	if patch.FontSize != nil {
		dst.FontSize = patch.FontSize
	}
	if patch.FontWeight != nil {
		dst.FontWeight = patch.FontWeight
	}
	if patch.FontStyle != nil {
		dst.FontStyle = patch.FontStyle
	}
	if patch.TextAlign != nil {
		dst.TextAlign = patch.TextAlign
	}
	if patch.FontFamily != nil {
		dst.FontFamily = patch.FontFamily
	}
	if patch.Animation != nil {
		dst.Animation = patch.Animation
	}
	return dst
}
