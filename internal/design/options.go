// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package design holds the per-item visual configuration (Options), the
// per-surface defaults table, the style resolver that turns Options into
// concrete CSS declarations, and the user-level Theme cascade.
package design

// BackgroundType selects which background fields of Options are authoritative.
type BackgroundType string

const (
	BackgroundSolid    BackgroundType = "solid"
	BackgroundGradient BackgroundType = "gradient"
	BackgroundGlass    BackgroundType = "glass"
)

// FontWeight is the text weight of an item.
type FontWeight string

const (
	FontWeightNormal FontWeight = "normal"
	FontWeightBold   FontWeight = "bold"
)

// FontStyle is the text slant of an item.
type FontStyle string

const (
	FontStyleNormal FontStyle = "normal"
	FontStyleItalic FontStyle = "italic"
)

// TextAlign is the horizontal alignment of an item's text.
type TextAlign string

const (
	TextAlignLeft   TextAlign = "left"
	TextAlignCenter TextAlign = "center"
	TextAlignRight  TextAlign = "right"
)

// Options is the visual configuration stored with every content item as
// its design_config. Every field is optional: a nil field resolves to the
// surface default (see Defaults). The JSON keys match the stored format.
//
// BackgroundType decides which background fields are used. The other
// background fields are kept but have no effect.
type Options struct {
	BackgroundType  *BackgroundType `json:"backgroundType,omitempty"`
	BackgroundColor *string         `json:"backgroundColor,omitempty"`
	GradientStart   *string         `json:"gradientStart,omitempty"`
	GradientEnd     *string         `json:"gradientEnd,omitempty"`
	GradientAngle   *int            `json:"gradientAngle,omitempty"`
	Color           *string         `json:"color,omitempty"`
	Width           *int            `json:"width,omitempty"`
	CustomHeight    *int            `json:"customHeight,omitempty"`
	FontSize        *int            `json:"fontSize,omitempty"`
	FontWeight      *FontWeight     `json:"fontWeight,omitempty"`
	FontStyle       *FontStyle      `json:"fontStyle,omitempty"`
	TextAlign       *TextAlign      `json:"textAlign,omitempty"`
	FontFamily      *string         `json:"fontFamily,omitempty"`
	Animation       *string         `json:"animation,omitempty"`
}

// Ptr returns a pointer to v. Handy for building Options literals.
func Ptr[T any](v T) *T {
	return &v
}

// Font is one entry of the selectable font catalogue.
type Font struct {
	Label string
	Value string
}

// Fonts is the fixed catalogue offered by the editors. Value is a CSS
// font-family list.
var Fonts = []Font{
	{Label: "Modern Sans (Inter)", Value: "'Inter', sans-serif"},
	{Label: "Standard (Roboto)", Value: "'Roboto', sans-serif"},
	{Label: "Premium (Outfit)", Value: "'Outfit', sans-serif"},
	{Label: "Sleek (Montserrat)", Value: "'Montserrat', sans-serif"},
	{Label: "Futuristic (Space Grotesk)", Value: "'Space Grotesk', sans-serif"},
	{Label: "Elegant (Playfair)", Value: "'Playfair Display', serif"},
}

// Animations lists the entrance animations a profile section may use.
var Animations = []string{"none", "fade", "slide", "zoom"}
