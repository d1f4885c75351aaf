// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package design

import (
	"fmt"
	"strings"
)

// GlassBackground is the fixed translucent fill used by the glass type.
const GlassBackground = "rgba(255, 255, 255, 0.45)"

// inherit is emitted for typography fields with no value at all.
const inherit = "inherit"

// Style is the concrete visual output for one item. Empty fields are left
// out of the declarations so the theme cascade shows through.
type Style struct {
	Background string `json:"background"`
	Color      string `json:"color,omitempty"`
	MinHeight  string `json:"minHeight"`
	FontSize   string `json:"fontSize"`
	FontWeight string `json:"fontWeight"`
	FontStyle  string `json:"fontStyle"`
	TextAlign  string `json:"textAlign"`
	FontFamily string `json:"fontFamily"`
	GridSpan   int    `json:"gridSpan"`
	Animation  string `json:"animation"`
	Glass      bool   `json:"glass"`

	// CarouselHeight is the height given to the item's media carousel.
	CarouselHeight string `json:"carouselHeight"`
}

// Declaration is one CSS property/value pair.
type Declaration struct {
	Property string
	Value    string
}

// Resolve maps an item's Options onto a Style using the defaults of the
// given surface. It is pure: no validation is performed and out-of-range
// values (a width of 9, a height of 5000) are rendered as given.
func Resolve(opts *Options, surface Surface) Style {
	d := Defaults(surface)
	if opts == nil {
		opts = &Options{}
	}

	height := intOr(opts.CustomHeight, d.CustomHeight)
	st := Style{
		Background:     resolveBackground(opts, d),
		Color:          strOr(opts.Color, d.Color),
		MinHeight:      px(height),
		FontSize:       inherit,
		FontWeight:     string(d.FontWeight),
		FontStyle:      string(d.FontStyle),
		TextAlign:      string(d.TextAlign),
		FontFamily:     inherit,
		GridSpan:       intOr(opts.Width, d.Width),
		Animation:      strOr(opts.Animation, d.Animation),
		Glass:          opts.BackgroundType != nil && *opts.BackgroundType == BackgroundGlass,
		CarouselHeight: px(int(float64(height) * d.CarouselScale)),
	}

	if size := intOr(opts.FontSize, d.FontSize); size > 0 {
		st.FontSize = px(size)
	}
	if opts.FontWeight != nil && *opts.FontWeight != "" {
		st.FontWeight = string(*opts.FontWeight)
	}
	if opts.FontStyle != nil && *opts.FontStyle != "" {
		st.FontStyle = string(*opts.FontStyle)
	}
	if opts.TextAlign != nil && *opts.TextAlign != "" {
		st.TextAlign = string(*opts.TextAlign)
	}
	if family := strOr(opts.FontFamily, d.FontFamily); family != "" {
		st.FontFamily = family
	}
	return st
}

// resolveBackground is the exhaustive three-way branch on BackgroundType.
// Unknown or unset types fall through to the flat color.
func resolveBackground(opts *Options, d SurfaceDefaults) string {
	bt := d.BackgroundType
	if opts.BackgroundType != nil {
		bt = *opts.BackgroundType
	}

	switch bt {
	case BackgroundGlass:
		return GlassBackground
	case BackgroundGradient:
		return Gradient(
			intOr(opts.GradientAngle, d.GradientAngle),
			strOr(opts.GradientStart, d.GradientStart),
			strOr(opts.GradientEnd, d.GradientEnd),
		)
	default:
		return strOr(opts.BackgroundColor, d.BackgroundColor)
	}
}

// Gradient builds a CSS linear-gradient from an angle and two stops.
func Gradient(angle int, start, end string) string {
	return fmt.Sprintf("linear-gradient(%ddeg, %s, %s)", angle, start, end)
}

// Declarations returns the style as ordered CSS declarations. Empty values
// are skipped and values are stripped of characters that could break out
// of a declaration.
func (s Style) Declarations() []Declaration {
	pairs := []Declaration{
		{"background", s.Background},
		{"color", s.Color},
		{"min-height", s.MinHeight},
		{"font-size", s.FontSize},
		{"font-weight", s.FontWeight},
		{"font-style", s.FontStyle},
		{"text-align", s.TextAlign},
		{"font-family", s.FontFamily},
	}

	out := pairs[:0]
	for _, p := range pairs {
		p.Value = sanitizeValue(p.Value)
		if p.Value == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// CSS renders the declarations as the body of a style attribute.
func (s Style) CSS() string {
	var b strings.Builder
	for i, d := range s.Declarations() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d.Property)
		b.WriteString(": ")
		b.WriteString(d.Value)
		b.WriteByte(';')
	}
	return b.String()
}

// ClassNames returns the layout classes for the item: its grid span, the
// glass effect and its animation.
func (s Style) ClassNames() string {
	classes := []string{fmt.Sprintf("col-span-%d", s.GridSpan)}
	if s.Glass {
		classes = append(classes, "glass-effect")
	}
	if s.Animation != "" {
		classes = append(classes, "animate-"+sanitizeValue(s.Animation))
	}
	return strings.Join(classes, " ")
}

// sanitizeValue removes characters that would let a stored value escape
// its declaration.
func sanitizeValue(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '"', '\\', '\n', '\r':
			return -1
		}
		return r
	}, strings.TrimSpace(v))
}

func px(n int) string {
	return fmt.Sprintf("%dpx", n)
}

func intOr(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}

func strOr(v *string, fallback string) string {
	if v != nil && *v != "" {
		return *v
	}
	return fallback
}
