// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package design

import (
	"fmt"
	"strconv"
	"strings"
)

// LayoutHeight controls the minimum card height applied by a Theme.
type LayoutHeight string

const (
	LayoutCompact LayoutHeight = "compact"
	LayoutAuto    LayoutHeight = "auto"
	LayoutRelaxed LayoutHeight = "relaxed"
)

// Shadow presets offered by the theme editor.
const (
	ShadowNone      = "none"
	ShadowSubtle    = "0 4px 6px -1px rgba(0, 0, 0, 0.1)"
	ShadowMedium    = "0 10px 15px -3px rgba(0, 0, 0, 0.1)"
	ShadowImmersive = "0 25px 50px -12px rgba(0, 0, 0, 0.25)"
)

// ShadowPreset is one labelled card shadow.
type ShadowPreset struct {
	Label string
	Value string
}

// Shadows is the fixed list of card shadows, shallowest first.
var Shadows = []ShadowPreset{
	{Label: "None", Value: ShadowNone},
	{Label: "Subtle", Value: ShadowSubtle},
	{Label: "Medium", Value: ShadowMedium},
	{Label: "Immersive", Value: ShadowImmersive},
}

// Radii lists the allowed corner radius multiples, in rem.
var Radii = []float64{0, 0.5, 1, 1.5, 2}

// Theme is the user-level default style. It shares the Options shape and
// adds layout settings. The glass background type has no theme variant and
// is treated as solid.
type Theme struct {
	Options
	SidebarColor *string       `json:"sidebarColor,omitempty"`
	CardShadow   *string       `json:"cardShadow,omitempty"`
	Radius       *float64      `json:"radius,omitempty"`
	LayoutHeight *LayoutHeight `json:"layoutHeight,omitempty"`
}

// Names of the cascade variables. Each is a CSS custom property except
// font-size, which sets the root font size directly.
const (
	VarMainBackground = "--main-bg"
	VarTextPrimary    = "--text-primary"
	VarFontHeading    = "--font-heading"
	VarFontSize       = "font-size"
	VarSidebarBg      = "--sidebar-bg"
	VarCardShadow     = "--card-shadow"
	VarRadius         = "--radius-lg"
	VarCardMinHeight  = "--card-min-height"
)

// CascadeVars enumerates every variable a Theme can set, in output order.
// Reset clears exactly this set.
var CascadeVars = []string{
	VarMainBackground,
	VarTextPrimary,
	VarFontHeading,
	VarFontSize,
	VarSidebarBg,
	VarCardShadow,
	VarRadius,
	VarCardMinHeight,
}

// Theme background defaults used when a gradient is selected without stops.
const (
	themeGradientAngle = 135
	themeGradientStart = "#f3f4f6"
	themeGradientEnd   = "#e5e7eb"
)

// ThemeVars computes the cascade variables for t. Unset fields produce no
// variable at all so the system default applies.
func ThemeVars(t *Theme) map[string]string {
	vars := make(map[string]string, len(CascadeVars))
	if t == nil {
		return vars
	}

	if t.BackgroundType != nil && *t.BackgroundType == BackgroundGradient {
		vars[VarMainBackground] = Gradient(
			intOr(t.GradientAngle, themeGradientAngle),
			strOr(t.GradientStart, themeGradientStart),
			strOr(t.GradientEnd, themeGradientEnd),
		)
	} else if bg := strOr(t.BackgroundColor, ""); bg != "" {
		vars[VarMainBackground] = bg
	}

	setIf(vars, VarTextPrimary, t.Color)
	setIf(vars, VarFontHeading, t.FontFamily)
	if t.FontSize != nil && *t.FontSize > 0 {
		vars[VarFontSize] = px(*t.FontSize)
	}
	setIf(vars, VarSidebarBg, t.SidebarColor)
	setIf(vars, VarCardShadow, t.CardShadow)
	if t.Radius != nil {
		vars[VarRadius] = strconv.FormatFloat(*t.Radius, 'f', -1, 64) + "rem"
	}
	if t.LayoutHeight != nil {
		switch *t.LayoutHeight {
		case LayoutCompact:
			vars[VarCardMinHeight] = "120px"
		case LayoutRelaxed:
			vars[VarCardMinHeight] = "250px"
		case LayoutAuto:
			vars[VarCardMinHeight] = "auto"
		}
	}

	for k, v := range vars {
		if v = sanitizeValue(v); v == "" {
			delete(vars, k)
		} else {
			vars[k] = v
		}
	}
	return vars
}

func setIf(vars map[string]string, name string, v *string) {
	if v != nil && *v != "" {
		vars[name] = *v
	}
}

// ThemeContext holds the cascade defaults for one rendering session. It is
// created at login, applied before any item is rendered and reset at
// logout. A ThemeContext is not safe for concurrent use; each request or
// client session owns its own.
type ThemeContext struct {
	vars map[string]string
}

// NewThemeContext returns an empty context, equivalent to system defaults.
func NewThemeContext() *ThemeContext {
	return &ThemeContext{vars: map[string]string{}}
}

// Apply replaces the cascade with the variables of t. Fields unset in t
// fall back to system defaults, never to a previously applied theme.
func (c *ThemeContext) Apply(t *Theme) {
	c.Reset()
	for k, v := range ThemeVars(t) {
		c.vars[k] = v
	}
}

// Reset removes every variable Apply is capable of setting.
func (c *ThemeContext) Reset() {
	for _, name := range CascadeVars {
		delete(c.vars, name)
	}
}

// Get returns the current value of a cascade variable.
func (c *ThemeContext) Get(name string) (string, bool) {
	v, ok := c.vars[name]
	return v, ok
}

// Vars returns a copy of the currently applied variables.
func (c *ThemeContext) Vars() map[string]string {
	out := make(map[string]string, len(c.vars))
	for k, v := range c.vars {
		out[k] = v
	}
	return out
}

// Empty reports whether no variable is set.
func (c *ThemeContext) Empty() bool {
	return len(c.vars) == 0
}

// CSS renders the context as a :root rule, in CascadeVars order. An empty
// context renders as an empty string.
func (c *ThemeContext) CSS() string {
	if c == nil || c.Empty() {
		return ""
	}
	var b strings.Builder
	b.WriteString(":root {")
	for _, name := range CascadeVars {
		if v, ok := c.vars[name]; ok {
			fmt.Fprintf(&b, " %s: %s;", name, v)
		}
	}
	b.WriteString(" }")
	return b.String()
}
