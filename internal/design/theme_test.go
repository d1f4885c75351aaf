// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package design

import (
	"reflect"
	"strings"
	"testing"
)

func fullTheme() *Theme {
	return &Theme{
		Options: Options{
			BackgroundType: Ptr(BackgroundGradient),
			GradientStart:  Ptr("#000000"),
			GradientEnd:    Ptr("#ffffff"),
			GradientAngle:  Ptr(45),
			Color:          Ptr("#111827"),
			FontFamily:     Ptr("'Inter', sans-serif"),
			FontSize:       Ptr(17),
		},
		SidebarColor: Ptr("#1e293b"),
		CardShadow:   Ptr(ShadowMedium),
		Radius:       Ptr(1.5),
		LayoutHeight: Ptr(LayoutCompact),
	}
}

func TestThemeVars_Full(t *testing.T) {
	got := ThemeVars(fullTheme())
	want := map[string]string{
		VarMainBackground: "linear-gradient(45deg, #000000, #ffffff)",
		VarTextPrimary:    "#111827",
		VarFontHeading:    "'Inter', sans-serif",
		VarFontSize:       "17px",
		VarSidebarBg:      "#1e293b",
		VarCardShadow:     ShadowMedium,
		VarRadius:         "1.5rem",
		VarCardMinHeight:  "120px",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ThemeVars =\n%v\nwant\n%v", got, want)
	}
	if len(got) != len(CascadeVars) {
		t.Errorf("full theme set %d vars, CascadeVars has %d", len(got), len(CascadeVars))
	}
}

func TestThemeVars_Background(t *testing.T) {
	tests := []struct {
		name  string
		theme *Theme
		want  string
		isSet bool
	}{
		{"solid", &Theme{Options: Options{BackgroundColor: Ptr("#fafafa")}}, "#fafafa", true},
		{"gradient defaults", &Theme{Options: Options{BackgroundType: Ptr(BackgroundGradient)}}, "linear-gradient(135deg, #f3f4f6, #e5e7eb)", true},
		{"glass is solid at theme level", &Theme{Options: Options{BackgroundType: Ptr(BackgroundGlass), BackgroundColor: Ptr("#eee")}}, "#eee", true},
		{"unset", &Theme{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ThemeVars(tt.theme)[VarMainBackground]
			if ok != tt.isSet || got != tt.want {
				t.Errorf("--main-bg = %q (set=%v), want %q (set=%v)", got, ok, tt.want, tt.isSet)
			}
		})
	}
}

func TestThemeVars_LayoutAndRadius(t *testing.T) {
	tests := []struct {
		layout LayoutHeight
		want   string
	}{
		{LayoutCompact, "120px"},
		{LayoutRelaxed, "250px"},
		{LayoutAuto, "auto"},
	}
	for _, tt := range tests {
		vars := ThemeVars(&Theme{LayoutHeight: Ptr(tt.layout)})
		if vars[VarCardMinHeight] != tt.want {
			t.Errorf("layout %s: --card-min-height = %q, want %q", tt.layout, vars[VarCardMinHeight], tt.want)
		}
	}

	// A zero radius is a real choice and must be emitted.
	vars := ThemeVars(&Theme{Radius: Ptr(0.0)})
	if vars[VarRadius] != "0rem" {
		t.Errorf("--radius-lg = %q, want 0rem", vars[VarRadius])
	}
}

// TestThemeContext_ResetClearsEverything applies a full theme and checks
// that Reset leaves none of the known variables behind.
func TestThemeContext_ResetClearsEverything(t *testing.T) {
	ctx := NewThemeContext()
	ctx.Apply(fullTheme())
	if ctx.Empty() {
		t.Fatal("Apply left the context empty")
	}

	ctx.Reset()
	for _, name := range CascadeVars {
		if v, ok := ctx.Get(name); ok {
			t.Errorf("%s still set to %q after Reset", name, v)
		}
	}
	if ctx.CSS() != "" {
		t.Errorf("CSS() after Reset = %q, want empty", ctx.CSS())
	}
}

func TestThemeContext_ApplyIdempotent(t *testing.T) {
	a := NewThemeContext()
	a.Apply(fullTheme())
	first := a.Vars()
	a.Apply(fullTheme())
	if !reflect.DeepEqual(first, a.Vars()) {
		t.Errorf("second Apply changed state:\n%v\n%v", first, a.Vars())
	}
}

// TestThemeContext_NoCarryOver verifies that a new theme fully supersedes
// the previous one: fields it leaves unset revert to system defaults.
func TestThemeContext_NoCarryOver(t *testing.T) {
	ctx := NewThemeContext()
	ctx.Apply(fullTheme())
	ctx.Apply(&Theme{Options: Options{Color: Ptr("#ff0000")}})

	want := map[string]string{VarTextPrimary: "#ff0000"}
	if got := ctx.Vars(); !reflect.DeepEqual(got, want) {
		t.Errorf("Vars() = %v, want %v", got, want)
	}
}

func TestThemeContext_CSSOrder(t *testing.T) {
	ctx := NewThemeContext()
	ctx.Apply(fullTheme())
	css := ctx.CSS()
	if !strings.HasPrefix(css, ":root {") || !strings.HasSuffix(css, "}") {
		t.Fatalf("CSS() = %q", css)
	}
	last := -1
	for _, name := range CascadeVars {
		idx := strings.Index(css, " "+name+":")
		if idx < 0 {
			t.Fatalf("%s missing from %q", name, css)
		}
		if idx < last {
			t.Errorf("%s out of order in %q", name, css)
		}
		last = idx
	}
}

func TestThemeContext_VarsIsCopy(t *testing.T) {
	ctx := NewThemeContext()
	ctx.Apply(&Theme{SidebarColor: Ptr("#000")})
	vars := ctx.Vars()
	vars[VarSidebarBg] = "#fff"
	if v, _ := ctx.Get(VarSidebarBg); v != "#000" {
		t.Errorf("mutating Vars() changed the context: %q", v)
	}
}
