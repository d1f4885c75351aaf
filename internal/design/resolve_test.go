// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package design

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestResolve_Background checks the three-way background rule: glass wins
// outright, gradient uses the gradient fields and everything else uses the
// flat color.
func TestResolve_Background(t *testing.T) {
	tests := []struct {
		name string
		opts *Options
		want string
	}{
		{
			name: "glass ignores color fields",
			opts: &Options{
				BackgroundType:  Ptr(BackgroundGlass),
				BackgroundColor: Ptr("#ff0000"),
				GradientStart:   Ptr("#000000"),
			},
			want: GlassBackground,
		},
		{
			name: "gradient",
			opts: &Options{
				BackgroundType: Ptr(BackgroundGradient),
				GradientAngle:  Ptr(90),
				GradientStart:  Ptr("#111111"),
				GradientEnd:    Ptr("#222222"),
			},
			want: "linear-gradient(90deg, #111111, #222222)",
		},
		{
			name: "gradient with defaults",
			opts: &Options{BackgroundType: Ptr(BackgroundGradient)},
			want: "linear-gradient(135deg, #6366f1, #a855f7)",
		},
		{
			name: "solid",
			opts: &Options{BackgroundType: Ptr(BackgroundSolid), BackgroundColor: Ptr("#abcdef")},
			want: "#abcdef",
		},
		{
			name: "unknown type falls back to color",
			opts: &Options{BackgroundType: Ptr(BackgroundType("plaid")), BackgroundColor: Ptr("#123456")},
			want: "#123456",
		},
		{
			name: "empty options",
			opts: &Options{},
			want: "#ffffff",
		},
		{
			name: "nil options",
			opts: nil,
			want: "#ffffff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.opts, SurfaceJournal).Background
			if got != tt.want {
				t.Errorf("Background = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestResolve_SurfaceDefaults verifies the per-surface height and alignment
// defaults used when an item has no configuration.
func TestResolve_SurfaceDefaults(t *testing.T) {
	tests := []struct {
		surface   Surface
		minHeight string
		align     string
		span      int
		carousel  string
	}{
		{SurfaceJournal, "400px", "left", 6, "280px"},
		{SurfaceBlog, "500px", "left", 6, "375px"},
		{SurfaceProfile, "400px", "left", 6, "260px"},
		{SurfaceAlbum, "350px", "center", 2, "350px"},
	}

	for _, tt := range tests {
		t.Run(string(tt.surface), func(t *testing.T) {
			st := Resolve(nil, tt.surface)
			if st.MinHeight != tt.minHeight {
				t.Errorf("MinHeight = %q, want %q", st.MinHeight, tt.minHeight)
			}
			if st.TextAlign != tt.align {
				t.Errorf("TextAlign = %q, want %q", st.TextAlign, tt.align)
			}
			if st.GridSpan != tt.span {
				t.Errorf("GridSpan = %d, want %d", st.GridSpan, tt.span)
			}
			if st.CarouselHeight != tt.carousel {
				t.Errorf("CarouselHeight = %q, want %q", st.CarouselHeight, tt.carousel)
			}
		})
	}
}

func TestResolve_Typography(t *testing.T) {
	st := Resolve(&Options{
		FontSize:   Ptr(24),
		FontWeight: Ptr(FontWeightBold),
		FontStyle:  Ptr(FontStyleItalic),
		TextAlign:  Ptr(TextAlignRight),
		FontFamily: Ptr("'Outfit', sans-serif"),
		Color:      Ptr("#333333"),
	}, SurfaceBlog)

	if st.FontSize != "24px" {
		t.Errorf("FontSize = %q, want 24px", st.FontSize)
	}
	if st.FontWeight != "bold" || st.FontStyle != "italic" || st.TextAlign != "right" {
		t.Errorf("unexpected typography: %+v", st)
	}
	if st.FontFamily != "'Outfit', sans-serif" {
		t.Errorf("FontFamily = %q", st.FontFamily)
	}
	if st.Color != "#333333" {
		t.Errorf("Color = %q", st.Color)
	}
}

// TestResolve_InheritsWhenUnset verifies that unset typography leaves the
// cascade in charge.
func TestResolve_InheritsWhenUnset(t *testing.T) {
	st := Resolve(&Options{}, SurfaceProfile)
	if st.FontSize != "inherit" {
		t.Errorf("FontSize = %q, want inherit", st.FontSize)
	}
	if st.FontFamily != "inherit" {
		t.Errorf("FontFamily = %q, want inherit", st.FontFamily)
	}
	if st.Color != "" {
		t.Errorf("Color = %q, want empty", st.Color)
	}
	for _, d := range st.Declarations() {
		if d.Property == "color" {
			t.Errorf("unexpected color declaration %q", d.Value)
		}
	}
}

// TestResolve_OutOfRangePassesThrough verifies values outside the editor
// bounds are rendered unchanged.
func TestResolve_OutOfRangePassesThrough(t *testing.T) {
	st := Resolve(&Options{Width: Ptr(9), CustomHeight: Ptr(5000)}, SurfaceJournal)
	if st.GridSpan != 9 {
		t.Errorf("GridSpan = %d, want 9", st.GridSpan)
	}
	if st.MinHeight != "5000px" {
		t.Errorf("MinHeight = %q, want 5000px", st.MinHeight)
	}
	if Defaults(SurfaceJournal).WidthRange.Contains(9) {
		t.Error("WidthRange should not contain 9")
	}
}

func TestResolve_Deterministic(t *testing.T) {
	opts := &Options{BackgroundType: Ptr(BackgroundGradient), Width: Ptr(3)}
	a := Resolve(opts, SurfaceBlog)
	b := Resolve(opts, SurfaceBlog)
	if a != b {
		t.Errorf("Resolve is not deterministic: %+v vs %+v", a, b)
	}
}

func TestStyle_CSS(t *testing.T) {
	st := Resolve(&Options{BackgroundColor: Ptr("#fff"), Color: Ptr("#000"), FontSize: Ptr(16)}, SurfaceJournal)
	want := "background: #fff; color: #000; min-height: 400px; font-size: 16px; " +
		"font-weight: normal; font-style: normal; text-align: left; font-family: inherit;"
	if got := st.CSS(); got != want {
		t.Errorf("CSS() =\n%q\nwant\n%q", got, want)
	}
}

// TestStyle_CSS_Sanitized verifies stored values cannot break out of the
// style attribute.
func TestStyle_CSS_Sanitized(t *testing.T) {
	st := Resolve(&Options{BackgroundColor: Ptr(`red; } <script>"`)}, SurfaceJournal)
	css := st.CSS()
	for _, bad := range []string{"<", ">", "}", `"`} {
		if strings.Contains(css, bad) {
			t.Errorf("CSS() contains %q: %s", bad, css)
		}
	}
	if !strings.HasPrefix(css, "background: red  script;") {
		t.Errorf("unexpected sanitized output: %q", css)
	}
}

func TestStyle_ClassNames(t *testing.T) {
	st := Resolve(&Options{BackgroundType: Ptr(BackgroundGlass), Width: Ptr(3), Animation: Ptr("fade")}, SurfaceProfile)
	if got := st.ClassNames(); got != "col-span-3 glass-effect animate-fade" {
		t.Errorf("ClassNames() = %q", got)
	}
}

// TestOptions_JSON verifies the stored key names and that unset fields are
// omitted.
func TestOptions_JSON(t *testing.T) {
	raw := `{"backgroundType":"gradient","gradientAngle":45,"customHeight":300}`
	var opts Options
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if opts.BackgroundType == nil || *opts.BackgroundType != BackgroundGradient {
		t.Fatalf("BackgroundType not decoded: %+v", opts)
	}
	if opts.Width != nil {
		t.Errorf("Width should be nil, got %d", *opts.Width)
	}

	out, err := json.Marshal(Options{Width: Ptr(4)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"width":4}` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestEditable(t *testing.T) {
	opts := Editable(&Options{Width: Ptr(2)}, SurfaceAlbum)
	if *opts.Width != 2 {
		t.Errorf("Width = %d, want 2", *opts.Width)
	}
	if *opts.FontSize != 14 {
		t.Errorf("album FontSize = %d, want 14", *opts.FontSize)
	}
	if *opts.TextAlign != TextAlignCenter {
		t.Errorf("album TextAlign = %q, want center", *opts.TextAlign)
	}
	if *opts.CustomHeight != 350 {
		t.Errorf("album CustomHeight = %d, want 350", *opts.CustomHeight)
	}
}

func TestParseSurface(t *testing.T) {
	if s, err := ParseSurface("blog"); err != nil || s != SurfaceBlog {
		t.Errorf("ParseSurface(blog) = %q, %v", s, err)
	}
	if _, err := ParseSurface("wiki"); err == nil {
		t.Error("expected error for unknown surface")
	}
}
