// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging generates album thumbnails. Uploaded JPEG, PNG, GIF and
// WebP images are scaled down to a fixed width and re-encoded as JPEG.
// Images narrower than the target are not upscaled.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Variant describes a single output size.
type Variant struct {
	Name    string // e.g., "thumb"
	Width   int    // Target width in pixels
	Quality int    // JPEG quality 1-100
}

// Thumb is the variant shown in album grids.
var Thumb = Variant{Name: "thumb", Width: 480, Quality: 80}

// Processed holds one generated variant ready for upload.
type Processed struct {
	Name        string
	Width       int
	Height      int
	Data        []byte
	ContentType string
}

// Supported reports whether contentType is an image format this package
// can decode.
func Supported(contentType string) bool {
	switch strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])) {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}

// Generate decodes original and produces variant v.
func Generate(original []byte, v Variant) (*Processed, error) {
	src, _, err := image.Decode(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("imaging: empty image")
	}
	if w > v.Width {
		h = max(1, h*v.Width/w)
		w = v.Width
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// JPEG has no alpha; flatten transparent areas onto white.
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: v.Quality}); err != nil {
		return nil, fmt.Errorf("imaging: encode %s: %w", v.Name, err)
	}

	return &Processed{
		Name:        v.Name,
		Width:       w,
		Height:      h,
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
	}, nil
}
