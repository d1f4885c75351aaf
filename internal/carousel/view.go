// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package carousel

import (
	"fmt"

	"privatespace/internal/models"
)

// Dot is one position indicator under the carousel.
type Dot struct {
	Index  int
	Active bool
}

// View is the template-facing state of a carousel. Prev/Next controls link
// to the same page with the item's query parameter set to PrevIndex or
// NextIndex.
type View struct {
	Param     string
	Empty     bool
	Controls  bool
	Item      models.MediaItem
	IsVideo   bool
	Index     int
	PrevIndex int
	NextIndex int
	Dots      []Dot
	Height    string
}

// Param returns the query parameter that carries the carousel index of an
// item on a page.
func Param(itemID string) string {
	return fmt.Sprintf("m%s", itemID)
}

// NewView builds the view for the carousel of itemID positioned at index,
// rendered at the given CSS height.
func NewView(itemID string, media []models.MediaItem, index int, height string) View {
	c := At(media, index)
	v := View{
		Param:    Param(itemID),
		Empty:    c.Empty(),
		Controls: c.HasControls(),
		Index:    c.Index(),
		Height:   height,
	}
	if v.Empty {
		return v
	}

	v.Item, _ = c.Current()
	v.IsVideo = c.IsVideo()

	prev, next := At(media, c.Index()), At(media, c.Index())
	prev.Prev()
	next.Next()
	v.PrevIndex, v.NextIndex = prev.Index(), next.Index()

	if v.Controls {
		v.Dots = make([]Dot, c.Len())
		for i := range v.Dots {
			v.Dots[i] = Dot{Index: i, Active: i == c.Index()}
		}
	}
	return v
}
