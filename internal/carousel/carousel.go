// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package carousel implements the media carousel shown on every card that
// has a gallery: a cyclic index over an ordered media list.
package carousel

import "privatespace/internal/models"

// Carousel is a cyclic cursor over a media list. The zero value is an
// empty carousel.
type Carousel struct {
	media []models.MediaItem
	index int
}

// New returns a carousel positioned on the first item.
func New(media []models.MediaItem) *Carousel {
	return &Carousel{media: media}
}

// At returns a carousel positioned on index i. Indices outside the list
// (for example from a hand-edited query string) wrap around.
func At(media []models.MediaItem, i int) *Carousel {
	c := New(media)
	c.index = c.wrap(i)
	return c
}

func (c *Carousel) wrap(i int) int {
	n := len(c.media)
	if n == 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Len returns the number of items.
func (c *Carousel) Len() int { return len(c.media) }

// Index returns the current position.
func (c *Carousel) Index() int { return c.index }

// Empty reports whether there is nothing to render.
func (c *Carousel) Empty() bool { return len(c.media) == 0 }

// HasControls reports whether navigation controls should be shown.
func (c *Carousel) HasControls() bool { return len(c.media) > 1 }

// Next advances to the following item, wrapping to the first.
// It does nothing on lists of fewer than two items.
func (c *Carousel) Next() {
	if c.HasControls() {
		c.index = c.wrap(c.index + 1)
	}
}

// Prev moves to the previous item, wrapping to the last.
// It does nothing on lists of fewer than two items.
func (c *Carousel) Prev() {
	if c.HasControls() {
		c.index = c.wrap(c.index - 1)
	}
}

// Current returns the item under the cursor.
func (c *Carousel) Current() (models.MediaItem, bool) {
	if c.Empty() {
		return models.MediaItem{}, false
	}
	return c.media[c.index], true
}

// IsVideo reports whether the current item is a video.
func (c *Carousel) IsVideo() bool {
	m, ok := c.Current()
	return ok && m.IsVideo()
}
