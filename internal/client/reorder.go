// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package client

import (
	"context"

	"privatespace/internal/models"
	"privatespace/internal/reorder"
)

// SectionOrder commits and reloads profile section order through the API.
type SectionOrder struct {
	c *Client
}

// SectionOrder returns the reorder backend for the caller's sections.
func (c *Client) SectionOrder() SectionOrder {
	return SectionOrder{c: c}
}

// CommitOrder sends the complete order map in one request.
func (s SectionOrder) CommitOrder(ctx context.Context, order map[string]int) error {
	return s.c.Reorder(ctx, order)
}

// LoadOrder fetches the authoritative order.
func (s SectionOrder) LoadOrder(ctx context.Context) ([]models.ProfileSection, error) {
	return s.c.Sections(ctx)
}

// SectionList loads the caller's sections into a reorderable list wired to
// the API.
func (c *Client) SectionList(ctx context.Context) (*reorder.List[models.ProfileSection], error) {
	sections, err := c.Sections(ctx)
	if err != nil {
		return nil, err
	}
	order := c.SectionOrder()
	return reorder.New(sections, order, order), nil
}
