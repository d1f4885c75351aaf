// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"privatespace/internal/models"
	"privatespace/internal/slug"
)

// BlogStore handles blog post persistence and the ranked public feed.
type BlogStore struct {
	db *sql.DB
}

// NewBlogStore creates a new BlogStore with the given database connection.
func NewBlogStore(db *sql.DB) *BlogStore {
	return &BlogStore{db: db}
}

const blogColumns = `b.id, b.owner_id, b.title, b.slug, b.content, b.tags, b.media_gallery,
	b.ranking, b.design_config, b.created_at, u.username`

const blogFrom = `FROM blog_posts b JOIN users u ON u.id = b.owner_id`

func scanBlog(row scanner) (*models.BlogPost, error) {
	var b models.BlogPost
	err := row.Scan(
		&b.ID, &b.OwnerID, &b.Title, &b.Slug, &b.Content, &b.Tags, jsonColumn{&b.Gallery},
		&b.Ranking, jsonColumn{&b.Design}, &b.CreatedAt, &b.Author,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BlogStore) list(op, where, order string, limit, offset int, args ...any) ([]models.BlogPost, error) {
	limit, offset = page(limit, offset)
	n := len(args)
	args = append(args, limit, offset)
	rows, err := s.db.Query(fmt.Sprintf(`SELECT %s %s %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		blogColumns, blogFrom, where, order, n+1, n+2), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var posts []models.BlogPost
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog post: %w", err)
		}
		posts = append(posts, *b)
	}
	return posts, rows.Err()
}

// ListPublic returns every user's posts, highest ranking first.
func (s *BlogStore) ListPublic(limit, offset int) ([]models.BlogPost, error) {
	return s.list("list public blog posts", "", "b.ranking DESC, b.created_at DESC", limit, offset)
}

// ListByOwner returns the owner's posts, newest first.
func (s *BlogStore) ListByOwner(ownerID uuid.UUID, limit, offset int) ([]models.BlogPost, error) {
	return s.list("list blog posts", "WHERE b.owner_id = $1", "b.created_at DESC", limit, offset, ownerID)
}

// FindByID retrieves one of the owner's posts. Returns nil if not found.
func (s *BlogStore) FindByID(ownerID, id uuid.UUID) (*models.BlogPost, error) {
	b, err := scanBlog(s.db.QueryRow(`SELECT `+blogColumns+` `+blogFrom+`
		WHERE b.id = $1 AND b.owner_id = $2`, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog post: %w", err)
	}
	return b, nil
}

// FindBySlug retrieves any post by its slug, for public rendering.
func (s *BlogStore) FindBySlug(slugStr string) (*models.BlogPost, error) {
	b, err := scanBlog(s.db.QueryRow(`SELECT `+blogColumns+` `+blogFrom+` WHERE b.slug = $1`, slugStr))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog post by slug: %w", err)
	}
	return b, nil
}

func (s *BlogStore) slugTaken(candidate string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM blog_posts WHERE slug = $1)`, candidate).Scan(&exists)
	return exists, err
}

// Create inserts a new post with a unique slug derived from its title.
func (s *BlogStore) Create(b *models.BlogPost) (*models.BlogPost, error) {
	gallery, err := galleryArg(b.Gallery)
	if err != nil {
		return nil, err
	}
	designArg, err := jsonArg(b.Design)
	if err != nil {
		return nil, err
	}
	sl, err := slug.Unique(b.Title, s.slugTaken)
	if err != nil {
		return nil, fmt.Errorf("create blog post: %w", err)
	}

	var id uuid.UUID
	err = s.db.QueryRow(`
		INSERT INTO blog_posts (owner_id, title, slug, content, tags, media_gallery, design_config)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, b.OwnerID, b.Title, sl, b.Content, b.Tags, gallery, designArg).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create blog post: %w", err)
	}
	return s.FindByID(b.OwnerID, id)
}

// Update writes the editable fields of a post. The slug is kept stable so
// shared links survive title edits.
func (s *BlogStore) Update(b *models.BlogPost) error {
	designArg, err := jsonArg(b.Design)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE blog_posts
		SET title = $1, content = $2, tags = $3, design_config = $4
		WHERE id = $5 AND owner_id = $6
	`, b.Title, b.Content, b.Tags, designArg, b.ID, b.OwnerID)
	return affected(res, err, "update blog post")
}

// Delete removes one of the owner's posts.
func (s *BlogStore) Delete(ownerID, id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM blog_posts WHERE id = $1 AND owner_id = $2`, id, ownerID)
	return affected(res, err, "delete blog post")
}

// AppendMedia adds items to the end of a post's gallery.
func (s *BlogStore) AppendMedia(ownerID, id uuid.UUID, items []models.MediaItem) (models.Gallery, error) {
	return appendMedia(s.db, "blog_posts", ownerID, id, items)
}

// AdjustRank adds delta to any post's ranking and returns the new value.
// Ranking is a community vote, so ownership is not checked.
func (s *BlogStore) AdjustRank(id uuid.UUID, delta int) (int, error) {
	var ranking int
	err := s.db.QueryRow(`
		UPDATE blog_posts SET ranking = ranking + $1 WHERE id = $2 RETURNING ranking
	`, delta, id).Scan(&ranking)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("adjust rank: %w", ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("adjust rank: %w", err)
	}
	return ranking, nil
}

// CountByOwner returns the number of posts the owner has.
func (s *BlogStore) CountByOwner(ownerID uuid.UUID) (int, error) {
	return countByOwner(s.db, "blog_posts", ownerID)
}
