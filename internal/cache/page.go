// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached pages.
	pageKeyPrefix = "page:"

	// DefaultPageTTL is how long a rendered public page stays cached.
	DefaultPageTTL = 5 * time.Minute
)

// Keys of the cached public pages.
const (
	feedKey    = "feed"
	galleryKey = "gallery"
	postPrefix = "post:"
)

// FeedKey returns the cache key for the public blog feed.
func FeedKey() string { return feedKey }

// GalleryKey returns the cache key for the public album.
func GalleryKey() string { return galleryKey }

// PostKey returns the cache key for a single public blog post.
func PostKey(slug string) string { return postPrefix + slug }

// PageCache stores rendered public pages in Valkey so repeat visitors skip
// the database and the template run. Writes that change public content call
// one of the Invalidate methods.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Get retrieves cached HTML for a page key. Errors count as a miss.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML for a page key with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	if err := pc.client.Set(ctx, pageKeyPrefix+key, html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

// Invalidate removes the given page keys.
func (pc *PageCache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = pageKeyPrefix + k
	}
	if err := pc.client.Del(ctx, full...).Err(); err != nil {
		slog.Warn("page cache invalidate error", "keys", keys, "error", err)
		return
	}
	slog.Debug("page cache invalidated", "keys", keys)
}

// InvalidateBlog removes the public feed and, when slug is not empty, the
// page of that post.
func (pc *PageCache) InvalidateBlog(ctx context.Context, slug string) {
	if slug == "" {
		pc.Invalidate(ctx, feedKey)
		return
	}
	pc.Invalidate(ctx, feedKey, PostKey(slug))
}

// InvalidateGallery removes the cached public album.
func (pc *PageCache) InvalidateGallery(ctx context.Context) {
	pc.Invalidate(ctx, galleryKey)
}

// InvalidateAll removes all cached pages by scanning for the prefix. Used
// when an author's theme changes, since any of their public pages could be
// affected.
func (pc *PageCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, pageKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("page cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("page cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("page cache fully cleared", "deleted", deleted)
	}
}
