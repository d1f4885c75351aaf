// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"privatespace/internal/imaging"
	"privatespace/internal/models"
	"privatespace/internal/storage"
)

const (
	// maxUploadSize is the maximum size of one multipart request (50 MB).
	maxUploadSize = 50 << 20

	// multipartMemory is how much of a multipart body is kept in memory
	// before spilling to temp files.
	multipartMemory = 8 << 20
)

// Storage key prefixes per upload kind.
const (
	kindJournal = "journal"
	kindBlog    = "blog"
	kindProfile = "profile"
	kindAlbum   = "album"
	kindAvatar  = "avatars"
)

var errUnsupportedMedia = errors.New("only images and videos can be uploaded")

// upload is one file waiting to be stored.
type upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// allowedMedia reports whether a content type may be stored in a gallery
// or album.
func allowedMedia(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || strings.HasPrefix(contentType, "video/")
}

// openUpload opens a multipart file and settles its content type, sniffing
// the first bytes when the client sent none.
func openUpload(fh *multipart.FileHeader) (upload, func() error, error) {
	f, err := fh.Open()
	if err != nil {
		return upload{}, nil, fmt.Errorf("open upload: %w", err)
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		head := make([]byte, 512)
		n, _ := io.ReadFull(f, head)
		ct = http.DetectContentType(head[:n])
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			f.Close()
			return upload{}, nil, fmt.Errorf("rewind upload: %w", err)
		}
	}
	return upload{Filename: fh.Filename, ContentType: ct, Size: fh.Size, Body: f}, f.Close, nil
}

// putMedia stores one upload and returns its gallery entry and key.
func (s *Services) putMedia(ctx context.Context, owner uuid.UUID, kind string, u upload) (models.MediaItem, string, error) {
	if !allowedMedia(u.ContentType) {
		return models.MediaItem{}, "", errUnsupportedMedia
	}
	key := storage.NewKey(owner, kind, u.Filename)
	if err := s.Media.Put(ctx, key, u.ContentType, u.Body, u.Size); err != nil {
		return models.MediaItem{}, "", fmt.Errorf("store media: %w", err)
	}
	return models.MediaItem{URL: s.Media.URL(key), Type: models.MediaTypeFor(u.ContentType)}, key, nil
}

// storeFiles stores every file of a multipart field. If any file fails the
// ones already stored are removed again.
func (s *Services) storeFiles(ctx context.Context, owner uuid.UUID, kind string, files []*multipart.FileHeader) ([]models.MediaItem, []string, error) {
	items := make([]models.MediaItem, 0, len(files))
	keys := make([]string, 0, len(files))
	for _, fh := range files {
		u, closeFn, err := openUpload(fh)
		if err != nil {
			s.removeKeys(ctx, keys...)
			return nil, nil, err
		}
		item, key, err := s.putMedia(ctx, owner, kind, u)
		closeFn()
		if err != nil {
			s.removeKeys(ctx, keys...)
			return nil, nil, err
		}
		items = append(items, item)
		keys = append(keys, key)
	}
	return items, keys, nil
}

// removeKeys deletes stored objects, logging failures.
func (s *Services) removeKeys(ctx context.Context, keys ...string) {
	for _, k := range keys {
		if err := s.Media.Delete(ctx, k); err != nil {
			slog.Warn("remove stored media failed", "key", k, "error", err)
		}
	}
}

// storeAlbumItem stores an album upload plus, for decodable images, its
// thumbnail and records it against the owner's quota. Stored objects are
// removed again when the record cannot be created.
func (s *Services) storeAlbumItem(ctx context.Context, owner uuid.UUID, u upload, isPublic bool) (*models.AlbumItem, error) {
	if !allowedMedia(u.ContentType) {
		return nil, errUnsupportedMedia
	}
	data, err := io.ReadAll(io.LimitReader(u.Body, maxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read album upload: %w", err)
	}
	if len(data) > maxUploadSize {
		return nil, fmt.Errorf("album upload exceeds %d bytes", maxUploadSize)
	}

	key := storage.NewKey(owner, kindAlbum, u.Filename)
	if err := s.Media.Put(ctx, key, u.ContentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return nil, fmt.Errorf("store album media: %w", err)
	}
	keys := []string{key}

	item := &models.AlbumItem{
		OwnerID:     owner,
		URL:         s.Media.URL(key),
		StorageKey:  key,
		ContentType: u.ContentType,
		FileSize:    int64(len(data)),
		MediaType:   models.MediaTypeFor(u.ContentType),
		IsPublic:    isPublic,
	}

	if imaging.Supported(u.ContentType) {
		thumb, err := imaging.Generate(data, imaging.Thumb)
		if err != nil {
			slog.Warn("thumbnail generation failed", "key", key, "error", err)
		} else {
			tk := storage.ThumbKey(key)
			if err := s.Media.Put(ctx, tk, thumb.ContentType, bytes.NewReader(thumb.Data), int64(len(thumb.Data))); err != nil {
				slog.Warn("store thumbnail failed", "key", tk, "error", err)
			} else {
				item.ThumbKey = &tk
				keys = append(keys, tk)
			}
		}
	}

	created, err := s.Album.Create(item, s.AlbumQuota)
	if err != nil {
		s.removeKeys(ctx, keys...)
		return nil, err
	}
	return created, nil
}

// removeAlbumFiles deletes the stored objects of a deleted album item.
func (s *Services) removeAlbumFiles(ctx context.Context, a *models.AlbumItem) {
	keys := []string{a.StorageKey}
	if a.ThumbKey != nil {
		keys = append(keys, *a.ThumbKey)
	}
	s.removeKeys(ctx, keys...)
}

// quotaMessage is the error shown when an album upload would exceed the
// owner's quota.
func (s *Services) quotaMessage() string {
	return fmt.Sprintf("Storage limit of %dMB reached.", s.AlbumQuota/(1024*1024))
}
