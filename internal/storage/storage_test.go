// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewKey(t *testing.T) {
	owner := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	tests := []struct {
		filename string
		wantExt  string
	}{
		{"photo.JPG", ".jpg"},
		{"clip.mp4", ".mp4"},
		{"noext", ""},
		{`C:\Users\me\pic.png`, ".png"},
		{"weird.ex t", ""},
	}
	for _, tt := range tests {
		key := NewKey(owner, "album", tt.filename)
		if !strings.HasPrefix(key, "album/"+owner.String()+"/") {
			t.Errorf("NewKey(%q) = %q, bad prefix", tt.filename, key)
		}
		if filepath.Ext(key) != tt.wantExt {
			t.Errorf("NewKey(%q) = %q, want ext %q", tt.filename, key, tt.wantExt)
		}
	}

	if NewKey(owner, "album", "a.png") == NewKey(owner, "album", "a.png") {
		t.Error("NewKey returned the same key twice")
	}
}

func TestThumbKey(t *testing.T) {
	if got := ThumbKey("album/u/abc.png"); got != "album/u/abc_thumb.jpg" {
		t.Errorf("ThumbKey = %q", got)
	}
	if got := ThumbKey("album/u/abc"); got != "album/u/abc_thumb.jpg" {
		t.Errorf("ThumbKey (no ext) = %q", got)
	}
}

func TestLocalPutDelete(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	ctx := context.Background()

	key := "album/owner/file.txt"
	if err := l.Put(ctx, key, "text/plain", strings.NewReader("hello"), 5); err != nil {
		t.Fatalf("Put: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(l.Root(), "album", "owner", "file.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q", data)
	}
	if l.URL(key) != "/uploads/album/owner/file.txt" {
		t.Errorf("URL = %q", l.URL(key))
	}

	if err := l.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := l.Delete(ctx, key); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestLocalRejectsTraversal(t *testing.T) {
	l, _ := NewLocal(t.TempDir())
	for _, key := range []string{"../escape", "/abs/path", "."} {
		if err := l.Put(context.Background(), key, "", strings.NewReader("x"), 1); err == nil {
			t.Errorf("Put(%q) should fail", key)
		}
	}
}

func TestNewS3Disabled(t *testing.T) {
	c, err := NewS3("", "fsn1", "", "", "bucket", "")
	if err != nil || c != nil {
		t.Errorf("NewS3 without endpoint = %v, %v; want nil, nil", c, err)
	}
}

func TestS3URL(t *testing.T) {
	c, err := NewS3("https://fsn1.example.com/", "fsn1", "ak", "sk", "media", "")
	if err != nil {
		t.Fatalf("NewS3: %v", err)
	}
	if got := c.URL("a/b.png"); got != "https://fsn1.example.com/media/a/b.png" {
		t.Errorf("URL = %q", got)
	}

	c, _ = NewS3("https://fsn1.example.com", "fsn1", "ak", "sk", "media", "https://cdn.example.com/")
	if got := c.URL("a/b.png"); got != "https://cdn.example.com/a/b.png" {
		t.Errorf("URL with public URL = %q", got)
	}
}
