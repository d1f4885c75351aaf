// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package preview stages uploaded files while a form is being filled in,
// so the page can show them before the item is saved. Every staged file is
// released when it is removed from the form, when the form is reset or
// submitted, or when the form is abandoned for longer than the TTL.
package preview

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a preview does not exist or belongs to
// another user.
var ErrNotFound = errors.New("preview not found")

// Preview is one staged file.
type Preview struct {
	ID          uuid.UUID
	Owner       uuid.UUID
	FormID      string
	Filename    string
	ContentType string
	Size        int64
	CreatedAt   time.Time

	path string
}

// URL is where the staged file can be fetched by its owner.
func (p *Preview) URL() string {
	return "/space/previews/" + p.ID.String()
}

// Open returns a reader over the staged file.
func (p *Preview) Open() (*os.File, error) {
	return os.Open(p.path)
}

// Release deletes the staged file. It is safe to call more than once.
func (p *Preview) Release() {
	if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("release preview failed", "id", p.ID, "error", err)
	}
}

type formKey struct {
	owner uuid.UUID
	form  string
}

type form struct {
	ids      []uuid.UUID
	lastSeen time.Time
}

// Registry tracks the staged previews of every open form.
type Registry struct {
	mu       sync.Mutex
	dir      string
	ttl      time.Duration
	previews map[uuid.UUID]*Preview
	forms    map[formKey]*form
	now      func() time.Time
	stopCh   chan struct{}
}

// NewRegistry creates a registry that stages files under dir and releases
// forms idle for longer than ttl. It starts a background sweeper.
func NewRegistry(dir string, ttl time.Duration) (*Registry, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create preview dir: %w", err)
	}

	r := &Registry{
		dir:      dir,
		ttl:      ttl,
		previews: make(map[uuid.UUID]*Preview),
		forms:    make(map[formKey]*form),
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(sweepInterval(ttl))
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := r.Sweep(); n > 0 {
					slog.Info("released abandoned previews", "count", n)
				}
			case <-r.stopCh:
				return
			}
		}
	}()

	return r, nil
}

func sweepInterval(ttl time.Duration) time.Duration {
	if d := ttl / 2; d > time.Second {
		return d
	}
	return time.Second
}

// Stop terminates the sweeper and releases everything still staged.
func (r *Registry) Stop() {
	close(r.stopCh)

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.previews {
		p.Release()
		delete(r.previews, id)
	}
	clear(r.forms)
}

// Stage copies src into a new temp file attached to the owner's form.
func (r *Registry) Stage(owner uuid.UUID, formID, filename, contentType string, src io.Reader) (*Preview, error) {
	f, err := os.CreateTemp(r.dir, "preview-*")
	if err != nil {
		return nil, fmt.Errorf("create preview file: %w", err)
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("write preview file: %w", err)
	}

	p := &Preview{
		ID:          uuid.New(),
		Owner:       owner,
		FormID:      formID,
		Filename:    filename,
		ContentType: contentType,
		Size:        n,
		CreatedAt:   r.now(),
		path:        f.Name(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.previews[p.ID] = p
	key := formKey{owner, formID}
	fm, ok := r.forms[key]
	if !ok {
		fm = &form{}
		r.forms[key] = fm
	}
	fm.ids = append(fm.ids, p.ID)
	fm.lastSeen = p.CreatedAt
	return p, nil
}

// Get returns the owner's preview with the given ID.
func (r *Registry) Get(owner, id uuid.UUID) (*Preview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.previews[id]
	if !ok || p.Owner != owner {
		return nil, ErrNotFound
	}
	return p, nil
}

// List returns the previews staged for a form, in staging order.
func (r *Registry) List(owner uuid.UUID, formID string) []*Preview {
	r.mu.Lock()
	defer r.mu.Unlock()

	fm, ok := r.forms[formKey{owner, formID}]
	if !ok {
		return nil
	}
	out := make([]*Preview, 0, len(fm.ids))
	for _, id := range fm.ids {
		out = append(out, r.previews[id])
	}
	return out
}

// Revoke releases a single preview, as when a file is removed from a form.
func (r *Registry) Revoke(owner, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.previews[id]
	if !ok || p.Owner != owner {
		return ErrNotFound
	}
	delete(r.previews, id)

	key := formKey{owner, p.FormID}
	if fm, ok := r.forms[key]; ok {
		for i, fid := range fm.ids {
			if fid == id {
				fm.ids = append(fm.ids[:i], fm.ids[i+1:]...)
				break
			}
		}
		if len(fm.ids) == 0 {
			delete(r.forms, key)
		}
	}
	p.Release()
	return nil
}

// RevokeForm releases every preview of a form, as on reset or cancel. It
// returns the number of files released.
func (r *Registry) RevokeForm(owner uuid.UUID, formID string) int {
	previews := r.take(owner, formID)
	for _, p := range previews {
		p.Release()
	}
	return len(previews)
}

// Claim detaches a form's previews for the save path. The caller owns the
// returned files and must Release each of them once it is done.
func (r *Registry) Claim(owner uuid.UUID, formID string) []*Preview {
	return r.take(owner, formID)
}

func (r *Registry) take(owner uuid.UUID, formID string) []*Preview {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := formKey{owner, formID}
	fm, ok := r.forms[key]
	if !ok {
		return nil
	}
	delete(r.forms, key)

	out := make([]*Preview, 0, len(fm.ids))
	for _, id := range fm.ids {
		if p, ok := r.previews[id]; ok {
			out = append(out, p)
			delete(r.previews, id)
		}
	}
	return out
}

// Sweep releases every form idle for longer than the TTL and returns the
// number of files released.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var stale []*Preview
	for key, fm := range r.forms {
		if fm.lastSeen.After(cutoff) {
			continue
		}
		for _, id := range fm.ids {
			if p, ok := r.previews[id]; ok {
				stale = append(stale, p)
				delete(r.previews, id)
			}
		}
		delete(r.forms, key)
	}
	r.mu.Unlock()

	for _, p := range stale {
		p.Release()
	}
	return len(stale)
}

// Len returns the number of staged previews.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.previews)
}
