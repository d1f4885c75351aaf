// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package reorder implements drag-to-reorder for an ordered list with an
// optimistic local update, a single commit of the final order and a reload
// of the authoritative order when the commit fails.
package reorder

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Item is anything that can be placed in a List.
type Item interface {
	OrderKey() string
}

// Committer persists a complete order map (key to zero-based position).
type Committer interface {
	CommitOrder(ctx context.Context, order map[string]int) error
}

// Loader fetches the authoritative order after a failed commit.
type Loader[T Item] interface {
	LoadOrder(ctx context.Context) ([]T, error)
}

var (
	ErrNotDragging     = errors.New("reorder: no drag in progress")
	ErrAlreadyDragging = errors.New("reorder: drag already in progress")
	ErrIndexOutOfRange = errors.New("reorder: index out of range")
)

// State is the drag state of a List.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// List is an ordered list with a drag state machine. It is not safe for
// concurrent use.
type List[T Item] struct {
	items  []T
	state  State
	source int

	// before is the order at DragStart, restored when a failed commit
	// cannot be followed by a reload.
	before []T

	committer Committer
	loader    Loader[T]
}

// New creates an idle list over a copy of items.
func New[T Item](items []T, c Committer, l Loader[T]) *List[T] {
	return &List[T]{items: slices.Clone(items), committer: c, loader: l}
}

// Items returns the current (possibly optimistic) order.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// State returns the current drag state.
func (l *List[T]) State() State { return l.state }

// Source returns the index of the dragged element while dragging.
func (l *List[T]) Source() (int, bool) {
	return l.source, l.state == Dragging
}

func (l *List[T]) inRange(i int) bool {
	return i >= 0 && i < len(l.items)
}

// DragStart records i as the dragged element.
func (l *List[T]) DragStart(i int) error {
	if l.state == Dragging {
		return ErrAlreadyDragging
	}
	if !l.inRange(i) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	l.state = Dragging
	l.source = i
	l.before = slices.Clone(l.items)
	return nil
}

// DragOver moves the dragged element to position j in the local order.
// The source index follows the element so consecutive moves compose.
// Hovering over the source itself is a no-op.
func (l *List[T]) DragOver(j int) error {
	if l.state != Dragging {
		return ErrNotDragging
	}
	if !l.inRange(j) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, j)
	}
	if j == l.source {
		return nil
	}
	l.move(l.source, j)
	l.source = j
	return nil
}

// Cancel abandons a drag without committing. The local order keeps any
// moves already made.
func (l *List[T]) Cancel() {
	l.state = Idle
}

// DragEnd commits the full order map in one call and returns to Idle. If
// the commit fails the local order is replaced with the authoritative order
// from the Loader and the commit error is returned, joined with any reload
// error. When there is no authoritative order to reload, the order from
// before the drag is put back.
func (l *List[T]) DragEnd(ctx context.Context) error {
	if l.state != Dragging {
		return ErrNotDragging
	}
	l.state = Idle
	err := l.commit(ctx)
	l.before = nil
	return err
}

// Move relocates the element at from to position to and commits the result.
func (l *List[T]) Move(ctx context.Context, from, to int) error {
	if err := l.DragStart(from); err != nil {
		return err
	}
	if err := l.DragOver(to); err != nil {
		l.Cancel()
		return err
	}
	return l.DragEnd(ctx)
}

// OrderMap returns the dense zero-based position of every element.
func (l *List[T]) OrderMap() map[string]int {
	order := make(map[string]int, len(l.items))
	for i, it := range l.items {
		order[it.OrderKey()] = i
	}
	return order
}

func (l *List[T]) commit(ctx context.Context) error {
	if l.committer == nil {
		return nil
	}
	err := l.committer.CommitOrder(ctx, l.OrderMap())
	if err == nil {
		return nil
	}

	err = fmt.Errorf("commit order: %w", err)
	if l.loader == nil {
		l.items = l.before
		return err
	}
	items, loadErr := l.loader.LoadOrder(ctx)
	if loadErr != nil {
		l.items = l.before
		return errors.Join(err, fmt.Errorf("reload order: %w", loadErr))
	}
	l.items = slices.Clone(items)
	return err
}

func (l *List[T]) move(from, to int) {
	it := l.items[from]
	if from < to {
		copy(l.items[from:to], l.items[from+1:to+1])
	} else {
		copy(l.items[to+1:from+1], l.items[to:from])
	}
	l.items[to] = it
}
