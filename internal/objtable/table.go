// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package objtable tracks the backing objects a scene manager has created.
package objtable

import (
	"fmt"
	"sync"

	"github.com/gogpu/rendering"
)

type key struct {
	kind rendering.ObjectKind
	id   uint
}

// Table maps (kind, id) pairs to object names.
//
// Thread safety: Table is safe for concurrent use.
type Table struct {
	mu      sync.Mutex
	objects map[key]string
}

// New returns an empty table.
func New() *Table {
	return &Table{objects: make(map[key]string)}
}

// Add records an object. A (kind, id) pair that is already present fails
// with rendering.ErrDuplicate.
func (t *Table) Add(kind rendering.ObjectKind, id uint, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	k := key{kind, id}
	if prev, ok := t.objects[k]; ok {
		return fmt.Errorf("%w: %s %d already backs %q", rendering.ErrDuplicate, kind, id, prev)
	}
	t.objects[k] = name
	return nil
}

// Remove forgets an object. Unknown pairs fail with
// rendering.ErrUnknownReference.
func (t *Table) Remove(kind rendering.ObjectKind, id uint) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	k := key{kind, id}
	if _, ok := t.objects[k]; !ok {
		return fmt.Errorf("%w: %s %d", rendering.ErrUnknownReference, kind, id)
	}
	delete(t.objects, k)
	return nil
}

// Name returns the name of an object.
func (t *Table) Name(kind rendering.ObjectKind, id uint) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	name, ok := t.objects[key{kind, id}]
	return name, ok
}

// Len returns the number of objects.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.objects)
}

// Count returns the number of objects of one kind.
func (t *Table) Count(kind rendering.ObjectKind) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for k := range t.objects {
		if k.kind == kind {
			n++
		}
	}
	return n
}

// Clear forgets every object and returns how many there were.
func (t *Table) Clear() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := len(t.objects)
	clear(t.objects)
	return n
}
