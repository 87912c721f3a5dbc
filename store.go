// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

import "fmt"

// store is a per-category collection of objects with unique ids and names.
// Lookups are O(1); iteration follows insertion order.
type store[T Object] struct {
	category string
	byID     map[uint]T
	byName   map[string]T
	order    []T
}

func newStore[T Object](category string) *store[T] {
	return &store[T]{
		category: category,
		byID:     make(map[uint]T),
		byName:   make(map[string]T),
	}
}

// check fails with ErrDuplicate if id or name is taken.
func (s *store[T]) check(id uint, name string) error {
	if _, ok := s.byID[id]; ok {
		return fmt.Errorf("%w: %s id %d", ErrDuplicate, s.category, id)
	}
	if _, ok := s.byName[name]; ok {
		return fmt.Errorf("%w: %s name %q", ErrDuplicate, s.category, name)
	}
	return nil
}

func (s *store[T]) add(v T) error {
	if err := s.check(v.ID(), v.Name()); err != nil {
		return err
	}
	s.byID[v.ID()] = v
	s.byName[v.Name()] = v
	s.order = append(s.order, v)
	return nil
}

// remove deletes v if it is the object stored under its id.
func (s *store[T]) remove(v T) bool {
	cur, ok := s.byID[v.ID()]
	if !ok || Object(cur) != Object(v) {
		return false
	}
	delete(s.byID, v.ID())
	delete(s.byName, v.Name())
	for i, o := range s.order {
		if Object(o) == Object(v) {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *store[T]) get(id uint) (T, bool) {
	v, ok := s.byID[id]
	return v, ok
}

func (s *store[T]) lookup(name string) (T, bool) {
	v, ok := s.byName[name]
	return v, ok
}

func (s *store[T]) len() int { return len(s.order) }

// all returns a copy of the stored objects in insertion order.
func (s *store[T]) all() []T {
	out := make([]T, len(s.order))
	copy(out, s.order)
	return out
}
