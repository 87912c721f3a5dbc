// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scenebuilder

// Clock is the animation time passed to update hooks.
type Clock struct {
	// Tick counts the updates applied so far.
	Tick uint64
}

// Next returns the clock one tick later.
func (c Clock) Next() Clock {
	return Clock{Tick: c.Tick + 1}
}
