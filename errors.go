// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

import "errors"

// Errors returned by scene, object and render-target operations.
// Backend failures are wrapped with %w so errors.Is keeps working.
var (
	// ErrDuplicate is returned when an id or name already exists in a store.
	ErrDuplicate = errors.New("rendering: duplicate identity")

	// ErrUnknownReference is returned when a name or id resolves to nothing.
	ErrUnknownReference = errors.New("rendering: unknown reference")

	// ErrInvalidTopology is returned when a parent/child change would break the tree.
	ErrInvalidTopology = errors.New("rendering: invalid topology")

	// ErrUnsupported is returned by backends for object kinds they cannot create.
	ErrUnsupported = errors.New("rendering: unsupported by backend")

	// ErrNotBuilt is returned when rendering a target that is not built or is dirty.
	ErrNotBuilt = errors.New("rendering: render target not built")

	// ErrNotRendered is returned when copying from a target that never rendered.
	ErrNotRendered = errors.New("rendering: render target never rendered")

	// ErrStale is returned when copying from a target changed since its last frame.
	ErrStale = errors.New("rendering: render target changed since last frame")

	// ErrNoCamera is returned when building a target without a camera.
	ErrNoCamera = errors.New("rendering: render target has no camera")

	// ErrDestroyed is returned when using an object after Destroy.
	ErrDestroyed = errors.New("rendering: object destroyed")

	// ErrNotInitialized is returned when a scene is used before Init.
	ErrNotInitialized = errors.New("rendering: scene not initialized")

	// ErrInvalidArgument is returned for out-of-range or mismatched arguments.
	ErrInvalidArgument = errors.New("rendering: invalid argument")
)
