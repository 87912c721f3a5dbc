// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import "errors"

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Backend names.
const (
	// BackendClassic is the fixed-function pipeline. It supersamples for
	// anti-aliasing and does not support frustum visuals.
	BackendClassic = "classic"

	// BackendWorkspace is the compositor pipeline on a wgpu HAL device.
	// It uses multisampled attachments and does not support text.
	BackendWorkspace = "workspace"
)
