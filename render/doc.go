// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the pixel and device plumbing shared by the
// rendering backends.
//
// # Key Principle
//
// A backend RECEIVES a GPU device from the host application when one is
// available, it does NOT have to create its own. DeviceHandle is the
// injection point.
//
// # Core Types
//
//   - DeviceHandle: GPU device access from the host application
//   - Target: where composed pixels go
//   - PixmapTarget: CPU-backed *image.RGBA target
//   - TextureDescriptor / WorkspaceAttachments: the texture set of a
//     render-target workspace (color, depth-stencil, resolve)
package render
