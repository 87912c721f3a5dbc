// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package workspace provides the compositor rendering backend.
//
// Each render target gets a workspace: multisampled color and depth
// attachments allocated on a wgpu HAL device, a background pass encoded
// and submitted every frame, and the shared CPU compositor that produces
// the pixels Copy returns. Anti-aliasing levels above 1 use 4x MSAA.
// Text geometries are not supported.
//
// By default the driver opens the noop HAL device. A host that owns a
// device passes it in before the driver is opened:
//
//	drv := workspace.New()
//	if err := drv.SetDeviceProvider(host); err != nil {
//		log.Fatal(err)
//	}
//	engine, err := rendering.NewEngine(drv)
//
// Importing the package registers the "workspace" backend:
//
//	import _ "github.com/gogpu/rendering/backend/workspace"
package workspace
