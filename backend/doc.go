// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend provides the registry of rendering drivers.
//
// Driver packages register a factory from their init() function, so a
// program selects the backends it links by importing them:
//
//	import (
//		_ "github.com/gogpu/rendering/backend/classic"
//		_ "github.com/gogpu/rendering/backend/workspace"
//	)
//
// # Backend Selection
//
// Use Default() to get the best available driver, or Get() to request
// a specific one by name:
//
//	drv := backend.Default()
//	drv := backend.Get(backend.BackendClassic)
//
// Open and OpenConfig wrap the lookup and rendering.NewEngine:
//
//	engine, err := backend.Open("workspace", rendering.WithImageSize(640, 480))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer engine.Fini()
//
// # Available Backends
//
//   - "workspace": compositor pipeline on a wgpu HAL device (preferred)
//   - "classic": fixed-function CPU pipeline
package backend
