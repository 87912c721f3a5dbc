// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package rendering provides an engine-neutral scene and render-target API
// on top of swappable backing engines.
//
// # Overview
//
// Client code builds scenes out of cameras, lights, visuals, materials and
// render targets. Every object is allocated by the backing engine through
// the [Driver] capability interface, so the same client code runs on any
// registered backend.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/rendering"
//	    "github.com/gogpu/rendering/backend/classic"
//	)
//
//	engine, err := rendering.NewEngine(classic.New())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Fini()
//
//	scene, _ := engine.CreateScene(rendering.WithName("demo"))
//	sphere, _ := scene.CreateVisual()
//	geom, _ := scene.CreateSphere()
//	_ = sphere.AddGeometry(geom)
//	_ = scene.RootVisual().AddChild(sphere)
//
//	camera, _ := scene.CreateCamera()
//	_ = scene.RootVisual().AddChild(camera)
//	img, _ := camera.Capture()
//
// # Backends
//
// Backends live under backend/ and register themselves in the backend
// registry on import:
//   - classic: CPU compositor with supersampling anti-aliasing
//   - workspace: per-target GPU workspace on a wgpu HAL device
//
// # Coordinate System
//
// Right-handed, Z up. Cameras look along their local +X axis with +Y to
// the left. Rotations are roll, pitch, yaw in radians.
//
// # Threading
//
// Scene objects are not safe for concurrent use. All mutation of a scene
// and its render targets must happen on one goroutine. [SetLogger],
// [Logger] and the backend registry are safe for concurrent use.
package rendering

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
