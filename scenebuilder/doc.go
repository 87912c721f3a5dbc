// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scenebuilder populates scenes with a fixed palette of materials
// and primitives for visual checks of a rendering backend.
//
// A Builder applies an ordered list of decorators to each scene it is
// given. Each decorator may add objects, pose the builder's cameras and
// animate the scene from an explicit Clock:
//
//	b := scenebuilder.New(scenebuilder.DefaultConfig(), scenebuilder.AllShapesScene()...)
//	if err := b.SetScenes(scene); err != nil {
//	    return err
//	}
//	b.SetCameras(camera)
//	if err := b.BuildScenes(); err != nil {
//	    return err
//	}
//	for range frames {
//	    if err := b.UpdateScenes(); err != nil {
//	        return err
//	    }
//	    img, err := camera.Capture()
//	    ...
//	}
//
// The builder holds non-owning references to its scenes and cameras and
// must be driven from the goroutine that owns them.
package scenebuilder
