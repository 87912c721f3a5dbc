// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scenebuilder

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/rendering"
)

// Config holds the values shared by every decorator of a builder.
type Config struct {
	// Background is the scene background color set by Base.
	Background rendering.Color

	// Ambient is the scene ambient light set by Simple.
	Ambient rendering.Color

	// TexturePath is the image applied to the Texture* materials.
	TexturePath string

	// Reflectivity of the Reflect* materials.
	Reflectivity float32
}

// DefaultConfig returns the configuration of the stock scenes.
func DefaultConfig() Config {
	return Config{
		Background:   rendering.RGB(0.2, 0.2, 0.2),
		Ambient:      rendering.RGB(0.1, 0.1, 0.1),
		TexturePath:  "media/tiles.jpg",
		Reflectivity: 0.1,
	}
}

// Decorator is one layer of a scene. Hooks left nil are skipped.
type Decorator struct {
	// Name identifies the decorator in errors and logs.
	Name string

	// Build adds objects to a freshly cleared scene.
	Build func(s *rendering.Scene, cfg Config) error

	// ResetCamera poses a camera for the scene.
	ResetCamera func(c *rendering.Camera)

	// Update animates the scene.
	Update func(s *rendering.Scene, clock Clock) error
}

// Builder applies decorators in order to the scenes it is given.
type Builder struct {
	cfg        Config
	decorators []Decorator
	scenes     []*rendering.Scene
	cameras    []*rendering.Camera
	clock      Clock
}

// New returns a builder applying decorators in the given order.
func New(cfg Config, decorators ...Decorator) *Builder {
	return &Builder{cfg: cfg, decorators: slices.Clone(decorators)}
}

// Config returns the builder configuration.
func (b *Builder) Config() Config { return b.cfg }

// Name joins the decorator names.
func (b *Builder) Name() string {
	names := make([]string, len(b.decorators))
	for i, d := range b.decorators {
		names[i] = d.Name
	}
	return strings.Join(names, "+")
}

// Clock returns the time passed to the next update.
func (b *Builder) Clock() Clock { return b.clock }

// Scenes returns the scenes the builder populates.
func (b *Builder) Scenes() []*rendering.Scene { return slices.Clone(b.scenes) }

// Cameras returns the cameras the builder poses.
func (b *Builder) Cameras() []*rendering.Camera { return slices.Clone(b.cameras) }

// SetScenes replaces the scenes and registers the palette in each.
func (b *Builder) SetScenes(scenes ...*rendering.Scene) error {
	b.scenes = slices.Clone(scenes)
	for _, s := range b.scenes {
		if err := b.RegisterMaterials(s); err != nil {
			return err
		}
	}
	return nil
}

// SetCameras replaces the cameras and poses them.
func (b *Builder) SetCameras(cameras ...*rendering.Camera) {
	b.cameras = slices.Clone(cameras)
	b.ResetCameras()
}

// BuildScenes clears and rebuilds every scene and restarts the clock.
func (b *Builder) BuildScenes() error {
	for _, s := range b.scenes {
		if err := b.ClearScene(s); err != nil {
			return err
		}
		if err := b.BuildScene(s); err != nil {
			return err
		}
	}
	b.clock = Clock{}
	return nil
}

// BuildScene runs every Build hook on s.
func (b *Builder) BuildScene(s *rendering.Scene) error {
	for _, d := range b.decorators {
		if d.Build == nil {
			continue
		}
		if err := d.Build(s, b.cfg); err != nil {
			return fmt.Errorf("scenebuilder: build %s in %s: %w", d.Name, s.Name(), err)
		}
	}
	rendering.Logger().Debug("scenebuilder: scene built",
		"scene", s.Name(), "builder", b.Name(),
		"visuals", s.VisualCount(), "lights", s.LightCount())
	return nil
}

// ClearScene destroys the lights and visuals of s. Materials and cameras
// are kept.
func (b *Builder) ClearScene(s *rendering.Scene) error {
	return errors.Join(s.DestroyLights(), s.DestroyVisuals())
}

// ResetCameras poses every camera.
func (b *Builder) ResetCameras() {
	for _, c := range b.cameras {
		b.ResetCamera(c)
	}
}

// ResetCamera runs every ResetCamera hook on c.
func (b *Builder) ResetCamera(c *rendering.Camera) {
	for _, d := range b.decorators {
		if d.ResetCamera != nil {
			d.ResetCamera(c)
		}
	}
}

// UpdateScenes updates every scene with the builder clock, then advances
// the clock.
func (b *Builder) UpdateScenes() error {
	for _, s := range b.scenes {
		if err := b.UpdateScene(s, b.clock); err != nil {
			return err
		}
	}
	b.clock = b.clock.Next()
	return nil
}

// UpdateScene runs every Update hook on s at the given time.
func (b *Builder) UpdateScene(s *rendering.Scene, clock Clock) error {
	for _, d := range b.decorators {
		if d.Update == nil {
			continue
		}
		if err := d.Update(s, clock); err != nil {
			return fmt.Errorf("scenebuilder: update %s in %s: %w", d.Name, s.Name(), err)
		}
	}
	return nil
}
