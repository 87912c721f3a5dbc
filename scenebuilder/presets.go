// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scenebuilder

import (
	"maps"
	"slices"
)

// Default grid of ShadowScene.
const (
	DefaultShadowLights = 2
	DefaultShadowDist   = 1
)

// SimpleScene is a sphere on a plane under a directional light.
func SimpleScene() []Decorator {
	return []Decorator{Base(), Simple()}
}

// AllShapesScene adds a cylinder, a cone and a box to SimpleScene.
func AllShapesScene() []Decorator {
	return append(SimpleScene(), AllShapes())
}

// TextureScene is AllShapesScene with textured materials.
func TextureScene() []Decorator {
	return append(AllShapesScene(), Texture())
}

// ReflectionScene is TextureScene with reflective materials.
func ReflectionScene() []Decorator {
	return append(TextureScene(), Reflection())
}

// ShadowScene is SimpleScene lit by an n×n×n grid of point lights.
func ShadowScene(n int, dist float32) []Decorator {
	return append(SimpleScene(), Shadow(n, dist))
}

var presets = map[string]func() []Decorator{
	"simple":     SimpleScene,
	"all-shapes": AllShapesScene,
	"texture":    TextureScene,
	"reflection": ReflectionScene,
	"shadow": func() []Decorator {
		return ShadowScene(DefaultShadowLights, DefaultShadowDist)
	},
}

// Preset returns the decorators of a named stock scene.
func Preset(name string) ([]Decorator, bool) {
	f, ok := presets[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// PresetNames returns the stock scene names in sorted order.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(presets))
}
