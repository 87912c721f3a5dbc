// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scenebuilder

import (
	"fmt"

	"github.com/gogpu/rendering"
)

// Names of the palette materials.
const (
	Red    = "Red"
	White  = "White"
	Green  = "Green"
	Blue   = "Blue"
	Yellow = "Yellow"
)

// Prefixes of the derived palette materials. "Texture" + base is the base
// material with the configured texture; "Reflect" + base adds
// reflectivity on top of that.
const (
	TexturePrefix = "Texture"
	ReflectPrefix = "Reflect"
)

type paletteEntry struct {
	name    string
	ambient rendering.Color
	diffuse rendering.Color
}

var palette = []paletteEntry{
	{Red, rendering.RGB(0.3, 0, 0), rendering.RGB(0.8, 0, 0)},
	{White, rendering.RGB(0.8, 0.8, 0.8), rendering.RGB(0.6, 0.6, 0.6)},
	{Green, rendering.RGB(0, 0.3, 0), rendering.RGB(0, 0.8, 0)},
	{Blue, rendering.RGB(0, 0, 0.3), rendering.RGB(0, 0, 0.8)},
	{Yellow, rendering.RGB(0.3, 0.3, 0), rendering.RGB(0.8, 0.8, 0)},
}

// BaseMaterials returns the base palette names in derivation order.
func BaseMaterials() []string {
	return []string{Blue, Green, Red, White, Yellow}
}

// MaterialNames returns every name RegisterMaterials registers.
func MaterialNames() []string {
	names := make([]string, 0, 3*len(palette))
	for _, p := range palette {
		names = append(names, p.name)
	}
	for _, base := range BaseMaterials() {
		names = append(names, TexturePrefix+base)
	}
	for _, base := range BaseMaterials() {
		names = append(names, ReflectPrefix+base)
	}
	return names
}

// RegisterMaterials registers the palette in s. Names that are already
// registered are left untouched, so calling it again is harmless. Each
// palette material also stays registered under its generated name.
func (b *Builder) RegisterMaterials(s *rendering.Scene) error {
	for _, p := range palette {
		if s.MaterialRegistered(p.name) {
			continue
		}
		m, err := s.CreateMaterial()
		if err != nil {
			return fmt.Errorf("scenebuilder: material %s: %w", p.name, err)
		}
		m.SetAmbient(p.ambient)
		m.SetDiffuse(p.diffuse)
		m.SetSpecular(rendering.RGB(0.8, 0.8, 0.8))
		m.SetShininess(50)
		m.SetReflectivity(0)
		if err := s.RegisterMaterial(p.name, m); err != nil {
			return err
		}
	}

	if err := b.derive(s, "", TexturePrefix, func(m *rendering.Material) {
		m.SetTexture(b.cfg.TexturePath)
	}); err != nil {
		return err
	}
	return b.derive(s, TexturePrefix, ReflectPrefix, func(m *rendering.Material) {
		m.SetReflectivity(b.cfg.Reflectivity)
	})
}

// derive registers child+base as a modified clone of parent+base for every
// base material.
func (b *Builder) derive(s *rendering.Scene, parent, child string, modify func(*rendering.Material)) error {
	for _, base := range BaseMaterials() {
		name := child + base
		if s.MaterialRegistered(name) {
			continue
		}
		src, ok := s.Material(parent + base)
		if !ok {
			return fmt.Errorf("scenebuilder: material %s: %w: parent %s",
				name, rendering.ErrUnknownReference, parent+base)
		}
		m, err := src.Clone()
		if err != nil {
			return fmt.Errorf("scenebuilder: material %s: %w", name, err)
		}
		modify(m)
		if err := s.RegisterMaterial(name, m); err != nil {
			return err
		}
	}
	return nil
}
