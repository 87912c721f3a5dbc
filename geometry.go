// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

import "fmt"

// Geometry is a shape attached to a visual. A geometry belongs to at most
// one visual and is destroyed with it.
type Geometry interface {
	Object

	// Kind returns the geometry kind (KindBox, KindSphere, ...).
	Kind() ObjectKind

	// Parent returns the visual the geometry is attached to, or nil.
	Parent() *Visual

	// Material returns the material set on the geometry, or nil.
	Material() *Material

	// SetMaterial resolves name against the scene's material store.
	SetMaterial(name string) error

	geom() *geometry
}

type geometry struct {
	object
	parent   *Visual
	material *Material
}

func (g *geometry) geom() *geometry { return g }

// Parent returns the owning visual.
func (g *geometry) Parent() *Visual { return g.parent }

// Material returns the geometry material.
func (g *geometry) Material() *Material { return g.material }

// SetMaterial sets the geometry material by registered name.
func (g *geometry) SetMaterial(name string) error {
	if err := g.checkAlive(); err != nil {
		return err
	}
	m, ok := g.scene.Material(name)
	if !ok {
		return fmt.Errorf("%w: material %q", ErrUnknownReference, name)
	}
	g.material = m
	return nil
}

func (g *geometry) destroy() error {
	if g.parent != nil {
		g.parent.dropGeometry(g)
		g.parent = nil
	}
	return g.release()
}

// Shape is a primitive geometry: box, cone, cylinder, plane or sphere.
// Primitives are unit sized and centered on the origin; scale the owning
// visual to resize them.
type Shape struct {
	geometry
}

// Destroy detaches the shape and releases it.
func (s *Shape) Destroy() error { return s.destroy() }

// Mesh is a geometry loaded by the backing engine from an opaque resource
// path.
type Mesh struct {
	geometry
	path string
}

// Path returns the mesh resource path.
func (m *Mesh) Path() string { return m.path }

// Destroy detaches the mesh and releases it.
func (m *Mesh) Destroy() error { return m.destroy() }

// Text is a camera-facing text label.
type Text struct {
	geometry
	text       string
	charHeight float32
}

// Text returns the displayed string.
func (t *Text) Text() string { return t.text }

// SetText sets the displayed string.
func (t *Text) SetText(s string) { t.text = s }

// CharHeight returns the glyph height in world units.
func (t *Text) CharHeight() float32 { return t.charHeight }

// SetCharHeight sets the glyph height in world units.
func (t *Text) SetCharHeight(h float32) { t.charHeight = h }

// Destroy detaches the text and releases it.
func (t *Text) Destroy() error { return t.destroy() }

var (
	_ Geometry = (*Shape)(nil)
	_ Geometry = (*Mesh)(nil)
	_ Geometry = (*Text)(nil)
)
