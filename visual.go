// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

import "fmt"

// Visual is a renderable node: geometries, a material and children.
//
// Visuals form a strict tree under the scene's root visual. Only nodes
// reachable from the root are rendered.
type Visual struct {
	node
	children   []Node
	geometries []Geometry
	material   *Material
	visible    bool
	root       bool
	frustum    *FrustumVisual
}

func newVisual(o object) *Visual {
	return &Visual{node: newNode(o), visible: true}
}

// AddChild attaches child below v. A child that already has a parent is
// moved. Adding v to itself, adding one of v's ancestors, or adding the
// root visual fails with ErrInvalidTopology and leaves the tree unchanged.
func (v *Visual) AddChild(child Node) error {
	if err := v.checkAlive(); err != nil {
		return err
	}
	if child == nil {
		return fmt.Errorf("%w: nil child", ErrInvalidArgument)
	}
	c := child.base()
	if err := c.checkAlive(); err != nil {
		return err
	}
	if c.scene != v.scene {
		return fmt.Errorf("%w: %q belongs to another scene", ErrInvalidArgument, c.name)
	}
	if c.isAncestorOf(&v.node) {
		return fmt.Errorf("%w: %q cannot be a child of %q", ErrInvalidTopology, c.name, v.name)
	}
	if rv := visualOf(child); rv != nil && rv.root {
		return fmt.Errorf("%w: root visual cannot be a child", ErrInvalidTopology)
	}
	if c.parent == v {
		return nil
	}
	c.detach()
	c.parent = v
	v.children = append(v.children, child)
	return nil
}

// RemoveChild detaches child from v.
func (v *Visual) RemoveChild(child Node) error {
	if child == nil || child.base().parent != v {
		return fmt.Errorf("%w: not a child of %q", ErrUnknownReference, v.name)
	}
	child.base().detach()
	return nil
}

// RemoveChildren detaches every child of v.
func (v *Visual) RemoveChildren() {
	for _, c := range v.Children() {
		c.base().detach()
	}
}

// Children returns a copy of v's children in insertion order.
func (v *Visual) Children() []Node {
	out := make([]Node, len(v.children))
	copy(out, v.children)
	return out
}

// ChildCount returns the number of direct children.
func (v *Visual) ChildCount() int { return len(v.children) }

// ChildByName returns the direct child with the given name.
func (v *Visual) ChildByName(name string) (Node, bool) {
	for _, c := range v.children {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// HasChild reports whether child is a direct child of v.
func (v *Visual) HasChild(child Node) bool {
	return child != nil && child.base().parent == v
}

func (v *Visual) dropChild(n *node) {
	for i, c := range v.children {
		if c.base() == n {
			v.children = append(v.children[:i], v.children[i+1:]...)
			return
		}
	}
}

// AddGeometry attaches g to v. The geometry's material defaults to v's.
func (v *Visual) AddGeometry(g Geometry) error {
	if err := v.checkAlive(); err != nil {
		return err
	}
	if g == nil {
		return fmt.Errorf("%w: nil geometry", ErrInvalidArgument)
	}
	gb := g.geom()
	if err := gb.checkAlive(); err != nil {
		return err
	}
	if gb.scene != v.scene {
		return fmt.Errorf("%w: geometry %q belongs to another scene", ErrInvalidArgument, gb.name)
	}
	if gb.parent == v {
		return nil
	}
	if gb.parent != nil {
		return fmt.Errorf("%w: geometry %q already attached to %q", ErrInvalidTopology, gb.name, gb.parent.name)
	}
	gb.parent = v
	if gb.material == nil {
		gb.material = v.material
	}
	v.geometries = append(v.geometries, g)
	return nil
}

// RemoveGeometry detaches g from v without destroying it.
func (v *Visual) RemoveGeometry(g Geometry) error {
	if g == nil || g.geom().parent != v {
		return fmt.Errorf("%w: geometry not attached to %q", ErrUnknownReference, v.name)
	}
	v.dropGeometry(g.geom())
	g.geom().parent = nil
	return nil
}

func (v *Visual) dropGeometry(g *geometry) {
	for i, c := range v.geometries {
		if c.geom() == g {
			v.geometries = append(v.geometries[:i], v.geometries[i+1:]...)
			return
		}
	}
}

// Geometries returns a copy of v's geometries.
func (v *Visual) Geometries() []Geometry {
	out := make([]Geometry, len(v.geometries))
	copy(out, v.geometries)
	return out
}

// GeometryCount returns the number of attached geometries.
func (v *Visual) GeometryCount() int { return len(v.geometries) }

// Material returns the material last set on v, or nil.
func (v *Visual) Material() *Material { return v.material }

// SetMaterial resolves name against the scene's material store and applies
// the material to v, its geometries and its child visuals. An unregistered
// name fails with ErrUnknownReference and changes nothing.
func (v *Visual) SetMaterial(name string) error {
	if err := v.checkAlive(); err != nil {
		return err
	}
	m, ok := v.scene.Material(name)
	if !ok {
		return fmt.Errorf("%w: material %q", ErrUnknownReference, name)
	}
	v.applyMaterial(m)
	return nil
}

func (v *Visual) applyMaterial(m *Material) {
	v.material = m
	for _, g := range v.geometries {
		g.geom().material = m
	}
	for _, c := range v.children {
		if cv := visualOf(c); cv != nil {
			cv.applyMaterial(m)
		}
	}
}

// Visible reports whether v and its subtree are drawn.
func (v *Visual) Visible() bool { return v.visible }

// SetVisible shows or hides v and its subtree.
func (v *Visual) SetVisible(visible bool) { v.visible = visible }

// Destroy releases v and its geometries. Children are detached, not
// destroyed. The root visual can only be destroyed with its scene.
func (v *Visual) Destroy() error {
	if v.root {
		return fmt.Errorf("%w: root visual is owned by the scene", ErrInvalidArgument)
	}
	return v.destroy(false)
}

func (v *Visual) destroy(recursive bool) error {
	if err := v.checkAlive(); err != nil {
		return err
	}
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, c := range v.Children() {
		if !recursive {
			c.base().detach()
			continue
		}
		if cv := visualOf(c); cv != nil {
			keep(cv.destroy(true))
		} else {
			keep(c.Destroy())
		}
	}
	for _, g := range v.Geometries() {
		keep(g.geom().destroy())
	}
	v.node.detach()
	keep(v.release())
	if !v.root {
		v.scene.visuals.remove(v)
	}
	return firstErr
}

// visualOf returns the *Visual behind n, or nil if n is not a visual.
func visualOf(n Node) *Visual {
	switch t := n.(type) {
	case *Visual:
		return t
	case *FrustumVisual:
		return t.Visual
	}
	return nil
}

var _ Node = (*Visual)(nil)
