// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

// Node is an object with a local pose that can be placed in the visual
// tree. Visuals, lights and cameras are nodes.
type Node interface {
	Object

	// Parent returns the parent visual, or nil for detached nodes and the
	// root visual.
	Parent() *Visual

	LocalPose() Pose
	SetLocalPose(p Pose)
	LocalPosition() Vec3
	SetLocalPosition(p Vec3)
	LocalRotation() Quat
	SetLocalRotation(q Quat)
	LocalScale() Vec3
	SetLocalScale(s Vec3)

	// LocalTransform returns the local pose and scale.
	LocalTransform() Transform

	// WorldTransform composes the ancestor chain. It is recomputed on
	// every call.
	WorldTransform() Transform
	WorldPose() Pose
	WorldPosition() Vec3
	WorldScale() Vec3

	base() *node
}

// node is the tree and pose state shared by all Node implementations.
type node struct {
	object
	parent *Visual
	local  Transform
}

func newNode(o object) node {
	return node{object: o, local: IdentityTransform}
}

func (n *node) base() *node { return n }

// Parent returns the parent visual.
func (n *node) Parent() *Visual { return n.parent }

// LocalPose returns the pose relative to the parent.
func (n *node) LocalPose() Pose { return n.local.Pose }

// SetLocalPose sets the pose relative to the parent.
func (n *node) SetLocalPose(p Pose) { n.local.Pose = p }

// LocalPosition returns the position relative to the parent.
func (n *node) LocalPosition() Vec3 { return n.local.Position }

// SetLocalPosition sets the position relative to the parent.
func (n *node) SetLocalPosition(p Vec3) { n.local.Position = p }

// LocalRotation returns the rotation relative to the parent.
func (n *node) LocalRotation() Quat { return n.local.Rotation }

// SetLocalRotation sets the rotation relative to the parent.
func (n *node) SetLocalRotation(q Quat) { n.local.Rotation = q }

// LocalScale returns the scale relative to the parent.
func (n *node) LocalScale() Vec3 { return n.local.Scale }

// SetLocalScale sets the scale relative to the parent.
func (n *node) SetLocalScale(s Vec3) { n.local.Scale = s }

// LocalTransform returns the local pose and scale.
func (n *node) LocalTransform() Transform { return n.local }

// WorldTransform composes the transforms from the topmost ancestor down
// to n.
func (n *node) WorldTransform() Transform {
	chain := []*node{n}
	for p := n.parent; p != nil; p = p.parent {
		chain = append(chain, &p.node)
	}
	world := IdentityTransform
	for i := len(chain) - 1; i >= 0; i-- {
		world = world.Compose(chain[i].local)
	}
	return world
}

// WorldPose returns the world position and rotation.
func (n *node) WorldPose() Pose { return n.WorldTransform().Pose }

// WorldPosition returns the world position.
func (n *node) WorldPosition() Vec3 { return n.WorldTransform().Position }

// WorldScale returns the world scale.
func (n *node) WorldScale() Vec3 { return n.WorldTransform().Scale }

// isAncestorOf reports whether n is c or one of c's ancestors.
func (n *node) isAncestorOf(c *node) bool {
	for a := c; a != nil; {
		if a == n {
			return true
		}
		if a.parent == nil {
			return false
		}
		a = &a.parent.node
	}
	return false
}

// detach removes n from its parent's children.
func (n *node) detach() {
	if n.parent == nil {
		return
	}
	n.parent.dropChild(n)
	n.parent = nil
}
