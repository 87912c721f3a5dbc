// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

// Background is a solid clear color or a four-corner gradient.
type Background struct {
	Color Color

	// Gradient corners ordered top-left, bottom-left, top-right,
	// bottom-right. Used only when HasGradient is set.
	Gradient    [4]Color
	HasGradient bool
}

// Gradient corner indices.
const (
	TopLeft = iota
	BottomLeft
	TopRight
	BottomRight
)

// At returns the background color at normalized image coordinates,
// u from left to right and v from top to bottom.
func (b Background) At(u, v float32) Color {
	if !b.HasGradient {
		return b.Color
	}
	top := b.Gradient[TopLeft].Lerp(b.Gradient[TopRight], u)
	bottom := b.Gradient[BottomLeft].Lerp(b.Gradient[BottomRight], u)
	return top.Lerp(bottom, v)
}

// Frame is the scene snapshot a workspace renders. It is built from the
// visual tree reachable from the root at Render time.
type Frame struct {
	// Number counts frames rendered by the target, starting at 1.
	Number uint64

	Width, Height int

	Camera     CameraView
	Background Background
	Ambient    Color
	Drawables  []Drawable
	Lights     []LightView
}

// CameraView is the camera state of a frame.
type CameraView struct {
	World       Transform
	HFOV        float32
	AspectRatio float32
	Near        float32
	Far         float32
}

// Drawable is one geometry instance in world space.
type Drawable struct {
	ID       uint
	Name     string
	Kind     ObjectKind
	World    Transform
	Material MaterialProperties

	// Text is set for text geometries, MeshPath for meshes.
	Text     string
	MeshPath string

	// Frustum is set for frustum visuals.
	Frustum *FrustumParams
}

// LightView is one light in world space.
type LightView struct {
	ID          uint
	Kind        ObjectKind
	Position    Vec3
	Direction   Vec3
	Diffuse     Color
	Specular    Color
	Intensity   float32
	Attenuation Attenuation
	CastShadows bool
	InnerAngle  float32
	OuterAngle  float32
	Falloff     float32
}
