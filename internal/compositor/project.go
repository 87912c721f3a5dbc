// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/rendering"
)

// point is a position in work-image pixels.
type point struct {
	x, y float32
}

// projector maps world points through a pinhole camera looking along its
// local +X axis, with +Y to the left and +Z up.
type projector struct {
	eye    rendering.Vec3
	inv    rendering.Quat
	fx, fy float32
	cx, cy float32
	near   float32
	far    float32
	w, h   float32
}

func newProjector(cam rendering.CameraView, w, h int) projector {
	hfov := cam.HFOV
	if hfov <= 0 || hfov >= math32.Pi {
		hfov = rendering.DefaultHFOV
	}
	fx := float32(w) / 2 / math32.Tan(hfov/2)
	fy := fx
	if cam.AspectRatio > 0 {
		fy = fx * float32(w) / float32(h) / cam.AspectRatio
	}
	near := cam.Near
	if near <= 0 {
		near = 0.01
	}
	far := cam.Far
	if far <= near {
		far = math32.Inf(1)
	}
	return projector{
		eye:  cam.World.Position,
		inv:  cam.World.Rotation.Inverse(),
		fx:   fx,
		fy:   fy,
		cx:   float32(w) / 2,
		cy:   float32(h) / 2,
		near: near,
		far:  far,
		w:    float32(w),
		h:    float32(h),
	}
}

// toCamera returns p in the camera frame.
func (p *projector) toCamera(v rendering.Vec3) rendering.Vec3 {
	return p.inv.Rotate(v.Sub(p.eye))
}

func (p *projector) inRange(depth float32) bool {
	return depth >= p.near && depth <= p.far
}

// project maps a camera-frame point with positive depth to pixels.
func (p *projector) project(c rendering.Vec3) point {
	return point{
		x: p.cx - p.fx*c.Y/c.X,
		y: p.cy - p.fy*c.Z/c.X,
	}
}

// uv returns the normalized image coordinates of a world point, clamped
// to [0, 1]. Points behind the camera map to the image center.
func (p *projector) uv(v rendering.Vec3) (u, w float32) {
	c := p.toCamera(v)
	if c.X <= 0 {
		return 0.5, 0.5
	}
	pt := p.project(c)
	return clampUnit(pt.x / p.w), clampUnit(pt.y / p.h)
}

// clipSegment clips a camera-frame segment to the near plane. ok is false
// when the segment lies entirely behind it.
func (p *projector) clipSegment(a, b rendering.Vec3) (rendering.Vec3, rendering.Vec3, bool) {
	if a.X < p.near && b.X < p.near {
		return a, b, false
	}
	if a.X < p.near {
		a = a.Add(b.Sub(a).Mul((p.near - a.X) / (b.X - a.X)))
	} else if b.X < p.near {
		b = b.Add(a.Sub(b).Mul((p.near - b.X) / (a.X - b.X)))
	}
	return a, b, true
}

func clampUnit(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}
