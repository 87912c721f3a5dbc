// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

import "github.com/chewxy/math32"

// FrustumParams describes a view frustum along the local +X axis.
type FrustumParams struct {
	Near        float32
	Far         float32
	HFOV        float32
	AspectRatio float32
}

// Corners returns the eight frustum corners in the local frame: the near
// plane first, then the far plane, each ordered top-left, bottom-left,
// bottom-right, top-right as seen from the origin.
func (f FrustumParams) Corners() [8]Vec3 {
	var out [8]Vec3
	aspect := f.AspectRatio
	if aspect <= 0 {
		aspect = 1
	}
	t := math32.Tan(f.HFOV / 2)
	for i, d := range [2]float32{f.Near, f.Far} {
		hw := d * t
		hh := hw / aspect
		out[i*4+0] = V3(d, hw, hh)
		out[i*4+1] = V3(d, hw, -hh)
		out[i*4+2] = V3(d, -hw, -hh)
		out[i*4+3] = V3(d, -hw, hh)
	}
	return out
}

// FrustumVisual draws the outline of a view frustum. It is a Visual and
// can be placed in the tree like one.
type FrustumVisual struct {
	*Visual
	params FrustumParams
}

// Params returns the frustum parameters.
func (f *FrustumVisual) Params() FrustumParams { return f.params }

// SetNearClipPlane sets the near distance.
func (f *FrustumVisual) SetNearClipPlane(near float32) { f.params.Near = near }

// SetFarClipPlane sets the far distance.
func (f *FrustumVisual) SetFarClipPlane(far float32) { f.params.Far = far }

// SetHFOV sets the horizontal field of view in radians.
func (f *FrustumVisual) SetHFOV(hfov float32) { f.params.HFOV = hfov }

// SetAspectRatio sets the width to height ratio.
func (f *FrustumVisual) SetAspectRatio(r float32) { f.params.AspectRatio = r }

var _ Node = (*FrustumVisual)(nil)
