// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"slices"

	"github.com/chewxy/math32"

	"github.com/gogpu/rendering"
)

const (
	circleSegments = 24
	sphereRings    = 12
)

// Unit-size sample points of each shape, centered on the origin.
var (
	boxPoints      = boxSamples()
	spherePoints   = sphereSamples(sphereRings, circleSegments)
	cylinderPoints = cylinderSamples(circleSegments)
	conePoints     = coneSamples(circleSegments)
	planePoints    = []rendering.Vec3{
		rendering.V3(-0.5, -0.5, 0), rendering.V3(0.5, -0.5, 0),
		rendering.V3(0.5, 0.5, 0), rendering.V3(-0.5, 0.5, 0),
	}
)

// unitSamples returns the sample points of a geometry kind. Meshes are
// drawn as their unit bounding box.
func unitSamples(kind rendering.ObjectKind) []rendering.Vec3 {
	switch kind {
	case rendering.KindSphere:
		return spherePoints
	case rendering.KindCylinder:
		return cylinderPoints
	case rendering.KindCone:
		return conePoints
	case rendering.KindPlane:
		return planePoints
	default:
		return boxPoints
	}
}

func boxSamples() []rendering.Vec3 {
	pts := make([]rendering.Vec3, 0, 8)
	for _, x := range []float32{-0.5, 0.5} {
		for _, y := range []float32{-0.5, 0.5} {
			for _, z := range []float32{-0.5, 0.5} {
				pts = append(pts, rendering.V3(x, y, z))
			}
		}
	}
	return pts
}

func circle(segments int, radius, z float32) []rendering.Vec3 {
	pts := make([]rendering.Vec3, segments)
	for i := range pts {
		s, c := math32.Sincos(2 * math32.Pi * float32(i) / float32(segments))
		pts[i] = rendering.V3(radius*c, radius*s, z)
	}
	return pts
}

func sphereSamples(rings, segments int) []rendering.Vec3 {
	pts := []rendering.Vec3{rendering.V3(0, 0, 0.5), rendering.V3(0, 0, -0.5)}
	for i := 1; i < rings; i++ {
		s, c := math32.Sincos(math32.Pi * float32(i) / float32(rings))
		pts = append(pts, circle(segments, 0.5*s, 0.5*c)...)
	}
	return pts
}

func cylinderSamples(segments int) []rendering.Vec3 {
	return slices.Concat(circle(segments, 0.5, -0.5), circle(segments, 0.5, 0.5))
}

func coneSamples(segments int) []rendering.Vec3 {
	return append(circle(segments, 0.5, -0.5), rendering.V3(0, 0, 0.5))
}

// convexHull returns the hull of pts in counter-clockwise order using the
// monotone chain algorithm.
func convexHull(pts []point) []point {
	if len(pts) < 3 {
		return nil
	}
	p := slices.Clone(pts)
	slices.SortFunc(p, func(a, b point) int {
		switch {
		case a.x < b.x:
			return -1
		case a.x > b.x:
			return 1
		case a.y < b.y:
			return -1
		case a.y > b.y:
			return 1
		}
		return 0
	})
	cross := func(o, a, b point) float32 {
		return (a.x-o.x)*(b.y-o.y) - (a.y-o.y)*(b.x-o.x)
	}
	hull := make([]point, 0, 2*len(p))
	for _, pt := range p {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], pt) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, pt)
	}
	lower := len(hull) + 1
	for i := len(p) - 2; i >= 0; i-- {
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p[i]) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p[i])
	}
	hull = hull[:len(hull)-1]
	if len(hull) < 3 {
		return nil
	}
	return hull
}
