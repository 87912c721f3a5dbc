// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/rendering"
)

// shade returns the flat color of a drawable at center seen from eye.
//
// The surface normal faces the viewer. Diffuse terms use wrapped Lambert
// (n.l/2 + 1/2) so lights behind a shape still model it. Alpha is the
// diffuse alpha.
func shade(m rendering.MaterialProperties, center, eye rendering.Vec3, ambient rendering.Color, lights []rendering.LightView) rendering.Color {
	if !m.Lighting {
		c := m.Diffuse.Add(m.Emissive)
		c.A = m.Diffuse.A
		return c.Clamp()
	}
	n := eye.Sub(center).Normalize()
	c := m.Emissive.Add(ambient.Mul(m.Ambient))
	for i := range lights {
		lv := &lights[i]
		l, k := incident(lv, center)
		if k <= 0 {
			continue
		}
		wrap := n.Dot(l)*0.5 + 0.5
		c = c.Add(m.Diffuse.Mul(lv.Diffuse).Scale(wrap * k))
		if m.Shininess > 0 {
			h := l.Add(n).Normalize()
			s := math32.Pow(math32.Max(n.Dot(h), 0), m.Shininess)
			c = c.Add(m.Specular.Mul(lv.Specular).Scale(s * k))
		}
	}
	c.A = m.Diffuse.A
	return c.Clamp()
}

// incident returns the unit direction from p towards the light and the
// light's intensity at p.
func incident(lv *rendering.LightView, p rendering.Vec3) (rendering.Vec3, float32) {
	if lv.Kind == rendering.KindDirectionalLight {
		return lv.Direction.Mul(-1).Normalize(), lv.Intensity
	}
	toLight := lv.Position.Sub(p)
	l := toLight.Normalize()
	k := lv.Intensity * lv.Attenuation.Factor(toLight.Length())
	if lv.Kind == rendering.KindSpotLight {
		k *= spotFactor(lv, l)
	}
	return l, k
}

// spotFactor is 1 inside the inner cone, 0 outside the outer cone and
// falls off between them.
func spotFactor(lv *rendering.LightView, l rendering.Vec3) float32 {
	cos := lv.Direction.Normalize().Dot(l.Mul(-1))
	angle := math32.Acos(math32.Max(-1, math32.Min(1, cos)))
	switch {
	case angle <= lv.InnerAngle:
		return 1
	case angle >= lv.OuterAngle:
		return 0
	}
	t := (lv.OuterAngle - angle) / (lv.OuterAngle - lv.InnerAngle)
	if lv.Falloff > 0 {
		t = math32.Pow(t, lv.Falloff)
	}
	return t
}
