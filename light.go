// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

import "github.com/chewxy/math32"

// Light is a light source placed in the visual tree.
type Light interface {
	Node

	// Kind returns KindDirectionalLight, KindPointLight or KindSpotLight.
	Kind() ObjectKind

	DiffuseColor() Color
	SetDiffuseColor(c Color)
	SpecularColor() Color
	SetSpecularColor(c Color)
	Intensity() float32
	SetIntensity(i float32)
	CastShadows() bool
	SetCastShadows(cast bool)

	lightBase() *light
}

type light struct {
	node
	diffuse     Color
	specular    Color
	intensity   float32
	castShadows bool
}

func newLight(o object) light {
	return light{
		node:        newNode(o),
		diffuse:     White,
		specular:    White,
		intensity:   1,
		castShadows: true,
	}
}

func (l *light) lightBase() *light { return l }

// DiffuseColor returns the diffuse color.
func (l *light) DiffuseColor() Color { return l.diffuse }

// SetDiffuseColor sets the diffuse color.
func (l *light) SetDiffuseColor(c Color) { l.diffuse = c }

// SpecularColor returns the specular color.
func (l *light) SpecularColor() Color { return l.specular }

// SetSpecularColor sets the specular color.
func (l *light) SetSpecularColor(c Color) { l.specular = c }

// Intensity returns the intensity multiplier.
func (l *light) Intensity() float32 { return l.intensity }

// SetIntensity sets the intensity multiplier.
func (l *light) SetIntensity(i float32) { l.intensity = i }

// CastShadows reports whether the light casts shadows.
func (l *light) CastShadows() bool { return l.castShadows }

// SetCastShadows enables or disables shadow casting.
func (l *light) SetCastShadows(cast bool) { l.castShadows = cast }

func (l *light) destroy(self Light) error {
	if err := l.checkAlive(); err != nil {
		return err
	}
	l.node.detach()
	err := l.release()
	l.scene.lights.remove(self)
	return err
}

// DirectionalLight lights the scene from a direction, with no position.
type DirectionalLight struct {
	light
	direction Vec3
}

// Direction returns the light direction in the parent frame.
func (l *DirectionalLight) Direction() Vec3 { return l.direction }

// SetDirection sets the light direction in the parent frame.
func (l *DirectionalLight) SetDirection(d Vec3) { l.direction = d }

// Destroy detaches the light and releases it.
func (l *DirectionalLight) Destroy() error { return l.destroy(l) }

// Attenuation describes the falloff of positional lights.
type Attenuation struct {
	Range     float32
	Constant  float32
	Linear    float32
	Quadratic float32
}

// DefaultAttenuation is the attenuation of new positional lights.
var DefaultAttenuation = Attenuation{Range: 100, Constant: 1, Linear: 0, Quadratic: 0}

// Factor returns the attenuation at distance d, zero beyond Range.
func (a Attenuation) Factor(d float32) float32 {
	if a.Range > 0 && d > a.Range {
		return 0
	}
	den := a.Constant + a.Linear*d + a.Quadratic*d*d
	if den <= 0 {
		return 1
	}
	return 1 / den
}

// PointLight emits light in every direction from its position.
type PointLight struct {
	light
	attenuation Attenuation
}

// Attenuation returns the distance falloff.
func (l *PointLight) Attenuation() Attenuation { return l.attenuation }

// SetAttenuation sets the distance falloff.
func (l *PointLight) SetAttenuation(a Attenuation) { l.attenuation = a }

// Destroy detaches the light and releases it.
func (l *PointLight) Destroy() error { return l.destroy(l) }

// SpotLight emits a cone of light from its position along a direction.
type SpotLight struct {
	light
	direction   Vec3
	attenuation Attenuation
	innerAngle  float32
	outerAngle  float32
	falloff     float32
}

// Direction returns the cone axis in the parent frame.
func (l *SpotLight) Direction() Vec3 { return l.direction }

// SetDirection sets the cone axis in the parent frame.
func (l *SpotLight) SetDirection(d Vec3) { l.direction = d }

// Attenuation returns the distance falloff.
func (l *SpotLight) Attenuation() Attenuation { return l.attenuation }

// SetAttenuation sets the distance falloff.
func (l *SpotLight) SetAttenuation(a Attenuation) { l.attenuation = a }

// InnerAngle returns the full-intensity cone angle in radians.
func (l *SpotLight) InnerAngle() float32 { return l.innerAngle }

// SetInnerAngle sets the full-intensity cone angle in radians.
func (l *SpotLight) SetInnerAngle(a float32) { l.innerAngle = a }

// OuterAngle returns the cutoff cone angle in radians.
func (l *SpotLight) OuterAngle() float32 { return l.outerAngle }

// SetOuterAngle sets the cutoff cone angle in radians.
func (l *SpotLight) SetOuterAngle(a float32) { l.outerAngle = a }

// Falloff returns the exponent between inner and outer cones.
func (l *SpotLight) Falloff() float32 { return l.falloff }

// SetFalloff sets the exponent between inner and outer cones.
func (l *SpotLight) SetFalloff(f float32) { l.falloff = f }

// Destroy detaches the light and releases it.
func (l *SpotLight) Destroy() error { return l.destroy(l) }

// lightView resolves l into world space.
func lightView(l Light) LightView {
	base := l.lightBase()
	world := base.WorldTransform()
	lv := LightView{
		ID:          base.id,
		Kind:        base.kind,
		Position:    world.Position,
		Diffuse:     base.diffuse,
		Specular:    base.specular,
		Intensity:   base.intensity,
		CastShadows: base.castShadows,
	}
	switch t := l.(type) {
	case *DirectionalLight:
		lv.Direction = world.Rotation.Rotate(t.direction).Normalize()
	case *PointLight:
		lv.Attenuation = t.attenuation
	case *SpotLight:
		lv.Direction = world.Rotation.Rotate(t.direction).Normalize()
		lv.Attenuation = t.attenuation
		lv.InnerAngle = t.innerAngle
		lv.OuterAngle = t.outerAngle
		lv.Falloff = t.falloff
	}
	return lv
}

func defaultSpotAngles() (inner, outer float32) {
	return math32.Pi / 6, math32.Pi / 4
}

var (
	_ Light = (*DirectionalLight)(nil)
	_ Light = (*PointLight)(nil)
	_ Light = (*SpotLight)(nil)
)
