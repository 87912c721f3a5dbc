// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

import "fmt"

// MaterialProperties is the value state of a material.
type MaterialProperties struct {
	Ambient  Color
	Diffuse  Color
	Specular Color
	Emissive Color

	Shininess    float32
	Transparency float32
	Reflectivity float32

	// Texture and NormalMap are opaque resource paths.
	Texture   string
	NormalMap string

	Lighting       bool
	CastShadows    bool
	ReceiveShadows bool
}

// DefaultMaterialProperties returns the properties of a new material.
func DefaultMaterialProperties() MaterialProperties {
	return MaterialProperties{
		Ambient:        Black,
		Diffuse:        White,
		Specular:       Black,
		Emissive:       Black,
		Lighting:       true,
		CastShadows:    true,
		ReceiveShadows: true,
	}
}

// Material describes the surface appearance of geometries.
//
// A material is registered in its scene under its own name on creation and
// may be registered under further names with Scene.RegisterMaterial.
type Material struct {
	object
	props MaterialProperties
}

// Properties returns a copy of the material state.
func (m *Material) Properties() MaterialProperties { return m.props }

// SetProperties replaces the material state.
func (m *Material) SetProperties(p MaterialProperties) { m.props = p }

// CopyFrom copies every property of o into m.
func (m *Material) CopyFrom(o *Material) { m.props = o.props }

// Ambient returns the ambient color.
func (m *Material) Ambient() Color { return m.props.Ambient }

// SetAmbient sets the ambient color.
func (m *Material) SetAmbient(c Color) { m.props.Ambient = c }

// Diffuse returns the diffuse color.
func (m *Material) Diffuse() Color { return m.props.Diffuse }

// SetDiffuse sets the diffuse color.
func (m *Material) SetDiffuse(c Color) { m.props.Diffuse = c }

// Specular returns the specular color.
func (m *Material) Specular() Color { return m.props.Specular }

// SetSpecular sets the specular color.
func (m *Material) SetSpecular(c Color) { m.props.Specular = c }

// Emissive returns the emissive color.
func (m *Material) Emissive() Color { return m.props.Emissive }

// SetEmissive sets the emissive color.
func (m *Material) SetEmissive(c Color) { m.props.Emissive = c }

// Shininess returns the specular exponent.
func (m *Material) Shininess() float32 { return m.props.Shininess }

// SetShininess sets the specular exponent.
func (m *Material) SetShininess(s float32) { m.props.Shininess = s }

// Transparency returns the transparency in [0, 1]; 0 is opaque.
func (m *Material) Transparency() float32 { return m.props.Transparency }

// SetTransparency sets the transparency in [0, 1].
func (m *Material) SetTransparency(t float32) { m.props.Transparency = clamp01(t) }

// Reflectivity returns how much of the environment is mirrored, in [0, 1].
func (m *Material) Reflectivity() float32 { return m.props.Reflectivity }

// SetReflectivity sets the reflectivity in [0, 1].
func (m *Material) SetReflectivity(r float32) { m.props.Reflectivity = clamp01(r) }

// Texture returns the texture path, empty if none.
func (m *Material) Texture() string { return m.props.Texture }

// SetTexture sets the texture path.
func (m *Material) SetTexture(path string) { m.props.Texture = path }

// ClearTexture removes the texture.
func (m *Material) ClearTexture() { m.props.Texture = "" }

// NormalMap returns the normal map path, empty if none.
func (m *Material) NormalMap() string { return m.props.NormalMap }

// SetNormalMap sets the normal map path.
func (m *Material) SetNormalMap(path string) { m.props.NormalMap = path }

// LightingEnabled reports whether lights affect the material.
func (m *Material) LightingEnabled() bool { return m.props.Lighting }

// SetLightingEnabled enables or disables lighting.
func (m *Material) SetLightingEnabled(enabled bool) { m.props.Lighting = enabled }

// CastShadows reports whether geometries with this material cast shadows.
func (m *Material) CastShadows() bool { return m.props.CastShadows }

// SetCastShadows enables or disables shadow casting.
func (m *Material) SetCastShadows(cast bool) { m.props.CastShadows = cast }

// ReceiveShadows reports whether geometries with this material are shadowed.
func (m *Material) ReceiveShadows() bool { return m.props.ReceiveShadows }

// SetReceiveShadows enables or disables shadow receiving.
func (m *Material) SetReceiveShadows(receive bool) { m.props.ReceiveShadows = receive }

// Clone creates a new material in the same scene with a copy of every
// property. The clone is registered under its own name and does not track
// later changes to m.
func (m *Material) Clone(opts ...ObjectOption) (*Material, error) {
	if err := m.checkAlive(); err != nil {
		return nil, err
	}
	c, err := m.scene.CreateMaterial(opts...)
	if err != nil {
		return nil, fmt.Errorf("rendering: clone material %q: %w", m.name, err)
	}
	c.CopyFrom(m)
	return c, nil
}

// Destroy unregisters every name of m and releases it.
func (m *Material) Destroy() error {
	if err := m.checkAlive(); err != nil {
		return err
	}
	m.scene.unregisterAll(m)
	return m.release()
}
