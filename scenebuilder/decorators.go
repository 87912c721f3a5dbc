// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scenebuilder

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gogpu/rendering"
)

// Object names used by the stock decorators.
const (
	LightName    = "Light"
	SphereName   = "Sphere"
	PlaneName    = "Plane"
	CylinderName = "Cylinder"
	ConeName     = "Cone"
	BoxName      = "Box"
)

// ShadowLightPosition is the center of the light grid added by Shadow.
var ShadowLightPosition = rendering.V3(5.5, -2, 4.75)

// Base sets the scene background.
func Base() Decorator {
	return Decorator{
		Name: "base",
		Build: func(s *rendering.Scene, cfg Config) error {
			s.SetBackgroundColor(cfg.Background)
			return nil
		},
	}
}

// Simple adds a directional light, a red sphere resting on a white plane,
// and bobs the sphere up and down on update.
func Simple() Decorator {
	return Decorator{
		Name: "simple",
		Build: func(s *rendering.Scene, cfg Config) error {
			s.SetAmbientLight(cfg.Ambient)

			light, err := s.CreateDirectionalLight(rendering.WithName(LightName))
			if err != nil {
				return err
			}
			light.SetDirection(rendering.V3(0.3, 0.5, -1))
			light.SetDiffuseColor(rendering.RGB(0.8, 0.8, 0.8))
			light.SetSpecularColor(rendering.RGB(0.8, 0.8, 0.8))
			if err := s.RootVisual().AddChild(light); err != nil {
				return err
			}

			if err := addShape(s, SphereName, s.CreateSphere,
				rendering.NewPose(3, 0, 0.5, 0, 0, 0), rendering.One, Red); err != nil {
				return err
			}
			return addShape(s, PlaneName, s.CreatePlane,
				rendering.NewPose(3, 0, 0, 0, 0, 0), rendering.V3(5, 50, 1), White)
		},
		ResetCamera: func(c *rendering.Camera) {
			c.SetLocalPosition(rendering.V3(0.5, 0, 1))
			c.SetLocalRotation(rendering.Euler(0, 0.1, 0))
		},
		Update: func(s *rendering.Scene, clock Clock) error {
			sphere, ok := s.VisualByName(SphereName)
			if !ok {
				return fmt.Errorf("%w: visual %q", rendering.ErrUnknownReference, SphereName)
			}
			pose := sphere.LocalPose()
			pose.Position.Z = 0.6 + 0.1*math32.Cos(float32(clock.Tick)*0.05)
			sphere.SetLocalPose(pose)
			return nil
		},
	}
}

// AllShapes adds a green cylinder, a blue cone and a yellow box. It
// expects Simple to have run before it.
func AllShapes() Decorator {
	return Decorator{
		Name: "all-shapes",
		Build: func(s *rendering.Scene, _ Config) error {
			if err := addShape(s, CylinderName, s.CreateCylinder,
				rendering.NewPose(3.3, 1, 0.5, 0, -0.5, 0), rendering.V3(0.5, 0.5, 1.5), Green); err != nil {
				return err
			}
			if err := addShape(s, ConeName, s.CreateCone,
				rendering.NewPose(2.6, -0.8, 1.2, -0.5, -0.75, 0), rendering.V3(0.8, 0.8, 1), Blue); err != nil {
				return err
			}
			return addShape(s, BoxName, s.CreateBox,
				rendering.NewPose(2.2, -0.8, 0.2, math32.Pi/4, 0, math32.Pi/4), rendering.V3(0.5, 0.5, 0.5), Yellow)
		},
	}
}

// Texture switches the stock shapes to their textured materials.
func Texture() Decorator {
	return Decorator{
		Name: "texture",
		Build: func(s *rendering.Scene, _ Config) error {
			return remapMaterials(s, TexturePrefix)
		},
	}
}

// Reflection switches the stock shapes to their reflective materials.
func Reflection() Decorator {
	return Decorator{
		Name: "reflection",
		Build: func(s *rendering.Scene, _ Config) error {
			return remapMaterials(s, ReflectPrefix)
		},
	}
}

// Shadow replaces the directional light with an n×n×n grid of point lights
// spanning dist around ShadowLightPosition. The grid approximates an
// area light; each light gets 1/n³ of the total color.
func Shadow(n int, dist float32) Decorator {
	return Decorator{
		Name: fmt.Sprintf("shadow(%d,%g)", n, dist),
		Build: func(s *rendering.Scene, _ Config) error {
			if n < 1 || dist < 0 {
				return fmt.Errorf("%w: shadow grid n=%d dist=%g", rendering.ErrInvalidArgument, n, dist)
			}
			if s.HasLight(LightName) {
				if err := s.DestroyLightByName(LightName); err != nil {
					return err
				}
			}
			factor := 1 / float32(n*n*n)
			diffuse := rendering.RGB(0.6, 0.6, 0.6).Scale(factor)
			specular := rendering.RGB(0.8, 0.8, 0.8).Scale(factor)
			for _, p := range shadowGrid(ShadowLightPosition, n, dist) {
				light, err := s.CreatePointLight()
				if err != nil {
					return err
				}
				light.SetLocalPosition(p)
				light.SetDiffuseColor(diffuse)
				light.SetSpecularColor(specular)
				if err := s.RootVisual().AddChild(light); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// shadowGrid returns n³ points spaced dist/(n-1) apart, centered on c.
func shadowGrid(c rendering.Vec3, n int, dist float32) []rendering.Vec3 {
	var step, offset float32
	if n > 1 {
		step = dist / float32(n-1)
		offset = dist / 2
	}
	origin := c.Sub(rendering.V3(offset, offset, offset))
	points := make([]rendering.Vec3, 0, n*n*n)
	for i := range n {
		for j := range n {
			for k := range n {
				d := rendering.V3(float32(i)*step, float32(j)*step, float32(k)*step)
				points = append(points, origin.Add(d))
			}
		}
	}
	return points
}

type shapeFactory func(opts ...rendering.ObjectOption) (*rendering.Shape, error)

func addShape(s *rendering.Scene, name string, create shapeFactory,
	pose rendering.Pose, scale rendering.Vec3, material string) error {
	v, err := s.CreateVisual(rendering.WithName(name))
	if err != nil {
		return err
	}
	g, err := create()
	if err != nil {
		return err
	}
	if err := v.AddGeometry(g); err != nil {
		return err
	}
	v.SetLocalPose(pose)
	v.SetLocalScale(scale)
	if err := v.SetMaterial(material); err != nil {
		return err
	}
	return s.RootVisual().AddChild(v)
}

var stockShapes = []struct{ visual, material string }{
	{BoxName, Yellow},
	{ConeName, Blue},
	{CylinderName, Green},
	{PlaneName, White},
	{SphereName, Red},
}

// remapMaterials sets prefix+material on every stock shape present in s.
func remapMaterials(s *rendering.Scene, prefix string) error {
	for _, sh := range stockShapes {
		v, ok := s.VisualByName(sh.visual)
		if !ok {
			continue
		}
		if err := v.SetMaterial(prefix + sh.material); err != nil {
			return err
		}
	}
	return nil
}
