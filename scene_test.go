// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

func TestRegisterMaterialDuplicate(t *testing.T) {
	s, _ := newTestScene(t)

	m1, err := s.CreateMaterial()
	if err != nil {
		t.Fatalf("CreateMaterial() error = %v", err)
	}
	m2, _ := s.CreateMaterial()

	if err := s.RegisterMaterial("Shiny", m1); err != nil {
		t.Fatalf("RegisterMaterial() error = %v", err)
	}
	if err := s.RegisterMaterial("Shiny", m2); !errors.Is(err, ErrDuplicate) {
		t.Errorf("RegisterMaterial() twice error = %v, want ErrDuplicate", err)
	}
	if got, _ := s.Material("Shiny"); got != m1 {
		t.Error("Material(Shiny) changed after failed registration")
	}

	// A material may be registered under several names.
	if err := s.RegisterMaterial("Alias", m1); err != nil {
		t.Errorf("RegisterMaterial(Alias) error = %v", err)
	}
	if err := s.UnregisterMaterial("Alias"); err != nil {
		t.Errorf("UnregisterMaterial() error = %v", err)
	}
	if err := s.UnregisterMaterial("Alias"); !errors.Is(err, ErrUnknownReference) {
		t.Errorf("UnregisterMaterial() twice error = %v, want ErrUnknownReference", err)
	}
	if m1.Destroyed() {
		t.Error("UnregisterMaterial() destroyed the material")
	}

	if err := s.DestroyMaterial(m1); err != nil {
		t.Fatalf("DestroyMaterial() error = %v", err)
	}
	if s.MaterialRegistered("Shiny") || s.MaterialRegistered(m1.Name()) {
		t.Error("DestroyMaterial() left a registered name")
	}
	if err := s.RegisterMaterial("Dead", m1); !errors.Is(err, ErrDestroyed) {
		t.Errorf("RegisterMaterial(destroyed) error = %v, want ErrDestroyed", err)
	}
}

func TestCreateMaterialDuplicateID(t *testing.T) {
	s, _ := newTestScene(t)
	sm := s.sm.(*fakeSceneManager)

	m, err := s.CreateMaterial(WithID(7), WithName("first"))
	if err != nil {
		t.Fatalf("CreateMaterial() error = %v", err)
	}
	// The id stays taken after every name of m is unregistered.
	if err := s.UnregisterMaterial("first"); err != nil {
		t.Fatalf("UnregisterMaterial() error = %v", err)
	}
	before := sm.creates
	if _, err := s.CreateMaterial(WithID(7), WithName("second")); !errors.Is(err, ErrDuplicate) {
		t.Errorf("CreateMaterial(dup id) error = %v, want ErrDuplicate", err)
	}
	if sm.creates != before {
		t.Error("duplicate id reached the scene manager")
	}
	if got, ok := s.MaterialByID(7); !ok || got != m {
		t.Errorf("MaterialByID(7) = %v, %v, want first material", got, ok)
	}

	if err := m.Destroy(); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if _, ok := s.MaterialByID(7); ok {
		t.Error("MaterialByID(7) found a destroyed material")
	}
	if _, err := s.CreateMaterial(WithID(7)); err != nil {
		t.Errorf("CreateMaterial(reused id) error = %v", err)
	}
}

func TestMaterialClone(t *testing.T) {
	s, _ := newTestScene(t)
	m, _ := s.CreateMaterial(WithName("base"))
	m.SetDiffuse(RGB(1, 0, 0))
	m.SetTexture("a.png")

	c, err := m.Clone(WithName("copy"))
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}
	if c.Properties() != m.Properties() {
		t.Errorf("Clone() properties = %+v, want %+v", c.Properties(), m.Properties())
	}
	c.SetDiffuse(RGB(0, 1, 0))
	c.ClearTexture()
	if m.Diffuse() != RGB(1, 0, 0) || m.Texture() != "a.png" {
		t.Error("changing the clone changed the original")
	}
	if _, err := m.Clone(WithName("copy")); !errors.Is(err, ErrDuplicate) {
		t.Errorf("Clone() with taken name error = %v, want ErrDuplicate", err)
	}
}

func TestMaterialClamps(t *testing.T) {
	s, _ := newTestScene(t)
	m, _ := s.CreateMaterial()
	m.SetTransparency(2)
	m.SetReflectivity(-1)
	if m.Transparency() != 1 || m.Reflectivity() != 0 {
		t.Errorf("transparency, reflectivity = %v, %v, want 1, 0", m.Transparency(), m.Reflectivity())
	}
}

func TestAddChildTopology(t *testing.T) {
	s, _ := newTestScene(t)
	a := mustVisual(t, s, WithName("a"))
	b := mustVisual(t, s, WithName("b"))
	c := mustVisual(t, s, WithName("c"))

	if err := a.AddChild(b); err != nil {
		t.Fatalf("a.AddChild(b) error = %v", err)
	}
	if err := b.AddChild(c); err != nil {
		t.Fatalf("b.AddChild(c) error = %v", err)
	}

	tests := []struct {
		name   string
		parent *Visual
		child  Node
	}{
		{"self", a, a},
		{"parent", b, a},
		{"grandparent", c, a},
		{"root", a, s.RootVisual()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.parent.AddChild(tt.child); !errors.Is(err, ErrInvalidTopology) {
				t.Errorf("AddChild() error = %v, want ErrInvalidTopology", err)
			}
		})
	}
	if c.Parent() != b || b.Parent() != a {
		t.Error("failed AddChild changed the tree")
	}

	// Re-parenting moves the node.
	if err := a.AddChild(c); err != nil {
		t.Fatalf("a.AddChild(c) error = %v", err)
	}
	if c.Parent() != a || b.ChildCount() != 0 || a.ChildCount() != 2 {
		t.Errorf("re-parent: parent %v, b children %d, a children %d", c.Parent().Name(), b.ChildCount(), a.ChildCount())
	}
	if err := b.RemoveChild(c); !errors.Is(err, ErrUnknownReference) {
		t.Errorf("RemoveChild(non-child) error = %v, want ErrUnknownReference", err)
	}
}

func TestAddChildOtherScene(t *testing.T) {
	s, _ := newTestScene(t)
	other, err := s.Engine().CreateScene()
	if err != nil {
		t.Fatalf("CreateScene() error = %v", err)
	}
	v := mustVisual(t, other)
	if err := s.RootVisual().AddChild(v); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("AddChild(foreign) error = %v, want ErrInvalidArgument", err)
	}
}

func TestWorldTransform(t *testing.T) {
	s, _ := newTestScene(t)
	parent := mustVisual(t, s)
	child := mustVisual(t, s)
	if err := parent.AddChild(child); err != nil {
		t.Fatal(err)
	}
	parent.SetLocalPosition(V3(1, 0, 0))
	parent.SetLocalRotation(Euler(0, 0, math32.Pi/2))
	parent.SetLocalScale(V3(2, 2, 2))
	child.SetLocalPosition(V3(1, 0, 0))

	got := child.WorldPosition()
	if want := V3(1, 2, 0); !got.ApproxEqual(want, 1e-5) {
		t.Errorf("WorldPosition() = %v, want %v", got, want)
	}
	if got := child.WorldScale(); got != V3(2, 2, 2) {
		t.Errorf("WorldScale() = %v, want (2,2,2)", got)
	}
}

func TestSceneStores(t *testing.T) {
	s, _ := newTestScene(t)
	if s.VisualCount() != 0 {
		t.Errorf("VisualCount() = %d, want 0 (root excluded)", s.VisualCount())
	}

	v := mustVisual(t, s, WithName("v"))
	if _, err := s.CreateVisual(WithName("v")); !errors.Is(err, ErrDuplicate) {
		t.Errorf("CreateVisual(dup name) error = %v, want ErrDuplicate", err)
	}
	if _, err := s.CreateVisual(WithID(v.ID())); !errors.Is(err, ErrDuplicate) {
		t.Errorf("CreateVisual(dup id) error = %v, want ErrDuplicate", err)
	}
	if got, ok := s.VisualByID(v.ID()); !ok || got != v {
		t.Errorf("VisualByID() = %v, %v", got, ok)
	}

	l, err := s.CreatePointLight(WithName("lamp"))
	if err != nil {
		t.Fatalf("CreatePointLight() error = %v", err)
	}
	if l.Attenuation() != DefaultAttenuation {
		t.Errorf("Attenuation() = %+v, want default", l.Attenuation())
	}
	if !s.HasLight("lamp") || s.LightCount() != 1 {
		t.Error("light not stored")
	}
	if err := s.DestroyLightByName("nope"); !errors.Is(err, ErrUnknownReference) {
		t.Errorf("DestroyLightByName(nope) error = %v, want ErrUnknownReference", err)
	}
	if err := s.DestroyLightByName("lamp"); err != nil {
		t.Errorf("DestroyLightByName() error = %v", err)
	}
	if err := l.Destroy(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Destroy() twice error = %v, want ErrDestroyed", err)
	}

	c := mustCamera(t, s, WithName("cam"))
	if got, ok := s.SensorByName("cam"); !ok || got != c {
		t.Errorf("SensorByName() = %v, %v", got, ok)
	}
	if err := s.DestroySensorByName("cam"); err != nil {
		t.Errorf("DestroySensorByName() error = %v", err)
	}
	if s.SensorCount() != 0 {
		t.Errorf("SensorCount() = %d, want 0", s.SensorCount())
	}

	if err := s.DestroyVisual(s.RootVisual(), true); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("DestroyVisual(root) error = %v, want ErrInvalidArgument", err)
	}
}

func TestDestroySingleObject(t *testing.T) {
	s, _ := newTestScene(t)
	other, err := s.Engine().CreateScene()
	if err != nil {
		t.Fatalf("CreateScene() error = %v", err)
	}

	sun, err := s.CreateDirectionalLight(WithName("sun"))
	if err != nil {
		t.Fatalf("CreateDirectionalLight() error = %v", err)
	}
	cam := mustCamera(t, s, WithName("cam"))

	if err := other.DestroyLight(sun); !errors.Is(err, ErrUnknownReference) {
		t.Errorf("DestroyLight(foreign) error = %v, want ErrUnknownReference", err)
	}
	if err := other.DestroySensor(cam); !errors.Is(err, ErrUnknownReference) {
		t.Errorf("DestroySensor(foreign) error = %v, want ErrUnknownReference", err)
	}
	if err := s.DestroyLight(nil); !errors.Is(err, ErrUnknownReference) {
		t.Errorf("DestroyLight(nil) error = %v, want ErrUnknownReference", err)
	}

	if err := s.DestroyLight(sun); err != nil {
		t.Errorf("DestroyLight() error = %v", err)
	}
	if err := s.DestroySensor(cam); err != nil {
		t.Errorf("DestroySensor() error = %v", err)
	}
	if s.LightCount() != 0 || s.SensorCount() != 0 {
		t.Errorf("counts = %d lights, %d sensors, want 0", s.LightCount(), s.SensorCount())
	}
}

func TestDestroyVisualRecursive(t *testing.T) {
	s, drv := newTestScene(t)
	parent := mustVisual(t, s)
	child := mustVisual(t, s)
	box, _ := s.CreateBox()
	_ = parent.AddChild(child)
	_ = child.AddGeometry(box)

	if err := s.DestroyVisual(parent, true); err != nil {
		t.Fatalf("DestroyVisual() error = %v", err)
	}
	if !child.Destroyed() || !box.Destroyed() {
		t.Error("recursive destroy left descendants alive")
	}
	if n := drv.managers[0].count(KindBox); n != 0 {
		t.Errorf("backing boxes = %d, want 0", n)
	}

	keep := mustVisual(t, s)
	orphan := mustVisual(t, s)
	_ = keep.AddChild(orphan)
	if err := s.DestroyVisual(keep, false); err != nil {
		t.Fatalf("DestroyVisual() error = %v", err)
	}
	if orphan.Destroyed() || orphan.Parent() != nil {
		t.Error("non-recursive destroy should detach children")
	}
}

func TestUnsupportedKind(t *testing.T) {
	s, drv := newTestScene(t)
	drv.unsupported[KindText] = true

	if _, err := s.CreateText("hi"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("CreateText() error = %v, want ErrUnsupported", err)
	}
	if _, err := s.CreateMesh(""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("CreateMesh(\"\") error = %v, want ErrInvalidArgument", err)
	}
}

func TestVisualSetMaterial(t *testing.T) {
	s, _ := newTestScene(t)
	m, _ := s.CreateMaterial(WithName("red"))
	parent := mustVisual(t, s)
	child := mustVisual(t, s)
	box, _ := s.CreateBox()
	_ = parent.AddChild(child)
	_ = child.AddGeometry(box)

	if err := parent.SetMaterial("missing"); !errors.Is(err, ErrUnknownReference) {
		t.Errorf("SetMaterial(missing) error = %v, want ErrUnknownReference", err)
	}
	if parent.Material() != nil {
		t.Error("failed SetMaterial changed the material")
	}
	if err := parent.SetMaterial("red"); err != nil {
		t.Fatalf("SetMaterial() error = %v", err)
	}
	if child.Material() != m || box.Material() != m {
		t.Error("SetMaterial() did not reach the subtree")
	}

	// The material is shared, not copied.
	m.SetDiffuse(RGB(0, 0, 1))
	if box.Material().Diffuse() != RGB(0, 0, 1) {
		t.Error("geometry does not share the visual material")
	}
}

func TestGeometryAttach(t *testing.T) {
	s, _ := newTestScene(t)
	a := mustVisual(t, s)
	b := mustVisual(t, s)
	sphere, _ := s.CreateSphere()
	if err := a.AddGeometry(sphere); err != nil {
		t.Fatalf("AddGeometry() error = %v", err)
	}
	if err := b.AddGeometry(sphere); !errors.Is(err, ErrInvalidTopology) {
		t.Errorf("AddGeometry(attached) error = %v, want ErrInvalidTopology", err)
	}
	if err := a.RemoveGeometry(sphere); err != nil {
		t.Fatalf("RemoveGeometry() error = %v", err)
	}
	if err := b.AddGeometry(sphere); err != nil {
		t.Errorf("AddGeometry(detached) error = %v", err)
	}
}

func TestSceneClear(t *testing.T) {
	s, drv := newTestScene(t)
	_ = mustCamera(t, s)
	l, _ := s.CreateDirectionalLight()
	v := mustVisual(t, s)
	_, _ = s.CreateMaterial()
	hidden, _ := s.CreateMaterial(WithName("hidden"))
	_ = s.UnregisterMaterial("hidden")
	_ = s.RootVisual().AddChild(l)
	_ = s.RootVisual().AddChild(v)
	tex, _ := s.CreateRenderTexture()

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if s.SensorCount() != 0 || s.LightCount() != 0 || s.VisualCount() != 0 || s.MaterialCount() != 0 {
		t.Errorf("Clear() left sensors %d lights %d visuals %d materials %d",
			s.SensorCount(), s.LightCount(), s.VisualCount(), s.MaterialCount())
	}
	if s.RootVisual().ChildCount() != 0 {
		t.Errorf("root has %d children after Clear()", s.RootVisual().ChildCount())
	}
	if !s.IsInitialized() || tex.Destroyed() {
		t.Error("Clear() should keep the scene and free render targets")
	}
	sm := drv.managers[0]
	if n := sm.count(KindVisual); n != 1 {
		t.Errorf("backing visuals = %d, want 1 (root)", n)
	}
	if n := sm.count(KindMaterial); n != 0 || !hidden.Destroyed() {
		t.Errorf("backing materials = %d, unregistered destroyed = %v, want 0, true", n, hidden.Destroyed())
	}
	if _, err := s.CreateVisual(); err != nil {
		t.Errorf("CreateVisual() after Clear() error = %v", err)
	}
}

func TestSceneDestroy(t *testing.T) {
	s, drv := newTestScene(t)
	_ = mustVisual(t, s)
	if err := s.Destroy(); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if s.IsInitialized() {
		t.Error("IsInitialized() after Destroy() = true")
	}
	if len(drv.managers[0].objects) != 0 {
		t.Errorf("backing objects left: %v", drv.managers[0].objects)
	}
	if _, err := s.CreateVisual(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("CreateVisual() after Destroy error = %v, want ErrDestroyed", err)
	}
	if err := s.Init(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Init() after Destroy error = %v, want ErrDestroyed", err)
	}
	if err := s.Destroy(); err != nil {
		t.Errorf("Destroy() twice error = %v", err)
	}
}

func TestGradientBackground(t *testing.T) {
	s, _ := newTestScene(t)
	s.SetBackgroundColor(RGB(0.5, 0.5, 0.5))
	corners := [4]Color{Black, White, RGB(1, 0, 0), RGB(0, 0, 1)}
	s.SetGradientBackgroundColor(corners)
	if !s.IsGradientBackgroundColor() || s.GradientBackgroundColor() != corners {
		t.Fatal("gradient not stored")
	}
	bg := s.Background()
	if got := bg.At(0, 0); got != Black {
		t.Errorf("At(0,0) = %v, want top-left", got)
	}
	if got := bg.At(1, 1); got != RGB(0, 0, 1) {
		t.Errorf("At(1,1) = %v, want bottom-right", got)
	}
	s.RemoveGradientBackgroundColor()
	if s.IsGradientBackgroundColor() || s.Background().At(0.3, 0.7) != RGB(0.5, 0.5, 0.5) {
		t.Error("RemoveGradientBackgroundColor() did not restore the solid color")
	}
}
