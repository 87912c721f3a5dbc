// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package classic

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/rendering"
	"github.com/gogpu/rendering/backend"
)

func TestName(t *testing.T) {
	if got := New().Name(); got != "classic" {
		t.Errorf("Name() = %q, want %q", got, "classic")
	}
	if !backend.IsRegistered(backend.BackendClassic) {
		t.Error("classic backend is not registered")
	}
}

func TestSupersampleFactor(t *testing.T) {
	tests := []struct {
		aa, want int
	}{
		{0, 1}, {1, 1}, {2, 1}, {3, 1}, {4, 2}, {8, 2}, {9, 3}, {16, 4}, {64, 4},
	}
	for _, tt := range tests {
		if got := SupersampleFactor(tt.aa); got != tt.want {
			t.Errorf("SupersampleFactor(%d) = %d, want %d", tt.aa, got, tt.want)
		}
	}
}

func TestSceneManagerBeforeOpen(t *testing.T) {
	d := New()
	if _, err := d.NewSceneManager(1, "s"); !errors.Is(err, rendering.ErrNotInitialized) {
		t.Errorf("NewSceneManager() error = %v, want ErrNotInitialized", err)
	}
}

func TestSceneManagerObjects(t *testing.T) {
	d := New()
	if err := d.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer d.Close()

	sm, err := d.NewSceneManager(1, "s")
	if err != nil {
		t.Fatalf("NewSceneManager() error = %v", err)
	}
	if _, err := d.NewSceneManager(1, "again"); !errors.Is(err, rendering.ErrDuplicate) {
		t.Errorf("NewSceneManager() duplicate error = %v, want ErrDuplicate", err)
	}

	if err := sm.CreateObject(rendering.KindFrustumVisual, 10, "f"); !errors.Is(err, rendering.ErrUnsupported) {
		t.Errorf("CreateObject(FrustumVisual) error = %v, want ErrUnsupported", err)
	}
	if err := sm.CreateObject(rendering.KindText, 11, "t"); err != nil {
		t.Errorf("CreateObject(Text) error = %v", err)
	}
	if err := sm.DestroyObject(rendering.KindText, 11); err != nil {
		t.Errorf("DestroyObject() error = %v", err)
	}

	surf, err := sm.CreateSurface(&rendering.SurfaceDescriptor{Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("CreateSurface() error = %v", err)
	}
	_, err = sm.CreateWorkspace(surf, &rendering.WorkspaceDescriptor{CameraID: 99})
	if !errors.Is(err, rendering.ErrUnknownReference) {
		t.Errorf("CreateWorkspace() unknown camera error = %v, want ErrUnknownReference", err)
	}

	if err := sm.Destroy(); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if err := sm.CreateObject(rendering.KindBox, 12, "b"); !errors.Is(err, rendering.ErrDestroyed) {
		t.Errorf("CreateObject() after Destroy error = %v, want ErrDestroyed", err)
	}
}

func TestRenderScene(t *testing.T) {
	e, err := rendering.NewEngine(New(), rendering.WithImageSize(64, 48))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	defer e.Fini()

	s, err := e.CreateScene()
	if err != nil {
		t.Fatalf("CreateScene() error = %v", err)
	}
	if _, err := s.CreateFrustumVisual(); !errors.Is(err, rendering.ErrUnsupported) {
		t.Errorf("CreateFrustumVisual() error = %v, want ErrUnsupported", err)
	}

	m, err := s.CreateMaterial(rendering.WithName("Red"))
	if err != nil {
		t.Fatalf("CreateMaterial() error = %v", err)
	}
	m.SetDiffuse(rendering.RGB(1, 0, 0))
	m.SetLightingEnabled(false)

	v, err := s.CreateVisual()
	if err != nil {
		t.Fatalf("CreateVisual() error = %v", err)
	}
	box, err := s.CreateBox()
	if err != nil {
		t.Fatalf("CreateBox() error = %v", err)
	}
	if err := v.AddGeometry(box); err != nil {
		t.Fatalf("AddGeometry() error = %v", err)
	}
	if err := v.SetMaterial("Red"); err != nil {
		t.Fatalf("SetMaterial() error = %v", err)
	}
	v.SetLocalPosition(rendering.V3(2, 0, 0))
	if err := s.RootVisual().AddChild(v); err != nil {
		t.Fatalf("AddChild() error = %v", err)
	}

	cam, err := s.CreateCamera()
	if err != nil {
		t.Fatalf("CreateCamera() error = %v", err)
	}
	img, err := cam.Capture()
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}

	if got := img.RGBAAt(32, 24); got.R < 250 || got.G > 5 || got.B > 5 {
		t.Errorf("center pixel = %v, want red", got)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("corner pixel = %v, want black background", got)
	}
}
