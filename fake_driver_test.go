// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"testing"
)

// fakeDriver records every call made through the backend boundary.
type fakeDriver struct {
	name        string
	openErr     error
	unsupported map[ObjectKind]bool
	opened      int
	closed      int
	logger      *slog.Logger
	managers    []*fakeSceneManager
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{name: "fake", unsupported: make(map[ObjectKind]bool)}
}

func (d *fakeDriver) Name() string { return d.name }

func (d *fakeDriver) SetLogger(l *slog.Logger) { d.logger = l }

func (d *fakeDriver) Open() error {
	if d.openErr != nil {
		return d.openErr
	}
	d.opened++
	return nil
}

func (d *fakeDriver) Close() { d.closed++ }

func (d *fakeDriver) NewSceneManager(sceneID uint, name string) (SceneManager, error) {
	sm := &fakeSceneManager{drv: d, sceneID: sceneID, name: name, objects: make(map[uint]ObjectKind)}
	d.managers = append(d.managers, sm)
	return sm, nil
}

type fakeSceneManager struct {
	drv        *fakeDriver
	sceneID    uint
	name       string
	objects    map[uint]ObjectKind
	creates    int
	surfaces   []*fakeSurface
	workspaces []*fakeWorkspace
	renderErr  error
	destroyed  bool
}

func (sm *fakeSceneManager) CreateObject(kind ObjectKind, id uint, name string) error {
	sm.creates++
	if sm.drv.unsupported[kind] {
		return fmt.Errorf("%w: %s", ErrUnsupported, kind)
	}
	if _, ok := sm.objects[id]; ok {
		return fmt.Errorf("%w: id %d", ErrDuplicate, id)
	}
	sm.objects[id] = kind
	return nil
}

func (sm *fakeSceneManager) DestroyObject(kind ObjectKind, id uint) error {
	if k, ok := sm.objects[id]; !ok || k != kind {
		return fmt.Errorf("%w: %s %d", ErrUnknownReference, kind, id)
	}
	delete(sm.objects, id)
	return nil
}

func (sm *fakeSceneManager) CreateSurface(desc *SurfaceDescriptor) (Surface, error) {
	s := &fakeSurface{desc: *desc}
	sm.surfaces = append(sm.surfaces, s)
	return s, nil
}

func (sm *fakeSceneManager) CreateWorkspace(surface Surface, desc *WorkspaceDescriptor) (Workspace, error) {
	if _, ok := sm.objects[desc.CameraID]; !ok {
		return nil, fmt.Errorf("%w: camera %d", ErrUnknownReference, desc.CameraID)
	}
	ws := &fakeWorkspace{sm: sm, surface: surface.(*fakeSurface), desc: *desc}
	sm.workspaces = append(sm.workspaces, ws)
	return ws, nil
}

func (sm *fakeSceneManager) Destroy() error {
	if sm.destroyed {
		return errors.New("scene manager destroyed twice")
	}
	sm.destroyed = true
	return nil
}

// count returns the number of live backing objects of kind.
func (sm *fakeSceneManager) count(kind ObjectKind) int {
	n := 0
	for _, k := range sm.objects {
		if k == kind {
			n++
		}
	}
	return n
}

func (sm *fakeSceneManager) lastWorkspace() *fakeWorkspace {
	if len(sm.workspaces) == 0 {
		return nil
	}
	return sm.workspaces[len(sm.workspaces)-1]
}

type fakeSurface struct {
	desc      SurfaceDescriptor
	destroyed bool
}

func (s *fakeSurface) Width() int { return s.desc.Width }

func (s *fakeSurface) Height() int { return s.desc.Height }

func (s *fakeSurface) Destroy() error {
	s.destroyed = true
	return nil
}

type fakeWorkspace struct {
	sm          *fakeSceneManager
	surface     *fakeSurface
	desc        WorkspaceDescriptor
	background  Background
	backgrounds int
	material    *MaterialProperties
	frames      []*Frame
	destroyed   bool
}

func (w *fakeWorkspace) SetBackground(bg Background) {
	w.background = bg
	w.backgrounds++
}

func (w *fakeWorkspace) SetMaterial(m *MaterialProperties) { w.material = m }

func (w *fakeWorkspace) Render(f *Frame) error {
	if w.sm.renderErr != nil {
		return w.sm.renderErr
	}
	w.frames = append(w.frames, f)
	return nil
}

// ReadPixels fills dst with the solid background of the last frame.
func (w *fakeWorkspace) ReadPixels(dst *image.RGBA) error {
	c := w.frames[len(w.frames)-1].Background.Color.NRGBA()
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return nil
}

func (w *fakeWorkspace) Destroy() error {
	w.destroyed = true
	return nil
}

// newTestScene opens an engine on a fake driver and creates one scene.
func newTestScene(t *testing.T, opts ...EngineOption) (*Scene, *fakeDriver) {
	t.Helper()
	drv := newFakeDriver()
	e, err := NewEngine(drv, opts...)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	t.Cleanup(func() { _ = e.Fini() })
	s, err := e.CreateScene()
	if err != nil {
		t.Fatalf("CreateScene() error = %v", err)
	}
	return s, drv
}

func mustVisual(t *testing.T, s *Scene, opts ...ObjectOption) *Visual {
	t.Helper()
	v, err := s.CreateVisual(opts...)
	if err != nil {
		t.Fatalf("CreateVisual() error = %v", err)
	}
	return v
}

func mustCamera(t *testing.T, s *Scene, opts ...ObjectOption) *Camera {
	t.Helper()
	c, err := s.CreateCamera(opts...)
	if err != nil {
		t.Fatalf("CreateCamera() error = %v", err)
	}
	return c
}

var (
	_ Driver       = (*fakeDriver)(nil)
	_ SceneManager = (*fakeSceneManager)(nil)
	_ Workspace    = (*fakeWorkspace)(nil)
)
