// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package classic

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/rendering"
	"github.com/gogpu/rendering/internal/compositor"
	"github.com/gogpu/rendering/internal/objtable"
)

type sceneManager struct {
	drv  *Driver
	id   uint
	name string

	mu        sync.Mutex
	objects   *objtable.Table
	surfaces  map[*surface]struct{}
	destroyed bool
}

func newSceneManager(d *Driver, id uint, name string) *sceneManager {
	return &sceneManager{
		drv:      d,
		id:       id,
		name:     name,
		objects:  objtable.New(),
		surfaces: make(map[*surface]struct{}),
	}
}

func (sm *sceneManager) checkAlive() error {
	if sm.destroyed {
		return fmt.Errorf("%w: classic scene %q", rendering.ErrDestroyed, sm.name)
	}
	return nil
}

// CreateObject records a backing object. Frustum visuals are rejected.
func (sm *sceneManager) CreateObject(kind rendering.ObjectKind, id uint, name string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if err := sm.checkAlive(); err != nil {
		return err
	}
	if kind == rendering.KindFrustumVisual {
		return fmt.Errorf("%w: classic backend has no %s", rendering.ErrUnsupported, kind)
	}
	return sm.objects.Add(kind, id, name)
}

func (sm *sceneManager) DestroyObject(kind rendering.ObjectKind, id uint) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if err := sm.checkAlive(); err != nil {
		return err
	}
	return sm.objects.Remove(kind, id)
}

func (sm *sceneManager) CreateSurface(desc *rendering.SurfaceDescriptor) (rendering.Surface, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if err := sm.checkAlive(); err != nil {
		return nil, err
	}
	if desc == nil || desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("%w: classic surface descriptor", rendering.ErrInvalidArgument)
	}
	if desc.Kind == rendering.SurfaceWindow && desc.Handle == "" {
		sm.drv.logger().Debug("classic: window surface without handle, rendering off-screen", "label", desc.Label)
	}
	s := &surface{
		sm:     sm,
		label:  desc.Label,
		width:  desc.Width,
		height: desc.Height,
		scale:  SupersampleFactor(desc.AntiAliasing),
	}
	sm.surfaces[s] = struct{}{}
	sm.drv.logger().Debug("classic: surface created",
		"label", s.label, "width", s.width, "height", s.height, "supersample", s.scale)
	return s, nil
}

func (sm *sceneManager) CreateWorkspace(s rendering.Surface, desc *rendering.WorkspaceDescriptor) (rendering.Workspace, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if err := sm.checkAlive(); err != nil {
		return nil, err
	}
	surf, ok := s.(*surface)
	if !ok || surf.sm != sm || surf.destroyed {
		return nil, fmt.Errorf("%w: surface not owned by classic scene %q", rendering.ErrInvalidArgument, sm.name)
	}
	if desc == nil {
		return nil, fmt.Errorf("%w: nil workspace descriptor", rendering.ErrInvalidArgument)
	}
	if _, ok := sm.objects.Name(rendering.KindCamera, desc.CameraID); !ok {
		return nil, fmt.Errorf("%w: camera %d", rendering.ErrUnknownReference, desc.CameraID)
	}
	comp, err := compositor.New(compositor.Options{
		Width:       surf.width,
		Height:      surf.height,
		Supersample: surf.scale,
		Passes:      desc.Passes,
		Pool:        sm.drv.pool,
	})
	if err != nil {
		return nil, err
	}
	return &workspace{label: desc.Label, surface: surf, comp: comp}, nil
}

// Destroy releases every surface and forgets every object.
func (sm *sceneManager) Destroy() error {
	sm.mu.Lock()
	if sm.destroyed {
		sm.mu.Unlock()
		return nil
	}
	sm.destroyed = true
	for s := range sm.surfaces {
		s.destroyed = true
	}
	clear(sm.surfaces)
	leaked := sm.objects.Clear()
	sm.mu.Unlock()

	if leaked > 0 {
		sm.drv.logger().Debug("classic: scene manager released objects", "scene", sm.name, "count", leaked)
	}
	sm.drv.forget(sm)
	return nil
}

// surface is the pixel storage of a render target.
type surface struct {
	sm            *sceneManager
	label         string
	width, height int
	scale         int
	destroyed     bool
}

func (s *surface) Width() int { return s.width }

func (s *surface) Height() int { return s.height }

func (s *surface) Destroy() error {
	s.sm.mu.Lock()
	defer s.sm.mu.Unlock()
	s.destroyed = true
	delete(s.sm.surfaces, s)
	return nil
}

// workspace renders frames with the CPU compositor.
type workspace struct {
	label     string
	surface   *surface
	comp      *compositor.Compositor
	destroyed bool
}

func (w *workspace) SetBackground(bg rendering.Background) { w.comp.SetBackground(bg) }

func (w *workspace) SetMaterial(m *rendering.MaterialProperties) { w.comp.SetMaterial(m) }

func (w *workspace) Render(f *rendering.Frame) error {
	if w.destroyed || w.surface.destroyed {
		return fmt.Errorf("%w: classic workspace %q", rendering.ErrDestroyed, w.label)
	}
	return w.comp.Compose(f)
}

func (w *workspace) ReadPixels(dst *image.RGBA) error {
	if w.destroyed {
		return fmt.Errorf("%w: classic workspace %q", rendering.ErrDestroyed, w.label)
	}
	return w.comp.ReadPixels(dst)
}

func (w *workspace) Destroy() error {
	w.destroyed = true
	return nil
}

var (
	_ rendering.SceneManager = (*sceneManager)(nil)
	_ rendering.Surface      = (*surface)(nil)
	_ rendering.Workspace    = (*workspace)(nil)
)
