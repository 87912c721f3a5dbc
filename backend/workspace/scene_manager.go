// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package workspace

import (
	"fmt"
	"sync"

	"github.com/gogpu/rendering"
	"github.com/gogpu/rendering/internal/compositor"
	"github.com/gogpu/rendering/internal/objtable"
)

type sceneManager struct {
	drv  *Driver
	id   uint
	name string

	mu         sync.Mutex
	objects    *objtable.Table
	surfaces   map[*surface]struct{}
	workspaces map[*workspace]struct{}
	destroyed  bool
}

func newSceneManager(d *Driver, id uint, name string) *sceneManager {
	return &sceneManager{
		drv:        d,
		id:         id,
		name:       name,
		objects:    objtable.New(),
		surfaces:   make(map[*surface]struct{}),
		workspaces: make(map[*workspace]struct{}),
	}
}

func (sm *sceneManager) checkAlive() error {
	if sm.destroyed {
		return fmt.Errorf("%w: workspace scene %q", rendering.ErrDestroyed, sm.name)
	}
	return nil
}

// CreateObject records a backing object. Text geometries are rejected.
func (sm *sceneManager) CreateObject(kind rendering.ObjectKind, id uint, name string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if err := sm.checkAlive(); err != nil {
		return err
	}
	if kind == rendering.KindText {
		return fmt.Errorf("%w: workspace backend has no %s", rendering.ErrUnsupported, kind)
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

// CreateSurface allocates the color, depth and resolve attachments of a
// render target on the device.
func (sm *sceneManager) CreateSurface(desc *rendering.SurfaceDescriptor) (rendering.Surface, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if err := sm.checkAlive(); err != nil {
		return nil, err
	}
	if desc == nil || desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("%w: workspace surface descriptor", rendering.ErrInvalidArgument)
	}
	if desc.Kind == rendering.SurfaceWindow && desc.Handle == "" {
		sm.drv.logger().Debug("workspace: window surface without handle, rendering off-screen", "label", desc.Label)
	}
	s, err := newSurface(sm, desc)
	if err != nil {
		return nil, err
	}
	sm.surfaces[s] = struct{}{}
	sm.drv.logger().Debug("workspace: surface created",
		"label", s.label, "width", s.width, "height", s.height, "samples", s.samples)
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
		return nil, fmt.Errorf("%w: surface not owned by workspace scene %q", rendering.ErrInvalidArgument, sm.name)
	}
	if desc == nil {
		return nil, fmt.Errorf("%w: nil workspace descriptor", rendering.ErrInvalidArgument)
	}
	if _, ok := sm.objects.Name(rendering.KindCamera, desc.CameraID); !ok {
		return nil, fmt.Errorf("%w: camera %d", rendering.ErrUnknownReference, desc.CameraID)
	}
	comp, err := compositor.New(compositor.Options{
		Width:  surf.width,
		Height: surf.height,
		Passes: desc.Passes,
		Pool:   sm.drv.pool,
	})
	if err != nil {
		return nil, err
	}
	ws := &workspace{sm: sm, drv: sm.drv, label: desc.Label, surface: surf, comp: comp}
	sm.workspaces[ws] = struct{}{}
	return ws, nil
}

// Destroy releases every workspace and surface and forgets every object.
func (sm *sceneManager) Destroy() error {
	sm.mu.Lock()
	if sm.destroyed {
		sm.mu.Unlock()
		return nil
	}
	sm.destroyed = true
	for w := range sm.workspaces {
		w.release()
	}
	clear(sm.workspaces)
	for s := range sm.surfaces {
		s.release()
	}
	clear(sm.surfaces)
	leaked := sm.objects.Clear()
	sm.mu.Unlock()

	if leaked > 0 {
		sm.drv.logger().Debug("workspace: scene manager released objects", "scene", sm.name, "count", leaked)
	}
	sm.drv.forget(sm)
	return nil
}

var _ rendering.SceneManager = (*sceneManager)(nil)
