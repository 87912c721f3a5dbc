// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

import (
	"fmt"
	"slices"
)

// EngineOption configures an Engine during creation.
//
// Example:
//
//	engine, err := rendering.NewEngine(drv,
//	    rendering.WithImageSize(640, 480),
//	    rendering.WithAntiAliasing(8),
//	)
type EngineOption func(*engineOptions)

// engineOptions holds the defaults applied to new cameras and targets.
type engineOptions struct {
	imageWidth   int
	imageHeight  int
	hfov         float32
	antiAliasing int
}

func defaultEngineOptions() engineOptions {
	return engineOptions{
		imageWidth:   320,
		imageHeight:  240,
		hfov:         DefaultHFOV,
		antiAliasing: DefaultAntiAliasing,
	}
}

// WithImageSize sets the default image size of cameras and targets.
func WithImageSize(width, height int) EngineOption {
	return func(o *engineOptions) {
		o.imageWidth = width
		o.imageHeight = height
	}
}

// WithAntiAliasing sets the default anti-aliasing level.
func WithAntiAliasing(aa int) EngineOption {
	return func(o *engineOptions) {
		o.antiAliasing = aa
	}
}

// WithHFOV sets the default horizontal field of view of cameras.
func WithHFOV(hfov float32) EngineOption {
	return func(o *engineOptions) {
		o.hfov = hfov
	}
}

// WithConfig applies the [render] section of a Config.
func WithConfig(cfg Config) EngineOption {
	return func(o *engineOptions) {
		o.imageWidth = cfg.Render.Width
		o.imageHeight = cfg.Render.Height
		o.antiAliasing = cfg.Render.AntiAliasing
		o.hfov = cfg.Render.HFOV
	}
}

// Engine owns a backing driver and the scenes created on it.
type Engine struct {
	drv    Driver
	opts   engineOptions
	scenes []*Scene
	nextID uint
	closed bool
}

// NewEngine opens drv and returns an engine that creates scenes on it.
// The engine owns drv from now on; Fini closes it.
func NewEngine(drv Driver, opts ...EngineOption) (*Engine, error) {
	if drv == nil {
		return nil, fmt.Errorf("%w: nil driver", ErrInvalidArgument)
	}
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.imageWidth <= 0 || o.imageHeight <= 0 || o.antiAliasing < 0 {
		return nil, fmt.Errorf("%w: image %dx%d, anti-aliasing %d",
			ErrInvalidArgument, o.imageWidth, o.imageHeight, o.antiAliasing)
	}
	trackDriver(drv)
	if err := drv.Open(); err != nil {
		untrackDriver(drv)
		return nil, fmt.Errorf("rendering: open %s: %w", drv.Name(), err)
	}
	Logger().Info("rendering: engine opened", "backend", drv.Name())
	return &Engine{drv: drv, opts: o, nextID: 1}, nil
}

// Name returns the backend name.
func (e *Engine) Name() string { return e.drv.Name() }

// Driver returns the backing driver.
func (e *Engine) Driver() Driver { return e.drv }

// CreateScene creates, loads and initializes a scene.
func (e *Engine) CreateScene(opts ...ObjectOption) (*Scene, error) {
	if e.closed {
		return nil, fmt.Errorf("%w: engine %s", ErrDestroyed, e.drv.Name())
	}
	o := applyObjectOptions(opts)
	id := o.id
	if !o.hasID {
		id = e.nextID
		e.nextID++
	}
	name := o.name
	if name == "" {
		name = fmt.Sprintf("Scene(%d)", id)
	}
	for _, s := range e.scenes {
		if s.id == id || s.name == name {
			return nil, fmt.Errorf("%w: scene %q (id %d)", ErrDuplicate, name, id)
		}
	}

	s := newScene(e, id, name)
	if err := s.Load(); err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		_ = s.sm.Destroy()
		return nil, err
	}
	e.scenes = append(e.scenes, s)
	return s, nil
}

// SceneByName returns the scene with the given name.
func (e *Engine) SceneByName(name string) (*Scene, bool) {
	for _, s := range e.scenes {
		if s.name == name {
			return s, true
		}
	}
	return nil, false
}

// SceneByID returns the scene with the given id.
func (e *Engine) SceneByID(id uint) (*Scene, bool) {
	for _, s := range e.scenes {
		if s.id == id {
			return s, true
		}
	}
	return nil, false
}

// SceneCount returns the number of live scenes.
func (e *Engine) SceneCount() int { return len(e.scenes) }

// Scenes returns the live scenes in creation order.
func (e *Engine) Scenes() []*Scene { return slices.Clone(e.scenes) }

// DestroyScene destroys s and removes it from the engine.
func (e *Engine) DestroyScene(s *Scene) error {
	if s == nil || s.engine != e || !slices.Contains(e.scenes, s) {
		return fmt.Errorf("%w: scene not owned by engine", ErrUnknownReference)
	}
	return s.Destroy()
}

func (e *Engine) forget(s *Scene) {
	if i := slices.Index(e.scenes, s); i >= 0 {
		e.scenes = slices.Delete(e.scenes, i, i+1)
	}
}

// Fini destroys every scene and closes the driver.
func (e *Engine) Fini() error {
	if e.closed {
		return nil
	}
	var firstErr error
	for _, s := range slices.Clone(e.scenes) {
		if err := s.Destroy(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	e.drv.Close()
	untrackDriver(e.drv)
	e.closed = true
	Logger().Info("rendering: engine closed", "backend", e.drv.Name())
	return firstErr
}
