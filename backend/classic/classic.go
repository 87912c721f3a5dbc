// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package classic

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gogpu/rendering"
	"github.com/gogpu/rendering/backend"
	"github.com/gogpu/rendering/internal/parallel"
)

func init() {
	backend.Register(backend.BackendClassic, func() rendering.Driver {
		return New()
	})
}

// maxSupersample bounds the supersampling factor.
const maxSupersample = 4

// Driver is the classic backend.
type Driver struct {
	mu       sync.Mutex
	open     bool
	pool     *parallel.WorkerPool
	managers map[uint]*sceneManager

	log atomic.Pointer[slog.Logger]
}

// New creates a classic driver. Call Open before use.
func New() *Driver {
	d := &Driver{managers: make(map[uint]*sceneManager)}
	d.log.Store(rendering.Logger())
	return d
}

// Name returns "classic".
func (d *Driver) Name() string { return backend.BackendClassic }

// SetLogger sets the logger of the driver.
func (d *Driver) SetLogger(l *slog.Logger) {
	if l != nil {
		d.log.Store(l)
	}
}

func (d *Driver) logger() *slog.Logger { return d.log.Load() }

// Open starts the worker pool.
func (d *Driver) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.open {
		return nil
	}
	d.pool = parallel.NewWorkerPool(0)
	d.open = true
	d.logger().Info("classic: opened", "workers", d.pool.Workers())
	return nil
}

// Close destroys every scene manager and stops the worker pool.
func (d *Driver) Close() {
	d.mu.Lock()
	managers := d.managers
	d.managers = make(map[uint]*sceneManager)
	pool := d.pool
	d.pool = nil
	d.open = false
	d.mu.Unlock()

	for _, sm := range managers {
		_ = sm.Destroy()
	}
	if pool != nil {
		pool.Close()
	}
	d.logger().Info("classic: closed")
}

// NewSceneManager creates the scene manager of one scene.
func (d *Driver) NewSceneManager(sceneID uint, name string) (rendering.SceneManager, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return nil, fmt.Errorf("classic: %w", rendering.ErrNotInitialized)
	}
	if _, ok := d.managers[sceneID]; ok {
		return nil, fmt.Errorf("%w: classic scene manager %d", rendering.ErrDuplicate, sceneID)
	}
	sm := newSceneManager(d, sceneID, name)
	d.managers[sceneID] = sm
	d.logger().Debug("classic: scene manager created", "scene", name, "id", sceneID)
	return sm, nil
}

func (d *Driver) forget(sm *sceneManager) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.managers[sm.id] == sm {
		delete(d.managers, sm.id)
	}
}

// SupersampleFactor returns the per-axis supersampling factor of an
// anti-aliasing level.
func SupersampleFactor(aa int) int {
	if aa <= 1 {
		return 1
	}
	f := int(math.Floor(math.Sqrt(float64(aa))))
	return min(max(f, 1), maxSupersample)
}

var _ rendering.Driver = (*Driver)(nil)
