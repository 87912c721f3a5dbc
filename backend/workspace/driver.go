// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/rendering"
	"github.com/gogpu/rendering/backend"
	"github.com/gogpu/rendering/internal/parallel"
	"github.com/gogpu/rendering/render"
)

func init() {
	backend.Register(backend.BackendWorkspace, func() rendering.Driver {
		return New()
	})
}

// ErrNotHALDevice is returned by Open when the host device provider does
// not hand out HAL devices and queues.
var ErrNotHALDevice = errors.New("workspace: host device is not a HAL device")

// Driver is the workspace backend.
type Driver struct {
	mu       sync.Mutex
	open     bool
	provider render.DeviceHandle

	instance   hal.Instance
	device     hal.Device
	queue      hal.Queue
	ownsDevice bool
	adapter    string

	background *backgroundPipeline
	pool       *parallel.WorkerPool
	managers   map[uint]*sceneManager

	log atomic.Pointer[slog.Logger]
}

// New creates a workspace driver. Call Open before use.
func New() *Driver {
	d := &Driver{managers: make(map[uint]*sceneManager)}
	d.log.Store(rendering.Logger())
	return d
}

// Name returns "workspace".
func (d *Driver) Name() string { return backend.BackendWorkspace }

// SetLogger sets the logger of the driver and of the HAL layer.
func (d *Driver) SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	d.log.Store(l)
	hal.SetLogger(l)
}

func (d *Driver) logger() *slog.Logger { return d.log.Load() }

// SetDeviceProvider makes Open use the host's device instead of opening
// one. It must be called before Open. A provider whose Device is nil, like
// render.NullDeviceHandle, is ignored.
func (d *Driver) SetDeviceProvider(p render.DeviceHandle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.open {
		return fmt.Errorf("%w: workspace device provider must be set before Open", rendering.ErrInvalidArgument)
	}
	d.provider = p
	return nil
}

// AdapterName returns the name of the adapter in use.
func (d *Driver) AdapterName() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.adapter
}

// Open acquires the device, compiles the background shader into the
// gradient pipeline and starts the worker pool.
func (d *Driver) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.open {
		return nil
	}
	if err := d.acquireDevice(); err != nil {
		return err
	}
	module, err := d.createBackgroundShader()
	if err != nil {
		d.releaseDevice()
		return err
	}
	bg, err := newBackgroundPipeline(d.device, module)
	if err != nil {
		d.releaseDevice()
		return err
	}
	d.background = bg
	d.pool = parallel.NewWorkerPool(0)
	d.open = true
	d.logger().Info("workspace: opened", "adapter", d.adapter, "host_device", !d.ownsDevice)
	return nil
}

func (d *Driver) acquireDevice() error {
	if d.provider != nil && d.provider.Device() != nil {
		dev, ok := d.provider.Device().(hal.Device)
		if !ok {
			return ErrNotHALDevice
		}
		q, ok := d.provider.Queue().(hal.Queue)
		if !ok {
			return ErrNotHALDevice
		}
		d.device, d.queue = dev, q
		d.ownsDevice = false
		d.adapter = d.provider.AdapterInfo().Name
		return nil
	}

	inst, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		return fmt.Errorf("workspace: create instance: %w", err)
	}
	adapters := inst.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		inst.Destroy()
		return fmt.Errorf("workspace: %w", backend.ErrBackendNotAvailable)
	}
	od, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		inst.Destroy()
		return fmt.Errorf("workspace: open device: %w", err)
	}
	d.instance = inst
	d.device, d.queue = od.Device, od.Queue
	d.ownsDevice = true
	d.adapter = adapters[0].Info.Name
	return nil
}

func (d *Driver) releaseDevice() {
	if d.ownsDevice {
		if d.device != nil {
			d.device.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.instance, d.device, d.queue = nil, nil, nil
	d.ownsDevice = false
}

// Close destroys every scene manager, the background pipeline and the
// worker pool, and releases the device if the driver opened it.
func (d *Driver) Close() {
	d.mu.Lock()
	managers := d.managers
	d.managers = make(map[uint]*sceneManager)
	d.mu.Unlock()

	for _, sm := range managers {
		_ = sm.Destroy()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return
	}
	if err := d.device.WaitIdle(); err != nil {
		d.logger().Warn("workspace: wait idle on close", "err", err)
	}
	d.background.destroy()
	d.background = nil
	d.pool.Close()
	d.pool = nil
	d.releaseDevice()
	d.open = false
	d.logger().Info("workspace: closed")
}

// NewSceneManager creates the scene manager of one scene.
func (d *Driver) NewSceneManager(sceneID uint, name string) (rendering.SceneManager, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return nil, fmt.Errorf("workspace: %w", rendering.ErrNotInitialized)
	}
	if _, ok := d.managers[sceneID]; ok {
		return nil, fmt.Errorf("%w: workspace scene manager %d", rendering.ErrDuplicate, sceneID)
	}
	sm := newSceneManager(d, sceneID, name)
	d.managers[sceneID] = sm
	d.logger().Debug("workspace: scene manager created", "scene", name, "id", sceneID)
	return sm, nil
}

func (d *Driver) forget(sm *sceneManager) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.managers[sm.id] == sm {
		delete(d.managers, sm.id)
	}
}

// SampleCount returns the MSAA sample count of an anti-aliasing level.
func SampleCount(aa int) uint32 {
	if aa <= 1 {
		return 1
	}
	return 4
}

var _ rendering.Driver = (*Driver)(nil)
