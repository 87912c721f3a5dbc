// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/rendering"
)

// stubDriver is a driver whose scene managers accept everything.
type stubDriver struct {
	name   string
	opened bool
	closed bool
}

func (d *stubDriver) Name() string { return d.name }

func (d *stubDriver) Close() { d.closed = true }

func (d *stubDriver) Open() error {
	d.opened = true
	return nil
}

func (d *stubDriver) NewSceneManager(uint, string) (rendering.SceneManager, error) {
	return stubSceneManager{}, nil
}

type stubSceneManager struct{}

func (stubSceneManager) CreateObject(rendering.ObjectKind, uint, string) error { return nil }

func (stubSceneManager) DestroyObject(rendering.ObjectKind, uint) error { return nil }

func (stubSceneManager) Destroy() error { return nil }

func (stubSceneManager) CreateSurface(*rendering.SurfaceDescriptor) (rendering.Surface, error) {
	return nil, errors.New("stub: no surfaces")
}

func (stubSceneManager) CreateWorkspace(rendering.Surface, *rendering.WorkspaceDescriptor) (rendering.Workspace, error) {
	return nil, errors.New("stub: no workspaces")
}


// withRegistry swaps the registry for the duration of a test.
func withRegistry(t *testing.T, entries map[string]Factory) {
	t.Helper()
	registryMu.Lock()
	saved := factories
	factories = entries
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		factories = saved
		registryMu.Unlock()
	})
}

func stubFactory(name string) Factory {
	return func() rendering.Driver { return &stubDriver{name: name} }
}

func TestRegistry(t *testing.T) {
	withRegistry(t, map[string]Factory{})

	Register("test", stubFactory("test"))
	if !IsRegistered("test") {
		t.Error("IsRegistered(test) = false after Register")
	}
	if d := Get("test"); d == nil || d.Name() != "test" {
		t.Errorf("Get(test) = %v, want driver named test", d)
	}
	if d := Get("missing"); d != nil {
		t.Errorf("Get(missing) = %v, want nil", d)
	}

	Register("other", stubFactory("other"))
	if got, want := Available(), []string{"other", "test"}; !slices.Equal(got, want) {
		t.Errorf("Available() = %v, want %v", got, want)
	}

	Unregister("test")
	if IsRegistered("test") {
		t.Error("IsRegistered(test) = true after Unregister")
	}
}

func TestDefaultPriority(t *testing.T) {
	tests := []struct {
		name       string
		registered []string
		want       string
	}{
		{"workspace preferred", []string{BackendClassic, BackendWorkspace}, BackendWorkspace},
		{"classic fallback", []string{BackendClassic}, BackendClassic},
		{"unknown names sorted", []string{"zeta", "alpha"}, "alpha"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := make(map[string]Factory)
			for _, n := range tt.registered {
				entries[n] = stubFactory(n)
			}
			withRegistry(t, entries)

			d := Default()
			if d == nil {
				t.Fatal("Default() = nil")
			}
			if d.Name() != tt.want {
				t.Errorf("Default().Name() = %q, want %q", d.Name(), tt.want)
			}
		})
	}
}

func TestDefaultEmpty(t *testing.T) {
	withRegistry(t, map[string]Factory{})

	if d := Default(); d != nil {
		t.Errorf("Default() = %v, want nil", d)
	}
	defer func() {
		if recover() == nil {
			t.Error("MustDefault() did not panic on an empty registry")
		}
	}()
	MustDefault()
}

func TestOpen(t *testing.T) {
	drv := &stubDriver{name: BackendClassic}
	withRegistry(t, map[string]Factory{
		BackendClassic: func() rendering.Driver { return drv },
	})

	e, err := Open(BackendClassic, rendering.WithImageSize(64, 48))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !drv.opened {
		t.Error("Open() did not open the driver")
	}
	if e.Name() != BackendClassic {
		t.Errorf("Name() = %q, want %q", e.Name(), BackendClassic)
	}
	if err := e.Fini(); err != nil {
		t.Errorf("Fini() error = %v", err)
	}
	if !drv.closed {
		t.Error("Fini() did not close the driver")
	}

	if _, err := Open("missing"); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Open(missing) error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestOpenConfig(t *testing.T) {
	withRegistry(t, map[string]Factory{BackendWorkspace: stubFactory(BackendWorkspace)})

	cfg := rendering.DefaultConfig()
	e, err := OpenConfig(cfg)
	if err != nil {
		t.Fatalf("OpenConfig() error = %v", err)
	}
	defer e.Fini()
	if e.Name() != BackendWorkspace {
		t.Errorf("Name() = %q, want %q", e.Name(), BackendWorkspace)
	}

	cfg.Backend = "missing"
	if _, err := OpenConfig(cfg); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("OpenConfig(missing) error = %v, want ErrBackendNotAvailable", err)
	}
}
