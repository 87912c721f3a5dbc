// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/rendering"
)

// Factory creates a new, unopened driver instance.
type Factory func() rendering.Driver

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	// The workspace compositor is preferred over the classic pipeline.
	backendPriority = []string{BackendWorkspace, BackendClassic}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Get returns a new driver by name.
// Returns nil if the backend is not registered.
func Get(name string) rendering.Driver {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := factories[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns a new driver of the best available backend.
// Priority order: workspace > classic, then any other registered name.
// Returns nil if no backends are registered.
func Default() rendering.Driver {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		if factory, ok := factories[name]; ok {
			if d := factory(); d != nil {
				return d
			}
		}
	}

	// Fallback: first registered name in sorted order.
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if d := factories[name](); d != nil {
			return d
		}
	}
	return nil
}

// MustDefault returns the default driver or panics.
func MustDefault() rendering.Driver {
	d := Default()
	if d == nil {
		panic("backend: no backend available")
	}
	return d
}

// Open creates an engine on the named backend. An empty name selects
// Default.
func Open(name string, opts ...rendering.EngineOption) (*rendering.Engine, error) {
	var d rendering.Driver
	if name == "" {
		d = Default()
	} else {
		d = Get(name)
	}
	if d == nil {
		if name == "" {
			return nil, ErrBackendNotAvailable
		}
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return rendering.NewEngine(d, opts...)
}

// OpenConfig creates an engine on the backend named by cfg, applying its
// render defaults.
func OpenConfig(cfg rendering.Config, opts ...rendering.EngineOption) (*rendering.Engine, error) {
	all := append([]rendering.EngineOption{rendering.WithConfig(cfg)}, opts...)
	return Open(cfg.Backend, all...)
}
