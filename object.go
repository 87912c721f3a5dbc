// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

import "fmt"

// Object is an addressable entity owned by a scene.
type Object interface {
	// ID returns the object id, unique within its store.
	ID() uint

	// Name returns the object name, unique within its store.
	Name() string

	// Scene returns the owning scene.
	Scene() *Scene

	// Destroy releases the backing object and removes it from its scene.
	Destroy() error
}

// object is the common base of every scene object.
type object struct {
	id        uint
	name      string
	kind      ObjectKind
	scene     *Scene
	destroyed bool
}

// ID returns the object id.
func (o *object) ID() uint { return o.id }

// Name returns the object name.
func (o *object) Name() string { return o.name }

// Scene returns the owning scene.
func (o *object) Scene() *Scene { return o.scene }

// Kind returns the backing-object kind.
func (o *object) Kind() ObjectKind { return o.kind }

// Destroyed reports whether Destroy has been called.
func (o *object) Destroyed() bool { return o.destroyed }

func (o *object) checkAlive() error {
	if o.destroyed {
		return fmt.Errorf("%w: %s %q", ErrDestroyed, o.kind, o.name)
	}
	return nil
}

// release frees the backing object. The object is marked destroyed even
// if the backend reports an error.
func (o *object) release() error {
	if o.destroyed {
		return fmt.Errorf("%w: %s %q", ErrDestroyed, o.kind, o.name)
	}
	o.destroyed = true
	Logger().Debug("rendering: destroy object", "kind", o.kind, "id", o.id, "name", o.name)
	if err := o.scene.sm.DestroyObject(o.kind, o.id); err != nil {
		return fmt.Errorf("rendering: destroy %s %q: %w", o.kind, o.name, err)
	}
	return nil
}

// ObjectOption configures the identity of a created object.
//
// Example:
//
//	light, err := scene.CreatePointLight(rendering.WithName("lamp"))
type ObjectOption func(*objectOptions)

type objectOptions struct {
	id    uint
	hasID bool
	name  string
}

// WithID sets an explicit object id instead of an auto-allocated one.
func WithID(id uint) ObjectOption {
	return func(o *objectOptions) {
		o.id = id
		o.hasID = true
	}
}

// WithName sets an explicit object name instead of a generated one.
func WithName(name string) ObjectOption {
	return func(o *objectOptions) {
		o.name = name
	}
}

func applyObjectOptions(opts []ObjectOption) objectOptions {
	var o objectOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
