// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

import (
	"fmt"
	"image"
	"slices"

	"github.com/gogpu/gputypes"
)

// TargetState is the lifecycle state of a render target.
type TargetState uint8

// Render target states.
const (
	// TargetUninitialized: never built.
	TargetUninitialized TargetState = iota
	// TargetBuilt: surface and workspace match the settings.
	TargetBuilt
	// TargetDirty: a setting changed since the last build.
	TargetDirty
	// TargetDestroyed: released; every operation fails.
	TargetDestroyed
)

// String returns the state name.
func (s TargetState) String() string {
	switch s {
	case TargetUninitialized:
		return "Uninitialized"
	case TargetBuilt:
		return "Built"
	case TargetDirty:
		return "Dirty"
	case TargetDestroyed:
		return "Destroyed"
	default:
		return fmt.Sprintf("TargetState(%d)", s)
	}
}

// DefaultAntiAliasing is the anti-aliasing level of new render targets.
const DefaultAntiAliasing = 4

// surfaceSource builds the surface descriptor of a render target. Render
// textures and render windows provide their own.
type surfaceSource interface {
	surfaceDescriptor() SurfaceDescriptor
	postRender()
}

// RenderTarget owns the surface and compositor workspace that render a
// camera's view.
//
// Changing the camera, anti-aliasing, override material, render passes or
// size marks the target dirty. The next PreRender (or Rebuild) rebuilds
// the surface, then the compositor workspace, then the material binding.
// Render on a dirty or never-built target fails with ErrNotBuilt.
//
// Copy never rebuilds: it fails with ErrNotRendered before the first
// frame and with ErrStale once the target is dirty again.
type RenderTarget struct {
	object
	source surfaceSource

	width, height int
	camera        *Camera
	antiAliasing  int
	material      *Material
	passes        []RenderPass
	background    Background
	colorDirty    bool

	// ownBackground is set once the caller picks a background; until then
	// the target follows the scene background.
	ownBackground bool

	state     TargetState
	surface   Surface
	workspace Workspace
	frames    uint64

	// fresh is set by Render and cleared by Rebuild.
	fresh bool
}

func newRenderTarget(o object, width, height, aa int) RenderTarget {
	return RenderTarget{
		object:       o,
		width:        width,
		height:       height,
		antiAliasing: aa,
		background:   Background{Color: Black},
	}
}

// State returns the lifecycle state.
func (t *RenderTarget) State() TargetState { return t.state }

// Width returns the width in pixels.
func (t *RenderTarget) Width() int { return t.width }

// Height returns the height in pixels.
func (t *RenderTarget) Height() int { return t.height }

// Format returns the pixel format of Copy output.
func (t *RenderTarget) Format() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }

// FrameCount returns the number of frames rendered.
func (t *RenderTarget) FrameCount() uint64 { return t.frames }

// Camera returns the camera the target renders from. The target does not
// own the camera.
func (t *RenderTarget) Camera() *Camera { return t.camera }

// SetCamera binds the target to c and marks it dirty.
func (t *RenderTarget) SetCamera(c *Camera) error {
	if err := t.checkAlive(); err != nil {
		return err
	}
	if c != nil {
		if err := c.checkAlive(); err != nil {
			return err
		}
		if c.scene != t.scene {
			return fmt.Errorf("%w: camera %q belongs to another scene", ErrInvalidArgument, c.name)
		}
	}
	t.camera = c
	t.markDirty()
	return nil
}

// AntiAliasing returns the anti-aliasing level.
func (t *RenderTarget) AntiAliasing() int { return t.antiAliasing }

// SetAntiAliasing sets the anti-aliasing level and marks the target dirty.
// The change takes effect only after a full rebuild.
func (t *RenderTarget) SetAntiAliasing(aa int) error {
	if err := t.checkAlive(); err != nil {
		return err
	}
	if aa < 0 {
		return fmt.Errorf("%w: anti-aliasing %d", ErrInvalidArgument, aa)
	}
	t.antiAliasing = aa
	t.markDirty()
	return nil
}

// Material returns the override material, or nil.
func (t *RenderTarget) Material() *Material { return t.material }

// SetMaterial makes every drawable render with m. Nil clears the override.
// The target is marked dirty.
func (t *RenderTarget) SetMaterial(m *Material) error {
	if err := t.checkAlive(); err != nil {
		return err
	}
	if m != nil {
		if err := m.checkAlive(); err != nil {
			return err
		}
	}
	t.material = m
	t.markDirty()
	return nil
}

// AddRenderPass appends p to the workspace pass list and marks the target
// dirty.
func (t *RenderTarget) AddRenderPass(p RenderPass) error {
	if err := t.checkAlive(); err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: nil render pass", ErrInvalidArgument)
	}
	t.passes = append(t.passes, p)
	t.markDirty()
	return nil
}

// RemoveRenderPass removes p and marks the target dirty.
func (t *RenderTarget) RemoveRenderPass(p RenderPass) error {
	i := slices.Index(t.passes, p)
	if i < 0 {
		return fmt.Errorf("%w: render pass not attached", ErrUnknownReference)
	}
	t.passes = slices.Delete(t.passes, i, i+1)
	t.markDirty()
	return nil
}

// RenderPasses returns a copy of the pass list.
func (t *RenderTarget) RenderPasses() []RenderPass { return slices.Clone(t.passes) }

// Background returns the background applied on the next PreRender. Until
// SetBackground or SetBackgroundColor is called it is the scene background
// as of the last PreRender.
func (t *RenderTarget) Background() Background { return t.background }

// BackgroundColor returns the solid background color.
func (t *RenderTarget) BackgroundColor() Color { return t.background.Color }

// SetBackgroundColor sets a solid background. It is applied to the
// workspace on the next PreRender without a rebuild.
func (t *RenderTarget) SetBackgroundColor(c Color) {
	t.SetBackground(Background{Color: c})
}

// SetBackground sets the background. It is applied on the next PreRender
// and stops the target from following the scene background.
func (t *RenderTarget) SetBackground(bg Background) {
	t.ownBackground = true
	t.applyBackground(bg)
}

// UseSceneBackground makes the target follow the scene background again
// from the next PreRender on.
func (t *RenderTarget) UseSceneBackground() { t.ownBackground = false }

func (t *RenderTarget) applyBackground(bg Background) {
	if bg == t.background {
		return
	}
	t.background = bg
	t.colorDirty = true
}

func (t *RenderTarget) markDirty() {
	if t.state == TargetBuilt {
		t.state = TargetDirty
	}
}

// PreRender picks up the scene background unless the target has its own,
// rebuilds the target if it is uninitialized or dirty and then applies a
// pending background change.
func (t *RenderTarget) PreRender() error {
	if err := t.checkAlive(); err != nil {
		return err
	}
	if !t.ownBackground {
		t.applyBackground(t.scene.Background())
	}
	if t.state != TargetBuilt {
		if err := t.Rebuild(); err != nil {
			return err
		}
	}
	if t.colorDirty {
		t.workspace.SetBackground(t.background)
		t.colorDirty = false
	}
	return nil
}

// Rebuild recreates the surface, then the compositor workspace, then the
// material binding. On failure the target stays unbuilt.
func (t *RenderTarget) Rebuild() error {
	if err := t.checkAlive(); err != nil {
		return err
	}
	if t.camera == nil {
		return fmt.Errorf("rendering: rebuild %q: %w", t.name, ErrNoCamera)
	}
	if t.width <= 0 || t.height <= 0 {
		return fmt.Errorf("%w: render target %q is %dx%d", ErrInvalidArgument, t.name, t.width, t.height)
	}
	if t.state == TargetBuilt {
		t.state = TargetDirty
	}
	if err := t.rebuildTarget(); err != nil {
		return err
	}
	if err := t.rebuildCompositor(); err != nil {
		return err
	}
	t.rebuildMaterial()
	t.state = TargetBuilt
	t.fresh = false
	return nil
}

func (t *RenderTarget) rebuildTarget() error {
	t.destroyWorkspace()
	t.destroySurface()

	desc := t.source.surfaceDescriptor()
	surface, err := t.scene.sm.CreateSurface(&desc)
	if err != nil {
		return fmt.Errorf("rendering: create %s surface for %q: %w", desc.Kind, t.name, err)
	}
	t.surface = surface
	Logger().Debug("rendering: surface built",
		"target", t.name, "kind", desc.Kind, "width", desc.Width, "height", desc.Height, "aa", desc.AntiAliasing)
	return nil
}

func (t *RenderTarget) rebuildCompositor() error {
	ws, err := t.scene.sm.CreateWorkspace(t.surface, &WorkspaceDescriptor{
		Label:    t.name,
		CameraID: t.camera.id,
		Passes:   slices.Clone(t.passes),
	})
	if err != nil {
		return fmt.Errorf("rendering: create workspace for %q: %w", t.name, err)
	}
	t.workspace = ws
	ws.SetBackground(t.background)
	t.colorDirty = false
	return nil
}

func (t *RenderTarget) rebuildMaterial() {
	if t.material == nil {
		t.workspace.SetMaterial(nil)
		return
	}
	props := t.material.Properties()
	t.workspace.SetMaterial(&props)
}

// Render issues exactly one frame. The target must be built and clean.
func (t *RenderTarget) Render() error {
	if err := t.checkAlive(); err != nil {
		return err
	}
	if t.state != TargetBuilt {
		return fmt.Errorf("rendering: render %q (%s): %w", t.name, t.state, ErrNotBuilt)
	}
	f := t.scene.frame(t.camera, t.width, t.height, t.frames+1)
	f.Background = t.background
	if err := t.workspace.Render(f); err != nil {
		return fmt.Errorf("rendering: render %q: %w", t.name, err)
	}
	t.frames++
	t.fresh = true
	return nil
}

// PostRender finishes the frame. Windows present it.
func (t *RenderTarget) PostRender() {
	if t.destroyed || !t.fresh {
		return
	}
	t.source.postRender()
}

// Copy copies the last frame into dst, which must match the target size.
// It blocks until the pixels are available.
func (t *RenderTarget) Copy(dst *image.RGBA) error {
	if err := t.checkAlive(); err != nil {
		return err
	}
	if t.frames == 0 {
		return fmt.Errorf("rendering: copy %q: %w", t.name, ErrNotRendered)
	}
	if t.state != TargetBuilt || !t.fresh {
		return fmt.Errorf("rendering: copy %q: %w", t.name, ErrStale)
	}
	if dst == nil || dst.Bounds().Dx() != t.width || dst.Bounds().Dy() != t.height {
		return fmt.Errorf("%w: copy destination must be %dx%d", ErrInvalidArgument, t.width, t.height)
	}
	if err := t.workspace.ReadPixels(dst); err != nil {
		return fmt.Errorf("rendering: copy %q: %w", t.name, err)
	}
	return nil
}

// CreateImage allocates an image matching the target size.
func (t *RenderTarget) CreateImage() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, t.width, t.height))
}

// Destroy releases the workspace, the surface and the backing object.
func (t *RenderTarget) Destroy() error {
	if err := t.checkAlive(); err != nil {
		return err
	}
	t.destroyWorkspace()
	t.destroySurface()
	t.state = TargetDestroyed
	t.scene.dropTarget(t)
	return t.release()
}

func (t *RenderTarget) destroyWorkspace() {
	if t.workspace == nil {
		return
	}
	if err := t.workspace.Destroy(); err != nil {
		Logger().Warn("rendering: workspace release failed", "target", t.name, "err", err)
	}
	t.workspace = nil
}

func (t *RenderTarget) destroySurface() {
	if t.surface == nil {
		return
	}
	if err := t.surface.Destroy(); err != nil {
		Logger().Warn("rendering: surface release failed", "target", t.name, "err", err)
	}
	t.surface = nil
}

// RenderTexture is an off-screen render target.
type RenderTexture struct {
	RenderTarget
}

// SetWidth sets the width and marks the texture dirty if it changed.
func (t *RenderTexture) SetWidth(w int) {
	if w != t.width {
		t.width = w
		t.markDirty()
	}
}

// SetHeight sets the height and marks the texture dirty if it changed.
func (t *RenderTexture) SetHeight(h int) {
	if h != t.height {
		t.height = h
		t.markDirty()
	}
}

func (t *RenderTexture) surfaceDescriptor() SurfaceDescriptor {
	return SurfaceDescriptor{
		Label:        t.name,
		Kind:         SurfaceTexture,
		Width:        t.width,
		Height:       t.height,
		AntiAliasing: t.antiAliasing,
	}
}

func (t *RenderTexture) postRender() {}

// RenderWindow is a render target presented to a native window.
type RenderWindow struct {
	RenderTarget
	handle    string
	presented uint64
}

// Handle returns the opaque native window handle.
func (w *RenderWindow) Handle() string { return w.handle }

// SetHandle sets the native window handle and marks the window dirty.
func (w *RenderWindow) SetHandle(h string) {
	w.handle = h
	w.markDirty()
}

// OnResize records a new window size and marks the window dirty.
func (w *RenderWindow) OnResize(width, height int) {
	if width == w.width && height == w.height {
		return
	}
	w.width = width
	w.height = height
	w.markDirty()
}

// PresentCount returns the number of frames presented.
func (w *RenderWindow) PresentCount() uint64 { return w.presented }

func (w *RenderWindow) surfaceDescriptor() SurfaceDescriptor {
	return SurfaceDescriptor{
		Label:        w.name,
		Kind:         SurfaceWindow,
		Width:        w.width,
		Height:       w.height,
		AntiAliasing: w.antiAliasing,
		Handle:       w.handle,
	}
}

func (w *RenderWindow) postRender() { w.presented++ }

var (
	_ surfaceSource = (*RenderTexture)(nil)
	_ surfaceSource = (*RenderWindow)(nil)
)
