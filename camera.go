// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"
)

// Camera is a sensor that renders the scene from its world pose into a
// render texture it owns. The camera looks along its local +X axis.
type Camera struct {
	node
	width, height int
	hfov          float32
	aspect        float32
	near, far     float32
	antiAliasing  int
	passes        []RenderPass
	target        *RenderTexture
}

func newCamera(o object, opts engineOptions) *Camera {
	return &Camera{
		node:         newNode(o),
		width:        opts.imageWidth,
		height:       opts.imageHeight,
		hfov:         opts.hfov,
		near:         0.01,
		far:          1000,
		antiAliasing: opts.antiAliasing,
	}
}

// ImageWidth returns the image width in pixels.
func (c *Camera) ImageWidth() int { return c.width }

// SetImageWidth sets the image width in pixels.
func (c *Camera) SetImageWidth(w int) {
	c.width = w
	if t := c.liveTarget(); t != nil {
		t.SetWidth(w)
	}
}

// ImageHeight returns the image height in pixels.
func (c *Camera) ImageHeight() int { return c.height }

// SetImageHeight sets the image height in pixels.
func (c *Camera) SetImageHeight(h int) {
	c.height = h
	if t := c.liveTarget(); t != nil {
		t.SetHeight(h)
	}
}

// HFOV returns the horizontal field of view in radians.
func (c *Camera) HFOV() float32 { return c.hfov }

// SetHFOV sets the horizontal field of view in radians.
func (c *Camera) SetHFOV(hfov float32) { c.hfov = hfov }

// AspectRatio returns the width to height ratio. Unless set explicitly it
// follows the image size.
func (c *Camera) AspectRatio() float32 {
	if c.aspect > 0 {
		return c.aspect
	}
	if c.height == 0 {
		return 1
	}
	return float32(c.width) / float32(c.height)
}

// SetAspectRatio fixes the aspect ratio. Zero restores the image ratio.
func (c *Camera) SetAspectRatio(r float32) { c.aspect = r }

// NearClipPlane returns the near clip distance.
func (c *Camera) NearClipPlane() float32 { return c.near }

// SetNearClipPlane sets the near clip distance.
func (c *Camera) SetNearClipPlane(near float32) { c.near = near }

// FarClipPlane returns the far clip distance.
func (c *Camera) FarClipPlane() float32 { return c.far }

// SetFarClipPlane sets the far clip distance.
func (c *Camera) SetFarClipPlane(far float32) { c.far = far }

// AntiAliasing returns the anti-aliasing level.
func (c *Camera) AntiAliasing() int { return c.antiAliasing }

// SetAntiAliasing sets the anti-aliasing level of the camera's render
// texture. The texture is rebuilt on the next PreRender.
func (c *Camera) SetAntiAliasing(aa int) error {
	if aa < 0 {
		return fmt.Errorf("%w: anti-aliasing %d", ErrInvalidArgument, aa)
	}
	c.antiAliasing = aa
	if t := c.liveTarget(); t != nil {
		return t.SetAntiAliasing(aa)
	}
	return nil
}

// AddRenderPass appends a post-processing pass to the camera's render
// texture.
func (c *Camera) AddRenderPass(p RenderPass) error {
	if p == nil {
		return fmt.Errorf("%w: nil render pass", ErrInvalidArgument)
	}
	c.passes = append(c.passes, p)
	if t := c.liveTarget(); t != nil {
		return t.AddRenderPass(p)
	}
	return nil
}

// liveTarget returns the camera's render texture, or nil if it was never
// created or was destroyed by the caller.
func (c *Camera) liveTarget() *RenderTexture {
	if c.target != nil && c.target.Destroyed() {
		c.target = nil
	}
	return c.target
}

// owns reports whether t is the camera's own render texture.
func (c *Camera) owns(t *RenderTarget) bool {
	return c.target != nil && &c.target.RenderTarget == t
}

// RenderTarget returns the camera's render texture, creating it on first
// use or after it was destroyed.
func (c *Camera) RenderTarget() (*RenderTexture, error) {
	if err := c.checkAlive(); err != nil {
		return nil, err
	}
	if t := c.liveTarget(); t != nil {
		return t, nil
	}
	t, err := c.scene.createRenderTexture(c.width, c.height, c.antiAliasing,
		[]ObjectOption{WithName(c.name + "_RenderTexture")})
	if err != nil {
		return nil, err
	}
	if err := t.SetCamera(c); err != nil {
		_ = t.Destroy()
		return nil, err
	}
	for _, p := range c.passes {
		if err := t.AddRenderPass(p); err != nil {
			_ = t.Destroy()
			return nil, err
		}
	}
	c.target = t
	return t, nil
}

// PreRender prepares the render texture for the next frame. It picks up
// the scene background and rebuilds the texture if needed.
func (c *Camera) PreRender() error {
	t, err := c.RenderTarget()
	if err != nil {
		return err
	}
	return t.PreRender()
}

// Render renders one frame.
func (c *Camera) Render() error {
	t, err := c.RenderTarget()
	if err != nil {
		return err
	}
	return t.Render()
}

// PostRender finishes the frame.
func (c *Camera) PostRender() {
	if t := c.liveTarget(); t != nil {
		t.PostRender()
	}
}

// Update runs PreRender, Render and PostRender.
func (c *Camera) Update() error {
	if err := c.PreRender(); err != nil {
		return err
	}
	if err := c.Render(); err != nil {
		return err
	}
	c.PostRender()
	return nil
}

// CreateImage allocates an image matching the camera resolution.
func (c *Camera) CreateImage() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, c.width, c.height))
}

// Copy copies the last rendered frame into dst.
func (c *Camera) Copy(dst *image.RGBA) error {
	t := c.liveTarget()
	if t == nil {
		return fmt.Errorf("rendering: copy camera %q: %w", c.name, ErrNotRendered)
	}
	return t.Copy(dst)
}

// Capture renders a frame and returns a copy of it.
func (c *Camera) Capture() (*image.RGBA, error) {
	if err := c.Update(); err != nil {
		return nil, err
	}
	img := c.CreateImage()
	if err := c.Copy(img); err != nil {
		return nil, err
	}
	return img, nil
}

// CreateRenderWindow creates a window target bound to c with the camera's
// resolution and anti-aliasing.
func (c *Camera) CreateRenderWindow(opts ...ObjectOption) (*RenderWindow, error) {
	if err := c.checkAlive(); err != nil {
		return nil, err
	}
	w, err := c.scene.CreateRenderWindow(opts...)
	if err != nil {
		return nil, err
	}
	w.OnResize(c.width, c.height)
	if err := w.SetAntiAliasing(c.antiAliasing); err != nil {
		_ = w.Destroy()
		return nil, err
	}
	if err := w.SetCamera(c); err != nil {
		_ = w.Destroy()
		return nil, err
	}
	return w, nil
}

// view returns the camera state for a frame.
func (c *Camera) view() CameraView {
	return CameraView{
		World:       c.WorldTransform(),
		HFOV:        c.hfov,
		AspectRatio: c.AspectRatio(),
		Near:        c.near,
		Far:         c.far,
	}
}

// Destroy releases the camera's render texture, detaches the camera and
// releases it.
func (c *Camera) Destroy() error {
	if err := c.checkAlive(); err != nil {
		return err
	}
	var firstErr error
	if t := c.liveTarget(); t != nil {
		firstErr = t.Destroy()
		c.target = nil
	}
	c.scene.unbindCamera(c)
	c.node.detach()
	if err := c.release(); err != nil && firstErr == nil {
		firstErr = err
	}
	c.scene.sensors.remove(c)
	return firstErr
}

// DefaultHFOV is the horizontal field of view of new cameras.
const DefaultHFOV = math32.Pi / 2

var _ Node = (*Camera)(nil)
