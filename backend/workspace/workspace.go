// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package workspace

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendering"
	"github.com/gogpu/rendering/internal/compositor"
	"github.com/gogpu/rendering/render"
)

// workspace renders one target: a background pass on the device, then
// the CPU compositor.
type workspace struct {
	sm      *sceneManager
	drv     *Driver
	label   string
	surface *surface
	comp    *compositor.Compositor

	background rendering.Background

	// Gradient uniforms, created on the first gradient frame.
	uniform      hal.Buffer
	bindGroup    hal.BindGroup
	uniformDirty bool

	submissions   uint64
	gradientDraws uint64
	destroyed     bool
}

func (w *workspace) SetBackground(bg rendering.Background) {
	w.background = bg
	w.uniformDirty = true
	w.comp.SetBackground(bg)
}

func (w *workspace) SetMaterial(m *rendering.MaterialProperties) { w.comp.SetMaterial(m) }

// Render submits the background pass, waits for the device and composes
// the frame.
func (w *workspace) Render(f *rendering.Frame) error {
	if w.destroyed || w.surface.destroyed {
		return fmt.Errorf("%w: workspace %q", rendering.ErrDestroyed, w.label)
	}
	if err := w.submitBackgroundPass(); err != nil {
		return err
	}
	return w.comp.Compose(f)
}

// prepareGradient uploads the gradient corners and returns the pipeline
// that draws them.
func (w *workspace) prepareGradient() (hal.RenderPipeline, error) {
	pl, err := w.drv.background.pipeline(w.surface.samples)
	if err != nil {
		return nil, err
	}
	if w.uniform == nil {
		w.uniform, w.bindGroup, err = w.drv.background.bindUniforms(w.label)
		if err != nil {
			return nil, err
		}
		w.uniformDirty = true
	}
	if w.uniformDirty {
		if err := w.drv.queue.WriteBuffer(w.uniform, 0, cornerUniforms(w.background)); err != nil {
			return nil, fmt.Errorf("workspace: write background uniform: %w", err)
		}
		w.uniformDirty = false
	}
	return pl, nil
}

// submitBackgroundPass clears the color attachment to the background
// color. A gradient is drawn over it with the background pipeline.
func (w *workspace) submitBackgroundPass() error {
	device, queue := w.drv.device, w.drv.queue
	var gradient hal.RenderPipeline
	if w.background.HasGradient {
		pl, err := w.prepareGradient()
		if err != nil {
			return err
		}
		gradient = pl
	}

	enc, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: w.label})
	if err != nil {
		return fmt.Errorf("workspace: create encoder: %w", err)
	}
	defer enc.Destroy()

	if err := enc.BeginEncoding(w.label); err != nil {
		return fmt.Errorf("workspace: begin encoding: %w", err)
	}
	pass := enc.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: w.label + "_background",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:          w.surface.view(render.AttachmentColor),
			ResolveTarget: w.surface.view(render.AttachmentResolve),
			LoadOp:        gputypes.LoadOpClear,
			StoreOp:       gputypes.StoreOpStore,
			ClearValue:    w.background.Color.GPU(),
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              w.surface.view(render.AttachmentDepth),
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   1,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpDiscard,
			StencilClearValue: 0,
		},
	})
	if gradient != nil {
		pass.SetPipeline(gradient)
		pass.SetBindGroup(0, w.bindGroup, nil)
		pass.Draw(3, 1, 0, 0)
		w.gradientDraws++
	}
	pass.End()

	cb, err := enc.EndEncoding()
	if err != nil {
		return fmt.Errorf("workspace: end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cb)

	if _, err := queue.Submit([]hal.CommandBuffer{cb}); err != nil {
		return fmt.Errorf("workspace: submit: %w", err)
	}
	if err := device.WaitIdle(); err != nil {
		return fmt.Errorf("workspace: wait idle: %w", err)
	}
	w.submissions++
	return nil
}

// ReadPixels copies the last composed frame into dst.
func (w *workspace) ReadPixels(dst *image.RGBA) error {
	if w.destroyed {
		return fmt.Errorf("%w: workspace %q", rendering.ErrDestroyed, w.label)
	}
	return w.comp.ReadPixels(dst)
}

func (w *workspace) Destroy() error {
	w.sm.mu.Lock()
	defer w.sm.mu.Unlock()
	w.release()
	delete(w.sm.workspaces, w)
	return nil
}

// release destroys the gradient uniforms. The caller holds sm.mu.
func (w *workspace) release() {
	if device := w.drv.device; device != nil {
		if w.bindGroup != nil {
			device.DestroyBindGroup(w.bindGroup)
		}
		if w.uniform != nil {
			device.DestroyBuffer(w.uniform)
		}
	}
	w.bindGroup, w.uniform = nil, nil
	w.destroyed = true
}

var _ rendering.Workspace = (*workspace)(nil)
