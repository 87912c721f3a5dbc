// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package workspace

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendering"
	"github.com/gogpu/rendering/render"
)

// backgroundUniformSize is the size of the Corners uniform: four
// vec4<f32>.
const backgroundUniformSize = 4 * 4 * 4

// backgroundPipeline draws the four-corner gradient of a workspace as a
// full-screen triangle. Pipelines are created per MSAA sample count on
// first use.
type backgroundPipeline struct {
	device hal.Device

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout

	mu        sync.Mutex
	pipelines map[uint32]hal.RenderPipeline
}

// newBackgroundPipeline creates the layouts around shader. It takes
// ownership of shader.
func newBackgroundPipeline(device hal.Device, shader hal.ShaderModule) (*backgroundPipeline, error) {
	p := &backgroundPipeline{
		device:    device,
		shader:    shader,
		pipelines: make(map[uint32]hal.RenderPipeline),
	}
	uniformLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "workspace_background_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		p.destroy()
		return nil, fmt.Errorf("workspace: create background uniform layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "workspace_background_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		p.destroy()
		return nil, fmt.Errorf("workspace: create background pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout
	return p, nil
}

// pipeline returns the render pipeline for the given sample count.
func (p *backgroundPipeline) pipeline(samples uint32) (hal.RenderPipeline, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pl, ok := p.pipelines[samples]; ok {
		return pl, nil
	}
	attachments := render.WorkspaceAttachments("", 1, 1, samples)
	pl, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("workspace_background_x%d", samples),
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    attachments[render.AttachmentColor].Format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            attachments[render.AttachmentDepth].Format,
			DepthWriteEnabled: false,
			DepthCompare:      gputypes.CompareFunctionAlways,
			StencilFront: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilBack: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: samples,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("workspace: create background pipeline: %w", err)
	}
	p.pipelines[samples] = pl
	return pl, nil
}

// bindUniforms creates a uniform buffer holding the gradient corners and
// a bind group over it.
func (p *backgroundPipeline) bindUniforms(label string) (hal.Buffer, hal.BindGroup, error) {
	buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label + "_background_uniform",
		Size:  backgroundUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("workspace: create background uniform: %w", err)
	}
	group, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_background_bind",
		Layout: p.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: 0, Size: backgroundUniformSize,
			}},
		},
	})
	if err != nil {
		p.device.DestroyBuffer(buf)
		return nil, nil, fmt.Errorf("workspace: create background bind group: %w", err)
	}
	return buf, group, nil
}

// destroy releases the pipelines, the layouts and the shader.
func (p *backgroundPipeline) destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for samples, pl := range p.pipelines {
		p.device.DestroyRenderPipeline(pl)
		delete(p.pipelines, samples)
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// cornerUniforms encodes the gradient corners in the order of the WGSL
// Corners struct.
func cornerUniforms(bg rendering.Background) []byte {
	data := make([]byte, backgroundUniformSize)
	off := 0
	for _, c := range bg.Gradient {
		for _, v := range [4]float32{c.R, c.G, c.B, c.A} {
			binary.LittleEndian.PutUint32(data[off:], math.Float32bits(v))
			off += 4
		}
	}
	return data
}
