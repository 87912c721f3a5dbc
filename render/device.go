// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// Key principle: a backend RECEIVES the device from the host, it does NOT
// have to create one. A host that already owns a device (a window toolkit,
// a simulator) passes it in, and every render-target workspace is allocated
// on that device.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// TextureDescriptor describes one texture of a render-target workspace.
type TextureDescriptor struct {
	// Label is an optional debug label for the texture.
	Label string

	// Width is the texture width in pixels.
	Width uint32

	// Height is the texture height in pixels.
	Height uint32

	// SampleCount is the number of samples for multisampling.
	// Use 1 for no multisampling.
	SampleCount uint32

	// Format is the texture pixel format.
	Format gputypes.TextureFormat

	// Usage specifies how the texture will be used.
	Usage gputypes.TextureUsage
}

// Attachment roles returned by WorkspaceAttachments.
const (
	AttachmentColor = iota
	AttachmentDepth
	AttachmentResolve
)

// WorkspaceAttachments returns the textures a workspace needs to render a
// width x height image with the given sample count: a color attachment,
// a depth-stencil attachment and, when multisampled, a single-sample
// resolve target that is read back.
func WorkspaceAttachments(label string, width, height, sampleCount uint32) []TextureDescriptor {
	if sampleCount < 1 {
		sampleCount = 1
	}
	color := TextureDescriptor{
		Label:       label + "_color",
		Width:       width,
		Height:      height,
		SampleCount: sampleCount,
		Format:      gputypes.TextureFormatRGBA8Unorm,
		Usage:       gputypes.TextureUsageRenderAttachment,
	}
	if sampleCount == 1 {
		color.Usage |= gputypes.TextureUsageCopySrc
	}
	descs := []TextureDescriptor{
		color,
		{
			Label:       label + "_depth",
			Width:       width,
			Height:      height,
			SampleCount: sampleCount,
			Format:      gputypes.TextureFormatDepth24PlusStencil8,
			Usage:       gputypes.TextureUsageRenderAttachment,
		},
	}
	if sampleCount > 1 {
		descs = append(descs, TextureDescriptor{
			Label:       label + "_resolve",
			Width:       width,
			Height:      height,
			SampleCount: 1,
			Format:      gputypes.TextureFormatRGBA8Unorm,
			Usage:       gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
		})
	}
	return descs
}

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Backends treat it as "no host device" and open their own.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo returns empty adapter metadata for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo { return gpucontext.AdapterInfo{} }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
