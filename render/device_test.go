// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNullDeviceHandle(t *testing.T) {
	var handle DeviceHandle = NullDeviceHandle{}

	if handle.Device() != nil {
		t.Error("NullDeviceHandle.Device() should return nil")
	}
	if handle.Queue() != nil {
		t.Error("NullDeviceHandle.Queue() should return nil")
	}
	if handle.Adapter() != nil {
		t.Error("NullDeviceHandle.Adapter() should return nil")
	}
	if handle.SurfaceFormat() != gputypes.TextureFormatUndefined {
		t.Error("NullDeviceHandle.SurfaceFormat() should return Undefined")
	}
}

func TestWorkspaceAttachments(t *testing.T) {
	tests := []struct {
		name        string
		samples     uint32
		wantCount   int
		wantSamples uint32
	}{
		{"single sample", 1, 2, 1},
		{"zero clamps to one", 0, 2, 1},
		{"msaa", 4, 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			descs := WorkspaceAttachments("cam", 64, 32, tt.samples)
			if len(descs) != tt.wantCount {
				t.Fatalf("len = %d, want %d", len(descs), tt.wantCount)
			}

			color := descs[AttachmentColor]
			if color.Width != 64 || color.Height != 32 {
				t.Errorf("color size = %dx%d, want 64x32", color.Width, color.Height)
			}
			if color.SampleCount != tt.wantSamples {
				t.Errorf("color SampleCount = %d, want %d", color.SampleCount, tt.wantSamples)
			}
			if descs[AttachmentDepth].Format != gputypes.TextureFormatDepth24PlusStencil8 {
				t.Errorf("depth Format = %v, want Depth24PlusStencil8", descs[AttachmentDepth].Format)
			}

			readback := color
			if tt.wantCount == 3 {
				readback = descs[AttachmentResolve]
				if readback.SampleCount != 1 {
					t.Errorf("resolve SampleCount = %d, want 1", readback.SampleCount)
				}
			}
			if readback.Usage&gputypes.TextureUsageCopySrc == 0 {
				t.Error("readback attachment must be CopySrc")
			}
		})
	}
}
