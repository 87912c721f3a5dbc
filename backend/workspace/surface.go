// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package workspace

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendering"
	"github.com/gogpu/rendering/render"
)

// surface owns the device attachments of one render target.
type surface struct {
	sm            *sceneManager
	label         string
	width, height int
	samples       uint32

	textures  []hal.Texture
	views     []hal.TextureView
	destroyed bool
}

func newSurface(sm *sceneManager, desc *rendering.SurfaceDescriptor) (*surface, error) {
	s := &surface{
		sm:      sm,
		label:   desc.Label,
		width:   desc.Width,
		height:  desc.Height,
		samples: SampleCount(desc.AntiAliasing),
	}
	device := sm.drv.device
	for _, td := range render.WorkspaceAttachments(desc.Label, uint32(desc.Width), uint32(desc.Height), s.samples) {
		tex, err := device.CreateTexture(&hal.TextureDescriptor{
			Label:         td.Label,
			Size:          hal.Extent3D{Width: td.Width, Height: td.Height, DepthOrArrayLayers: 1},
			MipLevelCount: 1,
			SampleCount:   td.SampleCount,
			Dimension:     gputypes.TextureDimension2D,
			Format:        td.Format,
			Usage:         td.Usage,
		})
		if err != nil {
			s.release()
			return nil, fmt.Errorf("workspace: create texture %q: %w", td.Label, err)
		}
		s.textures = append(s.textures, tex)
		view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{Label: td.Label + "_view"})
		if err != nil {
			s.release()
			return nil, fmt.Errorf("workspace: create view %q: %w", td.Label, err)
		}
		s.views = append(s.views, view)
	}
	return s, nil
}

func (s *surface) Width() int { return s.width }

func (s *surface) Height() int { return s.height }

// SampleCount returns the MSAA sample count of the color attachment.
func (s *surface) SampleCount() uint32 { return s.samples }

func (s *surface) Destroy() error {
	s.sm.mu.Lock()
	defer s.sm.mu.Unlock()
	if s.destroyed {
		return nil
	}
	s.release()
	delete(s.sm.surfaces, s)
	return nil
}

// release destroys the views and textures. The caller holds sm.mu.
func (s *surface) release() {
	device := s.sm.drv.device
	if device != nil {
		for _, v := range s.views {
			device.DestroyTextureView(v)
		}
		for _, t := range s.textures {
			device.DestroyTexture(t)
		}
	}
	s.views, s.textures = nil, nil
	s.destroyed = true
}

func (s *surface) view(role int) hal.TextureView {
	if role < len(s.views) {
		return s.views[role]
	}
	return nil
}

var _ rendering.Surface = (*surface)(nil)
