// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

import (
	"image"
	"math/rand/v2"
)

// RenderPass is a post-processing step run by a workspace after the scene
// pass. Adding or removing a pass rebuilds the workspace.
type RenderPass interface {
	// Name returns the pass name.
	Name() string

	// Enabled reports whether the pass runs.
	Enabled() bool

	// SetEnabled turns the pass on or off.
	SetEnabled(enabled bool)

	// Apply processes the frame image in place.
	Apply(img *image.RGBA, frame uint64)
}

// GaussianNoisePass adds per-channel Gaussian noise to every pixel.
// The noise sequence is a function of the seed and the frame number, so
// renders are reproducible.
type GaussianNoisePass struct {
	mean    float32
	stddev  float32
	seed    uint64
	enabled bool
}

// NewGaussianNoisePass creates an enabled noise pass. Mean and stddev are
// in normalized color units.
func NewGaussianNoisePass(mean, stddev float32, seed uint64) *GaussianNoisePass {
	return &GaussianNoisePass{mean: mean, stddev: stddev, seed: seed, enabled: true}
}

// Name returns "GaussianNoise".
func (p *GaussianNoisePass) Name() string { return "GaussianNoise" }

// Enabled reports whether the pass runs.
func (p *GaussianNoisePass) Enabled() bool { return p.enabled }

// SetEnabled turns the pass on or off.
func (p *GaussianNoisePass) SetEnabled(enabled bool) { p.enabled = enabled }

// Mean returns the noise mean.
func (p *GaussianNoisePass) Mean() float32 { return p.mean }

// SetMean sets the noise mean.
func (p *GaussianNoisePass) SetMean(m float32) { p.mean = m }

// StdDev returns the noise standard deviation.
func (p *GaussianNoisePass) StdDev() float32 { return p.stddev }

// SetStdDev sets the noise standard deviation.
func (p *GaussianNoisePass) SetStdDev(s float32) { p.stddev = s }

// Apply adds noise to the RGB channels of img. Alpha is untouched.
func (p *GaussianNoisePass) Apply(img *image.RGBA, frame uint64) {
	if !p.enabled || (p.mean == 0 && p.stddev == 0) {
		return
	}
	rng := rand.New(rand.NewPCG(p.seed, frame))
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			for c := 0; c < 3; c++ {
				n := (p.mean + p.stddev*float32(rng.NormFloat64())) * 255
				row[i+c] = clampByte(float32(row[i+c]) + n)
			}
		}
	}
}

func clampByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}

var _ RenderPass = (*GaussianNoisePass)(nil)
