// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package compositor renders a rendering.Frame into pixels on the CPU.
//
// The compositor fills the background, projects every drawable through a
// pinhole camera looking along +X, fills the convex hull of each shape in
// back-to-front order, draws text and frustum outlines, downsamples the
// supersampled image and runs the post-processing passes. Both drivers use
// it to produce the pixels that Copy returns.
package compositor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"slices"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/rendering"
	"github.com/gogpu/rendering/internal/parallel"
	"github.com/gogpu/rendering/render"
)

// Compositor errors.
var (
	// ErrSizeMismatch is returned when a frame does not match the surface size.
	ErrSizeMismatch = errors.New("compositor: frame size does not match surface")

	// ErrNoFrame is returned by ReadPixels before the first Compose.
	ErrNoFrame = errors.New("compositor: no frame composed")
)

// Options configures a Compositor.
type Options struct {
	Width, Height int

	// Supersample renders at Supersample times the output size and
	// downsamples. Values below 1 mean 1.
	Supersample int

	// Passes run in order on the output image.
	Passes []rendering.RenderPass

	// Pool parallelizes per-row work. Nil runs it on the caller.
	Pool *parallel.WorkerPool
}

// Stats counts what the last Compose drew.
type Stats struct {
	Drawn  int
	Culled int
	Text   int
	Lines  int
}

// Compositor renders frames of one fixed size.
type Compositor struct {
	width, height int
	scale         int
	passes        []rendering.RenderPass
	pool          *parallel.WorkerPool

	background rendering.Background
	override   *rendering.MaterialProperties

	work   *image.RGBA
	out    *render.PixmapTarget
	raster *vector.Rasterizer

	composed bool
	stats    Stats
}

// New creates a compositor for opts.Width x opts.Height output.
func New(opts Options) (*Compositor, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("compositor: invalid size %dx%d", opts.Width, opts.Height)
	}
	scale := max(opts.Supersample, 1)
	c := &Compositor{
		width:      opts.Width,
		height:     opts.Height,
		scale:      scale,
		passes:     slices.Clone(opts.Passes),
		pool:       opts.Pool,
		background: rendering.Background{Color: rendering.Black},
		out:        render.NewPixmapTarget(opts.Width, opts.Height),
	}
	if scale == 1 {
		c.work = c.out.Image()
	} else {
		c.work = image.NewRGBA(image.Rect(0, 0, opts.Width*scale, opts.Height*scale))
	}
	c.raster = vector.NewRasterizer(c.work.Bounds().Dx(), c.work.Bounds().Dy())
	return c, nil
}

// Width returns the output width.
func (c *Compositor) Width() int { return c.width }

// Height returns the output height.
func (c *Compositor) Height() int { return c.height }

// Supersample returns the supersampling factor.
func (c *Compositor) Supersample() int { return c.scale }

// SetBackground sets the background of subsequent frames.
func (c *Compositor) SetBackground(bg rendering.Background) { c.background = bg }

// SetMaterial overrides the material of every drawable. Nil clears it.
func (c *Compositor) SetMaterial(m *rendering.MaterialProperties) {
	if m == nil {
		c.override = nil
		return
	}
	mc := *m
	c.override = &mc
}

// Stats returns the counters of the last Compose.
func (c *Compositor) Stats() Stats { return c.stats }

// Target returns the output pixels.
func (c *Compositor) Target() *render.PixmapTarget { return c.out }

// Compose renders f. The frame background is ignored in favor of the one
// set with SetBackground.
func (c *Compositor) Compose(f *rendering.Frame) error {
	if f == nil {
		return fmt.Errorf("compositor: nil frame")
	}
	if f.Width != c.width || f.Height != c.height {
		return fmt.Errorf("%w: frame %dx%d, surface %dx%d", ErrSizeMismatch, f.Width, f.Height, c.width, c.height)
	}
	c.stats = Stats{}
	c.fillBackground()

	w, h := c.work.Bounds().Dx(), c.work.Bounds().Dy()
	proj := newProjector(f.Camera, w, h)
	items := make([]item, 0, len(f.Drawables))
	for i := range f.Drawables {
		d := &f.Drawables[i]
		depth := proj.toCamera(d.World.Position).X
		items = append(items, item{d: d, depth: depth})
	}
	// Painter's order: farthest first.
	slices.SortStableFunc(items, func(a, b item) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})

	for _, it := range items {
		c.drawItem(&proj, f, it)
	}

	c.resolve()
	for _, p := range c.passes {
		if p.Enabled() {
			p.Apply(c.out.Image(), f.Number)
		}
	}
	c.composed = true
	rendering.Logger().Debug("compositor: frame composed",
		"frame", f.Number, "drawn", c.stats.Drawn, "culled", c.stats.Culled)
	return nil
}

// ReadPixels copies the last composed frame into dst.
func (c *Compositor) ReadPixels(dst *image.RGBA) error {
	if !c.composed {
		return ErrNoFrame
	}
	return c.out.CopyTo(dst)
}

type item struct {
	d     *rendering.Drawable
	depth float32
}

func (c *Compositor) drawItem(proj *projector, f *rendering.Frame, it item) {
	d := it.d
	m := d.Material
	if c.override != nil {
		m = *c.override
	}
	col := shade(m, d.World.Position, proj.eye, f.Ambient, f.Lights)
	if m.Reflectivity > 0 {
		u, v := proj.uv(d.World.Position)
		env := c.background.At(u, v)
		a := col.A
		col = col.Lerp(env, m.Reflectivity)
		col.A = a
	}
	col.A *= 1 - m.Transparency

	switch {
	case d.Frustum != nil:
		if c.drawFrustum(proj, d, col) {
			c.stats.Lines++
			return
		}
	case d.Kind == rendering.KindText:
		if c.drawText(proj, d, col) {
			c.stats.Text++
			return
		}
	default:
		if c.drawShape(proj, d, m, col) {
			c.stats.Drawn++
			return
		}
	}
	c.stats.Culled++
}

func (c *Compositor) drawShape(proj *projector, d *rendering.Drawable, m rendering.MaterialProperties, col rendering.Color) bool {
	samples := unitSamples(d.Kind)
	pts := make([]point, 0, len(samples))
	for _, s := range samples {
		cp := proj.toCamera(d.World.Apply(s))
		if !proj.inRange(cp.X) {
			continue
		}
		pts = append(pts, proj.project(cp))
	}
	hull := convexHull(pts)
	if len(hull) < 3 {
		return false
	}
	var src image.Image
	if m.Texture != "" {
		src = c.texturedSource(hull, m.Texture, col)
	} else {
		src = image.NewUniform(premultiplied(col))
	}
	c.fillPolygon(hull, src)
	return true
}

func (c *Compositor) fillPolygon(pts []point, src image.Image) {
	b := c.work.Bounds()
	c.raster.Reset(b.Dx(), b.Dy())
	c.raster.DrawOp = draw.Over
	c.raster.MoveTo(pts[0].x, pts[0].y)
	for _, p := range pts[1:] {
		c.raster.LineTo(p.x, p.y)
	}
	c.raster.ClosePath()
	c.raster.Draw(c.work, b, src, image.Point{})
}

func (c *Compositor) fillBackground() {
	bg := c.background
	b := c.work.Bounds()
	if !bg.HasGradient {
		draw.Draw(c.work, b, image.NewUniform(premultiplied(bg.Color)), image.Point{}, draw.Src)
		return
	}
	w, h := b.Dx(), b.Dy()
	du := 1 / float32(max(w-1, 1))
	dv := 1 / float32(max(h-1, 1))
	c.rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			v := float32(y) * dv
			for x := range w {
				c.work.SetRGBA(x, y, premultiplied(bg.At(float32(x)*du, v)))
			}
		}
	})
}

// resolve downsamples the work image into the output.
func (c *Compositor) resolve() {
	if c.scale == 1 {
		return
	}
	xdraw.CatmullRom.Scale(c.out.Image(), c.out.Image().Bounds(), c.work, c.work.Bounds(), xdraw.Src, nil)
}

func (c *Compositor) rows(h int, fn func(y0, y1 int)) {
	if c.pool == nil {
		fn(0, h)
		return
	}
	c.pool.Rows(h, fn)
}

// premultiplied converts c to a premultiplied 8-bit color.
func premultiplied(c rendering.Color) color.RGBA {
	c = c.Clamp()
	return color.RGBA{
		R: unit8(c.R * c.A),
		G: unit8(c.G * c.A),
		B: unit8(c.B * c.A),
		A: unit8(c.A),
	}
}

func unit8(v float32) uint8 {
	return uint8(v*255 + 0.5)
}
