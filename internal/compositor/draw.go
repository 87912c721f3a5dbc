// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"image"
	"sync"

	"github.com/chewxy/math32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/rendering"
)

// frustumEdges indexes FrustumParams.Corners: near loop, far loop, sides.
var frustumEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func (c *Compositor) drawFrustum(proj *projector, d *rendering.Drawable, col rendering.Color) bool {
	corners := d.Frustum.Corners()
	src := image.NewUniform(premultiplied(col))
	half := 0.5 * float32(c.scale)
	drawn := false
	for _, e := range frustumEdges {
		a := proj.toCamera(d.World.Apply(corners[e[0]]))
		b := proj.toCamera(d.World.Apply(corners[e[1]]))
		a, b, ok := proj.clipSegment(a, b)
		if !ok {
			continue
		}
		c.strokeSegment(proj.project(a), proj.project(b), half, src)
		drawn = true
	}
	return drawn
}

// strokeSegment fills the quad of half-width half around a-b.
func (c *Compositor) strokeSegment(a, b point, half float32, src image.Image) {
	dx, dy := b.x-a.x, b.y-a.y
	n := math32.Hypot(dx, dy)
	if n == 0 {
		return
	}
	nx, ny := -dy/n*half, dx/n*half
	c.fillPolygon([]point{
		{a.x + nx, a.y + ny},
		{b.x + nx, b.y + ny},
		{b.x - nx, b.y - ny},
		{a.x - nx, a.y - ny},
	}, src)
}

// textFont is the parsed Go Regular face used for text geometries.
var textFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// drawText draws d.Text centered on the projected origin of the drawable.
// The character height is the world Z scale.
func (c *Compositor) drawText(proj *projector, d *rendering.Drawable, col rendering.Color) bool {
	if d.Text == "" {
		return false
	}
	cp := proj.toCamera(d.World.Position)
	if !proj.inRange(cp.X) {
		return false
	}
	size := proj.fy * d.World.Scale.Z / cp.X
	if size < 1 || size > 4*proj.h {
		return false
	}
	f, err := textFont()
	if err != nil {
		rendering.Logger().Warn("compositor: parse text font", "err", err)
		return false
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		rendering.Logger().Warn("compositor: create text face", "err", err)
		return false
	}
	defer func() {
		_ = face.Close()
	}()

	at := proj.project(cp)
	width := font.MeasureString(face, d.Text)
	dr := &font.Drawer{
		Dst:  c.work,
		Src:  image.NewUniform(premultiplied(col)),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(at.x*64) - width/2,
			Y: fixed.Int26_6((at.y + size/3) * 64),
		},
	}
	dr.DrawString(d.Text)
	return true
}
