// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/rendering"
	"github.com/gogpu/rendering/internal/cache"
)

// checkerCell is the checker cell size in output pixels.
const checkerCell = 8

// errUnsupportedFormat is returned for texture files that are neither PNG
// nor JPEG.
var errUnsupportedFormat = errors.New("compositor: unsupported texture format")

// textureCacheLimit bounds the decoded textures kept per process.
const textureCacheLimit = 64

// textures holds decoded textures by path, and nil for paths that failed
// to load, so each failure is logged once.
var textures = cache.New[string, image.Image](textureCacheLimit)

// texture returns the decoded texture at path, or nil if it cannot be
// loaded.
func texture(path string) image.Image {
	return textures.GetOrCreate(path, func() image.Image {
		img, err := loadImage(path)
		if err != nil {
			rendering.Logger().Warn("compositor: texture unavailable, using checker", "path", path, "err", err)
			return nil
		}
		return img
	})
}

// loadImage decodes a PNG or JPEG file.
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("compositor: open texture: %w", err)
	}
	defer func() { _ = f.Close() }()

	var img image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		img, err = png.Decode(f)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(f)
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("compositor: decode texture: %w", err)
	}
	return img, nil
}

// texturedSource returns an image covering the bounding box of hull with
// the texture stretched over it and modulated by col. Paths that cannot
// be loaded get a checker pattern.
func (c *Compositor) texturedSource(hull []point, path string, col rendering.Color) image.Image {
	r := hullBounds(hull).Intersect(c.work.Bounds())
	if r.Empty() {
		return image.Transparent
	}
	dst := image.NewRGBA(r)
	if tex := texture(path); tex != nil {
		xdraw.BiLinear.Scale(dst, r, tex, tex.Bounds(), xdraw.Src, nil)
	} else {
		fillChecker(dst, checkerCell*c.scale)
	}
	modulate(dst, col)
	return dst
}

func hullBounds(hull []point) image.Rectangle {
	minX, minY := hull[0].x, hull[0].y
	maxX, maxY := minX, minY
	for _, p := range hull[1:] {
		minX, maxX = math32.Min(minX, p.x), math32.Max(maxX, p.x)
		minY, maxY = math32.Min(minY, p.y), math32.Max(maxY, p.y)
	}
	return image.Rect(int(math32.Floor(minX)), int(math32.Floor(minY)),
		int(math32.Ceil(maxX)), int(math32.Ceil(maxY)))
}

// fillChecker paints alternating white and gray cells.
func fillChecker(img *image.RGBA, cell int) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := uint8(255)
			if ((x-b.Min.X)/cell+(y-b.Min.Y)/cell)%2 == 1 {
				v = 128
			}
			i := img.PixOffset(x, y)
			img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 255
		}
	}
}

// modulate multiplies every premultiplied pixel of img by col.
func modulate(img *image.RGBA, col rendering.Color) {
	col = col.Clamp()
	f := [4]float32{col.R * col.A, col.G * col.A, col.B * col.A, col.A}
	for i := 0; i+3 < len(img.Pix); i += 4 {
		for j := range 4 {
			img.Pix[i+j] = uint8(float32(img.Pix[i+j])*f[j] + 0.5)
		}
	}
}
