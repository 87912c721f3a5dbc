// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/rendering"
	"github.com/gogpu/rendering/internal/parallel"
)

const testW, testH = 64, 48

var red = rendering.RGB(1, 0, 0)

func newTestCompositor(t *testing.T, opts Options) *Compositor {
	t.Helper()
	if opts.Width == 0 {
		opts.Width, opts.Height = testW, testH
	}
	c, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

// testFrame returns a frame seen from the origin looking along +X.
func testFrame(drawables ...rendering.Drawable) *rendering.Frame {
	return &rendering.Frame{
		Number: 1,
		Width:  testW,
		Height: testH,
		Camera: rendering.CameraView{
			World:       rendering.IdentityTransform,
			HFOV:        rendering.DefaultHFOV,
			AspectRatio: float32(testW) / testH,
			Near:        0.01,
			Far:         100,
		},
		Drawables: drawables,
	}
}

func unlit(c rendering.Color) rendering.MaterialProperties {
	m := rendering.DefaultMaterialProperties()
	m.Diffuse = c
	m.Lighting = false
	return m
}

func boxAt(x, y, z float32, m rendering.MaterialProperties) rendering.Drawable {
	w := rendering.IdentityTransform
	w.Position = rendering.V3(x, y, z)
	return rendering.Drawable{ID: 1, Kind: rendering.KindBox, World: w, Material: m}
}

func compose(t *testing.T, c *Compositor, f *rendering.Frame) *image.RGBA {
	t.Helper()
	if err := c.Compose(f); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, c.Width(), c.Height()))
	if err := c.ReadPixels(img); err != nil {
		t.Fatalf("ReadPixels() error = %v", err)
	}
	return img
}

func TestNewInvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		if _, err := New(Options{Width: size[0], Height: size[1]}); err == nil {
			t.Errorf("New(%dx%d) error = nil, want error", size[0], size[1])
		}
	}
}

func TestReadPixelsBeforeCompose(t *testing.T) {
	c := newTestCompositor(t, Options{})
	err := c.ReadPixels(image.NewRGBA(image.Rect(0, 0, testW, testH)))
	if !errors.Is(err, ErrNoFrame) {
		t.Errorf("ReadPixels() error = %v, want ErrNoFrame", err)
	}
}

func TestComposeSizeMismatch(t *testing.T) {
	c := newTestCompositor(t, Options{})
	f := testFrame()
	f.Width = 32
	if err := c.Compose(f); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Compose() error = %v, want ErrSizeMismatch", err)
	}
	if err := c.Compose(nil); err == nil {
		t.Error("Compose(nil) error = nil, want error")
	}
}

func TestSolidBackground(t *testing.T) {
	c := newTestCompositor(t, Options{})
	c.SetBackground(rendering.Background{Color: rendering.RGB(0, 0, 1)})
	img := compose(t, c, testFrame())

	want := color.RGBA{0, 0, 255, 255}
	for _, p := range []image.Point{{0, 0}, {testW - 1, testH - 1}, {testW / 2, testH / 2}} {
		if got := img.RGBAAt(p.X, p.Y); got != want {
			t.Errorf("pixel %v = %v, want %v", p, got, want)
		}
	}
}

func TestGradientBackground(t *testing.T) {
	pool := parallel.NewWorkerPool(2)
	defer pool.Close()

	c := newTestCompositor(t, Options{Pool: pool})
	var g [4]rendering.Color
	g[rendering.TopLeft] = rendering.RGB(1, 0, 0)
	g[rendering.BottomLeft] = rendering.RGB(0, 1, 0)
	g[rendering.TopRight] = rendering.RGB(0, 0, 1)
	g[rendering.BottomRight] = rendering.RGB(1, 1, 1)
	c.SetBackground(rendering.Background{Gradient: g, HasGradient: true})
	img := compose(t, c, testFrame())

	tests := []struct {
		name string
		at   image.Point
		want color.RGBA
	}{
		{"top-left", image.Pt(0, 0), color.RGBA{255, 0, 0, 255}},
		{"bottom-left", image.Pt(0, testH-1), color.RGBA{0, 255, 0, 255}},
		{"top-right", image.Pt(testW-1, 0), color.RGBA{0, 0, 255, 255}},
		{"bottom-right", image.Pt(testW-1, testH-1), color.RGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := img.RGBAAt(tt.at.X, tt.at.Y); got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShapesInFront(t *testing.T) {
	kinds := []rendering.ObjectKind{
		rendering.KindBox, rendering.KindSphere, rendering.KindCylinder,
		rendering.KindCone, rendering.KindMesh,
	}
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			c := newTestCompositor(t, Options{})
			d := boxAt(2, 0, 0, unlit(red))
			d.Kind = kind
			img := compose(t, c, testFrame(d))

			if got := img.RGBAAt(testW/2, testH/2); got != (color.RGBA{255, 0, 0, 255}) {
				t.Errorf("center pixel = %v, want red", got)
			}
			if got := c.Stats().Drawn; got != 1 {
				t.Errorf("Stats().Drawn = %d, want 1", got)
			}
		})
	}
}

func TestPlaneFacingCamera(t *testing.T) {
	c := newTestCompositor(t, Options{})
	d := boxAt(2, 0, 0, unlit(red))
	d.Kind = rendering.KindPlane
	// Rotate the XY plane so its normal points back at the camera.
	d.World.Rotation = rendering.Euler(0, rendering.DefaultHFOV, 0)
	img := compose(t, c, testFrame(d))

	if got := img.RGBAAt(testW/2, testH/2); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("center pixel = %v, want red", got)
	}
}

func TestCulling(t *testing.T) {
	tests := []struct {
		name string
		d    rendering.Drawable
	}{
		{"behind camera", boxAt(-3, 0, 0, unlit(red))},
		{"beyond far plane", boxAt(500, 0, 0, unlit(red))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCompositor(t, Options{})
			img := compose(t, c, testFrame(tt.d))
			if got := c.Stats().Culled; got != 1 {
				t.Errorf("Stats().Culled = %d, want 1", got)
			}
			if got := img.RGBAAt(testW/2, testH/2); got != (color.RGBA{0, 0, 0, 255}) {
				t.Errorf("center pixel = %v, want background", got)
			}
		})
	}
}

func TestPainterOrder(t *testing.T) {
	c := newTestCompositor(t, Options{})
	near := boxAt(2, 0, 0, unlit(red))
	far := boxAt(6, 0, 0, unlit(rendering.RGB(0, 1, 0)))
	// The near box is listed first; depth sorting must still draw it last.
	img := compose(t, c, testFrame(near, far))

	if got := img.RGBAAt(testW/2, testH/2); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("center pixel = %v, want red", got)
	}
}

func TestMaterialOverride(t *testing.T) {
	c := newTestCompositor(t, Options{})
	green := unlit(rendering.RGB(0, 1, 0))
	c.SetMaterial(&green)
	green.Diffuse = red // the compositor keeps its own copy

	img := compose(t, c, testFrame(boxAt(2, 0, 0, unlit(red))))
	if got := img.RGBAAt(testW/2, testH/2); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("center pixel = %v, want green", got)
	}

	c.SetMaterial(nil)
	img = compose(t, c, testFrame(boxAt(2, 0, 0, unlit(red))))
	if got := img.RGBAAt(testW/2, testH/2); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("center pixel after clearing override = %v, want red", got)
	}
}

func TestLighting(t *testing.T) {
	c := newTestCompositor(t, Options{})
	f := testFrame(boxAt(2, 0, 0, rendering.DefaultMaterialProperties()))

	img := compose(t, c, f)
	if got := img.RGBAAt(testW/2, testH/2); got.R != 0 {
		t.Errorf("unlit scene pixel = %v, want black", got)
	}

	f.Lights = []rendering.LightView{{
		Kind:      rendering.KindDirectionalLight,
		Direction: rendering.V3(0, 0, -1),
		Diffuse:   rendering.White,
		Intensity: 1,
	}}
	img = compose(t, c, f)
	// The light grazes the viewer-facing normal: wrapped Lambert gives 1/2.
	if got := img.RGBAAt(testW/2, testH/2); got.R < 120 || got.R > 136 {
		t.Errorf("lit pixel = %v, want gray near 128", got)
	}
}

func TestSpotFactor(t *testing.T) {
	lv := &rendering.LightView{
		Kind:       rendering.KindSpotLight,
		Direction:  rendering.V3(0, 0, -1),
		InnerAngle: 0.2,
		OuterAngle: 0.4,
		Falloff:    1,
	}
	tests := []struct {
		name string
		l    rendering.Vec3
		want float32
	}{
		{"on axis", rendering.V3(0, 0, 1), 1},
		{"outside", rendering.V3(1, 0, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := spotFactor(lv, tt.l); got != tt.want {
				t.Errorf("spotFactor() = %v, want %v", got, tt.want)
			}
		})
	}
	mid := rendering.V3(0.29552, 0, 0.95534) // 0.3 rad off axis
	if got := spotFactor(lv, mid); got < 0.4 || got > 0.6 {
		t.Errorf("spotFactor(mid) = %v, want about 0.5", got)
	}
}

func TestSupersample(t *testing.T) {
	c := newTestCompositor(t, Options{Supersample: 2})
	if c.Supersample() != 2 {
		t.Fatalf("Supersample() = %d, want 2", c.Supersample())
	}
	img := compose(t, c, testFrame(boxAt(2, 0, 0, unlit(red))))
	if got := img.RGBAAt(testW/2, testH/2); got.R < 250 || got.G > 5 {
		t.Errorf("center pixel = %v, want red", got)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("corner pixel = %v, want background", got)
	}
}

func TestTransparency(t *testing.T) {
	c := newTestCompositor(t, Options{})
	m := unlit(red)
	m.Transparency = 0.5
	img := compose(t, c, testFrame(boxAt(2, 0, 0, m)))

	got := img.RGBAAt(testW/2, testH/2)
	if got.R < 120 || got.R > 136 {
		t.Errorf("half transparent red over black = %v, want R near 128", got)
	}
}

func TestMissingTextureUsesChecker(t *testing.T) {
	c := newTestCompositor(t, Options{})
	m := unlit(rendering.White)
	m.Texture = "does/not/exist.png"
	d := boxAt(1.2, 0, 0, m)
	img := compose(t, c, testFrame(d))

	seen := map[uint8]bool{}
	for x := testW/2 - 12; x < testW/2+12; x++ {
		seen[img.RGBAAt(x, testH/2).R] = true
	}
	if !seen[255] || !seen[128] {
		t.Errorf("checker values seen = %v, want 255 and 128", seen)
	}
}

func TestTextureLoadedOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blue.png")
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(src, src.Bounds(), image.NewUniform(color.RGBA{0, 0, 255, 255}), image.Point{}, draw.Src)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	m := unlit(rendering.White)
	m.Texture = path
	before := textures.Stats()
	for range 2 {
		c := newTestCompositor(t, Options{})
		img := compose(t, c, testFrame(boxAt(1.2, 0, 0, m)))
		if got := img.RGBAAt(testW/2, testH/2); got.B < 250 || got.R != 0 {
			t.Errorf("center pixel = %v, want texture blue", got)
		}
	}
	after := textures.Stats()
	if got := after.Misses - before.Misses; got != 1 {
		t.Errorf("texture decoded %d times, want 1", got)
	}
}

func TestTextAndFrustum(t *testing.T) {
	c := newTestCompositor(t, Options{})
	text := boxAt(2, 0, 0, unlit(rendering.White))
	text.Kind = rendering.KindText
	text.Text = "Go"
	text.World.Scale = rendering.V3(0.5, 0.5, 0.5)

	fr := boxAt(0.5, 0, 0, unlit(rendering.White))
	fr.Kind = rendering.KindFrustumVisual
	fr.Frustum = &rendering.FrustumParams{Near: 0.5, Far: 3, HFOV: 0.8, AspectRatio: 1}

	img := compose(t, c, testFrame(text, fr))
	st := c.Stats()
	if st.Text != 1 || st.Lines != 1 {
		t.Errorf("Stats() = %+v, want one text and one frustum", st)
	}
	lit := 0
	for y := range testH {
		for x := range testW {
			if img.RGBAAt(x, y).R > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("text and frustum left the image black")
	}
}

type countingPass struct {
	enabled bool
	calls   int
	frame   uint64
}

func (p *countingPass) Name() string { return "counting" }

func (p *countingPass) Enabled() bool { return p.enabled }

func (p *countingPass) SetEnabled(on bool) { p.enabled = on }

func (p *countingPass) Apply(_ *image.RGBA, frame uint64) {
	p.calls++
	p.frame = frame
}

func TestRenderPasses(t *testing.T) {
	on := &countingPass{enabled: true}
	off := &countingPass{}
	c := newTestCompositor(t, Options{Passes: []rendering.RenderPass{on, off}})

	f := testFrame()
	f.Number = 7
	compose(t, c, f)

	if on.calls != 1 || on.frame != 7 {
		t.Errorf("enabled pass calls = %d frame = %d, want 1 and 7", on.calls, on.frame)
	}
	if off.calls != 0 {
		t.Errorf("disabled pass calls = %d, want 0", off.calls)
	}
}

func TestConvexHull(t *testing.T) {
	pts := []point{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {2, 2}, {1, 3}}
	hull := convexHull(pts)
	if len(hull) != 4 {
		t.Fatalf("convexHull() = %v, want 4 corners", hull)
	}
	for _, p := range hull {
		if p == (point{2, 2}) || p == (point{1, 3}) {
			t.Errorf("convexHull() kept interior point %v", p)
		}
	}
	if got := convexHull([]point{{0, 0}, {1, 1}, {2, 2}}); got != nil {
		t.Errorf("convexHull(collinear) = %v, want nil", got)
	}
}
