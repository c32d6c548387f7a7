package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"emberfield/field"
)

// miterLimit for line strokes, in units of the stroke width
const miterLimit = 4 << 6

// Canvas is an in-memory field.Surface backed by an *image.RGBA.
// Shapes are rasterized with rasterx and composited with source-over.
type Canvas struct {
	img  *image.RGBA
	glow image.Image
}

// NewCanvas creates a w x h canvas. glow may be nil, in which case DrawGlow
// does nothing.
func NewCanvas(w, h int, glow image.Image) *Canvas {
	c := &Canvas{glow: glow}
	c.Resize(w, h)
	return c
}

// Resize replaces the pixel buffer. Contents are discarded.
func (c *Canvas) Resize(w, h int) {
	c.img = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
}

// Image returns the backing image
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Clear fills the canvas with the field background
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(field.Background), image.Point{}, draw.Src)
}

// FillCircle implements field.Surface
func (c *Canvas) FillCircle(cx, cy, r float64, clr color.NRGBA) {
	if r <= 0 || clr.A == 0 {
		return
	}
	dst, ox, oy, ok := c.region(cx-r, cy-r, cx+r, cy+r)
	if !ok {
		return
	}

	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	scanner.SetColor(clr)
	filler := rasterx.NewFiller(w, h, scanner)
	rasterx.AddCircle(cx-ox, cy-oy, r, filler)
	filler.Draw()
}

// StrokeLine implements field.Surface
func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	if width <= 0 || clr.A == 0 {
		return
	}
	pad := width / 2
	dst, ox, oy, ok := c.region(math.Min(x0, x1)-pad, math.Min(y0, y1)-pad, math.Max(x0, x1)+pad, math.Max(y0, y1)+pad)
	if !ok {
		return
	}

	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	scanner.SetColor(clr)
	stroker := rasterx.NewStroker(w, h, scanner)
	stroker.SetStroke(fixed.Int26_6(width*64), miterLimit, rasterx.ButtCap, nil, rasterx.FlatGap, rasterx.Miter)
	stroker.Start(rasterx.ToFixedP(x0-ox, y0-oy))
	stroker.Line(rasterx.ToFixedP(x1-ox, y1-oy))
	stroker.Stop(false)
	stroker.Draw()
}

// DrawGlow implements field.GlowSurface by compositing the glow sprite
// centered on (x, y).
func (c *Canvas) DrawGlow(x, y float64) {
	if c.glow == nil {
		return
	}
	b := c.glow.Bounds()
	at := image.Pt(int(math.Round(x))-b.Dx()/2, int(math.Round(y))-b.Dy()/2)
	r := image.Rectangle{Min: at, Max: at.Add(b.Size())}
	draw.Draw(c.img, r, c.glow, b.Min, draw.Over)
}

// region returns the sub-image covering the given extent plus a pixel of
// slack, and the offset to translate surface coordinates into it. The
// rasterizer touches every pixel of its destination, so each shape gets
// only the pixels it can cover.
func (c *Canvas) region(minX, minY, maxX, maxY float64) (*image.RGBA, float64, float64, bool) {
	r := image.Rect(
		int(math.Floor(minX))-1, int(math.Floor(minY))-1,
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	).Intersect(c.img.Bounds())
	if r.Empty() {
		return nil, 0, 0, false
	}
	return c.img.SubImage(r).(*image.RGBA), float64(r.Min.X), float64(r.Min.Y), true
}
