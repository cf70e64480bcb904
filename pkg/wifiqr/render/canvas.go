package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
)

// StandardizeCanvas resizes img to fit the fixed output canvas, preserving
// aspect ratio, anchored at the configured top margin and horizontally
// centered. The canvas has the same absolute pixel dimensions regardless of
// the input's native QR scale, which is what makes batches print-ready.
func (c *Composer) StandardizeCanvas(img image.Image) *image.RGBA {
	width := c.opts.CanvasWidth
	height := c.opts.CanvasHeight
	margin := c.opts.TopMargin
	if width <= 0 || height <= 0 {
		width, height = DefaultCanvasWidth, DefaultCanvasHeight
	}
	if margin < 0 || 2*margin >= height {
		margin = DefaultTopMargin
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	bounds := img.Bounds()
	availW := width
	availH := height - 2*margin
	scale := math.Min(float64(availW)/float64(bounds.Dx()), float64(availH)/float64(bounds.Dy()))
	w := max(1, int(float64(bounds.Dx())*scale))
	h := max(1, int(float64(bounds.Dy())*scale))

	scaled := scaleTo(img, w, h)
	x := (width - w) / 2
	target := image.Rect(x, margin, x+w, margin+h)
	draw.Draw(canvas, target, scaled, scaled.Bounds().Min, draw.Over)
	return canvas
}

// scaleTo resamples src to exactly w×h.
func scaleTo(src image.Image, w, h int) image.Image {
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
