package render

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// captionWidthDivisor derives the caption font size from the image width,
// so captions stay legible across QR render scales.
const captionWidthDivisor = 20

// ApplyCaption appends a caption band below img showing "SSID: <ssid>" and,
// when a password is present, "Password: <password>", each independently
// centered. The band is drawn at the image's native width; the later canvas
// standardization scales text and QR together.
func (c *Composer) ApplyCaption(img image.Image, ssid, password string) (image.Image, bool) {
	bounds := img.Bounds()
	width := bounds.Dx()
	fontSize := float64(width) / captionWidthDivisor

	lines := []string{"SSID: " + ssid}
	if password != "" {
		lines = append(lines, "Password: "+password)
	}

	lineGap := fontSize * 0.35
	band := int((fontSize+lineGap)*float64(len(lines)) + fontSize*0.6)

	dc := gg.NewContext(width, bounds.Dy()+band)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.DrawImage(img, -bounds.Min.X, -bounds.Min.Y)

	dc.SetFontFace(c.captionFace(fontSize))
	dc.SetRGB(0, 0, 0)

	y := float64(bounds.Dy()) + fontSize*0.4
	for _, line := range lines {
		dc.DrawStringAnchored(line, float64(width)/2, y+fontSize/2, 0.5, 0.5)
		y += fontSize + lineGap
	}
	return dc.Image(), true
}

// captionFace returns a font face at the given size, preferring the
// configured font file, then the embedded Go Regular font, then a basic
// bitmap face. A missing font never aborts composition.
func (c *Composer) captionFace(size float64) font.Face {
	if c.opts.FontPath != "" {
		if face, err := gg.LoadFontFace(c.opts.FontPath, size); err == nil {
			return face
		}
		c.logger.Warn("caption font not usable, falling back to built-in", "path", c.opts.FontPath)
	}
	if f, err := truetype.Parse(goregular.TTF); err == nil {
		return truetype.NewFace(f, &truetype.Options{Size: size})
	}
	return basicfont.Face7x13
}
