package render

import (
	"image"
	"image/draw"
	"math"
	"os"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// NormalizeProperty resolves a raw property tag to a canonical logo code
// through the alias table. Unrecognized tags and explicit no-logo markers
// resolve to "".
func NormalizeProperty(tag string, aliases map[string]string) string {
	key := strings.ToUpper(strings.TrimSpace(tag))
	if key == "" {
		return ""
	}
	return aliases[key]
}

// ApplyLogo composites the property logo for tag onto the center of img.
// The logo is shrunk so its longest side is at most the image's shorter
// dimension divided by the configured divisor, preserving aspect ratio,
// and pasted using its own alpha channel as the mask — no backing plate is
// drawn; level-H correction absorbs the obscured modules.
//
// An unrecognized tag or a missing asset leaves img untouched: the payload
// is unaffected and the code stays scannable, so both degrade to a warning.
func (c *Composer) ApplyLogo(img image.Image, tag string) (image.Image, bool) {
	code := NormalizeProperty(tag, c.opts.Aliases)
	if code == "" {
		if strings.TrimSpace(tag) != "" {
			c.logger.Warn("unrecognized property tag, skipping logo", "tag", tag)
		}
		return img, false
	}
	path, ok := c.opts.Logos[code]
	if !ok {
		c.logger.Warn("no logo asset configured for property", "code", code)
		return img, false
	}
	logo, err := loadImage(path)
	if err != nil {
		c.logger.Warn("logo asset not available, skipping logo", "path", path, "error", err)
		return img, false
	}

	bounds := img.Bounds()
	divisor := c.opts.LogoDivisor
	if divisor <= 0 {
		divisor = DefaultLogoDivisor
	}
	maxSide := int(float64(min(bounds.Dx(), bounds.Dy())) / divisor)
	scaled := fitWithin(logo, maxSide, maxSide)

	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)

	lb := scaled.Bounds()
	x := (bounds.Dx() - lb.Dx()) / 2
	y := (bounds.Dy() - lb.Dy()) / 2
	draw.Draw(out, image.Rect(x, y, x+lb.Dx(), y+lb.Dy()), scaled, lb.Min, draw.Over)

	c.logger.Debug("logo applied", "code", code, "size", lb.Dx())
	return out, true
}

// loadImage decodes the image file at path. PNG registration comes with
// image/png imported by the composer; other registered formats work too.
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// fitWithin shrinks src to fit inside maxW×maxH preserving aspect ratio.
// Images already within bounds are returned unchanged; fitting never
// enlarges.
func fitWithin(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src
	}
	scale := math.Min(float64(maxW)/float64(b.Dx()), float64(maxH)/float64(b.Dy()))
	w := max(1, int(float64(b.Dx())*scale))
	h := max(1, int(float64(b.Dy())*scale))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
