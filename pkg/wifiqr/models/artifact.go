package models

import "image"

// RenderedArtifact is the in-memory image product before persistence.
// Intermediate pipeline stages may hold a buffer at QR-native resolution;
// once standardized the buffer always has the fixed canvas dimensions.
type RenderedArtifact struct {
	// Image is the current pixel buffer.
	Image image.Image
	// LogoApplied reports whether a property logo was composited.
	LogoApplied bool
	// CaptionApplied reports whether the SSID/password caption was drawn.
	CaptionApplied bool
}

// Size returns the current pixel dimensions of the buffer.
func (a *RenderedArtifact) Size() (width, height int) {
	b := a.Image.Bounds()
	return b.Dx(), b.Dy()
}
