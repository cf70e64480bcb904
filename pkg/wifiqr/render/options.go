// Package render turns a resolved WiFi credential into a persisted image
// artifact: payload building, QR encoding, logo overlay, caption layout,
// and canvas standardization.
package render

// Default canvas geometry. Every persisted artifact has exactly these
// dimensions so printed batches stay visually uniform.
const (
	DefaultCanvasWidth  = 825
	DefaultCanvasHeight = 1100
	DefaultTopMargin    = 50
)

// DefaultLogoDivisor caps the logo's longest side at the QR's shorter
// dimension divided by this value, about 27% of the QR. The obscured
// modules must stay under level-H's correction capacity.
const DefaultLogoDivisor = 3.7

// Options configures the composition pipeline.
type Options struct {
	// CanvasWidth and CanvasHeight are the fixed output dimensions.
	CanvasWidth  int
	CanvasHeight int
	// TopMargin anchors the composed image below the canvas top edge.
	TopMargin int
	// QRScale is pixels per module in the native QR render.
	QRScale int
	// LogoDivisor controls the logo size relative to the QR.
	LogoDivisor float64
	// Logos maps canonical property codes to logo asset paths.
	Logos map[string]string
	// Aliases maps upper-cased raw property tags to canonical codes.
	// Tags absent from the map produce no logo.
	Aliases map[string]string
	// FontPath optionally points at a TTF file for caption text. When
	// empty or unusable, an embedded font is used instead.
	FontPath string
}

// DefaultOptions returns the shipped pipeline configuration.
func DefaultOptions() Options {
	return Options{
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
		TopMargin:    DefaultTopMargin,
		QRScale:      DefaultQRScale,
		LogoDivisor:  DefaultLogoDivisor,
		Logos:        DefaultLogos(),
		Aliases:      DefaultAliases(),
	}
}

// DefaultLogos returns the shipped canonical-code to asset-path table.
func DefaultLogos() map[string]string {
	return map[string]string{
		"VLEV": "logos/VLEV.png",
		"VDPF": "logos/VDPF.png",
	}
}

// DefaultAliases returns the shipped property alias table. The mapping is
// configuration data; deployments override it rather than editing code.
func DefaultAliases() map[string]string {
	return map[string]string{
		"VLEV":      "VLEV",
		"VLE":       "VLEV",
		"VDPF":      "VDPF",
		"VG":        "VDPF",
		"VDP":       "VDPF",
		"FLAMINGOS": "VDPF",
	}
}
