// Package wifiqr generates styled WiFi-credential QR images for hotel
// rooms, sourced from a spreadsheet of room/network mappings or from
// operator input.
package wifiqr

import (
	"github.com/vgqr/wifiqr-go/pkg/wifiqr/models"
	"github.com/vgqr/wifiqr-go/pkg/wifiqr/render"
	"github.com/vgqr/wifiqr-go/pkg/wifiqr/sheet"
)

// DefaultOutputDir is where artifacts land when no directory is configured.
const DefaultOutputDir = "codes"

// Options configures credential extraction and artifact generation.
type Options struct {
	// OutputDir receives the PNG artifacts; created if absent.
	OutputDir string
	// DefaultSecurity fills credentials whose sheet omits a security
	// type. The resolver itself never invents one.
	DefaultSecurity string
	// DefaultProperty fills credentials whose sheet omits a property tag.
	DefaultProperty string
	// StopOnError aborts a batch at the first failed record instead of
	// collecting per-record failures.
	StopOnError bool
	// Keywords overrides the header keyword table used for column
	// detection. Nil selects sheet.DefaultKeywords.
	Keywords sheet.KeywordTable
	// ManualColumns, when non-empty, recovers a workbook whose headers
	// cannot be auto-detected.
	ManualColumns map[sheet.Role]int
	// Render configures the image pipeline.
	Render render.Options
}

// DefaultOptions returns the shipped generation configuration.
func DefaultOptions() Options {
	return Options{
		OutputDir:       DefaultOutputDir,
		DefaultSecurity: models.SecurityWPA2,
		Render:          render.DefaultOptions(),
	}
}
