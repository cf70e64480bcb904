package render

import (
	"fmt"
	"image/png" // also registers PNG decoding for logo assets
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vgqr/wifiqr-go/pkg/wifiqr/models"
)

// Composer renders credentials into persisted image artifacts. It is not
// safe for concurrent use; callers run one composition to completion at a
// time.
type Composer struct {
	opts   Options
	logger *slog.Logger
}

// NewComposer creates a composer. A nil logger discards diagnostics.
func NewComposer(opts Options, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Composer{opts: opts, logger: logger}
}

// Options returns the composer's pipeline configuration.
func (c *Composer) Options() Options { return c.opts }

// Compose runs the full pipeline for one credential:
//
//	encode → logo (optional) → caption → standardize
//
// The logo goes on before caption and resize because its centering math
// assumes the QR's native, unscaled dimensions.
func (c *Composer) Compose(cred models.WiFiCredential) (*models.RenderedArtifact, error) {
	payload := BuildPayload(cred)
	c.logger.Info("generating qr", "ssid", cred.SSID, "security", cred.Security, "property", cred.PropertyTag)

	img, err := EncodeQR(payload, c.opts.QRScale)
	if err != nil {
		return nil, err
	}

	artifact := &models.RenderedArtifact{Image: img}
	if strings.TrimSpace(cred.PropertyTag) != "" {
		artifact.Image, artifact.LogoApplied = c.ApplyLogo(artifact.Image, cred.PropertyTag)
	}
	artifact.Image, artifact.CaptionApplied = c.ApplyCaption(artifact.Image, cred.SSID, cred.Password)
	artifact.Image = c.StandardizeCanvas(artifact.Image)
	return artifact, nil
}

// Persist writes the artifact as a lossless PNG at path, creating the
// directory if needed. An existing file is overwritten silently: batch
// regeneration is idempotent by filename.
func (c *Composer) Persist(artifact *models.RenderedArtifact, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, artifact.Image); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	c.logger.Info("qr saved", "path", path)
	return nil
}

// pathUnsafe replaces characters that cannot appear in file names across
// the supported platforms.
var pathUnsafe = strings.NewReplacer(
	"/", "_", `\`, "_", ":", "_", "*", "_", "?", "_",
	`"`, "_", "<", "_", ">", "_", "|", "_",
)

// Filename returns the output file name for a credential's SSID, following
// the qr_<ssid>.png convention.
func Filename(ssid string) string {
	return "qr_" + pathUnsafe.Replace(strings.TrimSpace(ssid)) + ".png"
}
