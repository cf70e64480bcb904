package wifiqr

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/vgqr/wifiqr-go/pkg/wifiqr/models"
	"github.com/vgqr/wifiqr-go/pkg/wifiqr/render"
	"github.com/vgqr/wifiqr-go/pkg/wifiqr/sheet"
)

// Generator turns resolved credentials into persisted QR artifacts. It
// applies the caller-side defaults the resolver deliberately leaves blank.
type Generator struct {
	opts     Options
	composer *render.Composer
	logger   *slog.Logger
}

// NewGenerator creates a generator. A nil logger discards diagnostics.
func NewGenerator(opts Options, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}
	return &Generator{
		opts:     opts,
		composer: render.NewComposer(opts.Render, logger),
		logger:   logger,
	}
}

// fill substitutes the configured defaults for fields the sheet omitted.
func (g *Generator) fill(cred models.WiFiCredential) models.WiFiCredential {
	if strings.TrimSpace(cred.Security) == "" {
		cred.Security = g.opts.DefaultSecurity
	}
	if strings.TrimSpace(cred.PropertyTag) == "" {
		cred.PropertyTag = g.opts.DefaultProperty
	}
	return cred
}

// Generate renders and persists one credential, returning the artifact
// path. Failures come back as *GenerateError.
func (g *Generator) Generate(cred models.WiFiCredential) (string, error) {
	if strings.TrimSpace(cred.SSID) == "" {
		return "", &GenerateError{Err: errors.New("ssid is required")}
	}
	cred = g.fill(cred)

	artifact, err := g.composer.Compose(cred)
	if err != nil {
		return "", &GenerateError{SSID: cred.SSID, Err: err}
	}
	path := filepath.Join(g.opts.OutputDir, render.Filename(cred.SSID))
	if err := g.composer.Persist(artifact, path); err != nil {
		return "", &GenerateError{SSID: cred.SSID, Path: path, Err: err}
	}
	return path, nil
}

// BatchResult reports the outcome of a bulk generation run.
type BatchResult struct {
	// Paths lists the artifacts written, in input order.
	Paths []string
	// Errors collects per-record failures when StopOnError is off.
	Errors []error
}

// GenerateAll processes credentials sequentially, each record to completion
// before the next begins. Cancellation is cooperative at record
// granularity: ctx is checked between records, never mid-composition. A
// failed record is collected and skipped unless StopOnError is set.
func (g *Generator) GenerateAll(ctx context.Context, creds []models.WiFiCredential) (BatchResult, error) {
	var result BatchResult
	for _, cred := range creds {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		path, err := g.Generate(cred)
		if err != nil {
			if g.opts.StopOnError {
				return result, err
			}
			g.logger.Error("record failed, continuing batch", "ssid", cred.SSID, "error", err)
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Paths = append(result.Paths, path)
	}
	return result, nil
}

// GenerateWorkbook opens a workbook, resolves columns on the named sheet
// (the first sheet when name is empty), and generates one artifact per
// valid data row. When auto-detection fails and opts.ManualColumns is
// supplied, the manual mapping recovers the run; otherwise the detection
// error propagates so the caller can prompt for a mapping.
func GenerateWorkbook(ctx context.Context, path, sheetName string, opts Options, logger *slog.Logger) (BatchResult, error) {
	session, err := openResolved(path, sheetName, opts, logger)
	if err != nil {
		return BatchResult{}, err
	}
	defer session.Close()

	creds, err := session.ExtractAll()
	if err != nil {
		return BatchResult{}, err
	}
	return NewGenerator(opts, logger).GenerateAll(ctx, creds)
}

// GenerateRoom generates the artifact for a single room key from a
// workbook, returning the artifact path.
func GenerateRoom(path, sheetName, roomKey string, opts Options, logger *slog.Logger) (string, error) {
	session, err := openResolved(path, sheetName, opts, logger)
	if err != nil {
		return "", err
	}
	defer session.Close()

	cred, err := session.ExtractRoom(roomKey)
	if err != nil {
		return "", err
	}
	return NewGenerator(opts, logger).Generate(cred)
}

// openResolved loads a workbook and advances the session to the
// ColumnsResolved state, applying the manual mapping when detection fails.
func openResolved(path, sheetName string, opts Options, logger *slog.Logger) (*sheet.Session, error) {
	session := sheet.NewSession(path, opts.Keywords, logger)
	if err := session.Load(); err != nil {
		return nil, err
	}
	if sheetName == "" {
		names, err := session.SheetNames()
		if err != nil {
			session.Close()
			return nil, err
		}
		sheetName = names[0]
	}
	err := session.SelectSheet(sheetName)
	if errors.Is(err, sheet.ErrColumnsNotFound) && len(opts.ManualColumns) > 0 {
		err = session.SetColumnsManually(opts.ManualColumns)
	}
	if err != nil {
		session.Close()
		return nil, err
	}
	return session, nil
}
