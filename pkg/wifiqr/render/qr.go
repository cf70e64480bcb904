package render

import (
	"fmt"
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultQRScale is the pixel size of one QR module in the native render.
const DefaultQRScale = 30

// EncodeQR renders payload as a QR symbol at error-correction level H,
// which tolerates roughly 30% symbol damage and absorbs the logo overlay.
//
// scale is pixels per module; values below 1 fall back to DefaultQRScale.
func EncodeQR(payload string, scale int) (image.Image, error) {
	q, err := qrcode.New(payload, qrcode.Highest)
	if err != nil {
		return nil, fmt.Errorf("encoding qr payload: %w", err)
	}
	if scale < 1 {
		scale = DefaultQRScale
	}
	// A negative size asks the encoder for a fixed per-module pixel count
	// instead of a fixed overall image size.
	return q.Image(-scale), nil
}

// EncodeMatrix returns the raw module matrix for payload, including the
// quiet zone. Encoding is a pure function of payload and error-correction
// level, so identical payloads always yield identical matrices.
func EncodeMatrix(payload string) ([][]bool, error) {
	q, err := qrcode.New(payload, qrcode.Highest)
	if err != nil {
		return nil, fmt.Errorf("encoding qr payload: %w", err)
	}
	return q.Bitmap(), nil
}
