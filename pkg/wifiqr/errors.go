package wifiqr

import "fmt"

// GenerateError reports a failure while rendering or persisting one
// credential. Path carries the output file name when persistence failed,
// so batch callers can tell the operator which artifact to retry.
type GenerateError struct {
	SSID string
	Path string
	Err  error
}

func (e *GenerateError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("generating qr for %q (%s): %v", e.SSID, e.Path, e.Err)
	}
	return fmt.Sprintf("generating qr for %q: %v", e.SSID, e.Err)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}
