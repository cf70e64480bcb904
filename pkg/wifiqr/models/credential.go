// Package models defines the records shared between the sheet resolver
// and the image composer.
package models

import "strings"

// Security type values understood by the WiFi QR payload convention.
const (
	SecurityWPA  = "WPA"
	SecurityWPA2 = "WPA2"
	SecurityWEP  = "WEP"
	// SecurityOpen marks an open network with no password.
	SecurityOpen = "nopass"
)

// WiFiCredential is one room's connectivity record. It is built per row
// during extraction (or per manual submission) and not modified afterwards,
// except for caller-side default filling of Security and PropertyTag.
type WiFiCredential struct {
	// Room is the room key the credential was extracted for. Empty for
	// manual input.
	Room string
	// SSID is the network name. Required, non-empty after trimming.
	SSID string
	// Password is empty when the sheet has no password column or the
	// cell is blank.
	Password string
	// Security is the raw security type text ("WPA2", "WEP", ...).
	// Empty when the sheet omits it; the resolver never fills a default,
	// the caller does.
	Security string
	// PropertyTag is the free-form property identifier used for logo
	// selection, normalized later by the composer.
	PropertyTag string
}

// IsOpen reports whether the credential denotes an open network. The stored
// password, if any, is ignored for payload purposes on open networks.
func (c WiFiCredential) IsOpen() bool {
	switch strings.ToLower(strings.TrimSpace(c.Security)) {
	case "nopass", "open", "none":
		return true
	}
	return false
}
