package render

import (
	"fmt"
	"strings"

	"github.com/vgqr/wifiqr-go/pkg/wifiqr/models"
)

// payloadEscaper backslash-escapes the characters the WiFi QR convention
// treats as metacharacters inside SSID and password fields. The backslash
// itself must be replaced first, which NewReplacer's single-pass semantics
// guarantee.
var payloadEscaper = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	`:`, `\:`,
	`"`, `\"`,
)

// BuildPayload renders the standard WiFi configuration payload
// (WIFI:S:<ssid>;T:<security>;P:<password>;;) for a credential.
//
// Only an explicit open security marker selects the nopass type. A
// credential with a declared security type but no password keeps that type
// and merely omits the P: field; an empty password never downgrades the
// network to open. A credential that reaches the composer without a
// security type is encoded as WPA2, matching the operator default.
func BuildPayload(cred models.WiFiCredential) string {
	ssid := payloadEscaper.Replace(strings.TrimSpace(cred.SSID))
	if cred.IsOpen() {
		return fmt.Sprintf("WIFI:S:%s;T:%s;;", ssid, models.SecurityOpen)
	}

	security := strings.ToUpper(strings.TrimSpace(cred.Security))
	if security == "" {
		security = models.SecurityWPA2
	}
	if cred.Password == "" {
		return fmt.Sprintf("WIFI:S:%s;T:%s;;", ssid, security)
	}
	return fmt.Sprintf("WIFI:S:%s;T:%s;P:%s;;", ssid, security, payloadEscaper.Replace(cred.Password))
}
