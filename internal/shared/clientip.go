package shared

import (
	"net/http"
	"strings"
)

// ClientIP extracts a caller-identifying address from forwarding headers.
// It returns the literal "unknown" when neither header is present, so rate
// limit keys built from it stay well formed. Callers behind NAT may share an
// address; authenticated endpoints should key on the user ID instead.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			fwd = fwd[:idx]
		}
		if ip := strings.TrimSpace(fwd); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return "unknown"
}
