package fetch

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
)

// ErrPrivateAddress is returned when a target would point the detector at a
// private, loopback or link-local address.
var ErrPrivateAddress = errors.New("private IP not allowed")

// CheckTarget rejects hostnames that name a private, loopback or link-local
// address. It runs before any network call is issued; plain DNS names pass
// (only literal addresses and localhost variants are screened here).
func CheckTarget(host string) error {
	h := host
	if stripped, _, err := net.SplitHostPort(host); err == nil {
		h = stripped
	}
	h = strings.Trim(h, "[]")

	lower := strings.ToLower(h)
	if lower == "localhost" || strings.HasSuffix(lower, ".localhost") {
		return fmt.Errorf("%w: %s", ErrPrivateAddress, host)
	}

	addr, err := netip.ParseAddr(h)
	if err != nil {
		// Not an address literal.
		return nil
	}
	if addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() || addr.IsUnspecified() {
		return fmt.Errorf("%w: %s", ErrPrivateAddress, host)
	}
	return nil
}
