package detect

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidDomain is returned for input that does not look like a domain
// or URL.
var ErrInvalidDomain = errors.New("invalid domain")

// domainPattern accepts plain domains, www-prefixed domains, full URLs and
// URLs with paths. Deliberately liberal: the detector refuses junk, not
// unusual-but-real hostnames.
var domainPattern = regexp.MustCompile(`^(?i)(https?://)?(www\.)?([a-z0-9]([a-z0-9\-]{0,61}[a-z0-9])?\.)*[a-z0-9]([a-z0-9\-]{0,61}[a-z0-9])?\.[a-z]{2,}([/\w.\-~:?#@!$&'()*+,;=]*)?$`)

// ValidateDomain rejects malformed input before any I/O happens.
func ValidateDomain(domain string) error {
	clean := strings.TrimSpace(domain)
	if clean == "" {
		return fmt.Errorf("%w: domain is required", ErrInvalidDomain)
	}
	if !strings.Contains(clean, ".") || !domainPattern.MatchString(clean) {
		return fmt.Errorf("%w: %q", ErrInvalidDomain, domain)
	}
	return nil
}
