package detect

import (
	"net/http"
	"regexp"

	"github.com/getstack/cmsdetect/pkg/signatures"
)

// HeaderSignal is a high-confidence platform hint taken from response
// headers alone, before any body is fetched.
type HeaderSignal struct {
	Platform signatures.Platform
	Version  string
}

// Anchored on purpose: a header merely mentioning WordPress somewhere in
// its value must not count.
var (
	generatorHeaderRegex = regexp.MustCompile(`^WordPress\s+([\d.]+)`)
	poweredByHeaderRegex = regexp.MustCompile(`^WordPress`)
)

// ClassifyHeaders inspects the HEAD response headers for a decisive
// platform signal. Only WordPress exposes one; Wix and Shopify are decided
// from body content.
func ClassifyHeaders(h http.Header) *HeaderSignal {
	for _, name := range []string{"X-Generator", "Generator"} {
		if v := h.Get(name); v != "" {
			if m := generatorHeaderRegex.FindStringSubmatch(v); m != nil {
				return &HeaderSignal{Platform: signatures.WordPress, Version: m[1]}
			}
		}
	}
	if v := h.Get("X-Powered-By"); v != "" && poweredByHeaderRegex.MatchString(v) {
		return &HeaderSignal{Platform: signatures.WordPress}
	}
	return nil
}
