// Package techsniff runs the CMS-independent technology pass: keyword-pair
// matching for front-end frameworks and hosting platforms, a wappalyzer
// fingerprint sweep, and favicon mmh3 hashing.
package techsniff

import (
	"net/http"
	"sort"
	"strings"

	wappalyzer "github.com/projectdiscovery/wappalyzergo"

	"github.com/getstack/cmsdetect/pkg/signatures"
)

// Sniffer detects generic technologies. The zero value runs the
// keyword-pair rules only; NewSniffer adds the wappalyzer pass.
type Sniffer struct {
	analyzer *wappalyzer.Wappalyze
}

func NewSniffer() (*Sniffer, error) {
	analyzer, err := wappalyzer.New()
	if err != nil {
		return nil, err
	}
	return &Sniffer{analyzer: analyzer}, nil
}

// Sniff returns the detected technology names, deduplicated and sorted.
// Each keyword-pair rule needs both its generic keyword and a specific
// marker present; presence is binary, there is no scoring.
func (s *Sniffer) Sniff(body string, headers http.Header) []string {
	seen := make(map[string]bool)
	lower := strings.ToLower(body)

	for _, pair := range signatures.TechnologyPairs {
		if !strings.Contains(lower, pair.Keyword) {
			continue
		}
		for _, marker := range pair.Markers {
			if strings.Contains(lower, strings.ToLower(marker)) {
				seen[pair.Name] = true
				break
			}
		}
	}

	if s.analyzer != nil {
		for tech := range s.analyzer.Fingerprint(headers, []byte(body)) {
			seen[tech] = true
		}
	}

	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
