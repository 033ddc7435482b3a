package wordpress

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/getstack/cmsdetect/pkg/signatures"
)

// listingCandidates probes /wp-content/plugins/ for an exposed directory
// listing. Almost every server disables autoindex, so failures here are the
// expected case, not errors.
func (s *Scanner) listingCandidates(ctx context.Context, baseURL string) []Candidate {
	body, status, err := s.client.Probe(ctx, baseURL+"/wp-content/plugins/")
	if err != nil || status != 200 || !strings.Contains(body, "Index of") {
		return nil
	}

	var out []Candidate
	for _, slug := range parseDirectoryListing(body) {
		out = append(out, Candidate{Slug: slug, Method: MethodListing})
	}
	s.log.Debug().Int("slugs", len(out)).Msg("plugin directory listing exposed")
	return out
}

type restIndex struct {
	Namespaces []string `json:"namespaces"`
}

// restCandidates fetches the wp-json index and attributes known namespaces
// to plugins. Unknown non-wp namespaces are added speculatively by prefix;
// that trades precision for recall and may surface non-plugins.
func (s *Scanner) restCandidates(ctx context.Context, baseURL string) []Candidate {
	body, status, err := s.client.Probe(ctx, baseURL+"/wp-json/")
	if err != nil || status != 200 {
		return nil
	}

	var index restIndex
	if err := json.Unmarshal([]byte(body), &index); err != nil {
		return nil
	}

	var out []Candidate
	seen := make(map[string]bool)
	for _, ns := range index.Namespaces {
		prefix := ns
		if i := strings.IndexByte(ns, '/'); i >= 0 {
			prefix = ns[:i]
		}
		if prefix == "wp" || prefix == "oembed" || prefix == "" {
			continue
		}
		slug, known := signatures.RESTNamespaces[prefix]
		if !known {
			slug = prefix
		}
		if !seen[slug] {
			seen[slug] = true
			out = append(out, Candidate{Slug: slug, Method: MethodRESTAPI})
		}
	}
	return out
}
