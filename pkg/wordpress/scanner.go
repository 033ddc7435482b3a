// Package wordpress turns a confirmed WordPress page into structured plugin
// and theme details. Plugin discovery unions several independent methods
// into one deduplicated slug set; theme discovery parses the active theme's
// style.css header block. Every auxiliary fetch here is best-effort: a
// failed probe degrades the output, never the analysis.
package wordpress

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/getstack/cmsdetect/pkg/fetch"
	"github.com/getstack/cmsdetect/pkg/signatures"
)

// PluginRecord is one detected plugin after dedup and enrichment.
type PluginRecord struct {
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Icon         string   `json:"icon"`
	Color        string   `json:"color"`
	Version      string   `json:"version,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	Parent       string   `json:"parent,omitempty"`
	WPOrgURL     string   `json:"wpOrgUrl,omitempty"`
	Verified     bool     `json:"verified,omitempty"`
}

// Scanner runs the enrichment pipeline against one site.
type Scanner struct {
	client *fetch.Client
	wpscan *WPScanClient
	log    zerolog.Logger
}

// Option adjusts a Scanner.
type Option func(*Scanner)

// WithWPScan enables the advisory validation pass. Without a token the pass
// is skipped entirely.
func WithWPScan(token string) Option {
	return func(s *Scanner) {
		if token != "" {
			s.wpscan = NewWPScanClient(token)
		}
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Scanner) { s.log = log }
}

func NewScanner(client *fetch.Client, opts ...Option) *Scanner {
	s := &Scanner{client: client, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Plugins discovers, deduplicates and enriches the plugin set for a page.
func (s *Scanner) Plugins(ctx context.Context, baseURL, body string) []PluginRecord {
	candidates := DiscoverInPage(body)
	candidates = append(candidates, s.listingCandidates(ctx, baseURL)...)
	candidates = append(candidates, s.restCandidates(ctx, baseURL)...)

	records := BuildRecords(candidates)

	// Advisory only: a lookup failure never removes a candidate.
	if s.wpscan != nil {
		for i := range records {
			ok, err := s.wpscan.Validate(ctx, records[i].Slug)
			if err != nil {
				s.log.Debug().Err(err).Str("slug", records[i].Slug).Msg("wpscan lookup failed")
				continue
			}
			records[i].Verified = ok
		}
	}
	return records
}

// DiscoverInPage runs the page-local discovery methods: path scan, CSS
// class signatures, tag-restricted asset signatures and meta/JSON-LD
// signatures.
func DiscoverInPage(body string) []Candidate {
	var out []Candidate
	out = append(out, pathCandidates(body)...)
	out = append(out, cssCandidates(body)...)
	out = append(out, assetCandidates(body)...)
	out = append(out, metaCandidates(body)...)
	return out
}

// BuildRecords subtracts core slugs, collapses duplicates (first version
// seen wins) and enriches each slug with display metadata. Output is sorted
// by slug for stable rendering.
func BuildRecords(candidates []Candidate) []PluginRecord {
	versions := make(map[string]string)
	var order []string
	for _, c := range candidates {
		if c.Slug == "" || signatures.IsCoreSlug(c.Slug) {
			continue
		}
		if _, seen := versions[c.Slug]; !seen {
			versions[c.Slug] = c.Version
			order = append(order, c.Slug)
		} else if versions[c.Slug] == "" && c.Version != "" {
			versions[c.Slug] = c.Version
		}
	}
	sort.Strings(order)

	records := make([]PluginRecord, 0, len(order))
	for _, slug := range order {
		meta, ok := signatures.PluginMetadata[slug]
		if !ok {
			meta = signatures.FallbackMeta(slug)
		}
		records = append(records, PluginRecord{
			Slug:         slug,
			Name:         meta.Name,
			Description:  meta.Description,
			Category:     meta.Category,
			Icon:         meta.Icon,
			Color:        meta.Color,
			Version:      versions[slug],
			Dependencies: meta.Dependencies,
			Parent:       meta.Parent,
			WPOrgURL:     meta.WPOrgURL,
		})
	}
	return records
}
