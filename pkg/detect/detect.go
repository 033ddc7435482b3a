// Package detect implements the CMS detection pipeline: bounded fetches,
// header classification, weighted content scoring, verdict resolution and,
// for WordPress sites, plugin/theme enrichment alongside the technology
// sniffer. Analyze always returns a structured result, never a bare error.
package detect

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/ChriZzn/sslx/sslx"
	"github.com/rs/zerolog"

	"github.com/getstack/cmsdetect/pkg/fetch"
	"github.com/getstack/cmsdetect/pkg/signatures"
	"github.com/getstack/cmsdetect/pkg/techsniff"
	"github.com/getstack/cmsdetect/pkg/wordpress"
)

// User-facing messages, kept stable for API consumers.
const (
	msgInvalidDomain = "Please enter a valid domain or URL (e.g., example.com, www.example.com, https://example.com)"
	msgPrivateIP     = "Private IP addresses are not allowed"
	msgFetchFailed   = "Unable to analyze the website. Please check the URL and try again."
)

// Config carries everything an analysis needs, resolved once up front.
type Config struct {
	// Client overrides the default fetch gateway; mainly for tests.
	Client *fetch.Client
	// WPScanToken enables the advisory plugin validation pass when set.
	WPScanToken string
	// Logger receives pipeline debug events; nil means silent.
	Logger *zerolog.Logger
}

// Analyzer runs detection requests. Safe for concurrent use; all
// per-request state is allocated fresh in Analyze.
type Analyzer struct {
	client  *fetch.Client
	wp      *wordpress.Scanner
	sniffer *techsniff.Sniffer
	log     zerolog.Logger
}

// NewAnalyzer builds an analyzer, loading the wappalyzer fingerprint set.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	client := cfg.Client
	if client == nil {
		client = fetch.NewClient()
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	sniffer, err := techsniff.NewSniffer()
	if err != nil {
		return nil, fmt.Errorf("init technology sniffer: %w", err)
	}

	return &Analyzer{
		client:  client,
		wp:      wordpress.NewScanner(client, wordpress.WithWPScan(cfg.WPScanToken), wordpress.WithLogger(log)),
		sniffer: sniffer,
		log:     log,
	}, nil
}

// Analyze runs the full pipeline for one domain. Validation and SSRF
// rejections return before any I/O; a failed primary fetch yields an
// error-flavored result; auxiliary failures degrade individual features.
func (a *Analyzer) Analyze(ctx context.Context, domain string) *AnalysisResult {
	normalized, targetURL := fetch.NormalizeDomain(domain)
	res := &AnalysisResult{Domain: normalized, CreatedAt: time.Now().UTC()}

	// SSRF screening first so a literal 127.0.0.1 or localhost gets the
	// private-address message, not the shape-validation one.
	if target, parseErr := url.Parse(targetURL); parseErr == nil {
		if err := fetch.CheckTarget(target.Host); err != nil {
			res.Error = msgPrivateIP
			res.Details = err.Error()
			return res
		}
	}
	if err := ValidateDomain(domain); err != nil {
		res.Error = msgInvalidDomain
		res.Details = err.Error()
		return res
	}

	a.log.Debug().Str("domain", normalized).Msg("starting analysis")

	head, err := a.client.Head(ctx, targetURL)
	if err != nil {
		a.log.Debug().Err(err).Str("domain", normalized).Msg("primary fetch failed")
		res.Error = msgFetchFailed
		res.Details = err.Error()
		return res
	}

	headerSignal := ClassifyHeaders(head.Header)
	res.StatusCode = head.StatusCode

	// A failed body fetch is not fatal: header evidence already gathered
	// still feeds the content rules.
	body, bodyResp, bodyErr := a.client.Body(ctx, targetURL)
	headers := head.Header
	if bodyErr == nil && bodyResp != nil {
		headers = bodyResp.Header
		res.StatusCode = bodyResp.StatusCode
	} else if bodyErr != nil {
		a.log.Debug().Err(bodyErr).Str("domain", normalized).Msg("body fetch failed, header signals only")
	}
	page := signatures.Page{Body: body, Headers: headers}

	var platform signatures.Platform
	var wpVersion string
	if headerSignal != nil {
		platform = headerSignal.Platform
		wpVersion = headerSignal.Version
	} else {
		platform, _ = Resolve(page)
	}
	if platform == signatures.WordPress && wpVersion == "" {
		if m := signatures.GeneratorMetaRegex.FindStringSubmatch(body); m != nil {
			wpVersion = m[1]
		}
	}
	res.CMSType = string(platform)
	res.WordPressVersion = wpVersion

	if platform == signatures.WordPress && bodyErr == nil {
		res.Plugins = a.wp.Plugins(ctx, targetURL, body)
		if len(res.Plugins) > 0 {
			res.PluginCount = fmt.Sprintf("%d detected", len(res.Plugins))
		}
		res.Theme, res.ThemeInfo = a.wp.Theme(ctx, targetURL, body)
	}

	if bodyErr == nil {
		res.Technologies = a.sniffer.Sniff(body, headers)
		res.Favicon = techsniff.FetchFavicon(ctx, a.client, targetURL, body)
	}

	if state := pickTLSState(head, bodyResp); state != nil {
		if info, sslErr := sslx.GatherSSLInfo(state); sslErr == nil {
			res.SSL = info
		}
	}

	a.log.Info().
		Str("domain", normalized).
		Str("cms", res.CMSType).
		Int("plugins", len(res.Plugins)).
		Msg("analysis complete")
	return res
}

func pickTLSState(head *fetch.Response, body *fetch.Response) *tls.ConnectionState {
	if body != nil && body.TLS != nil {
		return body.TLS
	}
	if head != nil && head.TLS != nil {
		return head.TLS
	}
	return nil
}
