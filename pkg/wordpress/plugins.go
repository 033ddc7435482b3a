package wordpress

import (
	"regexp"
	"strings"

	"github.com/getstack/cmsdetect/pkg/signatures"
)

// Method names the discovery method that produced a candidate.
type Method string

const (
	MethodPath    Method = "path"
	MethodListing Method = "listing"
	MethodCSS     Method = "css"
	MethodAssets  Method = "assets"
	MethodMeta    Method = "meta"
	MethodRESTAPI Method = "rest-api"
)

// Candidate is one raw plugin sighting before dedup.
type Candidate struct {
	Slug    string
	Version string
	Method  Method
}

var (
	pluginPathRegex = regexp.MustCompile(`wp-content/plugins/([^/'"?\s]+)/`)
	assetVerRegex   = regexp.MustCompile(`[?&]ver=([0-9][0-9A-Za-z._-]*)`)
	classAttrRegex  = regexp.MustCompile(`class\s*=\s*["']([^"']*)["']`)
)

// versionWindow bounds how far past a plugin path match a ?ver= query is
// still attributed to that plugin. Inherited heuristic; left as is.
const versionWindow = 200

// pathCandidates extracts every wp-content/plugins/<slug>/ occurrence,
// capturing a co-located ?ver= value when one appears within the window.
func pathCandidates(body string) []Candidate {
	var out []Candidate
	for _, loc := range pluginPathRegex.FindAllStringSubmatchIndex(body, -1) {
		slug := body[loc[2]:loc[3]]
		end := loc[1] + versionWindow
		if end > len(body) {
			end = len(body)
		}
		version := ""
		if m := assetVerRegex.FindStringSubmatch(body[loc[1]:end]); m != nil {
			version = m[1]
		}
		out = append(out, Candidate{Slug: slug, Version: version, Method: MethodPath})
	}
	return out
}

// cssCandidates matches known plugin CSS class substrings, but only inside
// class attributes so incidental mentions in copy do not count.
func cssCandidates(body string) []Candidate {
	var classText strings.Builder
	for _, m := range classAttrRegex.FindAllStringSubmatch(body, -1) {
		classText.WriteString(m[1])
		classText.WriteByte(' ')
	}
	classes := classText.String()
	if classes == "" {
		return nil
	}

	var out []Candidate
	for _, sig := range signatures.PluginSignatures {
		for _, class := range sig.CSSClasses {
			if strings.Contains(classes, class) {
				out = append(out, Candidate{Slug: sig.Slug, Method: MethodCSS})
				break
			}
		}
	}
	return out
}

// assetCandidates matches plugin asset markers against script src and link
// href URLs only, never raw body text.
func assetCandidates(body string) []Candidate {
	urls := extractAssetURLs(body)
	if len(urls) == 0 {
		return nil
	}
	joined := strings.Join(urls, "\n")

	var out []Candidate
	for _, sig := range signatures.PluginSignatures {
		for _, marker := range sig.Assets {
			if strings.Contains(joined, marker) {
				out = append(out, Candidate{Slug: sig.Slug, Method: MethodAssets})
				break
			}
		}
	}
	return out
}

// metaCandidates applies plugin meta/JSON-LD patterns to the full document.
func metaCandidates(body string) []Candidate {
	var out []Candidate
	for _, sig := range signatures.PluginSignatures {
		for _, re := range sig.Meta {
			if re.MatchString(body) {
				out = append(out, Candidate{Slug: sig.Slug, Method: MethodMeta})
				break
			}
		}
	}
	return out
}
