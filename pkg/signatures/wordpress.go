package signatures

import "regexp"

// GeneratorMetaRegex matches the WordPress generator meta tag and captures
// the version. Shared with the engine for version extraction.
var GeneratorMetaRegex = regexp.MustCompile(`(?i)<meta[^>]*name=["']generator["'][^>]*content=["']WordPress\s+([\d.]+)["']`)

var (
	wpVersionComment = regexp.MustCompile(`(?i)<!--[^>]*WordPress\s+[\d.]+[^>]*-->`)
	wpIncludesAsset  = regexp.MustCompile(`wp-includes/[^"'\s]+\.(?:js|css)`)
)

// wordpressRules weights: the generator meta tag is decisive on its own (4),
// the REST API path is a strong structural hint (3), everything else is a
// plain structural path (2).
var wordpressRules = []Rule{
	{Label: "generator meta tag", Weight: 4, Check: bodyMatches(GeneratorMetaRegex)},
	{Label: "wp-json REST API path", Weight: 3, Check: bodyContains("wp-json/wp/v2/")},
	{Label: "admin-ajax endpoint", Weight: 2, Check: bodyContains("wp-admin/admin-ajax.php")},
	{Label: "theme directory reference", Weight: 2, Check: bodyContains("wp-content/themes/")},
	{Label: "plugin directory reference", Weight: 2, Check: bodyContains("wp-content/plugins/")},
	{Label: "wp-includes asset", Weight: 2, Check: bodyMatches(wpIncludesAsset)},
	{Label: "wp-embed script", Weight: 2, Check: bodyContains("wp-embed.min.js")},
	{Label: "version HTML comment", Weight: 2, Check: bodyMatches(wpVersionComment)},
	{Label: "REST API link header", Weight: 2, Check: bodyContains(`rel="https://api.w.org/"`)},
}
