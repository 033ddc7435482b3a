package signatures

import "regexp"

var wixGeneratorMeta = regexp.MustCompile(`(?i)<meta[^>]*name=["']generator["'][^>]*content=["']Wix\.com`)

// wixRules: Wix has no trustworthy header shortcut, so the generator meta
// tag and the X-Wix request headers carry the decisive weights.
var wixRules = []Rule{
	{Label: "Wix generator meta tag", Weight: 4, Check: bodyMatches(wixGeneratorMeta)},
	{Label: "X-Wix request header", Weight: 3, Check: anyOf(
		headerPresent("X-Wix-Request-Id"),
		headerPresent("X-Wix-Instance"),
	)},
	{Label: "wixstatic CDN asset", Weight: 2, Check: bodyContains("static.wixstatic.com")},
	{Label: "parastorage asset", Weight: 2, Check: bodyContains("parastorage.com")},
	{Label: "Wix session cookie marker", Weight: 2, Check: anyOf(
		bodyContains("wixSession"),
		bodyContains("wixBiSession"),
	)},
	{Label: "wix-thunderbolt renderer", Weight: 2, Check: bodyContains("wix-thunderbolt")},
	{Label: "client renderer with wix marker", Weight: 2, Check: allOf(
		bodyContains("client-renderer"),
		bodyContains("wix"),
	)},
}
