package signatures

import (
	"regexp"
	"strings"
)

// PluginSignature describes how a known plugin betrays itself outside of the
// wp-content/plugins path: characteristic CSS class substrings, script/style
// asset markers (matched against tag URLs only) and meta/JSON-LD patterns
// applied to the full document.
type PluginSignature struct {
	Slug       string
	CSSClasses []string
	Assets     []string
	Meta       []*regexp.Regexp
}

// PluginMeta carries the display attributes a detected slug is enriched
// with. Parent is a soft reference by slug.
type PluginMeta struct {
	Slug         string
	Name         string
	Description  string
	Category     string
	Icon         string
	Color        string
	Dependencies []string
	Parent       string
	WPOrgURL     string
}

// PluginSignatures is the scan set for CSS/asset/meta based discovery.
var PluginSignatures = []PluginSignature{
	{
		Slug:       "woocommerce",
		CSSClasses: []string{"woocommerce", "wc-block", "add_to_cart_button"},
		Assets:     []string{"/woocommerce/", "wc-cart-fragments", "wc-blocks"},
		Meta:       []*regexp.Regexp{regexp.MustCompile(`(?i)<meta[^>]*name=["']generator["'][^>]*content=["']WooCommerce`)},
	},
	{
		Slug:       "elementor",
		CSSClasses: []string{"elementor-widget", "elementor-section", "elementor-column"},
		Assets:     []string{"/elementor/", "elementor-frontend"},
		Meta:       []*regexp.Regexp{regexp.MustCompile(`(?i)<meta[^>]*name=["']generator["'][^>]*content=["']Elementor`)},
	},
	{
		Slug:       "wordpress-seo",
		CSSClasses: []string{"yoast-schema-graph"},
		Assets:     []string{"/wordpress-seo/"},
		Meta: []*regexp.Regexp{
			regexp.MustCompile(`(?i)<!--\s*This site is optimized with the Yoast SEO plugin`),
			regexp.MustCompile(`(?i)"@type":"WebSite"[^<]*yoast`),
		},
	},
	{
		Slug:       "contact-form-7",
		CSSClasses: []string{"wpcf7", "wpcf7-form"},
		Assets:     []string{"/contact-form-7/"},
	},
	{
		Slug:       "jetpack",
		CSSClasses: []string{"jetpack-lazy-image", "sharedaddy"},
		Assets:     []string{"/jetpack/", "stats.wp.com"},
	},
	{
		Slug:       "wpforms-lite",
		CSSClasses: []string{"wpforms-container", "wpforms-form"},
		Assets:     []string{"/wpforms-lite/", "/wpforms/"},
	},
	{
		Slug:       "wp-rocket",
		Meta:       []*regexp.Regexp{regexp.MustCompile(`(?i)<!--[^>]*Performance optimized by WP Rocket`)},
		CSSClasses: []string{"rocket-lazyload"},
	},
	{
		Slug:       "revslider",
		CSSClasses: []string{"rev_slider", "rev_slider_wrapper"},
		Assets:     []string{"/revslider/"},
	},
	{
		Slug:       "all-in-one-seo-pack",
		Meta:       []*regexp.Regexp{regexp.MustCompile(`(?i)<!--\s*All in One SEO`)},
		Assets:     []string{"/all-in-one-seo-pack/"},
	},
	{
		Slug:       "wordfence",
		Assets:     []string{"/wordfence/", "wordfence_syncAttackData"},
		CSSClasses: []string{},
	},
}

// PluginMetadata is the display enrichment table keyed by slug.
var PluginMetadata = map[string]PluginMeta{
	"woocommerce": {
		Slug: "woocommerce", Name: "WooCommerce",
		Description: "E-commerce platform for WordPress",
		Category:    "E-commerce", Icon: "shopping-cart", Color: "#96588a",
		WPOrgURL: "https://wordpress.org/plugins/woocommerce/",
	},
	"woocommerce-gateway-stripe": {
		Slug: "woocommerce-gateway-stripe", Name: "WooCommerce Stripe Gateway",
		Description: "Stripe payments for WooCommerce",
		Category:    "E-commerce", Icon: "credit-card", Color: "#635bff",
		Dependencies: []string{"woocommerce"}, Parent: "woocommerce",
		WPOrgURL: "https://wordpress.org/plugins/woocommerce-gateway-stripe/",
	},
	"woocommerce-paypal-payments": {
		Slug: "woocommerce-paypal-payments", Name: "WooCommerce PayPal Payments",
		Description: "PayPal payments for WooCommerce",
		Category:    "E-commerce", Icon: "credit-card", Color: "#003087",
		Dependencies: []string{"woocommerce"}, Parent: "woocommerce",
		WPOrgURL: "https://wordpress.org/plugins/woocommerce-paypal-payments/",
	},
	"elementor": {
		Slug: "elementor", Name: "Elementor",
		Description: "Drag and drop page builder",
		Category:    "Page Builder", Icon: "layout", Color: "#92003b",
		WPOrgURL: "https://wordpress.org/plugins/elementor/",
	},
	"elementor-pro": {
		Slug: "elementor-pro", Name: "Elementor Pro",
		Description: "Premium extensions for Elementor",
		Category:    "Page Builder", Icon: "layout", Color: "#92003b",
		Dependencies: []string{"elementor"}, Parent: "elementor",
	},
	"wordpress-seo": {
		Slug: "wordpress-seo", Name: "Yoast SEO",
		Description: "Search engine optimization toolkit",
		Category:    "SEO", Icon: "search", Color: "#a4286a",
		WPOrgURL: "https://wordpress.org/plugins/wordpress-seo/",
	},
	"contact-form-7": {
		Slug: "contact-form-7", Name: "Contact Form 7",
		Description: "Simple and flexible contact forms",
		Category:    "Forms", Icon: "mail", Color: "#42a5f5",
		WPOrgURL: "https://wordpress.org/plugins/contact-form-7/",
	},
	"jetpack": {
		Slug: "jetpack", Name: "Jetpack",
		Description: "Security, performance and site management",
		Category:    "Utilities", Icon: "zap", Color: "#069e08",
		WPOrgURL: "https://wordpress.org/plugins/jetpack/",
	},
	"akismet": {
		Slug: "akismet", Name: "Akismet Anti-spam",
		Description: "Spam protection for comments and forms",
		Category:    "Security", Icon: "shield", Color: "#357b49",
		WPOrgURL: "https://wordpress.org/plugins/akismet/",
	},
	"wpforms-lite": {
		Slug: "wpforms-lite", Name: "WPForms",
		Description: "Drag and drop form builder",
		Category:    "Forms", Icon: "clipboard", Color: "#e27730",
		WPOrgURL: "https://wordpress.org/plugins/wpforms-lite/",
	},
	"wordfence": {
		Slug: "wordfence", Name: "Wordfence Security",
		Description: "Firewall and malware scanner",
		Category:    "Security", Icon: "shield", Color: "#00709e",
		WPOrgURL: "https://wordpress.org/plugins/wordfence/",
	},
	"wp-rocket": {
		Slug: "wp-rocket", Name: "WP Rocket",
		Description: "Caching and performance optimization",
		Category:    "Performance", Icon: "rocket", Color: "#f56640",
	},
	"revslider": {
		Slug: "revslider", Name: "Slider Revolution",
		Description: "Responsive slider and page sections",
		Category:    "Media", Icon: "image", Color: "#d50000",
	},
	"all-in-one-seo-pack": {
		Slug: "all-in-one-seo-pack", Name: "All in One SEO",
		Description: "SEO toolkit for WordPress",
		Category:    "SEO", Icon: "search", Color: "#1f77be",
		WPOrgURL: "https://wordpress.org/plugins/all-in-one-seo-pack/",
	},
	"really-simple-ssl": {
		Slug: "really-simple-ssl", Name: "Really Simple SSL",
		Description: "SSL migration and hardening",
		Category:    "Security", Icon: "lock", Color: "#2e8a37",
		WPOrgURL: "https://wordpress.org/plugins/really-simple-ssl/",
	},
	"litespeed-cache": {
		Slug: "litespeed-cache", Name: "LiteSpeed Cache",
		Description: "Server-level caching and optimization",
		Category:    "Performance", Icon: "gauge", Color: "#4a9b5d",
		WPOrgURL: "https://wordpress.org/plugins/litespeed-cache/",
	},
}

// RESTNamespaces maps a wp-json namespace prefix to the plugin slug that
// registers it. Namespaces are compared by the segment before the slash.
var RESTNamespaces = map[string]string{
	"wc":              "woocommerce",
	"wc-admin":        "woocommerce",
	"yoast":           "wordpress-seo",
	"jetpack":         "jetpack",
	"elementor":       "elementor",
	"contact-form-7":  "contact-form-7",
	"wpforms":         "wpforms-lite",
	"akismet":         "akismet",
	"wordfence":       "wordfence",
	"aioseo":          "all-in-one-seo-pack",
	"litespeed":       "litespeed-cache",
	"really-simple-ssl": "really-simple-ssl",
}

// CoreSlugs are WordPress core assets that surface under wp-content/plugins
// style paths but are not third-party plugins. Subtracted from every
// discovery method before the union.
var CoreSlugs = map[string]struct{}{
	"wp-block-library": {},
	"block-library":    {},
	"wp-editor":        {},
	"editor":           {},
	"batch":            {},
	"wp-polyfill":      {},
}

// IsCoreSlug reports whether slug names a core component, case-insensitively.
func IsCoreSlug(slug string) bool {
	_, ok := CoreSlugs[strings.ToLower(slug)]
	return ok
}

// FallbackMeta synthesizes a display record for a slug with no metadata
// entry: title-cased name, generic category and styling.
func FallbackMeta(slug string) PluginMeta {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return PluginMeta{
		Slug:        slug,
		Name:        strings.Join(words, " "),
		Description: "WordPress plugin",
		Category:    "Other",
		Icon:        "puzzle",
		Color:       "#6b7280",
		WPOrgURL:    "https://wordpress.org/plugins/" + slug + "/",
	}
}
