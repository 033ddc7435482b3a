// Package signatures holds the static detection tables: weighted platform
// rules, plugin signature sets, plugin display metadata and technology
// keyword pairs. Everything in this package is built once at init and is
// read-only afterwards, so concurrent analyses can share it freely.
package signatures

import (
	"net/http"
	"regexp"
	"strings"
)

// Platform identifies a CMS candidate.
type Platform string

const (
	WordPress Platform = "wordpress"
	Wix       Platform = "wix"
	Shopify   Platform = "shopify"
)

// Page is the evidence a rule may inspect: the fetched HTML plus the
// response headers of the request that produced it.
type Page struct {
	Body    string
	Headers http.Header
}

// Rule is a single independent signal. Check is a pure predicate over the
// page; a match contributes Weight points under the Label indicator.
type Rule struct {
	Label  string
	Weight int
	Check  func(Page) bool
}

// PlatformRules returns the ordered rule list for a platform. The order only
// affects which indicator labels are recorded first, never the score.
func PlatformRules(p Platform) []Rule {
	switch p {
	case WordPress:
		return wordpressRules
	case Wix:
		return wixRules
	case Shopify:
		return shopifyRules
	}
	return nil
}

func bodyContains(substr string) func(Page) bool {
	return func(p Page) bool {
		return strings.Contains(p.Body, substr)
	}
}

func bodyMatches(re *regexp.Regexp) func(Page) bool {
	return func(p Page) bool {
		return re.MatchString(p.Body)
	}
}

func headerPresent(name string) func(Page) bool {
	return func(p Page) bool {
		return p.Headers.Get(name) != ""
	}
}

func anyOf(checks ...func(Page) bool) func(Page) bool {
	return func(p Page) bool {
		for _, c := range checks {
			if c(p) {
				return true
			}
		}
		return false
	}
}

func allOf(checks ...func(Page) bool) func(Page) bool {
	return func(p Page) bool {
		for _, c := range checks {
			if !c(p) {
				return false
			}
		}
		return true
	}
}
