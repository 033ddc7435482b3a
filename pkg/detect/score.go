package detect

import "github.com/getstack/cmsdetect/pkg/signatures"

// Acceptance thresholds: one decisive rule already clears the score bar,
// while weak signals have to stack up.
const (
	minScore      = 4
	minIndicators = 1
)

// SignalScore accumulates additive evidence for one platform candidate.
// The score never decreases; indicator labels are recorded in rule order.
type SignalScore struct {
	Score      int
	Indicators []string
}

func (s *SignalScore) add(weight int, label string) {
	s.Score += weight
	s.Indicators = append(s.Indicators, label)
}

// Accepted applies the per-platform acceptance rule.
func (s *SignalScore) Accepted() bool {
	return s.Score >= minScore && len(s.Indicators) >= minIndicators
}

// Evaluate folds a platform's rule list over the page. Scoring is additive
// and commutative, so rule order only shapes the indicator log.
func Evaluate(platform signatures.Platform, page signatures.Page) SignalScore {
	var score SignalScore
	for _, rule := range signatures.PlatformRules(platform) {
		if rule.Check(page) {
			score.add(rule.Weight, rule.Label)
		}
	}
	return score
}

// resolveOrder is the fixed precedence: WordPress, then Wix, then Shopify.
// Later platforms are only evaluated if every earlier one was rejected,
// which makes co-detection impossible by construction.
var resolveOrder = []signatures.Platform{signatures.WordPress, signatures.Wix, signatures.Shopify}

// Resolve evaluates the platforms in precedence order and returns the
// accepted platform (empty if none) plus the per-platform scores. Platforms
// skipped by the short-circuit keep their zero score.
func Resolve(page signatures.Page) (signatures.Platform, map[signatures.Platform]*SignalScore) {
	scores := map[signatures.Platform]*SignalScore{
		signatures.WordPress: {},
		signatures.Wix:       {},
		signatures.Shopify:   {},
	}
	for _, platform := range resolveOrder {
		s := Evaluate(platform, page)
		scores[platform] = &s
		if s.Accepted() {
			return platform, scores
		}
	}
	return "", scores
}
