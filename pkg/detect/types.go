package detect

import (
	"time"

	"github.com/ChriZzn/sslx/sslx"

	"github.com/getstack/cmsdetect/pkg/techsniff"
	"github.com/getstack/cmsdetect/pkg/wordpress"
)

// AnalysisResult is the terminal aggregate of one detection run. It is
// written once and never mutated afterwards; persistence is the caller's
// concern.
type AnalysisResult struct {
	Domain           string                    `json:"domain"`
	CMSType          string                    `json:"cmsType,omitempty"`
	WordPressVersion string                    `json:"wordPressVersion,omitempty"`
	Theme            string                    `json:"theme,omitempty"`
	ThemeInfo        *wordpress.ThemeInfo      `json:"themeInfo,omitempty"`
	PluginCount      string                    `json:"pluginCount,omitempty"`
	Plugins          []wordpress.PluginRecord  `json:"plugins,omitempty"`
	Technologies     []string                  `json:"technologies,omitempty"`
	StatusCode       int                       `json:"statusCode,omitempty"`
	Favicon          *techsniff.Favicon        `json:"favicon,omitempty"`
	SSL              *sslx.SSLInfo             `json:"ssl,omitempty"`
	Error            string                    `json:"error,omitempty"`
	Details          string                    `json:"details,omitempty"`
	CreatedAt        time.Time                 `json:"createdAt"`
}

// IsWordPress is kept for callers that only care about the original
// binary question.
func (r *AnalysisResult) IsWordPress() bool {
	return r.CMSType == "wordpress"
}
