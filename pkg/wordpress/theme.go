package wordpress

import (
	"context"
	"regexp"
	"strings"
)

// ThemeInfo is the parsed form of a theme's style.css header block.
// IsChildTheme is true exactly when ParentTheme is set.
type ThemeInfo struct {
	Name            string     `json:"name"`
	ThemeURI        string     `json:"themeUri,omitempty"`
	Description     string     `json:"description,omitempty"`
	Author          string     `json:"author,omitempty"`
	AuthorURI       string     `json:"authorUri,omitempty"`
	Version         string     `json:"version,omitempty"`
	License         string     `json:"license,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	IsChildTheme    bool       `json:"isChildTheme,omitempty"`
	ParentTheme     string     `json:"parentTheme,omitempty"`
	ParentThemeInfo *ThemeInfo `json:"parentThemeInfo,omitempty"`
	Screenshot      string     `json:"screenshot,omitempty"`
	WPOrgURL        string     `json:"wpOrgUrl,omitempty"`
}

var themePathRegex = regexp.MustCompile(`wp-content/themes/([^/'"?\s]+)`)

// ThemeSlug returns the active theme slug referenced by the page, or "".
func ThemeSlug(body string) string {
	if m := themePathRegex.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return ""
}

// Theme resolves the active theme for a page: slug from the first themes/
// reference, details from its style.css. A failed stylesheet fetch degrades
// to a record carrying only the slug-derived display name.
func (s *Scanner) Theme(ctx context.Context, baseURL, body string) (string, *ThemeInfo) {
	slug := ThemeSlug(body)
	if slug == "" {
		return "", nil
	}

	info := s.fetchThemeInfo(ctx, baseURL, slug)
	if info == nil {
		info = &ThemeInfo{Name: titleCaseSlug(slug)}
	}
	info.Screenshot = baseURL + "/wp-content/themes/" + slug + "/screenshot.png"
	info.WPOrgURL = "https://wordpress.org/themes/" + slug + "/"

	// One level only: a child theme pulls its parent's summary, the parent
	// is never recursed into.
	if info.IsChildTheme {
		if parent := s.fetchThemeInfo(ctx, baseURL, info.ParentTheme); parent != nil {
			info.ParentThemeInfo = parent
		}
	}
	return slug, info
}

func (s *Scanner) fetchThemeInfo(ctx context.Context, baseURL, slug string) *ThemeInfo {
	css, status, err := s.client.Probe(ctx, baseURL+"/wp-content/themes/"+slug+"/style.css")
	if err != nil || status != 200 {
		return nil
	}
	info := ParseThemeStyleCSS(css)
	if info.Name == "" {
		info.Name = titleCaseSlug(slug)
	}
	return &info
}

var styleHeaderRegex = regexp.MustCompile(`(?m)^[\s*#]*([A-Za-z ]+?):[ \t]*(.+?)[ \t]*$`)

// ParseThemeStyleCSS parses the WordPress header comment block of a
// style.css via line-anchored key:value pairs. A Template line marks a
// child theme and names its parent slug.
func ParseThemeStyleCSS(css string) ThemeInfo {
	fields := make(map[string]string)
	for _, m := range styleHeaderRegex.FindAllStringSubmatch(css, -1) {
		key := strings.ToLower(strings.TrimSpace(m[1]))
		if _, dup := fields[key]; !dup {
			fields[key] = m[2]
		}
	}

	info := ThemeInfo{
		Name:        fields["theme name"],
		ThemeURI:    fields["theme uri"],
		Description: fields["description"],
		Author:      fields["author"],
		AuthorURI:   fields["author uri"],
		Version:     fields["version"],
		License:     fields["license"],
	}
	if tags := fields["tags"]; tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				info.Tags = append(info.Tags, t)
			}
		}
	}
	if template := fields["template"]; template != "" {
		info.IsChildTheme = true
		info.ParentTheme = template
	}
	return info
}

func titleCaseSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
