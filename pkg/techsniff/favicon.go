package techsniff

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/url"
	"sort"
	"strings"

	"github.com/spaolacci/murmur3"
	"golang.org/x/net/html"

	"github.com/getstack/cmsdetect/pkg/fetch"
)

// Favicon is the mmh3 hash of the site icon, in the base64 form the
// fingerprint databases index on.
type Favicon struct {
	Hash int32  `json:"hash,omitempty"`
	URL  string `json:"url,omitempty"`
}

// FetchFavicon resolves icon candidates from the page's link tags (falling
// back to /favicon.ico), fetches the first one that answers and hashes it.
// Returns nil when no icon could be retrieved.
func FetchFavicon(ctx context.Context, client *fetch.Client, baseURL, body string) *Favicon {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	hrefs := extractIconHrefs(body)
	if len(hrefs) == 0 {
		hrefs = []string{"/favicon.ico"}
	}

	for _, href := range hrefs {
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		iconURL := base.ResolveReference(ref).String()
		data, status, err := client.Probe(ctx, iconURL)
		if err != nil || status != 200 || data == "" {
			continue
		}
		return &Favicon{Hash: MMH3Hash([]byte(data)), URL: iconURL}
	}
	return nil
}

// MMH3Hash computes the murmur3 hash over the newline-wrapped base64
// encoding of the icon bytes.
func MMH3Hash(data []byte) int32 {
	encoded := insertInto(base64.StdEncoding.EncodeToString(data), 76, '\n')
	hasher := murmur3.New32WithSeed(0)
	hasher.Write([]byte(encoded))
	return int32(hasher.Sum32())
}

func insertInto(s string, interval int, sep rune) string {
	var buffer bytes.Buffer
	before := interval - 1
	last := len(s) - 1
	for i, char := range s {
		buffer.WriteRune(char)
		if i%interval == before && i != last {
			buffer.WriteRune(sep)
		}
	}
	buffer.WriteRune(sep)
	return buffer.String()
}

func iconRelToken(tok string) bool {
	switch tok {
	case "icon", "shortcut", "shortcut-icon", "apple-touch-icon", "mask-icon":
		return true
	}
	return false
}

func extractIconHrefs(body string) []string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var candidates []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "link" {
			var rel, href string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "rel":
					rel = strings.ToLower(strings.TrimSpace(attr.Val))
				case "href":
					href = strings.TrimSpace(attr.Val)
				}
			}
			if href != "" {
				for _, tok := range strings.Fields(rel) {
					if iconRelToken(tok) {
						candidates = append(candidates, href)
						break
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	// Prefer .ico candidates, then lexical order, for deterministic probing.
	sort.SliceStable(candidates, func(i, j int) bool {
		ai := strings.HasSuffix(strings.ToLower(candidates[i]), ".ico")
		aj := strings.HasSuffix(strings.ToLower(candidates[j]), ".ico")
		if ai == aj {
			return candidates[i] < candidates[j]
		}
		return ai && !aj
	})
	return candidates
}
