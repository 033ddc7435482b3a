package wordpress

import (
	"strings"

	"golang.org/x/net/html"
)

// extractAssetURLs walks the document and collects <script src> and
// <link href> values.
func extractAssetURLs(body string) []string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var urls []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			var want string
			switch n.Data {
			case "script":
				want = "src"
			case "link":
				want = "href"
			}
			if want != "" {
				for _, attr := range n.Attr {
					if attr.Key == want && attr.Val != "" {
						urls = append(urls, attr.Val)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return urls
}

// parseDirectoryListing pulls subfolder names out of an "Index of" style
// autoindex page.
func parseDirectoryListing(body string) []string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var slugs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				href := attr.Val
				if !strings.HasSuffix(href, "/") || strings.ContainsAny(href, "?#") {
					continue
				}
				slug := strings.Trim(href, "/")
				if slug == "" || slug == ".." || strings.Contains(slug, "/") {
					continue
				}
				slugs = append(slugs, slug)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return slugs
}
