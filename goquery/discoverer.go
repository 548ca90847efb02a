package goquery

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sitemd/sitemd"
)

// skipExtensions lists path extensions for binary assets that are
// never worth fetching as pages.
var skipExtensions = map[string]struct{}{
	".pdf": {}, ".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {},
	".svg": {}, ".webp": {}, ".mp3": {}, ".mp4": {}, ".avi": {},
	".mov": {}, ".zip": {}, ".tar": {}, ".gz": {}, ".doc": {},
	".docx": {}, ".xls": {}, ".xlsx": {}, ".ppt": {}, ".pptx": {},
}

// Discoverer extracts same-host hyperlinks from HTML pages.
type Discoverer struct{}

var _ sitemd.LinkDiscoverer = (*Discoverer)(nil)

// NewDiscoverer creates a new Discoverer.
func NewDiscoverer() *Discoverer {
	return &Discoverer{}
}

// DiscoverLinks parses HTML and returns normalized same-host link
// targets in document order, deduplicated by first occurrence.
// Non-HTTP schemes, external hosts, binary assets, and links resolving
// back to pageURL itself are dropped.
func (d *Discoverer) DiscoverLinks(html string, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, sitemd.Errorf(sitemd.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitemd.Errorf(sitemd.EINVALID, "failed to parse HTML: %v", err)
	}

	self, err := sitemd.NormalizeURL(pageURL)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)

		// Exact host match; subdomains are external.
		if resolved.Host != base.Host {
			return
		}
		if isBinaryAsset(resolved.Path) {
			return
		}

		normalized, err := sitemd.NormalizeURL(resolved.String())
		if err != nil {
			return
		}
		if normalized == self {
			return
		}
		if _, ok := seen[normalized]; ok {
			return
		}
		seen[normalized] = struct{}{}
		links = append(links, normalized)
	})

	return links, nil
}

// isNonHTTPLink reports whether a href uses a scheme that cannot be crawled.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

func isBinaryAsset(urlPath string) bool {
	ext := strings.ToLower(path.Ext(urlPath))
	_, ok := skipExtensions[ext]
	return ok
}
