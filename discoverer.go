package sitemd

// LinkDiscoverer extracts same-site hyperlinks for frontier expansion.
type LinkDiscoverer interface {
	// DiscoverLinks parses HTML and returns normalized absolute URLs.
	// Relative hrefs are resolved against pageURL. Links pointing to a
	// different host, using a non-HTTP(S) scheme, or ending in a known
	// binary extension are dropped. The result preserves document order
	// and contains no duplicates.
	DiscoverLinks(html string, pageURL string) ([]string, error)
}
