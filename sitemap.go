package sitemd

import "context"

// SitemapService discovers page URLs from a site's sitemap.
// Used to pre-seed the frontier; discovered URLs remain subject to the
// crawl budget, robots rules, and exclusion filters.
type SitemapService interface {
	// DiscoverURLs finds page URLs from the site's sitemap, consulting
	// robots.txt Sitemap directives before falling back to /sitemap.xml.
	// Returns an empty slice (not nil) if no sitemap is found.
	DiscoverURLs(ctx context.Context, siteURL string) ([]string, error)
}
