package sitemd

import (
	"net/url"
	"path"
	"strings"
	"time"
)

// OutputFormat selects how a crawl result is exported.
type OutputFormat string

// Supported export formats.
const (
	FormatMarkdown OutputFormat = "markdown"
	FormatJSON     OutputFormat = "json"
)

// Page budget and politeness bounds enforced on every request.
const (
	MaxPageLimit = 200

	MinDelay     = 100 * time.Millisecond
	MaxDelay     = 2 * time.Second
	DefaultDelay = 300 * time.Millisecond
)

// CrawlRequest describes a single crawl session. A fresh request is
// normalized and handed to the crawl controller; it is not mutated afterwards.
type CrawlRequest struct {
	// SeedURL is the absolute URL the crawl starts from.
	SeedURL string

	// ExtraSeeds are additional start URLs, typically discovered from a
	// sitemap. They share the seed's budget and filters.
	ExtraSeeds []string

	// MaxPages bounds the number of pages fetched. Clamped to [1, MaxPageLimit].
	MaxPages int

	// ExcludePatterns are matched against URL paths. A pattern containing
	// glob metacharacters is matched with path.Match; otherwise it is a
	// substring match (the original scraper's behavior).
	ExcludePatterns []string

	// Format selects the export format. Defaults to FormatMarkdown.
	Format OutputFormat

	// SinglePage fetches only the seed URL and skips link discovery.
	SinglePage bool

	// Delay is the politeness delay between consecutive fetches to the
	// same host. Clamped to [MinDelay, MaxDelay].
	Delay time.Duration

	// RespectRobots enables robots.txt checks. The gate fails open when
	// robots.txt is absent or unreachable.
	RespectRobots bool
}

// Validate returns an error if the request cannot start a crawl.
func (r *CrawlRequest) Validate() error {
	u, err := url.Parse(r.SeedURL)
	if err != nil {
		return Errorf(EINVALID, "invalid seed URL %q: %v", r.SeedURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "seed URL must be http(s), got %q", r.SeedURL)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "seed URL %q has no host", r.SeedURL)
	}
	return nil
}

// Normalize clamps the request's numeric fields into their allowed ranges
// and fills in defaults. Single-page mode forces a budget of one.
func (r *CrawlRequest) Normalize() {
	if r.SinglePage {
		r.MaxPages = 1
	}
	if r.MaxPages < 1 {
		r.MaxPages = 1
	}
	if r.MaxPages > MaxPageLimit {
		r.MaxPages = MaxPageLimit
	}
	if r.Delay == 0 {
		r.Delay = DefaultDelay
	}
	if r.Delay < MinDelay {
		r.Delay = MinDelay
	}
	if r.Delay > MaxDelay {
		r.Delay = MaxDelay
	}
	if r.Format == "" {
		r.Format = FormatMarkdown
	}
}

// ExcludesPath reports whether a URL path matches any exclusion pattern.
// Patterns with glob metacharacters use path.Match semantics; all other
// patterns match as substrings.
func (r *CrawlRequest) ExcludesPath(urlPath string) bool {
	for _, pattern := range r.ExcludePatterns {
		if pattern == "" {
			continue
		}
		if strings.ContainsAny(pattern, "*?[") {
			if ok, err := path.Match(pattern, urlPath); err == nil && ok {
				return true
			}
			continue
		}
		if strings.Contains(urlPath, pattern) {
			return true
		}
	}
	return false
}
