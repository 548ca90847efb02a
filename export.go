package sitemd

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// MarkdownDocument renders a crawl result as a single Markdown document:
// a header naming the crawled host, then each successful page's title,
// source URL, and body, separated by horizontal rules, in crawl order.
// Deterministic for identical input; the timestamp comes from the result,
// never from the clock.
func MarkdownDocument(result *CrawlResult) string {
	host := result.SeedURL
	if u, err := url.Parse(result.SeedURL); err == nil && u.Host != "" {
		host = u.Host
	}

	var pages []*PageRecord
	for _, page := range result.Pages {
		if page.Status == PageOK {
			pages = append(pages, page)
		}
	}

	var b strings.Builder
	b.WriteString("# " + host + "\n\n")
	if !result.FinishedAt.IsZero() {
		b.WriteString("*Crawled " + result.FinishedAt.Format("2006-01-02 15:04") + "*\n")
	}
	b.WriteString("*" + strconv.Itoa(len(pages)) + " pages*\n\n---\n")

	for _, page := range pages {
		title := page.Title
		if title == "" {
			title = page.URL
		}
		b.WriteString("\n## " + title + "\n\n")
		b.WriteString("**URL:** " + page.URL + "\n\n")
		b.WriteString(strings.TrimRight(page.Markdown, "\n"))
		b.WriteString("\n\n---\n")
	}

	return b.String()
}

// jsonDocument is the export shape consumed by external tooling:
// the ordered page records (including failed and skipped ones) plus the
// session summary.
type jsonDocument struct {
	Pages   []*PageRecord `json:"pages"`
	Summary Summary       `json:"summary"`
}

// JSONDocument serializes a crawl result for export. An empty result
// produces an empty pages array, never null.
func JSONDocument(result *CrawlResult) ([]byte, error) {
	doc := jsonDocument{
		Pages:   result.Pages,
		Summary: result.Summary,
	}
	if doc.Pages == nil {
		doc.Pages = []*PageRecord{}
	}
	return json.MarshalIndent(doc, "", "  ")
}
