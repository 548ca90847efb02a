package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sitemd/sitemd"
)

// minContentLength is the minimum number of content characters a page
// must yield before it counts as extractable.
const minContentLength = 100

// boilerplateSelectors matches elements that never carry main content.
const boilerplateSelectors = "script, style, nav, header, footer, aside, noscript, iframe, form"

// noiseTokens are class/id tokens that mark navigational or promotional
// containers. Tokens are matched whole, after splitting on -, _ and space.
var noiseTokens = map[string]struct{}{
	"menu":          {},
	"sidebar":       {},
	"ad":            {},
	"ads":           {},
	"advert":        {},
	"advertisement": {},
	"banner":        {},
	"cookie":        {},
	"popup":         {},
	"breadcrumb":    {},
	"breadcrumbs":   {},
	"social":        {},
	"share":         {},
}

// junkTextPatterns flag short leaf elements as boilerplate text
// (cookie notices, legal footers, newsletter prompts).
var junkTextPatterns = []string{
	"privacy policy", "terms of service", "cookie policy",
	"accept cookies", "all rights reserved", "©",
	"follow us on", "share on facebook", "tweet this",
	"subscribe to", "sign up for", "enter your email",
}

// Extractor locates the main content region of an HTML page using
// structural heuristics: boilerplate removal followed by candidate
// scoring weighted by text length and nesting depth.
type Extractor struct{}

var _ sitemd.Extractor = (*Extractor)(nil)

// NewExtractor creates a new heuristic Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title and the HTML of the main content
// region. It returns EINVALID if the HTML cannot be parsed and EEMPTY
// if no region yields at least minContentLength characters of text.
func (e *Extractor) Extract(html string) (*sitemd.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitemd.Errorf(sitemd.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find(boilerplateSelectors).Remove()
	removeNoiseContainers(doc)
	removeJunkText(doc)

	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	content := selectContent(doc)
	if content == nil || visibleTextLength(content) < minContentLength {
		return nil, sitemd.Errorf(sitemd.EEMPTY, "no extractable content")
	}

	contentHTML, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, sitemd.Errorf(sitemd.EINTERNAL, "failed to render content: %v", err)
	}

	return &sitemd.ExtractResult{
		Title:       title,
		ContentHTML: contentHTML,
	}, nil
}

// selectContent scores candidate containers and returns the best one.
// Score is visible text length divided by (1 + nesting depth), doubled
// for semantic content landmarks. Falls back to body.
func selectContent(doc *goquery.Document) *goquery.Selection {
	var best *goquery.Selection
	var bestScore float64

	doc.Find("main, article, [role=\"main\"], section, div").Each(func(_ int, sel *goquery.Selection) {
		length := visibleTextLength(sel)
		if length == 0 {
			return
		}

		depth := sel.Parents().Length()
		score := float64(length) / float64(1+depth)
		if isContentLandmark(sel) {
			score *= 2
		}

		if score > bestScore {
			best = sel
			bestScore = score
		}
	})

	if best != nil {
		return best
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return nil
}

func isContentLandmark(sel *goquery.Selection) bool {
	if sel.Is("main") || sel.Is("article") {
		return true
	}
	role, _ := sel.Attr("role")
	return role == "main"
}

// visibleTextLength measures the whitespace-collapsed text of a selection.
func visibleTextLength(sel *goquery.Selection) int {
	return len(strings.Join(strings.Fields(sel.Text()), " "))
}

// removeNoiseContainers drops containers whose class or id tokens mark
// them as navigation chrome, ads, or cookie banners.
func removeNoiseContainers(doc *goquery.Document) {
	doc.Find("div, section, ul, ol").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		id, _ := sel.Attr("id")
		marker := strings.ToLower(class + " " + id)
		marker = strings.NewReplacer("-", " ", "_", " ").Replace(marker)
		for _, token := range strings.Fields(marker) {
			if _, ok := noiseTokens[token]; ok {
				sel.Remove()
				return
			}
		}
	})
}

// removeJunkText drops short leaf elements whose text matches known
// boilerplate phrases.
func removeJunkText(doc *goquery.Document) {
	doc.Find("p, li, a, span, small, div").Each(func(_ int, sel *goquery.Selection) {
		if sel.Children().Length() > 0 {
			return
		}
		text := strings.ToLower(strings.TrimSpace(sel.Text()))
		if text == "" || len(text) > 200 {
			return
		}
		for _, pattern := range junkTextPatterns {
			if strings.Contains(text, pattern) {
				sel.Remove()
				return
			}
		}
	})
}
