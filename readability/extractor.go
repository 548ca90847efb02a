// Package readability implements sitemd.Extractor using the
// go-shiori/go-readability port of Mozilla's Readability algorithm.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"

	"github.com/sitemd/sitemd"
)

var _ sitemd.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*sitemd.ExtractResult, error) {
	if rawHTML == "" {
		return nil, sitemd.Errorf(sitemd.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, sitemd.Errorf(sitemd.EINVALID, "readability failed: %v", err)
	}

	if strings.TrimSpace(article.TextContent) == "" {
		return nil, sitemd.Errorf(sitemd.EEMPTY, "no extractable content")
	}

	return &sitemd.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
