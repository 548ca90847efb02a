// Package trafilatura implements sitemd.Extractor using
// markusmobius/go-trafilatura, a port of the trafilatura web
// content extraction library.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	"github.com/sitemd/sitemd"
)

var _ sitemd.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, sitemd.Errorf(sitemd.EEMPTY, "trafilatura found no content: %v", err)
	}

	if result.ContentNode == nil {
		return nil, sitemd.Errorf(sitemd.EEMPTY, "no extractable content")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, sitemd.Errorf(sitemd.EINTERNAL, "failed to render content: %v", err)
	}

	return &sitemd.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
