package sitemd

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title, taken from the document's title element
	// with the first heading as fallback.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// Returns an EEMPTY error when no extractable text remains after
	// cleaning and an EINVALID error when the HTML cannot be parsed.
	Extract(html string) (*ExtractResult, error)
}
