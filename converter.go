package sitemd

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML (e.g., from an Extractor) into
	// Markdown. Relative hrefs and image sources are resolved against
	// baseURL; pass an empty baseURL to leave them untouched.
	Convert(html string, baseURL string) (string, error)
}
