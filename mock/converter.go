package mock

import "github.com/sitemd/sitemd"

var _ sitemd.Converter = (*Converter)(nil)

// Converter is a mock implementation of sitemd.Converter.
type Converter struct {
	ConvertFn func(html string, baseURL string) (string, error)
}

func (c *Converter) Convert(html string, baseURL string) (string, error) {
	return c.ConvertFn(html, baseURL)
}
