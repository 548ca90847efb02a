package mock

import "github.com/sitemd/sitemd"

var _ sitemd.LinkDiscoverer = (*LinkDiscoverer)(nil)

// LinkDiscoverer is a mock implementation of sitemd.LinkDiscoverer.
type LinkDiscoverer struct {
	DiscoverLinksFn func(html string, pageURL string) ([]string, error)
}

func (d *LinkDiscoverer) DiscoverLinks(html string, pageURL string) ([]string, error) {
	return d.DiscoverLinksFn(html, pageURL)
}
