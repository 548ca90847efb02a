package mock

import (
	"context"

	"github.com/sitemd/sitemd"
)

var _ sitemd.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of sitemd.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, siteURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, siteURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, siteURL)
}
