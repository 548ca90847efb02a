package mock

import (
	"context"

	"github.com/sitemd/sitemd"
)

var _ sitemd.RobotsGate = (*RobotsGate)(nil)

// RobotsGate is a mock implementation of sitemd.RobotsGate.
type RobotsGate struct {
	AllowedFn func(ctx context.Context, rawURL string) bool
}

func (g *RobotsGate) Allowed(ctx context.Context, rawURL string) bool {
	return g.AllowedFn(ctx, rawURL)
}
