package slog

import (
	"context"
	"log/slog"

	"github.com/sitemd/sitemd"
)

var _ sitemd.RobotsGate = (*LoggingRobotsGate)(nil)

// LoggingRobotsGate wraps a RobotsGate and logs denied URLs.
type LoggingRobotsGate struct {
	next   sitemd.RobotsGate
	logger *slog.Logger
}

// NewLoggingRobotsGate creates a new LoggingRobotsGate.
func NewLoggingRobotsGate(next sitemd.RobotsGate, logger *slog.Logger) *LoggingRobotsGate {
	return &LoggingRobotsGate{next: next, logger: logger}
}

// Allowed delegates to the wrapped gate and logs robots denials.
func (g *LoggingRobotsGate) Allowed(ctx context.Context, rawURL string) bool {
	allowed := g.next.Allowed(ctx, rawURL)
	if !allowed {
		g.logger.Info("blocked by robots.txt", "url", rawURL)
	}
	return allowed
}
