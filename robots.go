package sitemd

import "context"

// RobotsGate answers whether this crawler may fetch a URL according to the
// target host's robots.txt. Implementations cache the parsed policy per host
// for the session and fail open: a missing or unreachable robots.txt means
// everything is allowed.
type RobotsGate interface {
	// Allowed reports whether the URL may be fetched. It never returns an
	// error; policy-fetch failures are treated as full permission.
	Allowed(ctx context.Context, rawURL string) bool
}
