package sitemd

import "context"

// URLFrontier manages the pending-URL queue with deduplication.
// URLs are normalized before membership checks, so two spellings of the
// same page enter the frontier at most once.
type URLFrontier interface {
	// Push adds a URL to the queue.
	// Returns false if the URL has already been seen.
	Push(rawURL string) bool

	// Pop returns the next URL in FIFO order for breadth-first traversal.
	// Returns false if the frontier is empty.
	Pop() (string, bool)

	// Len returns the number of URLs waiting in the queue.
	Len() int

	// Seen returns true if the URL has been queued at any point.
	Seen(rawURL string) bool
}

// DomainLimiter provides per-host request pacing.
type DomainLimiter interface {
	// Wait blocks until the politeness delay allows a request to the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
