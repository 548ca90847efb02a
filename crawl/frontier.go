package crawl

import (
	"sync"

	"github.com/sitemd/sitemd"
	"github.com/sitemd/sitemd/bloom"
)

// Compile-time interface verification.
var _ sitemd.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO frontier with Bloom filter deduplication.
// FIFO ordering gives the crawl its breadth-first shape. It is safe for
// concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue []string
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen: bloom.NewFilter(n, fpRate),
	}
}

// Push adds a URL to the frontier.
// URLs are normalized first, so spellings differing only by fragment, query,
// or trailing slash count as the same entry. Returns false if the URL has
// already been seen or cannot be parsed.
func (f *Frontier) Push(rawURL string) bool {
	url, err := sitemd.NormalizeURL(rawURL)
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.Test(url) {
		return false
	}
	f.seen.Add(url)
	f.queue = append(f.queue, url)
	return true
}

// Pop returns the oldest queued URL.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of URLs waiting in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been queued at any point.
func (f *Frontier) Seen(rawURL string) bool {
	url, err := sitemd.NormalizeURL(rawURL)
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(url)
}
