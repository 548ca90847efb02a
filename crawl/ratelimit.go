package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/sitemd/sitemd"
	"golang.org/x/time/rate"
)

var _ sitemd.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter enforces the politeness delay using per-host token buckets.
// Each host gets its own limiter with a burst of 1, so consecutive requests
// to the same host are spaced by at least the configured delay.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter that allows one request per
// delay interval per host.
func NewDomainLimiter(delay time.Duration) *DomainLimiter {
	if delay <= 0 {
		delay = sitemd.DefaultDelay
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      float64(time.Second) / float64(delay),
	}
}

// Wait blocks until the politeness delay allows a request to the host.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
