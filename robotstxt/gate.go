// Package robotstxt implements sitemd.RobotsGate on top of the
// temoto/robotstxt parser. Rules are fetched once per host and cached
// for the lifetime of the gate; any failure to obtain or parse a
// robots.txt file fails open.
package robotstxt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/sync/singleflight"

	"github.com/sitemd/sitemd"
)

// DefaultFetchTimeout bounds a single robots.txt download.
const DefaultFetchTimeout = 10 * time.Second

// maxRobotsBody caps how much of a robots.txt response we read.
const maxRobotsBody = 512 * 1024

// Gate caches per-host robots.txt rules and answers Allowed queries.
type Gate struct {
	client    *http.Client
	userAgent string

	mu    sync.RWMutex
	cache map[string]*robotstxt.RobotsData

	group singleflight.Group
}

var _ sitemd.RobotsGate = (*Gate)(nil)

// Option configures a Gate.
type Option func(*Gate)

// WithClient sets the HTTP client used to fetch robots.txt files.
func WithClient(client *http.Client) Option {
	return func(g *Gate) {
		if client != nil {
			g.client = client
		}
	}
}

// WithUserAgent sets the agent name matched against robots.txt groups.
func WithUserAgent(userAgent string) Option {
	return func(g *Gate) {
		g.userAgent = userAgent
	}
}

// NewGate creates a Gate with an empty rules cache.
func NewGate(opts ...Option) *Gate {
	g := &Gate{
		client: &http.Client{Timeout: DefaultFetchTimeout},
		cache:  make(map[string]*robotstxt.RobotsData),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Allowed reports whether rawURL may be fetched according to the
// host's robots.txt. It never returns an error: malformed URLs,
// unreachable hosts, missing files, and parse failures all allow the
// fetch to proceed.
func (g *Gate) Allowed(ctx context.Context, rawURL string) bool {
	target, err := url.Parse(rawURL)
	if err != nil || !target.IsAbs() {
		return true
	}

	rules := g.rules(ctx, target)
	if rules == nil {
		return true
	}

	group := rules.FindGroup(g.userAgent)
	if group == nil {
		group = rules.FindGroup("*")
		if group == nil {
			return true
		}
	}
	return group.Test(target.Path)
}

// rules returns the cached robots data for the target's host, fetching
// it on first use. Concurrent callers for the same host share one fetch.
// A host gets exactly one robots.txt request per session: failures are
// cached as a nil (fail-open) entry and never retried.
func (g *Gate) rules(ctx context.Context, target *url.URL) *robotstxt.RobotsData {
	key := strings.ToLower(target.Scheme + "://" + target.Host)

	g.mu.RLock()
	rules, ok := g.cache[key]
	g.mu.RUnlock()
	if ok {
		return rules
	}

	v, _, _ := g.group.Do(key, func() (any, error) {
		data, err := g.fetch(ctx, key+"/robots.txt")
		if err != nil {
			data = nil
		}
		g.mu.Lock()
		g.cache[key] = data
		g.mu.Unlock()
		return data, nil
	})
	rules, _ = v.(*robotstxt.RobotsData)
	return rules
}

func (g *Gate) fetch(ctx context.Context, robotsURL string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build robots request: %w", err)
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer resp.Body.Close()

	// A 4xx means the host publishes no robots.txt; no rules apply.
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("robots.txt returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBody))
	if err != nil {
		return nil, fmt.Errorf("read robots.txt: %w", err)
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}
	return data, nil
}
