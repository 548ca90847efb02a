// Package crawl provides the crawl session controller.
// It owns the URL frontier, the visited set, and the page budget, and drives
// fetching, content extraction, markdown conversion, and link discovery for
// each page until the frontier drains or the budget is exhausted.
package crawl

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/sitemd/sitemd"
)

// Frontier sizing and runaway protection.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 4096
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.001
	// maxCrawlAttempts bounds total dequeues per session, so a site made
	// almost entirely of skipped URLs still terminates.
	maxCrawlAttempts = 1000
)

// ProgressEvent reports progress after each processed URL.
type ProgressEvent struct {
	URL       string
	Status    sitemd.PageStatus
	Attempted int
	Succeeded int
	Queued    int
	Error     error
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Controller orchestrates one crawl session. It is constructed fresh per
// request and owns all session state; none of it survives the session.
type Controller struct {
	Fetcher   sitemd.Fetcher
	Extractor sitemd.Extractor
	Converter sitemd.Converter
	Links     sitemd.LinkDiscoverer
	Robots    sitemd.RobotsGate
	Limiter   sitemd.DomainLimiter

	// RetryDelays overrides the fetch retry backoff. Nil means
	// DefaultRetryDelays.
	RetryDelays []time.Duration

	state sitemd.CrawlState
}

// State returns the controller's session state.
func (c *Controller) State() sitemd.CrawlState {
	if c.state == "" {
		return sitemd.StateIdle
	}
	return c.state
}

// Run executes a crawl session and returns its result.
//
// Per-page failures are recorded and never end the session. A fatal
// transport fault (any fetch error that is not a *sitemd.FetchError) aborts
// the session; the partial result gathered so far is returned together with
// the error. Cancellation between pages also aborts, returning the partial
// result without an error.
func (c *Controller) Run(ctx context.Context, req *sitemd.CrawlRequest, progress ProgressFunc) (*sitemd.CrawlResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Normalize()

	seedURL, err := url.Parse(req.SeedURL)
	if err != nil {
		return nil, sitemd.Errorf(sitemd.EINVALID, "invalid seed URL %q: %v", req.SeedURL, err)
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(req.SeedURL)
	c.seedExtras(frontier, req, seedURL.Host)

	result := &sitemd.CrawlResult{
		ID:        uuid.NewString(),
		SeedURL:   req.SeedURL,
		State:     sitemd.StateRunning,
		StartedAt: time.Now(),
	}
	c.state = sitemd.StateRunning

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	seenHashes := make(map[uint64]struct{})
	budgetUsed := 0 // non-skip records, capped at req.MaxPages

	for {
		if ctx.Err() != nil {
			return c.finish(result, sitemd.StateAborted), nil
		}
		if budgetUsed >= req.MaxPages {
			break
		}
		if result.Summary.Attempted >= maxCrawlAttempts {
			break
		}

		pageURL, ok := frontier.Pop()
		if !ok {
			break
		}
		result.Summary.Attempted++

		parsed, err := url.Parse(pageURL)
		if err != nil {
			continue
		}

		// Exclusion filters and robots rules skip without spending budget.
		if req.ExcludesPath(parsed.Path) {
			result.Summary.Skipped++
			c.record(result, progress, frontier, &sitemd.PageRecord{
				URL:       pageURL,
				Status:    sitemd.PageSkippedExcluded,
				FetchedAt: time.Now(),
			}, nil)
			continue
		}
		if req.RespectRobots && c.Robots != nil && !c.Robots.Allowed(ctx, pageURL) {
			result.Summary.Skipped++
			c.record(result, progress, frontier, &sitemd.PageRecord{
				URL:       pageURL,
				Status:    sitemd.PageSkippedRobots,
				FetchedAt: time.Now(),
			}, nil)
			continue
		}

		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx, parsed.Host); err != nil {
				return c.finish(result, sitemd.StateAborted), nil
			}
		}

		budgetUsed++

		html, err := FetchWithRetryDelays(ctx, pageURL, c.Fetcher.Fetch, delays)
		if err != nil {
			rec := &sitemd.PageRecord{
				URL:       pageURL,
				Status:    sitemd.PageFailed,
				Reason:    err.Error(),
				FetchedAt: time.Now(),
			}
			var fetchErr *sitemd.FetchError
			if !errors.As(err, &fetchErr) {
				// Transport misconfiguration: abort with partial results.
				result.Summary.Failed++
				c.record(result, progress, frontier, rec, err)
				return c.finish(result, sitemd.StateAborted), err
			}
			rec.HTTPStatus = fetchErr.StatusCode
			result.Summary.Failed++
			c.record(result, progress, frontier, rec, err)
			continue
		}

		links := c.expandFrontier(frontier, req, html, pageURL, req.MaxPages-budgetUsed)

		extracted, err := c.Extractor.Extract(html)
		if err != nil {
			result.Summary.Failed++
			c.record(result, progress, frontier, &sitemd.PageRecord{
				URL:       pageURL,
				Status:    sitemd.PageFailed,
				Reason:    sitemd.ErrorMessage(err),
				Links:     links,
				FetchedAt: time.Now(),
			}, err)
			continue
		}

		markdown, err := c.Converter.Convert(extracted.ContentHTML, pageURL)
		if err != nil {
			result.Summary.Failed++
			c.record(result, progress, frontier, &sitemd.PageRecord{
				URL:       pageURL,
				Status:    sitemd.PageFailed,
				Reason:    sitemd.ErrorMessage(err),
				Links:     links,
				FetchedAt: time.Now(),
			}, err)
			continue
		}

		markdown = sitemd.RepairEncoding(markdown)

		title := sitemd.RepairEncoding(extracted.Title)
		if title == "" {
			title = parsed.Path
		}

		rec := &sitemd.PageRecord{
			URL:        pageURL,
			Status:     sitemd.PageOK,
			HTTPStatus: 200,
			Title:      title,
			Markdown:   markdown,
			Links:      links,
			FetchedAt:  time.Now(),
		}

		hash := xxhash.Sum64String(markdown)
		if _, dup := seenHashes[hash]; dup {
			rec.Status = sitemd.PageDuplicate
			rec.Markdown = ""
			rec.Reason = "content identical to an earlier page"
			result.Summary.Duplicates++
		} else {
			seenHashes[hash] = struct{}{}
			result.Summary.Succeeded++
		}
		c.record(result, progress, frontier, rec, nil)
	}

	return c.finish(result, sitemd.StateCompleted), nil
}

// seedExtras queues sitemap-discovered seeds on the same host, bounded by
// the page budget.
func (c *Controller) seedExtras(frontier *Frontier, req *sitemd.CrawlRequest, seedHost string) {
	for _, extra := range req.ExtraSeeds {
		if frontier.Len() >= req.MaxPages {
			break
		}
		u, err := url.Parse(extra)
		if err != nil || u.Host != seedHost {
			continue
		}
		if req.ExcludesPath(u.Path) {
			continue
		}
		frontier.Push(extra)
	}
}

// expandFrontier discovers outbound links and queues the unvisited,
// non-excluded ones. Links beyond the remaining budget are dropped at
// enqueue time. Returns every same-site link found on the page, queued
// or not, for the page record.
func (c *Controller) expandFrontier(frontier *Frontier, req *sitemd.CrawlRequest, html, pageURL string, remaining int) []string {
	if req.SinglePage || c.Links == nil {
		return nil
	}

	discovered, err := c.Links.DiscoverLinks(html, pageURL)
	if err != nil {
		return nil
	}

	for _, link := range discovered {
		u, err := url.Parse(link)
		if err != nil {
			continue
		}
		if req.ExcludesPath(u.Path) {
			continue
		}
		if frontier.Seen(link) {
			continue
		}
		if frontier.Len() >= remaining {
			break
		}
		frontier.Push(link)
	}

	return discovered
}

// record appends a page record and reports progress.
func (c *Controller) record(result *sitemd.CrawlResult, progress ProgressFunc, frontier *Frontier, rec *sitemd.PageRecord, err error) {
	result.Pages = append(result.Pages, rec)
	if progress != nil {
		progress(ProgressEvent{
			URL:       rec.URL,
			Status:    rec.Status,
			Attempted: result.Summary.Attempted,
			Succeeded: result.Summary.Succeeded,
			Queued:    frontier.Len(),
			Error:     err,
		})
	}
}

// finish stamps the result with its terminal state.
func (c *Controller) finish(result *sitemd.CrawlResult, state sitemd.CrawlState) *sitemd.CrawlResult {
	result.State = state
	result.FinishedAt = time.Now()
	c.state = state
	return result
}
