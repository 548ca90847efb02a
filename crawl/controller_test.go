package crawl_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sitemd/sitemd"
	"github.com/sitemd/sitemd/crawl"
	"github.com/sitemd/sitemd/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePage is one page of an in-memory site served to the controller.
type fakePage struct {
	html  string
	links []string
}

// newTestController wires a controller against an in-memory site keyed by
// normalized URL. URLs the site doesn't know return HTTP 404. Fetched URLs
// are appended to the fetched slice when provided.
func newTestController(site map[string]fakePage, fetched *[]string) *crawl.Controller {
	return &crawl.Controller{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if fetched != nil {
					*fetched = append(*fetched, url)
				}
				page, ok := site[url]
				if !ok {
					return "", &sitemd.FetchError{Kind: sitemd.FetchHTTPStatus, URL: url, StatusCode: 404}
				}
				return page.html, nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(html string) (*sitemd.ExtractResult, error) {
				return &sitemd.ExtractResult{Title: "Page", ContentHTML: html}, nil
			},
		},
		Converter: &mock.Converter{
			ConvertFn: func(html string, _ string) (string, error) {
				return html, nil
			},
		},
		Links: &mock.LinkDiscoverer{
			DiscoverLinksFn: func(_ string, pageURL string) ([]string, error) {
				return site[pageURL].links, nil
			},
		},
		RetryDelays: []time.Duration{},
	}
}

func nonSkipCount(result *sitemd.CrawlResult) int {
	n := 0
	for _, page := range result.Pages {
		if !page.Status.Skipped() {
			n++
		}
	}
	return n
}

func TestController_Run_single_success_with_limit_one_discards_frontier(t *testing.T) {
	t.Parallel()

	links := make([]string, 10)
	for i := range links {
		links[i] = fmt.Sprintf("https://example.com/page%d", i)
	}
	site := map[string]fakePage{
		"https://example.com": {html: "<p>seed</p>", links: links},
	}
	for _, link := range links {
		site[link] = fakePage{html: "<p>" + link + "</p>"}
	}

	var fetched []string
	c := newTestController(site, &fetched)
	result, err := c.Run(context.Background(), &sitemd.CrawlRequest{SeedURL: "https://example.com/", MaxPages: 1}, nil)

	require.NoError(t, err)
	assert.Equal(t, sitemd.StateCompleted, result.State)
	require.Len(t, result.Pages, 1)
	assert.Equal(t, sitemd.PageOK, result.Pages[0].Status)
	assert.Equal(t, 1, result.Summary.Succeeded)
	assert.Equal(t, []string{"https://example.com"}, fetched, "only the seed may be fetched")
}

func TestController_Run_never_exceeds_page_budget(t *testing.T) {
	t.Parallel()

	// A chain long enough to overrun any budget leak.
	site := map[string]fakePage{}
	for i := 0; i < 20; i++ {
		url := fmt.Sprintf("https://example.com/p%d", i)
		site[url] = fakePage{
			html:  fmt.Sprintf("<p>page %d</p>", i),
			links: []string{fmt.Sprintf("https://example.com/p%d", i+1)},
		}
	}

	c := newTestController(site, nil)
	result, err := c.Run(context.Background(), &sitemd.CrawlRequest{SeedURL: "https://example.com/p0", MaxPages: 3}, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, nonSkipCount(result), "non-skip records must not exceed the budget")
	assert.Equal(t, 3, result.Summary.Succeeded)
}

func TestController_Run_excluded_paths_are_never_fetched(t *testing.T) {
	t.Parallel()

	site := map[string]fakePage{
		"https://example.com": {
			html:  "<p>seed</p>",
			links: []string{"https://example.com/blog/post1", "https://example.com/about"},
		},
		"https://example.com/blog/post1": {html: "<p>blog</p>"},
		"https://example.com/about":      {html: "<p>about</p>"},
	}

	var fetched []string
	c := newTestController(site, &fetched)
	result, err := c.Run(context.Background(), &sitemd.CrawlRequest{
		SeedURL:         "https://example.com/",
		MaxPages:        10,
		ExcludePatterns: []string{"/blog/"},
	}, nil)

	require.NoError(t, err)
	assert.NotContains(t, fetched, "https://example.com/blog/post1")
	assert.Contains(t, fetched, "https://example.com/about")
	assert.Equal(t, 2, result.Summary.Succeeded)
}

func TestController_Run_excluded_seed_is_recorded_as_skipped(t *testing.T) {
	t.Parallel()

	var fetched []string
	c := newTestController(map[string]fakePage{}, &fetched)
	result, err := c.Run(context.Background(), &sitemd.CrawlRequest{
		SeedURL:         "https://example.com/private/home",
		MaxPages:        10,
		ExcludePatterns: []string{"/private/"},
	}, nil)

	require.NoError(t, err)
	assert.Empty(t, fetched, "excluded URLs must never be fetched")
	require.Len(t, result.Pages, 1)
	assert.Equal(t, sitemd.PageSkippedExcluded, result.Pages[0].Status)
	assert.Equal(t, 1, result.Summary.Skipped)
	assert.Equal(t, 0, result.Summary.Succeeded)
}

func TestController_Run_robots_disallowed_URL_is_skipped_not_fetched(t *testing.T) {
	t.Parallel()

	var fetched []string
	c := newTestController(map[string]fakePage{
		"https://example.com/private/page": {html: "<p>secret</p>"},
	}, &fetched)
	c.Robots = &mock.RobotsGate{
		AllowedFn: func(_ context.Context, rawURL string) bool {
			return !strings.Contains(rawURL, "/private/")
		},
	}

	result, err := c.Run(context.Background(), &sitemd.CrawlRequest{
		SeedURL:       "https://example.com/private/page",
		MaxPages:      5,
		RespectRobots: true,
	}, nil)

	require.NoError(t, err)
	assert.Empty(t, fetched)
	require.Len(t, result.Pages, 1)
	assert.Equal(t, sitemd.PageSkippedRobots, result.Pages[0].Status)
	assert.Equal(t, 1, result.Summary.Skipped)
}

func TestController_Run_per_page_fetch_failure_does_not_abort(t *testing.T) {
	t.Parallel()

	site := map[string]fakePage{
		"https://example.com": {
			html:  "<p>seed</p>",
			links: []string{"https://example.com/missing", "https://example.com/ok"},
		},
		"https://example.com/ok": {html: "<p>fine</p>"},
	}

	c := newTestController(site, nil)
	result, err := c.Run(context.Background(), &sitemd.CrawlRequest{SeedURL: "https://example.com/", MaxPages: 10}, nil)

	require.NoError(t, err)
	assert.Equal(t, sitemd.StateCompleted, result.State)
	assert.Equal(t, 2, result.Summary.Succeeded)
	assert.Equal(t, 1, result.Summary.Failed)

	var failed *sitemd.PageRecord
	for _, page := range result.Pages {
		if page.Status == sitemd.PageFailed {
			failed = page
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, "https://example.com/missing", failed.URL)
	assert.Equal(t, 404, failed.HTTPStatus)
	assert.NotEmpty(t, failed.Reason)
}

func TestController_Run_fatal_transport_error_aborts_with_partial_result(t *testing.T) {
	t.Parallel()

	calls := 0
	c := newTestController(nil, nil)
	c.Fetcher = &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			calls++
			if calls == 1 {
				return "<p>first</p>", nil
			}
			return "", sitemd.Errorf(sitemd.EINTERNAL, "transport misconfigured")
		},
	}
	c.Links = &mock.LinkDiscoverer{
		DiscoverLinksFn: func(_ string, _ string) ([]string, error) {
			return []string{"https://example.com/next"}, nil
		},
	}

	result, err := c.Run(context.Background(), &sitemd.CrawlRequest{SeedURL: "https://example.com/", MaxPages: 10}, nil)

	require.Error(t, err)
	require.NotNil(t, result, "partial result must be returned on abort")
	assert.Equal(t, sitemd.StateAborted, result.State)
	assert.Equal(t, 1, result.Summary.Succeeded, "pages gathered before the fault are kept")
	assert.Equal(t, 2, calls)
}

func TestController_Run_identical_content_is_marked_duplicate(t *testing.T) {
	t.Parallel()

	site := map[string]fakePage{
		"https://example.com": {
			html:  "<p>same</p>",
			links: []string{"https://example.com/mirror"},
		},
		"https://example.com/mirror": {html: "<p>same</p>"},
	}

	c := newTestController(site, nil)
	result, err := c.Run(context.Background(), &sitemd.CrawlRequest{SeedURL: "https://example.com/", MaxPages: 10}, nil)

	require.NoError(t, err)
	require.Len(t, result.Pages, 2)
	assert.Equal(t, sitemd.PageOK, result.Pages[0].Status)
	assert.Equal(t, sitemd.PageDuplicate, result.Pages[1].Status)
	assert.Empty(t, result.Pages[1].Markdown)
	assert.Equal(t, 1, result.Summary.Succeeded)
	assert.Equal(t, 1, result.Summary.Duplicates)
}

func TestController_Run_repairs_mojibake_in_title_and_markdown(t *testing.T) {
	t.Parallel()

	site := map[string]fakePage{
		"https://example.com": {html: "<p>ignored</p>"},
	}

	c := newTestController(site, nil)
	c.Extractor = &mock.Extractor{
		ExtractFn: func(html string) (*sitemd.ExtractResult, error) {
			// "Café" whose UTF-8 bytes were decoded as Latin-1 upstream.
			return &sitemd.ExtractResult{Title: "CafÃ©", ContentHTML: html}, nil
		},
	}
	c.Converter = &mock.Converter{
		ConvertFn: func(_ string, _ string) (string, error) {
			return "cafÃ© au lait\n", nil
		},
	}

	result, err := c.Run(context.Background(), &sitemd.CrawlRequest{SeedURL: "https://example.com/", MaxPages: 1}, nil)

	require.NoError(t, err)
	require.Len(t, result.Pages, 1)
	assert.Equal(t, "Café", result.Pages[0].Title)
	assert.Equal(t, "café au lait\n", result.Pages[0].Markdown)
}

func TestController_Run_never_fetches_a_URL_twice(t *testing.T) {
	t.Parallel()

	site := map[string]fakePage{
		"https://example.com/a": {html: "<p>a</p>", links: []string{"https://example.com/b", "https://example.com/a"}},
		"https://example.com/b": {html: "<p>b</p>", links: []string{"https://example.com/a", "https://example.com/b#frag"}},
	}

	var fetched []string
	c := newTestController(site, &fetched)
	_, err := c.Run(context.Background(), &sitemd.CrawlRequest{SeedURL: "https://example.com/a", MaxPages: 10}, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, fetched)
}

func TestController_Run_single_page_mode_ignores_links(t *testing.T) {
	t.Parallel()

	site := map[string]fakePage{
		"https://example.com/docs": {html: "<p>doc</p>", links: []string{"https://example.com/other"}},
	}

	var fetched []string
	c := newTestController(site, &fetched)
	result, err := c.Run(context.Background(), &sitemd.CrawlRequest{
		SeedURL:    "https://example.com/docs",
		MaxPages:   50,
		SinglePage: true,
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/docs"}, fetched)
	assert.Len(t, result.Pages, 1)
}

func TestController_Run_extra_seeds_share_budget_and_filters(t *testing.T) {
	t.Parallel()

	site := map[string]fakePage{
		"https://example.com":       {html: "<p>home</p>"},
		"https://example.com/guide": {html: "<p>guide</p>"},
	}

	var fetched []string
	c := newTestController(site, &fetched)
	result, err := c.Run(context.Background(), &sitemd.CrawlRequest{
		SeedURL:  "https://example.com/",
		MaxPages: 10,
		ExtraSeeds: []string{
			"https://example.com/guide",
			"https://other.example.org/guide", // different host: dropped
		},
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com", "https://example.com/guide"}, fetched)
	assert.Equal(t, 2, result.Summary.Succeeded)
}

func TestController_Run_cancellation_aborts_between_pages(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	site := map[string]fakePage{
		"https://example.com": {html: "<p>seed</p>", links: []string{"https://example.com/next"}},
	}
	c := newTestController(site, nil)
	c.Fetcher = &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			cancel() // cancel after the first fetch starts
			return site[url].html, nil
		},
	}

	result, err := c.Run(ctx, &sitemd.CrawlRequest{SeedURL: "https://example.com/", MaxPages: 10}, nil)

	require.NoError(t, err)
	assert.Equal(t, sitemd.StateAborted, result.State)
	assert.LessOrEqual(t, len(result.Pages), 1)
}

func TestController_Run_rejects_invalid_seed(t *testing.T) {
	t.Parallel()

	c := newTestController(nil, nil)
	result, err := c.Run(context.Background(), &sitemd.CrawlRequest{SeedURL: "not a url"}, nil)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, sitemd.EINVALID, sitemd.ErrorCode(err))
}

func TestController_Run_reports_progress(t *testing.T) {
	t.Parallel()

	site := map[string]fakePage{
		"https://example.com": {html: "<p>seed</p>"},
	}

	var events []crawl.ProgressEvent
	c := newTestController(site, nil)
	_, err := c.Run(context.Background(), &sitemd.CrawlRequest{SeedURL: "https://example.com/", MaxPages: 5}, func(e crawl.ProgressEvent) {
		events = append(events, e)
	})

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "https://example.com", events[0].URL)
	assert.Equal(t, sitemd.PageOK, events[0].Status)
	assert.Equal(t, 1, events[0].Attempted)
}

func TestController_State_transitions(t *testing.T) {
	t.Parallel()

	site := map[string]fakePage{
		"https://example.com": {html: "<p>seed</p>"},
	}

	c := newTestController(site, nil)
	assert.Equal(t, sitemd.StateIdle, c.State())

	_, err := c.Run(context.Background(), &sitemd.CrawlRequest{SeedURL: "https://example.com/", MaxPages: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, sitemd.StateCompleted, c.State())
}
