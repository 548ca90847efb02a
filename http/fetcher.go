// Package http provides the HTTP implementations of sitemd.Fetcher and
// sitemd.SitemapService for static sites.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sitemd/sitemd"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// maxRedirects caps redirect hops per request.
const maxRedirects = 5

// DefaultUserAgent mimics a desktop browser; many sites serve reduced or
// blocked content to obvious bot agents. Robots.txt rules are matched
// against the same agent string the requests carry.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

var errTooManyRedirects = errors.New("stopped after too many redirects")

// Ensure Fetcher implements sitemd.Fetcher at compile time.
var _ sitemd.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// It does not execute JavaScript and is suitable for static sites only.
// Per-page failures are returned as *sitemd.FetchError.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return errTooManyRedirects
			}
			return nil
		},
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		// A request that cannot be constructed is a configuration fault,
		// not a per-page failure; the controller aborts on it.
		return "", sitemd.Errorf(sitemd.EINTERNAL, "build request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", classifyTransportError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &sitemd.FetchError{Kind: sitemd.FetchHTTPStatus, URL: url, StatusCode: resp.StatusCode}
	}

	if ct := resp.Header.Get("Content-Type"); !isHTMLContentType(ct) {
		return "", &sitemd.FetchError{Kind: sitemd.FetchUnsupportedContentType, URL: url, Err: errors.New(ct)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(url, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// classifyTransportError maps a transport failure onto the fetch error
// taxonomy: redirect-loop, timeout, or generic network failure.
func classifyTransportError(url string, err error) *sitemd.FetchError {
	if errors.Is(err, errTooManyRedirects) {
		return &sitemd.FetchError{Kind: sitemd.FetchTooManyRedirects, URL: url, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &sitemd.FetchError{Kind: sitemd.FetchTimeout, URL: url, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &sitemd.FetchError{Kind: sitemd.FetchTimeout, URL: url, Err: err}
	}
	return &sitemd.FetchError{Kind: sitemd.FetchNetwork, URL: url, Err: err}
}

// isHTMLContentType accepts text/html and XHTML. An absent header is
// accepted; some static hosts omit it.
func isHTMLContentType(ct string) bool {
	if ct == "" {
		return true
	}
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}
