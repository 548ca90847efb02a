package sitemd

import (
	"context"
	"fmt"
)

// Fetcher retrieves raw HTML from URLs.
// Expected per-page failures are reported as *FetchError; any other error
// indicates a transport misconfiguration and aborts the session.
type Fetcher interface {
	// Fetch performs a single HTTP GET and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	Close() error
}

// FetchErrorKind identifies the failure class of a fetch attempt.
type FetchErrorKind string

// Fetch failure classes.
const (
	FetchNetwork                FetchErrorKind = "network"
	FetchTimeout                FetchErrorKind = "timeout"
	FetchHTTPStatus             FetchErrorKind = "http_status"
	FetchTooManyRedirects       FetchErrorKind = "too_many_redirects"
	FetchUnsupportedContentType FetchErrorKind = "unsupported_content_type"
)

// FetchError is the typed failure returned by Fetcher implementations for
// per-page problems. StatusCode is set only for FetchHTTPStatus.
type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchHTTPStatus:
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	default:
		if e.Err != nil {
			return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
		}
		return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
	}
}

// Unwrap returns the underlying transport error, if any.
func (e *FetchError) Unwrap() error { return e.Err }

// Retryable reports whether a retry could plausibly succeed: transient
// network failures, timeouts, and 5xx responses.
func (e *FetchError) Retryable() bool {
	switch e.Kind {
	case FetchNetwork, FetchTimeout:
		return true
	case FetchHTTPStatus:
		return e.StatusCode >= 500
	default:
		return false
	}
}
