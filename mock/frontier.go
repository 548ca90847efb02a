package mock

import (
	"context"

	"github.com/sitemd/sitemd"
)

var _ sitemd.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of sitemd.URLFrontier.
type URLFrontier struct {
	PushFn func(rawURL string) bool
	PopFn  func() (string, bool)
	LenFn  func() int
	SeenFn func(rawURL string) bool
}

func (f *URLFrontier) Push(rawURL string) bool {
	return f.PushFn(rawURL)
}

func (f *URLFrontier) Pop() (string, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) Seen(rawURL string) bool {
	return f.SeenFn(rawURL)
}

var _ sitemd.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of sitemd.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
