package sitemd_test

import (
	"testing"
	"time"

	"github.com/sitemd/sitemd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrawlRequest_Normalize_clamps_page_budget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		maxPages int
		want     int
	}{
		{"zero defaults to one", 0, 1},
		{"negative defaults to one", -5, 1},
		{"within range unchanged", 50, 50},
		{"at ceiling unchanged", 200, 200},
		{"above ceiling clamped", 1000, sitemd.MaxPageLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := &sitemd.CrawlRequest{SeedURL: "https://example.com", MaxPages: tt.maxPages}
			req.Normalize()
			assert.Equal(t, tt.want, req.MaxPages)
		})
	}
}

func TestCrawlRequest_Normalize_single_page_forces_budget_of_one(t *testing.T) {
	t.Parallel()

	req := &sitemd.CrawlRequest{SeedURL: "https://example.com", MaxPages: 50, SinglePage: true}
	req.Normalize()

	assert.Equal(t, 1, req.MaxPages)
}

func TestCrawlRequest_Normalize_clamps_delay_and_defaults_format(t *testing.T) {
	t.Parallel()

	req := &sitemd.CrawlRequest{SeedURL: "https://example.com"}
	req.Normalize()
	assert.Equal(t, sitemd.DefaultDelay, req.Delay)
	assert.Equal(t, sitemd.FormatMarkdown, req.Format)

	req = &sitemd.CrawlRequest{SeedURL: "https://example.com", Delay: time.Millisecond}
	req.Normalize()
	assert.Equal(t, sitemd.MinDelay, req.Delay)

	req = &sitemd.CrawlRequest{SeedURL: "https://example.com", Delay: time.Minute}
	req.Normalize()
	assert.Equal(t, sitemd.MaxDelay, req.Delay)
}

func TestCrawlRequest_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts absolute http URL", func(t *testing.T) {
		t.Parallel()

		req := &sitemd.CrawlRequest{SeedURL: "https://example.com/docs"}
		require.NoError(t, req.Validate())
	})

	t.Run("rejects relative URL", func(t *testing.T) {
		t.Parallel()

		req := &sitemd.CrawlRequest{SeedURL: "/docs"}
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, sitemd.EINVALID, sitemd.ErrorCode(err))
	})

	t.Run("rejects non-http scheme", func(t *testing.T) {
		t.Parallel()

		req := &sitemd.CrawlRequest{SeedURL: "ftp://example.com"}
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, sitemd.EINVALID, sitemd.ErrorCode(err))
	})
}

func TestCrawlRequest_ExcludesPath(t *testing.T) {
	t.Parallel()

	req := &sitemd.CrawlRequest{
		ExcludePatterns: []string{"/blog/", "/private/*/drafts"},
	}

	assert.True(t, req.ExcludesPath("/blog/post1"), "substring pattern should match")
	assert.True(t, req.ExcludesPath("/private/alice/drafts"), "glob pattern should match")
	assert.False(t, req.ExcludesPath("/about"))
	assert.False(t, req.ExcludesPath("/private/alice/published"))
}

func TestCrawlRequest_ExcludesPath_ignores_empty_patterns(t *testing.T) {
	t.Parallel()

	req := &sitemd.CrawlRequest{ExcludePatterns: []string{""}}

	assert.False(t, req.ExcludesPath("/anything"))
}
