package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/sitemd/sitemd/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier_Push_rejects_duplicate_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	ok := f.Push("https://example.com/docs/page1")
	assert.True(t, ok, "first push should succeed")

	ok = f.Push("https://example.com/docs/page1")
	assert.False(t, ok, "duplicate URL should be rejected")
}

func TestFrontier_Push_normalizes_before_deduplication(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	require.True(t, f.Push("https://example.com/docs/page1"))

	assert.False(t, f.Push("https://example.com/docs/page1#section"), "fragment variant is a duplicate")
	assert.False(t, f.Push("https://example.com/docs/page1?ref=nav"), "query variant is a duplicate")
	assert.False(t, f.Push("https://example.com/docs/page1/"), "trailing slash variant is a duplicate")
	assert.Equal(t, 1, f.Len())
}

func TestFrontier_Pop_returns_URLs_in_FIFO_order(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	f.Push("https://example.com/first")
	f.Push("https://example.com/second")
	f.Push("https://example.com/third")

	url, ok := f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/first", url)

	url, ok = f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/second", url)

	url, ok = f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/third", url)

	_, ok = f.Pop()
	assert.False(t, ok, "pop on empty frontier should return false")
}

func TestFrontier_Len_tracks_queue_size(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	assert.Equal(t, 0, f.Len(), "new frontier should be empty")

	f.Push("https://example.com/a")
	assert.Equal(t, 1, f.Len())

	f.Push("https://example.com/b")
	assert.Equal(t, 2, f.Len())

	f.Pop()
	assert.Equal(t, 1, f.Len())

	f.Pop()
	assert.Equal(t, 0, f.Len())
}

func TestFrontier_Seen_tracks_all_pushed_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	assert.False(t, f.Seen("https://example.com/page"), "unseen URL should return false")

	f.Push("https://example.com/page")

	assert.True(t, f.Seen("https://example.com/page"), "pushed URL should be seen")
	assert.True(t, f.Seen("https://example.com/page#top"), "normalized variant should be seen")

	// Pop the URL - it should still be seen
	f.Pop()
	assert.True(t, f.Seen("https://example.com/page"), "popped URL should still be seen")
}

func TestFrontier_concurrent_access(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(10000, 0.01)

	const numGoroutines = 10
	const numOpsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2) // pushers + poppers

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				f.Push(fmt.Sprintf("https://example.com/%d/%d", id, j))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				f.Pop()
			}
		}()
	}

	wg.Wait()
}
