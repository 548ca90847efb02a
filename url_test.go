package sitemd_test

import (
	"testing"

	"github.com/sitemd/sitemd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips fragment", "https://example.com/docs#intro", "https://example.com/docs"},
		{"strips query", "https://example.com/docs?ref=nav", "https://example.com/docs"},
		{"trims trailing slash", "https://example.com/docs/", "https://example.com/docs"},
		{"root collapses to host", "https://example.com/", "https://example.com"},
		{"plain URL unchanged", "https://example.com/docs/api", "https://example.com/docs/api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := sitemd.NormalizeURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeURL_rejects_unparsable_URL(t *testing.T) {
	t.Parallel()

	_, err := sitemd.NormalizeURL("https://exa mple.com/\x00")
	require.Error(t, err)
	assert.Equal(t, sitemd.EINVALID, sitemd.ErrorCode(err))
}
