package sitemd

import (
	"net/url"
	"strings"
)

// NormalizeURL reduces a URL to its scheme, host, and path, dropping the
// query and fragment and trimming any trailing slash. Visited-set membership
// and frontier deduplication operate on this form.
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	normalized := u.Scheme + "://" + u.Host + u.Path
	return strings.TrimRight(normalized, "/"), nil
}
