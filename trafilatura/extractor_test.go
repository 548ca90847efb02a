package trafilatura_test

import (
	"testing"

	"github.com/sitemd/sitemd"
	"github.com/sitemd/sitemd/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := trafilatura.NewExtractor()
	_, err := ext.Extract("")

	require.Error(t, err)
	assert.Equal(t, sitemd.EINVALID, sitemd.ErrorCode(err))
}

func TestExtractor_ExtractsArticleContent(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Release Notes</title></head>
<body>
<nav><a href="/home">Home Nav Link</a></nav>
<article>
<h1>Release Notes</h1>
<p>This release adds incremental crawling, fixes the politeness delay
handling, and improves extraction quality on pages with deeply nested
layout wrappers.</p>
<p>Upgrading requires no configuration changes.</p>
</article>
<footer><p>Footer copyright text</p></footer>
</body>
</html>`

	ext := trafilatura.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "incremental crawling")
	assert.NotContains(t, result.ContentHTML, "Home Nav Link")
	assert.NotContains(t, result.ContentHTML, "Footer copyright text")
}

func TestExtractor_ReportsEmptyPages(t *testing.T) {
	t.Parallel()

	ext := trafilatura.NewExtractor()
	_, err := ext.Extract(`<!DOCTYPE html><html><head><title>x</title></head><body></body></html>`)

	require.Error(t, err)
	assert.Equal(t, sitemd.EEMPTY, sitemd.ErrorCode(err))
}
