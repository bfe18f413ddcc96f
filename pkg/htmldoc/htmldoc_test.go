package htmldoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `
<!DOCTYPE html>
<html>
<head>
	<title>Quarterly Update</title>
	<style>body { color: red; }</style>
	<script>var tracking = "beacon";</script>
</head>
<body>
	<h1>Quarterly results</h1>
	<p>Revenue grew in the quarterly report.</p>
	<a href="https://example.test/a">first</a>
	<a href="https://example.test/b">second</a>
	<a>no href</a>
	<img src="/img/logo.png">
	<noscript>enable javascript</noscript>
</body>
</html>`

func TestAttrValues(t *testing.T) {
	doc, err := Parse(testPage)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://example.test/a", "https://example.test/b"},
		doc.AttrValues("a", "href"))
	assert.Equal(t, []string{"/img/logo.png"}, doc.AttrValues("img", "src"))
	assert.Empty(t, doc.AttrValues("iframe", "src"))
}

func TestVisibleTextStripsScriptAndStyle(t *testing.T) {
	doc, err := Parse(testPage)
	require.NoError(t, err)

	text := doc.VisibleText()
	assert.Contains(t, text, "Quarterly results")
	assert.Contains(t, text, "Revenue grew")
	assert.NotContains(t, text, "tracking")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "enable javascript")
}

func TestVisibleTextCollapsesWhitespace(t *testing.T) {
	doc, err := Parse("<html><body><p>one</p>\n\n<p>two   three</p></body></html>")
	require.NoError(t, err)

	assert.Equal(t, "one two three", doc.VisibleText())
}

func TestTextArticleModeFallsBackToVisible(t *testing.T) {
	doc, err := Parse(testPage)
	require.NoError(t, err)

	// whether main-content extraction succeeds or falls back, body prose
	// must survive
	assert.Contains(t, doc.Text(ModeArticle), "quarterly report")
}

func TestValidMode(t *testing.T) {
	assert.True(t, ValidMode(ModeVisible))
	assert.True(t, ValidMode(ModeArticle))
	assert.False(t, ValidMode(Mode("readability")))
}
