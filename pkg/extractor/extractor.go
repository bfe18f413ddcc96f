// Package extractor turns one fetched page into typed facts: in-domain
// links, image URLs, phone numbers, zip codes, and the page text.
package extractor

import (
	"strings"

	"github.com/pagesift/pagesift/internal/models"
	"github.com/pagesift/pagesift/pkg/htmldoc"
	"github.com/pagesift/pagesift/pkg/patterns"
)

// Extractor pulls structured facts out of a page's parsed document and its
// raw markup. One Extractor is built per crawl run and shared by workers.
type Extractor struct {
	baseURL  string // site root, trailing slash guaranteed by config
	domain   string
	patterns *patterns.Patterns
}

// New builds an Extractor scoped to the given base URL and domain token.
func New(baseURL, domain string, p *patterns.Patterns) *Extractor {
	return &Extractor{baseURL: baseURL, domain: domain, patterns: p}
}

// Page runs every extractor over one fetched page.
func (e *Extractor) Page(pageURL, raw string, doc *htmldoc.Document, mode htmldoc.Mode) *models.Page {
	return &models.Page{
		URL:       pageURL,
		Links:     e.Links(doc),
		ImageURLs: e.Images(doc),
		Phones:    e.Phones(raw),
		ZipCodes:  e.ZipCodes(raw),
		Text:      doc.Text(mode),
	}
}

// Links collects every anchor target that is an absolute URL inside the
// crawl domain. Scope is substring containment, so subdomains and
// query-embedded domain mentions count as in-domain; tightening this to
// host equality would change the crawl scope.
func (e *Extractor) Links(doc *htmldoc.Document) models.Set {
	links := models.NewSet()
	for _, href := range doc.AttrValues("a", "href") {
		if strings.HasPrefix(href, "http") && strings.Contains(href, e.domain) {
			links.Add(href)
		}
	}
	return links
}

// Images collects every image source, resolving root-relative paths
// against the base URL.
func (e *Extractor) Images(doc *htmldoc.Document) models.Set {
	images := models.NewSet()
	for _, src := range doc.AttrValues("img", "src") {
		images.Add(e.ResolveImageURL(src))
	}
	return images
}

// ResolveImageURL resolves a root-relative src by concatenating it onto the
// base URL after stripping leading slashes. Anything else passes through
// unchanged; no relative-path resolution is attempted.
func (e *Extractor) ResolveImageURL(src string) string {
	if strings.HasPrefix(src, "/") {
		return e.baseURL + strings.TrimLeft(src, "/")
	}
	return src
}

// Phones matches phone numbers against the page's raw markup, so numbers
// embedded in attributes or comments are eligible.
func (e *Extractor) Phones(raw string) models.Set {
	return models.NewSet(e.patterns.Phones(raw)...)
}

// ZipCodes matches zip codes against the page's raw markup.
func (e *Extractor) ZipCodes(raw string) models.Set {
	return models.NewSet(e.patterns.ZipCodes(raw)...)
}
