// Package htmldoc wraps HTML parsing behind the small document surface the
// pipeline needs: attribute harvesting and page-text extraction.
package htmldoc

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-trafilatura"
)

// Mode selects how page text is derived from markup.
type Mode string

const (
	// ModeVisible strips script/style subtrees and returns the remaining
	// rendered text. This is the default behavior.
	ModeVisible Mode = "visible"
	// ModeArticle runs main-content extraction and falls back to
	// ModeVisible when nothing is recognized as article content.
	ModeArticle Mode = "article"
)

// ValidMode reports whether m names a supported text mode.
func ValidMode(m Mode) bool {
	return m == ModeVisible || m == ModeArticle
}

// Document is a parsed, queryable HTML page.
type Document struct {
	doc *goquery.Document
	raw string
}

// Parse builds a Document from raw HTML.
func Parse(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{doc: doc, raw: html}, nil
}

// AttrValues returns the value of attr on every element matching tag, in
// document order. Elements without the attribute are skipped.
func (d *Document) AttrValues(tag, attr string) []string {
	var vals []string
	d.doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr(attr); ok {
			vals = append(vals, v)
		}
	})
	return vals
}

// VisibleText returns the page text with script, style, noscript, and
// template subtrees removed and whitespace collapsed to single spaces.
func (d *Document) VisibleText() string {
	d.doc.Find("script, style, noscript, template").Remove()
	return collapseWhitespace(d.doc.Text())
}

// Text returns the page text for the given mode.
func (d *Document) Text(mode Mode) string {
	if mode == ModeArticle {
		result, err := trafilatura.Extract(strings.NewReader(d.raw), trafilatura.Options{})
		if err == nil && result != nil && result.ContentText != "" {
			return collapseWhitespace(result.ContentText)
		}
	}
	return d.VisibleText()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
