// Package lexicon filters raw token sequences down to content-bearing
// words. The same filter backs both the vocabulary derivation and the
// noun/verb refinement.
package lexicon

import (
	"strings"
	"unicode"

	"github.com/pagesift/pagesift/pkg/patterns"
)

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Filter drops tokens that carry no lexical content: stopwords, dimension
// and hash noise, punctuation, numerics, URL-like tokens, and stray
// query-string fragments. Filtering preserves order and duplicates, and is
// idempotent: applying it to an already-filtered sequence is a no-op.
type Filter struct {
	patterns *patterns.Patterns
}

// NewFilter builds a Filter over the shared pattern set.
func NewFilter(p *patterns.Patterns) *Filter {
	return &Filter{patterns: p}
}

// Apply returns the subsequence of tokens that Keep accepts.
func (f *Filter) Apply(tokens []string) []string {
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if f.Keep(tok) {
			kept = append(kept, tok)
		}
	}
	return kept
}

// Keep reports whether a token survives filtering.
func (f *Filter) Keep(token string) bool {
	switch {
	case token == "",
		f.IsStopword(token),
		f.patterns.IsDimension(token),
		f.patterns.IsHash(token),
		isPunctuation(token),
		isNumeric(token),
		strings.HasPrefix(token, "http"),
		strings.HasPrefix(token, "//"),
		strings.Contains(token, "="):
		return false
	}
	return true
}

// IsStopword reports case-insensitive membership in the stopword set.
func (f *Filter) IsStopword(token string) bool {
	_, ok := stopwords[strings.ToLower(token)]
	return ok
}

func isPunctuation(token string) bool {
	for _, r := range token {
		if !strings.ContainsRune(asciiPunctuation, r) {
			return false
		}
	}
	return true
}

// isNumeric covers every Unicode numeric category, not just ASCII digits,
// so Arabic-Indic digits and numeral characters like "½" are dropped too.
func isNumeric(token string) bool {
	for _, r := range token {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
