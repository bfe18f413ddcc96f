package models

import (
	"sort"
	"time"
)

// Set is a collection of unique strings. Membership is exact string
// equality; no normalization is applied to URLs or tokens before insertion.
type Set map[string]struct{}

// NewSet builds a Set from the given items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Add inserts v into the set.
func (s Set) Add(v string) {
	s[v] = struct{}{}
}

// Has reports whether v is a member.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Union inserts every member of other into s.
func (s Set) Union(other Set) {
	for v := range other {
		s[v] = struct{}{}
	}
}

// Sorted returns the members in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s)
}

// FreqMap counts occurrences per entry.
type FreqMap map[string]int

// Inc increments the count for v.
func (f FreqMap) Inc(v string) {
	f[v]++
}

// Page is the transient per-page extraction record. It is merged into the
// running CrawlResult and discarded.
type Page struct {
	URL       string
	Links     Set
	ImageURLs Set
	Phones    Set
	ZipCodes  Set
	Text      string
}

// CrawlResult is the final aggregate handed to the report writer. It is
// built incrementally during the crawl and must not be mutated afterwards.
type CrawlResult struct {
	SeedURL     string
	Domain      string
	VisitedURLs Set
	ImageURLs   Set
	Phones      Set
	ZipCodes    Set
	Vocabulary  Set
	Verbs       Set
	Nouns       Set
	VerbFreq    FreqMap
	NounFreq    FreqMap
	Failures    int
	StartedAt   time.Time
	FinishedAt  time.Time
}

// NewCrawlResult returns a CrawlResult with every aggregate initialized.
func NewCrawlResult(seedURL, domain string) *CrawlResult {
	return &CrawlResult{
		SeedURL:     seedURL,
		Domain:      domain,
		VisitedURLs: NewSet(),
		ImageURLs:   NewSet(),
		Phones:      NewSet(),
		ZipCodes:    NewSet(),
		Vocabulary:  NewSet(),
		Verbs:       NewSet(),
		Nouns:       NewSet(),
		VerbFreq:    FreqMap{},
		NounFreq:    FreqMap{},
	}
}
