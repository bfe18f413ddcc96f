package crawler

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagesift/pagesift/pkg/analyzer"
	"github.com/pagesift/pagesift/pkg/extractor"
	"github.com/pagesift/pagesift/pkg/lexicon"
	"github.com/pagesift/pagesift/pkg/patterns"
)

const (
	testBase   = "https://site.test/"
	testDomain = "site.test"
)

// stubFetcher serves pages from a map and records every fetch.
type stubFetcher struct {
	pages map[string]string

	mu    sync.Mutex
	calls map[string]int
	order []string
}

func newStubFetcher(pages map[string]string) *stubFetcher {
	return &stubFetcher{pages: pages, calls: map[string]int{}}
}

func (f *stubFetcher) Fetch(_ context.Context, pageURL string) (string, error) {
	f.mu.Lock()
	f.calls[pageURL]++
	f.order = append(f.order, pageURL)
	f.mu.Unlock()

	body, ok := f.pages[pageURL]
	if !ok {
		return "", fmt.Errorf("no such page %q", pageURL)
	}
	return body, nil
}

// fieldsTokenizer keeps the analyzer deterministic without the prose stack.
type fieldsTokenizer struct{}

func (fieldsTokenizer) Tokenize(text string) ([]string, error) {
	return strings.Fields(text), nil
}

type nullTagger struct{}

func (nullTagger) Tag(string) ([]analyzer.TaggedToken, error) { return nil, nil }

type identityLemmatizer struct{}

func (identityLemmatizer) Lemma(word string) string { return word }

func newTestCrawler(opts Options, f Fetcher) *Crawler {
	filter := lexicon.NewFilter(patterns.New())
	a := analyzer.NewWithComponents(filter, fieldsTokenizer{}, nullTagger{}, identityLemmatizer{})
	e := extractor.New(testBase, testDomain, patterns.New())
	return New(opts, f, e, a, log.New(io.Discard))
}

func pageHTML(text string, links ...string) string {
	var b strings.Builder
	b.WriteString("<html><body><p>")
	b.WriteString(text)
	b.WriteString("</p>")
	for _, link := range links {
		fmt.Fprintf(&b, `<a href=%q>link</a>`, link)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func TestRunVisitsEachPageOnce(t *testing.T) {
	for _, workers := range []int{1, 3} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			// a and b link to each other and back to the seed
			fetcher := newStubFetcher(map[string]string{
				testBase:       pageHTML("home", testBase+"a", testBase+"b"),
				testBase + "a": pageHTML("alpha", testBase+"b", testBase),
				testBase + "b": pageHTML("beta", testBase+"a"),
			})

			c := newTestCrawler(Options{SeedURL: testBase, Domain: testDomain, Workers: workers}, fetcher)
			result, err := c.Run(context.Background())
			require.NoError(t, err)

			assert.Equal(t, []string{testBase, testBase + "a", testBase + "b"}, result.VisitedURLs.Sorted())
			assert.Zero(t, result.Failures)
			for url, n := range fetcher.calls {
				assert.Equal(t, 1, n, "url %s fetched more than once", url)
			}
		})
	}
}

func TestRunTraversesLastDiscoveredFirst(t *testing.T) {
	fetcher := newStubFetcher(map[string]string{
		testBase:       pageHTML("home", testBase+"a", testBase+"b"),
		testBase + "a": pageHTML("alpha"),
		testBase + "b": pageHTML("beta"),
	})

	c := newTestCrawler(Options{SeedURL: testBase, Domain: testDomain, Workers: 1}, fetcher)
	_, err := c.Run(context.Background())
	require.NoError(t, err)

	// discovered links are enqueued sorted, so b is popped before a
	assert.Equal(t, []string{testBase, testBase + "b", testBase + "a"}, fetcher.order)
}

func TestRunCountsFailuresWithoutRetrying(t *testing.T) {
	fetcher := newStubFetcher(map[string]string{
		testBase:       pageHTML("home", testBase+"gone", testBase+"a"),
		testBase + "a": pageHTML("alpha", testBase+"gone"),
	})

	c := newTestCrawler(Options{SeedURL: testBase, Domain: testDomain}, fetcher)
	result, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{testBase, testBase + "a"}, result.VisitedURLs.Sorted())
	assert.Equal(t, 1, result.Failures)
	assert.Equal(t, 1, fetcher.calls[testBase+"gone"])
	assert.False(t, result.VisitedURLs.Has(testBase+"gone"))
}

func TestRunMergesExtractions(t *testing.T) {
	fetcher := newStubFetcher(map[string]string{
		testBase: pageHTML(`front desk 555-987-6543 zip 30301`, testBase+"a") +
			`<img src="/logo.png">`,
		testBase + "a": pageHTML("engineers build crawlers"),
	})

	c := newTestCrawler(Options{SeedURL: testBase, Domain: testDomain}, fetcher)
	result, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Phones.Has("555-987-6543"))
	assert.True(t, result.ZipCodes.Has("30301"))
	assert.True(t, result.ImageURLs.Has(testBase+"logo.png"))
	assert.True(t, result.Vocabulary.Has("engineers"))
	assert.True(t, result.Vocabulary.Has("crawlers"))
	assert.False(t, result.Vocabulary.Has("the"))
}

func TestRunConcurrentWorkersVisitOnce(t *testing.T) {
	// star topology: every page links to every other page
	pages := map[string]string{}
	var urls []string
	for i := 0; i < 20; i++ {
		urls = append(urls, fmt.Sprintf("%sp%02d", testBase, i))
	}
	for i, u := range urls {
		links := append([]string{}, urls[:i]...)
		links = append(links, urls[i+1:]...)
		pages[u] = pageHTML("node", links...)
	}
	fetcher := newStubFetcher(pages)

	c := newTestCrawler(Options{SeedURL: urls[0], Domain: testDomain, Workers: 4}, fetcher)
	result, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, len(urls), result.VisitedURLs.Len())
	for url, n := range fetcher.calls {
		assert.Equal(t, 1, n, "url %s fetched more than once", url)
	}
}

func TestRunCanceledContext(t *testing.T) {
	fetcher := newStubFetcher(map[string]string{
		testBase: pageHTML("home"),
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestCrawler(Options{SeedURL: testBase, Domain: testDomain}, fetcher)
	result, err := c.Run(ctx)
	require.NoError(t, err)

	// nothing dequeued after cancellation, partial result still returned
	assert.Zero(t, result.VisitedURLs.Len())
}
