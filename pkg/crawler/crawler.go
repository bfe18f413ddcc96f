// Package crawler owns the frontier and the visit-once guarantee. It
// drives fetch -> parse -> extract -> enqueue for every reachable page,
// then hands the accumulated text to the lexical analyzer.
package crawler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pagesift/pagesift/internal/models"
	"github.com/pagesift/pagesift/pkg/analyzer"
	"github.com/pagesift/pagesift/pkg/extractor"
	"github.com/pagesift/pagesift/pkg/htmldoc"
)

// Crawler traverses every reachable in-domain page exactly once.
type Crawler struct {
	opts    Options
	fetcher Fetcher
	extract *extractor.Extractor
	analyze *analyzer.Analyzer
	logger  *log.Logger

	// claimed is the atomic visit-once claim set. A URL enters it exactly
	// once, at dequeue time; failed URLs stay claimed so they are never
	// retried. The reported visited set holds successes only.
	claimed sync.Map

	mu       sync.Mutex // guards everything below
	cond     *sync.Cond
	frontier []string
	inFlight int
	result   *models.CrawlResult
	texts    []string
}

// New builds a Crawler. The extractor and analyzer are shared across
// workers; both are safe for concurrent use.
func New(opts Options, f Fetcher, e *extractor.Extractor, a *analyzer.Analyzer, logger *log.Logger) *Crawler {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.ContentMode == "" {
		opts.ContentMode = htmldoc.ModeVisible
	}
	c := &Crawler{
		opts:    opts,
		fetcher: f,
		extract: e,
		analyze: a,
		logger:  logger,
		result:  models.NewCrawlResult(opts.SeedURL, opts.Domain),
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Run crawls from the seed until the frontier is exhausted, then runs the
// lexical analyzer once over the accumulated page text. Canceling ctx
// stops dequeuing; in-flight fetches drain and the partial result is
// still analyzed and returned.
func (c *Crawler) Run(ctx context.Context) (*models.CrawlResult, error) {
	c.result.StartedAt = time.Now()
	c.frontier = []string{c.opts.SeedURL}

	// wake waiting workers when the context is canceled
	stop := context.AfterFunc(ctx, func() {
		c.mu.Lock()
		c.cond.Broadcast()
		c.mu.Unlock()
	})
	defer stop()

	var wg sync.WaitGroup
	for i := 0; i < c.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.work(ctx)
		}()
	}
	wg.Wait()

	c.result.FinishedAt = time.Now()
	if ctx.Err() != nil {
		c.logger.Warn("crawl canceled before frontier drained", "visited", c.result.VisitedURLs.Len())
	}

	corpus := strings.Join(c.texts, "\n")
	analysis, err := c.analyze.Analyze(corpus)
	if err != nil {
		return nil, fmt.Errorf("lexical analysis: %w", err)
	}
	c.result.Vocabulary = analysis.Vocabulary
	c.result.Nouns = analysis.Nouns
	c.result.Verbs = analysis.Verbs
	c.result.NounFreq = analysis.NounFreq
	c.result.VerbFreq = analysis.VerbFreq
	return c.result, nil
}

func (c *Crawler) work(ctx context.Context) {
	for {
		pageURL, ok := c.next(ctx)
		if !ok {
			return
		}
		c.visit(ctx, pageURL)

		c.mu.Lock()
		c.inFlight--
		c.cond.Broadcast()
		c.mu.Unlock()
	}
}

// next pops the most recently discovered unclaimed URL. It blocks while
// the frontier is empty but other workers may still enqueue, and returns
// false once the crawl is complete or canceled.
func (c *Crawler) next(ctx context.Context) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		if ctx.Err() != nil {
			return "", false
		}
		if n := len(c.frontier); n > 0 {
			pageURL := c.frontier[n-1]
			c.frontier = c.frontier[:n-1]
			if _, dup := c.claimed.LoadOrStore(pageURL, struct{}{}); dup {
				continue // already visited, discard
			}
			c.inFlight++
			return pageURL, true
		}
		if c.inFlight == 0 {
			return "", false
		}
		c.cond.Wait()
	}
}

// visit runs the per-URL state machine: fetch, parse, extract, merge,
// enqueue. A fetch or parse failure drops the URL permanently without
// touching any aggregate.
func (c *Crawler) visit(ctx context.Context, pageURL string) {
	body, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		c.fail(pageURL, err)
		return
	}
	doc, err := htmldoc.Parse(body)
	if err != nil {
		c.fail(pageURL, err)
		return
	}

	page := c.extract.Page(pageURL, body, doc, c.opts.ContentMode)
	c.logger.Info("crawled", "url", pageURL, "links", page.Links.Len(), "images", page.ImageURLs.Len())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.result.VisitedURLs.Add(pageURL)
	c.result.ImageURLs.Union(page.ImageURLs)
	c.result.Phones.Union(page.Phones)
	c.result.ZipCodes.Union(page.ZipCodes)
	c.texts = append(c.texts, page.Text)

	// Sorted order keeps traversal deterministic for a fixed document set.
	// Visit-once is guaranteed by the claim check at dequeue time, not
	// here; duplicates that slip into the frontier are discarded then.
	for _, link := range page.Links.Sorted() {
		if _, seen := c.claimed.Load(link); seen {
			continue
		}
		c.frontier = append(c.frontier, link)
	}
	c.cond.Broadcast()
}

func (c *Crawler) fail(pageURL string, err error) {
	c.logger.Error("page dropped", "url", pageURL, "err", err)
	c.mu.Lock()
	c.result.Failures++
	c.mu.Unlock()
}
