package crawler

import (
	"context"

	"github.com/pagesift/pagesift/pkg/htmldoc"
)

// Fetcher retrieves raw page content. A returned error is a permanent
// failure for that URL within the crawl run.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// Options configure a traversal run.
type Options struct {
	// SeedURL is the single starting point of the crawl.
	SeedURL string
	// Domain is the substring that marks a URL as in-domain.
	Domain string
	// Workers is the number of concurrent fetch workers. 1 reproduces the
	// sequential last-discovered-first traversal order exactly.
	Workers int
	// ContentMode selects how page text is extracted.
	ContentMode htmldoc.Mode
}
