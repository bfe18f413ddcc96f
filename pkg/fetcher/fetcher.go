// Package fetcher retrieves raw page content over HTTP. Retry, backoff,
// and connection handling live here; the traversal engine only sees
// success or a permanent per-URL failure.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// ErrFetch marks a URL that could not be retrieved. The traversal engine
// logs and drops such URLs without retrying them within the crawl run.
var ErrFetch = errors.New("fetch failed")

// Fetcher is an HTTP page fetcher with bounded retries.
type Fetcher struct {
	client    *http.Client
	userAgent string
	retries   int
	logger    *log.Logger
}

// New builds a Fetcher. timeout bounds each request attempt; retries is the
// number of re-attempts after the first failure.
func New(timeout time.Duration, retries int, userAgent string, logger *log.Logger) *Fetcher {
	transport := &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 50,
		IdleConnTimeout:     30 * time.Second,
	}
	return &Fetcher{
		client:    &http.Client{Transport: transport, Timeout: timeout},
		userAgent: userAgent,
		retries:   retries,
		logger:    logger,
	}
}

// Fetch retrieves the body of pageURL. Non-2xx statuses and transport
// errors are retried with exponential backoff; once attempts are exhausted
// the returned error wraps ErrFetch.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %s: %v", ErrFetch, pageURL, ctx.Err())
			case <-time.After(time.Duration(100*(1<<attempt)) * time.Millisecond):
			}
		}

		body, err := f.get(ctx, pageURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		f.logger.Debug("fetch attempt failed", "url", pageURL, "attempt", attempt+1, "err", err)
	}
	return "", fmt.Errorf("%w: %s: %v", ErrFetch, pageURL, lastErr)
}

func (f *Fetcher) get(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
