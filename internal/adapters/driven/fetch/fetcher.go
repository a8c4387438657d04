// Package fetch downloads document bytes over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aluminium-labs/akl/internal/core/domain"
	"github.com/aluminium-labs/akl/internal/core/ports/driven"
	"github.com/aluminium-labs/akl/internal/logger"
)

// Ensure HTTPFetcher implements the interface.
var _ driven.Fetcher = (*HTTPFetcher)(nil)

// Publisher sites tend to serve interstitial pages to unknown agents,
// so requests present a plain desktop browser profile.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0",
	"Accept":          "application/pdf,application/octet-stream,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
}

// HTTPFetcher downloads documents with a shared HTTP client.
type HTTPFetcher struct {
	client *http.Client
}

// New creates a fetcher with a sensible request timeout.
func New() *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: 60 * time.Second}}
}

// Fetch downloads url and returns the response body. Any non-2xx
// status is a fetch failure.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	for key, value := range browserHeaders {
		req.Header.Set(key, value)
	}

	logger.Debug("fetching %s", url)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s", domain.ErrFetchFailed, url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrFetchFailed, err)
	}
	return body, nil
}
