package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/erraggy/oasdocs/oaserrors"
)

// DefaultMaxBodySize caps the size of a fetched document (10MB).
const DefaultMaxBodySize = 10 * 1024 * 1024

// maxErrorBody caps how much of a non-2xx response body is kept for error reporting.
const maxErrorBody = 4 * 1024

// Fetcher retrieves remote documents over HTTP(S).
type Fetcher struct {
	// Client performs the requests. Nil means a client with a 30s timeout.
	Client *http.Client
	// UserAgent is sent with every request when non-empty.
	UserAgent string
	// MaxBodySize caps the response size. Zero means DefaultMaxBodySize.
	MaxBodySize int64
}

// Fetch retrieves url and returns the body and Content-Type header.
// Failures are reported as *oaserrors.FetchError; a non-2xx response keeps the
// (truncated) response body so callers can surface what the server said.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", &oaserrors.FetchError{URL: url, Cause: err}
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := client.Do(req) //nolint:gosec // G704 - URL comes from a $ref the caller chose to resolve
	if err != nil {
		return nil, "", &oaserrors.FetchError{URL: url, Cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, "", &oaserrors.FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	limit := f.MaxBodySize
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, "", &oaserrors.FetchError{URL: url, Cause: fmt.Errorf("reading response body: %w", err)}
	}
	if int64(len(data)) > limit {
		return nil, "", &oaserrors.FetchError{
			URL: url,
			Cause: &oaserrors.ResourceLimitError{
				ResourceType: "file_size",
				Limit:        limit,
				Message:      "response body too large",
			},
		}
	}

	return data, resp.Header.Get("Content-Type"), nil
}
