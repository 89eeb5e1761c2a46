package aggregator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// defaultFetchTimeout bounds a single source fetch when no timeout is configured.
const defaultFetchTimeout = 8 * time.Second

// maxResponseBytes caps how much of a backend response is read. CMS backends
// occasionally return enormous garbage payloads.
const maxResponseBytes = 8 << 20

var defaultHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":     "application/json",
}

// fetchClient issues single GET requests against source backends with a hard
// per-request deadline and a browser-like default header set.
type fetchClient struct {
	log     *slog.Logger
	httpc   *http.Client
	timeout time.Duration
}

func newFetchClient(timeout time.Duration) *fetchClient {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &fetchClient{
		log:     slog.Default().With("component", "fetch-client"),
		httpc:   &http.Client{},
		timeout: timeout,
	}
}

// fetch performs one GET and returns the response body. Caller-supplied
// headers win over the defaults on conflicting keys. Timeouts, network errors
// and non-2xx statuses all come back as plain errors; the caller decides what
// to absorb.
func (c *fetchClient) fetch(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("timeout after %s: %w", c.timeout, err)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	c.log.Debug("fetched", "url", rawURL, "bytes", len(body), "duration", time.Since(start))
	return body, nil
}
