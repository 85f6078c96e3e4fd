// Package source fetches and normalizes content from a single upstream
// endpoint. Every failure at this level is a typed empty outcome, never an
// error escalated to the caller: retrying by moving to the next source or
// tier is the aggregator's job.
package source

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/citydigest/citydigest/config"
	"github.com/citydigest/citydigest/internal/logger"
	"github.com/citydigest/citydigest/internal/metrics"
	"github.com/citydigest/citydigest/internal/models"
)

// Status classifies the outcome of one fetch
type Status string

const (
	StatusOK         Status = "ok"
	StatusHTTPError  Status = "http_error"
	StatusTransport  Status = "transport_error"
	StatusBadPayload Status = "bad_payload"
	StatusEmpty      Status = "empty"
)

// maxBodyBytes caps how much of a feed body is read
const maxBodyBytes = 4 << 20

// Client fetches RSS/Atom endpoints with a fixed user agent and a bounded
// per-request timeout. No retries and no backoff at this level.
type Client struct {
	http      *http.Client
	userAgent string
	maxItems  int
}

// NewClient creates a source client from the fetch configuration
func NewClient(cfg config.FetchConfig) *Client {
	return &Client{
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: cfg.UserAgent,
		maxItems:  cfg.MaxItemsPerFeed,
	}
}

// FetchFeed downloads and parses one feed endpoint. The returned status says
// why the item list may be empty; callers branch on the items, the status
// feeds logs and metrics.
func (c *Client) FetchFeed(ctx context.Context, url string) ([]models.ContentItem, Status) {
	items, status := c.fetchFeed(ctx, url)
	metrics.RecordFetch(url, string(status))
	if status != StatusOK {
		logger.Debug("feed fetch yielded nothing", "url", url, "status", status)
	}
	return items, status
}

func (c *Client) fetchFeed(ctx context.Context, url string) ([]models.ContentItem, Status) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, StatusTransport
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, StatusTransport
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, StatusHTTPError
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, StatusTransport
	}

	// Bridges sometimes answer 200 with an HTML error page
	if !looksLikeFeed(body) {
		return nil, StatusBadPayload
	}

	items := ParseFeed(body, c.maxItems)
	if len(items) == 0 {
		return nil, StatusEmpty
	}
	return items, StatusOK
}

func looksLikeFeed(body []byte) bool {
	head := strings.ToLower(string(body[:min(len(body), 1024)]))
	return strings.Contains(head, "<rss") ||
		strings.Contains(head, "<feed") ||
		strings.Contains(head, "<rdf")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
