// Package datasource fetches the product list from its JSON endpoint.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/abgdnv/productgrid/internal/product"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected data source status")
	ErrMalformedPayload = errors.New("malformed data source payload")
)

// Fetcher returns the full product list.
type Fetcher interface {
	Fetch(ctx context.Context) ([]product.Record, error)
}

// Client reads the product list with a single GET and no retries.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient returns a traced HTTP client. A zero timeout means no timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   timeout,
	}
}

// NewClient creates a client for url. A nil httpClient gets NewHTTPClient(0).
func NewClient(url string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}
	return &Client{
		url:        url,
		httpClient: httpClient,
		logger:     logger.With("component", "datasource"),
	}
}

// Fetch issues the GET and decodes the JSON array of wire records.
func (c *Client) Fetch(ctx context.Context) ([]product.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build data source request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "Fetching product list", "url", c.url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product list from %s: %w", c.url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, c.url, resp.StatusCode)
	}

	records, err := product.DecodeRecords(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	c.logger.DebugContext(ctx, "Fetched product list", "count", len(records))
	return records, nil
}
