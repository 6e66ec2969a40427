// Package usgs fetches the USGS earthquake summary feed.
package usgs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quakemap/internal/domain"
	"github.com/couchcryptid/quakemap/internal/observability"
)

const featureCollectionType = "FeatureCollection"

// ErrNotFeatureCollection is returned when the feed decodes but is not a
// GeoJSON FeatureCollection.
var ErrNotFeatureCollection = errors.New("feed is not a FeatureCollection")

// Client retrieves a GeoJSON summary feed over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a feed client for the given URL.
func NewClient(feedURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		url: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// URL returns the feed address.
func (c *Client) URL() string {
	return c.url
}

// Fetch performs a single GET of the feed. It never retries; the caller
// decides what a failure means.
func (c *Client) Fetch(ctx context.Context) domain.FetchResult {
	start := time.Now()
	res := c.fetch(ctx)
	c.metrics.FeedDuration.Observe(time.Since(start).Seconds())

	if !res.OK() {
		c.metrics.FeedRequests.WithLabelValues("error").Inc()
		c.logger.Debug("feed fetch failed", "url", c.url, "error", res.Err)
		return res
	}

	n := len(res.Collection.Features)
	c.metrics.FeedRequests.WithLabelValues("success").Inc()
	c.metrics.FeaturesFetched.Add(float64(n))
	c.logger.Info("feed fetched",
		"url", c.url,
		"features", n,
		"duration", time.Since(start),
	)
	return res
}

func (c *Client) fetch(ctx context.Context) domain.FetchResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.FetchFailed(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.FetchFailed(fmt.Errorf("feed request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.FetchFailed(fmt.Errorf("feed error: status %d: %s", resp.StatusCode, body))
	}

	var fc domain.FeatureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return domain.FetchFailed(fmt.Errorf("decode feed: %w", err))
	}
	if fc.Type != featureCollectionType {
		return domain.FetchFailed(fmt.Errorf("%w: type %q", ErrNotFeatureCollection, fc.Type))
	}
	if fc.Features == nil {
		fc.Features = []domain.Feature{}
	}
	return domain.FetchResult{Collection: &fc}
}
