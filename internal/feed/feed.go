// Package feed fetches the operator's live station directory. The feed
// is a single XML document listing every docking station with its
// coordinates, terminal code and live dock counts.
package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"

	"cycleledger.app/internal/metrics"
	"cycleledger.app/internal/models"
	"cycleledger.app/internal/report"
)

// Client fetches and parses station directory snapshots.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a feed client for the given feed URL. A nil
// httpClient falls back to a client with a sane timeout.
func NewClient(url string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{url: url, httpClient: httpClient, logger: logger}
}

// stationList mirrors the feed's root element.
type stationList struct {
	XMLName    xml.Name         `xml:"stations"`
	LastUpdate int64            `xml:"lastUpdate,attr"`
	Stations   []models.Station `xml:"station"`
}

// Fetch downloads the feed, retrying transient failures with backoff,
// and returns the parsed directory together with the feed's own
// lastUpdate timestamp.
func (c *Client) Fetch(ctx context.Context, maxRetries int) ([]models.Station, time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to create feed request: %v", err)
	}

	resp, err := DoWithBackoff(ctx, c.httpClient, req, maxRetries)
	if err != nil {
		metrics.FeedFetchFailures.Inc()
		report.ReportErrorWithOptions(err, report.Options{
			Tags:  map[string]string{"feed_url": c.url},
			Level: sentry.LevelError,
		})
		return nil, time.Time{}, fmt.Errorf("failed to fetch station feed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.FeedFetchFailures.Inc()
		return nil, time.Time{}, fmt.Errorf("failed to read station feed: %v", err)
	}

	var list stationList
	if err := xml.Unmarshal(data, &list); err != nil {
		metrics.FeedFetchFailures.Inc()
		report.ReportErrorWithOptions(err, report.Options{
			Tags:  map[string]string{"feed_url": c.url},
			Level: sentry.LevelError,
		})
		return nil, time.Time{}, fmt.Errorf("failed to parse station feed: %v", err)
	}

	lastUpdate := time.UnixMilli(list.LastUpdate)
	metrics.FeedLastUpdate.Set(float64(lastUpdate.Unix()))

	c.logger.Info("fetched station feed", "stations", len(list.Stations), "lastUpdate", lastUpdate)
	return list.Stations, lastUpdate, nil
}
