package app

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"cycleledger.app/internal/config"
	"cycleledger.app/internal/feed"
	"cycleledger.app/internal/models"
	"cycleledger.app/internal/ridestore"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := ridestore.New(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	cfg := config.Default()
	return New(cfg, logger, store, feed.NewClient(cfg.FeedURL, nil, logger), "test")
}

func testStations() []models.Station {
	return []models.Station{
		{ID: "1", Name: "Abbey Road, St. John's Wood", TerminalName: "001001", Lat: 51.5, Long: -0.1, Installed: true, NbDocks: 20},
		{ID: "2", Name: "Baker Street, Marylebone", TerminalName: "001002", Lat: 51.51, Long: -0.09, Installed: true, NbDocks: 16},
	}
}

func testRide(t *testing.T, id, startAddr, endAddr string, start time.Time, duration time.Duration) models.Ride {
	t.Helper()

	startMs := start.UnixMilli()
	endMs := start.Add(duration).UnixMilli()
	return models.Ride{
		RideID:       &id,
		StartAddress: &startAddr,
		EndAddress:   &endAddr,
		StartTimeMs:  &startMs,
		EndTimeMs:    &endMs,
	}
}
