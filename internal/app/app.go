package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cycleledger.app/internal/config"
	"cycleledger.app/internal/feed"
	"cycleledger.app/internal/metrics"
	"cycleledger.app/internal/models"
	"cycleledger.app/internal/report"
	"cycleledger.app/internal/ridestore"
)

// Application wires the dashboard's dependencies together and holds the
// current dataset snapshot: the ride list and the station directory.
// The analytics engine itself is stateless; handlers read a consistent
// snapshot from here and recompute derived structures per request.
type Application struct {
	Config  config.Config
	Logger  *slog.Logger
	Store   *ridestore.Store
	Feed    *feed.Client
	Version string

	mu              sync.RWMutex
	rides           []models.Ride
	stations        []models.Station
	stationsUpdated time.Time
}

// New creates the Application with its dependencies.
func New(cfg config.Config, logger *slog.Logger, store *ridestore.Store, feedClient *feed.Client, version string) *Application {
	return &Application{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Feed:    feedClient,
		Version: version,
	}
}

// Rides returns a copy of the current ride list so callers never see a
// slice that a concurrent import is about to replace.
func (app *Application) Rides() []models.Ride {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return append([]models.Ride(nil), app.rides...)
}

// Stations returns a copy of the current station directory snapshot.
func (app *Application) Stations() []models.Station {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return append([]models.Station(nil), app.stations...)
}

// Snapshot returns both inputs from the same locked read, so the
// aggregators work over a consistent pair.
func (app *Application) Snapshot() ([]models.Ride, []models.Station) {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return append([]models.Ride(nil), app.rides...), append([]models.Station(nil), app.stations...)
}

// SetRides swaps in a new ride list and refreshes the dataset gauges.
func (app *Application) SetRides(rides []models.Ride) {
	app.mu.Lock()
	app.rides = rides
	stations := app.stations
	app.mu.Unlock()

	metrics.ReportDataset(rides, stations)
}

// SetStations swaps in a new directory snapshot.
func (app *Application) SetStations(stations []models.Station, updated time.Time) {
	app.mu.Lock()
	app.stations = stations
	app.stationsUpdated = updated
	rides := app.rides
	app.mu.Unlock()

	metrics.ReportDataset(rides, stations)
}

// StationsUpdated reports the feed's lastUpdate of the current snapshot.
func (app *Application) StationsUpdated() time.Time {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.stationsUpdated
}

// RefreshStations fetches a fresh directory snapshot from the feed.
func (app *Application) RefreshStations(ctx context.Context) error {
	stations, updated, err := app.Feed.Fetch(ctx, app.Config.FeedMaxRetries)
	if err != nil {
		return err
	}
	app.SetStations(stations, updated)
	return nil
}

// StartFeedRefresh periodically refreshes the station directory until
// the context is cancelled. Fetch errors are logged and reported but do
// not stop the loop; the previous snapshot stays in place.
func (app *Application) StartFeedRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			app.Logger.Info("stopping station feed refresh")
			return
		case <-ticker.C:
			if err := app.RefreshStations(ctx); err != nil {
				report.ReportError(err)
				app.Logger.Error("failed to refresh station directory", "error", err)
			}
		}
	}
}
