package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RidesLoaded is the number of rides currently held in the dataset.
	RidesLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cycleledger_rides_loaded",
		Help: "Number of rides currently loaded in the dataset",
	})

	// StationsInDirectory is the size of the station directory snapshot.
	StationsInDirectory = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cycleledger_stations_in_directory",
		Help: "Number of stations in the current directory snapshot",
	})

	// UnresolvedEndpoints counts ride endpoints that no resolver
	// heuristic could match to a station.
	UnresolvedEndpoints = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cycleledger_unresolved_endpoints",
		Help: "Number of ride endpoints that did not resolve to any station",
	})

	// FeedLastUpdate is the lastUpdate timestamp of the station feed, in
	// unix seconds, for staleness alerting.
	FeedLastUpdate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cycleledger_feed_last_update_seconds",
		Help: "lastUpdate timestamp of the most recent station feed snapshot (unix seconds)",
	})

	// FeedFetchFailures counts failed station feed fetches.
	FeedFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cycleledger_feed_fetch_failures_total",
		Help: "Total number of failed station feed fetches",
	})

	// RideImports counts import batches by outcome (accepted/rejected).
	RideImports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cycleledger_ride_imports_total",
		Help: "Total number of ride import batches by outcome",
	}, []string{"outcome"})
)
