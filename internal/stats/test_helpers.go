package stats

import (
	"testing"
	"time"

	"cycleledger.app/internal/models"
)

func strPtr(s string) *string { return &s }

func msPtr(ms int64) *int64 { return &ms }

// newTestStations returns a small directory with well-separated
// coordinates. Station A to Station B is roughly 1.2 km.
func newTestStations(t *testing.T) []models.Station {
	t.Helper()

	return []models.Station{
		{ID: "1", Name: "Station A", TerminalName: "001001", Lat: 51.5, Long: -0.1},
		{ID: "2", Name: "Station B", TerminalName: "001002", Lat: 51.51, Long: -0.09},
		{ID: "3", Name: "Station C", TerminalName: "001003", Lat: 51.53, Long: -0.12},
	}
}

// newTestRide builds a resolvable ride between two addresses with the
// given start instant and duration.
func newTestRide(t *testing.T, startAddr, endAddr string, start time.Time, duration time.Duration) models.Ride {
	t.Helper()

	s := start.UnixMilli()
	e := start.Add(duration).UnixMilli()
	return models.Ride{
		StartTimeMs:  &s,
		EndTimeMs:    &e,
		StartAddress: &startAddr,
		EndAddress:   &endAddr,
	}
}
