package stats

import (
	"testing"
	"time"

	"cycleledger.app/internal/models"
)

func TestAggregateStationsCoversDirectory(t *testing.T) {
	stations := newTestStations(t)

	out := AggregateStations(nil, stations)
	if len(out) != len(stations) {
		t.Fatalf("expected one entry per directory station, got %d", len(out))
	}
	for _, ss := range out {
		if ss.Total != 0 || ss.Net != 0 {
			t.Errorf("expected zero-activity entry for %s, got %+v", ss.StationID, ss)
		}
	}
}

func TestAggregateStationsCounts(t *testing.T) {
	stations := newTestStations(t)
	rides := []models.Ride{
		newTestRide(t, "Station A", "Station B", testStart, 10*time.Minute),
		newTestRide(t, "Station A", "Station C", testStart.Add(time.Hour), 12*time.Minute),
		newTestRide(t, "Station B", "Station A", testStart.Add(2*time.Hour), 9*time.Minute),
	}

	out := AggregateStations(rides, stations)
	byID := make(map[string]models.StationStats)
	for _, ss := range out {
		byID[ss.StationID] = ss
	}

	a := byID["1"]
	if a.Pickups != 2 || a.Dropoffs != 1 || a.Total != 3 || a.Net != 1 {
		t.Errorf("unexpected stats for Station A: %+v", a)
	}
	b := byID["2"]
	if b.Pickups != 1 || b.Dropoffs != 1 || b.Total != 2 || b.Net != 0 {
		t.Errorf("unexpected stats for Station B: %+v", b)
	}
	c := byID["3"]
	if c.Pickups != 0 || c.Dropoffs != 1 || c.Net != -1 {
		t.Errorf("unexpected stats for Station C: %+v", c)
	}
}

func TestAggregateStationsRoundTrip(t *testing.T) {
	stations := newTestStations(t)
	rides := []models.Ride{
		newTestRide(t, "Station A", "Station A", testStart, 25*time.Minute),
	}

	out := AggregateStations(rides, stations)
	for _, ss := range out {
		if ss.StationID != "1" {
			continue
		}
		if ss.Pickups != 1 || ss.Dropoffs != 1 || ss.Total != 2 || ss.Net != 0 {
			t.Errorf("round trip should count both endpoints: %+v", ss)
		}
		return
	}
	t.Fatal("Station A missing from output")
}

// Conservation: pickups sum to the number of resolvable start addresses,
// dropoffs to the number of resolvable end addresses.
func TestAggregateStationsConservation(t *testing.T) {
	stations := newTestStations(t)
	rides := []models.Ride{
		newTestRide(t, "Station A", "Station B", testStart, 10*time.Minute),
		newTestRide(t, "Station B", "Unknown Place", testStart.Add(time.Hour), 8*time.Minute),
		newTestRide(t, "Nowhere", "Station C", testStart.Add(2*time.Hour), 7*time.Minute),
		{},
	}

	pickups, dropoffs := 0, 0
	for _, ss := range AggregateStations(rides, stations) {
		pickups += ss.Pickups
		dropoffs += ss.Dropoffs
	}
	if pickups != 2 {
		t.Errorf("expected 2 resolvable starts, got %d", pickups)
	}
	if dropoffs != 2 {
		t.Errorf("expected 2 resolvable ends, got %d", dropoffs)
	}
}
