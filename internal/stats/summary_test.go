package stats

import (
	"testing"
	"time"

	"cycleledger.app/internal/models"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantSymbol string
		wantAmount float64
		wantOK     bool
	}{
		{"pounds", "£1.50", "£", 1.50, true},
		{"zero", "£0.00", "£", 0, true},
		{"no symbol", "2.50", "", 2.50, true},
		{"symbol with space", "£ 3.20", "£", 3.20, true},
		{"euros", "€1.00", "€", 1.00, true},
		{"whole number", "£2", "£", 2, true},
		{"malformed", "free ride", "", 0, false},
		{"empty", "", "", 0, false},
		{"trailing junk", "£1.50 total", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sym, amount, ok := parsePrice(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("parsePrice(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if sym != tt.wantSymbol || amount != tt.wantAmount {
				t.Errorf("parsePrice(%q) = %q, %f; want %q, %f", tt.input, sym, amount, tt.wantSymbol, tt.wantAmount)
			}
		})
	}
}

func TestSummarizeMonetary(t *testing.T) {
	stations := newTestStations(t)
	rides := []models.Ride{
		{Price: strPtr("£1.50")},
		{Price: strPtr("£0.00")}, // pass-covered, not a paid ride
		{Price: strPtr("£2.00")},
		{Price: strPtr("n/a")}, // malformed, excluded
		{},
	}

	s := Summarize(rides, stations, time.Now())
	if s.TotalRides != 5 {
		t.Errorf("expected 5 total rides, got %d", s.TotalRides)
	}
	if s.PaidRides != 2 {
		t.Errorf("expected 2 paid rides, got %d", s.PaidRides)
	}
	if s.TotalSpent != 3.50 {
		t.Errorf("expected £3.50 spent, got %f", s.TotalSpent)
	}
	if s.CurrencySymbol != "£" {
		t.Errorf("expected £ symbol, got %q", s.CurrencySymbol)
	}
}

func TestSummarizeDurations(t *testing.T) {
	stations := newTestStations(t)
	negStart := testStart.UnixMilli()
	negEnd := testStart.Add(-5 * time.Minute).UnixMilli()
	rides := []models.Ride{
		newTestRide(t, "Station A", "Station B", testStart, 10*time.Minute),
		newTestRide(t, "Station B", "Station A", testStart.Add(time.Hour), 20*time.Minute),
		{StartAddress: strPtr("Station A")}, // no timestamps
		{StartTimeMs: &negStart, EndTimeMs: &negEnd}, // negative interval
	}

	s := Summarize(rides, stations, time.Now())
	if s.TotalRides != 4 {
		t.Errorf("expected 4 total rides, got %d", s.TotalRides)
	}
	if s.AvgDurationMin == nil || *s.AvgDurationMin != 15 {
		t.Errorf("expected average 15, got %v", s.AvgDurationMin)
	}
	if s.MinDurationMin == nil || *s.MinDurationMin != 10 {
		t.Errorf("expected min 10, got %v", s.MinDurationMin)
	}
	if s.MaxDurationMin == nil || *s.MaxDurationMin != 20 {
		t.Errorf("expected max 20, got %v", s.MaxDurationMin)
	}
	if s.TotalTimeCyclingMin != 30 {
		t.Errorf("expected 30 minutes cycling, got %d", s.TotalTimeCyclingMin)
	}
}

func TestSummarizeNoQualifyingDurations(t *testing.T) {
	s := Summarize([]models.Ride{{}, {}}, newTestStations(t), time.Now())
	if s.AvgDurationMin != nil || s.MinDurationMin != nil || s.MaxDurationMin != nil {
		t.Errorf("expected nil duration stats, got %+v", s)
	}
	if s.EarliestRideMs != nil || s.DaysAgo != nil {
		t.Error("expected nil earliest ride for rides without timestamps")
	}
}

func TestSummarizeStreakAndBreak(t *testing.T) {
	stations := newTestStations(t)
	day := func(offset int) time.Time {
		return time.Date(2025, time.March, 10+offset, 9, 0, 0, 0, time.Local)
	}
	rides := []models.Ride{
		newTestRide(t, "Station A", "Station B", day(0), 10*time.Minute),
		newTestRide(t, "Station B", "Station A", day(1), 10*time.Minute),
		// Two rides on the same day extend nothing.
		newTestRide(t, "Station A", "Station C", day(1), 12*time.Minute),
		// Three days later: gap of 2 whole days in between.
		newTestRide(t, "Station C", "Station A", day(4), 10*time.Minute),
	}

	s := Summarize(rides, stations, day(5))
	if s.LongestStreakDays != 2 {
		t.Errorf("expected streak of 2, got %d", s.LongestStreakDays)
	}
	if s.LongestBreakDays == nil || *s.LongestBreakDays != 2 {
		t.Errorf("expected break of 2 days, got %v", s.LongestBreakDays)
	}
	if s.DaysAgo == nil || *s.DaysAgo != 5 {
		t.Errorf("expected earliest ride 5 days ago, got %v", s.DaysAgo)
	}
	if s.MostRidesInDay == nil || s.MostRidesInDay.Count != 2 || s.MostRidesInDay.Date != "2025-03-11" {
		t.Errorf("unexpected most rides in day: %+v", s.MostRidesInDay)
	}
	if s.BusiestMonth == nil || s.BusiestMonth.Month != "Mar 2025" || s.BusiestMonth.Count != 4 {
		t.Errorf("unexpected busiest month: %+v", s.BusiestMonth)
	}
}

func TestSummarizeSingleIsolatedDayStreak(t *testing.T) {
	stations := newTestStations(t)
	rides := []models.Ride{
		newTestRide(t, "Station A", "Station B", testStart, 10*time.Minute),
	}

	s := Summarize(rides, stations, testStart)
	if s.LongestStreakDays != 1 {
		t.Errorf("expected streak of 1 for a single day, got %d", s.LongestStreakDays)
	}
	if s.LongestBreakDays != nil {
		t.Errorf("expected nil break with one distinct ride-date, got %v", s.LongestBreakDays)
	}
}

func TestSummarizeStationsAndDistance(t *testing.T) {
	stations := newTestStations(t)
	rides := []models.Ride{
		newTestRide(t, "Station A", "Station B", testStart, 10*time.Minute),
		newTestRide(t, "Station A", "Station C", testStart.Add(time.Hour), 20*time.Minute),
		newTestRide(t, "Station A", "Somewhere Unknown", testStart.Add(2*time.Hour), 5*time.Minute),
	}

	s := Summarize(rides, stations, testStart)
	if s.StationsVisited != 3 {
		t.Errorf("expected 3 distinct stations visited, got %d", s.StationsVisited)
	}
	if s.TotalStations != 3 {
		t.Errorf("expected directory size 3, got %d", s.TotalStations)
	}
	if s.FavouriteStation == nil || s.FavouriteStation.StationID != "1" {
		t.Errorf("expected Station A as favourite, got %+v", s.FavouriteStation)
	}
	if s.FavouriteStation != nil && s.FavouriteStation.Visits != 3 {
		t.Errorf("expected 3 visits to Station A, got %d", s.FavouriteStation.Visits)
	}

	// Only the two fully resolvable rides add distance.
	if s.TotalDistanceKm < 4.0 || s.TotalDistanceKm > 6.0 {
		t.Errorf("unexpected total distance: %f", s.TotalDistanceKm)
	}
	if s.LongestRide == nil {
		t.Fatal("expected a longest ride")
	}
	if s.LongestRide.DistanceKm < 3.0 {
		t.Errorf("expected the A->C ride to be longest, got %f km", s.LongestRide.DistanceKm)
	}
}

func TestSummarizeFastestJourney(t *testing.T) {
	stations := append(newTestStations(t), models.Station{
		ID: "4", Name: "Station D", TerminalName: "001004", Lat: 51.503, Long: -0.1,
	})
	rides := []models.Ride{
		// ~0.33 km in 1 minute: absurd speed, excluded by the 1 km floor.
		newTestRide(t, "Station A", "Station D", testStart, time.Minute),
		// ~1.2 km in 6 minutes: ~12 km/h.
		newTestRide(t, "Station A", "Station B", testStart.Add(time.Hour), 6*time.Minute),
		// ~1.2 km in 10 minutes: slower.
		newTestRide(t, "Station A", "Station B", testStart.Add(2*time.Hour), 10*time.Minute),
	}

	s := Summarize(rides, stations, testStart)
	if s.FastestJourney == nil {
		t.Fatal("expected a fastest journey")
	}
	if s.FastestJourney.DurationMinutes != 6 {
		t.Errorf("expected the 6-minute ride to win, got %+v", s.FastestJourney)
	}
	if s.FastestJourney.SpeedKmh < 10 || s.FastestJourney.SpeedKmh > 15 {
		t.Errorf("unexpected speed: %f", s.FastestJourney.SpeedKmh)
	}
}

func TestSummarizeEBikeTrips(t *testing.T) {
	stations := newTestStations(t)
	rides := []models.Ride{
		{PriceBreakdown: []models.PriceLine{{Title: "E-bike surcharge", Amount: "£1.00"}}},
		{PriceBreakdown: []models.PriceLine{{Title: "Electric bike hire", Amount: "£1.00"}}},
		{PriceBreakdown: []models.PriceLine{
			{Title: "eBike day rate", Amount: "£3.00"},
			{Title: "eBike evening rate", Amount: "£1.00"}, // same ride counts once
		}},
		{PriceBreakdown: []models.PriceLine{{Title: "Standard hire", Amount: "£1.65"}}},
		{},
	}

	s := Summarize(rides, stations, time.Now())
	if s.EBikeTrips != 3 {
		t.Errorf("expected 3 e-bike trips, got %d", s.EBikeTrips)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	stations := newTestStations(t)
	rides := []models.Ride{
		newTestRide(t, "Station A", "Station B", testStart, 10*time.Minute),
		newTestRide(t, "Station B", "Station C", testStart.Add(time.Hour), 8*time.Minute),
	}
	now := testStart.Add(48 * time.Hour)

	first := Summarize(rides, stations, now)
	second := Summarize(rides, stations, now)
	if first.TotalDistanceKm != second.TotalDistanceKm ||
		first.StationsVisited != second.StationsVisited ||
		first.LongestStreakDays != second.LongestStreakDays {
		t.Error("recomputation from unchanged inputs differs")
	}
}
