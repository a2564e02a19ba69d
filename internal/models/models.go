package models

import (
	"math"
	"time"
)

// Ride is one completed rental as harvested from the operator's ride
// history. Every field except the breakdown list may be absent in the
// raw data, so optional fields are pointers; consumers must exclude a
// ride from any metric whose inputs are missing rather than defaulting
// to zero.
type Ride struct {
	RideID         *string        `json:"rideId" validate:"omitempty,min=1"`
	StartTimeMs    *int64         `json:"startTimeMs" validate:"omitempty,gte=0"`
	EndTimeMs      *int64         `json:"endTimeMs" validate:"omitempty,gte=0"`
	StartAddress   *string        `json:"startAddress"`
	EndAddress     *string        `json:"endAddress"`
	Price          *string        `json:"price" validate:"omitempty,pricestring"`
	PriceBreakdown []PriceLine    `json:"priceBreakdown,omitempty" validate:"omitempty,dive"`
	PaymentMethod  *PaymentMethod `json:"paymentMethod,omitempty"`
}

// PriceLine is a single line item of a ride's price breakdown.
type PriceLine struct {
	Title  string `json:"title" validate:"required"`
	Amount string `json:"amount"`
}

// PaymentMethod holds the card metadata the operator attaches to a ride.
type PaymentMethod struct {
	Scheme   string `json:"scheme,omitempty"`
	LastFour string `json:"lastFour,omitempty"`
}

// DurationMinutes returns the ride duration rounded to the nearest whole
// minute. ok is false when either timestamp is missing or the interval is
// negative; a negative interval must never crash downstream aggregation.
func (r *Ride) DurationMinutes() (int, bool) {
	ms, ok := r.durationMs()
	if !ok {
		return 0, false
	}
	return int(math.Round(float64(ms) / 60000.0)), true
}

// DurationSeconds returns the ride duration in whole seconds.
func (r *Ride) DurationSeconds() (int64, bool) {
	ms, ok := r.durationMs()
	if !ok {
		return 0, false
	}
	return ms / 1000, true
}

func (r *Ride) durationMs() (int64, bool) {
	if r.StartTimeMs == nil || r.EndTimeMs == nil {
		return 0, false
	}
	ms := *r.EndTimeMs - *r.StartTimeMs
	if ms < 0 {
		return 0, false
	}
	return ms, true
}

// StartTime returns the ride's start instant in local time.
func (r *Ride) StartTime() (time.Time, bool) {
	if r.StartTimeMs == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*r.StartTimeMs), true
}

// Station is one docking point from the operator's live directory feed.
// The XML tags follow the livecyclehireupdates schema, the JSON tags the
// shape the dashboard consumes.
type Station struct {
	ID           string  `xml:"id" json:"id"`
	Name         string  `xml:"name" json:"name"`
	TerminalName string  `xml:"terminalName" json:"terminalName"`
	Lat          float64 `xml:"lat" json:"lat"`
	Long         float64 `xml:"long" json:"long"`

	Installed   bool   `xml:"installed" json:"installed"`
	Locked      bool   `xml:"locked" json:"locked"`
	Temporary   bool   `xml:"temporary" json:"temporary"`
	InstallDate string `xml:"installDate" json:"installDate,omitempty"`
	RemovalDate string `xml:"removalDate" json:"removalDate,omitempty"`

	NbBikes         int `xml:"nbBikes" json:"nbBikes"`
	NbStandardBikes int `xml:"nbStandardBikes" json:"nbStandardBikes"`
	NbEBikes        int `xml:"nbEBikes" json:"nbEBikes"`
	NbEmptyDocks    int `xml:"nbEmptyDocks" json:"nbEmptyDocks"`
	NbDocks         int `xml:"nbDocks" json:"nbDocks"`
}

// RouteStats aggregates all rides sharing the same directed station pair.
// Duration fields stay nil until a ride with both timestamps is seen on
// the route.
type RouteStats struct {
	StartStationID   string  `json:"startStationId"`
	EndStationID     string  `json:"endStationId"`
	StartStationName string  `json:"startStationName"`
	EndStationName   string  `json:"endStationName"`
	Count            int     `json:"count"`
	AvgDurationMin   *int    `json:"avgDurationMinutes"`
	MinDurationMin   *int    `json:"minDurationMinutes"`
	MaxDurationMin   *int    `json:"maxDurationMinutes"`
	DistanceKm       float64 `json:"distanceKm"`
}

// StationStats counts resolved pickups and dropoffs for one station.
type StationStats struct {
	StationID string `json:"stationId"`
	Name      string `json:"name"`
	Pickups   int    `json:"pickups"`
	Dropoffs  int    `json:"dropoffs"`
	Total     int    `json:"total"`
	Net       int    `json:"net"`
}

// Histogram is an ordered, gap-free sequence of labeled bins.
type Histogram struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// StationVisit names a station together with its combined pickup+dropoff
// visit count.
type StationVisit struct {
	StationID string `json:"stationId"`
	Name      string `json:"name"`
	Visits    int    `json:"visits"`
}

// RideDistance is the longest resolvable ride: its station-to-station
// distance and the local calendar date it happened on.
type RideDistance struct {
	DistanceKm float64 `json:"distanceKm"`
	Date       string  `json:"date"`
}

// DayCount pairs a local calendar date with a ride count.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// MonthCount pairs a calendar month with a ride count.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// SpeedRecord describes the fastest qualifying journey.
type SpeedRecord struct {
	SpeedKmh        float64 `json:"speedKmh"`
	DistanceKm      float64 `json:"distanceKm"`
	DurationMinutes int     `json:"durationMinutes"`
	Date            string  `json:"date"`
}

// SummaryStats is the aggregate record the dashboard's headline panel
// renders. Nil fields mean no ride qualified for that metric.
type SummaryStats struct {
	TotalRides int `json:"totalRides"`

	AvgDurationMin *int `json:"avgDurationMinutes"`
	MinDurationMin *int `json:"minDurationMinutes"`
	MaxDurationMin *int `json:"maxDurationMinutes"`

	EarliestRideMs *int64 `json:"earliestRideMs"`
	DaysAgo        *int   `json:"daysAgo"`

	TotalSpent     float64 `json:"totalSpent"`
	PaidRides      int     `json:"paidRides"`
	CurrencySymbol string  `json:"currencySymbol,omitempty"`

	StationsVisited int `json:"stationsVisited"`
	TotalStations   int `json:"totalStations"`
	EBikeTrips      int `json:"eBikeTrips"`

	FavouriteStation *StationVisit `json:"favouriteStation"`
	LongestRide      *RideDistance `json:"longestRide"`
	MostRidesInDay   *DayCount     `json:"mostRidesInDay"`
	FastestJourney   *SpeedRecord  `json:"fastestJourney"`
	BusiestMonth     *MonthCount   `json:"busiestMonth"`

	TotalDistanceKm    float64 `json:"totalDistanceKm"`
	LongestStreakDays  int     `json:"longestStreakDays"`
	LongestBreakDays   *int    `json:"longestBreakDays"`
	TotalTimeCyclingMin int    `json:"totalTimeCyclingMinutes"`
}
