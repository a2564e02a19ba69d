package geo

import (
	"math"
	"testing"

	"cycleledger.app/internal/models"
)

func TestDistanceKm(t *testing.T) {
	t.Run("symmetry", func(t *testing.T) {
		a := DistanceKm(51.5, -0.1, 51.51, -0.09)
		b := DistanceKm(51.51, -0.09, 51.5, -0.1)
		if a != b {
			t.Errorf("distance not symmetric: %f vs %f", a, b)
		}
	})

	t.Run("identical points", func(t *testing.T) {
		if d := DistanceKm(51.5, -0.1, 51.5, -0.1); d != 0 {
			t.Errorf("expected 0 for identical points, got %f", d)
		}
	})

	t.Run("known short hop", func(t *testing.T) {
		// Roughly 1.2 km across central London.
		d := DistanceKm(51.5, -0.1, 51.51, -0.09)
		if d < 1.1 || d > 1.4 {
			t.Errorf("expected roughly 1.2 km, got %f", d)
		}
	})

	t.Run("long distance", func(t *testing.T) {
		// London to Paris is about 344 km.
		d := DistanceKm(51.5074, -0.1278, 48.8566, 2.3522)
		if math.Abs(d-344) > 5 {
			t.Errorf("expected about 344 km, got %f", d)
		}
	})
}

func TestComputeBoundingBox(t *testing.T) {
	stations := []models.Station{
		{ID: "1", Lat: 51.50, Long: -0.10},
		{ID: "2", Lat: 51.52, Long: -0.08},
		{ID: "3", Lat: 51.49, Long: -0.12},
		{ID: "4", Lat: 0, Long: 0}, // placeholder coordinate, skipped
	}

	bbox, err := ComputeBoundingBox(stations)
	if err != nil {
		t.Fatalf("ComputeBoundingBox failed: %v", err)
	}

	if bbox.MinLat != 51.49 || bbox.MaxLat != 51.52 {
		t.Errorf("unexpected latitude bounds: %+v", bbox)
	}
	if bbox.MinLon != -0.12 || bbox.MaxLon != -0.08 {
		t.Errorf("unexpected longitude bounds: %+v", bbox)
	}

	if !bbox.Contains(51.51, -0.09) {
		t.Error("expected point inside bounding box")
	}
	if bbox.Contains(52.0, -0.09) {
		t.Error("expected point outside bounding box")
	}

	t.Run("empty directory", func(t *testing.T) {
		if _, err := ComputeBoundingBox(nil); err == nil {
			t.Error("expected error for empty station list")
		}
	})

	t.Run("only placeholder coordinates", func(t *testing.T) {
		if _, err := ComputeBoundingBox([]models.Station{{Lat: 0, Long: 0}}); err == nil {
			t.Error("expected error when no station has a valid coordinate")
		}
	})
}

func TestIsValidLatLon(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"valid london", 51.5, -0.1, true},
		{"zero zero placeholder", 0, 0, false},
		{"latitude out of range", 91, 0.1, false},
		{"longitude out of range", 51.5, -181, false},
		{"boundary values", 90, 180, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidLatLon(tt.lat, tt.lon); got != tt.want {
				t.Errorf("IsValidLatLon(%f, %f) = %v, want %v", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}

func TestCellID(t *testing.T) {
	a := CellID(51.5, -0.1, 13)
	b := CellID(51.5000001, -0.1000001, 13) // ~1cm away, same cell
	if a != b {
		t.Errorf("expected adjacent points to share a cell, got %s and %s", a, b)
	}

	far := CellID(51.55, -0.2, 13)
	if a == far {
		t.Errorf("expected distant points in different cells, both got %s", a)
	}
}
