package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"

	"cycleledger.app/internal/models"
)

func gaugeValue(t *testing.T, g interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()

	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("failed to read metric: %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestReportDataset(t *testing.T) {
	stations := []models.Station{
		{ID: "1", Name: "Station A", Lat: 51.5, Long: -0.1},
		{ID: "2", Name: "Station B", Lat: 51.51, Long: -0.09},
	}

	startA := "Station A"
	endB := "Station B"
	nowhere := "Nowhere Meaningful"
	rides := []models.Ride{
		{StartAddress: &startA, EndAddress: &endB},
		{StartAddress: &startA, EndAddress: &nowhere},
		{}, // missing addresses are not "unresolved", just absent
	}

	ReportDataset(rides, stations)

	if got := gaugeValue(t, RidesLoaded); got != 3 {
		t.Errorf("RidesLoaded = %f, want 3", got)
	}
	if got := gaugeValue(t, StationsInDirectory); got != 2 {
		t.Errorf("StationsInDirectory = %f, want 2", got)
	}
	if got := gaugeValue(t, UnresolvedEndpoints); got != 1 {
		t.Errorf("UnresolvedEndpoints = %f, want 1", got)
	}
}
