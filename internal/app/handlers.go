package app

import (
	"encoding/json"
	"net/http"
	"time"

	"cycleledger.app/internal/histogram"
	"cycleledger.app/internal/metrics"
	"cycleledger.app/internal/models"
	"cycleledger.app/internal/overlay"
	"cycleledger.app/internal/report"
	"cycleledger.app/internal/ridestore"
	"cycleledger.app/internal/stats"
)

// HealthStatus describes the response of the healthcheck endpoint.
type HealthStatus struct {
	Status          string `json:"status"`
	Environment     string `json:"environment"`
	Version         string `json:"version"`
	Rides           int    `json:"rides"`
	Stations        int    `json:"stations"`
	StationsUpdated string `json:"stationsUpdated,omitempty"`
}

// histogramResponse wraps a histogram with an explicit no-data flag so
// the dashboard can distinguish "no qualifying rides" from an all-zero
// distribution.
type histogramResponse struct {
	models.Histogram
	NoData bool `json:"noData"`
}

func (app *Application) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.Logger.Error("failed to encode response", "error", err)
	}
}

func (app *Application) errorResponse(w http.ResponseWriter, status int, message string) {
	app.writeJSON(w, status, map[string]string{"error": message})
}

func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	rides, stations := app.Snapshot()

	status := HealthStatus{
		Status:      "available",
		Environment: app.Config.Env,
		Version:     app.Version,
		Rides:       len(rides),
		Stations:    len(stations),
	}
	if updated := app.StationsUpdated(); !updated.IsZero() {
		status.StationsUpdated = updated.UTC().Format(time.RFC3339)
	}

	app.writeJSON(w, http.StatusOK, status)
}

func (app *Application) summaryHandler(w http.ResponseWriter, r *http.Request) {
	rides, stations := app.Snapshot()
	app.writeJSON(w, http.StatusOK, stats.Summarize(rides, stations, time.Now()))
}

func (app *Application) routesHandler(w http.ResponseWriter, r *http.Request) {
	rides, stations := app.Snapshot()
	routes := stats.AggregateRoutes(rides, stations)
	if routes == nil {
		routes = []models.RouteStats{}
	}
	app.writeJSON(w, http.StatusOK, routes)
}

func (app *Application) stationsHandler(w http.ResponseWriter, r *http.Request) {
	rides, stations := app.Snapshot()
	out := stats.AggregateStations(rides, stations)
	if out == nil {
		out = []models.StationStats{}
	}
	app.writeJSON(w, http.StatusOK, out)
}

func (app *Application) durationHistogramHandler(w http.ResponseWriter, r *http.Request) {
	width := r.URL.Query().Get("width")
	if width == "" {
		width = "1m"
	}
	d, err := time.ParseDuration(width)
	if err != nil || d <= 0 {
		app.errorResponse(w, http.StatusBadRequest, "width must be a positive duration such as 30s or 1m")
		return
	}

	h, ok := histogram.Duration(app.Rides(), d)
	app.writeJSON(w, http.StatusOK, histogramResponse{Histogram: h, NoData: !ok})
}

func (app *Application) timeOfDayHistogramHandler(w http.ResponseWriter, r *http.Request) {
	width := r.URL.Query().Get("width")
	if width == "" {
		width = "1h"
	}
	d, err := time.ParseDuration(width)
	if err != nil || d <= 0 {
		app.errorResponse(w, http.StatusBadRequest, "width must be a positive duration such as 15m or 1h")
		return
	}

	h, ok := histogram.TimeOfDay(app.Rides(), d)
	app.writeJSON(w, http.StatusOK, histogramResponse{Histogram: h, NoData: !ok})
}

func (app *Application) calendarHistogramHandler(w http.ResponseWriter, r *http.Request) {
	width := r.URL.Query().Get("width")
	if width == "" {
		width = string(histogram.Month)
	}
	cw, err := histogram.ParseCalendarWidth(width)
	if err != nil {
		app.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	h, ok := histogram.Calendar(app.Rides(), cw)
	app.writeJSON(w, http.StatusOK, histogramResponse{Histogram: h, NoData: !ok})
}

func (app *Application) overlayHandler(w http.ResponseWriter, r *http.Request) {
	rides, stations := app.Snapshot()
	app.writeJSON(w, http.StatusOK, overlay.Build(rides, stations))
}

func (app *Application) ridesHandler(w http.ResponseWriter, r *http.Request) {
	rides := app.Rides()
	if rides == nil {
		rides = []models.Ride{}
	}
	app.writeJSON(w, http.StatusOK, rides)
}

func (app *Application) importRidesHandler(w http.ResponseWriter, r *http.Request) {
	var imported []models.Ride
	if err := json.NewDecoder(r.Body).Decode(&imported); err != nil {
		metrics.RideImports.WithLabelValues("rejected").Inc()
		app.errorResponse(w, http.StatusBadRequest, "request body must be a JSON array of rides")
		return
	}

	if err := ridestore.ValidateRides(imported); err != nil {
		metrics.RideImports.WithLabelValues("rejected").Inc()
		app.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	merged := ridestore.Merge(app.Rides(), imported)
	if err := app.Store.Save(merged); err != nil {
		metrics.RideImports.WithLabelValues("failed").Inc()
		report.ReportError(err)
		app.errorResponse(w, http.StatusInternalServerError, "failed to persist rides")
		return
	}
	app.SetRides(merged)
	metrics.RideImports.WithLabelValues("accepted").Inc()

	app.Logger.Info("imported rides", "imported", len(imported), "total", len(merged))
	app.writeJSON(w, http.StatusOK, map[string]int{"imported": len(imported), "total": len(merged)})
}

func (app *Application) refreshStationsHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.RefreshStations(r.Context()); err != nil {
		app.errorResponse(w, http.StatusBadGateway, "failed to refresh station directory")
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]int{"stations": len(app.Stations())})
}
