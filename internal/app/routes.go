package app

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"

	"cycleledger.app/internal/middleware"
	"cycleledger.app/internal/report"
)

// Routes registers the dashboard API and returns the wrapped handler.
// The context bounds the cached metrics handler's refresh goroutine.
func (app *Application) Routes(ctx context.Context) http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/v1/summary", app.summaryHandler)
	router.HandlerFunc(http.MethodGet, "/v1/routes", app.routesHandler)
	router.HandlerFunc(http.MethodGet, "/v1/stations", app.stationsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/histogram/duration", app.durationHistogramHandler)
	router.HandlerFunc(http.MethodGet, "/v1/histogram/timeofday", app.timeOfDayHistogramHandler)
	router.HandlerFunc(http.MethodGet, "/v1/histogram/calendar", app.calendarHistogramHandler)
	router.HandlerFunc(http.MethodGet, "/v1/overlay", app.overlayHandler)
	router.HandlerFunc(http.MethodGet, "/v1/rides", app.ridesHandler)
	router.HandlerFunc(http.MethodPost, "/v1/rides", app.importRidesHandler)
	router.HandlerFunc(http.MethodPost, "/v1/stations/refresh", app.refreshStationsHandler)

	router.Handler(http.MethodGet, "/metrics", middleware.NewCachedPromHandler(ctx, prometheus.DefaultGatherer, 10*time.Second))

	var handler http.Handler = router
	if report.Enabled() {
		handler = middleware.SentryMiddleware(handler)
	}
	return middleware.SecurityHeaders(handler)
}
