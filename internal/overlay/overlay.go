// Package overlay builds the map-ready structures the dashboard's map
// widgets render: encoded route lines, station markers, zoomed-out
// marker clusters and the initial viewport.
package overlay

import (
	"github.com/twpayne/go-polyline"

	"cycleledger.app/internal/geo"
	"cycleledger.app/internal/models"
	"cycleledger.app/internal/stats"
)

// clusterLevel is the S2 cell level used to merge nearby station
// markers when the map is zoomed out.
const clusterLevel = 13

// RouteLine is one travelled route as a map polyline.
type RouteLine struct {
	StartStationID string  `json:"startStationId"`
	EndStationID   string  `json:"endStationId"`
	Polyline       string  `json:"polyline"`
	Count          int     `json:"count"`
	DistanceKm     float64 `json:"distanceKm"`
}

// Marker is one station pin with its activity counts.
type Marker struct {
	StationID string  `json:"stationId"`
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Long      float64 `json:"long"`
	Pickups   int     `json:"pickups"`
	Dropoffs  int     `json:"dropoffs"`
}

// Cluster groups nearby stations under one S2 cell for coarse zoom
// levels. Lat/Long is the centroid of the member stations.
type Cluster struct {
	CellID   string  `json:"cellId"`
	Lat      float64 `json:"lat"`
	Long     float64 `json:"long"`
	Stations int     `json:"stations"`
}

// Overlay is the complete map layer payload.
type Overlay struct {
	Routes   []RouteLine      `json:"routes"`
	Markers  []Marker         `json:"markers"`
	Clusters []Cluster        `json:"clusters"`
	Viewport *geo.BoundingBox `json:"viewport,omitempty"`
}

// Build derives the map layer from the ride set and station directory.
// Like the rest of the engine it is pure and recomputed in full on every
// change.
func Build(rides []models.Ride, stations []models.Station) Overlay {
	byID := make(map[string]*models.Station, len(stations))
	for i := range stations {
		byID[stations[i].ID] = &stations[i]
	}

	var out Overlay

	for _, rt := range stats.AggregateRoutes(rides, stations) {
		start, end := byID[rt.StartStationID], byID[rt.EndStationID]
		if start == nil || end == nil {
			continue
		}
		line := polyline.EncodeCoords([][]float64{
			{start.Lat, start.Long},
			{end.Lat, end.Long},
		})
		out.Routes = append(out.Routes, RouteLine{
			StartStationID: rt.StartStationID,
			EndStationID:   rt.EndStationID,
			Polyline:       string(line),
			Count:          rt.Count,
			DistanceKm:     rt.DistanceKm,
		})
	}

	for _, ss := range stats.AggregateStations(rides, stations) {
		st := byID[ss.StationID]
		if st == nil || !geo.IsValidLatLon(st.Lat, st.Long) {
			continue
		}
		out.Markers = append(out.Markers, Marker{
			StationID: ss.StationID,
			Name:      ss.Name,
			Lat:       st.Lat,
			Long:      st.Long,
			Pickups:   ss.Pickups,
			Dropoffs:  ss.Dropoffs,
		})
	}

	out.Clusters = clusterStations(stations)

	if bbox, err := geo.ComputeBoundingBox(stations); err == nil {
		out.Viewport = &bbox
	}

	return out
}

func clusterStations(stations []models.Station) []Cluster {
	sums := make(map[string]*Cluster)
	var order []string

	for i := range stations {
		st := &stations[i]
		if !geo.IsValidLatLon(st.Lat, st.Long) {
			continue
		}
		id := geo.CellID(st.Lat, st.Long, clusterLevel)
		c, seen := sums[id]
		if !seen {
			c = &Cluster{CellID: id}
			sums[id] = c
			order = append(order, id)
		}
		// Accumulate; divided into a centroid below.
		c.Lat += st.Lat
		c.Long += st.Long
		c.Stations++
	}

	out := make([]Cluster, 0, len(order))
	for _, id := range order {
		c := sums[id]
		c.Lat /= float64(c.Stations)
		c.Long /= float64(c.Stations)
		out = append(out, *c)
	}
	return out
}
