// Package stats derives route, station and summary statistics from the
// raw ride list and the station directory. Every function here is pure:
// it takes snapshots in and returns fresh values out, so callers can
// recompute from scratch whenever either input changes.
package stats

import (
	"math"

	"cycleledger.app/internal/geo"
	"cycleledger.app/internal/models"
	"cycleledger.app/internal/resolver"
)

type routeKey struct {
	start string
	end   string
}

// AggregateRoutes groups rides by their resolved directed station pair.
// A ride whose start or end address fails to resolve is skipped
// entirely. A->B and B->A are distinct routes. The result is unordered;
// sorting is the presentation layer's concern.
func AggregateRoutes(rides []models.Ride, stations []models.Station) []models.RouteStats {
	res := resolver.New(stations)
	byKey := make(map[routeKey]*models.RouteStats)
	var order []routeKey

	for i := range rides {
		start := res.Resolve(rides[i].StartAddress)
		end := res.Resolve(rides[i].EndAddress)
		if start == nil || end == nil {
			continue
		}

		key := routeKey{start: start.ID, end: end.ID}
		rs, seen := byKey[key]
		if !seen {
			rs = &models.RouteStats{
				StartStationID:   start.ID,
				EndStationID:     end.ID,
				StartStationName: start.Name,
				EndStationName:   end.Name,
				// Route-invariant, computed once per key.
				DistanceKm: geo.DistanceKm(start.Lat, start.Long, end.Lat, end.Long),
			}
			byKey[key] = rs
			order = append(order, key)
		}

		rs.Count++

		d, ok := rides[i].DurationMinutes()
		if !ok {
			// The ride still counts; duration fields keep whatever was
			// recorded before (nil if nothing yet).
			continue
		}

		if rs.AvgDurationMin == nil {
			avg, min, max := d, d, d
			rs.AvgDurationMin, rs.MinDurationMin, rs.MaxDurationMin = &avg, &min, &max
			continue
		}

		// Running mean, re-rounded after every update. This matches the
		// incremental recomputation the dashboard has always shown, which
		// drifts from a single final average when counts include
		// duration-less rides.
		avg := int(math.Round((float64(*rs.AvgDurationMin)*float64(rs.Count-1) + float64(d)) / float64(rs.Count)))
		*rs.AvgDurationMin = avg
		if d < *rs.MinDurationMin {
			*rs.MinDurationMin = d
		}
		if d > *rs.MaxDurationMin {
			*rs.MaxDurationMin = d
		}
	}

	out := make([]models.RouteStats, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	return out
}
