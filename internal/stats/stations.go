package stats

import (
	"cycleledger.app/internal/models"
	"cycleledger.app/internal/resolver"
)

// AggregateStations counts resolved pickups and dropoffs per station.
// The result covers the entire directory, zero-activity stations
// included; the caller decides whether to display them. Each ride's two
// endpoints resolve independently, so a round trip from and to the same
// station increments both its pickups and its dropoffs.
func AggregateStations(rides []models.Ride, stations []models.Station) []models.StationStats {
	res := resolver.New(stations)
	byID := make(map[string]*models.StationStats, len(stations))

	out := make([]models.StationStats, len(stations))
	for i := range stations {
		out[i] = models.StationStats{StationID: stations[i].ID, Name: stations[i].Name}
		byID[stations[i].ID] = &out[i]
	}

	for i := range rides {
		if start := res.Resolve(rides[i].StartAddress); start != nil {
			if ss := byID[start.ID]; ss != nil {
				ss.Pickups++
				ss.Total++
				ss.Net++
			}
		}
		if end := res.Resolve(rides[i].EndAddress); end != nil {
			if ss := byID[end.ID]; ss != nil {
				ss.Dropoffs++
				ss.Total++
				ss.Net--
			}
		}
	}

	return out
}
