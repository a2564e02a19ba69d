package metrics

import (
	"cycleledger.app/internal/models"
	"cycleledger.app/internal/resolver"
)

// ReportDataset refreshes the dataset gauges after the ride set or the
// station directory changes.
func ReportDataset(rides []models.Ride, stations []models.Station) {
	RidesLoaded.Set(float64(len(rides)))
	StationsInDirectory.Set(float64(len(stations)))
	UnresolvedEndpoints.Set(float64(countUnresolved(rides, stations)))
}

func countUnresolved(rides []models.Ride, stations []models.Station) int {
	res := resolver.New(stations)
	unresolved := 0
	for i := range rides {
		for _, addr := range [2]*string{rides[i].StartAddress, rides[i].EndAddress} {
			if addr == nil {
				continue
			}
			if res.Resolve(addr) == nil {
				unresolved++
			}
		}
	}
	return unresolved
}
