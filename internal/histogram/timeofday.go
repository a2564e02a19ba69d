package histogram

import (
	"fmt"
	"time"

	"cycleledger.app/internal/models"
)

// minutesPerDay is the fixed time-of-day domain: the axis always spans a
// complete day regardless of when the rides actually happened.
const minutesPerDay = 1440

// TimeOfDay bins ride start times, reduced to minutes since local
// midnight, at the given bucket width. The bins are a complete partition
// of the 24-hour day even when all rides cluster in one part of it.
func TimeOfDay(rides []models.Ride, width time.Duration) (models.Histogram, bool) {
	mins := int64(width / time.Minute)
	if mins <= 0 {
		return models.Histogram{}, false
	}

	var values []int64
	for i := range rides {
		if t, ok := rides[i].StartTime(); ok {
			values = append(values, int64(t.Hour()*60+t.Minute()))
		}
	}

	return Bucketize(values, Axis{
		Align: func(int64) int64 { return 0 },
		Next:  func(start int64) int64 { return start + mins },
		Label: func(start int64) string {
			end := start + mins - 1
			if end > minutesPerDay-1 {
				end = minutesPerDay - 1
			}
			return fmtMinuteOfDay(start) + " - " + fmtMinuteOfDay(end)
		},
		Domain: &DomainBounds{Min: 0, Max: minutesPerDay - 1},
	})
}

// fmtMinuteOfDay renders minutes since midnight as HH:MM.
func fmtMinuteOfDay(m int64) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
