package histogram

import (
	"fmt"
	"time"

	"cycleledger.app/internal/models"
)

// Duration bins ride durations (whole seconds) at the given bucket
// width. Rides missing either timestamp are excluded. The first bin is
// anchored at the minimum observed duration, not at zero.
func Duration(rides []models.Ride, width time.Duration) (models.Histogram, bool) {
	secs := int64(width / time.Second)
	if secs <= 0 {
		return models.Histogram{}, false
	}

	var values []int64
	for i := range rides {
		if d, ok := rides[i].DurationSeconds(); ok {
			values = append(values, d)
		}
	}

	return Bucketize(values, Axis{
		Align: func(min int64) int64 { return min },
		Next:  func(start int64) int64 { return start + secs },
		Label: func(start int64) string {
			return fmtSeconds(start) + " - " + fmtSeconds(start+secs-1)
		},
	})
}

// fmtSeconds renders a duration in seconds as m:ss.
func fmtSeconds(s int64) string {
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
