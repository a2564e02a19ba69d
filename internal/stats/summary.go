package stats

import (
	"math"
	"sort"
	"time"

	"cycleledger.app/internal/geo"
	"cycleledger.app/internal/models"
	"cycleledger.app/internal/resolver"
)

// minSpeedDistanceKm excludes very short hops from the fastest-journey
// ranking; station-to-station distance under a kilometre amplifies
// rounding noise into absurd speeds.
const minSpeedDistanceKm = 1.0

type visitEntry struct {
	station *models.Station
	count   int
	order   int
}

// Summarize computes the aggregate record for the dashboard's headline
// panel in one pass over the ride set. now anchors the "days ago"
// calculation so the result is deterministic for a given input. Missing
// or malformed fields exclude a ride from the affected metric only;
// nothing here returns an error.
func Summarize(rides []models.Ride, stations []models.Station, now time.Time) models.SummaryStats {
	res := resolver.New(stations)
	s := models.SummaryStats{
		TotalRides:    len(rides),
		TotalStations: len(stations),
	}

	var (
		durSum, durCount int
		minDur, maxDur   int
		earliest         *int64

		visits     = make(map[string]*visitEntry)
		visitOrder []*visitEntry

		dayCounts   = make(map[string]int)
		dayOrder    []string
		monthCounts = make(map[string]int)
		monthOrder  []string
		rideDays    = make(map[int]bool)
	)

	for i := range rides {
		r := &rides[i]

		if d, ok := r.DurationMinutes(); ok {
			if durCount == 0 {
				minDur, maxDur = d, d
			} else {
				if d < minDur {
					minDur = d
				}
				if d > maxDur {
					maxDur = d
				}
			}
			durSum += d
			durCount++
			s.TotalTimeCyclingMin += d
		}

		if r.StartTimeMs != nil {
			if earliest == nil || *r.StartTimeMs < *earliest {
				earliest = r.StartTimeMs
			}
			t, _ := r.StartTime()
			rideDays[models.CivilDay(t)] = true

			dk := models.DateKey(t)
			if _, seen := dayCounts[dk]; !seen {
				dayOrder = append(dayOrder, dk)
			}
			dayCounts[dk]++

			mk := t.Format("Jan 2006")
			if _, seen := monthCounts[mk]; !seen {
				monthOrder = append(monthOrder, mk)
			}
			monthCounts[mk]++
		}

		if r.Price != nil {
			// Zero-priced rides are covered by a pass or allowance; they
			// are not money spent and do not count as paid rides.
			if sym, amount, ok := parsePrice(*r.Price); ok && amount != 0 {
				s.TotalSpent += amount
				s.PaidRides++
				if s.CurrencySymbol == "" {
					s.CurrencySymbol = sym
				}
			}
		}

		for _, line := range r.PriceBreakdown {
			if isEBikeLine(line.Title) {
				s.EBikeTrips++
				break
			}
		}

		start := res.Resolve(r.StartAddress)
		end := res.Resolve(r.EndAddress)
		for _, st := range [2]*models.Station{start, end} {
			if st == nil {
				continue
			}
			entry, seen := visits[st.ID]
			if !seen {
				entry = &visitEntry{station: st, order: len(visitOrder)}
				visits[st.ID] = entry
				visitOrder = append(visitOrder, entry)
			}
			entry.count++
		}

		if start == nil || end == nil {
			continue
		}

		dist := geo.DistanceKm(start.Lat, start.Long, end.Lat, end.Long)
		s.TotalDistanceKm += dist

		date := ""
		if t, ok := r.StartTime(); ok {
			date = models.DateKey(t)
		}

		if s.LongestRide == nil || dist > s.LongestRide.DistanceKm {
			s.LongestRide = &models.RideDistance{DistanceKm: dist, Date: date}
		}

		if d, ok := r.DurationMinutes(); ok && d > 0 && dist >= minSpeedDistanceKm {
			speed := dist / float64(d) * 60
			if s.FastestJourney == nil || speed > s.FastestJourney.SpeedKmh {
				s.FastestJourney = &models.SpeedRecord{
					SpeedKmh:        speed,
					DistanceKm:      dist,
					DurationMinutes: d,
					Date:            date,
				}
			}
		}
	}

	if durCount > 0 {
		avg := int(math.Round(float64(durSum) / float64(durCount)))
		s.AvgDurationMin, s.MinDurationMin, s.MaxDurationMin = &avg, &minDur, &maxDur
	}

	if earliest != nil {
		s.EarliestRideMs = earliest
		daysAgo := models.CivilDay(now) - models.CivilDay(time.UnixMilli(*earliest))
		s.DaysAgo = &daysAgo
	}

	s.StationsVisited = len(visits)

	// Ties go to the first station reaching the maximum, in ride
	// iteration order.
	var favourite *visitEntry
	for _, entry := range visitOrder {
		if favourite == nil || entry.count > favourite.count {
			favourite = entry
		}
	}
	if favourite != nil {
		s.FavouriteStation = &models.StationVisit{
			StationID: favourite.station.ID,
			Name:      favourite.station.Name,
			Visits:    favourite.count,
		}
	}

	for _, dk := range dayOrder {
		if s.MostRidesInDay == nil || dayCounts[dk] > s.MostRidesInDay.Count {
			s.MostRidesInDay = &models.DayCount{Date: dk, Count: dayCounts[dk]}
		}
	}

	for _, mk := range monthOrder {
		if s.BusiestMonth == nil || monthCounts[mk] > s.BusiestMonth.Count {
			s.BusiestMonth = &models.MonthCount{Month: mk, Count: monthCounts[mk]}
		}
	}

	s.LongestStreakDays, s.LongestBreakDays = streakAndBreak(rideDays)

	return s
}

// streakAndBreak walks the sorted distinct ride-days and returns the
// longest run of consecutive days with rides, plus the longest gap in
// whole days strictly between two adjacent ride-days (nil with fewer
// than two distinct days).
func streakAndBreak(rideDays map[int]bool) (int, *int) {
	if len(rideDays) == 0 {
		return 0, nil
	}

	days := make([]int, 0, len(rideDays))
	for d := range rideDays {
		days = append(days, d)
	}
	sort.Ints(days)

	streak, longestStreak := 1, 1
	var longestBreak *int
	for i := 1; i < len(days); i++ {
		gap := days[i] - days[i-1]
		if gap == 1 {
			streak++
			if streak > longestStreak {
				longestStreak = streak
			}
		} else {
			streak = 1
		}
		between := gap - 1
		if longestBreak == nil || between > *longestBreak {
			longestBreak = &between
		}
	}

	return longestStreak, longestBreak
}
