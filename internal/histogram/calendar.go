package histogram

import (
	"fmt"
	"time"

	"cycleledger.app/internal/models"
)

// CalendarWidth selects the bucket size of the calendar axis.
type CalendarWidth string

const (
	Day      CalendarWidth = "day"
	ThreeDay CalendarWidth = "3day"
	Week     CalendarWidth = "week"
	Month    CalendarWidth = "month"
	Quarter  CalendarWidth = "quarter"
	HalfYear CalendarWidth = "half"
	Year     CalendarWidth = "year"
)

// ParseCalendarWidth validates a width string from the API surface.
func ParseCalendarWidth(s string) (CalendarWidth, error) {
	switch w := CalendarWidth(s); w {
	case Day, ThreeDay, Week, Month, Quarter, HalfYear, Year:
		return w, nil
	}
	return "", fmt.Errorf("unsupported calendar width %q", s)
}

// Calendar bins ride start timestamps into calendar buckets, spanning
// from the earliest ride's bucket to the latest ride's bucket inclusive,
// with every intermediate empty bucket generated. The 3-day width aligns
// to fixed epoch-day boundaries rather than day-of-month; weeks start on
// Monday.
func Calendar(rides []models.Ride, width CalendarWidth) (models.Histogram, bool) {
	var values []int64
	for i := range rides {
		if rides[i].StartTimeMs != nil {
			values = append(values, *rides[i].StartTimeMs)
		}
	}

	axis, ok := calendarAxis(width)
	if !ok {
		return models.Histogram{}, false
	}
	return Bucketize(values, axis)
}

func calendarAxis(width CalendarWidth) (Axis, bool) {
	switch width {
	case Day:
		return Axis{
			Align: alignTime(startOfDay),
			Next:  stepTime(0, 0, 1),
			Label: labelTime("02 Jan 2006"),
		}, true
	case ThreeDay:
		return Axis{
			Align: func(min int64) int64 {
				t := time.UnixMilli(min)
				dn := models.CivilDay(t)
				back := ((dn % 3) + 3) % 3
				return startOfDay(t).AddDate(0, 0, -back).UnixMilli()
			},
			Next: stepTime(0, 0, 3),
			Label: func(start int64) string {
				s := time.UnixMilli(start)
				e := s.AddDate(0, 0, 2)
				if s.Year() == e.Year() {
					return s.Format("02 Jan") + " - " + e.Format("02 Jan 2006")
				}
				return s.Format("02 Jan 2006") + " - " + e.Format("02 Jan 2006")
			},
		}, true
	case Week:
		return Axis{
			Align: alignTime(func(t time.Time) time.Time {
				// ISO weeks run Monday to Sunday.
				back := (int(t.Weekday()) + 6) % 7
				return startOfDay(t).AddDate(0, 0, -back)
			}),
			Next:  stepTime(0, 0, 7),
			Label: labelTime("Week of 02 Jan 2006"),
		}, true
	case Month:
		return Axis{
			Align: alignTime(startOfMonth(1)),
			Next:  stepTime(0, 1, 0),
			Label: labelTime("Jan 2006"),
		}, true
	case Quarter:
		return Axis{
			Align: alignTime(startOfMonth(3)),
			Next:  stepTime(0, 3, 0),
			Label: func(start int64) string {
				s := time.UnixMilli(start)
				return s.Format("Jan") + "-" + s.AddDate(0, 2, 0).Format("Jan 2006")
			},
		}, true
	case HalfYear:
		return Axis{
			Align: alignTime(startOfMonth(6)),
			Next:  stepTime(0, 6, 0),
			Label: func(start int64) string {
				s := time.UnixMilli(start)
				return s.Format("Jan") + "-" + s.AddDate(0, 5, 0).Format("Jan 2006")
			},
		}, true
	case Year:
		return Axis{
			Align: alignTime(func(t time.Time) time.Time {
				return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
			}),
			Next:  stepTime(1, 0, 0),
			Label: labelTime("2006"),
		}, true
	}
	return Axis{}, false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfMonth aligns to the first month of a span-month group (1 for
// months, 3 for quarters, 6 for half-years).
func startOfMonth(span int) func(time.Time) time.Time {
	return func(t time.Time) time.Time {
		m := int(t.Month())
		first := ((m-1)/span)*span + 1
		return time.Date(t.Year(), time.Month(first), 1, 0, 0, 0, 0, t.Location())
	}
}

func alignTime(f func(time.Time) time.Time) func(int64) int64 {
	return func(min int64) int64 {
		return f(time.UnixMilli(min)).UnixMilli()
	}
}

func stepTime(years, months, days int) func(int64) int64 {
	return func(start int64) int64 {
		return time.UnixMilli(start).AddDate(years, months, days).UnixMilli()
	}
}

func labelTime(layout string) func(int64) string {
	return func(start int64) string {
		return time.UnixMilli(start).Format(layout)
	}
}
