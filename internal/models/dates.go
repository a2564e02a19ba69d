package models

import "time"

// CivilDay returns the number of whole days between t's local calendar
// date and 1970-01-01. Streak, break and 3-day-bucket arithmetic all
// work on these day numbers. Using UTC noon of the local date sidesteps
// DST offset changes.
func CivilDay(t time.Time) int {
	y, m, d := t.Date()
	noon := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	return int(noon.Unix() / 86400)
}

// DateKey renders t's local calendar date as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
