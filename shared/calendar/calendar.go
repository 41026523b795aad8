// Package calendar computes the month windows used by availability queries.
package calendar

import (
	"time"
)

// Window returns the half-open interval [start, end) covering the given
// month in now's location. A month before now's month is clamped to now's
// month instead of erroring, so calendar UIs scrolled into the past degrade
// to "show me now". Callers cannot query historical months.
func Window(year int, month time.Month, now time.Time) (time.Time, time.Time) {
	year, month = Clamp(year, month, now)

	start := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0)

	return start, end
}

// Clamp replaces a (year, month) pair that precedes now's month with now's
// (year, month).
func Clamp(year int, month time.Month, now time.Time) (int, time.Month) {
	if year < now.Year() {
		return now.Year(), now.Month()
	}

	if year == now.Year() && month < now.Month() {
		return now.Year(), now.Month()
	}

	return year, month
}
