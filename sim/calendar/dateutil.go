package calendar

import (
	"fmt"
	"time"

	"github.com/robknapen/WISS-Framework/sim/rangecheck"
)

// DiffDays returns the number of days between from and to (to - from), both
// truncated to their calendar date (time-of-day is ignored).
func DiffDays(from, to time.Time) int {
	f := dateOnly(from)
	t := dateOnly(to)
	return int(t.Sub(f).Hours() / 24)
}

// DateForDayOfYear returns the calendar date for the given year and
// day-in-year (1-based), validating the day against the leap-year-aware
// upper bound (365 or 366).
func DateForDayOfYear(year, dayInYear int) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxDay := 365
	if isLeapYear(year) {
		maxDay = 366
	}
	if !rangecheck.InRangeInt(dayInYear, 1, maxDay) {
		panic(fmt.Sprintf("calendar.DateForDayOfYear : illegal day in year (day=%d, max=%d, leap=%v)", dayInYear, maxDay, isLeapYear(year)))
	}
	return jan1.AddDate(0, 0, dayInYear-1)
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
