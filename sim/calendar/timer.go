package calendar

import (
	"fmt"
	"time"
)

// Timer drives the calendar: a fixed start/end date period, a current date
// that advances one day at a time, and an optional debug pause date. Mirrors
// original_source's Timer.java: setDatePeriod may be called exactly once,
// reset returns to the start date, dateStep clamps at the end date and sets
// the terminate flag once the end date is passed.
type Timer struct {
	start, end    time.Time
	cur           time.Time
	datePeriodSet bool
	terminated    bool

	pauseDate    time.Time
	pauseDateSet bool
}

// NewTimer returns a Timer with no date period set yet.
func NewTimer() *Timer {
	return &Timer{}
}

// SetDatePeriod fixes the simulation's start and end dates. May be called
// exactly once per Timer instance; end must not precede start.
func (t *Timer) SetDatePeriod(start, end time.Time) {
	if t.datePeriodSet {
		panic("calendar.Timer.SetDatePeriod : cannot set date period twice")
	}
	start, end = dateOnly(start), dateOnly(end)
	if end.Before(start) {
		panic(fmt.Sprintf("calendar.Timer.SetDatePeriod : end date (%s) precedes start date (%s)", end, start))
	}
	t.start, t.end = start, end
	t.datePeriodSet = true
	t.cur = start
	t.terminated = false
}

// SetPauseDate installs an optional debug pause date. Has no effect on
// simulation semantics; PauseNow only reports whether curDate has reached it.
func (t *Timer) SetPauseDate(pause time.Time) {
	t.checkDatePeriodSet("SetPauseDate")
	t.pauseDate = dateOnly(pause)
	t.pauseDateSet = true
}

// Reset returns the current date to the start date and clears termination.
func (t *Timer) Reset() {
	t.checkDatePeriodSet("Reset")
	t.cur = t.start
	t.terminated = false
}

func (t *Timer) checkDatePeriodSet(methodName string) {
	if !t.datePeriodSet {
		panic(fmt.Sprintf("calendar.Timer.%s : date period has not been set yet", methodName))
	}
}

// StartDate returns the fixed start date.
func (t *Timer) StartDate() time.Time {
	t.checkDatePeriodSet("StartDate")
	return t.start
}

// EndDate returns the fixed end date.
func (t *Timer) EndDate() time.Time {
	t.checkDatePeriodSet("EndDate")
	return t.end
}

// Date returns the current date.
func (t *Timer) Date() time.Time {
	t.checkDatePeriodSet("Date")
	return t.cur
}

// Year returns the calendar year of the current date.
func (t *Timer) Year() int {
	t.checkDatePeriodSet("Year")
	return t.cur.Year()
}

// Month returns the calendar month (1-12) of the current date.
func (t *Timer) Month() int {
	t.checkDatePeriodSet("Month")
	return int(t.cur.Month())
}

// DayInMonth returns the day of month (1-31) of the current date.
func (t *Timer) DayInMonth() int {
	t.checkDatePeriodSet("DayInMonth")
	return t.cur.Day()
}

// DayInYear returns the day of year (1-366) of the current date.
func (t *Timer) DayInYear() int {
	t.checkDatePeriodSet("DayInYear")
	return t.cur.YearDay()
}

// Duration returns the inclusive day count of the whole period (end - start).
func (t *Timer) Duration() int {
	t.checkDatePeriodSet("Duration")
	return DiffDays(t.start, t.end)
}

// Elapsed returns the number of days since the start date.
func (t *Timer) Elapsed() int {
	t.checkDatePeriodSet("Elapsed")
	return DiffDays(t.start, t.cur)
}

// IsOnStartDate reports whether the current date equals the start date.
func (t *Timer) IsOnStartDate() bool {
	t.checkDatePeriodSet("IsOnStartDate")
	return t.cur.Equal(t.start)
}

// IsOnEndDate reports whether the current date equals the end date.
func (t *Timer) IsOnEndDate() bool {
	t.checkDatePeriodSet("IsOnEndDate")
	return t.cur.Equal(t.end)
}

// DateStep advances the current date by exactly one day. If that step would
// pass the end date, the current date clamps at end and Terminate() becomes
// true from then on.
func (t *Timer) DateStep() {
	t.checkDatePeriodSet("DateStep")
	next := t.cur.AddDate(0, 0, 1)
	if next.After(t.end) {
		t.cur = t.end
		t.terminated = true
		return
	}
	t.cur = next
}

// Terminate reports whether the timer has stepped past the end date.
func (t *Timer) Terminate() bool {
	return t.terminated
}

// PauseNow reports whether the current date has reached the configured pause
// date. Always false if no pause date was set. Debug hook only; has no
// semantic effect on the simulation.
func (t *Timer) PauseNow() bool {
	if !t.pauseDateSet {
		return false
	}
	return !t.cur.Before(t.pauseDate)
}

func (t *Timer) String() string {
	return fmt.Sprintf("Timer{start=%s, cur=%s, end=%s}", t.start.Format("2006-01-02"), t.cur.Format("2006-01-02"), t.end.Format("2006-01-02"))
}
