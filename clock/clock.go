// Package clock provides an injectable time source and the calendar helpers
// used for day and ISO-week windowing. All helpers operate in UTC.
package clock

import (
	"fmt"
	"time"
)

// DayLayout is the canonical calendar-day key format.
const DayLayout = "2006-01-02"

// Clock abstracts time.Now so services can be tested at fixed instants.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns the wall clock in UTC.
func System() Clock { return systemClock{} }

// Fixed is a Clock frozen at a single instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f).UTC() }

// DayStart truncates t to midnight UTC.
func DayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayKey formats the UTC calendar day of t.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// WeekStart returns the Monday 00:00 UTC of the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	day := DayStart(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekKey formats the ISO week of t as YYYY-Www.
func WeekKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// DaysInclusive counts calendar days from start to end, both included.
// It returns a value < 1 when end precedes start.
func DaysInclusive(start, end time.Time) int {
	return int(DayStart(end).Sub(DayStart(start)).Hours()/24) + 1
}
