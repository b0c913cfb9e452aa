// Package budget computes weekly spend metrics, alerts and the persisted
// usage state from a per-day cost series.
//
// Everything in this package is a pure function of its inputs: no I/O, no
// package-level state, and the current time is always passed in.
package budget

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used for every date string.
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// Config is the immutable budget configuration consumed by the engine.
type Config struct {
	Location       *time.Location
	WeeklyBudget   float64
	AlertThreshold float64
	ResetHour      int
}

// Weekday numbers days the ISO way: Monday=1 through Sunday=7.
type Weekday int

// Weekdays.
const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// WeekdayOf maps a time.Weekday onto the Monday-first numbering.
// It panics on a value outside time.Sunday..time.Saturday.
func WeekdayOf(d time.Weekday) Weekday {
	switch d {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	case time.Sunday:
		return Sunday
	}
	panic(fmt.Sprintf("budget: weekday %d out of range", int(d)))
}

// String returns the lowercase English day name.
func (d Weekday) String() string {
	switch d {
	case Monday:
		return "monday"
	case Tuesday:
		return "tuesday"
	case Wednesday:
		return "wednesday"
	case Thursday:
		return "thursday"
	case Friday:
		return "friday"
	case Saturday:
		return "saturday"
	case Sunday:
		return "sunday"
	default:
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
}

// Window is the set of calendar dates derived from a single "now".
// WeekStart is inclusive and WeekEnd exclusive.
type Window struct {
	Today        string
	Yesterday    string
	DayBefore    string
	ThreeDaysAgo string
	SevenDaysAgo string
	Tomorrow     string
	WeekStart    string
	WeekEnd      string
	Hour         int
	Weekday      Weekday
}

// ResolveWindow derives the date window for now in loc.
//
// Relative days are obtained by shifting the instant by whole 24h periods and
// formatting the result in loc, so they follow elapsed time rather than
// calendar arithmetic. The budget week starts on Monday at resetHour: on a
// Monday before that hour the previous Monday is still the week start.
func ResolveWindow(now time.Time, loc *time.Location, resetHour int) Window {
	if loc == nil {
		loc = time.UTC
	}

	local := now.In(loc)
	weekday := WeekdayOf(local.Weekday())

	daysBack := int(weekday) - 1
	if weekday == Monday && local.Hour() < resetHour {
		daysBack = 7
	}

	shifted := func(days int) string {
		return now.Add(time.Duration(days) * day).In(loc).Format(DateLayout)
	}

	return Window{
		Today:        local.Format(DateLayout),
		Yesterday:    shifted(-1),
		DayBefore:    shifted(-2),
		ThreeDaysAgo: shifted(-3),
		SevenDaysAgo: shifted(-7),
		Tomorrow:     shifted(1),
		WeekStart:    shifted(-daysBack),
		WeekEnd:      shifted(7 - daysBack),
		Hour:         local.Hour(),
		Weekday:      weekday,
	}
}
