// Package timeutil computes the calendar instants the recurring jobs fire at.
// All functions are pure: they take now explicitly and never read the clock.
package timeutil

import "time"

// NextLastDayOfMonth returns the next instant that falls on the last calendar
// day of a month at hour:minute in loc. If that instant for the current month
// has already passed, the last day of the following month is used. The
// returned instant reads exactly hour:minute on a wall clock in loc regardless
// of the process timezone.
func NextLastDayOfMonth(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)

	target := lastDayAt(local.Year(), local.Month(), hour, minute, loc)
	if !target.After(now) {
		next := local.AddDate(0, 0, -local.Day()+1).AddDate(0, 1, 0)
		target = lastDayAt(next.Year(), next.Month(), hour, minute, loc)
	}
	return target
}

// NextFirstDayOfMonth returns the next instant that falls on the first
// calendar day of a month at hour:minute in loc. If today is the 1st and the
// target time has not yet passed, today is used; otherwise the 1st of the
// following month.
func NextFirstDayOfMonth(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)

	target := time.Date(local.Year(), local.Month(), 1, hour, minute, 0, 0, loc)
	if local.Day() == 1 && target.After(now) {
		return target
	}
	return target.AddDate(0, 1, 0)
}

// lastDayAt builds the last day of (year, month) at hour:minute in loc.
// Day 0 of the following month normalizes to the last day of month.
func lastDayAt(year int, month time.Month, hour, minute int, loc *time.Location) time.Time {
	return time.Date(year, month+1, 0, hour, minute, 0, 0, loc)
}

// CurrentMonth returns the first day of now's month in loc, at midnight.
// This is the storage key for the month being closed.
func CurrentMonth(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
}

// PreviousMonth returns the first day of the month before now's month in loc.
func PreviousMonth(now time.Time, loc *time.Location) time.Time {
	return CurrentMonth(now, loc).AddDate(0, -1, 0)
}

// DateOnly truncates t to midnight in loc. Storage key for daily reports.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
