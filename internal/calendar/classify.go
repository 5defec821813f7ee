package calendar

import (
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

// allDayThreshold is the duration from which an unflagged event is treated
// as all-day.
const allDayThreshold = 24 * time.Hour

// Normalize returns e with End clamped to Start when the upstream data has
// them inverted. The result is a zero-duration event at Start.
func Normalize(e Event) Event {
	if e.End.Before(e.Start) {
		e.End = e.Start
	}
	return e
}

// IsAllDay reports whether e occupies the all-day lane: either explicitly
// flagged or lasting at least 24 hours.
func IsAllDay(e Event) bool {
	if e.AllDay {
		return true
	}
	return e.Duration() >= allDayThreshold
}

// IsMultiDay reports whether e starts and ends on different calendar days.
// The end is exclusive, so an event ending exactly at midnight stays on the
// day it started.
func IsMultiDay(e Event) bool {
	e = Normalize(e)
	return !dateutil.SameDay(e.Start, lastInstant(e))
}

// BelongsToDay reports whether e touches the calendar day containing day.
//
// The day spans [midnight, next midnight) and the event spans [Start, End).
// A zero-duration event occupies only its own instant. The test is the
// symmetric four-way check: either the day's bounds fall inside the event or
// the event's bounds fall inside the day.
func BelongsToDay(e Event, day time.Time) bool {
	e = Normalize(e)
	dayStart := dateutil.TruncateToDay(day)
	dayEnd := dateutil.EndOfDay(day)
	last := lastInstant(e)

	return within(dayStart, e.Start, last) ||
		within(dayEnd, e.Start, last) ||
		within(e.Start, dayStart, dayEnd) ||
		within(last, dayStart, dayEnd)
}

// IsSameDay reports whether a and b fall on the same calendar day.
func IsSameDay(a, b time.Time) bool {
	return dateutil.SameDay(a, b)
}

// IsToday reports whether t falls on the same calendar day as now.
func IsToday(t, now time.Time) bool {
	return dateutil.SameDay(t, now)
}

// lastInstant is the last instant covered by a normalized event. The end is
// exclusive, so a non-empty event ends one nanosecond before End.
func lastInstant(e Event) time.Time {
	if !e.End.After(e.Start) {
		return e.Start
	}
	return e.End.Add(-time.Nanosecond)
}

// within reports whether t lies in the closed interval [lo, hi].
func within(t, lo, hi time.Time) bool {
	return !t.Before(lo) && !t.After(hi)
}
