package calendar

import (
	"cmp"
	"slices"
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

// Day holds the events touching one calendar day, split into the all-day
// lane and the timed grid.
type Day struct {
	Date   time.Time // midnight
	AllDay []Event   // sorted by start, longer first
	Timed  []Event   // sorted by start
}

// Len returns the number of events in the day.
func (d Day) Len() int {
	return len(d.AllDay) + len(d.Timed)
}

// Events returns all-day events followed by timed events.
func (d Day) Events() []Event {
	out := make([]Event, 0, d.Len())
	out = append(out, d.AllDay...)
	return append(out, d.Timed...)
}

// NewDay collects the events that belong to date.
func NewDay(date time.Time, events []Event) Day {
	d := Day{Date: dateutil.TruncateToDay(date)}
	for _, e := range events {
		if !BelongsToDay(e, d.Date) {
			continue
		}
		e = Normalize(e)
		if IsAllDay(e) {
			d.AllDay = append(d.AllDay, e)
		} else {
			d.Timed = append(d.Timed, e)
		}
	}
	slices.SortStableFunc(d.AllDay, compareForLayout)
	slices.SortStableFunc(d.Timed, compareForLayout)
	return d
}

// BucketByDay distributes events over days. A multi-day event lands in every
// day it touches; events outside all days are dropped.
func BucketByDay(events []Event, days []time.Time) []Day {
	out := make([]Day, len(days))
	for i, day := range days {
		out[i] = NewDay(day, events)
	}
	return out
}

// AgendaGroup is one day of the agenda list.
type AgendaGroup struct {
	Date   time.Time
	Events []Event // all-day first, then by start
}

// GroupAgenda groups the events overlapping rng by the day they start on.
// Events already in progress at rng.Start are listed under the first day.
// Days without events are omitted.
func GroupAgenda(events []Event, rng DateRange) []AgendaGroup {
	byDay := make(map[time.Time][]Event)
	for _, e := range events {
		if !rng.Overlaps(e) {
			continue
		}
		e = Normalize(e)
		anchor := e.Start
		if anchor.Before(rng.Start) {
			anchor = rng.Start
		}
		key := dateutil.TruncateToDay(anchor.In(rng.Start.Location()))
		byDay[key] = append(byDay[key], e)
	}

	groups := make([]AgendaGroup, 0, len(byDay))
	for date, evs := range byDay {
		slices.SortStableFunc(evs, compareForAgenda)
		groups = append(groups, AgendaGroup{Date: date, Events: evs})
	}
	slices.SortFunc(groups, func(a, b AgendaGroup) int {
		return a.Date.Compare(b.Date)
	})
	return groups
}

func compareForAgenda(a, b Event) int {
	if aa, ba := IsAllDay(a), IsAllDay(b); aa != ba {
		if aa {
			return -1
		}
		return 1
	}
	return compareForLayout(a, b)
}

// Segment tells a month cell which part of a multi-day bar it renders.
type Segment string

const (
	SegmentSingle Segment = "single"
	SegmentStart  Segment = "start"
	SegmentMiddle Segment = "middle"
	SegmentEnd    Segment = "end"
)

// CellEvent is an event as shown inside one month-grid cell.
type CellEvent struct {
	Event   Event
	Segment Segment
}

// MonthCellEvents returns the events touching cell with the bar segment each
// one renders there. Multi-day events come first, longest first, then the
// rest by start.
func MonthCellEvents(events []Event, cell time.Time) []CellEvent {
	var out []CellEvent
	for _, e := range events {
		if !BelongsToDay(e, cell) {
			continue
		}
		e = Normalize(e)
		out = append(out, CellEvent{Event: e, Segment: segmentOn(e, cell)})
	}
	slices.SortStableFunc(out, func(a, b CellEvent) int {
		am, bm := a.Segment != SegmentSingle, b.Segment != SegmentSingle
		if am != bm {
			if am {
				return -1
			}
			return 1
		}
		if am {
			if c := cmp.Compare(b.Event.Duration(), a.Event.Duration()); c != 0 {
				return c
			}
		}
		return compareForLayout(a.Event, b.Event)
	})
	return out
}

func segmentOn(e Event, cell time.Time) Segment {
	if !IsMultiDay(e) {
		return SegmentSingle
	}
	switch {
	case dateutil.SameDay(cell, e.Start):
		return SegmentStart
	case dateutil.SameDay(cell, lastInstant(e)):
		return SegmentEnd
	default:
		return SegmentMiddle
	}
}

// CountByMonth returns, for each month of ref's year, how many events touch
// that month.
func CountByMonth(events []Event, ref time.Time) [12]int {
	var counts [12]int
	for i, month := range YearMonths(ref) {
		rng := DateRange{Start: month, End: dateutil.EndOfMonth(month)}
		for _, e := range events {
			if rng.Overlaps(e) {
				counts[i]++
			}
		}
	}
	return counts
}
