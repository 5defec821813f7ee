package calendar

import (
	"math"
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

// Position is the vertical placement of an event in a time grid, in pixels
// from the top of the visible window.
type Position struct {
	Top    float64
	Height float64
}

// PositionedEvent is an event ready for the renderer.
type PositionedEvent struct {
	Event        Event
	Top          float64
	Height       float64
	Column       int
	TotalColumns int
}

// WidthPercent is the share of the day column each event gets.
func (p PositionedEvent) WidthPercent() float64 {
	if p.TotalColumns <= 0 {
		return 100
	}
	return 100 / float64(p.TotalColumns)
}

// LeftPercent is the horizontal offset of the event's lane.
func (p PositionedEvent) LeftPercent() float64 {
	return float64(p.Column) * p.WidthPercent()
}

// PositionFor maps e onto a grid where each hour is slotHeight pixels tall
// and the first visible hour is visible.From.
//
// An event starting before the window is pinned flush to the top, without
// the minute fraction. Height follows the duration but is never less than
// half a slot so instant events stay visible. On a day when the clocks go
// back, positions follow clockHours and heights never reach past the
// event's end on that clock.
func PositionFor(e Event, visible VisibleHours, slotHeight float64) Position {
	e = Normalize(e)
	visible = visible.OrDefault()

	startHour, fraction := clockHours(e.Start, false)
	if startHour < visible.From {
		fraction = 0
	}
	top := (float64(max(startHour, visible.From)-visible.From) + fraction) * slotHeight

	hours := e.End.Sub(e.Start).Minutes() / 60
	if _, _, ok := fallBack(e.Start); ok {
		endClock := 24.0
		if dateutil.SameDay(e.Start, e.End) {
			h, f := clockHours(e.End, true)
			endClock = float64(h) + f
		}
		h, f := clockHours(e.Start, true)
		hours = min(hours, endClock-(float64(h)+f))
	}
	height := max(hours*slotHeight, slotHeight/2)

	return Position{Top: top, Height: height}
}

// CurrentTimeOffset returns the pixel offset of now inside the visible window
// and whether now is inside it at all.
func CurrentTimeOffset(now time.Time, visible VisibleHours, slotHeight float64) (float64, bool) {
	visible = visible.OrDefault()
	h, f := clockHours(now, true)
	hours := float64(h) + f
	if hours < float64(visible.From) || hours >= float64(visible.To) {
		return 0, false
	}
	return (hours - float64(visible.From)) * slotHeight, true
}

// clockHours splits the wall-clock time of t into the hour and the fraction
// of it that has passed, to the minute or, with seconds, to the second.
//
// When the clocks go back, the wall clock repeats a stretch of the day. The
// real time from the first to the second end of that stretch is squeezed
// into the single stretch on the grid, so a later instant never maps above
// an earlier one.
func clockHours(t time.Time, seconds bool) (int, float64) {
	fraction := float64(t.Minute()) / 60
	if seconds {
		fraction += float64(t.Second()) / 3600
	}

	at, shift, ok := fallBack(t)
	if !ok {
		return t.Hour(), fraction
	}
	from, to := at.Add(-shift), at.Add(shift)
	if t.Before(from) || !t.Before(to) {
		return t.Hour(), fraction
	}

	clock := float64(at.Hour()) + float64(at.Minute())/60 + t.Sub(from).Hours()*shift.Hours()/to.Sub(from).Hours()
	hour := math.Floor(clock)
	return int(hour), clock - hour
}

// fallBack returns the instant on t's day at which the clocks were turned
// back, and by how much.
func fallBack(t time.Time) (time.Time, time.Duration, bool) {
	start, end := t.ZoneBounds()
	for _, b := range []time.Time{start, end} {
		if b.IsZero() || !dateutil.SameDay(b, t) {
			continue
		}
		_, before := b.Add(-time.Nanosecond).Zone()
		_, after := b.Zone()
		if before > after {
			return b, time.Duration(before-after) * time.Second, true
		}
	}
	return time.Time{}, 0, false
}

// HourLabels returns the hours rendered in the time gutter.
func HourLabels(visible VisibleHours) []int {
	visible = visible.OrDefault()
	hours := make([]int, 0, visible.To-visible.From)
	for h := visible.From; h < visible.To; h++ {
		hours = append(hours, h)
	}
	return hours
}
