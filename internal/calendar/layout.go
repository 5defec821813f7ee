package calendar

import (
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

// GridOptions configures the time grid used by day and week views.
type GridOptions struct {
	WeekStartsOn int
	Visible      VisibleHours
	SlotHeight   float64 // pixels per hour
}

// DefaultGridOptions returns Monday-start weeks, the whole day visible and
// 48 pixel hour slots.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		WeekStartsOn: int(time.Monday),
		Visible:      DefaultVisibleHours(),
		SlotHeight:   48,
	}
}

// DayLayout is a day bucket with its timed events positioned.
type DayLayout struct {
	Day
	Positioned []PositionedEvent
}

// Layout is everything a renderer needs for one view.
type Layout struct {
	View  View
	Range DateRange
	Cells []time.Time // days, or months for year view
	Days  []DayLayout // one per day cell; empty for year view
}

// LayoutDay positions the timed events of d. Each event is clipped to the
// day first, so a multi-day timed event only occupies the hours it spans on
// that day. PositionedEvent.Event keeps the original, unclipped event.
func LayoutDay(d Day, visible VisibleHours, slotHeight float64) []PositionedEvent {
	if len(d.Timed) == 0 {
		return nil
	}

	dayStart := dateutil.TruncateToDay(d.Date)
	dayEnd := dateutil.NextDay(d.Date)
	clipped := make([]Event, len(d.Timed))
	for i, e := range d.Timed {
		clipped[i] = clipToDay(Normalize(e), dayStart, dayEnd)
	}

	order, columns, total := placeColumns(clipped)
	out := make([]PositionedEvent, 0, len(order))
	for _, idx := range order {
		pos := PositionFor(clipped[idx], visible, slotHeight)
		out = append(out, PositionedEvent{
			Event:        d.Timed[idx],
			Top:          pos.Top,
			Height:       pos.Height,
			Column:       columns[idx],
			TotalColumns: total,
		})
	}
	return out
}

func clipToDay(e Event, dayStart, dayEnd time.Time) Event {
	if e.Start.Before(dayStart) {
		e.Start = dayStart
	}
	if e.End.After(dayEnd) {
		e.End = dayEnd
	}
	if e.End.Before(e.Start) {
		e.End = e.Start
	}
	// Keep wall-clock math in the day's location.
	e.Start = e.Start.In(dayStart.Location())
	e.End = e.End.In(dayStart.Location())
	return e
}

// LayoutRange runs the whole pipeline for a view: window, grid cells, day
// buckets and, for time-grid views, positioned events.
func LayoutRange(events []Event, ref time.Time, view View, opts GridOptions) Layout {
	view = view.OrDefault()
	l := Layout{
		View:  view,
		Range: WindowFor(ref, view, opts.WeekStartsOn),
		Cells: GridCellsFor(ref, view, opts.WeekStartsOn),
	}
	if view == ViewYear {
		return l
	}

	l.Days = make([]DayLayout, 0, len(l.Cells))
	for _, d := range BucketByDay(events, l.Cells) {
		dl := DayLayout{Day: d}
		if view.HasTimeGrid() {
			dl.Positioned = LayoutDay(d, opts.Visible, opts.SlotHeight)
		}
		l.Days = append(l.Days, dl)
	}
	return l
}
