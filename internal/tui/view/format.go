// Package view provides rendering helpers shared by the TUI and the CLI.
package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/dateutil"
)

// ClockLayout formats wall-clock times.
const ClockLayout = "15:04"

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Truncate shortens s to width cells, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, Ellipsis)
}

// FormatDuration formats d as "Xh Ym", rounded down to the minute.
func FormatDuration(d time.Duration) string {
	minutes := int(d / time.Minute)
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// TimeSpan formats the part of e that falls on day, e.g. "09:00-10:30".
// Ends on another day are shown as "…"; an end at the next midnight as 24:00.
func TimeSpan(e calendar.Event, day time.Time) string {
	if calendar.IsAllDay(e) {
		return "all day"
	}
	e = calendar.Normalize(e)

	start := e.Start.Format(ClockLayout)
	if !dateutil.SameDay(e.Start, day) {
		start = Ellipsis
	}

	next := dateutil.NextDay(dateutil.TruncateToDay(day))
	end := e.End.Format(ClockLayout)
	switch {
	case e.End.Equal(next):
		end = "24:00"
	case e.End.After(next):
		end = Ellipsis
	}

	if e.Start.Equal(e.End) {
		return start
	}
	return start + "-" + end
}

// SegmentMarker draws the continuation of a multi-day bar in a month cell.
func SegmentMarker(s calendar.Segment) string {
	switch s {
	case calendar.SegmentStart:
		return "▶"
	case calendar.SegmentMiddle:
		return "═"
	case calendar.SegmentEnd:
		return "◀"
	default:
		return "•"
	}
}

// RangeTitle names the period a view shows, e.g. "January 2025" for a month
// or "Jan 13 – Jan 19, 2025" for a week.
func RangeTitle(view calendar.View, rng calendar.DateRange, ref time.Time) string {
	switch view {
	case calendar.ViewDay:
		return ref.Format("Monday, January 2, 2006")
	case calendar.ViewMonth:
		return ref.Format("January 2006")
	case calendar.ViewYear:
		return ref.Format("2006")
	}

	start, end := rng.Start, rng.End
	if start.Year() != end.Year() {
		return start.Format("Jan 2, 2006") + " – " + end.Format("Jan 2, 2006")
	}
	return start.Format("Jan 2") + " – " + end.Format("Jan 2, 2006")
}
