package calendar

import (
	"strings"
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

// Direction is a navigation request.
type Direction string

const (
	DirectionPrev  Direction = "prev"
	DirectionNext  Direction = "next"
	DirectionToday Direction = "today"
)

// ParseDirection parses a case-insensitive direction name.
// "previous" and "back" are accepted as prev, "forward" as next.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prev", "previous", "back":
		return DirectionPrev, true
	case "next", "forward":
		return DirectionNext, true
	case "today", "now":
		return DirectionToday, true
	default:
		return "", false
	}
}

// Step returns the reference date after navigating from ref in the given
// direction. today always returns now. Steps per view:
//
//   - day:    one day
//   - week:   one week
//   - month:  one calendar month, clamped to the last day of the target month
//   - year:   one year, with the same clamp (Feb 29 becomes Feb 28)
//   - agenda: one week, so paging feels like scrolling upcoming events
//
// Unknown views step like week. Unknown directions return ref unchanged.
func Step(ref time.Time, view View, dir Direction, now time.Time) time.Time {
	var sign int
	switch dir {
	case DirectionToday:
		return now
	case DirectionNext:
		sign = 1
	case DirectionPrev:
		sign = -1
	default:
		return ref
	}

	switch view.OrDefault() {
	case ViewDay:
		return ref.AddDate(0, 0, sign)
	case ViewMonth:
		return dateutil.AddMonthsClamped(ref, sign)
	case ViewYear:
		return dateutil.AddMonthsClamped(ref, 12*sign)
	default:
		return ref.AddDate(0, 0, 7*sign)
	}
}
