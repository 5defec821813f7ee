package calendar

import (
	"fmt"
	"time"
)

// HourRange is a half-open [From, To) span of whole hours, 0 <= From < To <= 24.
type HourRange struct {
	From int
	To   int
}

// Valid returns true if the range is non-empty and inside a day.
func (r HourRange) Valid() bool {
	return r.From >= 0 && r.To <= 24 && r.From < r.To
}

// Contains reports whether hour lies in [From, To).
func (r HourRange) Contains(hour int) bool {
	return hour >= r.From && hour < r.To
}

// Hours returns the number of hours spanned.
func (r HourRange) Hours() int {
	if !r.Valid() {
		return 0
	}
	return r.To - r.From
}

// String formats the range as "HH:00-HH:00".
func (r HourRange) String() string {
	return fmt.Sprintf("%02d:00-%02d:00", r.From, r.To)
}

// VisibleHours is the part of the day rendered in day and week grids.
type VisibleHours HourRange

// DefaultVisibleHours shows the whole day.
func DefaultVisibleHours() VisibleHours {
	return VisibleHours{From: 0, To: 24}
}

// OrDefault returns v, or the whole day when v is invalid.
func (v VisibleHours) OrDefault() VisibleHours {
	if !HourRange(v).Valid() {
		return DefaultVisibleHours()
	}
	return v
}

// Contains reports whether hour is rendered.
func (v VisibleHours) Contains(hour int) bool {
	return HourRange(v.OrDefault()).Contains(hour)
}

// Hours returns the number of rendered hours.
func (v VisibleHours) Hours() int {
	return HourRange(v.OrDefault()).Hours()
}

// GridHeight is the pixel height of the whole visible window.
func (v VisibleHours) GridHeight(slotHeight float64) float64 {
	return float64(v.Hours()) * slotHeight
}

// WorkingHours holds business hours per weekday. Weekdays without an entry
// have no working hours. It is only used for highlighting, never to filter
// events.
type WorkingHours map[time.Weekday]HourRange

// DefaultWorkingHours is Monday through Friday, 09:00 to 17:00.
func DefaultWorkingHours() WorkingHours {
	wh := make(WorkingHours, 5)
	for d := time.Monday; d <= time.Friday; d++ {
		wh[d] = HourRange{From: 9, To: 17}
	}
	return wh
}

// IsWorkingHour reports whether hour on weekday falls inside working hours.
func (w WorkingHours) IsWorkingHour(weekday time.Weekday, hour int) bool {
	r, ok := w[weekday]
	if !ok || !r.Valid() {
		return false
	}
	return r.Contains(hour)
}

// IsWorkingTime reports whether the wall clock of t is inside working hours.
func (w WorkingHours) IsWorkingTime(t time.Time) bool {
	return w.IsWorkingHour(t.Weekday(), t.Hour())
}
