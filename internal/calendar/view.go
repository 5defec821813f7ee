package calendar

import "strings"

// View is the calendar granularity being displayed.
type View string

const (
	ViewDay    View = "day"
	ViewWeek   View = "week"
	ViewMonth  View = "month"
	ViewYear   View = "year"
	ViewAgenda View = "agenda"
)

// DefaultView is used whenever a view value is not recognized.
const DefaultView = ViewWeek

// Views lists every supported view in display order.
func Views() []View {
	return []View{ViewDay, ViewWeek, ViewMonth, ViewYear, ViewAgenda}
}

// Valid returns true if v is a supported view.
func (v View) Valid() bool {
	switch v {
	case ViewDay, ViewWeek, ViewMonth, ViewYear, ViewAgenda:
		return true
	default:
		return false
	}
}

// OrDefault returns v, or DefaultView when v is not recognized.
func (v View) OrDefault() View {
	if v.Valid() {
		return v
	}
	return DefaultView
}

// ParseView parses a case-insensitive view name. Unknown names return
// DefaultView and false.
func ParseView(s string) (View, bool) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return DefaultView, false
	}
	return v, true
}

// HasTimeGrid reports whether the view renders timed events on an hour grid.
func (v View) HasTimeGrid() bool {
	v = v.OrDefault()
	return v == ViewDay || v == ViewWeek
}
