package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

const (
	dayHeaderLayout = "Mon Jan 2, 2006"
	dateLayout      = "2006-01-02"
	ruleWidth       = 60
)

// rule returns a horizontal separator no wider than the terminal.
func rule() string {
	return strings.Repeat("─", min(ruleWidth, termWidth()))
}

// eventLine renders one event row for list-style output.
func eventLine(e calendar.Event, day time.Time, titleWidth int) string {
	span := view.TimeSpan(e, day)
	if calendar.IsAllDay(e) {
		span = formatAllDay(fmt.Sprintf("%-11s", span))
	} else {
		span = fmt.Sprintf("%-11s", span)
	}

	line := fmt.Sprintf("  %s  %s", span, view.Truncate(e.Title, titleWidth))
	if e.Location != "" {
		line += "  " + formatMuted("@"+e.Location)
	}
	return line
}

// dayHeader formats a day title, highlighting today.
func dayHeader(day, now time.Time) string {
	label := day.Format(dayHeaderLayout)
	if calendar.IsToday(day, now) {
		return formatToday(label + " (today)")
	}
	return formatHeader(label)
}

// titleWidth returns the room left for titles after the given overhead.
func titleWidth(overhead int) int {
	return max(termWidth()-overhead, 20)
}
