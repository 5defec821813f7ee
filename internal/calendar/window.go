package calendar

import (
	"fmt"
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

// agendaDays is the length of the rolling agenda window.
const agendaDays = 30

// DateRange is a closed [Start, End] interval of instants.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies inside the closed range.
func (r DateRange) Contains(t time.Time) bool {
	return within(t, r.Start, r.End)
}

// Overlaps reports whether e touches the range, using the same exclusive end
// convention as BelongsToDay.
func (r DateRange) Overlaps(e Event) bool {
	e = Normalize(e)
	last := lastInstant(e)
	return within(r.Start, e.Start, last) ||
		within(e.Start, r.Start, r.End) ||
		within(last, r.Start, r.End)
}

// Days returns midnight of every calendar day the range touches.
func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := dateutil.TruncateToDay(r.Start); !d.After(r.End); d = dateutil.NextDay(d) {
		days = append(days, d)
	}
	return days
}

// ISO returns both bounds as RFC 3339 instants with nanosecond precision,
// ready to be used in an outbound fetch query.
func (r DateRange) ISO() (start, end string) {
	return r.Start.Format(time.RFC3339Nano), r.End.Format(time.RFC3339Nano)
}

// String implements fmt.Stringer.
func (r DateRange) String() string {
	start, end := r.ISO()
	return fmt.Sprintf("%s/%s", start, end)
}

// MarshalText encodes the range as an ISO-8601 interval "start/end".
func (r DateRange) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// WindowFor returns the range of instants the view must display around ref.
//
//   - day:    the reference day
//   - week:   the whole week containing ref
//   - month:  the month padded to whole weeks at both ends
//   - year:   Jan 1 through Dec 31 of ref's year
//   - agenda: start of ref's day through ref + 30 days
//
// Unknown views fall back to week. weekStartsOn is 0 for Sunday, 1 for Monday.
func WindowFor(ref time.Time, view View, weekStartsOn int) DateRange {
	ws := dateutil.NormalizeWeekStart(weekStartsOn)

	switch view.OrDefault() {
	case ViewDay:
		return DateRange{Start: dateutil.TruncateToDay(ref), End: dateutil.EndOfDay(ref)}
	case ViewMonth:
		return DateRange{
			Start: dateutil.StartOfWeek(dateutil.StartOfMonth(ref), ws),
			End:   dateutil.EndOfWeek(dateutil.EndOfMonth(ref), ws),
		}
	case ViewYear:
		return DateRange{
			Start: time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location()),
			End:   dateutil.EndOfDay(time.Date(ref.Year(), time.December, 31, 0, 0, 0, 0, ref.Location())),
		}
	case ViewAgenda:
		return DateRange{Start: dateutil.TruncateToDay(ref), End: ref.AddDate(0, 0, agendaDays)}
	default:
		return DateRange{Start: dateutil.StartOfWeek(ref, ws), End: dateutil.EndOfWeek(ref, ws)}
	}
}

// GridCellsFor returns the cells the view lays out: the first instant of every
// month for year view, midnight of every day otherwise.
func GridCellsFor(ref time.Time, view View, weekStartsOn int) []time.Time {
	view = view.OrDefault()
	if view == ViewYear {
		return YearMonths(ref)
	}
	return WindowFor(ref, view, weekStartsOn).Days()
}

// WeekDays returns the seven days of the week containing ref.
func WeekDays(ref time.Time, weekStartsOn int) []time.Time {
	return GridCellsFor(ref, ViewWeek, weekStartsOn)
}

// MonthDays returns every day of ref's month padded to whole weeks. The
// result always holds a multiple of seven days.
func MonthDays(ref time.Time, weekStartsOn int) []time.Time {
	return GridCellsFor(ref, ViewMonth, weekStartsOn)
}

// YearMonths returns the first instant of each month of ref's year.
func YearMonths(ref time.Time) []time.Time {
	months := make([]time.Time, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, time.Date(ref.Year(), m, 1, 0, 0, 0, 0, ref.Location()))
	}
	return months
}
