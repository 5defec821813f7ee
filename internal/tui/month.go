package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

// renderMonthGrid renders the month view as weeks of seven cells. Each cell
// shows the day number followed by as many events as fit.
func (m Model) renderMonthGrid(p *calendar.Page, l calendar.Layout, f frame) string {
	if len(l.Cells) == 0 {
		return ""
	}
	now := m.today()
	widths := view.SplitWidth(f.innerW, 7)
	rows := len(l.Cells) / 7
	cellH := max((f.bodyH-1)/max(rows, 1), 1)

	lines := make([]string, 0, 1+rows*cellH)

	var header strings.Builder
	for i := range 7 {
		label := l.Cells[i].Format("Mon")
		header.WriteString(m.styles.DayHeader.Width(widths[i]).Render(view.Truncate(label, widths[i])))
	}
	lines = append(lines, header.String())

	for r := range rows {
		week := l.Cells[r*7 : r*7+7]
		cells := make([][]string, 7)
		for c, day := range week {
			cells[c] = m.monthCell(p, day, now, widths[c], cellH)
		}
		for j := range cellH {
			var row strings.Builder
			for c := range week {
				row.WriteString(cells[c][j])
			}
			lines = append(lines, row.String())
		}
	}

	return strings.Join(lines, "\n")
}

// monthCell renders one day cell as height lines of width cells.
func (m Model) monthCell(p *calendar.Page, day, now time.Time, width, height int) []string {
	base := m.styles.CellDay
	switch {
	case calendar.IsSameDay(day, m.ref):
		base = m.styles.CellSelected
	case day.Month() != m.ref.Month():
		base = m.styles.CellOutside
	}

	numberStyle := base
	if calendar.IsToday(day, now) {
		numberStyle = m.styles.CellToday.Background(base.GetBackground())
	}

	out := make([]string, 0, height)
	out = append(out, numberStyle.Width(width).Render(view.Truncate(fmt.Sprintf(" %d", day.Day()), width)))

	events := calendar.MonthCellEvents(p.Events, day)
	room := height - 1
	for i, ce := range events {
		if len(out) == height {
			break
		}
		if i == room-1 && len(events) > room {
			more := fmt.Sprintf(" +%d more", len(events)-i)
			out = append(out, m.styles.Muted.Background(base.GetBackground()).Width(width).Render(view.Truncate(more, width)))
			break
		}
		out = append(out, m.cellEventLine(ce, day, base, width))
	}

	for len(out) < height {
		out = append(out, base.Width(width).Render(""))
	}
	return out
}

func (m Model) cellEventLine(ce calendar.CellEvent, day time.Time, base lipgloss.Style, width int) string {
	text := ce.Event.Title
	if ce.Segment == calendar.SegmentSingle && !calendar.IsAllDay(ce.Event) {
		text = ce.Event.Start.In(day.Location()).Format(view.ClockLayout) + " " + text
	}

	prefix := view.Truncate(" "+view.SegmentMarker(ce.Segment)+" ", width)
	rest := max(width-lipgloss.Width(prefix), 0)

	marker := m.styles.EventMarker(ce.Event).Background(base.GetBackground())
	return marker.Render(prefix) + base.Width(rest).Render(view.Truncate(text, rest))
}

// renderYearGrid renders the twelve months as small calendars with the
// number of events each month holds.
func (m Model) renderYearGrid(p *calendar.Page, f frame) string {
	now := m.today()
	months := calendar.YearMonths(m.ref)
	counts := calendar.CountByMonth(p.Events, m.ref)
	widths := view.SplitWidth(f.innerW, yearColumns)

	var rows []string
	for r := 0; r < len(months); r += yearColumns {
		blocks := make([][]string, 0, yearColumns)
		for c := range yearColumns {
			i := r + c
			blocks = append(blocks, m.miniMonth(months[i], counts[i], now, widths[c]))
		}
		for j := range blocks[0] {
			var line strings.Builder
			for c := range blocks {
				line.WriteString(blocks[c][j])
			}
			rows = append(rows, line.String())
		}
	}
	return strings.Join(rows, "\n")
}

// miniMonthLines is the fixed height of a mini month: title, weekday
// header, six weeks and the event count.
const miniMonthLines = 9

func (m Model) miniMonth(month time.Time, count int, now time.Time, width int) []string {
	out := make([]string, 0, miniMonthLines)

	titleStyle := m.styles.AgendaDate
	if month.Month() == m.ref.Month() {
		titleStyle = m.styles.CellSelected.Bold(true)
	}
	out = append(out, titleStyle.Width(width).Render(view.Truncate(" "+month.Format("January"), width)))

	days := calendar.MonthDays(month, m.opts.WeekStartsOn)
	var header strings.Builder
	header.WriteString(" ")
	for _, d := range days[:7] {
		header.WriteString(fmt.Sprintf("%-3s", d.Format("Mon")[:2]))
	}
	out = append(out, m.styles.Muted.Width(width).Render(view.Truncate(header.String(), width)))

	for w := 0; w < 6; w++ {
		var line strings.Builder
		line.WriteString(m.styles.Empty.Render(" "))
		used := 1
		if w*7 < len(days) {
			for _, d := range days[w*7 : w*7+7] {
				label := fmt.Sprintf("%2d ", d.Day())
				style := m.styles.CellDay
				switch {
				case d.Month() != month.Month():
					label = "   "
				case calendar.IsToday(d, now):
					style = m.styles.CellToday
				}
				if used+3 > width {
					break
				}
				line.WriteString(style.Render(label))
				used += 3
			}
		}
		out = append(out, line.String()+m.styles.Empty.Width(max(width-used, 0)).Render(""))
	}

	label := " no events"
	switch {
	case count == 1:
		label = " 1 event"
	case count > 1:
		label = fmt.Sprintf(" %d events", count)
	}
	out = append(out, m.styles.Muted.Width(width).Render(view.Truncate(label, width)))
	return out
}
