package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

// block is a positioned event translated to terminal lines.
type block struct {
	event  calendar.Event
	day    time.Time
	top    int // first line, inclusive
	bottom int // last line, exclusive
	lane   int
}

// blocksFor converts positioned events into line blocks.
func blocksFor(d calendar.DayLayout) ([]block, int) {
	lanes := 1
	blocks := make([]block, 0, len(d.Positioned))
	for _, p := range d.Positioned {
		top := int(math.Floor(p.Top))
		bottom := max(int(math.Ceil(p.Top+p.Height)), top+1)
		blocks = append(blocks, block{
			event:  p.Event,
			day:    d.Date,
			top:    top,
			bottom: bottom,
			lane:   p.Column,
		})
		lanes = max(lanes, p.TotalColumns)
	}
	return blocks, lanes
}

// blockAt returns the block covering line y in lane, preferring the one that
// starts last when rounding makes neighbours share a line.
func blockAt(blocks []block, lane, y int) (block, bool) {
	var found block
	ok := false
	for _, b := range blocks {
		if b.lane != lane || y < b.top || y >= b.bottom {
			continue
		}
		if !ok || b.top > found.top {
			found, ok = b, true
		}
	}
	return found, ok
}

// blockText returns what a block shows on its line-th line.
func blockText(b block, line int) string {
	span := view.TimeSpan(b.event, b.day)
	switch line {
	case 0:
		if b.bottom-b.top == 1 {
			return span + " " + b.event.Title
		}
		return b.event.Title
	case 1:
		return span
	case 2:
		if b.event.Location != "" {
			return "@" + b.event.Location
		}
	}
	return ""
}

// renderTimeGrid renders the day and week views. l must be laid out with
// the grid's slot height so positions are in lines.
func (m Model) renderTimeGrid(l calendar.Layout, f frame) string {
	g := m.gridMetrics()
	now := m.today()
	widths := view.SplitWidth(f.innerW-gutterWidth, len(l.Days))

	type column struct {
		blocks []block
		lanes  int
	}
	columns := make([]column, len(l.Days))
	for i, d := range l.Days {
		blocks, lanes := blocksFor(d)
		columns[i] = column{blocks: blocks, lanes: lanes}
	}

	lines := make([]string, 0, timeGridHeader+g.gridLines)

	var header strings.Builder
	header.WriteString(m.styles.HourLabel.Render(""))
	for i, d := range l.Days {
		header.WriteString(m.dayHeader(d.Date, now, widths[i]))
	}
	lines = append(lines, header.String())

	var allDay strings.Builder
	allDay.WriteString(m.styles.HourLabel.Render("all"))
	for i, d := range l.Days {
		allDay.WriteString(m.allDayCell(d.AllDay, widths[i]))
	}
	lines = append(lines, allDay.String())

	nowLine := -1
	if offset, ok := calendar.CurrentTimeOffset(now, m.opts.Visible, g.slotHeight()); ok {
		nowLine = int(offset)
	}

	scroll := clamp(m.scroll, 0, g.maxScroll())
	last := min(g.totalLines, scroll+g.gridLines)
	for y := scroll; y < last; y++ {
		var row strings.Builder
		row.WriteString(m.gutterCell(y, g))
		for i, d := range l.Days {
			isNow := y == nowLine && calendar.IsToday(d.Date, now)
			row.WriteString(m.gridCell(columns[i].blocks, columns[i].lanes, d.Date, y, widths[i], g, now, isNow))
		}
		lines = append(lines, row.String())
	}

	return strings.Join(lines, "\n")
}

func (m Model) dayHeader(date, now time.Time, width int) string {
	label := date.Format("Mon 2")
	if m.view == calendar.ViewDay {
		label = date.Format("Monday 2")
	}

	style := m.styles.DayHeader
	switch {
	case calendar.IsToday(date, now):
		style = m.styles.DayHeaderToday
	case calendar.IsSameDay(date, m.ref) && m.view != calendar.ViewDay:
		style = m.styles.DayHeaderSelected
	}
	return style.Width(width).Render(view.Truncate(label, width))
}

func (m Model) allDayCell(events []calendar.Event, width int) string {
	if len(events) == 0 || width <= 0 {
		return m.styles.Empty.Width(width).Render("")
	}

	text := " " + events[0].Title
	if len(events) > 1 {
		text += fmt.Sprintf(" +%d", len(events)-1)
	}
	style := m.styles.Event(events[0], false, false)
	return style.Width(width).Render(view.Truncate(text, width))
}

func (m Model) gutterCell(y int, g gridMetrics) string {
	labels := calendar.HourLabels(m.opts.Visible)
	idx := y / g.linesPerHour
	if y%g.linesPerHour != 0 || idx >= len(labels) {
		return m.styles.HourLabel.Render("")
	}

	hour := labels[idx]
	style := m.styles.HourLabel
	if m.working.IsWorkingHour(m.ref.Weekday(), hour) {
		style = m.styles.HourLabelWorking
	}
	return style.Render(fmt.Sprintf("%02d:00", hour))
}

func (m Model) gridCell(blocks []block, lanes int, date time.Time, y, width int, g gridMetrics, now time.Time, isNow bool) string {
	if width <= 0 {
		return ""
	}

	hour := m.opts.Visible.OrDefault().From + y/g.linesPerHour
	empty := m.styles.Empty
	if m.working.IsWorkingHour(date.Weekday(), hour) {
		empty = m.styles.EmptyWorking
	}
	if isNow {
		empty = empty.Foreground(m.styles.palette.NowLine)
	}

	laneWidths := view.SplitWidth(width, lanes)
	var cell strings.Builder
	for lane, w := range laneWidths {
		if w == 0 {
			continue
		}
		b, ok := blockAt(blocks, lane, y)
		if !ok {
			fill := ""
			if isNow {
				fill = strings.Repeat("─", w)
			}
			cell.WriteString(empty.Width(w).Render(fill))
			continue
		}

		past := !b.event.End.After(now)
		style := m.styles.Event(b.event, past, lane%2 == 1)
		text := blockText(b, y-b.top)
		if text != "" {
			text = " " + text
		}
		cell.WriteString(style.Width(w).Render(view.Truncate(text, w)))
	}
	return cell.String()
}
