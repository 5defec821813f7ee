package tui

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

// agendaLines renders the whole agenda list; the view shows a scrolled
// window of it.
func (m Model) agendaLines(width int) []string {
	p := m.page()
	if p == nil || width <= 0 {
		return nil
	}

	groups := calendar.GroupAgenda(p.Events, p.Range)
	if len(groups) == 0 {
		return []string{m.styles.Muted.Width(width).Render(" No upcoming events.")}
	}

	now := m.today()
	const spanWidth = 13

	var lines []string
	for i, g := range groups {
		if i > 0 {
			lines = append(lines, m.styles.Empty.Width(width).Render(""))
		}

		label := " " + g.Date.Format("Monday, January 2")
		dateStyle := m.styles.AgendaDate
		if calendar.IsToday(g.Date, now) {
			label += " · today"
			dateStyle = m.styles.CellToday
		}
		lines = append(lines, dateStyle.Width(width).Render(view.Truncate(label, width)))

		for _, e := range g.Events {
			marker := m.styles.EventMarker(e).Render(" ● ")
			span := m.styles.AgendaTime.Render(fmt.Sprintf("%-*s", spanWidth, view.TimeSpan(e, g.Date)))

			rest := max(width-3-spanWidth, 0)
			title := e.Title
			if !calendar.IsAllDay(e) && e.Duration() > 0 {
				title += " (" + view.FormatDuration(e.Duration()) + ")"
			}
			if e.Location != "" {
				title += "  @" + e.Location
			}
			style := m.styles.Empty
			if !e.End.After(now) {
				style = m.styles.Muted
			}
			lines = append(lines, marker+span+style.Width(rest).Render(view.Truncate(title, rest)))
		}
	}
	return lines
}

// renderAgenda renders the scrolled agenda list.
func (m Model) renderAgenda(f frame) string {
	lines := m.agendaLines(f.innerW)
	scroll := clamp(m.scroll, 0, max(len(lines)-f.bodyH, 0))
	end := min(len(lines), scroll+f.bodyH)
	return strings.Join(lines[scroll:end], "\n")
}
