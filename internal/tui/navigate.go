package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/tui/commands"
)

// statusTimeout matches the delay of commands.ClearStatusAfter.
const statusTimeout = 3 * time.Second

// yearColumns is the number of months per row in the year view.
const yearColumns = 4

// moveCursor moves the selection by one unit: a month in the year view, a
// day everywhere else.
func (m Model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	if m.view == calendar.ViewYear {
		return m.goTo(dateutil.AddMonthsClamped(m.ref, delta))
	}
	return m.goTo(m.ref.AddDate(0, 0, delta))
}

// moveVertical scrolls time grids and the agenda, and moves the selection
// by a row in month and year views.
func (m Model) moveVertical(delta int) (tea.Model, tea.Cmd) {
	switch m.view {
	case calendar.ViewMonth:
		return m.goTo(m.ref.AddDate(0, 0, 7*delta))
	case calendar.ViewYear:
		return m.goTo(dateutil.AddMonthsClamped(m.ref, yearColumns*delta))
	default:
		m.scroll = clamp(m.scroll+delta, 0, m.maxScroll())
		return m, nil
	}
}

// step pages through the view.
func (m Model) step(dir calendar.Direction) (tea.Model, tea.Cmd) {
	ref := calendar.Step(m.ref, m.view, dir, m.today())
	if dir == calendar.DirectionToday {
		m.ref = ref
		m.resetScroll()
	}
	return m.goTo(ref)
}

// switchView changes the view around the selected date.
func (m Model) switchView(v calendar.View) (tea.Model, tea.Cmd) {
	if v == m.view {
		return m, nil
	}
	m.view = v
	m.window = nil
	m.resetScroll()
	return m.goTo(m.ref)
}

// goTo selects ref, reusing cached pages when it lands on a neighbour of
// the current page.
func (m Model) goTo(ref time.Time) (tea.Model, tea.Cmd) {
	m.ref = ref
	ws := m.opts.WeekStartsOn

	w := m.window
	switch {
	case w == nil || w.Current() == nil:
		m.loading = true
		return m, commands.LoadWindow(m.ctx, m.repo, m.request())

	case w.Current().Covers(ref, m.view, ws):
		return m, nil

	case w.HasNext() && w.Next().Covers(ref, m.view, ws):
		w.ShiftForward(nil)
		m.resetScroll()
		return m, commands.LoadNextPage(m.ctx, m.repo, commands.RequestFor(w.Current()))

	case w.HasPrevious() && w.Previous().Covers(ref, m.view, ws):
		w.ShiftBackward(nil)
		m.resetScroll()
		return m, commands.LoadPrevPage(m.ctx, m.repo, commands.RequestFor(w.Current()))

	default:
		m.loading = true
		m.resetScroll()
		return m, commands.LoadWindow(m.ctx, m.repo, m.request())
	}
}

// acceptEdge stores a freshly loaded edge page if it still neighbours the
// current page.
func (m Model) acceptEdge(p *calendar.Page, forward bool) {
	w := m.window
	if w == nil || w.Current() == nil || p == nil {
		return
	}

	dir := calendar.DirectionPrev
	if forward {
		dir = calendar.DirectionNext
	}
	want := commands.RequestFor(w.Current()).Step(dir)
	if !p.Covers(want.Ref, want.View, want.WeekStartsOn) {
		return
	}
	if forward {
		w.SetNext(p)
	} else {
		w.SetPrevious(p)
	}
}

// resetScroll scrolls the time grid to the start of the working day, or to
// the current hour when the selected day is today.
func (m *Model) resetScroll() {
	m.scroll = 0
	if !m.view.HasTimeGrid() {
		return
	}

	visible := m.opts.Visible.OrDefault()
	hour := visible.From
	if r, ok := m.working[m.ref.Weekday()]; ok && r.Valid() {
		hour = r.From
	}
	if now := m.today(); dateutil.SameDay(now, m.ref) {
		hour = now.Hour() - 1
	}
	hour = clamp(hour, visible.From, visible.To)

	g := m.gridMetrics()
	m.scroll = clamp((hour-visible.From)*g.linesPerHour, 0, g.maxScroll())
}

// maxScroll is the last valid scroll offset for the current view.
func (m Model) maxScroll() int {
	switch {
	case m.view.HasTimeGrid():
		return m.gridMetrics().maxScroll()
	case m.view == calendar.ViewAgenda:
		return max(0, len(m.agendaLines(m.frame().innerW))-m.frame().bodyH)
	default:
		return 0
	}
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTime = m.now().Add(statusTimeout)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
