package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

// View renders the TUI using a boxed, parent-controlled layout.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	showOverlay := m.mode == ModeHelp
	overlay := ""
	if showOverlay {
		overlay = m.renderHelpOverlay()
	}

	return view.ViewState{
		Width:            m.width,
		Height:           m.height,
		BaseContent:      m.renderAppContent(),
		OverlayContent:   overlay,
		ShowOverlay:      showOverlay,
		OverlayBg:        m.styles.palette.OverlayBg,
		EmptyPlaceholder: "Loading...",
	}
}

func (m Model) renderAppContent() string {
	f := m.frame()
	if f.innerW <= gutterWidth || f.bodyH <= 0 {
		return "Terminal too small"
	}

	header := m.placeBox(f.innerW, headerLines, lipgloss.Top, m.renderTitle(f.innerW))
	body := m.placeBox(f.innerW, f.bodyH, lipgloss.Top, m.renderBody(f))
	footer := m.placeBox(f.innerW, footerLines, lipgloss.Bottom, m.renderFooter(f.innerW))

	content := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return m.styles.App.Render(content)
}

// placeBox is a helper to render content in an explicit lipgloss box.
func (m Model) placeBox(w, h int, vAlign lipgloss.Position, content string) string {
	return view.PlaceBox(w, h, vAlign, content, m.styles.colorBg)
}

func (m Model) renderTitle(width int) string {
	left := m.styles.Title.Render(" almanac ")
	if p := m.page(); p != nil {
		left += m.styles.Subtitle.Render(view.RangeTitle(p.View, p.Range, m.ref))
	}

	right := m.styles.Subtitle.Render(string(m.view) + " ")
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + m.styles.Empty.Render(strings.Repeat(" ", gap)) + right
}

func (m Model) renderBody(f frame) string {
	p := m.page()
	if p == nil {
		return m.styles.Muted.Render(" Loading...")
	}

	switch m.view {
	case calendar.ViewDay, calendar.ViewWeek:
		opts := m.opts
		opts.SlotHeight = m.gridMetrics().slotHeight()
		return m.renderTimeGrid(p.Layout(opts), f)
	case calendar.ViewMonth:
		return m.renderMonthGrid(p, p.Layout(m.opts), f)
	case calendar.ViewYear:
		return m.renderYearGrid(p, f)
	default:
		return m.renderAgenda(f)
	}
}

func (m Model) renderFooter(width int) string {
	status := m.styles.Status.Render(" " + m.statusOrDefault())
	if m.err != nil && m.statusMsg != "" {
		status = m.styles.Error.Render(" " + m.statusMsg)
	}

	var bottom string
	if m.mode == ModePrompt {
		bottom = " " + m.prompt.View()
	} else {
		m.help.Width = width - 1
		bottom = " " + m.help.View(m.keys)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		view.Truncate(status, width),
		bottom,
	)
}

// statusOrDefault returns the status message, or a summary of the page.
func (m Model) statusOrDefault() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	if m.loading {
		return "Loading..."
	}
	p := m.page()
	if p == nil {
		return ""
	}

	switch n := len(p.Events); n {
	case 0:
		return "No events"
	case 1:
		return "1 event"
	default:
		return fmt.Sprintf("%d events", n)
	}
}

func (m Model) renderHelpOverlay() string {
	h := m.help
	h.ShowAll = true
	h.Width = 0

	title := m.styles.OverlayTitle.Render("Keys")
	return m.styles.Overlay.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", h.View(m.keys)))
}
