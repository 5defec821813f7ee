package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/tui/theme"
)

// gutterWidth is the width of the hour label column in time grid views.
const gutterWidth = 6

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	colorBg     lipgloss.Color
	colorAccent lipgloss.Color

	App      lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// Column and cell headers
	DayHeader         lipgloss.Style
	DayHeaderToday    lipgloss.Style
	DayHeaderSelected lipgloss.Style

	// Time gutter
	HourLabel        lipgloss.Style
	HourLabelWorking lipgloss.Style

	// Empty grid cells
	Empty        lipgloss.Style
	EmptyWorking lipgloss.Style
	NowLine      lipgloss.Style

	// Month and year cells
	CellDay      lipgloss.Style
	CellOutside  lipgloss.Style
	CellToday    lipgloss.Style
	CellSelected lipgloss.Style

	// Agenda
	AgendaDate lipgloss.Style
	AgendaTime lipgloss.Style
	Muted      lipgloss.Style

	// Footer
	Status lipgloss.Style
	Error  lipgloss.Style
	Help   lipgloss.Style
	Prompt lipgloss.Style

	// Help and go-to-date overlay
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style

	eventCache map[eventStyleKey]lipgloss.Style
}

type eventStyleKey struct {
	color  string
	allDay bool
	past   bool
	alt    bool
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{
		palette:     p,
		colorBg:     p.Bg,
		colorAccent: p.Accent,
		eventCache:  make(map[eventStyleKey]lipgloss.Style),
	}

	base := lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.Bg)

	s.App = base.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		BorderBackground(p.Bg)

	s.Title = base.
		Bold(true).
		Foreground(p.Accent)

	s.Subtitle = base.
		Foreground(p.FgMuted)

	s.DayHeader = base.
		Bold(true).
		Align(lipgloss.Center)

	s.DayHeaderToday = s.DayHeader.
		Foreground(p.TextOnToday).
		Background(p.Today)

	s.DayHeaderSelected = s.DayHeader.
		Background(p.BgSelection)

	s.HourLabel = base.
		Foreground(p.FgMuted).
		Width(gutterWidth)

	s.HourLabelWorking = s.HourLabel.
		Foreground(p.Working)

	s.Empty = base
	s.EmptyWorking = base.
		Background(p.BgHighlight)

	s.NowLine = base.
		Foreground(p.NowLine)

	s.CellDay = base
	s.CellOutside = base.
		Foreground(p.FgMuted)
	s.CellToday = base.
		Bold(true).
		Foreground(p.Today)
	s.CellSelected = base.
		Background(p.BgSelection)

	s.AgendaDate = base.
		Bold(true).
		Foreground(p.Accent)
	s.AgendaTime = base.
		Foreground(p.FgMuted)
	s.Muted = base.
		Foreground(p.FgMuted)

	s.Status = base.
		Foreground(p.FgMuted)
	s.Error = base.
		Bold(true).
		Foreground(p.Warning)
	s.Help = base.
		Foreground(p.FgMuted)
	s.Prompt = base.
		Foreground(p.Accent)

	s.Overlay = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.OverlayBg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.OverlayBorder).
		BorderBackground(p.OverlayBg).
		Padding(0, 1)
	s.OverlayTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Background(p.OverlayBg)

	return s
}

// Event returns the block style for e. Past events are muted and alt picks
// the alternate shade used to separate neighbouring overlap columns.
func (s *Styles) Event(e calendar.Event, past, alt bool) lipgloss.Style {
	key := eventStyleKey{color: e.Color, allDay: e.AllDay, past: past, alt: alt}
	if style, ok := s.eventCache[key]; ok {
		return style
	}

	c := s.palette.ForEvent(e.Color, e.AllDay)
	bg := c.Bg
	switch {
	case past && alt:
		bg = c.PastAlt
	case past:
		bg = c.PastBg
	case alt:
		bg = c.BgAlt
	}

	style := lipgloss.NewStyle().
		Foreground(c.Text).
		Background(bg)
	if past {
		style = style.Faint(true)
	}
	s.eventCache[key] = style
	return style
}

// EventMarker returns a style that paints e's own color as foreground, used
// for the bullets in month and agenda views.
func (s *Styles) EventMarker(e calendar.Event) lipgloss.Style {
	c := s.palette.ForEvent(e.Color, e.AllDay)
	return lipgloss.NewStyle().
		Foreground(c.Accent).
		Background(s.colorBg)
}
