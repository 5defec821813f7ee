package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/logging"
	"github.com/javiermolinar/almanac/internal/tui/commands"
)

type keyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Prev    key.Binding
	Next    key.Binding
	Today   key.Binding
	Day     key.Binding
	Week    key.Binding
	Month   key.Binding
	Year    key.Binding
	Agenda  key.Binding
	GoTo    key.Binding
	Copy    key.Binding
	Reload  key.Binding
	Help    key.Binding
	Quit    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:    key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "prev day")),
		Right:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "next day")),
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Prev:    key.NewBinding(key.WithKeys("p", "[", "pgup"), key.WithHelp("p/[", "prev page")),
		Next:    key.NewBinding(key.WithKeys("n", "]", "pgdown"), key.WithHelp("n/]", "next page")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Day:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "day view")),
		Week:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week view")),
		Month:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month view")),
		Year:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "year view")),
		Agenda:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "agenda")),
		GoTo:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to date")),
		Copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy range")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "go")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Today, k.GoTo, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Prev, k.Next, k.Today, k.GoTo},
		{k.Day, k.Week, k.Month, k.Year, k.Agenda},
		{k.Copy, k.Reload, k.Help, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	logging.FromContext(m.ctx).Debug("key",
		"key", msg.String(),
		"mode", m.mode,
		"view", m.view,
		"ref", m.ref.Format(time.DateOnly),
	)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	// Selection
	case key.Matches(msg, m.keys.Left):
		return m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		return m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		return m.moveVertical(-1)
	case key.Matches(msg, m.keys.Down):
		return m.moveVertical(1)

	// Paging
	case key.Matches(msg, m.keys.Prev):
		return m.step(calendar.DirectionPrev)
	case key.Matches(msg, m.keys.Next):
		return m.step(calendar.DirectionNext)
	case key.Matches(msg, m.keys.Today):
		return m.step(calendar.DirectionToday)

	// Views
	case key.Matches(msg, m.keys.Day):
		return m.switchView(calendar.ViewDay)
	case key.Matches(msg, m.keys.Week):
		return m.switchView(calendar.ViewWeek)
	case key.Matches(msg, m.keys.Month):
		return m.switchView(calendar.ViewMonth)
	case key.Matches(msg, m.keys.Year):
		return m.switchView(calendar.ViewYear)
	case key.Matches(msg, m.keys.Agenda):
		return m.switchView(calendar.ViewAgenda)

	case key.Matches(msg, m.keys.GoTo):
		m.mode = ModePrompt
		m.prompt.SetValue("")
		return m, m.prompt.Focus()

	case key.Matches(msg, m.keys.Copy):
		if p := m.page(); p != nil {
			return m, commands.CopyRange(p.Range)
		}
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, commands.LoadWindow(m.ctx, m.repo, m.request())

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
	}
	return m, nil
}

// handlePromptKeys handles the go-to-date prompt.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = ModeNormal
		m.prompt.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		value := m.prompt.Value()
		m.mode = ModeNormal
		m.prompt.Blur()

		date, err := dateutil.ParseRelativeDate(value, m.today())
		if err != nil {
			m.setStatus("Invalid date: " + value)
			return m, commands.ClearStatusAfter()
		}
		return m.goTo(date)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleHelpKeys closes the help overlay on any key.
func (m Model) handleHelpKeys(tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	return m, nil
}
