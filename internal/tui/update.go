package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/logging"
	"github.com/javiermolinar/almanac/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		firstSize := m.width == 0 && m.height == 0
		m.width = msg.Width
		m.height = msg.Height
		if firstSize {
			m.resetScroll()
		} else {
			m.scroll = clamp(m.scroll, 0, m.maxScroll())
		}
		return m, nil

	case commands.WindowLoadedMsg:
		// Drop windows loaded for a date or view we have since left.
		cur := msg.Window.Current()
		if cur == nil || !cur.Covers(m.ref, m.view, m.opts.WeekStartsOn) {
			return m, nil
		}
		m.window = msg.Window
		m.loading = false
		m.err = nil
		return m, nil

	case commands.PageShiftedMsg:
		m.acceptEdge(msg.Page, msg.Forward)
		return m, nil

	case commands.ErrMsg:
		logging.FromContext(m.ctx).Error("tui command failed", "err", msg.Err)
		m.err = msg.Err
		m.loading = false
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = m.now().Add(5 * time.Second)
		return m, nil

	case commands.StatusMsg:
		m.err = nil
		m.setStatus(msg.Msg)
		return m, commands.ClearStatusAfter()

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.err = nil
		}
		return m, nil

	case tickMsg:
		return m, tickEveryMinute()
	}

	// Forward cursor blinks and other component messages to the prompt.
	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}
