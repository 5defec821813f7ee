// Package tui provides the terminal user interface for almanac.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/logging"
	"github.com/javiermolinar/almanac/internal/tui/commands"
	"github.com/javiermolinar/almanac/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt      // Go-to-date prompt is focused
	ModeHelp        // Full key help overlay
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	ctx    context.Context
	repo   calendar.Repository
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles
	keys   keyMap
	help   help.Model

	// Calendar settings resolved from config
	loc     *time.Location
	opts    calendar.GridOptions
	working calendar.WorkingHours
	now     func() time.Time

	// State
	view    calendar.View
	ref     time.Time // Selected date; the page is the window around it
	window  *calendar.PageWindow
	mode    Mode
	loading bool

	// Components
	prompt textinput.Model

	// Terminal dimensions and scrolling
	width  int
	height int
	scroll int // First visible line of the time grid or agenda

	// Messages
	statusMsg  string
	statusTime time.Time
	err        error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
		m.ref = m.today()
	}
}

// New creates a new TUI model.
func New(ctx context.Context, repo calendar.Repository, cfg *config.Config, opts ...ModelOption) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	loc, err := cfg.Location()
	if err != nil {
		loc = time.Local
	}

	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD, today, next-monday, ..."
	ti.Prompt = "Go to: "
	ti.CharLimit = 32
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.Empty
	ti.PlaceholderStyle = styles.Muted

	h := help.New()
	h.Styles.ShortKey = styles.Prompt
	h.Styles.ShortDesc = styles.Help
	h.Styles.ShortSeparator = styles.Help
	h.Styles.FullKey = styles.Prompt
	h.Styles.FullDesc = styles.Help
	h.Styles.FullSeparator = styles.Help

	m := &Model{
		ctx:     ctx,
		repo:    repo,
		config:  cfg,
		theme:   t,
		styles:  styles,
		keys:    defaultKeyMap(),
		help:    h,
		loc:     loc,
		opts:    cfg.GridOptions(),
		working: cfg.Schedule(),
		now:     time.Now,
		view:    cfg.View(),
		mode:    ModeNormal,
		prompt:  ti,
		loading: true,
	}
	m.ref = m.today()

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		commands.LoadWindow(m.ctx, m.repo, m.request()),
		tickEveryMinute(),
	)
}

// Run starts the TUI.
func Run(ctx context.Context, repo calendar.Repository, cfg *config.Config) error {
	logger := logging.FromContext(ctx)
	logger.Debug("tui starting", "view", cfg.View(), "theme", cfg.UI.Theme)

	model := New(ctx, repo, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()

	logger.Debug("tui stopped", "err", err)
	return err
}

// today returns the current instant in the configured timezone.
func (m Model) today() time.Time {
	return m.now().In(m.loc)
}

// request describes the page around the selected date.
func (m Model) request() commands.PageRequest {
	return commands.PageRequest{
		Ref:          m.ref,
		View:         m.view,
		WeekStartsOn: m.opts.WeekStartsOn,
	}
}

// page returns the loaded page for the selected date, or nil while loading.
func (m Model) page() *calendar.Page {
	if m.window == nil {
		return nil
	}
	return m.window.Current()
}

type tickMsg time.Time

// tickEveryMinute redraws the now line.
func tickEveryMinute() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
