// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/logging"
)

// statusTimeout is how long a status message stays visible.
const statusTimeout = 3 * time.Second

// WindowLoadedMsg is sent when the previous, current and next pages are
// loaded.
type WindowLoadedMsg struct {
	Window *calendar.PageWindow
}

// PageShiftedMsg is sent when a new edge page is loaded after navigation.
type PageShiftedMsg struct {
	Page    *calendar.Page
	Forward bool // true if shifted forward, false if backward
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsg is sent for temporary status messages.
type StatusMsg struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// PageRequest identifies a page to load.
type PageRequest struct {
	Ref          time.Time
	View         calendar.View
	WeekStartsOn int
}

// RequestFor returns the request that built p.
func RequestFor(p *calendar.Page) PageRequest {
	return PageRequest{Ref: p.Ref, View: p.View, WeekStartsOn: p.WeekStartsOn}
}

// Step returns the request for the neighbouring page in dir.
func (r PageRequest) Step(dir calendar.Direction) PageRequest {
	r.Ref = calendar.Step(r.Ref, r.View, dir, r.Ref)
	return r
}

func loadPage(ctx context.Context, repo calendar.Repository, req PageRequest) (*calendar.Page, error) {
	rng := calendar.WindowFor(req.Ref, req.View, req.WeekStartsOn)
	events, err := repo.ListEventsInRange(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", rng, err)
	}
	logging.FromContext(ctx).Debug("page loaded",
		"view", req.View,
		"start", rng.Start,
		"events", len(events),
	)
	return calendar.NewPage(req.Ref, req.View, req.WeekStartsOn, events), nil
}

// LoadWindow loads three pages (prev, current, next) around req.
func LoadWindow(ctx context.Context, repo calendar.Repository, req PageRequest) tea.Cmd {
	return func() tea.Msg {
		var pages [3]*calendar.Page
		for i, r := range []PageRequest{
			req.Step(calendar.DirectionPrev),
			req,
			req.Step(calendar.DirectionNext),
		} {
			p, err := loadPage(ctx, repo, r)
			if err != nil {
				return ErrMsg{Err: err}
			}
			pages[i] = p
		}
		return WindowLoadedMsg{Window: calendar.NewPageWindow(pages[0], pages[1], pages[2])}
	}
}

// LoadNextPage loads the page after current, where current is the page the
// window has just shifted onto.
func LoadNextPage(ctx context.Context, repo calendar.Repository, current PageRequest) tea.Cmd {
	return func() tea.Msg {
		p, err := loadPage(ctx, repo, current.Step(calendar.DirectionNext))
		if err != nil {
			return ErrMsg{Err: err}
		}
		return PageShiftedMsg{Page: p, Forward: true}
	}
}

// LoadPrevPage loads the page before current.
func LoadPrevPage(ctx context.Context, repo calendar.Repository, current PageRequest) tea.Cmd {
	return func() tea.Msg {
		p, err := loadPage(ctx, repo, current.Step(calendar.DirectionPrev))
		if err != nil {
			return ErrMsg{Err: err}
		}
		return PageShiftedMsg{Page: p, Forward: false}
	}
}

// CopyRange writes the ISO interval of rng to the system clipboard.
func CopyRange(rng calendar.DateRange) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(rng.String()); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsg{Msg: "Copied " + rng.String()}
	}
}

// ClearStatusAfter clears the status line once statusTimeout has passed.
func ClearStatusAfter() tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
