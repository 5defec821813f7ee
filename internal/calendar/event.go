// Package calendar is the event-layout and date-range engine.
//
// Every function in this package is a pure transformation of its inputs: it
// performs no I/O, keeps no package state and never mutates caller data, so
// results can be recomputed on every render pass.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrEndBeforeStart = errors.New("end must not be before start")
)

// Domain errors.
var (
	ErrEventNotFound = errors.New("event not found")
)

// Event is a concrete calendar occurrence. Start and End are instants already
// normalized to the caller's timezone; recurring events arrive expanded.
//
// Title, Description, Location, Color, Owner and Source are payload the engine
// passes through untouched.
type Event struct {
	ID     string
	Start  time.Time
	End    time.Time
	AllDay bool

	Title       string
	Description string
	Location    string
	Color       string
	Owner       string
	Source      string
}

// NewID returns a fresh opaque event identifier.
func NewID() string {
	return uuid.NewString()
}

// New creates a validated event with a generated ID.
func New(title string, start, end time.Time, allDay bool) (*Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s < %s", ErrEndBeforeStart, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return &Event{
		ID:     NewID(),
		Title:  title,
		Start:  start,
		End:    end,
		AllDay: allDay,
	}, nil
}

// Duration returns the event length, zero for inverted events.
func (e Event) Duration() time.Duration {
	if e.End.Before(e.Start) {
		return 0
	}
	return e.End.Sub(e.Start)
}

// String implements fmt.Stringer for logs and test output.
func (e Event) String() string {
	return fmt.Sprintf("%s %q [%s, %s)", e.ID, e.Title, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}
