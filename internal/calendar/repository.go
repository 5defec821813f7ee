package calendar

import "context"

// Repository is the event source the engine's windows are fetched from.
// The engine itself never calls it; callers compute a DateRange with
// WindowFor and hand the fetched events back to the layout functions.
type Repository interface {
	// CreateEvent adds a new event. An empty ID is replaced with NewID().
	CreateEvent(ctx context.Context, event *Event) error

	// CreateEvents adds multiple events atomically. Existing IDs are replaced.
	CreateEvents(ctx context.Context, events []*Event) error

	// GetEvent retrieves an event by ID. Returns ErrEventNotFound if missing.
	GetEvent(ctx context.Context, id string) (*Event, error)

	// DeleteEvent removes an event by ID. Returns ErrEventNotFound if missing.
	DeleteEvent(ctx context.Context, id string) error

	// ListEventsInRange returns every event overlapping the closed range,
	// ordered by start.
	ListEventsInRange(ctx context.Context, rng DateRange) ([]Event, error)

	// Close releases any resources held by the repository.
	Close() error
}
