// Package db provides SQLite storage for calendar events.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/logging"
)

// timeLayout is fixed-width so that text comparison in SQL matches
// chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLite implements calendar.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ calendar.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

const insertEvent = `
	INSERT OR REPLACE INTO events (
		id, title, description, location, color, owner, source,
		start_at, end_at, all_day, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectEvent = `
	SELECT id, title, description, location, color, owner, source,
	       start_at, end_at, all_day
	FROM events
`

// CreateEvent stores an event, generating an ID when it has none.
// Inverted events are stored normalized to an instant at their start.
func (s *SQLite) CreateEvent(ctx context.Context, e *calendar.Event) error {
	if e.ID == "" {
		e.ID = calendar.NewID()
	}

	if _, err := s.db.ExecContext(ctx, insertEvent, eventArgs(e, time.Now())...); err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}

	logging.FromContext(ctx).Debug("event stored", "id", e.ID, "start", e.Start)
	return nil
}

// CreateEvents stores multiple events in a single transaction.
// Events sharing an ID with a stored event replace it.
func (s *SQLite) CreateEvents(ctx context.Context, events []*calendar.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertEvent)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now()
	for _, e := range events {
		if e.ID == "" {
			e.ID = calendar.NewID()
		}
		if _, err := stmt.ExecContext(ctx, eventArgs(e, now)...); err != nil {
			return fmt.Errorf("inserting event %q: %w", e.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	logging.FromContext(ctx).Debug("events stored", "count", len(events))
	return nil
}

// GetEvent retrieves an event by ID.
func (s *SQLite) GetEvent(ctx context.Context, id string) (*calendar.Event, error) {
	row := s.db.QueryRowContext(ctx, selectEvent+` WHERE id = ?`, id)

	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", id, calendar.ErrEventNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}

	return &e, nil
}

// DeleteEvent removes an event by ID.
func (s *SQLite) DeleteEvent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("event %s: %w", id, calendar.ErrEventNotFound)
	}

	return nil
}

// ListEventsInRange returns every event overlapping rng, ordered by start.
// Times are returned in the location of rng.Start.
func (s *SQLite) ListEventsInRange(ctx context.Context, rng calendar.DateRange) ([]calendar.Event, error) {
	query := selectEvent + `
		WHERE start_at <= ? AND end_at >= ?
		ORDER BY start_at, end_at DESC, id
	`

	rows, err := s.db.QueryContext(ctx, query, formatTime(rng.End), formatTime(rng.Start))
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	loc := rng.Start.Location()
	var events []calendar.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		// The query is a superset; the exclusive end is checked here.
		if !rng.Overlaps(e) {
			continue
		}
		e.Start = e.Start.In(loc)
		e.End = e.End.In(loc)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	logging.FromContext(ctx).Debug("events listed", "range", rng.String(), "count", len(events))
	return events, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(sc scanner) (calendar.Event, error) {
	var (
		e       calendar.Event
		startAt string
		endAt   string
		allDay  int
	)

	err := sc.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Location,
		&e.Color,
		&e.Owner,
		&e.Source,
		&startAt,
		&endAt,
		&allDay,
	)
	if err != nil {
		return calendar.Event{}, err
	}

	if e.Start, err = parseTime(startAt); err != nil {
		return calendar.Event{}, fmt.Errorf("parsing start: %w", err)
	}
	if e.End, err = parseTime(endAt); err != nil {
		return calendar.Event{}, fmt.Errorf("parsing end: %w", err)
	}
	e.AllDay = allDay != 0

	return e, nil
}

func eventArgs(e *calendar.Event, createdAt time.Time) []any {
	n := calendar.Normalize(*e)
	allDay := 0
	if n.AllDay {
		allDay = 1
	}
	return []any{
		n.ID,
		n.Title,
		n.Description,
		n.Location,
		n.Color,
		n.Owner,
		n.Source,
		formatTime(n.Start),
		formatTime(n.End),
		allDay,
		createdAt.UTC().Format(time.RFC3339),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
