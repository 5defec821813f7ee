package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/almanac/internal/calendar"
)

func TestCreateEvent(t *testing.T) {
	repo := newTestRepo(t)

	e := &calendar.Event{
		Title:    "Planning",
		Start:    time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
		Location: "Room 4",
		Color:    "#89b4fa",
	}

	if err := repo.CreateEvent(context.Background(), e); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if e.ID == "" {
		t.Fatal("expected ID to be set after insert")
	}

	got, err := repo.GetEvent(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if got.Title != e.Title || got.Location != e.Location || got.Color != e.Color {
		t.Errorf("got %+v, want %+v", got, e)
	}
	if !got.Start.Equal(e.Start) || !got.End.Equal(e.End) {
		t.Errorf("times = %v..%v, want %v..%v", got.Start, got.End, e.Start, e.End)
	}
	if got.AllDay {
		t.Error("expected timed event")
	}
}

func TestCreateEvent_PreservesSubSecondPrecision(t *testing.T) {
	repo := newTestRepo(t)

	start := time.Date(2025, 1, 15, 9, 0, 0, 123456789, time.UTC)
	e := &calendar.Event{ID: "precise", Title: "Ping", Start: start, End: start}
	if err := repo.CreateEvent(context.Background(), e); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	got, err := repo.GetEvent(context.Background(), "precise")
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if !got.Start.Equal(start) {
		t.Errorf("Start = %v, want %v", got.Start, start)
	}
}

func TestCreateEvent_NormalizesInvertedEvent(t *testing.T) {
	repo := newTestRepo(t)

	start := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	e := &calendar.Event{ID: "inv", Title: "Broken", Start: start, End: start.Add(-time.Hour)}
	if err := repo.CreateEvent(context.Background(), e); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	got, err := repo.GetEvent(context.Background(), "inv")
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if !got.End.Equal(start) {
		t.Errorf("End = %v, want %v", got.End, start)
	}
}

func TestGetEvent_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetEvent(context.Background(), "missing")
	if !errors.Is(err, calendar.ErrEventNotFound) {
		t.Errorf("got error %v, want %v", err, calendar.ErrEventNotFound)
	}
}

func TestDeleteEvent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	e := &calendar.Event{
		Title: "Lunch",
		Start: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 15, 13, 0, 0, 0, time.UTC),
	}
	if err := repo.CreateEvent(ctx, e); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	if err := repo.DeleteEvent(ctx, e.ID); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	if _, err := repo.GetEvent(ctx, e.ID); !errors.Is(err, calendar.ErrEventNotFound) {
		t.Errorf("expected deleted event to be gone, got %v", err)
	}
	if err := repo.DeleteEvent(ctx, e.ID); !errors.Is(err, calendar.ErrEventNotFound) {
		t.Errorf("second delete: got %v, want %v", err, calendar.ErrEventNotFound)
	}
}

func TestCreateEvents_ReplacesByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	batch := []*calendar.Event{
		{ID: "uid-1", Title: "Standup", Start: day.Add(9 * time.Hour), End: day.Add(9*time.Hour + 15*time.Minute), Source: "team.ics"},
		{ID: "uid-2", Title: "Retro", Start: day.Add(15 * time.Hour), End: day.Add(16 * time.Hour), Source: "team.ics"},
	}
	if err := repo.CreateEvents(ctx, batch); err != nil {
		t.Fatalf("CreateEvents failed: %v", err)
	}

	// Re-importing the same UID updates the stored event.
	update := []*calendar.Event{
		{ID: "uid-1", Title: "Standup (moved)", Start: day.Add(10 * time.Hour), End: day.Add(10*time.Hour + 15*time.Minute), Source: "team.ics"},
	}
	if err := repo.CreateEvents(ctx, update); err != nil {
		t.Fatalf("CreateEvents failed: %v", err)
	}

	events, err := repo.ListEventsInRange(ctx, calendar.WindowFor(day, calendar.ViewDay, 1))
	if err != nil {
		t.Fatalf("ListEventsInRange failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Title != "Standup (moved)" {
		t.Errorf("first event = %q", events[0].Title)
	}
}

func TestCreateEvents_Empty(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.CreateEvents(context.Background(), nil); err != nil {
		t.Errorf("CreateEvents(nil) = %v", err)
	}
}

func TestListEventsInRange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	events := []*calendar.Event{
		{ID: "yesterday", Title: "Ends at midnight", Start: day.Add(-2 * time.Hour), End: day},
		{ID: "overnight", Title: "Overnight", Start: day.Add(-2 * time.Hour), End: day.Add(time.Hour)},
		{ID: "morning", Title: "Morning", Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour)},
		{ID: "allday", Title: "Holiday", Start: day, End: day.AddDate(0, 0, 1), AllDay: true},
		{ID: "instant", Title: "Reminder", Start: day.Add(12 * time.Hour), End: day.Add(12 * time.Hour)},
		{ID: "tomorrow", Title: "Tomorrow", Start: day.AddDate(0, 0, 1), End: day.AddDate(0, 0, 1).Add(time.Hour)},
	}
	if err := repo.CreateEvents(ctx, events); err != nil {
		t.Fatalf("CreateEvents failed: %v", err)
	}

	got, err := repo.ListEventsInRange(ctx, calendar.WindowFor(day.Add(12*time.Hour), calendar.ViewDay, 1))
	if err != nil {
		t.Fatalf("ListEventsInRange failed: %v", err)
	}

	want := []string{"overnight", "allday", "morning", "instant"}
	if len(got) != len(want) {
		t.Fatalf("got %d events (%v), want %v", len(got), eventIDs(got), want)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("event %d = %s, want %s (all: %v)", i, got[i].ID, id, eventIDs(got))
		}
	}
	if !got[1].AllDay {
		t.Error("expected all-day flag to round-trip")
	}
}

func TestListEventsInRange_ReturnsRangeLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("Europe/Berlin not available")
	}

	repo := newTestRepo(t)
	ctx := context.Background()

	// 23:30 UTC on the 14th is 00:30 on the 15th in Berlin.
	e := &calendar.Event{
		ID:    "late",
		Title: "Late call",
		Start: time.Date(2025, 1, 14, 23, 30, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 15, 0, 30, 0, 0, time.UTC),
	}
	if err := repo.CreateEvent(ctx, e); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	rng := calendar.WindowFor(time.Date(2025, 1, 15, 12, 0, 0, 0, loc), calendar.ViewDay, 1)
	got, err := repo.ListEventsInRange(ctx, rng)
	if err != nil {
		t.Fatalf("ListEventsInRange failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	if got[0].Start.Location() != loc || got[0].Start.Hour() != 0 || got[0].Start.Minute() != 30 {
		t.Errorf("Start = %v, want 00:30 Berlin", got[0].Start)
	}
}

func TestNew_InvalidPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "dir", "test.db"))
	if err == nil {
		t.Error("expected error for unreachable database path")
	}
}

func eventIDs(events []calendar.Event) []string {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return ids
}

// newTestRepo creates a new SQLite repository in a temp directory.
func newTestRepo(t *testing.T) *SQLite {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}
