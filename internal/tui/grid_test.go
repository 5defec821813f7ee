package tui

import (
	"testing"

	"github.com/javiermolinar/almanac/internal/calendar"
)

func TestBlocksFor(t *testing.T) {
	d := calendar.DayLayout{
		Day: calendar.Day{Date: day(15)},
		Positioned: []calendar.PositionedEvent{
			{Event: calendar.Event{ID: "a"}, Top: 20, Height: 2, Column: 0, TotalColumns: 2},
			{Event: calendar.Event{ID: "b"}, Top: 21, Height: 2, Column: 1, TotalColumns: 2},
			// Shorter than a line still takes one.
			{Event: calendar.Event{ID: "c"}, Top: 30.5, Height: 0.25, Column: 0, TotalColumns: 1},
		},
	}

	blocks, lanes := blocksFor(d)
	if lanes != 2 {
		t.Errorf("lanes = %d, want 2", lanes)
	}

	tests := []struct {
		id          string
		top, bottom int
		lane        int
	}{
		{id: "a", top: 20, bottom: 22, lane: 0},
		{id: "b", top: 21, bottom: 23, lane: 1},
		{id: "c", top: 30, bottom: 31, lane: 0},
	}
	if len(blocks) != len(tests) {
		t.Fatalf("blocks = %d, want %d", len(blocks), len(tests))
	}
	for i, tt := range tests {
		b := blocks[i]
		if b.event.ID != tt.id || b.top != tt.top || b.bottom != tt.bottom || b.lane != tt.lane {
			t.Errorf("block %d = {%s %d-%d lane %d}, want {%s %d-%d lane %d}",
				i, b.event.ID, b.top, b.bottom, b.lane, tt.id, tt.top, tt.bottom, tt.lane)
		}
		if !b.day.Equal(day(15)) {
			t.Errorf("block %d day = %v, want Jan 15", i, b.day)
		}
	}
}

func TestBlocksFor_Empty(t *testing.T) {
	blocks, lanes := blocksFor(calendar.DayLayout{Day: calendar.Day{Date: day(15)}})
	if len(blocks) != 0 || lanes != 1 {
		t.Errorf("blocksFor(empty) = %d blocks, %d lanes; want 0, 1", len(blocks), lanes)
	}
}

func TestBlockAt_PrefersLaterStart(t *testing.T) {
	blocks := []block{
		{event: calendar.Event{ID: "first"}, top: 0, bottom: 3, lane: 0},
		{event: calendar.Event{ID: "second"}, top: 2, bottom: 4, lane: 0},
		{event: calendar.Event{ID: "other"}, top: 0, bottom: 4, lane: 1},
	}

	tests := []struct {
		lane, y int
		want    string
	}{
		{lane: 0, y: 0, want: "first"},
		{lane: 0, y: 2, want: "second"},
		{lane: 0, y: 3, want: "second"},
		{lane: 1, y: 3, want: "other"},
		{lane: 0, y: 4, want: ""},
	}
	for _, tt := range tests {
		b, ok := blockAt(blocks, tt.lane, tt.y)
		got := ""
		if ok {
			got = b.event.ID
		}
		if got != tt.want {
			t.Errorf("blockAt(lane %d, y %d) = %q, want %q", tt.lane, tt.y, got, tt.want)
		}
	}
}

func TestBlockText(t *testing.T) {
	e := calendar.Event{
		Title:    "Review",
		Location: "Room 4",
		Start:    at(15, 9, 0),
		End:      at(15, 10, 30),
	}
	tall := block{event: e, day: day(15), top: 10, bottom: 14}
	short := block{event: e, day: day(15), top: 10, bottom: 11}

	tests := []struct {
		name string
		b    block
		line int
		want string
	}{
		{name: "title", b: tall, line: 0, want: "Review"},
		{name: "span", b: tall, line: 1, want: "09:00-10:30"},
		{name: "location", b: tall, line: 2, want: "@Room 4"},
		{name: "blank", b: tall, line: 3, want: ""},
		{name: "single line", b: short, line: 0, want: "09:00-10:30 Review"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := blockText(tt.b, tt.line); got != tt.want {
				t.Errorf("blockText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBlockText_ContinuesFromPreviousDay(t *testing.T) {
	e := calendar.Event{Title: "Night shift", Start: at(14, 22, 0), End: at(15, 6, 0)}
	b := block{event: e, day: day(15), top: 0, bottom: 6}

	if got := blockText(b, 1); got != "…-06:00" {
		t.Errorf("blockText() = %q, want %q", got, "…-06:00")
	}
}

func TestGridMetrics(t *testing.T) {
	tests := []struct {
		name             string
		height           int
		wantLinesPerHour int
		wantMaxScroll    int
	}{
		{name: "tall", height: 60, wantLinesPerHour: 2, wantMaxScroll: 0},
		{name: "short", height: 20, wantLinesPerHour: 1, wantMaxScroll: 11},
		{name: "huge", height: 200, wantLinesPerHour: maxLinesPerHour, wantMaxScroll: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Model{width: 120, height: tt.height, opts: calendar.DefaultGridOptions()}
			g := m.gridMetrics()
			if g.linesPerHour != tt.wantLinesPerHour {
				t.Errorf("linesPerHour = %d, want %d", g.linesPerHour, tt.wantLinesPerHour)
			}
			if got := g.maxScroll(); got != tt.wantMaxScroll {
				t.Errorf("maxScroll = %d, want %d", got, tt.wantMaxScroll)
			}
		})
	}
}
