package ics

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in    string
		days  int
		clock time.Duration
	}{
		{"PT1H30M", 0, 90 * time.Minute},
		{"P1DT2H", 1, 2 * time.Hour},
		{"P3D", 3, 0},
		{"P2W", 14, 0},
		{"+PT45S", 0, 45 * time.Second},
		{"pt15m", 0, 15 * time.Minute},
		{"P0D", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := parseDuration(tt.in)
			if err != nil {
				t.Fatalf("parseDuration(%q) error: %v", tt.in, err)
			}
			if d.days != tt.days || d.clock != tt.clock {
				t.Errorf("parseDuration(%q) = %+v, want days=%d clock=%v", tt.in, d, tt.days, tt.clock)
			}
		})
	}
}

func TestParseDuration_Invalid(t *testing.T) {
	for _, in := range []string{"", "P", "PT", "1H", "-PT1H", "PT1X", "PTH", "PT30M1H", "P1W2D", "P1WT1H", "P1DT"} {
		if _, err := parseDuration(in); !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("parseDuration(%q) error = %v, want ErrInvalidDuration", in, err)
		}
	}
}

func TestIcalDuration_WholeDays(t *testing.T) {
	tests := []struct {
		d    icalDuration
		want int
	}{
		{icalDuration{days: 3}, 3},
		{icalDuration{clock: 24 * time.Hour}, 1},
		{icalDuration{clock: 25 * time.Hour}, 2},
		{icalDuration{days: 1, clock: time.Hour}, 2},
		{icalDuration{}, 0},
	}
	for _, tt := range tests {
		if got := tt.d.wholeDays(); got != tt.want {
			t.Errorf("%+v.wholeDays() = %d, want %d", tt.d, got, tt.want)
		}
	}
}

const durationSample = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//almanac//test//EN
BEGIN:VEVENT
UID:review
SUMMARY:Review
DTSTART:20250115T100000Z
DURATION:PT1H30M
END:VEVENT
BEGIN:VEVENT
UID:offsite
SUMMARY:Offsite
DTSTART:20250115T220000Z
DURATION:P1DT2H
END:VEVENT
BEGIN:VEVENT
UID:conference
SUMMARY:Conference
DTSTART;VALUE=DATE:20250120
DURATION:P3D
END:VEVENT
BEGIN:VEVENT
UID:sprint
SUMMARY:Sprint
DTSTART;VALUE=DATE:20250203
DURATION:P1W
END:VEVENT
BEGIN:VEVENT
UID:broken
SUMMARY:Broken
DTSTART:20250116T090000Z
DURATION:soon
END:VEVENT
BEGIN:VEVENT
UID:both
SUMMARY:Both
DTSTART:20250116T120000Z
DTEND:20250116T123000Z
DURATION:PT4H
END:VEVENT
END:VCALENDAR
`

func TestParse_DurationWithoutEnd(t *testing.T) {
	events, err := Parse(context.Background(), strings.NewReader(crlf(durationSample)), "team.ics", time.UTC)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := map[string]time.Duration{
		"review":     90 * time.Minute,
		"offsite":    26 * time.Hour,
		"conference": 72 * time.Hour,
		"sprint":     7 * 24 * time.Hour,
		"broken":     0,
		"both":       30 * time.Minute,
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for _, e := range events {
		d, ok := want[e.ID]
		if !ok {
			t.Errorf("unexpected event %q", e.ID)
			continue
		}
		if got := e.End.Sub(e.Start); got != d {
			t.Errorf("%s: duration = %v, want %v", e.ID, got, d)
		}
	}
}

func TestParse_DurationAddsCalendarDays(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("Europe/Berlin not available")
	}

	const src = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//almanac//test//EN
BEGIN:VEVENT
UID:trip
SUMMARY:Trip
DTSTART;TZID=Europe/Berlin:20251025T090000
DURATION:P1D
END:VEVENT
END:VCALENDAR
`
	events, err := Parse(context.Background(), strings.NewReader(crlf(src)), "team.ics", loc)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	end := events[0].End
	if end.Day() != 26 || end.Hour() != 9 {
		t.Errorf("End = %v, want 2025-10-26 09:00 Berlin", end)
	}
}
