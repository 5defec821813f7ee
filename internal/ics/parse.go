// Package ics imports calendar events from iCalendar (RFC 5545) data.
package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/logging"
)

var (
	// ErrMissingUID indicates a VEVENT without a UID property.
	ErrMissingUID = errors.New("missing UID")
	// ErrMissingStart indicates a VEVENT without a usable DTSTART.
	ErrMissingStart = errors.New("missing DTSTART")
)

const dateLayout = "20060102"

// Parse reads an iCalendar stream and returns one event per VEVENT.
// Events are tagged with source. All-day dates are placed at midnight in loc,
// which defaults to time.Local. VEVENTs that cannot be converted are logged
// and skipped. Recurrence rules are not expanded; only the first occurrence
// is imported.
func Parse(ctx context.Context, r io.Reader, source string, loc *time.Location) ([]calendar.Event, error) {
	if loc == nil {
		loc = time.Local
	}
	logger := logging.FromContext(ctx)

	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	var events []calendar.Event
	for _, ve := range cal.Events() {
		e, err := convert(ve, loc)
		if err != nil {
			logger.Warn("skipping vevent", "source", source, "uid", e.ID, "error", err)
			continue
		}
		e.Source = source
		events = append(events, e)
	}

	logger.Info("ics parse completed", "source", source, "event_count", len(events))
	return events, nil
}

// ParseFile opens path and parses it with Parse, using the file's base name
// as the event source.
func ParseFile(ctx context.Context, path string, loc *time.Location) ([]calendar.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening calendar file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(ctx, f, filepath.Base(path), loc)
}

func convert(ve *ical.VEvent, loc *time.Location) (calendar.Event, error) {
	var e calendar.Event

	uid := propValue(ve, ical.ComponentPropertyUniqueId)
	if uid == "" {
		return e, ErrMissingUID
	}
	e.ID = uid

	e.Title = propValue(ve, ical.ComponentPropertySummary)
	if e.Title == "" {
		e.Title = "(No title)"
	}
	e.Description = propValue(ve, ical.ComponentPropertyDescription)
	e.Location = propValue(ve, ical.ComponentPropertyLocation)
	e.Color = propValue(ve, ical.ComponentProperty("COLOR"))
	e.Owner = strings.TrimPrefix(strings.ToLower(propValue(ve, ical.ComponentPropertyOrganizer)), "mailto:")

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil || strings.TrimSpace(dtStart.Value) == "" {
		return e, ErrMissingStart
	}

	if isDateOnly(dtStart) {
		return convertAllDay(ve, e, dtStart, loc)
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return e, fmt.Errorf("%w: %v", ErrMissingStart, err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		end = start
		if d, ok := eventDuration(ve); ok {
			end = d.addTo(start)
		}
	}

	e.Start = start.In(loc)
	e.End = end.In(loc)
	return e, nil
}

func convertAllDay(ve *ical.VEvent, e calendar.Event, dtStart *ical.IANAProperty, loc *time.Location) (calendar.Event, error) {
	start, err := parseDate(dtStart.Value, loc)
	if err != nil {
		return e, fmt.Errorf("%w: %v", ErrMissingStart, err)
	}

	end := start.AddDate(0, 0, 1)
	if dtEnd := ve.GetProperty(ical.ComponentPropertyDtEnd); dtEnd != nil {
		if parsed, err := parseDate(dtEnd.Value, loc); err == nil && parsed.After(start) {
			end = parsed
		}
	} else if d, ok := eventDuration(ve); ok && d.wholeDays() > 0 {
		end = start.AddDate(0, 0, d.wholeDays())
	}

	e.Start = start
	e.End = end
	e.AllDay = true
	return e, nil
}

// eventDuration returns the DURATION of an event that has no DTEND.
func eventDuration(ve *ical.VEvent) (icalDuration, bool) {
	if ve.GetProperty(ical.ComponentPropertyDtEnd) != nil {
		return icalDuration{}, false
	}
	v := propValue(ve, ical.ComponentPropertyDuration)
	if v == "" {
		return icalDuration{}, false
	}
	d, err := parseDuration(v)
	return d, err == nil
}

// isDateOnly reports whether a date property carries VALUE=DATE or a value
// without a time part.
func isDateOnly(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func parseDate(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	if len(v) > len(dateLayout) {
		v = v[:len(dateLayout)]
	}
	return time.ParseInLocation(dateLayout, v, loc)
}

func propValue(ve *ical.VEvent, prop ical.ComponentProperty) string {
	p := ve.GetProperty(prop)
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.Value)
}
