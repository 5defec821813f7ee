package ics

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDuration indicates a DURATION value that is not an RFC 5545
// dur-value.
var ErrInvalidDuration = errors.New("invalid DURATION")

// icalDuration is a parsed dur-value. Days and weeks are nominal and kept
// apart from the exact clock part so they can be added on the calendar.
type icalDuration struct {
	days  int
	clock time.Duration
}

// addTo returns t moved forward by d, adding days in t's location.
func (d icalDuration) addTo(t time.Time) time.Time {
	return t.AddDate(0, 0, d.days).Add(d.clock)
}

// wholeDays rounds d up to calendar days, for all-day events.
func (d icalDuration) wholeDays() int {
	days := d.days + int(d.clock/(24*time.Hour))
	if d.clock%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// parseDuration parses values like "PT1H30M", "P1DT12H" or "P2W". Negative
// durations are rejected since an event cannot end before it starts.
func parseDuration(s string) (icalDuration, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "+")
	if strings.HasPrefix(v, "-") {
		return icalDuration{}, ErrInvalidDuration
	}
	v, ok := strings.CutPrefix(v, "P")
	if !ok || v == "" {
		return icalDuration{}, ErrInvalidDuration
	}

	datePart, timePart, hasTime := strings.Cut(v, "T")
	if hasTime && timePart == "" {
		return icalDuration{}, ErrInvalidDuration
	}

	var d icalDuration
	dateUnits, err := durationFields(datePart, "WD")
	if err != nil {
		return icalDuration{}, err
	}
	if w, ok := dateUnits['W']; ok {
		if len(dateUnits) > 1 || hasTime {
			return icalDuration{}, ErrInvalidDuration
		}
		d.days = 7 * w
	}
	d.days += dateUnits['D']

	timeUnits, err := durationFields(timePart, "HMS")
	if err != nil {
		return icalDuration{}, err
	}
	d.clock = time.Duration(timeUnits['H'])*time.Hour +
		time.Duration(timeUnits['M'])*time.Minute +
		time.Duration(timeUnits['S'])*time.Second
	return d, nil
}

// durationFields splits "1H30M" into numbers keyed by unit. Units must
// appear at most once and in the order given by units.
func durationFields(s, units string) (map[byte]int, error) {
	out := make(map[byte]int)
	next := 0
	for s != "" {
		i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
		if i <= 0 {
			return nil, ErrInvalidDuration
		}
		n, err := strconv.Atoi(s[:i])
		if err != nil {
			return nil, ErrInvalidDuration
		}
		pos := strings.IndexByte(units[next:], s[i])
		if pos < 0 {
			return nil, ErrInvalidDuration
		}
		out[s[i]] = n
		next += pos + 1
		s = s[i+1:]
	}
	return out, nil
}
