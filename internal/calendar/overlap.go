package calendar

import (
	"cmp"
	"slices"
	"time"
)

// ColumnAssignment places one timed event in an overlap column.
type ColumnAssignment struct {
	Event        Event
	Column       int // 0-based lane index
	TotalColumns int // lanes used by the whole day
}

// AssignColumns partitions the timed events of one day into side-by-side
// columns so that no two events sharing a column overlap in time.
//
// Events are sorted by start, longer events first on ties, then placed
// greedily into the leftmost column whose last event has already ended
// (end <= start). A new column is opened when none is free. TotalColumns is
// the number of columns opened and is the same for every event of the day,
// even for events that overlap nothing. It always equals MaxConcurrent.
//
// Inverted events are treated as zero-duration. The input slice is not
// modified; assignments are returned in placement order.
func AssignColumns(events []Event) []ColumnAssignment {
	if len(events) == 0 {
		return nil
	}

	normalized := make([]Event, len(events))
	for i, e := range events {
		normalized[i] = Normalize(e)
	}
	order, columns, total := placeColumns(normalized)

	out := make([]ColumnAssignment, len(order))
	for i, idx := range order {
		out[i] = ColumnAssignment{Event: normalized[idx], Column: columns[idx], TotalColumns: total}
	}
	return out
}

// placeColumns runs the greedy placement over normalized events. It returns
// the placement order as indexes into events, the column of each event by
// index, and the number of columns opened.
func placeColumns(events []Event) (order []int, columns []int, total int) {
	order = make([]int, len(events))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return compareForLayout(events[a], events[b])
	})

	columns = make([]int, len(events))
	var columnEnds []time.Time
	for _, idx := range order {
		e := events[idx]
		col := -1
		for i, end := range columnEnds {
			if !end.After(e.Start) {
				col = i
				break
			}
		}
		if col < 0 {
			col = len(columnEnds)
			columnEnds = append(columnEnds, e.End)
		} else {
			columnEnds[col] = e.End
		}
		columns[idx] = col
	}
	return order, columns, len(columnEnds)
}

// compareForLayout orders events by start ascending, duration descending,
// then ID so the layout is deterministic.
func compareForLayout(a, b Event) int {
	if c := a.Start.Compare(b.Start); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Duration(), a.Duration()); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// MaxConcurrent returns the largest number of events alive at the same
// instant, treating each event as the half-open interval [Start, End). A
// zero-duration event is alive only at its own instant, and instants sharing
// a moment count once since they can share a column.
func MaxConcurrent(events []Event) int {
	const (
		edgeEnd = iota
		edgeStart
		edgeInstant
	)
	type edge struct {
		at   time.Time
		kind int
	}
	edges := make([]edge, 0, 2*len(events))
	for _, e := range events {
		e = Normalize(e)
		if !e.End.After(e.Start) {
			edges = append(edges, edge{e.Start, edgeInstant})
			continue
		}
		edges = append(edges, edge{e.Start, edgeStart}, edge{e.End, edgeEnd})
	}
	// At the same moment, ends go first so back-to-back events do not
	// overlap, and instants see every event that has started.
	slices.SortFunc(edges, func(a, b edge) int {
		if c := a.at.Compare(b.at); c != 0 {
			return c
		}
		return cmp.Compare(a.kind, b.kind)
	})

	alive, peak := 0, 0
	for _, ed := range edges {
		switch ed.kind {
		case edgeEnd:
			alive--
		case edgeStart:
			alive++
			peak = max(peak, alive)
		case edgeInstant:
			peak = max(peak, alive+1)
		}
	}
	return peak
}
