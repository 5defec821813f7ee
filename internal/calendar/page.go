package calendar

import "time"

// Page is the data behind one screen of a view: the window around a
// reference date and the events overlapping it.
type Page struct {
	View         View
	Ref          time.Time
	WeekStartsOn int
	Range        DateRange
	Events       []Event
}

// NewPage builds the page for ref. Events outside the window are dropped.
func NewPage(ref time.Time, view View, weekStartsOn int, events []Event) *Page {
	view = view.OrDefault()
	p := &Page{
		View:         view,
		Ref:          ref,
		WeekStartsOn: weekStartsOn,
		Range:        WindowFor(ref, view, weekStartsOn),
	}
	for _, e := range events {
		if p.Range.Overlaps(e) {
			p.Events = append(p.Events, e)
		}
	}
	return p
}

// Covers reports whether the page was built for the same view and window
// that ref would produce.
func (p *Page) Covers(ref time.Time, view View, weekStartsOn int) bool {
	if p == nil || p.View != view.OrDefault() {
		return false
	}
	rng := WindowFor(ref, view, weekStartsOn)
	return p.Range.Start.Equal(rng.Start) && p.Range.End.Equal(rng.End)
}

// Layout runs the layout pipeline over the page's events.
func (p *Page) Layout(opts GridOptions) Layout {
	return LayoutRange(p.Events, p.Ref, p.View, opts)
}

// PageWindow keeps three consecutive pages (previous, current, next) so
// stepping through a view only has to load the new edge page.
type PageWindow struct {
	pages [3]*Page // [0]=prev, [1]=current, [2]=next
}

// NewPageWindow creates a window from three consecutive pages.
func NewPageWindow(prev, current, next *Page) *PageWindow {
	return &PageWindow{
		pages: [3]*Page{prev, current, next},
	}
}

// Current returns the focused (center) page.
func (w *PageWindow) Current() *Page {
	return w.pages[1]
}

// Previous returns the page before current.
func (w *PageWindow) Previous() *Page {
	return w.pages[0]
}

// Next returns the page after current.
func (w *PageWindow) Next() *Page {
	return w.pages[2]
}

// ShiftForward makes next the current page and newNext the next one.
func (w *PageWindow) ShiftForward(newNext *Page) {
	w.pages[0] = w.pages[1]
	w.pages[1] = w.pages[2]
	w.pages[2] = newNext
}

// ShiftBackward makes previous the current page and newPrev the previous one.
func (w *PageWindow) ShiftBackward(newPrev *Page) {
	w.pages[2] = w.pages[1]
	w.pages[1] = w.pages[0]
	w.pages[0] = newPrev
}

// SetNext replaces the next page once it has been loaded.
func (w *PageWindow) SetNext(p *Page) {
	w.pages[2] = p
}

// SetPrevious replaces the previous page once it has been loaded.
func (w *PageWindow) SetPrevious(p *Page) {
	w.pages[0] = p
}

// HasNext reports whether the next page is loaded.
func (w *PageWindow) HasNext() bool {
	return w.pages[2] != nil
}

// HasPrevious reports whether the previous page is loaded.
func (w *PageWindow) HasPrevious() bool {
	return w.pages[0] != nil
}
