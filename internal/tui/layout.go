package tui

const (
	headerLines     = 1 // title
	footerLines     = 2 // status and help
	timeGridHeader  = 2 // day headers and all-day row
	maxLinesPerHour = 4
)

// frame holds the sizes left inside the app border.
type frame struct {
	innerW int
	innerH int
	bodyH  int // lines between header and footer
}

func (m Model) frame() frame {
	innerW := max(m.width-2, 0)
	innerH := max(m.height-2, 0)
	return frame{
		innerW: innerW,
		innerH: innerH,
		bodyH:  max(innerH-headerLines-footerLines, 0),
	}
}

// gridMetrics describes the time grid in terminal lines. The engine's
// pixel positions are computed with one line per linesPerHour fraction, so
// Top and Height come back in lines.
type gridMetrics struct {
	linesPerHour int
	gridLines    int // visible grid lines
	totalLines   int // lines for all visible hours
}

func (m Model) gridMetrics() gridMetrics {
	visible := m.opts.Visible.OrDefault()
	hours := visible.Hours()
	gridLines := max(m.frame().bodyH-timeGridHeader, 0)

	lph := 1
	if hours > 0 {
		lph = clamp(gridLines/hours, 1, maxLinesPerHour)
	}
	return gridMetrics{
		linesPerHour: lph,
		gridLines:    gridLines,
		totalLines:   int(visible.GridHeight(float64(lph))),
	}
}

func (g gridMetrics) maxScroll() int {
	return max(g.totalLines-g.gridLines, 0)
}

// slotHeight is the engine slot height that maps one hour to linesPerHour
// terminal lines.
func (g gridMetrics) slotHeight() float64 {
	return float64(g.linesPerHour)
}
