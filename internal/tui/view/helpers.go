package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox renders content in a lipgloss.Place box with background fill.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(
		w,
		h,
		lipgloss.Left,
		vAlign,
		content,
		lipgloss.WithWhitespaceBackground(bg),
	)
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground pads content to width/height with a background color.
// Extra lines are dropped.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	paddingStyle := lipgloss.NewStyle().Background(bg)
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]
	for i, line := range lines {
		lineWidth := lipgloss.Width(line)
		if lineWidth >= width {
			continue
		}
		lines[i] = line + paddingStyle.Render(strings.Repeat(" ", width-lineWidth))
	}
	return strings.Join(lines, "\n")
}

// SplitWidth divides total cells into n columns, giving the remainder to the
// leftmost columns.
func SplitWidth(total, n int) []int {
	if n <= 0 {
		return nil
	}
	total = max(total, 0)
	widths := make([]int, n)
	base, extra := total/n, total%n
	for i := range widths {
		widths[i] = base
		if i < extra {
			widths[i]++
		}
	}
	return widths
}

// RenderOverlay centers overlay over base and splices it in line by line.
func RenderOverlay(base, overlay string, width, height int, overlayBg lipgloss.Color) string {
	overlayLines := strings.Split(overlay, "\n")
	overlayHeight := len(overlayLines)
	if overlay == "" || overlayHeight == 0 {
		return base
	}

	overlayWidth := 0
	for _, line := range overlayLines {
		overlayWidth = max(overlayWidth, lipgloss.Width(line))
	}
	overlayWidth = min(overlayWidth, width)
	if overlayWidth == 0 {
		return base
	}

	top := max((height-overlayHeight)/2, 0)
	left := max((width-overlayWidth)/2, 0)

	for i, line := range overlayLines {
		lineWidth := lipgloss.Width(line)
		if lineWidth > overlayWidth {
			line = ansi.Cut(line, 0, overlayWidth)
		}
		if lineWidth < overlayWidth {
			paddingStyle := lipgloss.NewStyle().Background(overlayBg)
			line += paddingStyle.Render(strings.Repeat(" ", overlayWidth-lineWidth))
		}
		line = ApplyBackgroundResets(line, overlayBg)
		overlayLines[i] = line + ansi.ResetStyle
	}

	baseLines := strings.Split(PadLinesWithBackground(base, width, height, lipgloss.Color("")), "\n")

	lines := make([]string, 0, height)
	for row := 0; row < height && row < len(baseLines); row++ {
		if row < top || row >= top+overlayHeight {
			lines = append(lines, baseLines[row])
			continue
		}

		baseLine := baseLines[row]
		leftSlice := ansi.Cut(baseLine, 0, left)
		rightSlice := ansi.Cut(baseLine, left+overlayWidth, width)
		lines = append(lines, leftSlice+overlayLines[row-top]+rightSlice)
	}

	return strings.Join(lines, "\n")
}

// ApplyBackgroundResets reapplies bg after every ANSI reset in line, so the
// overlay background survives nested styles.
func ApplyBackgroundResets(line string, bg lipgloss.Color) string {
	bgSeq := BackgroundSeq(bg)
	if bgSeq == "" {
		return line
	}
	line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[0m", "\x1b[0m"+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+bgSeq)
	return line
}

// BackgroundSeq returns the background escape sequence for bg.
func BackgroundSeq(bg lipgloss.Color) string {
	if bg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
}
