package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Today: bold cyan so the current day stands out in grids
	colorToday = color.New(color.FgCyan, color.Bold)

	// All-day events: yellow lane above the timed events
	colorAllDay = color.New(color.FgYellow)

	// Overlapping events: magenta marks shared columns
	colorOverlap = color.New(color.FgMagenta)

	// Working hours: green in the hour gutter
	colorWorking = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatToday(s string) string {
	return colorToday.Sprint(s)
}

func formatAllDay(s string) string {
	return colorAllDay.Sprint(s)
}

func formatOverlap(s string) string {
	return colorOverlap.Sprint(s)
}

func formatWorking(s string) string {
	return colorWorking.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
