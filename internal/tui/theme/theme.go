// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// DefaultName is the theme used when none is configured.
const DefaultName = "mocha"

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Grid lines, empty cells
	BgSelection string `toml:"bg_selection"` // Selected day
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Hour labels, days outside the month
	Accent      string `toml:"accent"`       // Title, headers, borders
	Event       string `toml:"event"`        // Timed events without their own color
	AllDay      string `toml:"all_day"`      // All-day and multi-day events
	Today       string `toml:"today"`        // Today's column and cell
	NowLine     string `toml:"now_line"`     // Current time marker
	Working     string `toml:"working"`      // Working hours gutter
	Warning     string `toml:"warning"`      // Errors and prompts

	// Overlay palette (help and go-to-date prompt)
	OverlayBg     string `toml:"overlay_bg"`
	OverlayBorder string `toml:"overlay_border"`
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = DefaultName
	}
	name = strings.ToLower(name)

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		if name != DefaultName {
			return Load(DefaultName)
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

func (t *Theme) applyDefaults() {
	if t.AllDay == "" {
		t.AllDay = t.Event
	}
	if t.NowLine == "" {
		t.NowLine = t.Warning
	}
	if t.Working == "" {
		t.Working = t.Accent
	}
	if t.OverlayBg == "" {
		t.OverlayBg = coalesce(t.BgHighlight, t.Bg)
	}
	if t.OverlayBorder == "" {
		t.OverlayBorder = t.Accent
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}
