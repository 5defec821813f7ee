// Package theme provides color themes for the TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Today       lipgloss.Color
	NowLine     lipgloss.Color
	Working     lipgloss.Color
	Warning     lipgloss.Color

	Event  EventColors
	AllDay EventColors

	TextOnToday lipgloss.Color

	OverlayBg     lipgloss.Color
	OverlayBorder lipgloss.Color

	light bool
	bg    string
	fg    string
	cache map[string]EventColors
}

// EventColors holds the block shades for one event color.
type EventColors struct {
	Bg      lipgloss.Color // Block background
	BgAlt   lipgloss.Color // Background for odd overlap columns
	PastBg  lipgloss.Color // Block background once the event has ended
	PastAlt lipgloss.Color
	Text    lipgloss.Color // Title text on Bg
	Accent  lipgloss.Color // The undarkened color, used for markers
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	p := &Palette{
		Bg:          Color(t.Bg),
		BgHighlight: Color(t.BgHighlight),
		BgSelection: Color(t.BgSelection),
		Fg:          Color(t.Fg),
		FgMuted:     Color(t.FgMuted),
		Accent:      Color(t.Accent),
		Today:       Color(t.Today),
		NowLine:     Color(t.NowLine),
		Working:     Color(t.Working),
		Warning:     Color(t.Warning),

		TextOnToday: Color(readableOn(t.Today, t.Bg, t.Fg)),

		OverlayBg:     Color(coalesce(t.OverlayBg, t.BgHighlight, t.Bg)),
		OverlayBorder: Color(coalesce(t.OverlayBorder, t.Accent)),

		light: isLightTheme(t.Bg),
		bg:    t.Bg,
		fg:    t.Fg,
		cache: make(map[string]EventColors),
	}
	p.Event = p.derive(t.Event)
	p.AllDay = p.derive(t.AllDay)
	return p
}

// ForEvent returns the shades for an event's own color, or the theme's
// default event shades when hex is not a #rrggbb color.
func (p *Palette) ForEvent(hex string, allDay bool) EventColors {
	if !validHex(hex) {
		if allDay {
			return p.AllDay
		}
		return p.Event
	}
	if c, ok := p.cache[hex]; ok {
		return c
	}
	c := p.derive(hex)
	p.cache[hex] = c
	return c
}

func (p *Palette) derive(hex string) EventColors {
	var base, past string
	if p.light {
		base = blend(hex, p.bg, 0.75)
		past = blend(hex, p.bg, 0.88)
	} else {
		base = darken(hex)
		past = mute(hex)
	}
	return EventColors{
		Bg:      Color(base),
		BgAlt:   Color(alternate(base, p.light)),
		PastBg:  Color(past),
		PastAlt: Color(alternate(past, p.light)),
		Text:    Color(readableOn(base, p.bg, p.fg)),
		Accent:  Color(hex),
	}
}

var (
	black = colorful.Color{}
	white = colorful.Color{R: 1, G: 1, B: 1}
)

// validHex reports whether hex is a #rrggbb color.
func validHex(hex string) bool {
	if len(hex) != 7 || hex[0] != '#' {
		return false
	}
	for _, c := range hex[1:] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

func parse(hex string) (colorful.Color, bool) {
	if !validHex(hex) {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(hex)
	return c, err == nil
}

func isLightTheme(bg string) bool {
	return luminance(bg) > 0.55
}

// darken is the block background on dark themes: half brightness, with a
// floor so dark event colors stay visible.
func darken(hex string) string {
	return dim(hex, 0.50, 40.0/255)
}

// mute is the block background for past events on dark themes.
func mute(hex string) string {
	return dim(hex, 0.30, 30.0/255)
}

func dim(hex string, factor, floor float64) string {
	c, ok := parse(hex)
	if !ok {
		return hex
	}
	c = c.BlendRgb(black, 1-factor)
	c.R, c.G, c.B = max(c.R, floor), max(c.G, floor), max(c.B, floor)
	return c.Hex()
}

// alternate returns the shade used for odd overlap columns.
func alternate(hex string, light bool) string {
	c, ok := parse(hex)
	if !ok {
		return hex
	}
	if light {
		return c.BlendRgb(black, 0.10).Hex()
	}
	return c.BlendRgb(white, 0.30).Hex()
}

// blend mixes ratio of b into a.
func blend(a, b string, ratio float64) string {
	ca, ok := parse(a)
	if !ok {
		return a
	}
	cb, ok := parse(b)
	if !ok {
		return a
	}
	ratio = min(max(ratio, 0), 1)
	return ca.BlendRgb(cb, ratio).Clamped().Hex()
}

// readableOn picks whichever of the two text colors contrasts more with bg.
func readableOn(bg, lightText, darkText string) string {
	if contrast(bg, lightText) >= contrast(bg, darkText) {
		return lightText
	}
	return darkText
}

// contrast is the WCAG contrast ratio between two colors.
func contrast(a, b string) float64 {
	la, lb := luminance(a), luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// luminance is the WCAG relative luminance of hex, 0 for invalid colors.
func luminance(hex string) float64 {
	c, ok := parse(hex)
	if !ok {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
