package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func darkTheme() *Theme {
	return &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Event:       "#112233",
		AllDay:      "#445566",
		Today:       "#777777",
		Warning:     "#888888",
	}
}

func TestDim(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "darken halves", got: darken("#c86432"), want: "#643228"},
		{name: "darken floors channels", got: darken("#000000"), want: "#282828"},
		{name: "mute floors channels", got: mute("#102030"), want: "#1e1e1e"},
		{name: "invalid passes through", got: darken("blue"), want: "blue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestBlend(t *testing.T) {
	tests := []struct {
		a, b  string
		ratio float64
		want  string
	}{
		{a: "#000000", b: "#ffffff", ratio: 0, want: "#000000"},
		{a: "#000000", b: "#ffffff", ratio: 1, want: "#ffffff"},
		{a: "#000000", b: "#ffffff", ratio: 2, want: "#ffffff"},
		{a: "#ff0000", b: "nope", ratio: 0.5, want: "#ff0000"},
	}
	for _, tt := range tests {
		if got := blend(tt.a, tt.b, tt.ratio); got != tt.want {
			t.Errorf("blend(%q, %q, %v) = %q, want %q", tt.a, tt.b, tt.ratio, got, tt.want)
		}
	}
}

func TestNewPalette_EventShades(t *testing.T) {
	base := darkTheme()
	palette := NewPalette(base)

	if want := lipgloss.Color(darken(base.Event)); palette.Event.Bg != want {
		t.Errorf("Event.Bg = %q, want %q", palette.Event.Bg, want)
	}
	if want := lipgloss.Color(darken(base.AllDay)); palette.AllDay.Bg != want {
		t.Errorf("AllDay.Bg = %q, want %q", palette.AllDay.Bg, want)
	}
	if want := lipgloss.Color(alternate(mute(base.Event), false)); palette.Event.PastAlt != want {
		t.Errorf("Event.PastAlt = %q, want %q", palette.Event.PastAlt, want)
	}
	if palette.Event.Accent != lipgloss.Color(base.Event) {
		t.Errorf("Event.Accent = %q, want %q", palette.Event.Accent, base.Event)
	}
	// Odd columns are lighter on dark themes.
	if luminance(string(palette.Event.BgAlt)) <= luminance(string(palette.Event.Bg)) {
		t.Error("Event.BgAlt should be lighter than Event.Bg")
	}
}

func TestNewPalette_OverlayFallbacks(t *testing.T) {
	base := darkTheme()
	palette := NewPalette(base)

	if palette.OverlayBg != lipgloss.Color(base.BgHighlight) {
		t.Errorf("OverlayBg = %q, want %q", palette.OverlayBg, base.BgHighlight)
	}
	if palette.OverlayBorder != lipgloss.Color(base.Accent) {
		t.Errorf("OverlayBorder = %q, want %q", palette.OverlayBorder, base.Accent)
	}
}

func TestNewPalette_LightThemeLightensBlocks(t *testing.T) {
	base := &Theme{
		Bg:          "#f5f5f5",
		BgHighlight: "#eeeeee",
		BgSelection: "#e0e0e0",
		Fg:          "#222222",
		FgMuted:     "#555555",
		Accent:      "#2f6feb",
		Event:       "#1d8a8a",
		AllDay:      "#2f8f2f",
		Today:       "#c97b00",
		Warning:     "#c2410c",
	}

	palette := NewPalette(base)
	if got := luminance(string(palette.Event.Bg)); got <= luminance(base.Event) {
		t.Errorf("Event.Bg luminance = %f, want greater than Event", got)
	}
	if got := luminance(string(palette.Event.PastBg)); got <= luminance(string(palette.Event.Bg)) {
		t.Errorf("Event.PastBg luminance = %f, want past events paler", got)
	}
	if palette.Event.Text != lipgloss.Color(base.Fg) {
		t.Errorf("Event.Text = %q, want dark foreground on light block", palette.Event.Text)
	}
}

func TestPalette_ForEvent(t *testing.T) {
	palette := NewPalette(darkTheme())

	tests := []struct {
		name   string
		hex    string
		allDay bool
		want   EventColors
	}{
		{name: "empty timed uses event", hex: "", want: palette.Event},
		{name: "empty all-day uses all-day", hex: "", allDay: true, want: palette.AllDay},
		{name: "named color is ignored", hex: "blue", want: palette.Event},
		{name: "bad hex digit is ignored", hex: "#12345g", want: palette.Event},
		{name: "own color", hex: "#ff8800", want: palette.derive("#ff8800")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := palette.ForEvent(tt.hex, tt.allDay); got != tt.want {
				t.Errorf("ForEvent(%q, %t) = %+v, want %+v", tt.hex, tt.allDay, got, tt.want)
			}
		})
	}
}

func TestReadableOn(t *testing.T) {
	if got := readableOn("#f0f0f0", "#ffffff", "#111111"); got != "#111111" {
		t.Errorf("readableOn(light bg) = %q, want dark text", got)
	}
	if got := readableOn("#101010", "#ffffff", "#111111"); got != "#ffffff" {
		t.Errorf("readableOn(dark bg) = %q, want light text", got)
	}
}
