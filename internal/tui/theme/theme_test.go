package theme

import (
	"slices"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "mocha", want: "mocha"},
		{in: "macchiato", want: "macchiato"},
		{in: "frappe", want: "frappe"},
		{in: "latte", want: "latte"},
		{in: "Latte", want: "latte"},
		{in: "", want: DefaultName},
		{in: "solarized", want: DefaultName},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			th, err := Load(tt.in)
			if err != nil {
				t.Fatalf("Load(%q) error = %v", tt.in, err)
			}
			if th.Name != tt.want {
				t.Errorf("Load(%q).Name = %q, want %q", tt.in, th.Name, tt.want)
			}
		})
	}
}

func TestLoad_EmbeddedThemesAreComplete(t *testing.T) {
	for _, name := range Available() {
		th, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", name, err)
		}

		fields := map[string]string{
			"bg":             th.Bg,
			"bg_highlight":   th.BgHighlight,
			"bg_selection":   th.BgSelection,
			"fg":             th.Fg,
			"fg_muted":       th.FgMuted,
			"accent":         th.Accent,
			"event":          th.Event,
			"all_day":        th.AllDay,
			"today":          th.Today,
			"now_line":       th.NowLine,
			"working":        th.Working,
			"warning":        th.Warning,
			"overlay_bg":     th.OverlayBg,
			"overlay_border": th.OverlayBorder,
		}
		for field, hex := range fields {
			if !validHex(hex) {
				t.Errorf("%s.%s = %q, want #rrggbb", name, field, hex)
			}
		}
	}
}

func TestApplyDefaults(t *testing.T) {
	th := &Theme{
		Bg:          "#000000",
		BgHighlight: "#111111",
		Accent:      "#ff0000",
		Event:       "#00ff00",
		Warning:     "#ffaa00",
	}
	th.applyDefaults()

	checks := []struct {
		field, got, want string
	}{
		{"AllDay", th.AllDay, th.Event},
		{"NowLine", th.NowLine, th.Warning},
		{"Working", th.Working, th.Accent},
		{"OverlayBg", th.OverlayBg, th.BgHighlight},
		{"OverlayBorder", th.OverlayBorder, th.Accent},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.field, c.got, c.want)
		}
	}

	// Explicit values win over defaults.
	th = &Theme{Event: "#00ff00", AllDay: "#0000ff"}
	th.applyDefaults()
	if th.AllDay != "#0000ff" {
		t.Errorf("AllDay = %q, want explicit value", th.AllDay)
	}
}

func TestAvailable(t *testing.T) {
	want := []string{"mocha", "macchiato", "frappe", "latte"}
	if got := Available(); !slices.Equal(got, want) {
		t.Errorf("Available() = %v, want %v", got, want)
	}

	for _, name := range []string{"mocha", "LATTE"} {
		if !IsAvailable(name) {
			t.Errorf("IsAvailable(%q) = false", name)
		}
	}
	if IsAvailable("solarized") {
		t.Error("IsAvailable(solarized) = true")
	}
}
