package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/almanac/internal/calendar"
)

func setColorProfile(t *testing.T, profile termenv.Profile) {
	t.Helper()
	prevProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(profile)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prevProfile)
	})
}

// plainView renders m without escape sequences.
func plainView(t *testing.T, m Model) string {
	t.Helper()
	setColorProfile(t, termenv.Ascii)
	return ansi.Strip(m.View())
}

func lineContaining(lines []string, s string) (int, string) {
	for i, line := range lines {
		if strings.Contains(line, s) {
			return i, line
		}
	}
	return -1, ""
}

func timed(id, title string, start, end time.Time) calendar.Event {
	return calendar.Event{ID: id, Title: title, Start: start, End: end}
}

func at(d, hour, minute int) time.Time {
	return time.Date(2025, 1, d, hour, minute, 0, 0, time.UTC)
}

func TestView_BeforeFirstSize(t *testing.T) {
	m := *New(context.Background(), newTestRepo(t), testConfig(), WithClock(func() time.Time { return fixedNow }))
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() = %q, want placeholder", got)
	}
}

func TestView_FitsTerminal(t *testing.T) {
	views := []rune{'d', 'w', 'm', 'y', 'a'}
	for _, key := range views {
		t.Run(string(key), func(t *testing.T) {
			m := newTestModel(t, testConfig(), timed("e1", "Planning", at(15, 9, 0), at(15, 10, 0)))
			if key != 'w' {
				var cmd tea.Cmd
				m, cmd = press(t, m, key)
				m = load(t, m, cmd)
			}

			lines := strings.Split(plainView(t, m), "\n")
			if len(lines) != 60 {
				t.Errorf("lines = %d, want 60", len(lines))
			}
			for i, line := range lines {
				if w := ansi.StringWidth(line); w > 120 {
					t.Errorf("line %d width = %d, want <= 120: %q", i, w, line)
				}
			}
		})
	}
}

func TestView_WeekShowsEvents(t *testing.T) {
	review := timed("review", "Design review", at(15, 14, 0), at(15, 15, 0))
	review.Location = "Room 4"
	m := newTestModel(t, testConfig(), review)

	out := plainView(t, m)
	for _, want := range []string{"almanac", "Jan 13 – Jan 19, 2025", "Mon 13", "Wed 15", "Sun 19", "09:00", "14:00", "Design review", "1 event"} {
		if !strings.Contains(out, want) {
			t.Errorf("week view missing %q", want)
		}
	}

	lines := strings.Split(out, "\n")
	titleRow, _ := lineContaining(lines, "Design review")
	hourRow, _ := lineContaining(lines, "14:00")
	if titleRow != hourRow {
		t.Errorf("event title on row %d, want the 14:00 row %d", titleRow, hourRow)
	}
	spanRow, _ := lineContaining(lines, "14:00-15:00")
	if spanRow != titleRow+1 {
		t.Errorf("time span on row %d, want %d", spanRow, titleRow+1)
	}
}

func TestView_WeekShowsAllDayRow(t *testing.T) {
	holiday := calendar.Event{ID: "h", Title: "Holiday", Start: day(17), End: day(18), AllDay: true}
	m := newTestModel(t, testConfig(), holiday)

	lines := strings.Split(plainView(t, m), "\n")
	_, row := lineContaining(lines, "all")
	if !strings.Contains(row, "Holiday") {
		t.Errorf("all-day row = %q, want Holiday", row)
	}
}

func TestView_DaySplitsOverlaps(t *testing.T) {
	m := newTestModel(t, testConfig(),
		timed("a", "Alpha", at(15, 10, 0), at(15, 11, 0)),
		timed("b", "Beta", at(15, 10, 30), at(15, 11, 30)),
	)
	m, cmd := press(t, m, 'd')
	m = load(t, m, cmd)

	out := plainView(t, m)
	if !strings.Contains(out, "Wednesday, January 15, 2025") {
		t.Error("day view missing title")
	}

	lines := strings.Split(out, "\n")
	alphaRow, alphaLine := lineContaining(lines, "Alpha")
	betaRow, betaLine := lineContaining(lines, "Beta")
	if alphaRow < 0 || betaRow < 0 {
		t.Fatalf("missing events in:\n%s", out)
	}
	if betaRow != alphaRow+1 {
		t.Errorf("Beta row = %d, want half an hour after Alpha at %d", betaRow, alphaRow)
	}
	if strings.Index(betaLine, "Beta") <= strings.Index(alphaLine, "Alpha") {
		t.Error("Beta should sit in the lane right of Alpha")
	}
}

func TestView_MonthShowsSpans(t *testing.T) {
	offsite := timed("off", "Offsite", at(14, 9, 0), at(16, 17, 0))
	m := newTestModel(t, testConfig(), offsite)
	m, cmd := press(t, m, 'm')
	m = load(t, m, cmd)

	out := plainView(t, m)
	for _, want := range []string{"January 2025", "Mon", "Sun", "▶", "═", "◀", "Offsite"} {
		if !strings.Contains(out, want) {
			t.Errorf("month view missing %q", want)
		}
	}
}

func TestView_MonthOverflow(t *testing.T) {
	var events []calendar.Event
	for i := range 12 {
		events = append(events, timed(string(rune('a'+i)), "Busy", at(15, 8+i, 0), at(15, 8+i, 30)))
	}
	m := newTestModel(t, testConfig(), events...)
	m, cmd := press(t, m, 'm')
	m = load(t, m, cmd)

	if out := plainView(t, m); !strings.Contains(out, "more") {
		t.Error("expected overflow marker in month cell")
	}
}

func TestView_YearShowsCounts(t *testing.T) {
	m := newTestModel(t, testConfig(), timed("e1", "Kickoff", at(15, 9, 0), at(15, 10, 0)))
	m, cmd := press(t, m, 'y')
	m = load(t, m, cmd)

	out := plainView(t, m)
	for _, want := range []string{"2025", "January", "December", "1 event", "no events"} {
		if !strings.Contains(out, want) {
			t.Errorf("year view missing %q", want)
		}
	}
}

func TestView_Agenda(t *testing.T) {
	lunch := timed("lunch", "Lunch", at(15, 12, 0), at(15, 13, 0))
	lunch.Location = "Cafe"
	m := newTestModel(t, testConfig(), lunch, timed("retro", "Retro", at(20, 16, 0), at(20, 17, 0)))
	m, cmd := press(t, m, 'a')
	m = load(t, m, cmd)

	out := plainView(t, m)
	for _, want := range []string{"Wednesday, January 15 · today", "Monday, January 20", "12:00-13:00", "Lunch (1h)", "@Cafe", "Retro"} {
		if !strings.Contains(out, want) {
			t.Errorf("agenda missing %q", want)
		}
	}
	if strings.Index(out, "Lunch") > strings.Index(out, "Retro") {
		t.Error("agenda should be in chronological order")
	}
}

func TestView_AgendaEmpty(t *testing.T) {
	m := newTestModel(t, testConfig())
	m, cmd := press(t, m, 'a')
	m = load(t, m, cmd)

	if out := plainView(t, m); !strings.Contains(out, "No upcoming events.") {
		t.Error("expected empty agenda message")
	}
}

func TestView_HelpOverlay(t *testing.T) {
	m := newTestModel(t, testConfig())
	m, _ = press(t, m, '?')

	out := plainView(t, m)
	for _, want := range []string{"Keys", "go to date", "month view", "copy range"} {
		if !strings.Contains(out, want) {
			t.Errorf("help overlay missing %q", want)
		}
	}
	if got := len(strings.Split(out, "\n")); got != 60 {
		t.Errorf("lines = %d, want 60", got)
	}
}

func TestView_Prompt(t *testing.T) {
	m := newTestModel(t, testConfig())
	m, _ = press(t, m, 'g')

	if out := plainView(t, m); !strings.Contains(out, "Go to:") {
		t.Error("expected go-to prompt in footer")
	}
}

func TestView_TerminalTooSmall(t *testing.T) {
	m := newTestModel(t, testConfig())
	m = update(t, m, tea.WindowSizeMsg{Width: 6, Height: 4})

	if out := plainView(t, m); !strings.Contains(out, "Terminal too small") {
		t.Errorf("View() = %q", out)
	}
}

func TestPlaceBox_WhitespaceBackground(t *testing.T) {
	setColorProfile(t, termenv.TrueColor)

	bg := lipgloss.Color("#112233")
	m := &Model{
		styles: &Styles{
			colorBg: bg,
		},
	}
	out := m.placeBox(5, 1, lipgloss.Top, "x")
	bgSeq := "\x1b[48;2;17;34;51m"
	bgIndex := strings.Index(out, bgSeq)
	if bgIndex == -1 {
		t.Fatalf("expected background whitespace in output: %q", out)
	}
	if strings.Index(out, "x") > bgIndex {
		t.Fatalf("expected background after content, got %q", out)
	}
}

func TestView_UsesThemeBackground(t *testing.T) {
	m := newTestModel(t, testConfig())
	setColorProfile(t, termenv.TrueColor)

	var r, g, b int
	if _, err := fmt.Sscanf(string(m.styles.colorBg), "#%02x%02x%02x", &r, &g, &b); err != nil {
		t.Fatalf("parsing background %q: %v", m.styles.colorBg, err)
	}
	want := fmt.Sprintf("48;2;%d;%d;%d", r, g, b)
	if out := m.View(); !strings.Contains(out, want) {
		t.Error("expected theme background in output")
	}
}
