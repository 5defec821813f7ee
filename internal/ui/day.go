package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/almanac/internal/calendar"
)

// eventOutput is the serialized form of an event.
type eventOutput struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Start       string `yaml:"start" json:"start"`
	End         string `yaml:"end" json:"end"`
	AllDay      bool   `yaml:"all_day" json:"all_day"`
	Location    string `yaml:"location,omitempty" json:"location,omitempty"`
	Color       string `yaml:"color,omitempty" json:"color,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// positionedOutput is a timed event with its place in the time grid.
type positionedOutput struct {
	eventOutput  `yaml:",inline"`
	Top          float64 `yaml:"top" json:"top"`
	Height       float64 `yaml:"height" json:"height"`
	Column       int     `yaml:"column" json:"column"`
	TotalColumns int     `yaml:"total_columns" json:"total_columns"`
	LeftPercent  float64 `yaml:"left_percent" json:"left_percent"`
	WidthPercent float64 `yaml:"width_percent" json:"width_percent"`
}

// dayOutput is the serialized layout of one day.
type dayOutput struct {
	Date       string             `yaml:"date" json:"date"`
	SlotHeight float64            `yaml:"slot_height" json:"slot_height"`
	Visible    string             `yaml:"visible_hours" json:"visible_hours"`
	AllDay     []eventOutput      `yaml:"all_day" json:"all_day"`
	Timed      []positionedOutput `yaml:"timed" json:"timed"`
}

func newEventOutput(e calendar.Event) eventOutput {
	return eventOutput{
		ID:          e.ID,
		Title:       e.Title,
		Start:       e.Start.Format(time.RFC3339),
		End:         e.End.Format(time.RFC3339),
		AllDay:      calendar.IsAllDay(e),
		Location:    e.Location,
		Color:       e.Color,
		Description: e.Description,
	}
}

func newDayOutput(d calendar.Day, positioned []calendar.PositionedEvent, visible calendar.VisibleHours, slotHeight float64) dayOutput {
	out := dayOutput{
		Date:       d.Date.Format(dateLayout),
		SlotHeight: slotHeight,
		Visible:    calendar.HourRange(visible).String(),
		AllDay:     make([]eventOutput, 0, len(d.AllDay)),
		Timed:      make([]positionedOutput, 0, len(positioned)),
	}
	for _, e := range d.AllDay {
		out.AllDay = append(out.AllDay, newEventOutput(e))
	}
	for _, p := range positioned {
		out.Timed = append(out.Timed, positionedOutput{
			eventOutput:  newEventOutput(p.Event),
			Top:          p.Top,
			Height:       p.Height,
			Column:       p.Column,
			TotalColumns: p.TotalColumns,
			LeftPercent:  p.LeftPercent(),
			WidthPercent: p.WidthPercent(),
		})
	}
	return out
}

func (a *App) dayCmd() *cobra.Command {
	var (
		date   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show the layout of a single day",
		Long: `Show a day's all-day events and its timed events positioned on the
time grid: offset and height in pixels, and the column each event takes
when it overlaps others.`,
		Example: `  almanac day
  almanac day --date tomorrow
  almanac day --date 2025-01-15 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref, err := a.parseDate(date)
			if err != nil {
				return err
			}

			ctx := a.context()
			rng := calendar.WindowFor(ref, calendar.ViewDay, a.config.Calendar.WeekStartsOn)
			events, err := a.fetch(ctx, rng)
			if err != nil {
				return err
			}

			visible := a.config.VisibleHours()
			slot := a.config.Calendar.SlotHeight
			day := calendar.NewDay(rng.Start, events)
			positioned := calendar.LayoutDay(day, visible, slot)

			w := cmd.OutOrStdout()
			switch output {
			case "table", "":
				printDayTable(w, day, positioned, a.config.Schedule(), a.today())
				return nil
			case "yaml":
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(newDayOutput(day, positioned, visible, slot)); err != nil {
					return fmt.Errorf("encoding yaml: %w", err)
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(newDayOutput(day, positioned, visible, slot)); err != nil {
					return fmt.Errorf("encoding json: %w", err)
				}
				return nil
			default:
				return fmt.Errorf("unknown output %q (want table, yaml or json)", output)
			}
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD, today, tomorrow, ...)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, yaml or json")

	return cmd
}

func printDayTable(w io.Writer, d calendar.Day, positioned []calendar.PositionedEvent, wh calendar.WorkingHours, now time.Time) {
	fmt.Fprintf(w, "\n  %s\n", dayHeader(d.Date, now))
	fmt.Fprintln(w, rule())

	if d.Len() == 0 {
		fmt.Fprintln(w, formatMuted("  No events."))
		return
	}

	width := titleWidth(40)
	for _, e := range d.AllDay {
		fmt.Fprintln(w, eventLine(e, d.Date, width))
	}

	for _, p := range positioned {
		line := eventLine(p.Event, d.Date, width)
		if p.TotalColumns > 1 {
			line += "  " + formatOverlap(fmt.Sprintf("[%d/%d]", p.Column+1, p.TotalColumns))
		}
		if wh.IsWorkingTime(p.Event.Start) && calendar.IsSameDay(p.Event.Start, d.Date) {
			line = formatWorking("▌") + line[1:]
		}
		fmt.Fprintln(w, line)
	}
}
