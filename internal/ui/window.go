package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/dateutil"
)

// viewFlags are the flags shared by commands that compute a view window.
type viewFlags struct {
	date      string
	view      string
	weekStart int
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "Reference date (YYYY-MM-DD, today, tomorrow, next-monday, ...)")
	cmd.Flags().StringVar(&f.view, "view", "", "View: day, week, month, year or agenda (default from config)")
	cmd.Flags().IntVar(&f.weekStart, "week-start", -1, "First day of the week, 0 = Sunday ... 6 = Saturday (default from config)")
}

// resolve turns the flags into a reference date, view and week start.
func (f *viewFlags) resolve(a *App) (time.Time, calendar.View, int, error) {
	ref, err := a.parseDate(f.date)
	if err != nil {
		return time.Time{}, "", 0, err
	}
	view, err := a.parseView(f.view)
	if err != nil {
		return time.Time{}, "", 0, err
	}
	weekStart := a.config.Calendar.WeekStartsOn
	if f.weekStart >= 0 {
		weekStart = f.weekStart
	}
	return ref, view, weekStart, nil
}

func (a *App) windowCmd() *cobra.Command {
	var (
		flags     viewFlags
		step      string
		copyRange bool
	)

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Print the date range a view covers",
		Long: `Print the date range covered by a calendar view.

The range is what a client should fetch events for. Month views span
whole weeks, so they include leading and trailing days of adjacent months.`,
		Example: `  almanac window
  almanac window --view month --date 2025-02-10
  almanac window --view week --step next --copy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref, view, weekStart, err := flags.resolve(a)
			if err != nil {
				return err
			}

			if step != "" {
				dir, ok := calendar.ParseDirection(step)
				if !ok {
					return fmt.Errorf("unknown step %q (want prev, next or today)", step)
				}
				ref = calendar.Step(ref, view, dir, a.today())
			}

			rng := calendar.WindowFor(ref, view, weekStart)
			a.logger.Debug("window computed", "view", view, "ref", ref, "range", rng.String())
			printWindow(cmd.OutOrStdout(), view, ref, rng)

			if copyRange {
				if err := clipboard.WriteAll(rng.String()); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatMuted("Copied range to clipboard."))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&step, "step", "", "Navigate before computing: prev, next or today")
	cmd.Flags().BoolVar(&copyRange, "copy", false, "Copy the range to the clipboard")

	return cmd
}

func printWindow(w io.Writer, view calendar.View, ref time.Time, rng calendar.DateRange) {
	start, end := rng.ISO()
	fmt.Fprintf(w, "%s %s\n", formatHeader("View: "), view)
	fmt.Fprintf(w, "%s %s\n", formatHeader("Date: "), ref.Format(dateLayout))
	fmt.Fprintf(w, "%s %s\n", formatHeader("Start:"), start)
	fmt.Fprintf(w, "%s %s\n", formatHeader("End:  "), end)
	fmt.Fprintf(w, "%s %d\n", formatHeader("Days: "), len(rng.Days()))
}

func (a *App) gridCmd() *cobra.Command {
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the grid cells of a view",
		Long: `Print the cells a view renders: days for day, week, month and agenda
views, the first day of each month for the year view.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref, view, weekStart, err := flags.resolve(a)
			if err != nil {
				return err
			}

			cells := calendar.GridCellsFor(ref, view, weekStart)
			if view == calendar.ViewMonth {
				printMonthGrid(cmd.OutOrStdout(), cells, ref, a.today())
				return nil
			}

			w := cmd.OutOrStdout()
			for _, c := range cells {
				label := c.Format("Mon 2006-01-02")
				if view == calendar.ViewYear {
					label = c.Format("January 2006")
				}
				if view != calendar.ViewYear && calendar.IsToday(c, a.today()) {
					label = formatToday(label)
				}
				fmt.Fprintln(w, label)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// printMonthGrid prints a month as rows of weeks. Days outside the
// reference month are muted.
func printMonthGrid(w io.Writer, cells []time.Time, ref, now time.Time) {
	fmt.Fprintln(w, formatHeader(ref.Format("January 2006")))

	var header []string
	for _, c := range cells[:min(7, len(cells))] {
		header = append(header, fmt.Sprintf("%3s", c.Format("Mon")[:2]))
	}
	fmt.Fprintln(w, strings.Join(header, " "))

	for i := 0; i < len(cells); i += 7 {
		var row []string
		for _, c := range cells[i:min(i+7, len(cells))] {
			label := fmt.Sprintf("%3d", c.Day())
			switch {
			case calendar.IsToday(c, now):
				label = formatToday(label)
			case !monthOf(c, ref):
				label = formatMuted(label)
			}
			row = append(row, label)
		}
		fmt.Fprintln(w, strings.Join(row, " "))
	}
}

// monthOf reports whether day is in the same month as ref.
func monthOf(day, ref time.Time) bool {
	return dateutil.StartOfMonth(day).Equal(dateutil.StartOfMonth(ref))
}
