package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date        string
		start       string
		end         string
		days        int
		allDay      bool
		location    string
		color       string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new event",
		Long: `Add a new event to your calendar.

Timed events need --start and --end. An --end of 24:00 ends at midnight,
and an --end earlier than --start ends on the following day.
All-day events span --days calendar days starting at --date.`,
		Example: `  almanac add "Planning" --date 2025-01-15 --start 09:00 --end 10:30
  almanac add "Offsite" --date next-monday --all-day --days 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := a.parseDate(date)
			if err != nil {
				return err
			}

			var from, to time.Time
			if allDay {
				if days < 1 {
					return errors.New("--days must be at least 1")
				}
				from = dateutil.TruncateToDay(day)
				to = from.AddDate(0, 0, days)
			} else {
				if start == "" || end == "" {
					return errors.New("timed events need --start and --end (or use --all-day)")
				}
				if from, to, err = clockSpan(day, start, end); err != nil {
					return err
				}
			}

			e, err := calendar.New(args[0], from, to, allDay)
			if err != nil {
				return err
			}
			e.Location = location
			e.Color = color
			e.Description = description
			e.Source = "cli"

			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.CreateEvent(a.context(), e); err != nil {
				return fmt.Errorf("creating event: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created event %s: %s %s %s\n",
				e.ID,
				e.Title,
				e.Start.Format(dateLayout),
				view.TimeSpan(*e, e.Start),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Event date (YYYY-MM-DD, today, tomorrow, ..., default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, 24:00 for midnight)")
	cmd.Flags().BoolVar(&allDay, "all-day", false, "Create an all-day event")
	cmd.Flags().IntVar(&days, "days", 1, "Number of days an all-day event spans")
	cmd.Flags().StringVar(&location, "location", "", "Event location")
	cmd.Flags().StringVar(&color, "color", "", "Event color (e.g. #89b4fa)")
	cmd.Flags().StringVar(&description, "description", "", "Event description")

	return cmd
}

// clockSpan builds the instants for start and end clocks on day. An end
// before the start rolls over to the next day.
func clockSpan(day time.Time, start, end string) (time.Time, time.Time, error) {
	sh, sm, err := dateutil.ParseClock(start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --start %q: %w", start, err)
	}
	if sh == 24 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --start %q: %w", start, dateutil.ErrInvalidClock)
	}
	eh, em, err := dateutil.ParseClock(end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --end %q: %w", end, err)
	}

	from := dateutil.At(day, sh, sm)
	to := dateutil.At(day, eh, em)
	if to.Before(from) {
		to = dateutil.At(day.AddDate(0, 0, 1), eh, em)
	}
	return from, to, nil
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Delete an event",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := a.context()
			e, err := a.repo.GetEvent(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.repo.DeleteEvent(ctx, e.ID); err != nil {
				return fmt.Errorf("deleting event: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted event %s: %s\n", e.ID, e.Title)
			return nil
		},
	}
}
