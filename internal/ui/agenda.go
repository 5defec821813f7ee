package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/calendar"
)

func (a *App) agendaCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "List upcoming events grouped by day",
		Long: `List the events of the next 30 days, grouped by the day they start on.
Events already running at the start of the window are listed first.`,
		Example: `  almanac agenda
  almanac agenda --date next-monday`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref, err := a.parseDate(date)
			if err != nil {
				return err
			}

			rng := calendar.WindowFor(ref, calendar.ViewAgenda, a.config.Calendar.WeekStartsOn)
			events, err := a.fetch(a.context(), rng)
			if err != nil {
				return err
			}

			printAgenda(cmd.OutOrStdout(), calendar.GroupAgenda(events, rng), a.today())
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "First day of the agenda (YYYY-MM-DD, today, tomorrow, ...)")
	return cmd
}

func printAgenda(w io.Writer, groups []calendar.AgendaGroup, now time.Time) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "No upcoming events.")
		return
	}

	width := titleWidth(30)
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "  %s\n", dayHeader(g.Date, now))
		for _, e := range g.Events {
			fmt.Fprintln(w, eventLine(e, g.Date, width))
		}
	}
}
