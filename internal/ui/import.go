package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/ics"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file.ics]...",
		Short: "Import events from iCalendar files",
		Long: `Import every VEVENT from one or more iCalendar (.ics) files.

Events keep their UID, so importing an updated export replaces the
events imported before. Recurring events are imported once, at their
first occurrence.

Example:
  almanac import ~/Downloads/team.ics`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := a.context()
			for _, arg := range args {
				path, err := resolvePath(arg)
				if err != nil {
					return err
				}

				info, err := os.Stat(path)
				if err != nil {
					if os.IsNotExist(err) {
						return fmt.Errorf("calendar file does not exist: %s", path)
					}
					return fmt.Errorf("checking calendar file: %w", err)
				}
				if info.IsDir() {
					return fmt.Errorf("calendar file path is a directory: %s", path)
				}

				count, err := importEvents(ctx, a.repo, path, a.location())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d events from %s\n", count, path)
			}
			return nil
		},
	}

	return cmd
}

func importEvents(ctx context.Context, dest calendar.Repository, path string, loc *time.Location) (int, error) {
	events, err := ics.ParseFile(ctx, path, loc)
	if err != nil {
		return 0, err
	}

	batch := make([]*calendar.Event, len(events))
	for i := range events {
		batch[i] = &events[i]
	}

	if err := dest.CreateEvents(ctx, batch); err != nil {
		return 0, fmt.Errorf("importing events: %w", err)
	}
	return len(batch), nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
