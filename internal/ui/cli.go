// Package ui implements the almanac command line interface.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/db"
	"github.com/javiermolinar/almanac/internal/logging"
	"github.com/javiermolinar/almanac/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo       calendar.Repository
	config     *config.Config
	configPath string
	root       *cobra.Command
	logger     *slog.Logger
	closeLog   func() error
	now        func() time.Time
	debug      bool // Enable debug logging
	noColor    bool
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened lazily from the configured database path.
func NewApp(repo calendar.Repository, cfg *config.Config) *App {
	a := &App{
		repo:       repo,
		config:     cfg,
		configPath: config.DefaultConfigPath(),
		logger:     logging.Discard(),
		now:        time.Now,
	}

	a.root = &cobra.Command{
		Use:   "almanac",
		Short: "A terminal calendar",
		Long: `Almanac is a terminal calendar.

It stores events locally, imports iCalendar files and lays them out
in day, week, month, year and agenda views.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(a.context(), a.repo, a.config)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+logging.DebugLogPath+")")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.windowCmd())
	a.root.AddCommand(a.gridCmd())
	a.root.AddCommand(a.dayCmd())
	a.root.AddCommand(a.agendaCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "almanac %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository and the debug log.
func (a *App) Close() error {
	var err error
	if a.repo != nil {
		err = a.repo.Close()
	}
	if a.closeLog != nil {
		if cerr := a.closeLog(); err == nil {
			err = cerr
		}
	}
	return err
}

func (a *App) setup() error {
	if a.noColor {
		DisableColor()
	}

	logger, closeLog, err := logging.Setup(a.debug, logging.DebugLogPath)
	if err != nil {
		return err
	}
	a.logger = logger
	a.closeLog = closeLog
	return nil
}

// ensureRepo opens the configured database if no repository was injected.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}

	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	a.logger.Debug("database opened", "path", path)
	return nil
}

func (a *App) context() context.Context {
	return logging.ContextWithLogger(context.Background(), a.logger)
}

func (a *App) location() *time.Location {
	loc, err := a.config.Location()
	if err != nil {
		return time.Local
	}
	return loc
}

// today returns the current instant in the configured timezone.
func (a *App) today() time.Time {
	return a.now().In(a.location())
}

// parseDate resolves a --date flag, accepting relative names like "tomorrow".
func (a *App) parseDate(s string) (time.Time, error) {
	d, err := dateutil.ParseRelativeDate(s, a.today())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// parseView resolves a --view flag, defaulting to the configured view.
func (a *App) parseView(s string) (calendar.View, error) {
	if s == "" {
		return a.config.View(), nil
	}
	v, ok := calendar.ParseView(s)
	if !ok {
		return "", fmt.Errorf("unknown view %q (want one of %s)", s, strings.Join(viewNames(), ", "))
	}
	return v, nil
}

// fetch loads the events overlapping rng.
func (a *App) fetch(ctx context.Context, rng calendar.DateRange) ([]calendar.Event, error) {
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}
	events, err := a.repo.ListEventsInRange(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}
