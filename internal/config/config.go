// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/tui/theme"
)

// Config holds the application configuration.
type Config struct {
	Calendar     CalendarConfig    `toml:"calendar"`
	WorkingHours map[string]string `toml:"working_hours"` // weekday name -> "HH:MM-HH:MM"
	Storage      StorageConfig     `toml:"storage"`
	UI           UIConfig          `toml:"ui"`
}

// CalendarConfig holds view and grid settings.
type CalendarConfig struct {
	WeekStartsOn int     `toml:"week_starts_on"` // 0 = Sunday ... 6 = Saturday
	DefaultView  string  `toml:"default_view"`   // "day", "week", "month", "year", "agenda"
	SlotHeight   float64 `toml:"slot_height"`    // pixels per hour
	VisibleFrom  int     `toml:"visible_from"`   // first visible hour
	VisibleTo    int     `toml:"visible_to"`     // exclusive, up to 24
	Timezone     string  `toml:"timezone"`       // IANA name or "Local"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Calendar: CalendarConfig{
			WeekStartsOn: int(time.Monday),
			DefaultView:  string(calendar.DefaultView),
			SlotHeight:   48,
			VisibleFrom:  0,
			VisibleTo:    24,
			Timezone:     "Local",
		},
		WorkingHours: workingHoursTable(calendar.DefaultWorkingHours()),
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// workingHoursTable renders wh as the working_hours TOML table.
func workingHoursTable(wh calendar.WorkingHours) map[string]string {
	out := make(map[string]string, len(wh))
	for day, r := range wh {
		out[strings.ToLower(day.String())] = fmt.Sprintf("%02d:00-%02d:00", r.From, r.To)
	}
	return out
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "almanac.db"
	}
	return filepath.Join(home, ".local", "share", "almanac", "almanac.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "almanac", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	// A [working_hours] table in the file replaces the default week.
	var fileHours struct {
		WorkingHours map[string]string `toml:"working_hours"`
	}
	if err := toml.Unmarshal(data, &fileHours); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	if fileHours.WorkingHours != nil {
		cfg.WorkingHours = nil
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("ALMANAC_WEEK_STARTS_ON"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ALMANAC_WEEK_STARTS_ON: %w", err)
		}
		cfg.Calendar.WeekStartsOn = n
	}
	if v := os.Getenv("ALMANAC_DEFAULT_VIEW"); v != "" {
		cfg.Calendar.DefaultView = v
	}
	if v := os.Getenv("ALMANAC_SLOT_HEIGHT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("ALMANAC_SLOT_HEIGHT: %w", err)
		}
		cfg.Calendar.SlotHeight = f
	}
	if v := os.Getenv("ALMANAC_VISIBLE_HOURS"); v != "" {
		from, to, err := parseHourSpan(v)
		if err != nil {
			return fmt.Errorf("ALMANAC_VISIBLE_HOURS: %w", err)
		}
		cfg.Calendar.VisibleFrom, cfg.Calendar.VisibleTo = from, to
	}
	if v := os.Getenv("ALMANAC_TIMEZONE"); v != "" {
		cfg.Calendar.Timezone = v
	}
	if v := os.Getenv("ALMANAC_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("ALMANAC_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// parseHourSpan parses "8-20" into its two hours.
func parseHourSpan(s string) (int, int, error) {
	fromStr, toStr, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("expected FROM-TO, got %q", s)
	}
	from, err := strconv.Atoi(strings.TrimSpace(fromStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour %q", fromStr)
	}
	to, err := strconv.Atoi(strings.TrimSpace(toStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour %q", toStr)
	}
	return from, to, nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Calendar.WeekStartsOn < 0 || c.Calendar.WeekStartsOn > 6 {
		return fmt.Errorf("week_starts_on must be between 0 and 6, got %d", c.Calendar.WeekStartsOn)
	}
	if _, ok := calendar.ParseView(c.Calendar.DefaultView); !ok {
		return fmt.Errorf("invalid default_view: %q", c.Calendar.DefaultView)
	}
	if c.Calendar.SlotHeight <= 0 {
		return errors.New("slot_height must be positive")
	}
	visible := calendar.HourRange{From: c.Calendar.VisibleFrom, To: c.Calendar.VisibleTo}
	if !visible.Valid() {
		return fmt.Errorf("visible hours must satisfy 0 <= from < to <= 24, got %s", visible)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.ParseWorkingHours(); err != nil {
		return err
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if !theme.IsAvailable(c.UI.Theme) {
		return fmt.Errorf("invalid theme: %q", c.UI.Theme)
	}
	return nil
}

// View returns the configured default view.
func (c *Config) View() calendar.View {
	v, _ := calendar.ParseView(c.Calendar.DefaultView)
	return v
}

// VisibleHours returns the configured visible hour range of the time grid.
func (c *Config) VisibleHours() calendar.VisibleHours {
	return calendar.VisibleHours{From: c.Calendar.VisibleFrom, To: c.Calendar.VisibleTo}.OrDefault()
}

// GridOptions returns the layout options derived from the config.
func (c *Config) GridOptions() calendar.GridOptions {
	return calendar.GridOptions{
		WeekStartsOn: c.Calendar.WeekStartsOn,
		Visible:      c.VisibleHours(),
		SlotHeight:   c.Calendar.SlotHeight,
	}
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Calendar.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// Schedule returns the configured working hours, ignoring invalid entries.
// Use ParseWorkingHours to surface errors.
func (c *Config) Schedule() calendar.WorkingHours {
	wh, _ := c.ParseWorkingHours()
	return wh
}

// ParseWorkingHours converts the working_hours table into engine input.
// Ranges are "HH:MM-HH:MM" on whole hours.
func (c *Config) ParseWorkingHours() (calendar.WorkingHours, error) {
	wh := make(calendar.WorkingHours, len(c.WorkingHours))

	days := make([]string, 0, len(c.WorkingHours))
	for day := range c.WorkingHours {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		weekday, ok := dateutil.ParseWeekday(day)
		if !ok {
			return nil, fmt.Errorf("invalid workday: %s", day)
		}
		r, err := parseWorkingRange(c.WorkingHours[day])
		if err != nil {
			return nil, fmt.Errorf("working_hours.%s: %w", day, err)
		}
		wh[weekday] = r
	}
	return wh, nil
}

func parseWorkingRange(s string) (calendar.HourRange, error) {
	fromStr, toStr, ok := strings.Cut(s, "-")
	if !ok {
		return calendar.HourRange{}, fmt.Errorf("expected HH:MM-HH:MM, got %q", s)
	}
	fromH, fromM, err := dateutil.ParseClock(strings.TrimSpace(fromStr))
	if err != nil {
		return calendar.HourRange{}, err
	}
	toH, toM, err := dateutil.ParseClock(strings.TrimSpace(toStr))
	if err != nil {
		return calendar.HourRange{}, err
	}
	if fromM != 0 || toM != 0 {
		return calendar.HourRange{}, fmt.Errorf("working hours must be whole hours, got %q", s)
	}
	r := calendar.HourRange{From: fromH, To: toH}
	if !r.Valid() {
		return calendar.HourRange{}, fmt.Errorf("start must be before end, got %q", s)
	}
	return r, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Marshal returns the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
