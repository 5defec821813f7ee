package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Configuration management.

Without a subcommand, prints the effective configuration: defaults,
overlaid with the config file, overlaid with ALMANAC_* environment
variables.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printConfig(cmd.OutOrStdout(), a.config)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printConfig(cmd.OutOrStdout(), a.config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), a.configPath)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(a.configPath); err == nil && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", a.configPath)
			}
			if err := config.Default().SaveTo(a.configPath); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", a.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.AddCommand(initCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Edit the configuration interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	})

	return cmd
}

func printConfig(w io.Writer, cfg *config.Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func (a *App) runConfigInteractive(in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Config file: %s\n\n", a.configPath)

	cfg, err := config.LoadFrom(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	reader := bufio.NewReader(in)
	p := prompter{reader: reader, out: out}

	cfg.Calendar.WeekStartsOn = p.intValue("Week starts on (0 = Sunday ... 6 = Saturday)", cfg.Calendar.WeekStartsOn)
	cfg.Calendar.DefaultView = p.choice("Default view", viewNames(), cfg.Calendar.DefaultView)
	cfg.Calendar.VisibleFrom = p.intValue("First visible hour", cfg.Calendar.VisibleFrom)
	cfg.Calendar.VisibleTo = p.intValue("Last visible hour (exclusive)", cfg.Calendar.VisibleTo)
	cfg.Calendar.Timezone = p.value("Timezone (IANA name or Local)", cfg.Calendar.Timezone)
	cfg.Storage.DBPath = p.value("Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = p.choice("UI theme", theme.Available(), cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(a.configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func viewNames() []string {
	names := make([]string, 0, len(calendar.Views()))
	for _, v := range calendar.Views() {
		names = append(names, string(v))
	}
	return names
}

// maxAttempts bounds re-prompting on invalid input.
const maxAttempts = 3

// prompter asks for values line by line, keeping the current value on an
// empty answer.
type prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func (p prompter) value(label, current string) string {
	if current == "" {
		fmt.Fprintf(p.out, "  %s: ", label)
	} else {
		fmt.Fprintf(p.out, "  %s [%s]: ", label, current)
	}
	input, _ := p.reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func (p prompter) intValue(label string, current int) int {
	for range maxAttempts {
		value := p.value(label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(p.out, "  Invalid number %q.\n", value)
	}
	return current
}

func (p prompter) choice(label string, options []string, current string) string {
	joined := strings.Join(options, ", ")
	full := fmt.Sprintf("%s (%s)", label, joined)
	for range maxAttempts {
		value := strings.ToLower(p.value(full, current))
		for _, o := range options {
			if o == value {
				return value
			}
		}
		fmt.Fprintf(p.out, "  Invalid value %q. Available: %s\n", value, joined)
	}
	return current
}
