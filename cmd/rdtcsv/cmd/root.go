/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssargent/rdtcsv/pkg/codeplug"
	"github.com/ssargent/rdtcsv/pkg/config"
)

type settingsKey struct{}

// settings is what every subcommand runs with: the loaded configuration
// after flag overrides.
type settings struct {
	cfg       *config.Config
	separator byte
	logger    *slog.Logger
}

// overrides holds the persistent flags that replace configuration values.
type overrides struct {
	schema    string
	separator string
	semicolon bool
	tab       bool
	logLevel  string
	logFormat string
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rdtcsv",
	Short: "Convert radio codeplug images to and from CSV",
	Long: `rdtcsv exports the records of a codeplug image (.rdt or .bin) to CSV
files and updates the image from edited CSV files.

References between records (a channel's contact, a zone's channels) are
written as names and resolved back to row numbers on update. Any name that
cannot be resolved is reported and nothing is written.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		configPath, _ := flags.GetString("config")
		var o overrides
		o.schema, _ = flags.GetString("schema")
		o.separator, _ = flags.GetString("separator")
		o.semicolon, _ = flags.GetBool("sc")
		o.tab, _ = flags.GetBool("tab")
		o.logLevel, _ = flags.GetString("log-level")
		o.logFormat, _ = flags.GetString("log-format")

		s, err := loadSettings(configPath, flags.Changed("config"), o, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		cmd.SetContext(context.WithValue(cmd.Context(), settingsKey{}, s))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", config.GetDefaultConfigPath(), "Configuration file")
	flags.String("schema", "", "Codeplug schema file (overrides the configuration)")
	flags.StringP("separator", "s", "", "CSV separator: comma, semicolon, tab or a single character")
	flags.Bool("sc", false, "Use ';' as CSV separator")
	flags.Bool("tab", false, "Use TAB as CSV separator")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-format", "", "Log format: text or json")
	rootCmd.MarkFlagsMutuallyExclusive("separator", "sc", "tab")
}

// loadSettings reads the configuration file, when there is one, and applies
// the flag overrides. A missing file is only an error when it was asked for.
func loadSettings(configPath string, explicit bool, o overrides, logOut io.Writer) (*settings, error) {
	cfg := config.DefaultConfig()
	if explicit || config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if o.schema != "" {
		cfg.Schema = o.schema
	}
	switch {
	case o.semicolon:
		cfg.Separator = "semicolon"
	case o.tab:
		cfg.Separator = "tab"
	case o.separator != "":
		cfg.Separator = o.separator
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sep, err := config.ParseSeparator(cfg.Separator)
	if err != nil {
		return nil, err
	}
	return &settings{
		cfg:       cfg,
		separator: sep,
		logger:    newLogger(logOut, cfg.Logging.Level, cfg.Logging.Format),
	}, nil
}

// newLogger builds the CLI logger. Level and format were validated with
// the configuration.
func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.ToLower(format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func settingsFrom(cmd *cobra.Command) *settings {
	s, ok := cmd.Context().Value(settingsKey{}).(*settings)
	if !ok {
		panic("settings not found in command context")
	}
	return s
}

func (s *settings) layout() (*codeplug.Layout, error) {
	if s.cfg.Schema == "" {
		return nil, fmt.Errorf("no codeplug schema: pass --schema or set schema in the configuration")
	}
	return codeplug.LoadSchema(s.cfg.Schema)
}
