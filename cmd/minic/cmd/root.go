package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"minic/pkg/config"
)

var (
	cfgFile   string
	verbose   bool
	colorMode string

	// Set by setup before any subcommand runs.
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "minic",
	Short: "Single-pass checker for a small C-like language",
	Long: `minic lexes, parses and evaluates programs written in a small C-like
language in a single pass, reporting the first lexical, syntax or semantic
error together with its line.

Configuration is read from --config, $MINIC_CONFIG, ./minic.toml or
./minic.yaml, in that order.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $MINIC_CONFIG, ./minic.toml, ./minic.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colour output: auto, always or never")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return err
	}
	if rootCmd.PersistentFlags().Changed("color") {
		switch colorMode {
		case "auto", "always", "never":
			c.Output.Color = colorMode
		default:
			return fmt.Errorf("--color must be auto, always or never, got %q", colorMode)
		}
	}

	level, err := c.SlogLevel()
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}

	cfg = c
	logger = newLogger(cmd.ErrOrStderr(), c.Log.Format, level)
	logger.Debug("configuration loaded", "path", c.Path(), "color", c.Output.Color)
	return nil
}

func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
