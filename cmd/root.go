// Package cmd implements the CLI commands for NotePipe using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/notepipe/config"
	"github.com/gaurav-prasanna/notepipe/core"
	"github.com/gaurav-prasanna/notepipe/core/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Persistent flag variables.
var (
	flagConfig    string
	flagDataDir   string
	flagStore     string
	flagLogLevel  string
	flagLogFormat string
)

// Loaded by the root PersistentPreRunE before any command runs.
var (
	cfg    config.Config
	logger *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "notepipe",
	Short: "NotePipe — Markdown notes with a live HTML preview",
	Long: `NotePipe keeps Markdown notes and renders them to a live HTML preview.

Usage:
  notepipe render note.md
  notepipe serve
  notepipe watch note.md
  notepipe notes list`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default: $XDG_CONFIG_HOME/notepipe/config.yaml)")
	pf.StringVar(&flagDataDir, "data_dir", "", "Directory holding the note store")
	pf.StringVar(&flagStore, "store", "json", "Note store backend: json or sqlite")
	pf.StringVar(&flagLogLevel, "log_level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&flagLogFormat, "log_format", "text", "Log format: text or json")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if err := c.ApplyFlags(cmd.Flags()); err != nil {
		return err
	}
	l, err := c.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	cfg, logger = c, l
	logger.WithFields(logrus.Fields{"data_dir": cfg.DataDir, "store": cfg.Store.Backend}).Debug("configuration loaded")
	return nil
}

// openStore opens the configured note store. Callers close it.
func openStore(ctx context.Context) (core.NoteStore, error) {
	s, err := store.Open(ctx, cfg.Store.Backend, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening note store: %w", err)
	}
	return s, nil
}
