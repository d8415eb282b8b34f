// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd implements the seedkit command line: seeding, cleanup, plan
// inspection, schema migrations and connection management on top of cobra.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"seedkit/cli/internal/config"
	serrors "seedkit/cli/internal/errors"
	"seedkit/cli/internal/logging"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// skipConfig marks commands that must work without a readable config.
const skipConfig = "seedkit/skip-config"

type appState struct {
	cfg config.Config
	log logging.Logger
}

var (
	showVersion bool
	configPath  string
	dsnFlag     string
	verbose     bool

	app = appState{cfg: config.Defaults(), log: logging.Nop()}
)

var rootCmd = &cobra.Command{
	Use:   "seedkit",
	Short: "Declarative, dependency-ordered database seeding",
	Long: `seedkit fills a development or test database with fake data. Seeds declare
what they depend on, run in dependency order, only top up what is missing and
can be removed again with 'seedkit cleanup'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[skipConfig] == "true" || (cmd == cmd.Root() && showVersion) {
			return nil
		}
		return loadApp(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion(cmd.OutOrStdout())
			return nil
		}
		return cmd.Help()
	},
}

func loadApp(cmd *cobra.Command) error {
	if verbose {
		_ = os.Setenv("SEEDKIT_VERBOSE", "1")
	}
	l := config.NewLoader(configPath)
	if err := l.BindFlag("log_level", cmd.Flags().Lookup("log-level")); err != nil {
		return err
	}
	if err := l.BindFlag("log_format", cmd.Flags().Lookup("log-format")); err != nil {
		return err
	}
	cfg, err := l.Load()
	if err != nil {
		return err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	app.cfg = cfg
	app.log = logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: logging.Format(cfg.LogFormat),
		Writer: cmd.ErrOrStderr(),
	})
	app.log.Debug("config loaded", "log_level", cfg.LogLevel, "log_format", cfg.LogFormat)
	return nil
}

// Execute runs the CLI. Interrupts cancel the command context so a run in
// progress records the remaining seeds as failed instead of dying mid-insert.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd, err := rootCmd.ExecuteContextC(ctx)
	stop()
	if err != nil {
		reportError(os.Stderr, cmd.CommandPath(), err)
		os.Exit(1)
	}
}

// reportError prints err for the user with credentials masked, plus a hint
// for failures the user can fix from the command line.
func reportError(w io.Writer, command string, err error) {
	fmt.Fprintln(w, pterm.Error.Sprint(logging.PresentError(command, err)))
	switch {
	case serrors.IsKind(err, serrors.DSNUnavailable):
		fmt.Fprintln(w, pterm.Info.Sprint("Run 'seedkit connect' or pass --dsn"))
	case serrors.IsKind(err, serrors.ConfigInvalid):
		fmt.Fprintln(w, pterm.Info.Sprint("Check the config file, SEEDKIT_* variables and flags"))
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to config.json (default: $XDG_CONFIG_HOME/seedkit/config.json)")
	pf.StringVar(&dsnFlag, "dsn", "", "Database DSN (postgres://... or sqlite://path)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")
	pf.String("log-level", "info", "Log level: debug, info, warn, error, off")
	pf.String("log-format", "text", "Log format: text or json")
}
