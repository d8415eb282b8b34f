// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"os"

	"seedkit/cli/internal/dsn"
	serrors "seedkit/cli/internal/errors"
	"seedkit/cli/internal/seeding"
	"seedkit/cli/internal/seeds"
	"seedkit/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	cleanupOnly   []string
	cleanupYes    bool
	cleanupDryRun bool
	cleanupStrict bool
)

// stdinInteractive and confirmCleanup are replaced in tests.
var stdinInteractive = func() bool { return terminal.IsInteractive(os.Stdin) }

var confirmCleanup = func(database string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultValue(false).
		Show(fmt.Sprintf("Delete all seeded rows from %s?", database))
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete rows created by seeds",
	Long: `The cleanup command removes every row flagged as fake, children before parents.
Rows not created by seedkit are never touched. It asks for confirmation unless
--yes is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		descs, err := seeds.SelectCleanups(seeds.Cleanups(), splitNames(cleanupOnly))
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		db, err := openDatabase(ctx, out)
		if err != nil {
			return err
		}
		defer db.Close()

		if !cleanupYes && !cleanupDryRun {
			if !stdinInteractive() {
				return errors.New("refusing to clean up without confirmation; pass --yes")
			}
			raw, _, _ := resolveDSN()
			ok, err := confirmCleanup(dsn.DatabaseName(raw))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Cleanup cancelled")
				return nil
			}
		}

		opts := []seeding.Option{seeding.WithLogger(app.log), seeding.WithDryRun(cleanupDryRun)}
		var live *seeding.LiveRenderer
		if terminal.IsInteractive(os.Stdout) {
			progress := seeding.NewProgress()
			live = seeding.NewLiveRenderer(progress)
			opts = append(opts, seeding.WithProgress(progress), seeding.WithObserver(live.Observe))
		}
		rep, err := seeding.NewRunner(db, opts...).Cleanup(ctx, descs...)
		if live != nil {
			live.Stop()
		}
		if err != nil {
			return err
		}

		table, err := seeding.CleanupTable(rep)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, table)
		if cleanupStrict && rep.HasFailures() {
			return serrors.New(serrors.CleanupFailed, fmt.Sprintf("%d cleanup(s) failed", rep.Failed))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
	f := cleanupCmd.Flags()
	f.StringSliceVar(&cleanupOnly, "only", nil, "Clean only these seeds (comma separated)")
	f.BoolVarP(&cleanupYes, "yes", "y", false, "Do not ask for confirmation")
	f.BoolVar(&cleanupDryRun, "dry-run", false, "List cleanups without deleting")
	f.BoolVar(&cleanupStrict, "strict", false, "Exit with status 1 when any cleanup failed")
}
