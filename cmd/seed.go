// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"time"

	serrors "seedkit/cli/internal/errors"
	"seedkit/cli/internal/seeding"
	"seedkit/cli/internal/terminal"

	"github.com/spf13/cobra"
)

var (
	seedOnly     []string
	seedCounts   []string
	seedUsers    int
	seedMigrate  bool
	seedProgress bool
	seedDryRun   bool
	seedStrict   bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run seeds in dependency order",
	Long: `The seed command runs every seed (or the ones named with --only) in dependency
order against the configured database. Seeds only insert what is missing to reach
their target count, so running it again is safe.

A failing seed does not stop the run; it is reported in the summary. Use --strict
to exit non-zero when any seed failed.`,
	Example: `  seedkit seed --dsn sqlite://dev.db --migrate
  seedkit seed --only users,organizations --count users=200
  seedkit seed --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		users := -1
		if cmd.Flags().Changed("users") {
			users = seedUsers
		}
		descs, err := catalogFor(seedOnly, seedCounts, users)
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

		if seedMigrate || app.cfg.DB.Migrate {
			if err := migrateUp(ctx, db, out); err != nil {
				return err
			}
		}

		opts := []seeding.Option{seeding.WithLogger(app.log), seeding.WithDryRun(seedDryRun)}
		var live *seeding.LiveRenderer
		if seedProgress && terminal.IsInteractive(os.Stdout) {
			progress := seeding.NewProgress()
			live = seeding.NewLiveRenderer(progress)
			opts = append(opts, seeding.WithProgress(progress), seeding.WithObserver(live.Observe))
		}

		startAt := time.Now()
		rep, err := seeding.NewRunner(db, opts...).Seed(ctx, descs...)
		if live != nil {
			live.Stop()
		}
		if err != nil {
			return err
		}

		table, err := seeding.SummaryTable(rep)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, table)
		if !seedDryRun {
			fmt.Fprintf(out, "Done in %s\n", time.Since(startAt).Round(time.Millisecond))
		}

		if seedStrict && rep.HasFailures() {
			return serrors.New(serrors.SeedFailed, fmt.Sprintf("%d of %d seed(s) failed", rep.Totals.Failed, len(rep.Results)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	f := seedCmd.Flags()
	f.StringSliceVar(&seedOnly, "only", nil, "Run only these seeds (comma separated); their dependencies are assumed present")
	f.StringArrayVar(&seedCounts, "count", nil, "Override a target count as name=n (repeatable)")
	f.IntVar(&seedUsers, "users", 0, "Shorthand for --count users=n")
	f.BoolVar(&seedMigrate, "migrate", false, "Apply pending migrations before seeding")
	f.BoolVar(&seedProgress, "progress", true, "Show live progress when attached to a terminal")
	f.BoolVar(&seedDryRun, "dry-run", false, "Print the plan without running seeds")
	f.BoolVar(&seedStrict, "strict", false, "Exit with status 1 when any seed failed")
}
