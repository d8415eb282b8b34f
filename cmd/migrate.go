// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"seedkit/cli/internal/database"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the schema seeds write to",
	Long: `The migrate command applies or rolls back the embedded schema migrations for the
configured database (PostgreSQL or SQLite).`,
}

// migrateAction opens the database and hands a migrator to fn.
func migrateAction(fn func(ctx context.Context, m *database.Migrator, w io.Writer) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := openDatabase(ctx, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer db.Close()
		m, err := database.NewMigrator(db)
		if err != nil {
			return err
		}
		return fn(ctx, m, cmd.OutOrStdout())
	}
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: migrateAction(func(ctx context.Context, m *database.Migrator, w io.Writer) error {
		n, err := m.Up(ctx)
		if err != nil {
			return err
		}
		app.log.Info("migrations applied", "count", n)
		fmt.Fprintf(w, "Applied %d migration(s)\n", n)
		return nil
	}),
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Args:  cobra.NoArgs,
	RunE: migrateAction(func(ctx context.Context, m *database.Migrator, w io.Writer) error {
		if err := m.Down(ctx); err != nil {
			return err
		}
		v, err := m.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Rolled back; schema is now at version %d\n", v)
		return nil
	}),
}

var migrateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Roll back every applied migration",
	Args:  cobra.NoArgs,
	RunE: migrateAction(func(ctx context.Context, m *database.Migrator, w io.Writer) error {
		n, err := m.Reset(ctx)
		if err != nil {
			return err
		}
		app.log.Info("migrations rolled back", "count", n)
		fmt.Fprintf(w, "Rolled back %d migration(s)\n", n)
		return nil
	}),
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: migrateAction(func(ctx context.Context, m *database.Migrator, w io.Writer) error {
		v, err := m.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, v)
		return nil
	}),
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List migrations and whether they are applied",
	Args:  cobra.NoArgs,
	RunE: migrateAction(func(ctx context.Context, m *database.Migrator, w io.Writer) error {
		st, err := m.Status(ctx)
		if err != nil {
			return err
		}
		data := pterm.TableData{{"Version", "Migration", "State"}}
		for _, s := range st {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			data = append(data, []string{strconv.FormatInt(s.Version, 10), s.Source, state})
		}
		out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateResetCmd, migrateVersionCmd, migrateStatusCmd)
}
