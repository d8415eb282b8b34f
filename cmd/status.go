// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strconv"

	"seedkit/cli/internal/database"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how many rows each seeded table holds",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		db, err := openDatabase(ctx, out)
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := database.Stats(ctx, db)
		if err != nil {
			return fmt.Errorf("read table stats (run 'seedkit migrate up' first?): %w", err)
		}
		data := pterm.TableData{{"Table", "Rows", "Seeded"}}
		var total, fake int
		for _, s := range stats {
			data = append(data, []string{s.Table, strconv.Itoa(s.Total), strconv.Itoa(s.Fake)})
			total += s.Total
			fake += s.Fake
		}
		data = append(data, []string{"total", strconv.Itoa(total), strconv.Itoa(fake)})
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, table)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
