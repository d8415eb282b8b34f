// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"seedkit/cli/internal/dsn"
	"seedkit/cli/internal/logging"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var dbinfoCmd = &cobra.Command{
	Use:   "dbinfo",
	Short: "Show which database seedkit would use",
	Long: `The dbinfo command prints the DSN seedkit resolved, with credentials masked,
and where it came from: --dsn, SEEDKIT_DSN, DATABASE_URL, the OS keychain or
the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		raw, source, err := resolveDSN()
		if err != nil {
			return err
		}
		kind := dsn.DetectDBType(raw)
		normalized := raw
		if n, err := dsn.Parse(raw); err == nil {
			normalized = n
		}

		body := fmt.Sprintf("%s\n\nDatabase: %s\nType:     %s\nSource:   %s",
			logging.Mask(normalized), dsn.DatabaseName(normalized), kind, source)
		box := pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Database Connection")).
			WithPadding(1).
			Sprint(body)
		fmt.Fprintln(out, box)
		fmt.Fprintln(out, "To change it, run: seedkit connect")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbinfoCmd)
}
