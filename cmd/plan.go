// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"seedkit/cli/internal/seeding"

	"github.com/spf13/cobra"
)

var (
	planOnly   []string
	planCounts []string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the order seeds would run in",
	Long: `The plan command schedules the seed catalog without touching the database and
prints the execution order as a tree. Dependencies outside the selected set are
listed as assumed present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		descs, err := catalogFor(planOnly, planCounts, -1)
		if err != nil {
			return err
		}
		plan, err := seeding.Schedule(descs)
		if err != nil {
			return err
		}
		tree, err := seeding.PlanTree(plan)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), tree)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringSliceVar(&planOnly, "only", nil, "Plan only these seeds (comma separated)")
	planCmd.Flags().StringArrayVar(&planCounts, "count", nil, "Override a target count as name=n (repeatable)")
}
