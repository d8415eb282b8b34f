// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"seedkit/cli/internal/config"
	"seedkit/cli/internal/logging"
	"seedkit/cli/internal/xdg"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or write the seedkit config file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration with secrets masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.cfg
		cfg.DB.DSN = logging.Mask(cfg.DB.DSN)
		if cfg.Admin.Password != "" {
			cfg.Admin.Password = "***"
		}
		b, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Long: `The init command saves the settings currently in effect, from the config
file, .env, SEEDKIT_* variables and flags, to config.json. The DSN and the admin
password are left out; use 'seedkit connect' to store the DSN in the keychain.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = xdg.ConfigFile(); err != nil {
				return err
			}
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists; pass --force to overwrite", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		cfg := app.cfg
		cfg.DB.DSN = ""
		cfg.Admin.Password = ""
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		app.log.Debug("config written", "path", path)
		fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprint("Wrote "+path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd)
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
}
