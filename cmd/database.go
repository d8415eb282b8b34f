// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"seedkit/cli/internal/database"
	"seedkit/cli/internal/dsn"
	serrors "seedkit/cli/internal/errors"
	"seedkit/cli/internal/keychain"
	"seedkit/cli/internal/logging"

	"github.com/pterm/pterm"
)

// DSN sources, in lookup order.
const (
	sourceFlag     = "--dsn flag"
	sourceEnv      = "SEEDKIT_DSN environment variable"
	sourceDBURL    = "DATABASE_URL environment variable"
	sourceKeychain = "OS keychain"
	sourceConfig   = "config file"
)

// loadKeychainDSN reads the DSN stored by 'seedkit connect'.
var loadKeychainDSN = func() (string, error) {
	km, err := keychain.GetManager()
	if err != nil {
		return "", err
	}
	return km.LoadDBDSN()
}

// resolveDSN finds the DSN to use and names where it came from.
func resolveDSN() (string, string, error) {
	if v := strings.TrimSpace(dsnFlag); v != "" {
		return v, sourceFlag, nil
	}
	if v := strings.TrimSpace(os.Getenv("SEEDKIT_DSN")); v != "" {
		return v, sourceEnv, nil
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		return v, sourceDBURL, nil
	}
	v, err := loadKeychainDSN()
	switch {
	case err == nil && strings.TrimSpace(v) != "":
		return strings.TrimSpace(v), sourceKeychain, nil
	case err != nil && !errors.Is(err, keychain.ErrNotFound):
		app.log.Debug("keychain unavailable", "error", err)
	}
	if v := strings.TrimSpace(app.cfg.DB.DSN); v != "" {
		return v, sourceConfig, nil
	}
	return "", "", serrors.New(serrors.DSNUnavailable,
		"no database configured; pass --dsn, set SEEDKIT_DSN or run 'seedkit connect'")
}

// openDatabase resolves, normalizes and opens the target database, printing
// the masked connection to w.
func openDatabase(ctx context.Context, w io.Writer) (*database.DB, error) {
	raw, source, err := resolveDSN()
	if err != nil {
		return nil, err
	}
	normalized, err := dsn.Parse(raw)
	if err != nil {
		return nil, serrors.Wrap(serrors.DSNUnavailable, "invalid DSN from "+source, err)
	}
	app.log.Debug("database resolved", "source", source, "dsn", normalized)
	printConnection(w, normalized)

	db, err := database.Open(ctx, normalized)
	if err != nil {
		return nil, serrors.Wrap(serrors.DSNUnavailable, "connect to "+dsn.DatabaseName(normalized), err)
	}
	return db, nil
}

func printConnection(w io.Writer, normalized string) {
	label := pterm.NewStyle(pterm.FgLightCyan)
	fmt.Fprintln(w, label.Sprint("→ Database:   ")+pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(dsn.DatabaseName(normalized)))
	fmt.Fprintln(w, label.Sprint("→ Connection: ")+pterm.NewStyle(pterm.FgLightBlue).Sprint(logging.Mask(normalized)))
	fmt.Fprintln(w)
}

// migrateUp applies pending migrations and reports how many ran.
func migrateUp(ctx context.Context, db *database.DB, w io.Writer) error {
	n, err := database.Migrate(ctx, db)
	if err != nil {
		return err
	}
	app.log.Info("migrations applied", "count", n)
	if n > 0 {
		fmt.Fprintf(w, "Applied %d migration(s)\n\n", n)
	}
	return nil
}
