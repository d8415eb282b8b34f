// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	serrors "seedkit/cli/internal/errors"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// MigrationStatus is one migration file and whether it has been applied.
type MigrationStatus struct {
	Version int64
	Source  string
	Applied bool
}

// Migrator applies the embedded migrations for the handle's dialect.
type Migrator struct {
	provider *goose.Provider
}

// NewMigrator builds a goose provider over the migrations matching db.Dialect.
func NewMigrator(db *DB) (*Migrator, error) {
	dir, dialect := "migrations/postgres", goose.DialectPostgres
	if db.Dialect == SQLite {
		dir, dialect = "migrations/sqlite", goose.DialectSQLite3
	}
	sub, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return nil, err
	}
	p, err := goose.NewProvider(dialect, db.DB.DB, sub)
	if err != nil {
		return nil, serrors.Wrap(serrors.MigrationFailed, "load migrations", err)
	}
	return &Migrator{provider: p}, nil
}

// Up applies every pending migration and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	res, err := m.provider.Up(ctx)
	if err != nil {
		return len(res), serrors.Wrap(serrors.MigrationFailed, "migrate up", err)
	}
	return len(res), nil
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	if _, err := m.provider.Down(ctx); err != nil {
		return serrors.Wrap(serrors.MigrationFailed, "migrate down", err)
	}
	return nil
}

// Reset rolls back every applied migration.
func (m *Migrator) Reset(ctx context.Context) (int, error) {
	res, err := m.provider.DownTo(ctx, 0)
	if err != nil {
		return len(res), serrors.Wrap(serrors.MigrationFailed, "migrate reset", err)
	}
	return len(res), nil
}

// Version returns the current schema version, 0 when nothing is applied.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	v, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, serrors.Wrap(serrors.MigrationFailed, "read schema version", err)
	}
	return v, nil
}

// Status lists every known migration in version order.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	st, err := m.provider.Status(ctx)
	if err != nil {
		return nil, serrors.Wrap(serrors.MigrationFailed, "migration status", err)
	}
	out := make([]MigrationStatus, 0, len(st))
	for _, s := range st {
		out = append(out, MigrationStatus{
			Version: s.Source.Version,
			Source:  s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}

// Migrate brings db to the latest schema and returns how many migrations ran.
func Migrate(ctx context.Context, db *DB) (int, error) {
	m, err := NewMigrator(db)
	if err != nil {
		return 0, err
	}
	n, err := m.Up(ctx)
	if err != nil {
		return n, fmt.Errorf("migrate %s: %w", db.Dialect, err)
	}
	return n, nil
}
