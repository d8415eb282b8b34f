// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package database opens the application database behind a single sqlx handle,
// whether it is PostgreSQL (through a pgx pool) or a local SQLite file, and
// applies the embedded schema migrations.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"seedkit/cli/internal/dsn"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Dialect names the SQL flavour behind a DB.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know about.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// DB is the shared handle passed to every seed and cleanup.
type DB struct {
	*sqlx.DB
	Dialect Dialect
	pool    *pgxpool.Pool
}

// Close releases the handle and, for PostgreSQL, the underlying pool.
func (db *DB) Close() error {
	err := db.DB.Close()
	if db.pool != nil {
		db.pool.Close()
	}
	return err
}

// Open connects to the database named by a normalized DSN and waits until it
// answers a ping.
func Open(ctx context.Context, rawDSN string) (*DB, error) {
	switch dsn.DetectDBType(rawDSN) {
	case dsn.DBTypePostgreSQL:
		return openPostgres(ctx, rawDSN)
	case dsn.DBTypeSQLite:
		path, err := dsn.SQLitePath(rawDSN)
		if err != nil {
			return nil, err
		}
		return OpenSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("open database: unsupported DSN type %q", dsn.DetectDBType(rawDSN))
	}
}

func openPostgres(ctx context.Context, rawDSN string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(rawDSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	// Seeds run one at a time; a couple of connections cover the ping and a body.
	cfg.MaxConns = 2
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := ping(ctx, pool.Ping, 5); err != nil {
		pool.Close()
		return nil, err
	}
	sqlDB := stdlib.OpenDBFromPool(pool)
	return &DB{DB: sqlx.NewDb(sqlDB, "pgx"), Dialect: Postgres, pool: pool}, nil
}

// OpenSQLite opens a SQLite file (or ":memory:") with a single connection and
// foreign keys enforced.
func OpenSQLite(ctx context.Context, path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps in-memory databases alive and avoids SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	for _, p := range []string{
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := sqlDB.ExecContext(ctx, p); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}
	if path != ":memory:" {
		if _, err := sqlDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("enable WAL: %w", err)
		}
	}
	return &DB{DB: sqlx.NewDb(sqlDB, "sqlite"), Dialect: SQLite}, nil
}

// ping retries with a growing delay until the database answers or ctx ends.
func ping(ctx context.Context, fn func(context.Context) error, attempts int) error {
	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("ping database: %w", ctx.Err())
		case <-time.After(time.Duration(i) * 200 * time.Millisecond):
		}
	}
	return fmt.Errorf("ping database: %w", err)
}
