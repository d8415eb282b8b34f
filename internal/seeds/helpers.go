// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package seeds

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"seedkit/cli/internal/seeding"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// count runs a COUNT(*) query written with ? placeholders.
func count(ctx context.Context, db seeding.DB, query string, args ...any) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, db, &n, db.Rebind(query), args...); err != nil {
		return 0, err
	}
	return n, nil
}

// ids selects a single id column written with ? placeholders.
func ids(ctx context.Context, db seeding.DB, query string, args ...any) ([]string, error) {
	var out []string
	if err := sqlx.SelectContext(ctx, db, &out, db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return out, nil
}

// insert runs a named INSERT for one row struct.
func insert(ctx context.Context, db seeding.DB, query string, row any) error {
	_, err := sqlx.NamedExecContext(ctx, db, query, row)
	return err
}

// deleteRows runs a DELETE written with ? placeholders and reports rows affected.
func deleteRows(ctx context.Context, db seeding.DB, query string, args ...any) (int, error) {
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func newID() string { return uuid.NewString() }

// suffix is a short unique token for columns with UNIQUE constraints.
func suffix(id string) string { return strings.ReplaceAll(id, "-", "")[:8] }

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s, id string) string {
	base := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if base == "" {
		base = "org"
	}
	return base + "-" + suffix(id)
}

func fakeEmail(username, id string) string {
	user := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(username), "."), ".")
	if user == "" {
		user = "user"
	}
	return fmt.Sprintf("%s.%s@seedkit.test", user, suffix(id))
}

// requireParents fails a seed whose parent seed has produced nothing yet.
func requireParents(parent string, rows []string) error {
	if len(rows) == 0 {
		return fmt.Errorf("no fake %s found; seed %s first", parent, parent)
	}
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
