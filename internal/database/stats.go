// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SeededTables lists the tables seeds write to, parents first.
var SeededTables = []string{
	"users",
	"organizations",
	"memberships",
	"courses",
	"lessons",
	"quizzes",
	"questions",
	"quiz_attempts",
}

// TableStats counts all rows and synthetic rows of one table.
type TableStats struct {
	Table string `db:"-"`
	Total int    `db:"total"`
	Fake  int    `db:"fake"`
}

// Stats returns row counts for every seeded table in SeededTables order.
func Stats(ctx context.Context, db sqlx.QueryerContext) ([]TableStats, error) {
	out := make([]TableStats, 0, len(SeededTables))
	for _, table := range SeededTables {
		st := TableStats{Table: table}
		// Table names come from the fixed list above.
		q := fmt.Sprintf(`SELECT COUNT(*) AS total, COALESCE(SUM(CASE WHEN fake THEN 1 ELSE 0 END), 0) AS fake FROM %s`, table)
		if err := sqlx.GetContext(ctx, db, &st, q); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		out = append(out, st)
	}
	return out, nil
}
