// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package seeds

import (
	"context"
	"fmt"

	"seedkit/cli/internal/seeding"
)

// fakeRows removes the rows of table flagged fake and matching an optional
// extra condition.
func fakeRows(name, table, extra string) seeding.CleanupDescriptor {
	where := "fake = ?"
	if extra != "" {
		where += " AND " + extra
	}
	return seeding.DefineCleanup(name,
		func(ctx context.Context, db seeding.DB) (int, error) {
			return count(ctx, db, fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", table, where), true)
		},
		func(ctx context.Context, db seeding.DB) (int, error) {
			return deleteRows(ctx, db, fmt.Sprintf("DELETE FROM %s WHERE %s", table, where), true)
		})
}

// Cleanups lists every cleanup in seed order. The runner reverses it so
// dependents are removed before the rows they reference.
func Cleanups() []seeding.CleanupDescriptor {
	return []seeding.CleanupDescriptor{
		fakeRows(DevAdminSeed, "users", "role = 'admin'"),
		fakeRows(UsersSeed, "users", "role = 'member'"),
		fakeRows(OrganizationsSeed, "organizations", ""),
		fakeRows("memberships", "memberships", ""),
		fakeRows(CoursesSeed, "courses", ""),
		fakeRows(LessonsSeed, "lessons", ""),
		fakeRows(QuizzesSeed, "quizzes", ""),
		fakeRows(QuestionsSeed, "questions", ""),
		fakeRows(AttemptsSeed, "quiz_attempts", ""),
	}
}

// SelectCleanups keeps the named cleanups in seed order. An empty names list
// keeps everything.
func SelectCleanups(all []seeding.CleanupDescriptor, names []string) ([]seeding.CleanupDescriptor, error) {
	if len(names) == 0 {
		return all, nil
	}
	want, err := nameSet(names, func(n string) bool {
		for _, c := range all {
			if c.Name == n {
				return true
			}
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	out := make([]seeding.CleanupDescriptor, 0, len(want))
	for _, c := range all {
		if want[c.Name] {
			out = append(out, c)
		}
	}
	return out, nil
}
