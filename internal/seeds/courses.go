// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package seeds

import (
	"context"
	"fmt"

	"seedkit/cli/internal/seeding"
)

func courses(opts Options) seeding.Factory {
	return seeding.Define(seeding.Config{Name: CoursesSeed, DefaultCount: 10, DependsOn: []string{OrganizationsSeed}},
		func(ctx context.Context, db seeding.DB, target int) (seeding.Result, error) {
			existing, err := count(ctx, db, `SELECT COUNT(*) FROM courses WHERE fake = ?`, true)
			if err != nil {
				return seeding.Result{}, err
			}
			missing := seeding.TopUp(target, existing)
			if missing == 0 {
				return seeding.Result{ExistingCount: existing}, nil
			}
			orgs, err := ids(ctx, db, `SELECT id FROM organizations WHERE fake = ? ORDER BY created_at, id`, true)
			if err != nil {
				return seeding.Result{}, err
			}
			if err := requireParents(OrganizationsSeed, orgs); err != nil {
				return seeding.Result{}, err
			}

			f := opts.Faker
			published := 0
			for i := 0; i < missing; i++ {
				n := existing + i
				row := courseRow{
					ID:             newID(),
					OrganizationID: orgs[n%len(orgs)],
					Title:          fmt.Sprintf("%s for %ss", titleCase(f.BuzzWord()), f.JobTitle()),
					Description:    f.Sentence(12),
					Published:      n%3 != 2,
					Fake:           true,
				}
				if err := insert(ctx, db, insertCourse, row); err != nil {
					return seeding.Result{}, fmt.Errorf("insert course: %w", err)
				}
				if row.Published {
					published++
				}
			}
			return seeding.Result{
				ExistingCount: existing,
				CreatedCount:  missing,
				Details:       map[string]int{"published": published},
			}, nil
		})
}

func lessons(opts Options) seeding.Factory {
	return seeding.Define(seeding.Config{Name: LessonsSeed, DefaultCount: 40, DependsOn: []string{CoursesSeed}},
		func(ctx context.Context, db seeding.DB, target int) (seeding.Result, error) {
			existing, err := count(ctx, db, `SELECT COUNT(*) FROM lessons WHERE fake = ?`, true)
			if err != nil {
				return seeding.Result{}, err
			}
			missing := seeding.TopUp(target, existing)
			if missing == 0 {
				return seeding.Result{ExistingCount: existing}, nil
			}
			parents, err := ids(ctx, db, `SELECT id FROM courses WHERE fake = ? ORDER BY created_at, id`, true)
			if err != nil {
				return seeding.Result{}, err
			}
			if err := requireParents(CoursesSeed, parents); err != nil {
				return seeding.Result{}, err
			}

			f := opts.Faker
			for i := 0; i < missing; i++ {
				n := existing + i
				row := lessonRow{
					ID:       newID(),
					CourseID: parents[n%len(parents)],
					Title:    titleCase(f.Word()) + ": " + f.Sentence(4),
					Position: n/len(parents) + 1,
					Fake:     true,
				}
				if err := insert(ctx, db, insertLesson, row); err != nil {
					return seeding.Result{}, fmt.Errorf("insert lesson: %w", err)
				}
			}
			return seeding.Result{ExistingCount: existing, CreatedCount: missing}, nil
		})
}
