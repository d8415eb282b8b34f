// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package seeds

import (
	"context"
	"fmt"

	"seedkit/cli/internal/seeding"
)

func quizzes(opts Options) seeding.Factory {
	return seeding.Define(seeding.Config{Name: QuizzesSeed, DefaultCount: 10, DependsOn: []string{CoursesSeed}},
		func(ctx context.Context, db seeding.DB, target int) (seeding.Result, error) {
			existing, err := count(ctx, db, `SELECT COUNT(*) FROM quizzes WHERE fake = ?`, true)
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
				row := quizRow{
					ID:           newID(),
					CourseID:     parents[n%len(parents)],
					Title:        titleCase(f.BuzzWord()) + " check",
					PassingScore: 50 + 10*(n%4),
					Fake:         true,
				}
				if err := insert(ctx, db, insertQuiz, row); err != nil {
					return seeding.Result{}, fmt.Errorf("insert quiz: %w", err)
				}
			}
			return seeding.Result{ExistingCount: existing, CreatedCount: missing}, nil
		})
}

func questions(opts Options) seeding.Factory {
	return seeding.Define(seeding.Config{Name: QuestionsSeed, DefaultCount: 50, DependsOn: []string{QuizzesSeed}},
		func(ctx context.Context, db seeding.DB, target int) (seeding.Result, error) {
			existing, err := count(ctx, db, `SELECT COUNT(*) FROM questions WHERE fake = ?`, true)
			if err != nil {
				return seeding.Result{}, err
			}
			missing := seeding.TopUp(target, existing)
			if missing == 0 {
				return seeding.Result{ExistingCount: existing}, nil
			}
			parents, err := ids(ctx, db, `SELECT id FROM quizzes WHERE fake = ? ORDER BY created_at, id`, true)
			if err != nil {
				return seeding.Result{}, err
			}
			if err := requireParents(QuizzesSeed, parents); err != nil {
				return seeding.Result{}, err
			}

			f := opts.Faker
			for i := 0; i < missing; i++ {
				n := existing + i
				row := questionRow{
					ID:       newID(),
					QuizID:   parents[n%len(parents)],
					Prompt:   f.Question(),
					Answer:   f.Word(),
					Position: n/len(parents) + 1,
					Fake:     true,
				}
				if err := insert(ctx, db, insertQuestion, row); err != nil {
					return seeding.Result{}, fmt.Errorf("insert question: %w", err)
				}
			}
			return seeding.Result{ExistingCount: existing, CreatedCount: missing}, nil
		})
}
