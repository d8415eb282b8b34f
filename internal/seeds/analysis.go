// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package seeds

import (
	"context"
	"fmt"

	"seedkit/cli/internal/seeding"

	"github.com/jmoiron/sqlx"
)

type quizTarget struct {
	ID           string `db:"id"`
	PassingScore int    `db:"passing_score"`
}

func attempts(opts Options) seeding.Factory {
	return seeding.Define(seeding.Config{Name: AttemptsSeed, DefaultCount: 100, DependsOn: []string{QuestionsSeed, UsersSeed}},
		func(ctx context.Context, db seeding.DB, target int) (seeding.Result, error) {
			existing, err := count(ctx, db, `SELECT COUNT(*) FROM quiz_attempts WHERE fake = ?`, true)
			if err != nil {
				return seeding.Result{}, err
			}
			missing := seeding.TopUp(target, existing)
			if missing == 0 {
				return seeding.Result{ExistingCount: existing}, nil
			}

			var quizzes []quizTarget
			err = sqlx.SelectContext(ctx, db, &quizzes,
				db.Rebind(`SELECT id, passing_score FROM quizzes WHERE fake = ? ORDER BY created_at, id`), true)
			if err != nil {
				return seeding.Result{}, err
			}
			if len(quizzes) == 0 {
				return seeding.Result{}, fmt.Errorf("no fake %s found; seed %s first", QuizzesSeed, QuizzesSeed)
			}
			members, err := ids(ctx, db, `SELECT id FROM users WHERE fake = ? AND role = 'member' ORDER BY created_at, id`, true)
			if err != nil {
				return seeding.Result{}, err
			}
			if err := requireParents(UsersSeed, members); err != nil {
				return seeding.Result{}, err
			}

			f := opts.Faker
			passed := 0
			for i := 0; i < missing; i++ {
				n := existing + i
				quiz := quizzes[n%len(quizzes)]
				score := f.Number(0, 100)
				row := attemptRow{
					ID:     newID(),
					QuizID: quiz.ID,
					UserID: members[n%len(members)],
					Score:  score,
					Passed: score >= quiz.PassingScore,
					Fake:   true,
				}
				if err := insert(ctx, db, insertAttempt, row); err != nil {
					return seeding.Result{}, fmt.Errorf("insert quiz attempt: %w", err)
				}
				if row.Passed {
					passed++
				}
			}
			return seeding.Result{
				ExistingCount: existing,
				CreatedCount:  missing,
				Details:       map[string]int{"passed": passed},
			}, nil
		})
}
