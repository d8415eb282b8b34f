// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package seeds

import (
	"context"
	"testing"

	"seedkit/cli/internal/database"
	serrors "seedkit/cli/internal/errors"
	"seedkit/cli/internal/logging"
	"seedkit/cli/internal/seeding"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func migratedDB(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = database.Migrate(ctx, db)
	require.NoError(t, err)
	return db
}

func testOptions() Options {
	return Options{Faker: gofakeit.New(42), AdminEmail: "dev@seedkit.test", AdminPassword: "s3cret"}
}

func rowCount(t *testing.T, db *database.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.GetContext(context.Background(), &n, db.Rebind(query), args...))
	return n
}

func TestSeedScenarioIsIdempotent(t *testing.T) {
	db := migratedDB(t)
	f := NewFactories(testOptions())
	runner := seeding.NewRunner(db, seeding.WithLogger(logging.Nop()))
	ctx := context.Background()

	rep, err := runner.Seed(ctx, f.DevAdmin(), f.Users(10), f.Organizations(5))
	require.NoError(t, err)
	require.False(t, rep.HasFailures())

	created := map[string]int{}
	for _, r := range rep.Results {
		created[r.Name] = r.CreatedCount
	}
	assert.Equal(t, map[string]int{DevAdminSeed: 1, UsersSeed: 10, OrganizationsSeed: 5}, created)
	assert.Equal(t, 16, rep.Totals.Created)

	orgs, ok := rep.Result(OrganizationsSeed)
	require.True(t, ok)
	assert.Equal(t, 20, orgs.Details["memberships"])
	assert.Equal(t, 20, rowCount(t, db, `SELECT COUNT(*) FROM memberships WHERE fake = ?`, true))

	again, err := runner.Seed(ctx, f.DevAdmin(), f.Users(10), f.Organizations(5))
	require.NoError(t, err)
	assert.Equal(t, 0, again.Totals.Created)
	assert.Equal(t, 16, again.Totals.Existing)
}

func TestSeedTopsUpToLargerTarget(t *testing.T) {
	db := migratedDB(t)
	f := NewFactories(testOptions())
	runner := seeding.NewRunner(db, seeding.WithLogger(logging.Nop()))
	ctx := context.Background()

	_, err := runner.Seed(ctx, f.Users(50))
	require.NoError(t, err)
	rep, err := runner.Seed(ctx, f.Users(100))
	require.NoError(t, err)

	res, ok := rep.Result(UsersSeed)
	require.True(t, ok)
	assert.Equal(t, 50, res.ExistingCount)
	assert.Equal(t, 50, res.CreatedCount)
	assert.Equal(t, 100, rowCount(t, db, `SELECT COUNT(*) FROM users WHERE role = 'member'`))

	shrunk, err := runner.Seed(ctx, f.Users(10))
	require.NoError(t, err)
	assert.Equal(t, 0, shrunk.Totals.Created)
	assert.Equal(t, 100, rowCount(t, db, `SELECT COUNT(*) FROM users WHERE role = 'member'`))
}

func TestFullCatalog(t *testing.T) {
	db := migratedDB(t)
	opts := testOptions()
	opts.Counts = map[string]int{UsersSeed: 6, AttemptsSeed: 12}
	runner := seeding.NewRunner(db, seeding.WithLogger(logging.Nop()))

	rep, err := runner.Seed(context.Background(), Catalog(opts)...)
	require.NoError(t, err)
	require.False(t, rep.HasFailures())
	assert.Empty(t, rep.Unresolved)

	stats, err := database.Stats(context.Background(), db)
	require.NoError(t, err)
	got := map[string]int{}
	for _, s := range stats {
		got[s.Table] = s.Fake
	}
	assert.Equal(t, 7, got["users"])
	assert.Equal(t, 5, got["organizations"])
	assert.Equal(t, 10, got["courses"])
	assert.Equal(t, 40, got["lessons"])
	assert.Equal(t, 10, got["quizzes"])
	assert.Equal(t, 50, got["questions"])
	assert.Equal(t, 12, got["quiz_attempts"])

	attempts, _ := rep.Result(AttemptsSeed)
	assert.Equal(t, rowCount(t, db, `SELECT COUNT(*) FROM quiz_attempts WHERE passed = ?`, true), attempts.Details["passed"])
}

func TestDevAdminUsesConfiguredCredentials(t *testing.T) {
	db := migratedDB(t)
	f := NewFactories(testOptions())
	_, err := seeding.NewRunner(db, seeding.WithLogger(logging.Nop())).Seed(context.Background(), f.DevAdmin())
	require.NoError(t, err)

	var hash string
	require.NoError(t, db.GetContext(context.Background(), &hash,
		db.Rebind(`SELECT password_hash FROM users WHERE email = ? AND role = 'admin'`), "dev@seedkit.test"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}

func TestSeedWithoutParentsFailsInIsolation(t *testing.T) {
	db := migratedDB(t)
	f := NewFactories(testOptions())
	rec := &logging.Recorder{}
	runner := seeding.NewRunner(db, seeding.WithLogger(rec))

	rep, err := runner.Seed(context.Background(), f.Courses(3), f.Users(2))
	require.NoError(t, err)

	courses, _ := rep.Result(CoursesSeed)
	require.Error(t, courses.Err)
	assert.True(t, serrors.IsKind(courses.Err, serrors.SeedFailed))
	assert.Contains(t, courses.Err.Error(), "seed organizations first")

	users, _ := rep.Result(UsersSeed)
	assert.NoError(t, users.Err)
	assert.Equal(t, 2, users.CreatedCount)
	assert.Equal(t, 1, rep.Totals.Failed)
	assert.NotEmpty(t, rec.Messages("warn"))
}

func TestCleanupRemovesOnlyFakeRows(t *testing.T) {
	db := migratedDB(t)
	ctx := context.Background()
	_, err := db.ExecContext(ctx, db.Rebind(
		`INSERT INTO users (id, email, name, password_hash, role, fake) VALUES (?, ?, ?, ?, ?, ?)`),
		"real-1", "real@seedkit.test", "Real Person", "x", "member", false)
	require.NoError(t, err)

	opts := testOptions()
	opts.Counts = map[string]int{UsersSeed: 4, AttemptsSeed: 5, LessonsSeed: 5, QuestionsSeed: 5}
	runner := seeding.NewRunner(db, seeding.WithLogger(logging.Nop()))
	_, err = runner.Seed(ctx, Catalog(opts)...)
	require.NoError(t, err)

	rep, err := runner.Cleanup(ctx, Cleanups()...)
	require.NoError(t, err)
	require.False(t, rep.HasFailures())
	assert.Equal(t, AttemptsSeed, rep.Results[0].Name)
	assert.Equal(t, DevAdminSeed, rep.Results[len(rep.Results)-1].Name)
	assert.Positive(t, rep.Deleted)

	assert.Equal(t, 1, rowCount(t, db, `SELECT COUNT(*) FROM users`))
	assert.Equal(t, 0, rowCount(t, db, `SELECT COUNT(*) FROM organizations`))

	second, err := runner.Cleanup(ctx, Cleanups()...)
	require.NoError(t, err)
	for _, r := range second.Results {
		assert.True(t, r.Skipped, r.Name)
	}
}

func TestSelect(t *testing.T) {
	all := Catalog(testOptions())

	picked, err := Select(all, []string{"quizzes", " users "})
	require.NoError(t, err)
	require.Len(t, picked, 2)
	assert.Equal(t, UsersSeed, picked[0].Name)
	assert.Equal(t, QuizzesSeed, picked[1].Name)

	_, err = Select(all, []string{"users", "nope", "alsonope"})
	require.Error(t, err)
	assert.True(t, serrors.IsKind(err, serrors.ConfigInvalid))
	assert.Contains(t, err.Error(), "alsonope, nope")

	everything, err := Select(all, nil)
	require.NoError(t, err)
	assert.Len(t, everything, len(Names()))
}

func TestSelectCleanups(t *testing.T) {
	picked, err := SelectCleanups(Cleanups(), []string{"memberships", "devAdmin"})
	require.NoError(t, err)
	require.Len(t, picked, 2)
	assert.Equal(t, DevAdminSeed, picked[0].Name)
	assert.Equal(t, "memberships", picked[1].Name)
}

func TestCatalogCountOverrides(t *testing.T) {
	opts := testOptions()
	opts.Counts = map[string]int{LessonsSeed: 7, QuizzesSeed: -3, "devadmin": 2}
	for _, d := range Catalog(opts) {
		switch d.Name {
		case DevAdminSeed:
			assert.Equal(t, 2, d.TargetCount)
		case LessonsSeed:
			assert.Equal(t, 7, d.TargetCount)
		case QuizzesSeed:
			assert.Equal(t, 0, d.TargetCount)
		case AttemptsSeed:
			assert.Equal(t, 100, d.TargetCount)
			assert.ElementsMatch(t, []string{QuestionsSeed, UsersSeed}, d.DependsOn)
		}
	}
}

func TestSlugAndEmailHelpers(t *testing.T) {
	id := "0f8e7d6c-aaaa-bbbb-cccc-000000000000"
	assert.Equal(t, "acme-widgets-inc-0f8e7d6c", slugify("Acme Widgets, Inc.", id))
	assert.Equal(t, "org-0f8e7d6c", slugify("!!!", id))
	assert.Equal(t, "jane.doe.0f8e7d6c@seedkit.test", fakeEmail("Jane_Doe", id))
}
