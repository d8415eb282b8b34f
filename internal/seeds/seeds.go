// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package seeds declares the platform's seeds: a dev admin, member users,
// organizations with memberships, courses with lessons, quizzes with questions
// and quiz attempts. Every row they insert carries fake = true and every seed
// only tops up the shortfall to its target count.
package seeds

import (
	"fmt"
	"sort"
	"strings"

	serrors "seedkit/cli/internal/errors"
	"seedkit/cli/internal/seeding"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
)

// Seed names.
const (
	DevAdminSeed      = "devAdmin"
	UsersSeed         = "users"
	OrganizationsSeed = "organizations"
	CoursesSeed       = "courses"
	LessonsSeed       = "lessons"
	QuizzesSeed       = "quizzes"
	QuestionsSeed     = "questions"
	AttemptsSeed      = "attempts"
)

// Options tunes the seeds of one invocation.
type Options struct {
	// Counts overrides default target counts by seed name.
	Counts map[string]int
	// AdminEmail is the login of the dev admin account.
	AdminEmail string
	// AdminPassword is hashed with bcrypt for the dev admin.
	AdminPassword string
	// MemberPassword is shared by all generated member users.
	MemberPassword string
	// HashCost is the bcrypt cost; zero means bcrypt.MinCost.
	HashCost int
	// Faker generates names and text; nil means a randomly seeded one.
	Faker *gofakeit.Faker
}

func (o Options) withDefaults() Options {
	if o.AdminEmail == "" {
		o.AdminEmail = "admin@seedkit.local"
	}
	if o.AdminPassword == "" {
		o.AdminPassword = "admin"
	}
	if o.MemberPassword == "" {
		o.MemberPassword = "password"
	}
	if o.HashCost == 0 {
		o.HashCost = bcrypt.MinCost
	}
	if o.Faker == nil {
		o.Faker = gofakeit.New(0)
	}
	return o
}

// Factories holds one count-parameterized factory per seed.
type Factories struct {
	DevAdmin      seeding.Factory
	Users         seeding.Factory
	Organizations seeding.Factory
	Courses       seeding.Factory
	Lessons       seeding.Factory
	Quizzes       seeding.Factory
	Questions     seeding.Factory
	Attempts      seeding.Factory
}

// NewFactories binds every seed to opts.
func NewFactories(opts Options) Factories {
	opts = opts.withDefaults()
	return Factories{
		DevAdmin:      devAdmin(opts),
		Users:         users(opts),
		Organizations: organizations(opts),
		Courses:       courses(opts),
		Lessons:       lessons(opts),
		Quizzes:       quizzes(opts),
		Questions:     questions(opts),
		Attempts:      attempts(opts),
	}
}

func (f Factories) ordered() []struct {
	name    string
	factory seeding.Factory
} {
	return []struct {
		name    string
		factory seeding.Factory
	}{
		{DevAdminSeed, f.DevAdmin},
		{UsersSeed, f.Users},
		{OrganizationsSeed, f.Organizations},
		{CoursesSeed, f.Courses},
		{LessonsSeed, f.Lessons},
		{QuizzesSeed, f.Quizzes},
		{QuestionsSeed, f.Questions},
		{AttemptsSeed, f.Attempts},
	}
}

// Names lists every seed in declaration order.
func Names() []string {
	return []string{
		DevAdminSeed, UsersSeed, OrganizationsSeed, CoursesSeed,
		LessonsSeed, QuizzesSeed, QuestionsSeed, AttemptsSeed,
	}
}

// Catalog returns fresh descriptors for every seed, applying count overrides.
// Override keys match seed names case-insensitively.
func Catalog(opts Options) []seeding.Descriptor {
	f := NewFactories(opts)
	counts := make(map[string]int, len(opts.Counts))
	for k, n := range opts.Counts {
		counts[strings.ToLower(k)] = n
	}
	out := make([]seeding.Descriptor, 0, 8)
	for _, s := range f.ordered() {
		if n, ok := counts[strings.ToLower(s.name)]; ok {
			out = append(out, s.factory(n))
			continue
		}
		out = append(out, s.factory())
	}
	return out
}

// Select keeps only the named descriptors, in their original order. Their
// dependencies are not pulled in; the scheduler treats them as satisfied.
// An empty names list keeps everything.
func Select(descs []seeding.Descriptor, names []string) ([]seeding.Descriptor, error) {
	if len(names) == 0 {
		return descs, nil
	}
	want, err := nameSet(names, func(n string) bool {
		for _, d := range descs {
			if d.Name == n {
				return true
			}
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	out := make([]seeding.Descriptor, 0, len(want))
	for _, d := range descs {
		if want[d.Name] {
			out = append(out, d)
		}
	}
	return out, nil
}

func nameSet(names []string, known func(string) bool) (map[string]bool, error) {
	want := make(map[string]bool, len(names))
	var unknown []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if !known(n) {
			unknown = append(unknown, n)
			continue
		}
		want[n] = true
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, serrors.New(serrors.ConfigInvalid, fmt.Sprintf("unknown seed(s): %s", strings.Join(unknown, ", ")))
	}
	return want, nil
}
