// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package seeds

import (
	"context"
	"fmt"

	"seedkit/cli/internal/seeding"

	"golang.org/x/crypto/bcrypt"
)

func devAdmin(opts Options) seeding.Factory {
	return seeding.Define(seeding.Config{Name: DevAdminSeed, DefaultCount: 1},
		func(ctx context.Context, db seeding.DB, target int) (seeding.Result, error) {
			existing, err := count(ctx, db, `SELECT COUNT(*) FROM users WHERE fake = ? AND role = 'admin'`, true)
			if err != nil {
				return seeding.Result{}, err
			}
			missing := seeding.TopUp(target, existing)
			if missing == 0 {
				return seeding.Result{ExistingCount: existing}, nil
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), opts.HashCost)
			if err != nil {
				return seeding.Result{}, fmt.Errorf("hash admin password: %w", err)
			}
			taken, err := count(ctx, db, `SELECT COUNT(*) FROM users WHERE email = ?`, opts.AdminEmail)
			if err != nil {
				return seeding.Result{}, err
			}
			for i := 0; i < missing; i++ {
				id := newID()
				email := opts.AdminEmail
				if taken > 0 || i > 0 {
					email = fakeEmail("admin", id)
				}
				row := userRow{
					ID:           id,
					Email:        email,
					Name:         "Dev Admin",
					PasswordHash: string(hash),
					Role:         "admin",
					Fake:         true,
				}
				if err := insert(ctx, db, insertUser, row); err != nil {
					return seeding.Result{}, fmt.Errorf("insert admin %s: %w", email, err)
				}
			}
			return seeding.Result{ExistingCount: existing, CreatedCount: missing}, nil
		})
}

func users(opts Options) seeding.Factory {
	return seeding.Define(seeding.Config{Name: UsersSeed, DefaultCount: 25, DependsOn: []string{DevAdminSeed}},
		func(ctx context.Context, db seeding.DB, target int) (seeding.Result, error) {
			existing, err := count(ctx, db, `SELECT COUNT(*) FROM users WHERE fake = ? AND role = 'member'`, true)
			if err != nil {
				return seeding.Result{}, err
			}
			missing := seeding.TopUp(target, existing)
			if missing == 0 {
				return seeding.Result{ExistingCount: existing}, nil
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(opts.MemberPassword), opts.HashCost)
			if err != nil {
				return seeding.Result{}, fmt.Errorf("hash member password: %w", err)
			}
			f := opts.Faker
			for i := 0; i < missing; i++ {
				id := newID()
				row := userRow{
					ID:           id,
					Email:        fakeEmail(f.Username(), id),
					Name:         f.Name(),
					PasswordHash: string(hash),
					Role:         "member",
					Fake:         true,
				}
				if err := insert(ctx, db, insertUser, row); err != nil {
					return seeding.Result{}, fmt.Errorf("insert user: %w", err)
				}
			}
			return seeding.Result{ExistingCount: existing, CreatedCount: missing}, nil
		})
}
