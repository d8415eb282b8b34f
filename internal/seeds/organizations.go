// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package seeds

import (
	"context"
	"fmt"

	"seedkit/cli/internal/seeding"
)

// membersPerOrganization is how many plain members join each new organization
// besides its owner, capped by the number of fake users.
const membersPerOrganization = 3

type organizationsResult struct {
	existing    int
	created     int
	memberships int
}

func (r organizationsResult) Report() seeding.Result {
	return seeding.Result{
		ExistingCount: r.existing,
		CreatedCount:  r.created,
		Details:       map[string]int{"memberships": r.memberships},
	}
}

func organizations(opts Options) seeding.Factory {
	return seeding.Define(seeding.Config{Name: OrganizationsSeed, DefaultCount: 5, DependsOn: []string{UsersSeed}},
		func(ctx context.Context, db seeding.DB, target int) (organizationsResult, error) {
			existing, err := count(ctx, db, `SELECT COUNT(*) FROM organizations WHERE fake = ?`, true)
			if err != nil {
				return organizationsResult{}, err
			}
			missing := seeding.TopUp(target, existing)
			if missing == 0 {
				return organizationsResult{existing: existing}, nil
			}
			members, err := ids(ctx, db, `SELECT id FROM users WHERE fake = ? AND role = 'member' ORDER BY created_at, id`, true)
			if err != nil {
				return organizationsResult{}, err
			}
			if err := requireParents(UsersSeed, members); err != nil {
				return organizationsResult{}, err
			}

			f := opts.Faker
			res := organizationsResult{existing: existing}
			for i := 0; i < missing; i++ {
				id := newID()
				name := f.Company()
				ownerIdx := (existing + i) % len(members)
				org := organizationRow{ID: id, Name: name, Slug: slugify(name, id), OwnerID: members[ownerIdx], Fake: true}
				if err := insert(ctx, db, insertOrganization, org); err != nil {
					return organizationsResult{}, fmt.Errorf("insert organization %q: %w", name, err)
				}
				res.created++

				joined := 0
				for j := 0; j <= membersPerOrganization && j < len(members); j++ {
					role := "member"
					if j == 0 {
						role = "owner"
					}
					m := membershipRow{
						ID:             newID(),
						OrganizationID: id,
						UserID:         members[(ownerIdx+j)%len(members)],
						Role:           role,
						Fake:           true,
					}
					if err := insert(ctx, db, insertMembership, m); err != nil {
						return organizationsResult{}, fmt.Errorf("insert membership: %w", err)
					}
					joined++
				}
				res.memberships += joined
			}
			return res, nil
		})
}
