// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package seeding

import (
	"errors"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	pterm.DisableStyling()
}

func TestSummaryTable(t *testing.T) {
	rep := newReport([]Result{
		{Name: "devAdmin", TargetCount: 1, CreatedCount: 1},
		{Name: "users", TargetCount: 10, ExistingCount: 10},
		{Name: "organizations", TargetCount: 5, CreatedCount: 5, Details: map[string]int{"memberships": 12}},
		{Name: "courses", TargetCount: 10, Err: errors.New("no organizations")},
	}, nil, false)

	out, err := SummaryTable(rep)
	require.NoError(t, err)

	assert.Contains(t, out, "devAdmin")
	assert.Contains(t, out, "up to date")
	assert.Contains(t, out, "5 (memberships=12)")
	assert.Contains(t, out, "Failed: no organizations")
	assert.Contains(t, out, "1 failed")
}

func TestCleanupTable(t *testing.T) {
	rep := newCleanupReport([]CleanupResult{
		{Name: "attempts", DeletedCount: 100},
		{Name: "lessons", Skipped: true},
	}, false)

	out, err := CleanupTable(rep)
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to delete")
	assert.Contains(t, out, "100")
}

func TestPlanTree(t *testing.T) {
	plan, err := Schedule([]Descriptor{
		{Name: "organizations", TargetCount: 5, DependsOn: []string{"users", "billing"}},
		{Name: "users", TargetCount: 10},
	})
	require.NoError(t, err)

	out, err := PlanTree(plan)
	require.NoError(t, err)
	assert.Contains(t, out, "1. users (target 10)")
	assert.Contains(t, out, "2. organizations (target 5)")
	assert.Contains(t, out, "after users")
	assert.Contains(t, out, "billing (not in set, assumed present)")
	assert.Less(t, strings.Index(out, "1. users"), strings.Index(out, "2. organizations"))
}

func TestLiveRendererLines(t *testing.T) {
	p := NewProgress()
	p.Expect("users", "organizations", "courses")
	require.NoError(t, p.Start("users"))
	require.NoError(t, p.Succeed("users"))
	require.NoError(t, p.Start("organizations"))
	require.NoError(t, p.Fail("organizations", "boom"))
	require.NoError(t, p.Start("courses"))

	lr := NewLiveRenderer(p)
	lines := lr.Lines()
	require.Len(t, lines, 3)

	assert.Equal(t, "✓ seeded users", strings.TrimRight(lines[0], " "))
	assert.Equal(t, "✗ failed organizations: boom", strings.TrimRight(lines[1], " "))
	assert.True(t, strings.HasSuffix(strings.TrimRight(lines[2], " "), "seeding courses"))

	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), "lines are padded to the same width")
	}
}
