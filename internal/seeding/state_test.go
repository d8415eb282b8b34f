// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package seeding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressTransitions(t *testing.T) {
	p := NewProgress()
	p.Expect("users", "organizations", "users")

	require.Len(t, p.Snapshot(), 2)
	s, ok := p.Status("users")
	require.True(t, ok)
	assert.Equal(t, StatusPending, s)

	require.NoError(t, p.Start("users"))
	require.NoError(t, p.Succeed("users"))
	require.NoError(t, p.Start("organizations"))
	require.NoError(t, p.Fail("organizations", "no users"))

	assert.Equal(t, map[Status]int{StatusSucceeded: 1, StatusFailedButContinued: 1}, p.Counts())
	assert.Equal(t, "no users", p.Snapshot()[1].Reason)

	p.Finish()
	assert.Equal(t, map[Status]int{StatusDone: 2}, p.Counts())
}

func TestProgressRejectsIllegalMoves(t *testing.T) {
	p := NewProgress()
	p.Expect("users")

	assert.Error(t, p.Succeed("users"), "pending cannot succeed without running")
	assert.Error(t, p.Fail("ghost", "x"), "unknown entries are rejected")

	require.NoError(t, p.Start("users"))
	assert.Error(t, p.Start("users"), "running cannot restart")
	require.NoError(t, p.Succeed("users"))
	assert.Error(t, p.Fail("users", "late"))
}

func TestProgressFinishLeavesUnsettled(t *testing.T) {
	p := NewProgress()
	p.Expect("a", "b")
	require.NoError(t, p.Start("a"))
	p.Finish()

	a, _ := p.Status("a")
	b, _ := p.Status("b")
	assert.Equal(t, StatusRunning, a)
	assert.Equal(t, StatusPending, b)

	p.Reset()
	assert.Empty(t, p.Snapshot())
}
