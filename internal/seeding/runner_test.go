// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package seeding

import (
	"context"
	"errors"
	"strings"
	"testing"

	serrors "seedkit/cli/internal/errors"
	"seedkit/cli/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spy records the order in which seed bodies ran.
type spy struct {
	calls []string
}

func (s *spy) seed(name string, created int, deps ...string) Descriptor {
	return Descriptor{
		Name:        name,
		TargetCount: created,
		DependsOn:   deps,
		Run: func(context.Context, DB) (Result, error) {
			s.calls = append(s.calls, name)
			return Result{CreatedCount: created}, nil
		},
	}
}

func (s *spy) failing(name string, err error, deps ...string) Descriptor {
	return Descriptor{
		Name:      name,
		DependsOn: deps,
		Run: func(context.Context, DB) (Result, error) {
			s.calls = append(s.calls, name)
			return Result{CreatedCount: 99}, err
		},
	}
}

func TestSeedCycleRunsNothing(t *testing.T) {
	s := &spy{}
	rec := &logging.Recorder{}
	r := NewRunner(nil, WithLogger(rec))

	rep, err := r.Seed(context.Background(), s.seed("a", 1, "b"), s.seed("b", 1, "a"), s.seed("c", 1))

	require.Error(t, err)
	assert.True(t, serrors.IsKind(err, serrors.DependencyCycle))
	assert.Empty(t, s.calls)
	assert.Empty(t, rep.Results)
	assert.Equal(t, []string{"seed plan rejected"}, rec.Messages("error"))
}

func TestSeedFaultIsolation(t *testing.T) {
	s := &spy{}
	rec := &logging.Recorder{}
	r := NewRunner(nil, WithLogger(rec))

	rep, err := r.Seed(context.Background(),
		s.seed("first", 3),
		s.failing("middle", errors.New("boom"), "first"),
		s.seed("last", 2, "middle"),
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "middle", "last"}, s.calls)
	require.Len(t, rep.Results, 3)

	mid := rep.Results[1]
	assert.Equal(t, "middle", mid.Name)
	assert.Equal(t, 0, mid.CreatedCount)
	assert.Equal(t, 0, mid.ExistingCount)
	require.Error(t, mid.Err)
	assert.True(t, serrors.IsKind(mid.Err, serrors.SeedFailed))

	assert.Equal(t, 3, rep.Results[0].CreatedCount)
	assert.Equal(t, 2, rep.Results[2].CreatedCount)
	assert.Equal(t, Totals{Created: 5, Existing: 0, Failed: 1}, rep.Totals)
	assert.True(t, rep.HasFailures())

	assert.Contains(t, rec.Messages("error"), "Failed: boom")
	infos := rec.Messages("info")
	assert.Equal(t, "seeding finished", infos[len(infos)-1])
}

func TestSeedPanicIsContained(t *testing.T) {
	s := &spy{}
	panicking := Descriptor{
		Name: "panics",
		Run: func(context.Context, DB) (Result, error) {
			var m map[string]int
			m["x"]++
			return Result{}, nil
		},
	}
	noBody := Descriptor{Name: "empty"}

	rep, err := NewRunner(nil).Seed(context.Background(), panicking, noBody, s.seed("after", 1))

	require.NoError(t, err)
	require.Len(t, rep.Results, 3)
	assert.ErrorContains(t, rep.Results[0].Err, "panic:")
	assert.ErrorContains(t, rep.Results[1].Err, "descriptor has no body")
	assert.Equal(t, []string{"after"}, s.calls)
	assert.Equal(t, 2, rep.Totals.Failed)
}

func TestSeedWarnsOnMissingDependency(t *testing.T) {
	s := &spy{}
	rec := &logging.Recorder{}

	rep, err := NewRunner(nil, WithLogger(rec)).Seed(context.Background(), s.seed("organizations", 5, "users"))

	require.NoError(t, err)
	assert.Equal(t, []string{"organizations"}, s.calls)
	assert.Equal(t, map[string][]string{"organizations": {"users"}}, rep.Unresolved)

	var warned bool
	for _, e := range rec.Entries() {
		if e.Level == "warn" && e.Args["dependency"] == "users" && e.Args["seed"] == "organizations" {
			warned = true
		}
	}
	assert.True(t, warned, "missing dependency should be reported")
}

func TestSeedEventsAndProgress(t *testing.T) {
	s := &spy{}
	progress := NewProgress()
	var events []EventType
	r := NewRunner(nil,
		WithProgress(progress),
		WithObserver(func(ev Event) { events = append(events, ev.Type) }),
	)

	_, err := r.Seed(context.Background(), s.seed("users", 1), s.failing("orgs", errors.New("fk"), "users"))
	require.NoError(t, err)

	assert.Equal(t, []EventType{EventPlan, EventStart, EventDone, EventStart, EventFail, EventFinish}, events)
	snap := progress.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, Entry{Name: "users", Status: StatusDone}, snap[0])
	assert.Equal(t, Entry{Name: "orgs", Status: StatusDone, Reason: "fk"}, snap[1])
}

func TestSeedDryRun(t *testing.T) {
	s := &spy{}
	rep, err := NewRunner(nil, WithDryRun(true)).Seed(context.Background(), s.seed("users", 10), s.seed("devAdmin", 1))

	require.NoError(t, err)
	assert.Empty(t, s.calls)
	assert.True(t, rep.DryRun)
	require.Len(t, rep.Results, 2)
	assert.Equal(t, Result{Name: "users", TargetCount: 10}, rep.Results[0])
}

func TestSeedCanceledContext(t *testing.T) {
	s := &spy{}
	ctx, cancel := context.WithCancel(context.Background())
	first := Descriptor{
		Name: "first",
		Run: func(context.Context, DB) (Result, error) {
			s.calls = append(s.calls, "first")
			cancel()
			return Result{CreatedCount: 1}, nil
		},
	}

	rep, err := NewRunner(nil).Seed(ctx, first, s.seed("second", 1, "first"))

	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, s.calls)
	require.Len(t, rep.Results, 2)
	assert.NoError(t, rep.Results[0].Err)
	assert.ErrorIs(t, rep.Results[1].Err, context.Canceled)
}

func TestSeedResultNameComesFromDescriptor(t *testing.T) {
	d := Descriptor{
		Name:        "users",
		TargetCount: 4,
		Run: func(context.Context, DB) (Result, error) {
			return Result{Name: "other", CreatedCount: 4}, nil
		},
	}
	rep, err := NewRunner(nil).Seed(context.Background(), d)
	require.NoError(t, err)
	res, ok := rep.Result("users")
	require.True(t, ok)
	assert.Equal(t, 4, res.TargetCount)
}

func TestSeedResultErrorIsAFailure(t *testing.T) {
	rec := &logging.Recorder{}
	progress := NewProgress()
	var events []EventType
	d := Descriptor{
		Name:        "organizations",
		TargetCount: 5,
		Run: func(context.Context, DB) (Result, error) {
			return Result{CreatedCount: 3, Err: errors.New("unique violation")}, nil
		},
	}
	r := NewRunner(nil,
		WithLogger(rec),
		WithProgress(progress),
		WithObserver(func(ev Event) { events = append(events, ev.Type) }),
	)

	rep, err := r.Seed(context.Background(), d)
	require.NoError(t, err)

	res, ok := rep.Result("organizations")
	require.True(t, ok)
	assert.True(t, serrors.IsKind(res.Err, serrors.SeedFailed))
	assert.Equal(t, 0, res.CreatedCount)
	assert.Equal(t, Totals{Created: 0, Existing: 0, Failed: 1}, rep.Totals)
	assert.Contains(t, rec.Messages("error"), "Failed: unique violation")
	assert.NotContains(t, rec.Messages("info"), "seeded")
	assert.Contains(t, events, EventFail)
	assert.Equal(t, "unique violation", progress.Snapshot()[0].Reason)
}

func TestSeedFailureTextIsMasked(t *testing.T) {
	s := &spy{}
	progress := NewProgress()
	live := NewLiveRenderer(progress)
	r := NewRunner(nil, WithProgress(progress))

	rep, err := r.Seed(context.Background(), s.failing("users", errors.New("dial postgres://bob:s3cret@db/app failed")))
	require.NoError(t, err)

	table, err := SummaryTable(rep)
	require.NoError(t, err)
	assert.NotContains(t, table, "s3cret")
	assert.Contains(t, table, "Failed: ")
	assert.NotContains(t, progress.Snapshot()[0].Reason, "s3cret")
	assert.NotContains(t, strings.Join(live.Lines(), "\n"), "s3cret")
}
