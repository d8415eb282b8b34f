// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package seeding orchestrates declarative seed descriptors: it orders them by
// their declared dependencies, runs them one at a time against a shared
// database handle, and mirrors the process in reverse for cleanup.
//
// A failing seed never aborts a run. Its error is recorded next to a zero
// result and the runner moves on to the next descriptor. Only wiring mistakes
// in the descriptor set (cycles, duplicate names) are returned to the caller.
package seeding

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// DB is the database handle shared by every seed and cleanup in one invocation.
// *sqlx.DB and *sqlx.Tx both satisfy it.
type DB interface {
	sqlx.ExtContext
}

// Result is the outcome of a single seed execution.
type Result struct {
	Name          string
	TargetCount   int
	ExistingCount int
	CreatedCount  int
	Details       map[string]int
	// Err is set when the seed body failed; the counts are zero in that case.
	Err error
}

// Failed reports whether the seed body failed.
func (r Result) Failed() bool { return r.Err != nil }

// Report makes Result its own Reporter so plain bodies can return it directly.
func (r Result) Report() Result { return r }

// Reporter is implemented by seed-specific result types. It converts the
// body's own result shape into the common Result.
type Reporter interface {
	Report() Result
}

// Config is the static part of a seed declaration.
type Config struct {
	Name         string
	DefaultCount int
	DependsOn    []string
}

// Body is a seed's effectful work. It must be idempotent: count what exists,
// then insert only the shortfall to reach count.
type Body[R Reporter] func(ctx context.Context, db DB, count int) (R, error)

// Descriptor is a ready-to-run seed. It is immutable once produced by a Factory.
type Descriptor struct {
	Name        string
	TargetCount int
	DependsOn   []string
	Run         func(ctx context.Context, db DB) (Result, error)
}

// Factory produces a Descriptor. Called without arguments it uses the default
// count; the first argument, when given, overrides it.
type Factory func(count ...int) Descriptor

// Define turns a static config and a count-parameterized body into a Factory.
// Nothing runs at factory-call time.
func Define[R Reporter](cfg Config, body Body[R]) Factory {
	deps := append([]string(nil), cfg.DependsOn...)
	return func(count ...int) Descriptor {
		target := cfg.DefaultCount
		if len(count) > 0 {
			target = count[0]
		}
		if target < 0 {
			target = 0
		}
		return Descriptor{
			Name:        cfg.Name,
			TargetCount: target,
			DependsOn:   append([]string(nil), deps...),
			Run: func(ctx context.Context, db DB) (Result, error) {
				out, err := body(ctx, db, target)
				if err != nil {
					return Result{}, err
				}
				res := out.Report()
				if res.Name == "" {
					res.Name = cfg.Name
				}
				res.TargetCount = target
				return res, nil
			},
		}
	}
}

// TopUp is the shortfall between target and existing, never negative.
func TopUp(target, existing int) int {
	if existing >= target {
		return 0
	}
	return target - existing
}
