// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package seeding

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	serrors "seedkit/cli/internal/errors"
	"seedkit/cli/internal/logging"
)

// Runner executes seeds and cleanups strictly one after another on a single
// shared database handle. It is not safe to use one Runner from several
// goroutines at once.
type Runner struct {
	db       DB
	log      logging.Logger
	observe  Observer
	progress *Progress
	dryRun   bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithObserver registers a callback for lifecycle events.
func WithObserver(o Observer) Option { return func(r *Runner) { r.observe = o } }

// WithProgress makes the runner record state transitions into p.
func WithProgress(p *Progress) Option { return func(r *Runner) { r.progress = p } }

// WithDryRun schedules and reports without running any body.
func WithDryRun(dry bool) Option { return func(r *Runner) { r.dryRun = dry } }

// NewRunner returns a Runner bound to db.
func NewRunner(db DB, opts ...Option) *Runner {
	r := &Runner{db: db, log: logging.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) emit(ev Event) {
	if r.observe != nil {
		r.observe(ev)
	}
}

// Seed schedules descs and runs them in dependency order. A failing seed is
// logged, recorded as a zero result carrying its error, and the run goes on.
// The returned error is non-nil only for scheduling errors, in which case no
// seed body has run.
func (r *Runner) Seed(ctx context.Context, descs ...Descriptor) (Report, error) {
	plan, err := Schedule(descs)
	if err != nil {
		r.log.Error("seed plan rejected", "error", err)
		return Report{}, err
	}
	names := plan.Names()
	r.warnUnresolved(plan)
	if r.progress != nil {
		r.progress.Expect(names...)
	}
	r.emit(Event{Type: EventPlan, Phase: PhaseSeed, Names: names, DryRun: r.dryRun})
	r.log.Info("seeding started", "seeds", len(names), "order", strings.Join(names, ","), "dry_run", r.dryRun)

	results := make([]Result, 0, len(plan.Order))
	for i, d := range plan.Order {
		if r.dryRun {
			r.log.Info("would seed", "seed", d.Name, "target", d.TargetCount)
			results = append(results, Result{Name: d.Name, TargetCount: d.TargetCount})
			continue
		}
		results = append(results, r.seedOne(ctx, d, i+1, len(plan.Order)))
	}

	report := newReport(results, plan.Unresolved, r.dryRun)
	r.logSeedSummary(report)
	if r.progress != nil {
		r.progress.Finish()
	}
	r.emit(Event{Type: EventFinish, Phase: PhaseSeed, Seed: &report, DryRun: r.dryRun})
	return report, nil
}

func (r *Runner) seedOne(ctx context.Context, d Descriptor, index, total int) Result {
	r.track(func(p *Progress) error { return p.Start(d.Name) })
	r.emit(Event{Type: EventStart, Phase: PhaseSeed, Name: d.Name, Index: index, Total: total})

	res, err := r.runSeedBody(ctx, d)
	if err != nil {
		wrapped := serrors.Wrap(serrors.SeedFailed, d.Name, err)
		res = Result{Name: d.Name, TargetCount: d.TargetCount, Err: wrapped}
		reason := logging.Mask(err.Error())
		r.log.Error("Failed: "+reason, "seed", d.Name)
		r.track(func(p *Progress) error { return p.Fail(d.Name, reason) })
		r.emit(Event{Type: EventFail, Phase: PhaseSeed, Name: d.Name, Index: index, Total: total, Err: wrapped, Result: &res})
		return res
	}

	args := []any{"seed", d.Name, "created", res.CreatedCount, "existing", res.ExistingCount}
	r.log.Info("seeded", append(args, detailArgs(res.Details)...)...)
	r.track(func(p *Progress) error { return p.Succeed(d.Name) })
	r.emit(Event{Type: EventDone, Phase: PhaseSeed, Name: d.Name, Index: index, Total: total, Result: &res})
	return res
}

func (r *Runner) runSeedBody(ctx context.Context, d Descriptor) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if d.Run == nil {
		return Result{}, errors.New("descriptor has no body")
	}
	res, err := protect(func() (Result, error) { return d.Run(ctx, r.db) })
	if err == nil {
		err = res.Err
	}
	if err != nil {
		return Result{}, err
	}
	res.Name = d.Name
	res.TargetCount = d.TargetCount
	return res, nil
}

func (r *Runner) warnUnresolved(plan Plan) {
	for _, d := range plan.Order {
		for _, dep := range plan.Unresolved[d.Name] {
			r.log.Warn("dependency not in seed set, assuming it is satisfied", "seed", d.Name, "dependency", dep)
		}
	}
}

func (r *Runner) logSeedSummary(rep Report) {
	for _, res := range rep.Results {
		if res.Failed() {
			r.log.Info("summary", "seed", res.Name, "created", 0, "existing", 0, "error", res.Err)
			continue
		}
		r.log.Info("summary", "seed", res.Name, "created", res.CreatedCount, "existing", res.ExistingCount)
	}
	r.log.Info("seeding finished",
		"created", rep.Totals.Created,
		"existing", rep.Totals.Existing,
		"failed", rep.Totals.Failed,
	)
}

func (r *Runner) track(fn func(p *Progress) error) {
	if r.progress == nil {
		return
	}
	if err := fn(r.progress); err != nil {
		r.log.Debug("progress update ignored", "error", err)
	}
}

// protect calls fn and turns a panic into an error.
func protect[T any](fn func() (T, error)) (out T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn()
}

func detailArgs(details map[string]int) []any {
	if len(details) == 0 {
		return nil
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		out = append(out, k, details[k])
	}
	return out
}
