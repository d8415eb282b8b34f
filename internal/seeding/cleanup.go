// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package seeding

import (
	"context"
	"errors"
	"fmt"

	serrors "seedkit/cli/internal/errors"
	"seedkit/cli/internal/logging"
)

// CleanupResult is the outcome of one cleanup.
type CleanupResult struct {
	Name         string
	DeletedCount int
	// Skipped is true when the count found nothing to delete.
	Skipped bool
	Err     error
}

// Failed reports whether the cleanup failed.
func (r CleanupResult) Failed() bool { return r.Err != nil }

// CleanupDescriptor removes the rows one seed produced.
type CleanupDescriptor struct {
	Name string
	Run  func(ctx context.Context, db DB) (CleanupResult, error)
}

// CountFunc returns how many rows a cleanup would remove.
type CountFunc func(ctx context.Context, db DB) (int, error)

// DeleteFunc removes the rows and returns how many were deleted.
type DeleteFunc func(ctx context.Context, db DB) (int, error)

// DefineCleanup builds a descriptor that counts first and only deletes when
// the count is positive.
func DefineCleanup(name string, count CountFunc, del DeleteFunc) CleanupDescriptor {
	return CleanupDescriptor{
		Name: name,
		Run: func(ctx context.Context, db DB) (CleanupResult, error) {
			n, err := count(ctx, db)
			if err != nil {
				return CleanupResult{}, err
			}
			if n == 0 {
				return CleanupResult{Name: name, Skipped: true}, nil
			}
			deleted, err := del(ctx, db)
			if err != nil {
				return CleanupResult{}, err
			}
			return CleanupResult{Name: name, DeletedCount: deleted}, nil
		},
	}
}

// Cleanup runs descs in reverse of the given order, so callers list them in
// seed order and children are removed before their parents. Failures are
// logged and recorded like Seed failures. Duplicate names are rejected before
// anything runs.
func (r *Runner) Cleanup(ctx context.Context, descs ...CleanupDescriptor) (CleanupReport, error) {
	seen := make(map[string]bool, len(descs))
	ordered := make([]CleanupDescriptor, len(descs))
	for i, d := range descs {
		if seen[d.Name] {
			err := serrors.New(serrors.DuplicateSeed, fmt.Sprintf("cleanup %q is declared more than once", d.Name))
			r.log.Error("cleanup rejected", "error", err)
			return CleanupReport{}, err
		}
		seen[d.Name] = true
		ordered[len(descs)-1-i] = d
	}
	names := make([]string, len(ordered))
	for i, d := range ordered {
		names[i] = d.Name
	}
	if r.progress != nil {
		r.progress.Expect(names...)
	}
	r.emit(Event{Type: EventPlan, Phase: PhaseCleanup, Names: names, DryRun: r.dryRun})
	r.log.Info("cleanup started", "cleanups", len(ordered), "dry_run", r.dryRun)

	results := make([]CleanupResult, 0, len(ordered))
	for i, d := range ordered {
		if r.dryRun {
			r.log.Info("would clean", "cleanup", d.Name)
			results = append(results, CleanupResult{Name: d.Name})
			continue
		}
		results = append(results, r.cleanOne(ctx, d, i+1, len(ordered)))
	}

	report := newCleanupReport(results, r.dryRun)
	for _, res := range report.Results {
		if res.Failed() {
			r.log.Info("summary", "cleanup", res.Name, "deleted", 0, "error", res.Err)
			continue
		}
		r.log.Info("summary", "cleanup", res.Name, "deleted", res.DeletedCount)
	}
	r.log.Info("cleanup finished", "deleted", report.Deleted, "failed", report.Failed)
	if r.progress != nil {
		r.progress.Finish()
	}
	r.emit(Event{Type: EventFinish, Phase: PhaseCleanup, Cleanup: &report, DryRun: r.dryRun})
	return report, nil
}

func (r *Runner) cleanOne(ctx context.Context, d CleanupDescriptor, index, total int) CleanupResult {
	r.track(func(p *Progress) error { return p.Start(d.Name) })
	r.emit(Event{Type: EventStart, Phase: PhaseCleanup, Name: d.Name, Index: index, Total: total})

	res, err := r.runCleanupBody(ctx, d)
	if err != nil {
		wrapped := serrors.Wrap(serrors.CleanupFailed, d.Name, err)
		res = CleanupResult{Name: d.Name, Err: wrapped}
		reason := logging.Mask(err.Error())
		r.log.Error("Failed: "+reason, "cleanup", d.Name)
		r.track(func(p *Progress) error { return p.Fail(d.Name, reason) })
		r.emit(Event{Type: EventFail, Phase: PhaseCleanup, Name: d.Name, Index: index, Total: total, Err: wrapped, CleanupResult: &res})
		return res
	}

	if res.Skipped {
		r.log.Info("nothing to clean", "cleanup", d.Name)
	} else {
		r.log.Info("cleaned", "cleanup", d.Name, "deleted", res.DeletedCount)
	}
	r.track(func(p *Progress) error { return p.Succeed(d.Name) })
	r.emit(Event{Type: EventDone, Phase: PhaseCleanup, Name: d.Name, Index: index, Total: total, CleanupResult: &res})
	return res
}

func (r *Runner) runCleanupBody(ctx context.Context, d CleanupDescriptor) (CleanupResult, error) {
	if err := ctx.Err(); err != nil {
		return CleanupResult{}, err
	}
	if d.Run == nil {
		return CleanupResult{}, errors.New("descriptor has no body")
	}
	res, err := protect(func() (CleanupResult, error) { return d.Run(ctx, r.db) })
	if err == nil {
		err = res.Err
	}
	if err != nil {
		return CleanupResult{}, err
	}
	res.Name = d.Name
	return res, nil
}
