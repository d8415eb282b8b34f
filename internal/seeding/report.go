// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package seeding

// Totals aggregates a seed run.
type Totals struct {
	Created  int
	Existing int
	Failed   int
}

// Report is the outcome of Runner.Seed, one Result per scheduled descriptor.
type Report struct {
	Results    []Result
	Totals     Totals
	Unresolved map[string][]string
	DryRun     bool
}

func newReport(results []Result, unresolved map[string][]string, dryRun bool) Report {
	r := Report{Results: results, Unresolved: unresolved, DryRun: dryRun}
	for _, res := range results {
		r.Totals.Created += res.CreatedCount
		r.Totals.Existing += res.ExistingCount
		if res.Failed() {
			r.Totals.Failed++
		}
	}
	return r
}

// HasFailures reports whether any seed failed.
func (r Report) HasFailures() bool { return r.Totals.Failed > 0 }

// Result returns the result recorded for name.
func (r Report) Result(name string) (Result, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return Result{}, false
}

// CleanupReport is the outcome of Runner.Cleanup in execution order.
type CleanupReport struct {
	Results []CleanupResult
	Deleted int
	Failed  int
	DryRun  bool
}

func newCleanupReport(results []CleanupResult, dryRun bool) CleanupReport {
	r := CleanupReport{Results: results, DryRun: dryRun}
	for _, res := range results {
		r.Deleted += res.DeletedCount
		if res.Failed() {
			r.Failed++
		}
	}
	return r
}

// HasFailures reports whether any cleanup failed.
func (r CleanupReport) HasFailures() bool { return r.Failed > 0 }
