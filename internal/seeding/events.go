// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package seeding

// EventType enumerates runner lifecycle notifications.
type EventType string

const (
	// EventPlan carries the scheduled order before anything runs.
	EventPlan EventType = "plan"
	// EventStart marks a seed or cleanup body about to run.
	EventStart EventType = "start"
	// EventDone marks a body that finished without error.
	EventDone EventType = "done"
	// EventFail marks a body that returned an error or panicked.
	EventFail EventType = "fail"
	// EventFinish marks the end of the run; Seed or Cleanup holds the report.
	EventFinish EventType = "finish"
)

// Phase distinguishes seeding from cleanup events.
type Phase string

const (
	PhaseSeed    Phase = "seed"
	PhaseCleanup Phase = "cleanup"
)

// Event is a generic container for runner notifications.
// Only a subset of fields is set depending on Type.
type Event struct {
	Type  EventType
	Phase Phase

	// Plan
	Names  []string
	DryRun bool

	// Start, Done, Fail
	Name  string
	Index int // 1-based
	Total int
	Err   error

	// Done, Fail
	Result        *Result
	CleanupResult *CleanupResult

	// Finish
	Seed    *Report
	Cleanup *CleanupReport
}

// Observer receives events synchronously on the runner's goroutine.
type Observer func(Event)
