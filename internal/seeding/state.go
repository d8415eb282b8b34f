// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package seeding

import (
	"fmt"
	"sync"
)

// Status is a step in the runner's linear pipeline:
// Pending -> Running -> Succeeded | FailedButContinued -> Done.
type Status string

const (
	StatusPending            Status = "pending"
	StatusRunning            Status = "running"
	StatusSucceeded          Status = "succeeded"
	StatusFailedButContinued Status = "failed"
	StatusDone               Status = "done"
)

var transitions = map[Status][]Status{
	StatusPending:            {StatusRunning},
	StatusRunning:            {StatusSucceeded, StatusFailedButContinued},
	StatusSucceeded:          {StatusDone},
	StatusFailedButContinued: {StatusDone},
}

func canTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Progress tracks the status of every seed or cleanup in the current run.
// It is safe for concurrent use so a renderer can read it while the runner writes.
type Progress struct {
	mu       sync.Mutex
	order    []string
	status   map[string]Status
	failures map[string]string
}

// NewProgress returns an empty tracker.
func NewProgress() *Progress {
	return &Progress{
		status:   make(map[string]Status),
		failures: make(map[string]string),
	}
}

// Reset clears all state so the tracker can be reused for another phase.
func (p *Progress) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.order = nil
	p.status = make(map[string]Status)
	p.failures = make(map[string]string)
}

// Expect registers names as Pending, keeping first-seen order.
func (p *Progress) Expect(names ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, n := range names {
		if _, ok := p.status[n]; ok {
			continue
		}
		p.order = append(p.order, n)
		p.status[n] = StatusPending
	}
}

// Start moves name to Running. Unknown names are registered on the fly.
func (p *Progress) Start(name string) error {
	p.Expect(name)
	return p.move(name, StatusRunning)
}

// Succeed moves name from Running to Succeeded.
func (p *Progress) Succeed(name string) error { return p.move(name, StatusSucceeded) }

// Fail moves name from Running to FailedButContinued and keeps the reason.
func (p *Progress) Fail(name, reason string) error {
	if err := p.move(name, StatusFailedButContinued); err != nil {
		return err
	}
	p.mu.Lock()
	p.failures[name] = reason
	p.mu.Unlock()
	return nil
}

// Finish moves every settled entry to Done. Entries still pending or running
// are left as they are.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for name, s := range p.status {
		if canTransition(s, StatusDone) {
			p.status[name] = StatusDone
		}
	}
}

func (p *Progress) move(name string, to Status) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	from, ok := p.status[name]
	if !ok {
		return fmt.Errorf("progress: unknown entry %q", name)
	}
	if !canTransition(from, to) {
		return fmt.Errorf("progress: %q cannot move from %s to %s", name, from, to)
	}
	p.status[name] = to
	return nil
}

// Status returns the current status of name and whether it is tracked.
func (p *Progress) Status(name string) (Status, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.status[name]
	return s, ok
}

// Entry is one line of a Progress snapshot.
type Entry struct {
	Name   string
	Status Status
	Reason string
}

// Snapshot returns entries in registration order.
func (p *Progress) Snapshot() []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Entry, 0, len(p.order))
	for _, n := range p.order {
		out = append(out, Entry{Name: n, Status: p.status[n], Reason: p.failures[n]})
	}
	return out
}

// Counts returns how many entries are in each status.
func (p *Progress) Counts() map[Status]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[Status]int)
	for _, s := range p.status {
		out[s]++
	}
	return out
}
