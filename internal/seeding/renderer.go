// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package seeding

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"seedkit/cli/internal/logging"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
)

// SummaryTable renders a seed report as a table with a totals row.
func SummaryTable(rep Report) (string, error) {
	data := pterm.TableData{{"Seed", "Target", "Existing", "Created", "Status"}}
	for _, res := range rep.Results {
		status := "ok"
		switch {
		case res.Failed():
			status = logging.PresentError("Failed", res.Err)
		case rep.DryRun:
			status = "planned"
		case res.CreatedCount == 0:
			status = "up to date"
		}
		data = append(data, []string{
			res.Name,
			fmt.Sprint(res.TargetCount),
			fmt.Sprint(res.ExistingCount),
			fmt.Sprint(res.CreatedCount) + detailSuffix(res.Details),
			status,
		})
	}
	data = append(data, []string{
		"total", "",
		fmt.Sprint(rep.Totals.Existing),
		fmt.Sprint(rep.Totals.Created),
		fmt.Sprintf("%d failed", rep.Totals.Failed),
	})
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// CleanupTable renders a cleanup report in execution order.
func CleanupTable(rep CleanupReport) (string, error) {
	data := pterm.TableData{{"Cleanup", "Deleted", "Status"}}
	for _, res := range rep.Results {
		status := "ok"
		switch {
		case res.Failed():
			status = logging.PresentError("Failed", res.Err)
		case rep.DryRun:
			status = "planned"
		case res.Skipped:
			status = "nothing to delete"
		}
		data = append(data, []string{res.Name, fmt.Sprint(res.DeletedCount), status})
	}
	data = append(data, []string{"total", fmt.Sprint(rep.Deleted), fmt.Sprintf("%d failed", rep.Failed)})
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// PlanTree renders the scheduled order with each seed's dependencies below it.
func PlanTree(plan Plan) (string, error) {
	list := pterm.LeveledList{}
	for i, d := range plan.Order {
		list = append(list, pterm.LeveledListItem{Level: 0, Text: fmt.Sprintf("%d. %s (target %d)", i+1, d.Name, d.TargetCount)})
		missing := make(map[string]bool)
		for _, dep := range plan.Unresolved[d.Name] {
			missing[dep] = true
		}
		for _, dep := range d.DependsOn {
			text := "after " + dep
			if missing[dep] {
				text = dep + " (not in set, assumed present)"
			}
			list = append(list, pterm.LeveledListItem{Level: 1, Text: text})
		}
	}
	root := pterm.TreeNode{Text: "seed plan", Children: pterm.NewTreeFromLeveledList(list).Children}
	return pterm.DefaultTree.WithRoot(root).Srender()
}

func detailSuffix(details map[string]int) string {
	if len(details) == 0 {
		return ""
	}
	args := detailArgs(details)
	parts := make([]string, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		parts = append(parts, fmt.Sprintf("%v=%v", args[i], args[i+1]))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

// LiveRenderer shows a spinner line per seed while a run is in progress.
// Feed it runner events through Observe.
type LiveRenderer struct {
	progress *Progress
	frames   []string

	mu       sync.Mutex
	phase    Phase
	frameIdx int
	maxLen   int
	last     string
	area     *pterm.AreaPrinter
	stop     chan struct{}
	wg       sync.WaitGroup
}

// NewLiveRenderer draws from p, which must be the runner's Progress.
func NewLiveRenderer(p *Progress) *LiveRenderer {
	return &LiveRenderer{
		progress: p,
		frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		phase:    PhaseSeed,
	}
}

// Observe starts the area on a plan event, refreshes it on progress and stops
// it when the run finishes.
func (lr *LiveRenderer) Observe(ev Event) {
	switch ev.Type {
	case EventPlan:
		lr.mu.Lock()
		lr.phase = ev.Phase
		lr.mu.Unlock()
		if !ev.DryRun {
			lr.start()
		}
	case EventFinish:
		lr.Stop()
	default:
		lr.refresh()
	}
}

func (lr *LiveRenderer) start() {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	if lr.area != nil {
		return
	}
	cursor.Hide()
	area, err := pterm.DefaultArea.WithRemoveWhenDone(true).Start()
	if err != nil {
		cursor.Show()
		return
	}
	lr.area = area
	lr.stop = make(chan struct{})
	lr.wg.Add(1)
	go func(stop <-chan struct{}) {
		defer lr.wg.Done()
		t := time.NewTicker(120 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				lr.mu.Lock()
				lr.frameIdx++
				lr.mu.Unlock()
				lr.refresh()
			case <-stop:
				return
			}
		}
	}(lr.stop)
}

// Stop removes the area and restores the cursor. It is safe to call twice.
func (lr *LiveRenderer) Stop() {
	lr.mu.Lock()
	if lr.area == nil {
		lr.mu.Unlock()
		return
	}
	close(lr.stop)
	lr.mu.Unlock()
	lr.wg.Wait()

	lr.mu.Lock()
	_ = lr.area.Stop()
	lr.area = nil
	lr.last = ""
	lr.maxLen = 0
	lr.mu.Unlock()
	cursor.Show()
}

func (lr *LiveRenderer) refresh() {
	text := strings.Join(lr.Lines(), "\n")
	lr.mu.Lock()
	defer lr.mu.Unlock()
	if lr.area == nil || text == lr.last {
		return
	}
	lr.last = text
	lr.area.Update(text)
}

// Lines renders the current progress, padded to a stable width so shorter
// lines fully overwrite longer ones.
func (lr *LiveRenderer) Lines() []string {
	lr.mu.Lock()
	verb, past := "seeding", "seeded"
	if lr.phase == PhaseCleanup {
		verb, past = "cleaning", "cleaned"
	}
	spin := lr.frames[lr.frameIdx%len(lr.frames)]
	lr.mu.Unlock()

	entries := lr.progress.Snapshot()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		var line string
		switch {
		case e.Status == StatusRunning:
			line = spin + " " + verb + " " + e.Name
		case e.Reason != "":
			line = "✗ failed " + e.Name + ": " + e.Reason
		case e.Status == StatusSucceeded || e.Status == StatusDone:
			line = "✓ " + past + " " + e.Name
		default:
			line = "· waiting " + e.Name
		}
		lines = append(lines, line)
	}

	lr.mu.Lock()
	defer lr.mu.Unlock()
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > lr.maxLen {
			lr.maxLen = n
		}
	}
	for i, l := range lines {
		if pad := lr.maxLen - utf8.RuneCountInString(l); pad > 0 {
			lines[i] = l + strings.Repeat(" ", pad)
		}
	}
	return lines
}
